package backend

import (
	"basecaller/internal/chunk"
	"basecaller/internal/device"
	"basecaller/internal/errs"
)

// Kind names a backend implementation.
type Kind string

const (
	KindCompiled Kind = "compiled"
	KindTrained  Kind = "trained"
)

// ModelSpec is the validated model configuration chosen at startup.
// Exactly one of CompiledModel and TrainedModel must be set. The chunking
// fields are pointers because a zero overlap is a legal value; the trained
// backend requires all three.
type ModelSpec struct {
	CompiledModel string
	TrainedModel  string
	Devices       []device.Device
	NumProc       int

	ChunkSize       *int
	ChunkOverlap    *int
	MaxConcurChunks *int
}

// Kind validates the backend selection and returns the selected kind.
func (s ModelSpec) Kind() (Kind, error) {
	switch {
	case s.CompiledModel != "" && s.TrainedModel == "":
		return KindCompiled, nil
	case s.TrainedModel != "" && s.CompiledModel == "":
		return KindTrained, nil
	default:
		return "", errs.New(errs.KindConfig, "Invalid model specification.")
	}
}

// Validate checks the spec without touching any runtime or device.
func (s ModelSpec) Validate() error {
	kind, err := s.Kind()
	if err != nil {
		return err
	}
	if s.NumProc < 0 {
		return errs.New(errs.KindConfig, "Number of processes must be positive.")
	}
	if kind == KindTrained {
		if _, err := s.ChunkParams(); err != nil {
			return err
		}
	}
	return nil
}

// ChunkParams returns the chunked inference parameters of a trained spec.
func (s ModelSpec) ChunkParams() (chunk.Params, error) {
	if s.ChunkSize == nil || s.ChunkOverlap == nil || s.MaxConcurChunks == nil {
		return chunk.Params{}, errs.New(errs.KindConfig,
			"Must provide chunk_size, chunk_overlap, max_concur_chunks in order to run the trained basecalling backend.")
	}
	p := chunk.Params{Size: *s.ChunkSize, Overlap: *s.ChunkOverlap, MaxConcurrent: *s.MaxConcurChunks}
	if err := p.Validate(); err != nil {
		return chunk.Params{}, errs.Wrap(errs.KindConfig, "Invalid chunking parameters.", err)
	}
	return p, nil
}

func (s ModelSpec) withDefaults() ModelSpec {
	if s.NumProc == 0 {
		s.NumProc = 1
	}
	return s
}
