package config

import (
	"basecaller/internal/backend"
	"basecaller/internal/common/fsutil"
	"basecaller/internal/device"
	"basecaller/internal/errs"
)

// ModelSpec converts the model section of cfg into a backend.ModelSpec.
// Paths are expanded and devices parsed; backend.New does the remaining
// validation.
func (c Config) ModelSpec() (backend.ModelSpec, error) {
	devices, err := device.ParseList(c.Devices)
	if err != nil {
		return backend.ModelSpec{}, errs.Wrap(errs.KindConfig, "Invalid device list.", err)
	}
	trained, err := fsutil.ExpandHome(c.TrainedModel)
	if err != nil {
		return backend.ModelSpec{}, errs.Wrap(errs.KindConfig, "Invalid trained model path.", err)
	}
	return backend.ModelSpec{
		CompiledModel:   c.CompiledModel,
		TrainedModel:    trained,
		Devices:         devices,
		NumProc:         c.NumProc,
		ChunkSize:       c.ChunkSize,
		ChunkOverlap:    c.ChunkOverlap,
		MaxConcurChunks: c.MaxConcurChunks,
	}, nil
}

// ReadsRoot returns ReadsDir with a leading '~' expanded.
func (c Config) ReadsRoot() (string, error) {
	return fsutil.ExpandHome(c.ReadsDir)
}
