package backend

import (
	"errors"

	"github.com/rs/zerolog"

	"basecaller/internal/alphabet"
	"basecaller/internal/device"
	"basecaller/internal/errs"
	"basecaller/internal/matrix"
)

var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the backends.
func SetLogger(l zerolog.Logger) { zlog = l }

// Backend is the shared, immutable half of a model backend: alphabet
// metadata and the per-slot device assignment. The set of implementations
// is closed.
type Backend interface {
	Kind() Kind
	// Model is the compiled model name or the trained model path.
	Model() string
	Alphabet() *alphabet.Map
	Assignment() device.Assignment
	// PrepWorker loads a fresh, worker-local model bound to d. It must be
	// called once per worker slot before RunModel.
	PrepWorker(d device.Device) (Worker, error)

	sealed()
}

// Worker is a worker-local model ready for inference. It is not safe for
// concurrent use.
type Worker interface {
	Device() device.Device
	// RunModel returns the transition weights of one normalized signal.
	// A positive nCanState splits an undivided result into columns
	// [0, nCanState) and [nCanState, end).
	RunModel(sample []float32, nCanState int) (Weights, error)
	// Close releases the model and any cached device memory.
	Close() error
}

// Weights is the raw network output of one read. Mod is nil for an
// undivided matrix; otherwise Trans holds the canonical columns and Mod the
// modification columns.
type Weights struct {
	Trans matrix.Matrix
	Mod   *matrix.Matrix
}

// Split reports whether the weights are split into canonical and
// modification parts.
func (w Weights) Split() bool { return w.Mod != nil }

func (w Weights) validate() error {
	if err := w.Trans.Validate(); err != nil {
		return err
	}
	if w.Mod != nil {
		if err := w.Mod.Validate(); err != nil {
			return err
		}
		if w.Mod.Rows != w.Trans.Rows {
			return errors.New("canonical and modification weights differ in length")
		}
	}
	return nil
}

// splitWeights copies an undivided matrix into independent canonical and
// modification matrices.
func splitWeights(w Weights, nCanState int) (Weights, error) {
	if nCanState <= 0 || w.Split() {
		return w, nil
	}
	can, mod, err := w.Trans.SplitCols(nCanState)
	if err != nil {
		return Weights{}, errs.Wrap(errs.KindConfig, "Invalid canonical state count.", err)
	}
	return Weights{Trans: can, Mod: &mod}, nil
}

// New validates spec, resolves the model alphabet and assigns a device to
// every worker slot. It does not load worker models.
func New(spec ModelSpec, rt Runtimes) (Backend, error) {
	spec = spec.withDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	kind, _ := spec.Kind()
	b, err := newBackend(kind, spec, rt)
	if err != nil {
		return nil, err
	}
	zlog.Info().
		Str("backend", string(b.Kind())).
		Str("model", b.Model()).
		Str("output_alphabet", b.Alphabet().OutputAlphabet()).
		Int("n_mods", b.Alphabet().NMods()).
		Strs("devices", b.Assignment().Strings()).
		Msg("backend ready")
	return b, nil
}

func newBackend(kind Kind, spec ModelSpec, rt Runtimes) (Backend, error) {
	switch kind {
	case KindCompiled:
		crt, err := rt.compiled()
		if err != nil {
			return nil, classify(err, errs.KindDependency, "Cannot initialize compiled runtime")
		}
		return newCompiled(spec, crt)
	case KindTrained:
		trt, err := rt.trained()
		if err != nil {
			return nil, classify(err, errs.KindDependency, "Cannot initialize trained runtime")
		}
		return newTrained(spec, trt)
	default:
		return nil, errs.New(errs.KindInternal, "Invalid model type.")
	}
}

// classify keeps an existing MegaError classification and wraps anything
// else with kind and msg.
func classify(err error, kind errs.Kind, msg string) error {
	if errs.KindOf(err) != 0 {
		return err
	}
	return errs.Wrap(kind, msg, err)
}
