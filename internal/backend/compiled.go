package backend

import (
	"time"

	"basecaller/internal/alphabet"
	"basecaller/internal/device"
	"basecaller/internal/errs"
)

// Compiled model names with fixed alphabet handling.
const (
	compiledNaiveMod = "r941_5mC"
	compiledCatMod   = "r941_cat_mod"
)

type compiledBackend struct {
	name   string
	rt     CompiledRuntime
	alpha  *alphabet.Map
	assign device.Assignment
}

func newCompiled(spec ModelSpec, rt CompiledRuntime) (*compiledBackend, error) {
	if spec.CompiledModel == compiledNaiveMod {
		return nil, errs.New(errs.KindUnsupported, "Naive modified base flip-flop models are not supported.")
	}
	alpha := alphabet.Plain()
	if spec.CompiledModel == compiledCatMod {
		canNmods, output, err := rt.CatMods()
		if err != nil {
			return nil, classify(err, errs.KindUnsupported, "Cannot read compiled model modified base metadata")
		}
		if alpha, err = alphabet.CatMod(output, canNmods, nil); err != nil {
			return nil, errs.Wrap(errs.KindUnsupported, "Invalid compiled model modified base metadata", err)
		}
	}
	if len(spec.Devices) > 0 {
		zlog.Warn().Str("model", spec.CompiledModel).Msg("compiled backend runs on CPU only; ignoring devices")
	}
	return &compiledBackend{
		name:   spec.CompiledModel,
		rt:     rt,
		alpha:  alpha,
		assign: device.CPUOnly(spec.NumProc),
	}, nil
}

func (b *compiledBackend) Kind() Kind                    { return KindCompiled }
func (b *compiledBackend) Model() string                 { return b.name }
func (b *compiledBackend) Alphabet() *alphabet.Map       { return b.alpha }
func (b *compiledBackend) Assignment() device.Assignment { return b.assign }
func (b *compiledBackend) sealed()                       {}

// PrepWorker returns a stateless worker; compiled networks always run on
// the CPU whatever device is passed.
func (b *compiledBackend) PrepWorker(d device.Device) (Worker, error) {
	if !d.IsCPU() {
		zlog.Debug().Str("device", d.String()).Msg("compiled worker bound to cpu")
	}
	workersReady.WithLabelValues(device.CPU.String()).Inc()
	return &compiledWorker{b: b}, nil
}

type compiledWorker struct {
	b      *compiledBackend
	closed bool
}

func (w *compiledWorker) Device() device.Device { return device.CPU }

// RunModel ignores nCanState: modified base compiled models already return
// split weights.
func (w *compiledWorker) RunModel(sample []float32, nCanState int) (Weights, error) {
	start := time.Now()
	out, err := w.run(sample)
	observeRun(KindCompiled, start, err)
	return out, err
}

func (w *compiledWorker) run(sample []float32) (Weights, error) {
	if w.closed {
		return Weights{}, errs.New(errs.KindInternal, "Worker is closed.")
	}
	out, err := w.b.rt.RunNetwork(sample, w.b.name)
	if err != nil {
		return Weights{}, classify(err, errs.KindCompat, "Compiled basecalling network failed")
	}
	if err := out.validate(); err != nil {
		return Weights{}, errs.Wrap(errs.KindCompat, "Compiled basecalling network failed", err)
	}
	return out, nil
}

func (w *compiledWorker) Close() error {
	if !w.closed {
		w.closed = true
		workersReady.WithLabelValues(device.CPU.String()).Dec()
	}
	return nil
}
