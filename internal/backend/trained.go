package backend

import (
	"errors"
	"time"

	"basecaller/internal/alphabet"
	"basecaller/internal/chunk"
	"basecaller/internal/device"
	"basecaller/internal/errs"
)

type trainedBackend struct {
	path   string
	rt     TrainedRuntime
	params chunk.Params
	alpha  *alphabet.Map
	assign device.Assignment
}

func newTrained(spec ModelSpec, rt TrainedRuntime) (*trainedBackend, error) {
	params, err := spec.ChunkParams()
	if err != nil {
		return nil, err
	}
	layer, err := probeLayer(rt, spec.TrainedModel)
	if err != nil {
		return nil, err
	}
	alpha, err := layerAlphabet(layer)
	if err != nil {
		return nil, err
	}
	assign := device.CPUOnly(spec.NumProc)
	if len(spec.Devices) > 0 {
		assign = device.Allocate(spec.NumProc, spec.Devices)
	}
	return &trainedBackend{
		path:   spec.TrainedModel,
		rt:     rt,
		params: params,
		alpha:  alpha,
		assign: assign,
	}, nil
}

// probeLayer loads a temporary model to read its final layer metadata.
func probeLayer(rt TrainedRuntime, path string) (LayerInfo, error) {
	m, err := rt.Load(path)
	if err != nil {
		return LayerInfo{}, classify(err, errs.KindConfig, "Error loading trained model")
	}
	layer := m.FinalLayer()
	if err := m.Close(); err != nil {
		zlog.Debug().Err(err).Str("model", path).Msg("close probe model")
	}
	return layer, nil
}

func layerAlphabet(layer LayerInfo) (*alphabet.Map, error) {
	if layer.CatMod {
		a, err := alphabet.CatMod(layer.OutputAlphabet, layer.CanNmods, layer.ModLongNames)
		if err != nil {
			return nil, errs.Wrap(errs.KindUnsupported, "Invalid modified base model metadata", err)
		}
		return a.WithOutputSize(layer.Size), nil
	}
	if alphabet.NStateToNBase(layer.Size) != len(alphabet.CanAlphabet) {
		return nil, errs.New(errs.KindUnsupported, "Naive modified base flip-flop models are not supported.")
	}
	return alphabet.Plain().WithOutputSize(layer.Size), nil
}

func (b *trainedBackend) Kind() Kind                    { return KindTrained }
func (b *trainedBackend) Model() string                 { return b.path }
func (b *trainedBackend) Alphabet() *alphabet.Map       { return b.alpha }
func (b *trainedBackend) Assignment() device.Assignment { return b.assign }
func (b *trainedBackend) sealed()                       {}

// PrepWorker loads a worker-local copy of the model, activates d on the
// calling thread and moves the model there.
func (b *trainedBackend) PrepWorker(d device.Device) (Worker, error) {
	m, err := b.rt.Load(b.path)
	if err != nil {
		return nil, classify(err, errs.KindConfig, "Error loading trained model")
	}
	if !d.IsCPU() {
		if err := b.rt.SetDevice(d); err != nil {
			_ = m.Close()
			return nil, classify(err, errs.KindResource, "Cannot activate device "+d.String())
		}
		if err := m.To(d); err != nil {
			_ = m.Close()
			return nil, classify(err, errs.KindResource, "Cannot move model to device "+d.String())
		}
	}
	m.Eval()
	workersReady.WithLabelValues(d.String()).Inc()
	zlog.Debug().Str("model", b.path).Str("device", d.String()).Msg("trained worker ready")
	return &trainedWorker{b: b, model: m, dev: d}, nil
}

type trainedWorker struct {
	b     *trainedBackend
	model TrainedModel
	dev   device.Device
}

func (w *trainedWorker) Device() device.Device { return w.dev }

func (w *trainedWorker) RunModel(sample []float32, nCanState int) (Weights, error) {
	start := time.Now()
	out, err := w.run(sample, nCanState)
	observeRun(KindTrained, start, err)
	return out, err
}

func (w *trainedWorker) run(sample []float32, nCanState int) (Weights, error) {
	if w.model == nil {
		return Weights{}, errs.New(errs.KindInternal, "Worker is closed.")
	}
	if !w.dev.IsCPU() {
		defer w.emptyCache()
	}
	trans, err := chunk.Run(w.model, sample, w.b.params)
	if err != nil {
		return Weights{}, classifyRun(err)
	}
	return splitWeights(Weights{Trans: trans}, nCanState)
}

func classifyRun(err error) error {
	switch {
	case errors.Is(err, ErrMissingEntryPoint):
		return errs.Wrap(errs.KindCompat, "Out of date or incompatible model", err)
	case errors.Is(err, ErrResourceExhausted):
		return errs.Wrap(errs.KindResource, "Likely out of memory error.", err)
	default:
		return classify(err, errs.KindCompat, "Trained basecalling network failed")
	}
}

func (w *trainedWorker) emptyCache() {
	if err := w.b.rt.EmptyCache(w.dev); err != nil {
		zlog.Warn().Err(err).Str("device", w.dev.String()).Msg("empty device cache")
	}
}

// Close is idempotent.
func (w *trainedWorker) Close() error {
	if w.model == nil {
		return nil
	}
	err := w.model.Close()
	w.model = nil
	if !w.dev.IsCPU() {
		w.emptyCache()
	}
	workersReady.WithLabelValues(w.dev.String()).Dec()
	return err
}
