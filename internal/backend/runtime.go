package backend

import (
	"errors"
	"sync"

	"basecaller/internal/alphabet"
	"basecaller/internal/chunk"
	"basecaller/internal/device"
)

// Errors a trained runtime returns so the adapter can classify failures.
var (
	// ErrMissingEntryPoint reports a model lacking an expected entry point.
	ErrMissingEntryPoint = errors.New("model entry point missing")
	// ErrResourceExhausted reports device or host memory exhaustion.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// CompiledRuntime is the compiled flip-flop network library.
type CompiledRuntime interface {
	// CatMods returns the per-canonical-base modification counts and the
	// output alphabet of the built-in modified base model.
	CatMods() (canNmods []int, outputAlphabet string, err error)
	// RunNetwork basecalls one normalized signal with the named model.
	// Modified base models return already split weights.
	RunNetwork(sample []float32, model string) (Weights, error)
}

// LayerInfo describes the final layer of a trained model.
type LayerInfo struct {
	// Size is the width of one output row.
	Size int
	// CatMod is set for modification-aware flip-flop layers.
	CatMod         bool
	OutputAlphabet string
	CanNmods       []int
	ModLongNames   []alphabet.ModName
}

// TrainedModel is a loaded, process-local trained model handle.
type TrainedModel interface {
	chunk.Network
	FinalLayer() LayerInfo
	// To moves the model's parameters to d.
	To(d device.Device) error
	// Eval switches the model to inference mode.
	Eval()
	Close() error
}

// TrainedRuntime loads trained models and manages device contexts.
type TrainedRuntime interface {
	Load(path string) (TrainedModel, error)
	// SetDevice makes d the active device of the calling thread.
	SetDevice(d device.Device) error
	// EmptyCache returns cached allocations on d to the device allocator.
	EmptyCache(d device.Device) error
}

// Runtimes carries the collaborators a Backend is built on. Nil fields
// fall back to the registered runtime, or to a stub reporting that the
// runtime is not part of this build.
type Runtimes struct {
	Compiled CompiledRuntime
	Trained  TrainedRuntime
}

var (
	regMu           sync.Mutex
	compiledFactory func() (CompiledRuntime, error)
	trainedFactory  func() (TrainedRuntime, error)
)

// RegisterCompiled installs the factory for the default compiled runtime.
// Runtime bindings call it from init.
func RegisterCompiled(f func() (CompiledRuntime, error)) {
	regMu.Lock()
	defer regMu.Unlock()
	if compiledFactory != nil {
		panic("backend: compiled runtime already registered")
	}
	compiledFactory = f
}

// RegisterTrained installs the factory for the default trained runtime.
func RegisterTrained(f func() (TrainedRuntime, error)) {
	regMu.Lock()
	defer regMu.Unlock()
	if trainedFactory != nil {
		panic("backend: trained runtime already registered")
	}
	trainedFactory = f
}

func (r Runtimes) compiled() (CompiledRuntime, error) {
	if r.Compiled != nil {
		return r.Compiled, nil
	}
	regMu.Lock()
	f := compiledFactory
	regMu.Unlock()
	if f == nil {
		return stubCompiled{}, nil
	}
	return f()
}

func (r Runtimes) trained() (TrainedRuntime, error) {
	if r.Trained != nil {
		return r.Trained, nil
	}
	regMu.Lock()
	f := trainedFactory
	regMu.Unlock()
	if f == nil {
		return stubTrained{}, nil
	}
	return f()
}
