package backend

import (
	"basecaller/internal/device"
	"basecaller/internal/errs"
)

// Stubs satisfy the runtime interfaces but refuse to run when no runtime
// binding was registered, so a binary without one fails fast instead of
// producing mocked output.

const (
	compiledMissing = "compiled basecalling runtime not built into this binary"
	trainedMissing  = "trained basecalling runtime not built into this binary"
)

type stubCompiled struct{}

func (stubCompiled) CatMods() ([]int, string, error) {
	return nil, "", errs.New(errs.KindDependency, compiledMissing)
}

func (stubCompiled) RunNetwork([]float32, string) (Weights, error) {
	return Weights{}, errs.New(errs.KindDependency, compiledMissing)
}

type stubTrained struct{}

func (stubTrained) Load(string) (TrainedModel, error) {
	return nil, errs.New(errs.KindDependency, trainedMissing)
}

func (stubTrained) SetDevice(device.Device) error {
	return errs.New(errs.KindDependency, trainedMissing)
}

func (stubTrained) EmptyCache(device.Device) error { return nil }
