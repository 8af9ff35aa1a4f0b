package backend

import (
	"basecaller/internal/device"
	"basecaller/internal/matrix"
)

type fakeCompiled struct {
	canNmods []int
	output   string
	catErr   error
	out      Weights
	runErr   error

	catCalls int
	runCalls int
	models   []string
}

func (f *fakeCompiled) CatMods() ([]int, string, error) {
	f.catCalls++
	return f.canNmods, f.output, f.catErr
}

func (f *fakeCompiled) RunNetwork(sample []float32, model string) (Weights, error) {
	f.runCalls++
	f.models = append(f.models, model)
	return f.out, f.runErr
}

// fakeModel emits len(chunk)/stride rows per chunk. Cell (r, c) holds
// chunk[r*stride] + 1000*c so column splits can be checked by value.
type fakeModel struct {
	layer  LayerInfo
	stride int
	fwdErr error
	toErr  error

	forwards int
	to       []device.Device
	evals    int
	closes   int
}

func (m *fakeModel) Stride() int { return m.stride }

func (m *fakeModel) Forward(chunks [][]float32) ([]matrix.Matrix, error) {
	m.forwards++
	if m.fwdErr != nil {
		return nil, m.fwdErr
	}
	out := make([]matrix.Matrix, len(chunks))
	for i, c := range chunks {
		o := matrix.New(len(c)/m.stride, m.layer.Size)
		for r := 0; r < o.Rows; r++ {
			for col := 0; col < o.Cols; col++ {
				o.Data[r*o.Cols+col] = c[r*m.stride] + 1000*float32(col)
			}
		}
		out[i] = o
	}
	return out, nil
}

func (m *fakeModel) FinalLayer() LayerInfo { return m.layer }

func (m *fakeModel) To(d device.Device) error {
	m.to = append(m.to, d)
	return m.toErr
}

func (m *fakeModel) Eval() { m.evals++ }

func (m *fakeModel) Close() error {
	m.closes++
	return nil
}

type fakeTrained struct {
	layer   LayerInfo
	stride  int
	loadErr error
	devErr  error
	fwdErr  error

	paths      []string
	models     []*fakeModel
	setDevice  []device.Device
	emptyCache []device.Device
}

func (f *fakeTrained) Load(path string) (TrainedModel, error) {
	f.paths = append(f.paths, path)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	stride := f.stride
	if stride == 0 {
		stride = 5
	}
	m := &fakeModel{layer: f.layer, stride: stride, fwdErr: f.fwdErr}
	f.models = append(f.models, m)
	return m, nil
}

func (f *fakeTrained) SetDevice(d device.Device) error {
	f.setDevice = append(f.setDevice, d)
	return f.devErr
}

func (f *fakeTrained) EmptyCache(d device.Device) error {
	f.emptyCache = append(f.emptyCache, d)
	return nil
}

func intp(v int) *int { return &v }

func trainedSpec(path string, nproc int, devices ...device.Device) ModelSpec {
	return ModelSpec{
		TrainedModel:    path,
		NumProc:         nproc,
		Devices:         devices,
		ChunkSize:       intp(100),
		ChunkOverlap:    intp(20),
		MaxConcurChunks: intp(4),
	}
}

func ramp(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(i)
	}
	return s
}

func plainLayer() LayerInfo { return LayerInfo{Size: 40} }

func catModLayer() LayerInfo {
	return LayerInfo{
		Size:           42,
		CatMod:         true,
		OutputAlphabet: "AmCGT",
		CanNmods:       []int{1, 0, 0, 0},
	}
}
