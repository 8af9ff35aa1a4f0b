//go:build hdf5

package signal

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// hdf5Opener reads fast5 containers through libhdf5.
type hdf5Opener struct{}

func (hdf5Opener) Open(path string) (File, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	return &hdf5File{f: f}, nil
}

type hdf5File struct {
	f *hdf5.File
}

func (h *hdf5File) Children(group string) ([]string, error) {
	g, err := h.f.OpenGroup(group)
	if err != nil {
		return nil, err
	}
	defer g.Close()
	n, err := g.NumObjects()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := g.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *hdf5File) ReadFloat32(dataset string) ([]float32, error) {
	ds, err := h.f.OpenDataset(dataset)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	space := ds.Space()
	defer space.Close()
	n := space.SimpleExtentNPoints()
	if n < 0 {
		return nil, fmt.Errorf("dataset %s has invalid extent", dataset)
	}
	buf := make([]float32, n)
	if n == 0 {
		return buf, nil
	}
	// libhdf5 converts the stored integer type to the float32 memory type.
	if err := ds.Read(&buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (h *hdf5File) StringAttr(object, name string) (string, error) {
	g, err := h.f.OpenGroup(object)
	if err != nil {
		return "", err
	}
	defer g.Close()
	a, err := g.OpenAttribute(name)
	if err != nil {
		return "", err
	}
	defer a.Close()
	var s string
	if err := a.Read(&s, hdf5.T_GO_STRING); err != nil {
		return "", err
	}
	return s, nil
}

func (h *hdf5File) Close() error { return h.f.Close() }
