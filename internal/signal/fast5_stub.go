//go:build !hdf5

package signal

import "basecaller/internal/errs"

// hdf5Opener refuses to open containers when libhdf5 support was not
// compiled in (build with -tags=hdf5).
type hdf5Opener struct{}

func (hdf5Opener) Open(path string) (File, error) {
	return nil, errs.New(errs.KindDependency, "hdf5 support not built (missing 'hdf5' build tag)")
}
