//go:build !hdf5

package signal

import (
	"errors"
	"testing"

	"basecaller/internal/errs"
)

func TestDefaultOpenerWithoutHDF5(t *testing.T) {
	_, err := Load("read.fast5")
	if !errs.IsIO(err) || errs.Message(err) != "Error opening read file" {
		t.Fatalf("unexpected error %v", err)
	}
	if !errs.IsDependencyUnavailable(errors.Unwrap(err)) {
		t.Fatalf("cause should be a missing dependency, got %v", errors.Unwrap(err))
	}
}
