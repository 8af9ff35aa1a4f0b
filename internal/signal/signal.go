// Package signal extracts the raw instrument signal of one read from its
// container and normalizes it with a median/MAD estimator.
package signal

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"basecaller/internal/errs"
)

// MADFactor scales the median absolute deviation to a consistent estimator
// of the standard deviation of Normal data.
const MADFactor = 1.4826

var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the loader.
func SetLogger(l zerolog.Logger) { zlog = l }

// Sample is the signal of one read.
type Sample struct {
	Signal    []float32
	ReadID    string
	HasReadID bool
}

type loadOptions struct {
	opener Opener
	scale  bool
}

// LoadOption adjusts Load.
type LoadOption func(*loadOptions)

// WithOpener reads containers through o instead of DefaultOpener.
func WithOpener(o Opener) LoadOption { return func(lo *loadOptions) { lo.opener = o } }

// WithoutScaling returns the raw float32 signal unchanged.
func WithoutScaling() LoadOption { return func(lo *loadOptions) { lo.scale = false } }

// WithScaling toggles median/MAD normalization (default on).
func WithScaling(on bool) LoadOption { return func(lo *loadOptions) { lo.scale = on } }

// Load reads the first read stored under /Raw/Reads in the container at
// path. A read id that cannot be decoded is reported as absent. The
// container is closed before Load returns.
func Load(path string, opts ...LoadOption) (Sample, error) {
	lo := loadOptions{opener: DefaultOpener(), scale: true}
	for _, o := range opts {
		o(&lo)
	}
	s, err := load(lo.opener, path)
	if err != nil {
		signalLoadsTotal.WithLabelValues("error").Inc()
		return Sample{}, err
	}
	if lo.scale {
		if s.Signal, err = Normalize(s.Signal); err != nil {
			signalLoadsTotal.WithLabelValues("error").Inc()
			return Sample{}, err
		}
	}
	signalLoadsTotal.WithLabelValues("ok").Inc()
	return s, nil
}

func load(o Opener, path string) (Sample, error) {
	f, err := o.Open(path)
	if err != nil {
		return Sample{}, errs.Wrap(errs.KindIO, "Error opening read file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			zlog.Debug().Str("path", path).Err(cerr).Msg("close read file")
		}
	}()

	children, err := f.Children(RawReadsGroup)
	if err != nil || len(children) == 0 {
		return Sample{}, errs.Wrap(errs.KindIO, "Raw signal not found in /Raw/Reads slot", err)
	}
	slot := RawReadsGroup + "/" + children[0]
	sig, err := f.ReadFloat32(slot + "/" + SignalDataset)
	if err != nil || len(sig) == 0 {
		return Sample{}, errs.Wrap(errs.KindIO, "Raw signal not found in Signal dataset", err)
	}

	s := Sample{Signal: sig}
	if id, err := f.StringAttr(slot, ReadIDAttr); err == nil {
		s.ReadID, s.HasReadID = id, true
	} else {
		zlog.Debug().Str("path", path).Err(err).Msg("read id not decoded")
	}
	return s, nil
}

// Normalize returns (x - median) / MAD of data as a new slice.
func Normalize(data []float32) ([]float32, error) {
	med, mad := MedMAD(data, MADFactor)
	if mad == 0 || math.IsNaN(mad) {
		return nil, errs.New(errs.KindIO, "Raw signal has zero dispersion")
	}
	xs := toFloat64(data)
	floats.AddConst(-med, xs)
	floats.Scale(1/mad, xs)
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = float32(v)
	}
	return out, nil
}

// MedMAD returns the median of data and its median absolute deviation
// scaled by factor. A factor <= 0 selects MADFactor. Empty input yields NaN
// for both.
func MedMAD(data []float32, factor float64) (med, mad float64) {
	if factor <= 0 {
		factor = MADFactor
	}
	if len(data) == 0 {
		return math.NaN(), math.NaN()
	}
	xs := toFloat64(data)
	med = median(xs)
	for i, v := range xs {
		xs[i] = math.Abs(v - med)
	}
	return med, factor * median(xs)
}

// median sorts xs in place. Even lengths average the two central values.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

func toFloat64(data []float32) []float64 {
	xs := make([]float64, len(data))
	for i, v := range data {
		xs[i] = float64(v)
	}
	return xs
}
