// Package chunk runs a trained network over a long signal by splitting it
// into overlapping fixed-size windows, forwarding the windows in bounded
// batches, and stitching the per-window outputs back into one matrix.
package chunk

import (
	"fmt"

	"basecaller/internal/matrix"
)

// Network is the part of a trained model the chunked runner drives.
type Network interface {
	// Forward runs one batch of equally sized chunks (the last batch may be
	// shorter) and returns one output matrix per chunk.
	Forward(chunks [][]float32) ([]matrix.Matrix, error)
	// Stride is the number of input samples per output row.
	Stride() int
}

// Params controls window size, overlap and batch bound.
type Params struct {
	Size          int
	Overlap       int
	MaxConcurrent int
}

// Validate rejects windows that cannot tile a signal.
func (p Params) Validate() error {
	switch {
	case p.Size <= 0:
		return fmt.Errorf("chunk size must be positive, got %d", p.Size)
	case p.Overlap < 0 || p.Overlap >= p.Size:
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d", p.Size, p.Overlap)
	case p.MaxConcurrent <= 0:
		return fmt.Errorf("max concurrent chunks must be positive, got %d", p.MaxConcurrent)
	}
	return nil
}

// Split cuts signal into windows of size samples overlapping by overlap.
// A signal shorter than one window yields a single window of the whole
// signal. The final window is aligned to the end of the signal.
func Split(signal []float32, size, overlap int) (chunks [][]float32, starts, ends []int) {
	if len(signal) < size {
		return [][]float32{signal}, []int{0}, []int{len(signal)}
	}
	for e := size; e < len(signal); e += size - overlap {
		ends = append(ends, e)
	}
	ends = append(ends, len(signal))
	starts = make([]int, len(ends))
	chunks = make([][]float32, len(ends))
	for i, e := range ends {
		starts[i] = e - size
		chunks[i] = signal[starts[i]:e]
	}
	return chunks, starts, ends
}

// Stitch joins per-window outputs, keeping from each window the rows
// between the midpoints of its overlaps with its neighbours.
func Stitch(outs []matrix.Matrix, starts, ends []int, stride int) (matrix.Matrix, error) {
	n := len(outs)
	if n == 0 || len(starts) != n || len(ends) != n {
		return matrix.Matrix{}, fmt.Errorf("stitch: %d outputs for %d windows", n, len(starts))
	}
	if stride <= 0 {
		return matrix.Matrix{}, fmt.Errorf("stitch: stride must be positive, got %d", stride)
	}
	if n == 1 {
		return outs[0], nil
	}
	parts := make([]matrix.Matrix, 0, n)
	for i := 0; i < n; i++ {
		var from, to int
		switch i {
		case 0:
			to = (ends[0] + starts[1]) / (2 * stride)
		case n - 1:
			from = (ends[n-2] - starts[n-1]) / (2 * stride)
			to = (ends[n-1] - starts[n-1]) / stride
		default:
			from = (ends[i-1] - starts[i]) / (2 * stride)
			to = (ends[i] + starts[i+1] - 2*starts[i]) / (2 * stride)
		}
		if from < 0 || to > outs[i].Rows || from > to {
			return matrix.Matrix{}, fmt.Errorf("stitch: window %d rows [%d, %d) outside output of %d rows", i, from, to, outs[i].Rows)
		}
		parts = append(parts, outs[i].SliceRows(from, to))
	}
	return matrix.ConcatRows(parts...)
}

// Run forwards signal through net window by window, at most
// p.MaxConcurrent windows per Forward call, and returns the stitched output.
// Errors from Forward are wrapped so callers can match them with errors.Is.
func Run(net Network, signal []float32, p Params) (matrix.Matrix, error) {
	if err := p.Validate(); err != nil {
		return matrix.Matrix{}, err
	}
	chunks, starts, ends := Split(signal, p.Size, p.Overlap)
	outs := make([]matrix.Matrix, 0, len(chunks))
	for lo := 0; lo < len(chunks); lo += p.MaxConcurrent {
		hi := min(lo+p.MaxConcurrent, len(chunks))
		got, err := net.Forward(chunks[lo:hi])
		if err != nil {
			return matrix.Matrix{}, fmt.Errorf("forward chunks [%d, %d): %w", lo, hi, err)
		}
		if len(got) != hi-lo {
			return matrix.Matrix{}, fmt.Errorf("forward returned %d outputs for %d chunks", len(got), hi-lo)
		}
		outs = append(outs, got...)
	}
	return Stitch(outs, starts, ends, net.Stride())
}
