// Package matrix is the row-major float32 matrix used for per-timestep
// transition weights.
package matrix

import "fmt"

// Matrix is a dense row-major matrix. Rows are timesteps, columns are
// network outputs.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// New allocates a zeroed rows x cols matrix.
func New(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// FromRows copies rows into a new matrix. All rows must share one length.
func FromRows(rows [][]float32) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	m := New(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.Cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, want %d", i, len(r), m.Cols)
		}
		copy(m.Data[i*m.Cols:], r)
	}
	return m, nil
}

// Validate checks that Data holds exactly Rows*Cols values.
func (m Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 || len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("matrix %dx%d backed by %d values", m.Rows, m.Cols, len(m.Data))
	}
	return nil
}

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float32 { return m.Data[i*m.Cols+j] }

// Row returns row i as a view into m.
func (m Matrix) Row(i int) []float32 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// SliceRows copies rows [from, to) into a new contiguous matrix.
func (m Matrix) SliceRows(from, to int) Matrix {
	out := New(to-from, m.Cols)
	copy(out.Data, m.Data[from*m.Cols:to*m.Cols])
	return out
}

// SplitCols copies columns [0, n) and [n, Cols) into two independent
// contiguous matrices.
func (m Matrix) SplitCols(n int) (Matrix, Matrix, error) {
	if n < 0 || n > m.Cols {
		return Matrix{}, Matrix{}, fmt.Errorf("split column %d outside [0, %d]", n, m.Cols)
	}
	left := New(m.Rows, n)
	right := New(m.Rows, m.Cols-n)
	for i := 0; i < m.Rows; i++ {
		row := m.Row(i)
		copy(left.Data[i*left.Cols:], row[:n])
		copy(right.Data[i*right.Cols:], row[n:])
	}
	return left, right, nil
}

// ConcatCols joins a and b side by side.
func ConcatCols(a, b Matrix) (Matrix, error) {
	if a.Rows != b.Rows {
		return Matrix{}, fmt.Errorf("row count mismatch %d != %d", a.Rows, b.Rows)
	}
	out := New(a.Rows, a.Cols+b.Cols)
	for i := 0; i < a.Rows; i++ {
		copy(out.Data[i*out.Cols:], a.Row(i))
		copy(out.Data[i*out.Cols+a.Cols:], b.Row(i))
	}
	return out, nil
}

// ConcatRows stacks ms vertically. Every matrix must share one column count.
func ConcatRows(ms ...Matrix) (Matrix, error) {
	if len(ms) == 0 {
		return Matrix{}, nil
	}
	rows := 0
	for _, m := range ms {
		if m.Cols != ms[0].Cols {
			return Matrix{}, fmt.Errorf("column count mismatch %d != %d", m.Cols, ms[0].Cols)
		}
		rows += m.Rows
	}
	out := Matrix{Rows: rows, Cols: ms[0].Cols, Data: make([]float32, 0, rows*ms[0].Cols)}
	for _, m := range ms {
		out.Data = append(out.Data, m.Data...)
	}
	return out, nil
}
