package matrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seq(rows, cols int) Matrix {
	m := New(rows, cols)
	for i := range m.Data {
		m.Data[i] = float32(i)
	}
	return m
}

func TestSplitColsRoundTrip(t *testing.T) {
	src := seq(7, 43)
	for _, n := range []int{0, 1, 40, 42, 43} {
		can, mod, err := src.SplitCols(n)
		if err != nil {
			t.Fatalf("split %d: %v", n, err)
		}
		if can.Cols != n || mod.Cols != 43-n || can.Rows != 7 || mod.Rows != 7 {
			t.Fatalf("split %d shapes %dx%d %dx%d", n, can.Rows, can.Cols, mod.Rows, mod.Cols)
		}
		back, err := ConcatCols(can, mod)
		if err != nil {
			t.Fatalf("concat: %v", err)
		}
		if diff := cmp.Diff(src, back); diff != "" {
			t.Fatalf("split %d does not rebuild source (-want +got):\n%s", n, diff)
		}
	}
}

func TestSplitColsIsIndependentOfSource(t *testing.T) {
	src := seq(3, 4)
	can, mod, err := src.SplitCols(2)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	for i := range src.Data {
		src.Data[i] = -1
	}
	if can.At(1, 1) != 5 || mod.At(2, 0) != 10 {
		t.Fatalf("split outputs alias the source: %v %v", can.Data, mod.Data)
	}
	if _, _, err := src.SplitCols(5); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestConcatRows(t *testing.T) {
	a := seq(2, 3)
	b := seq(1, 3)
	got, err := ConcatRows(a, b)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	want := []float32{0, 1, 2, 3, 4, 5, 0, 1, 2}
	if got.Rows != 3 || !cmp.Equal(want, got.Data) {
		t.Fatalf("got %dx%d %v", got.Rows, got.Cols, got.Data)
	}
	if _, err := ConcatRows(a, seq(1, 2)); err == nil {
		t.Fatalf("expected column mismatch")
	}
	if _, err := ConcatCols(a, b); err == nil {
		t.Fatalf("expected row mismatch")
	}
}

func TestFromRowsAndSlice(t *testing.T) {
	m, err := FromRows([][]float32{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	s := m.SliceRows(1, 3)
	if !cmp.Equal([]float32{3, 4, 5, 6}, s.Data) {
		t.Fatalf("slice=%v", s.Data)
	}
	s.Data[0] = 99
	if m.At(1, 0) != 3 {
		t.Fatalf("SliceRows must copy")
	}
	if _, err := FromRows([][]float32{{1}, {2, 3}}); err == nil {
		t.Fatalf("expected ragged error")
	}
	if err := (Matrix{Rows: 2, Cols: 2, Data: make([]float32, 3)}).Validate(); err == nil {
		t.Fatalf("expected validate error")
	}
}
