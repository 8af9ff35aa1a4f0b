package device

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocateBalanced(t *testing.T) {
	for nproc := 1; nproc <= 17; nproc++ {
		for nd := 1; nd <= 6; nd++ {
			devs := make([]Device, nd)
			for i := range devs {
				devs[i] = Device(i + 2)
			}
			a := Allocate(nproc, devs)
			if len(a) != nproc {
				t.Fatalf("P=%d D=%d: len=%d", nproc, nd, len(a))
			}
			counts := a.Counts()
			lo, hi := nproc, 0
			for _, d := range devs {
				c := counts[d]
				if c < lo {
					lo = c
				}
				if c > hi {
					hi = c
				}
			}
			for d := range counts {
				if d < 2 || int(d) >= nd+2 {
					t.Fatalf("P=%d D=%d: foreign device %v", nproc, nd, d)
				}
			}
			if hi-lo > 1 {
				t.Fatalf("P=%d D=%d: unbalanced counts %v", nproc, nd, counts)
			}
			if nproc%nd == 0 && hi != lo {
				t.Fatalf("P=%d D=%d: divisible but unequal %v", nproc, nd, counts)
			}
		}
	}
}

func TestAllocateOrder(t *testing.T) {
	got := Allocate(5, []Device{0, 1, 2})
	want := Assignment{0, 0, 1, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignment mismatch (-want +got):\n%s", diff)
	}
	got = Allocate(2, []Device{0, 1, 2})
	want = Assignment{0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocatePanicsOnInvalidRequest(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Allocate(3, nil)
}

func TestCPUOnly(t *testing.T) {
	a := CPUOnly(3)
	if diff := cmp.Diff([]string{"cpu", "cpu", "cpu"}, a.Strings()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Device
		ok   bool
	}{
		{"cpu", CPU, true},
		{" CPU ", CPU, true},
		{"0", 0, true},
		{"cuda:3", 3, true},
		{"gpu", CPU, false},
		{"-1", CPU, false},
		{"cuda:x", CPU, false},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("Parse(%q) err=%v", c.in, err)
		}
		if c.ok && got != c.want {
			t.Fatalf("Parse(%q)=%v want %v", c.in, got, c.want)
		}
	}
	if _, err := ParseList([]string{"0", "bogus"}); err == nil {
		t.Fatalf("expected list parse error")
	}
	if Device(2).String() != "cuda:2" || CPU.String() != "cpu" {
		t.Fatalf("String() mismatch")
	}
}
