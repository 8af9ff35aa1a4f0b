package device

import "fmt"

// Assignment holds one device per worker slot, indexed by slot.
type Assignment []Device

// Allocate spreads nproc worker slots over devices so that per-device counts
// differ by at most one. Every device first receives ceil(nproc/len(devices))
// slots; the surplus is taken back from the tail of the device list.
//
// nproc must be positive and devices non-empty. A total that does not match
// nproc is a programming error and panics.
func Allocate(nproc int, devices []Device) Assignment {
	if nproc <= 0 || len(devices) == 0 {
		panic(fmt.Sprintf("device: invalid allocation request nproc=%d devices=%d", nproc, len(devices)))
	}
	nd := len(devices)
	base := (nproc + nd - 1) / nd
	counts := make([]int, nd)
	for i := range counts {
		counts[i] = base
	}
	for i := nd - (base*nd - nproc); i < nd; i++ {
		counts[i]--
	}
	out := make(Assignment, 0, nproc)
	for i, d := range devices {
		for j := 0; j < counts[i]; j++ {
			out = append(out, d)
		}
	}
	if len(out) != nproc {
		panic(fmt.Sprintf("device: allocated %d slots, want %d", len(out), nproc))
	}
	return out
}

// CPUOnly assigns every one of nproc slots to the null device.
func CPUOnly(nproc int) Assignment {
	out := make(Assignment, nproc)
	for i := range out {
		out[i] = CPU
	}
	return out
}

// Counts returns the number of slots bound to each device.
func (a Assignment) Counts() map[Device]int {
	m := make(map[Device]int)
	for _, d := range a {
		m[d]++
	}
	return m
}

// Strings renders each slot's device name.
func (a Assignment) Strings() []string {
	out := make([]string, len(a))
	for i, d := range a {
		out[i] = d.String()
	}
	return out
}
