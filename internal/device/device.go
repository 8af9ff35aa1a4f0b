// Package device names compute devices and partitions worker slots across
// them.
package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Device identifies the compute device a worker binds to. CPU is the null
// device: the worker runs without a device context.
type Device int

// CPU is the null device.
const CPU Device = -1

// IsCPU reports whether d is the null device.
func (d Device) IsCPU() bool { return d < 0 }

func (d Device) String() string {
	if d.IsCPU() {
		return "cpu"
	}
	return "cuda:" + strconv.Itoa(int(d))
}

// Parse accepts "cpu", a bare ordinal ("1") or a prefixed ordinal ("cuda:1").
func Parse(s string) (Device, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "cpu" {
		return CPU, nil
	}
	v = strings.TrimPrefix(v, "cuda:")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return CPU, fmt.Errorf("invalid device %q", s)
	}
	return Device(n), nil
}

// ParseList parses every entry of ss, failing on the first invalid one.
func ParseList(ss []string) ([]Device, error) {
	out := make([]Device, 0, len(ss))
	for _, s := range ss {
		d, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
