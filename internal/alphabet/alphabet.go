// Package alphabet derives the canonical and modified-base alphabets of a
// flip-flop model from the metadata its runtime declares.
//
// A modification-aware output alphabet is a sequence of runs, one per
// canonical base: the canonical symbol followed by zero or more
// modification symbols, e.g. "AYCZGT" for A(+Y) C(+Z) G T.
package alphabet

import (
	"fmt"
	"math"
	"strings"
)

// CanAlphabet is the fixed canonical nucleotide alphabet.
const CanAlphabet = "ACGT"

// FlipFlopSize is the transition count of a 4-base flip-flop model.
const FlipFlopSize = 40

// NStateToNBase returns the number of bases a flip-flop layer with nstate
// transition outputs encodes.
func NStateToNBase(nstate int) int {
	return int(math.Sqrt(0.25+0.5*float64(nstate)) - 0.5)
}

// ModName pairs a modification symbol with its long name.
type ModName struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// Map is the resolved alphabet of one model. It is immutable; accessors
// return copies.
type Map struct {
	output      string
	can         string
	canNmods    []int
	canIndices  []int
	canBaseMods map[byte]string
	modIndex    map[byte]int
	longNames   []ModName
	catMod      bool
	outputSize  int
}

// Plain returns the alphabet of a canonical-only model.
func Plain() *Map {
	return &Map{
		output:      CanAlphabet,
		can:         CanAlphabet,
		canNmods:    make([]int, len(CanAlphabet)),
		canIndices:  []int{0, 1, 2, 3},
		canBaseMods: map[byte]string{},
		modIndex:    map[byte]int{},
		outputSize:  FlipFlopSize,
	}
}

// CatMod derives the alphabet of a modification-aware model from its output
// alphabet and per-canonical-base modification counts. When longNames is
// empty each modification symbol doubles as its own long name.
func CatMod(output string, canNmods []int, longNames []ModName) (*Map, error) {
	if len(canNmods) == 0 {
		return nil, fmt.Errorf("no canonical bases declared")
	}
	want := 0
	nmods := 0
	for i, n := range canNmods {
		if n < 0 {
			return nil, fmt.Errorf("negative modification count %d for canonical base %d", n, i)
		}
		want += n + 1
		nmods += n
	}
	if len(output) != want {
		return nil, fmt.Errorf("output alphabet %q has %d symbols, modification counts imply %d", output, len(output), want)
	}
	seen := make(map[byte]bool, len(output))
	for i := 0; i < len(output); i++ {
		if seen[output[i]] {
			return nil, fmt.Errorf("duplicate symbol %q in output alphabet %q", output[i], output)
		}
		seen[output[i]] = true
	}

	m := &Map{
		output:      output,
		canNmods:    append([]int(nil), canNmods...),
		canIndices:  make([]int, len(canNmods)),
		canBaseMods: make(map[byte]string, len(canNmods)),
		modIndex:    make(map[byte]int, nmods),
		catMod:      true,
		outputSize:  FlipFlopSize + nmods + 1,
	}
	var can strings.Builder
	off := 0
	for i, n := range canNmods {
		m.canIndices[i] = off
		base := output[off]
		can.WriteByte(base)
		mods := output[off+1 : off+1+n]
		if n > 0 {
			m.canBaseMods[base] = mods
		}
		for j := 0; j < len(mods); j++ {
			m.modIndex[mods[j]] = j
		}
		off += n + 1
	}
	m.can = can.String()

	if len(longNames) == 0 {
		for i := 0; i < len(output); i++ {
			if _, ok := m.modIndex[output[i]]; ok {
				s := string(output[i])
				m.longNames = append(m.longNames, ModName{Short: s, Long: s})
			}
		}
		return m, nil
	}
	if len(longNames) != nmods {
		return nil, fmt.Errorf("%d modification long names for %d modification symbols", len(longNames), nmods)
	}
	for _, ln := range longNames {
		if len(ln.Short) != 1 {
			return nil, fmt.Errorf("modification symbol %q is not a single character", ln.Short)
		}
		if _, ok := m.modIndex[ln.Short[0]]; !ok {
			return nil, fmt.Errorf("long name given for unknown modification symbol %q", ln.Short)
		}
	}
	m.longNames = append([]ModName(nil), longNames...)
	return m, nil
}

// WithOutputSize returns a copy of m whose output vector width is n.
func (m *Map) WithOutputSize(n int) *Map {
	cp := *m
	cp.outputSize = n
	return &cp
}

// IsCatMod reports whether the model emits modification outputs.
func (m *Map) IsCatMod() bool { return m.catMod }

// OutputAlphabet returns every output symbol, canonical bases first in each run.
func (m *Map) OutputAlphabet() string { return m.output }

// CanAlphabet returns the canonical bases in output order.
func (m *Map) CanAlphabet() string { return m.can }

// NMods returns the total number of modification symbols.
func (m *Map) NMods() int { return len(m.modIndex) }

// OutputSize returns the width of one network output row.
func (m *Map) OutputSize() int { return m.outputSize }

// CanNmods returns the per-canonical-base modification counts.
func (m *Map) CanNmods() []int { return append([]int(nil), m.canNmods...) }

// CanIndices returns the offset of each canonical base in the output alphabet.
func (m *Map) CanIndices() []int { return append([]int(nil), m.canIndices...) }

// Mods returns the modification symbols of canonical base b, in alphabet order.
func (m *Map) Mods(b byte) string { return m.canBaseMods[b] }

// CanBaseMods returns canonical base -> modification symbols for every
// canonical base carrying at least one modification.
func (m *Map) CanBaseMods() map[string]string {
	out := make(map[string]string, len(m.canBaseMods))
	for b, mods := range m.canBaseMods {
		out[string(b)] = mods
	}
	return out
}

// ModIndex returns the 0-based index of sym within its canonical base's run
// of modification symbols.
func (m *Map) ModIndex(sym byte) (int, bool) {
	i, ok := m.modIndex[sym]
	return i, ok
}

// CanBaseOf returns the canonical base whose run contains sym.
func (m *Map) CanBaseOf(sym byte) (byte, bool) {
	for i, off := range m.canIndices {
		end := off + m.canNmods[i] + 1
		if idx := strings.IndexByte(m.output[off:end], sym); idx >= 0 {
			return m.output[off], true
		}
	}
	return 0, false
}

// ModLongNames returns the (symbol, long name) pairs in output order.
func (m *Map) ModLongNames() []ModName { return append([]ModName(nil), m.longNames...) }

// Runs returns each canonical base followed by its modification symbols.
// Concatenating the runs yields the output alphabet.
func (m *Map) Runs() []string {
	out := make([]string, len(m.can))
	for i := 0; i < len(m.can); i++ {
		out[i] = string(m.can[i]) + m.canBaseMods[m.can[i]]
	}
	return out
}
