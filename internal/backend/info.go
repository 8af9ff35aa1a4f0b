package backend

import "basecaller/pkg/types"

// Describe renders b's metadata for the HTTP and CLI surfaces.
func Describe(b Backend) types.ModelInfo {
	a := b.Alphabet()
	info := types.ModelInfo{
		Backend:        string(b.Kind()),
		Model:          b.Model(),
		OutputAlphabet: a.OutputAlphabet(),
		CanAlphabet:    a.CanAlphabet(),
		OutputSize:     a.OutputSize(),
		NMods:          a.NMods(),
		Devices:        b.Assignment().Strings(),
	}
	if a.IsCatMod() {
		info.CanNmods = a.CanNmods()
		info.CanBaseMods = a.CanBaseMods()
		for _, n := range a.ModLongNames() {
			info.ModLongNames = append(info.ModLongNames, types.ModName{Short: n.Short, Long: n.Long})
		}
	}
	return info
}
