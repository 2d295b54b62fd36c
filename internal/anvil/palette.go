package anvil

import (
	"math/bits"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

// sectionPalette is the per-section block_states palette plus the
// index-per-cell array it was built from, before bit-packing.
type sectionPalette struct {
	blocks  []blockcat.Block
	indices [4096]int
}

// buildPalette walks every cell of sec in y*256+z*16+x order (spec.md §4.6)
// and assigns each distinct (name, properties) pair a palette slot.
func buildPalette(sec *worldstore.Section) sectionPalette {
	var sp sectionPalette
	keyIdx := make(map[string]int)
	for i := 0; i < 4096; i++ {
		b := sec.At(i)
		key := b.PaletteKey()
		idx, ok := keyIdx[key]
		if !ok {
			idx = len(sp.blocks)
			sp.blocks = append(sp.blocks, b)
			keyIdx[key] = idx
		}
		sp.indices[i] = idx
	}
	return sp
}

// bitsPerEntry returns the packed index width for a palette of the given
// size: at least 4 bits, enough to address every palette entry otherwise.
func bitsPerEntry(paletteLen int) int {
	if paletteLen <= 1 {
		return 0
	}
	b := bits.Len(uint(paletteLen - 1))
	if b < 4 {
		b = 4
	}
	return b
}

// packIndices packs indices into 64-bit longs, bitsPerEntry bits per entry,
// low bits first, no entry ever split across a long boundary (spec.md §4.6
// invariant: indices packed "long-aligned", unlike the pre-1.16 format).
func packIndices(indices [4096]int, bitsPerEntry int) []int64 {
	if bitsPerEntry == 0 {
		return nil
	}
	perLong := 64 / bitsPerEntry
	longCount := (4096 + perLong - 1) / perLong
	out := make([]int64, longCount)
	for i, v := range indices {
		longIdx := i / perLong
		bitOff := uint((i % perLong) * bitsPerEntry)
		out[longIdx] |= int64(uint64(v) << bitOff)
	}
	return out
}

// sectionYRange returns the lowest and highest section-Y keys present in
// sections, inclusive.
func sectionYRange(sections map[int32]*worldstore.Section) (lo, hi int32) {
	lo, hi = coordsys.YToSection(coordsys.YMax), coordsys.YToSection(coordsys.YMin)
	for sy := range sections {
		if sy < lo {
			lo = sy
		}
		if sy > hi {
			hi = sy
		}
	}
	return lo, hi
}
