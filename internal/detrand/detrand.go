// Package detrand provides the two deterministic RNG streams every element
// processor uses (spec.md §4.8 "Determinism"): one seeded by an OSM element
// id, one seeded by a world coordinate plus element id. The same element (or
// cell) always yields the same stream, regardless of which processing unit
// handles it or in what order, which is what makes output byte-identical
// across runs and across unit-boundary splits (spec.md §8).
package detrand

import "math/rand/v2"

// ElementRNG returns a stream seeded from an element's stable id.
func ElementRNG(elementID uint64) *rand.Rand {
	return rand.New(rand.NewPCG(elementID, elementID))
}

// ElementRNGSalted returns an independent stream for the same element, for
// callers that need more than one uncorrelated sequence from one element
// (e.g. wall color and roof style).
func ElementRNGSalted(elementID, salt uint64) *rand.Rand {
	combined := elementID ^ rotl64(salt, 32)
	return rand.New(rand.NewPCG(combined, salt))
}

// CoordRNG returns a stream seeded from a world cell and an element id, for
// per-block randomness (flower scatter, tree placement) that must stay
// stable regardless of iteration order.
func CoordRNG(x, z int32, elementID uint64) *rand.Rand {
	coordPart := (uint64(uint32(x)) << 32) | uint64(uint32(z))
	seed := coordPart ^ elementID
	return rand.New(rand.NewPCG(seed, coordPart))
}

func rotl64(v uint64, n uint) uint64 {
	return (v << n) | (v >> (64 - n))
}
