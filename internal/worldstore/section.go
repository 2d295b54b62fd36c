package worldstore

import "github.com/OCharnyshevich/arnisgo/internal/blockcat"

// Section is a fixed 16x16x16 block cube. The hot array stores a dense
// index into a small local palette of "bare" blocks (name only); per-cell
// property overrides live in a separate sparse sidecar, so the hot array
// stays a slab of cheap identifiers even for blocks with many property
// variants (stairs, slabs, signs).
type Section struct {
	blocks     [4096]uint16
	palette    []blockcat.Block  // index 0 is always air
	paletteIdx map[string]uint16 // bare block name -> palette index
	overrides  map[int]map[string]string
}

func newSection() *Section {
	s := &Section{
		palette:    []blockcat.Block{blockcat.Air},
		paletteIdx: map[string]uint16{blockcat.Air.Name(): 0},
	}
	return s
}

func bareKey(b blockcat.Block) string { return b.Name() }

func bare(b blockcat.Block) blockcat.Block {
	return blockcat.New(trimNamespace(b.Name()))
}

func trimNamespace(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[i+1:]
		}
	}
	return name
}

func (s *Section) internBare(b blockcat.Block) uint16 {
	k := bareKey(b)
	if idx, ok := s.paletteIdx[k]; ok {
		return idx
	}
	idx := uint16(len(s.palette))
	s.palette = append(s.palette, bare(b))
	s.paletteIdx[k] = idx
	return idx
}

// Set places b at the section-local index i, recording any properties in
// the override sidecar.
func (s *Section) Set(i int, b blockcat.Block) {
	idx := s.internBare(b)
	s.blocks[i] = idx
	if props := b.Properties(); len(props) > 0 {
		if s.overrides == nil {
			s.overrides = make(map[int]map[string]string)
		}
		s.overrides[i] = props
	} else if s.overrides != nil {
		delete(s.overrides, i)
	}
}

// At reconstructs the effective block at local index i.
func (s *Section) At(i int) blockcat.Block {
	base := s.palette[s.blocks[i]]
	if s.overrides != nil {
		if props, ok := s.overrides[i]; ok {
			return base.WithProps(props)
		}
	}
	return base
}

// IsAir reports whether the cell at local index i is air.
func (s *Section) IsAir(i int) bool {
	return s.palette[s.blocks[i]].IsAir()
}

// ForEach calls fn for every non-air cell in the section, local index first.
func (s *Section) ForEach(fn func(i int, b blockcat.Block)) {
	for i := 0; i < 4096; i++ {
		if !s.IsAir(i) {
			fn(i, s.At(i))
		}
	}
}

// Empty reports whether the section has no non-air blocks at all.
func (s *Section) Empty() bool {
	for i := 0; i < 4096; i++ {
		if !s.IsAir(i) {
			return false
		}
	}
	return true
}
