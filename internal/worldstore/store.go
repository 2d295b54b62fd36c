package worldstore

import (
	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

// Ground is the read-only elevation accessor the store needs to resolve
// ground-relative writes. Satisfied by *ground.Ground; kept as a narrow
// interface here so worldstore doesn't import ground (and vice versa).
type Ground interface {
	Level(localX, localZ int32) int32
}

// GetAbsoluteY returns ground.Level(x,z) + yOffset, per spec.md §4.4.
func GetAbsoluteY(g Ground, x, z, yOffset int32) int32 {
	return g.Level(x, z) + yOffset
}

// SetBlock places b at (x, ground(x,z)+yOffset, z), ground-relative.
func (w *WorldStore) SetBlock(g Ground, b blockcat.Block, x, yOffset, z int32, whitelist, blacklist []blockcat.Block) bool {
	y := GetAbsoluteY(g, x, z, yOffset)
	return w.SetBlockAbsolute(b, x, y, z, whitelist, blacklist)
}

// SetBlockAbsolute places b at (x, y, z), applying the override policy from
// spec.md §4.4. Returns true if a write occurred.
func (w *WorldStore) SetBlockAbsolute(b blockcat.Block, x, y, z int32, whitelist, blacklist []blockcat.Block) bool {
	if !w.bbox.Contains(coordsys.XZPoint{X: x, Z: z}) {
		return false
	}
	y = coordsys.ClampY(y)

	existing := w.blockAtAbsolute(x, y, z)
	if !decideWrite(existing, whitelist, blacklist) {
		return false
	}

	c := w.chunkAt(x, z)
	sy := coordsys.YToSection(y)
	sec := c.sectionFor(sy)
	li := coordsys.SectionLocalIndex(coordsys.BlockLocal(x), coordsys.YLocal(y), coordsys.BlockLocal(z))
	sec.Set(li, b)
	return true
}

// decideWrite implements the five-step override policy in spec.md §4.4.
// The bbox/Y-range checks (steps covered by callers) are not repeated here.
func decideWrite(existing blockcat.Block, whitelist, blacklist []blockcat.Block) bool {
	if existing.IsAir() {
		return true
	}
	if whitelist != nil {
		return containsBlock(whitelist, existing)
	}
	if blacklist != nil {
		return !containsBlock(blacklist, existing)
	}
	return false
}

func containsBlock(list []blockcat.Block, b blockcat.Block) bool {
	for _, l := range list {
		if l.Equal(b) {
			return true
		}
	}
	return false
}

// FillBlocksAbsolute fills the inclusive cuboid [x0,x1]x[y0,y1]x[z0,z1] with b.
func (w *WorldStore) FillBlocksAbsolute(b blockcat.Block, x0, y0, z0, x1, y1, z1 int32, whitelist, blacklist []blockcat.Block) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if z1 < z0 {
		z0, z1 = z1, z0
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				w.SetBlockAbsolute(b, x, y, z, whitelist, blacklist)
			}
		}
	}
}

// FillBlocks fills a ground-relative cuboid: the Y range is relative to each
// column's own ground level, so a fill across varying terrain keeps a
// constant height above ground rather than a constant absolute Y.
func (w *WorldStore) FillBlocks(g Ground, b blockcat.Block, x0, yOff0, z0, x1, yOff1, z1 int32, whitelist, blacklist []blockcat.Block) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if z1 < z0 {
		z0, z1 = z1, z0
	}
	if yOff1 < yOff0 {
		yOff0, yOff1 = yOff1, yOff0
	}
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			base := g.Level(x, z)
			for yo := yOff0; yo <= yOff1; yo++ {
				w.SetBlockAbsolute(b, x, base+yo, z, whitelist, blacklist)
			}
		}
	}
}

// BlockAt returns the block at a ground-relative position.
func (w *WorldStore) BlockAt(g Ground, x, yOffset, z int32) blockcat.Block {
	y := GetAbsoluteY(g, x, z, yOffset)
	return w.blockAtAbsolute(x, y, z)
}

func (w *WorldStore) blockAtAbsolute(x, y, z int32) blockcat.Block {
	if !w.bbox.Contains(coordsys.XZPoint{X: x, Z: z}) {
		return blockcat.Air
	}
	cp := coordsys.ChunkPos{X: coordsys.BlockToChunk(x), Z: coordsys.BlockToChunk(z)}
	rp := cp.Region()
	r, ok := w.regions[rp]
	if !ok {
		return blockcat.Air
	}
	cxir, czir := cp.ChunkInRegion()
	c := r.Chunks[cxir][czir]
	if c == nil {
		return blockcat.Air
	}
	sy := coordsys.YToSection(coordsys.ClampY(y))
	sec, ok := c.Sections[sy]
	if !ok {
		return blockcat.Air
	}
	li := coordsys.SectionLocalIndex(coordsys.BlockLocal(x), coordsys.YLocal(coordsys.ClampY(y)), coordsys.BlockLocal(z))
	return sec.At(li)
}

// CheckForBlock reports whether the block at a ground-relative position is
// in the given whitelist.
func (w *WorldStore) CheckForBlock(g Ground, x, yOffset, z int32, whitelist []blockcat.Block) bool {
	return containsBlock(whitelist, w.BlockAt(g, x, yOffset, z))
}

// SetSign writes a sign block (with the given rotation baked into its
// properties) and a matching block-entity text record.
func (w *WorldStore) SetSign(woodType string, line1, line2, line3, line4 string, x, y, z int32, rotation int) {
	if !w.bbox.Contains(coordsys.XZPoint{X: x, Z: z}) {
		return
	}
	b := blockcat.SignStanding(woodType, rotation)
	w.SetBlockAbsolute(b, x, y, z, nil, nil)

	c := w.chunkAt(x, z)
	c.AddSign(SignEntity{X: x, Y: y, Z: z, Lines: [4]string{line1, line2, line3, line4}})
}
