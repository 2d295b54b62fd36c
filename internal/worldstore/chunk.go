package worldstore

// SignEntity is a block-entity record for a placed sign (spec.md §4.4's
// set_sign primitive: the palette entry carries rotation, this carries text).
type SignEntity struct {
	X, Y, Z int32
	Lines   [4]string
}

// Chunk is a sparse map from section-Y to Section plus any block entities
// placed in it. A chunk exists in the store only once at least one of its
// blocks has been written (spec.md §3 invariant 3): the zero value is never
// inserted into a WorldStore directly, callers always go through
// WorldStore.chunkAt which lazily allocates.
type Chunk struct {
	Sections map[int32]*Section // key: section-Y, e.g. -4..19
	Signs    []SignEntity
}

func newChunk() *Chunk {
	return &Chunk{Sections: make(map[int32]*Section)}
}

func (c *Chunk) sectionFor(sy int32) *Section {
	s, ok := c.Sections[sy]
	if !ok {
		s = newSection()
		c.Sections[sy] = s
	}
	return s
}

// AddSign appends a sign entity, replacing any existing entity at the same
// coordinate (DESIGN.md Open Question: new sign discards old block-entity
// fields rather than merging).
func (c *Chunk) AddSign(e SignEntity) {
	for i := range c.Signs {
		if c.Signs[i].X == e.X && c.Signs[i].Y == e.Y && c.Signs[i].Z == e.Z {
			c.Signs[i] = e
			return
		}
	}
	c.Signs = append(c.Signs, e)
}
