package worldstore

import "github.com/OCharnyshevich/arnisgo/internal/coordsys"

// Region is a 32x32 grid of chunks. Absent chunks are nil, matching the
// sparse invariant: a region only ever holds chunks that were actually
// written to.
type Region struct {
	Chunks [32][32]*Chunk // indexed by (chunk_x & 31, chunk_z & 31)
}

func newRegion() *Region { return &Region{} }

func (r *Region) chunkFor(cxInRegion, czInRegion int) *Chunk {
	c := r.Chunks[cxInRegion][czInRegion]
	if c == nil {
		c = newChunk()
		r.Chunks[cxInRegion][czInRegion] = c
	}
	return c
}

// ForEachChunk calls fn for every present chunk in the region, with its
// chunk-in-region coordinates.
func (r *Region) ForEachChunk(fn func(cxInRegion, czInRegion int, c *Chunk)) {
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			if c := r.Chunks[x][z]; c != nil {
				fn(x, z, c)
			}
		}
	}
}

// WorldStore is a sparse map from region position to Region. It is owned
// exclusively by one processing unit for its lifetime (spec.md §3
// ownership rules): created at the start of a unit, destroyed once that
// unit's region file has been serialized.
type WorldStore struct {
	bbox    coordsys.XZBBox
	regions map[coordsys.RegionPos]*Region
}

// New creates an empty WorldStore scoped to bbox; every write outside bbox
// is silently discarded (spec.md §3 invariant 1).
func New(bbox coordsys.XZBBox) *WorldStore {
	return &WorldStore{bbox: bbox, regions: make(map[coordsys.RegionPos]*Region)}
}

// BBox returns the store's selection bounding box.
func (w *WorldStore) BBox() coordsys.XZBBox { return w.bbox }

func (w *WorldStore) regionFor(rp coordsys.RegionPos) *Region {
	r, ok := w.regions[rp]
	if !ok {
		r = newRegion()
		w.regions[rp] = r
	}
	return r
}

// ForEachRegion calls fn for every region with at least one written chunk.
func (w *WorldStore) ForEachRegion(fn func(rp coordsys.RegionPos, r *Region)) {
	for rp, r := range w.regions {
		fn(rp, r)
	}
}

// chunkAt lazily allocates the chunk containing world block (x, z).
func (w *WorldStore) chunkAt(x, z int32) *Chunk {
	cp := coordsys.ChunkPos{X: coordsys.BlockToChunk(x), Z: coordsys.BlockToChunk(z)}
	rp := cp.Region()
	cxir, czir := cp.ChunkInRegion()
	return w.regionFor(rp).chunkFor(cxir, czir)
}
