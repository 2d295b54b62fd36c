package worldstore

import (
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

type flatGround struct{ y int32 }

func (f flatGround) Level(_, _ int32) int32 { return f.y }

func mustBBox(t *testing.T, minX, minZ, maxX, maxZ int32) coordsys.XZBBox {
	t.Helper()
	b, err := coordsys.NewXZBBox(minX, minZ, maxX, maxZ)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSetBlockOutOfBBoxIsNoop(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 0}

	if ok := w.SetBlock(g, blockcat.Stone, 100, 0, 100, nil, nil); ok {
		t.Fatal("expected out-of-bbox write to be rejected")
	}
	if got := w.BlockAt(g, 100, 0, 100); !got.IsAir() {
		t.Fatalf("expected air, got %v", got.Name())
	}
}

func TestOverridePolicyAirAlwaysWritable(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 0}

	if !w.SetBlock(g, blockcat.Stone, 1, 0, 1, nil, nil) {
		t.Fatal("expected write onto air to succeed")
	}
	if got := w.BlockAt(g, 1, 0, 1); !got.Equal(blockcat.Stone) {
		t.Fatalf("expected stone, got %v", got.Name())
	}
}

func TestOverridePolicyNoListsBlocksOverwrite(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 0}

	w.SetBlock(g, blockcat.Stone, 1, 0, 1, nil, nil)
	if w.SetBlock(g, blockcat.Dirt, 1, 0, 1, nil, nil) {
		t.Fatal("expected second write with no lists to be rejected")
	}
	if got := w.BlockAt(g, 1, 0, 1); !got.Equal(blockcat.Stone) {
		t.Fatalf("expected stone to survive, got %v", got.Name())
	}
}

func TestOverridePolicyWhitelist(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 0}

	w.SetBlock(g, blockcat.Sponge, 1, 0, 1, nil, nil)

	if w.SetBlock(g, blockcat.Dirt, 1, 0, 1, []blockcat.Block{blockcat.Stone}, nil) {
		t.Fatal("expected write rejected: sponge not in whitelist")
	}
	if !w.SetBlock(g, blockcat.Dirt, 1, 0, 1, []blockcat.Block{blockcat.Sponge}, nil) {
		t.Fatal("expected write accepted: sponge is in whitelist")
	}
	if got := w.BlockAt(g, 1, 0, 1); !got.Equal(blockcat.Dirt) {
		t.Fatalf("expected dirt, got %v", got.Name())
	}
}

func TestOverridePolicyBlacklist(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 0}

	w.SetBlock(g, blockcat.Sponge, 1, 0, 1, nil, nil)

	if w.SetBlock(g, blockcat.Dirt, 1, 0, 1, nil, []blockcat.Block{blockcat.Sponge}) {
		t.Fatal("expected write rejected: sponge is blacklisted")
	}
	w.SetBlock(g, blockcat.Water, 2, 0, 2, nil, nil)
	if !w.SetBlock(g, blockcat.Dirt, 2, 0, 2, nil, []blockcat.Block{blockcat.Sponge}) {
		t.Fatal("expected write accepted: water not in blacklist")
	}
}

func TestGroundRelativeOffset(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)
	g := flatGround{y: 64}

	w.SetBlock(g, blockcat.Stone, 5, 3, 5, nil, nil)
	if got := w.BlockAt(g, 5, 3, 5); !got.Equal(blockcat.Stone) {
		t.Fatalf("expected stone at ground+3, got %v", got.Name())
	}
	if got := w.blockAtAbsolute(5, 67, 5); !got.Equal(blockcat.Stone) {
		t.Fatalf("expected stone at absolute y=67, got %v", got.Name())
	}
}

func TestPropertyOverridesSurviveSharedBarePalette(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)

	north := blockcat.Stairs("oak", blockcat.North, false)
	south := blockcat.Stairs("oak", blockcat.South, true)

	w.SetBlockAbsolute(north, 1, 0, 1, nil, nil)
	w.SetBlockAbsolute(south, 2, 0, 2, nil, nil)

	if got := w.blockAtAbsolute(1, 0, 1); !got.Equal(north) {
		t.Fatalf("expected %v, got %v", north.Name(), got.Properties())
	}
	if got := w.blockAtAbsolute(2, 0, 2); !got.Equal(south) {
		t.Fatalf("expected %v, got %v", south.Name(), got.Properties())
	}
}

func TestSignPlacementRecordsBlockEntity(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 10, 10)
	w := New(bbox)

	w.SetSign("oak", "a", "b", "c", "d", 3, 5, 3, 4)

	cp := coordsys.ChunkPos{X: 0, Z: 0}
	rp := cp.Region()
	r := w.regions[rp]
	cxir, czir := cp.ChunkInRegion()
	c := r.Chunks[cxir][czir]
	if len(c.Signs) != 1 {
		t.Fatalf("expected 1 sign, got %d", len(c.Signs))
	}
	if c.Signs[0].Lines[2] != "c" {
		t.Fatalf("unexpected sign text: %+v", c.Signs[0])
	}
}

func TestSparseChunkInvariant(t *testing.T) {
	bbox := mustBBox(t, 0, 0, 100, 100)
	w := New(bbox)
	count := 0
	w.ForEachRegion(func(rp coordsys.RegionPos, r *Region) {
		r.ForEachChunk(func(x, z int, c *Chunk) { count++ })
	})
	if count != 0 {
		t.Fatalf("expected no chunks in an untouched store, got %d", count)
	}
}
