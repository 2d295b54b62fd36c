package driver

import (
	"context"
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/ground"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

func flatTestGround(t *testing.T, bbox coordsys.XZBBox, baseY int32) *ground.Ground {
	t.Helper()
	return ground.New(context.Background(), false, bbox, 1.0, baseY, nil, slog.Default())
}

func TestGenerateGroundLayerFlatColumn(t *testing.T) {
	bbox, err := coordsys.NewXZBBox(0, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := flatTestGround(t, bbox, 0)
	store := worldstore.New(bbox)

	GenerateGroundLayer(store, g, bbox)

	cases := []struct {
		y    int32
		want blockcat.Block
	}{
		{coordsys.YMin, blockcat.Bedrock},
		{coordsys.YMin + 1, blockcat.Stone},
		{-3, blockcat.Stone},
		{-2, blockcat.Dirt},
		{-1, blockcat.Dirt},
		{0, blockcat.GrassBlock},
	}
	for _, c := range cases {
		got := store.BlockAt(g, 1, c.y, 1)
		if !got.Equal(c.want) {
			t.Errorf("y=%d: got %v, want %v", c.y, got.Name(), c.want.Name())
		}
	}
	if got := store.BlockAt(g, 1, 1, 1); !got.IsAir() {
		t.Errorf("expected air above ground surface, got %v", got.Name())
	}
}

func TestGenerateGroundLayerDoesNotOverwriteEarlierClaim(t *testing.T) {
	bbox, err := coordsys.NewXZBBox(0, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := flatTestGround(t, bbox, 0)
	store := worldstore.New(bbox)

	store.SetBlockAbsolute(blockcat.Water, 1, 0, 1, nil, nil)
	GenerateGroundLayer(store, g, bbox)

	if got := store.BlockAt(g, 1, 0, 1); !got.Equal(blockcat.Water) {
		t.Errorf("expected pre-claimed water to survive ground layer, got %v", got.Name())
	}
}

func TestSurfaceBlockGrassWhenGroundDisabled(t *testing.T) {
	bbox, err := coordsys.NewXZBBox(0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	g := flatTestGround(t, bbox, 0)
	// Disabled ground always reports Enabled() == false, so surfaceBlock
	// must fall back to grass regardless of the column's level.
	if got := surfaceBlock(g, 100); got != blockcat.GrassBlock {
		t.Errorf("disabled ground: got %v, want grass", got.Name())
	}
}
