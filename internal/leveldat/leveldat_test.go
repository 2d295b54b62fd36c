package leveldat

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/OCharnyshevich/arnisgo/internal/nbt"
)

func decodeData(t *testing.T, gz []byte) []*nbt.Tag {
	t.Helper()
	gr, err := gzip.NewReader(bytes.NewReader(gz))
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	defer gr.Close()
	raw, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	root, err := nbt.Decode(raw)
	if err != nil {
		t.Fatalf("nbt decode: %v", err)
	}
	children, _ := root.Payload.([]*nbt.Tag)
	for _, c := range children {
		if c.Name == "Data" {
			data, _ := c.Payload.([]*nbt.Tag)
			return data
		}
	}
	t.Fatal("no Data compound found")
	return nil
}

func findInt(t *testing.T, children []*nbt.Tag, name string) int32 {
	t.Helper()
	for _, c := range children {
		if c.Name == name {
			v, ok := c.Payload.(int32)
			if !ok {
				t.Fatalf("%s: not an int32 payload: %#v", name, c.Payload)
			}
			return v
		}
	}
	t.Fatalf("%s not found", name)
	return 0
}

func TestPatchBuildsFreshWorldWithSpawn(t *testing.T) {
	spawn := &SpawnPoint{X: 10, Y: 70, Z: -5}
	out, err := Patch(nil, spawn, 3700)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}

	data := decodeData(t, out)
	if got := findInt(t, data, "DataVersion"); got != 3700 {
		t.Errorf("DataVersion = %d, want 3700", got)
	}
	if got := findInt(t, data, "SpawnX"); got != 10 {
		t.Errorf("SpawnX = %d, want 10", got)
	}
	if got := findInt(t, data, "SpawnY"); got != 70 {
		t.Errorf("SpawnY = %d, want 70", got)
	}
	if got := findInt(t, data, "SpawnZ"); got != -5 {
		t.Errorf("SpawnZ = %d, want -5", got)
	}

	found := false
	for _, c := range data {
		if c.Name == "WorldGenSettings" {
			found = true
		}
	}
	if !found {
		t.Error("expected WorldGenSettings in a freshly built level.dat")
	}
}

func TestPatchExistingPreservesUnrelatedFields(t *testing.T) {
	fresh, err := Patch(nil, nil, 3700)
	if err != nil {
		t.Fatalf("build fresh: %v", err)
	}

	patched, err := Patch(fresh, &SpawnPoint{X: 1, Y: 2, Z: 3}, 3701)
	if err != nil {
		t.Fatalf("patch existing: %v", err)
	}

	data := decodeData(t, patched)
	if got := findInt(t, data, "DataVersion"); got != 3701 {
		t.Errorf("DataVersion = %d, want 3701", got)
	}
	if got := findInt(t, data, "SpawnX"); got != 1 {
		t.Errorf("SpawnX = %d, want 1", got)
	}

	foundGen := false
	for _, c := range data {
		if c.Name == "WorldGenSettings" {
			foundGen = true
		}
	}
	if !foundGen {
		t.Error("expected WorldGenSettings to survive the patch untouched")
	}
}

func TestPatchExistingWithNoSpawnLeavesSpawnUntouched(t *testing.T) {
	fresh, err := Patch(nil, &SpawnPoint{X: 5, Y: 6, Z: 7}, 3700)
	if err != nil {
		t.Fatalf("build fresh: %v", err)
	}

	patched, err := Patch(fresh, nil, 3700)
	if err != nil {
		t.Fatalf("patch existing: %v", err)
	}

	data := decodeData(t, patched)
	if got := findInt(t, data, "SpawnX"); got != 5 {
		t.Errorf("SpawnX = %d, want unchanged 5", got)
	}
}
