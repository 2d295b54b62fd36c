// Package leveldat implements the spec.md §6.4/§4.9-phase-6 level.dat patch:
// spawn point, flat-world generator settings for a freshly created world,
// and the target DataVersion, built on the low-level nbt package the Anvil
// writer also uses.
package leveldat

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/OCharnyshevich/arnisgo/internal/nbt"
)

// SpawnPoint is the player/world spawn location, already clamped to the
// selection bbox by the caller (spec.md §6.4: "clamped to bbox").
type SpawnPoint struct {
	X, Y, Z int32
}

// Patch updates level.dat bytes for a run. If existing is empty (no prior
// world directory), a fresh minimal level.dat is built with a flat-world
// generator; otherwise only the spawn point and DataVersion are patched and
// any existing world-generation settings are left untouched (spec.md §6.4:
// "otherwise leave world-generation untouched").
func Patch(existing []byte, spawn *SpawnPoint, dataVersion int32) ([]byte, error) {
	if len(existing) == 0 {
		return buildFresh(dataVersion, spawn)
	}
	return patchExisting(existing, spawn, dataVersion)
}

func patchExisting(existing []byte, spawn *SpawnPoint, dataVersion int32) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(existing))
	if err != nil {
		return nil, fmt.Errorf("leveldat: ungzip: %w", err)
	}
	defer gr.Close()
	raw, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("leveldat: read: %w", err)
	}

	root, err := nbt.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("leveldat: decode: %w", err)
	}

	rootChildren, _ := root.Payload.([]*nbt.Tag)
	for _, c := range rootChildren {
		if c.Name != "Data" {
			continue
		}
		dataChildren, _ := c.Payload.([]*nbt.Tag)
		dataChildren = setInt(dataChildren, "DataVersion", dataVersion)
		if spawn != nil {
			dataChildren = setInt(dataChildren, "SpawnX", spawn.X)
			dataChildren = setInt(dataChildren, "SpawnY", spawn.Y)
			dataChildren = setInt(dataChildren, "SpawnZ", spawn.Z)
		}
		c.Payload = dataChildren
	}

	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.WriteTag("", root)
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("leveldat: encode: %w", err)
	}
	return gzipBytes(buf.Bytes())
}

func setInt(children []*nbt.Tag, name string, v int32) []*nbt.Tag {
	for _, c := range children {
		if c.Name == name {
			c.Type = nbt.TagInt
			c.Payload = v
			return children
		}
	}
	return append(children, &nbt.Tag{Type: nbt.TagInt, Name: name, Payload: v})
}

// buildFresh constructs a minimal valid level.dat for a brand-new world:
// flat generator (bedrock/dirt/grass_block), the given or default spawn,
// and the target DataVersion.
func buildFresh(dataVersion int32, spawn *SpawnPoint) ([]byte, error) {
	sx, sy, sz := int32(0), int32(150), int32(0) // 150: safe default above terrain (original_source/src/world_utils.rs)
	if spawn != nil {
		sx, sy, sz = spawn.X, spawn.Y, spawn.Z
	}

	layers := []*nbt.Tag{
		flatLayer("minecraft:bedrock", 1),
		flatLayer("minecraft:dirt", 2),
		flatLayer("minecraft:grass_block", 1),
	}

	generator := &nbt.Tag{Type: nbt.TagCompound, Name: "generator", Payload: []*nbt.Tag{
		{Type: nbt.TagString, Name: "type", Payload: "minecraft:flat"},
		{Type: nbt.TagCompound, Name: "settings", Payload: []*nbt.Tag{
			{Type: nbt.TagString, Name: "biome", Payload: "minecraft:plains"},
			{Type: nbt.TagList, Name: "layers", Payload: layers},
		}},
	}}

	overworld := &nbt.Tag{Type: nbt.TagCompound, Name: "minecraft:overworld", Payload: []*nbt.Tag{
		{Type: nbt.TagString, Name: "type", Payload: "minecraft:overworld"},
		generator,
	}}

	worldGen := &nbt.Tag{Type: nbt.TagCompound, Name: "WorldGenSettings", Payload: []*nbt.Tag{
		{Type: nbt.TagLong, Name: "seed", Payload: int64(0)},
		{Type: nbt.TagByte, Name: "generate_features", Payload: byte(1)},
		{Type: nbt.TagCompound, Name: "dimensions", Payload: []*nbt.Tag{overworld}},
	}}

	data := &nbt.Tag{Type: nbt.TagCompound, Name: "Data", Payload: []*nbt.Tag{
		{Type: nbt.TagInt, Name: "DataVersion", Payload: dataVersion},
		{Type: nbt.TagString, Name: "LevelName", Payload: "arnisgo world"},
		{Type: nbt.TagLong, Name: "LastPlayed", Payload: time.Now().UnixMilli()},
		{Type: nbt.TagInt, Name: "GameType", Payload: int32(0)},
		{Type: nbt.TagInt, Name: "SpawnX", Payload: sx},
		{Type: nbt.TagInt, Name: "SpawnY", Payload: sy},
		{Type: nbt.TagInt, Name: "SpawnZ", Payload: sz},
		worldGen,
	}}

	root := &nbt.Tag{Type: nbt.TagCompound, Payload: []*nbt.Tag{data}}

	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.WriteTag("", root)
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("leveldat: encode: %w", err)
	}
	return gzipBytes(buf.Bytes())
}

func flatLayer(block string, height int32) *nbt.Tag {
	return &nbt.Tag{Type: nbt.TagCompound, Payload: []*nbt.Tag{
		{Type: nbt.TagString, Name: "block", Payload: block},
		{Type: nbt.TagInt, Name: "height", Payload: height},
	}}
}

func gzipBytes(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(raw); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
