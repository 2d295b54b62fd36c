package anvil

import (
	"bytes"

	"github.com/OCharnyshevich/arnisgo/internal/blockcat"
	"github.com/OCharnyshevich/arnisgo/internal/nbt"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

// DataVersionJava1_20_4 is the DataVersion stamped into every chunk and
// level.dat this package writes (DESIGN.md Open Question: pinned to a
// single target version for now, parameterized so a second one is additive).
const DataVersionJava1_20_4 int32 = 3700

// uniformBiome is the single biome every generated chunk is stamped with;
// OSM data carries no biome information, so every section gets a one-entry
// palette rather than a guessed classification.
const uniformBiome = "minecraft:plains"

// EncodeChunk serializes one chunk's sections and block entities into an
// uncompressed NBT byte stream, in the modern (1.18+) palette format.
func EncodeChunk(dataVersion int32, cx, cz int32, c *worldstore.Chunk) []byte {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.WriteTag("", buildChunkTag(dataVersion, cx, cz, c))
	return buf.Bytes()
}

// buildChunkTag assembles the full chunk compound as a generic Tag tree, so
// region.go can splice freshly generated sections alongside ones carried
// forward unread from an existing region file using the same representation.
func buildChunkTag(dataVersion, cx, cz int32, c *worldstore.Chunk) *nbt.Tag {
	loSec, hiSec := sectionYRange(c.Sections)

	var sections []*nbt.Tag
	for sy := loSec; sy <= hiSec && len(c.Sections) > 0; sy++ {
		sec, ok := c.Sections[sy]
		if !ok {
			continue
		}
		sections = append(sections, sectionTag(sy, sec))
	}

	children := []*nbt.Tag{
		{Type: nbt.TagInt, Name: "DataVersion", Payload: dataVersion},
		{Type: nbt.TagInt, Name: "xPos", Payload: cx},
		{Type: nbt.TagInt, Name: "zPos", Payload: cz},
		{Type: nbt.TagInt, Name: "yPos", Payload: loSec},
		{Type: nbt.TagString, Name: "Status", Payload: "minecraft:full"},
		{Type: nbt.TagByte, Name: "isLightOn", Payload: byte(1)},
		{Type: nbt.TagList, Name: "sections", Payload: sections},
		{Type: nbt.TagList, Name: "block_entities", Payload: signTags(c.Signs)},
		heightmapsTag(c, loSec, hiSec),
	}
	return &nbt.Tag{Type: nbt.TagCompound, Payload: children}
}

// sectionTag builds one section compound: block palette/data, a uniform
// biome palette, and full-bright lighting (consistent with isLightOn=1:
// spec.md leaves relighting to the client, so every section is lit as if
// fully exposed rather than computing real light propagation).
func sectionTag(sy int32, sec *worldstore.Section) *nbt.Tag {
	sp := buildPalette(sec)

	var palette []*nbt.Tag
	for _, b := range sp.blocks {
		palette = append(palette, paletteEntryTag(b))
	}
	blockStatesChildren := []*nbt.Tag{
		{Type: nbt.TagList, Name: "palette", Payload: palette},
	}
	if bpe := bitsPerEntry(len(sp.blocks)); bpe > 0 {
		blockStatesChildren = append(blockStatesChildren, &nbt.Tag{
			Type: nbt.TagLongArray, Name: "data", Payload: packIndices(sp.indices, bpe),
		})
	}

	biomesChildren := []*nbt.Tag{
		{Type: nbt.TagList, Name: "palette", Payload: []*nbt.Tag{
			{Type: nbt.TagString, Payload: uniformBiome},
		}},
	}

	return &nbt.Tag{Type: nbt.TagCompound, Payload: []*nbt.Tag{
		{Type: nbt.TagByte, Name: "Y", Payload: byte(int8(sy))},
		{Type: nbt.TagCompound, Name: "block_states", Payload: blockStatesChildren},
		{Type: nbt.TagCompound, Name: "biomes", Payload: biomesChildren},
		{Type: nbt.TagByteArray, Name: "BlockLight", Payload: nibblePlane(0x00)},
		{Type: nbt.TagByteArray, Name: "SkyLight", Payload: nibblePlane(0xFF)},
	}}
}

// nibblePlane returns a 2048-byte array packing 4096 4-bit values (two per
// byte), all equal to fill (0x00 or 0xFF: the only two values this package
// ever needs, since it never models partial light levels).
func nibblePlane(fill byte) []byte {
	out := make([]byte, 2048)
	for i := range out {
		out[i] = fill
	}
	return out
}

func paletteEntryTag(b blockcat.Block) *nbt.Tag {
	children := []*nbt.Tag{
		{Type: nbt.TagString, Name: "Name", Payload: b.Name()},
	}
	if pairs := b.PropertyPairs(); len(pairs) > 0 {
		var props []*nbt.Tag
		for _, kv := range pairs {
			props = append(props, &nbt.Tag{Type: nbt.TagString, Name: kv[0], Payload: kv[1]})
		}
		children = append(children, &nbt.Tag{Type: nbt.TagCompound, Name: "Properties", Payload: props})
	}
	return &nbt.Tag{Type: nbt.TagCompound, Payload: children}
}

// signTags converts a chunk's placed signs into block_entities list
// elements.
func signTags(signs []worldstore.SignEntity) []*nbt.Tag {
	var out []*nbt.Tag
	for _, s := range signs {
		out = append(out, signTag(s))
	}
	return out
}

func signTag(s worldstore.SignEntity) *nbt.Tag {
	children := []*nbt.Tag{
		{Type: nbt.TagString, Name: "id", Payload: "minecraft:sign"},
		{Type: nbt.TagInt, Name: "x", Payload: s.X},
		{Type: nbt.TagInt, Name: "y", Payload: s.Y},
		{Type: nbt.TagInt, Name: "z", Payload: s.Z},
	}
	for i, line := range s.Lines {
		children = append(children, &nbt.Tag{Type: nbt.TagString, Name: signLineKey(i), Payload: line})
	}
	return &nbt.Tag{Type: nbt.TagCompound, Payload: children}
}

func signLineKey(i int) string {
	switch i {
	case 0:
		return "Text1"
	case 1:
		return "Text2"
	case 2:
		return "Text3"
	default:
		return "Text4"
	}
}

// heightmapsTag computes MOTION_BLOCKING: one above the Y of the topmost
// non-air cell in each of the chunk's 256 columns, packed 9 bits per entry
// (spec.md §6.3).
func heightmapsTag(c *worldstore.Chunk, loSec, hiSec int32) *nbt.Tag {
	heights := make([]int, 256)
	for sy := hiSec; sy >= loSec; sy-- {
		sec, ok := c.Sections[sy]
		if !ok {
			continue
		}
		for local := 4095; local >= 0; local-- {
			if sec.IsAir(local) {
				continue
			}
			x := local & 0xF
			z := (local >> 4) & 0xF
			col := z*16 + x
			y := int(sy)*16 + (local >> 8) + 1
			if heights[col] == 0 || y > heights[col] {
				heights[col] = y
			}
		}
	}
	packed := packHeightmap(heights)
	return &nbt.Tag{Type: nbt.TagCompound, Name: "Heightmaps", Payload: []*nbt.Tag{
		{Type: nbt.TagLongArray, Name: "MOTION_BLOCKING", Payload: packed},
	}}
}

// packHeightmap bit-packs 256 9-bit values (absolute world Y + 64, so it
// fits unsigned) into 37 longs, low bits first.
func packHeightmap(heights []int) []int64 {
	const bitsPerEntry = 9
	perLong := 64 / bitsPerEntry
	longCount := (len(heights) + perLong - 1) / perLong
	out := make([]int64, longCount)
	for i, h := range heights {
		v := int64(h + 64) // shift into [0, 512) so it's always non-negative
		longIdx := i / perLong
		bitOff := uint((i % perLong) * bitsPerEntry)
		out[longIdx] |= v << bitOff
	}
	return out
}
