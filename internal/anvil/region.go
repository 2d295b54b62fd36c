package anvil

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
	"github.com/OCharnyshevich/arnisgo/internal/nbt"
	"github.com/OCharnyshevich/arnisgo/internal/worldstore"
)

const (
	sectorSize      = 4096
	headerSectors   = 2 // location table + timestamp table
	compressionGzip = 1
	compressionZlib = 2
)

// SaveRegion merges region's touched chunks into whatever r.rx.rz.mca
// already exists under dir (spec.md §4.5): chunks untouched this run are
// carried forward by decoding and re-encoding their NBT unchanged (then
// recompressed), chunks this run wrote are merged
// section-by-section with any prior data, and chunks with neither prior
// data nor any write this run get a minimal valid stub so the file always
// covers the full 32x32 chunk grid a region needs.
func SaveRegion(dir string, rx, rz int32, region *worldstore.Region) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create region dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))

	existing, err := readExistingChunks(path)
	if err != nil {
		return fmt.Errorf("read existing region %s: %w", path, err)
	}

	type chunkEntry struct {
		index      int
		compressed []byte
	}
	entries := make([]chunkEntry, 0, 1024)

	for cxir := 0; cxir < 32; cxir++ {
		for czir := 0; czir < 32; czir++ {
			idx := cxir + czir*32
			cx := rx*32 + int32(cxir)
			cz := rz*32 + int32(czir)

			touched := region.Chunks[cxir][czir]
			old := existing[idx]

			var raw []byte
			switch {
			case touched != nil && old != nil:
				raw = encodeMergedChunk(cx, cz, touched, old)
			case touched != nil:
				raw = EncodeChunk(DataVersionJava1_20_4, cx, cz, touched)
			case old != nil:
				raw = reencodeChunk(old)
			default:
				raw = encodeMinimalChunk(cx, cz)
			}

			compressed, err := compressZlib(raw)
			if err != nil {
				return fmt.Errorf("compress chunk (%d,%d): %w", cx, cz, err)
			}
			entries = append(entries, chunkEntry{index: idx, compressed: compressed})
		}
	}

	locations := make([]byte, sectorSize)
	timestamps := make([]byte, sectorSize)
	now := uint32(time.Now().Unix())
	var dataBuf bytes.Buffer
	currentSector := uint32(headerSectors)

	for _, e := range entries {
		payloadLen := uint32(len(e.compressed)) + 1 // +1 for compression tag byte
		totalLen := 4 + payloadLen                  // 4 for the length field itself
		sectorCount := (totalLen + sectorSize - 1) / sectorSize

		off := e.index * 4
		binary.BigEndian.PutUint32(locations[off:off+4], (currentSector<<8)|(sectorCount&0xFF))
		binary.BigEndian.PutUint32(timestamps[off:off+4], now)

		var header [5]byte
		binary.BigEndian.PutUint32(header[0:4], payloadLen)
		header[4] = compressionZlib
		dataBuf.Write(header[:])
		dataBuf.Write(e.compressed)

		if pad := int(sectorCount)*sectorSize - int(totalLen); pad > 0 {
			dataBuf.Write(make([]byte, pad))
		}
		currentSector += sectorCount
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp region file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmp)
	}()

	if _, err := f.Write(locations); err != nil {
		return fmt.Errorf("write locations: %w", err)
	}
	if _, err := f.Write(timestamps); err != nil {
		return fmt.Errorf("write timestamps: %w", err)
	}
	if _, err := f.Write(dataBuf.Bytes()); err != nil {
		return fmt.Errorf("write chunk data: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync region file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename region file: %w", err)
	}
	return nil
}

// readExistingChunks parses the location table of an existing region file
// and decodes every present chunk's NBT, keyed by its (cx&31)+(cz&31)*32
// slot index. A missing file or an unreadable chunk slot is not an error —
// region files are only ever additive rewrites, so the worst a corrupt
// prior file costs is that slot's carried-forward data.
func readExistingChunks(path string) (map[int]*nbt.Tag, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) < headerSectors*sectorSize {
		return nil, nil
	}

	locations := data[:sectorSize]
	out := make(map[int]*nbt.Tag)
	for idx := 0; idx < 1024; idx++ {
		off := idx * 4
		entry := binary.BigEndian.Uint32(locations[off : off+4])
		if entry == 0 {
			continue
		}
		sectorOffset := entry >> 8
		sectorCount := entry & 0xFF
		if sectorCount == 0 {
			continue
		}
		start := int(sectorOffset) * sectorSize
		length := int(sectorCount) * sectorSize
		if start < 0 || start+length > len(data) || start+5 > len(data) {
			continue
		}

		chunkData := data[start : start+length]
		payloadLen := binary.BigEndian.Uint32(chunkData[0:4])
		if payloadLen < 1 || int(4+payloadLen) > len(chunkData) {
			continue
		}
		compression := chunkData[4]
		compressed := chunkData[5 : 4+payloadLen]

		raw, err := decompress(compressed, compression)
		if err != nil {
			continue
		}
		tag, err := nbt.Decode(raw)
		if err != nil {
			continue
		}
		out[idx] = tag
	}
	return out, nil
}

func decompress(b []byte, method byte) ([]byte, error) {
	switch method {
	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case compressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		return io.ReadAll(gr)
	default:
		return nil, fmt.Errorf("anvil: unsupported compression method %d", method)
	}
}

func compressZlib(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// reencodeChunk re-serializes a decoded chunk tag verbatim, for chunks this
// run never touched but which already had data on disk.
func reencodeChunk(old *nbt.Tag) []byte {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.WriteTag("", old)
	return buf.Bytes()
}

// encodeMinimalChunk emits a valid, empty chunk for a position this run
// never touched and that had no prior data (spec.md §4.5 step 3).
func encodeMinimalChunk(cx, cz int32) []byte {
	return EncodeChunk(DataVersionJava1_20_4, cx, cz, &worldstore.Chunk{})
}

// encodeMergedChunk combines this run's freshly generated sections and
// signs for one chunk with whatever sections and block entities the prior
// region file already had there.
func encodeMergedChunk(cx, cz int32, touched *worldstore.Chunk, old *nbt.Tag) []byte {
	var buf bytes.Buffer
	w := nbt.NewWriter(&buf)
	w.WriteTag("", buildMergedChunkTag(cx, cz, touched, old))
	return buf.Bytes()
}

func buildMergedChunkTag(cx, cz int32, touched *worldstore.Chunk, old *nbt.Tag) *nbt.Tag {
	oldC := old.Compound()

	sectionsBySy := make(map[int32]*nbt.Tag)
	if oldSections, ok := oldC["sections"]; ok {
		for _, s := range oldSections.Payload.([]*nbt.Tag) {
			yTag := s.Get("Y")
			if yTag == nil {
				continue
			}
			sy := int32(int8(yTag.Payload.(byte)))
			sectionsBySy[sy] = s
		}
	}
	for sy, sec := range touched.Sections {
		sectionsBySy[sy] = sectionTag(sy, sec) // fresh data wins over whatever was there before
	}

	syKeys := make([]int32, 0, len(sectionsBySy))
	for sy := range sectionsBySy {
		syKeys = append(syKeys, sy)
	}
	sort.Slice(syKeys, func(i, j int) bool { return syKeys[i] < syKeys[j] })

	loSec, hiSec := coordsys.YToSection(coordsys.YMax), coordsys.YToSection(coordsys.YMin)
	sections := make([]*nbt.Tag, 0, len(syKeys))
	for _, sy := range syKeys {
		sections = append(sections, sectionsBySy[sy])
	}
	if len(syKeys) > 0 {
		loSec, hiSec = syKeys[0], syKeys[len(syKeys)-1]
	}

	var oldEntities []*nbt.Tag
	if be, ok := oldC["block_entities"]; ok {
		oldEntities, _ = be.Payload.([]*nbt.Tag)
	}
	entities := mergeBlockEntities(oldEntities, touched.Signs)

	children := []*nbt.Tag{
		{Type: nbt.TagInt, Name: "DataVersion", Payload: DataVersionJava1_20_4},
		{Type: nbt.TagInt, Name: "xPos", Payload: cx},
		{Type: nbt.TagInt, Name: "zPos", Payload: cz},
		{Type: nbt.TagInt, Name: "yPos", Payload: loSec},
		{Type: nbt.TagString, Name: "Status", Payload: "minecraft:full"},
		{Type: nbt.TagByte, Name: "isLightOn", Payload: byte(1)},
		{Type: nbt.TagList, Name: "sections", Payload: sections},
		{Type: nbt.TagList, Name: "block_entities", Payload: entities},
		heightmapFromSections(sectionsBySy, loSec, hiSec),
	}
	return &nbt.Tag{Type: nbt.TagCompound, Payload: children}
}

// mergeBlockEntities keeps every prior block entity except ones this run
// placed a new sign at the same coordinate for (spec.md §4.5: "preserve
// existing block entities" except where this run's own writes supersede
// them).
func mergeBlockEntities(old []*nbt.Tag, signs []worldstore.SignEntity) []*nbt.Tag {
	type coord struct{ x, y, z int32 }
	replaced := make(map[coord]bool, len(signs))
	for _, s := range signs {
		replaced[coord{s.X, s.Y, s.Z}] = true
	}

	out := make([]*nbt.Tag, 0, len(old)+len(signs))
	for _, e := range old {
		x, xok := tagInt32(e.Get("x"))
		y, yok := tagInt32(e.Get("y"))
		z, zok := tagInt32(e.Get("z"))
		if xok && yok && zok && replaced[coord{x, y, z}] {
			continue
		}
		out = append(out, e)
	}
	for _, s := range signs {
		out = append(out, signTag(s))
	}
	return out
}

func tagInt32(t *nbt.Tag) (int32, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.Payload.(int32)
	return v, ok
}

// heightmapFromSections computes MOTION_BLOCKING for a merged chunk, whose
// sections may be a mix of freshly built Tags and ones carried forward from
// an existing file — both already share the same section-compound shape,
// so the same palette/bit-unpacking logic covers both.
func heightmapFromSections(sectionsBySy map[int32]*nbt.Tag, loSec, hiSec int32) *nbt.Tag {
	heights := make([]int, 256)
	for sy := hiSec; sy >= loSec; sy-- {
		sec, ok := sectionsBySy[sy]
		if !ok {
			continue
		}
		nonAir := sectionNonAirLocals(sec)
		for local := 4095; local >= 0; local-- {
			if !nonAir[local] {
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
	return &nbt.Tag{Type: nbt.TagCompound, Name: "Heightmaps", Payload: []*nbt.Tag{
		{Type: nbt.TagLongArray, Name: "MOTION_BLOCKING", Payload: packHeightmap(heights)},
	}}
}

// sectionNonAirLocals reports, for each of a section tag's 4096 cells,
// whether it holds a non-air block.
func sectionNonAirLocals(sec *nbt.Tag) [4096]bool {
	var out [4096]bool
	bs := sec.Get("block_states")
	if bs == nil {
		return out
	}
	paletteTag := bs.Get("palette")
	if paletteTag == nil {
		return out
	}
	palette, _ := paletteTag.Payload.([]*nbt.Tag)
	airIdx := make(map[int]bool, len(palette))
	for i, p := range palette {
		name, _ := p.Get("Name").Payload.(string)
		if name == "minecraft:air" || name == "" {
			airIdx[i] = true
		}
	}
	if len(palette) <= 1 {
		if len(palette) == 1 && !airIdx[0] {
			for i := range out {
				out[i] = true
			}
		}
		return out
	}

	dataTag := bs.Get("data")
	if dataTag == nil {
		return out
	}
	data, _ := dataTag.Payload.([]int64)
	bpe := bitsPerEntry(len(palette))
	indices := unpackIndices(data, bpe)
	for i, idx := range indices {
		if !airIdx[idx] {
			out[i] = true
		}
	}
	return out
}

// unpackIndices is packIndices's inverse: bitsPerEntry-wide, low bits
// first, never split across a long boundary.
func unpackIndices(data []int64, bitsPerEntry int) [4096]int {
	var out [4096]int
	if bitsPerEntry == 0 {
		return out
	}
	perLong := 64 / bitsPerEntry
	mask := int64(1)<<uint(bitsPerEntry) - 1
	for i := 0; i < 4096; i++ {
		longIdx := i / perLong
		if longIdx >= len(data) {
			break
		}
		bitOff := uint((i % perLong) * bitsPerEntry)
		out[i] = int((data[longIdx] >> bitOff) & mask)
	}
	return out
}
