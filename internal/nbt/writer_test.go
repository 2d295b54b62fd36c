package nbt

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteTagByte("test", 42)

	data := buf.Bytes()
	if data[0] != TagByte {
		t.Fatalf("expected tag type %d, got %d", TagByte, data[0])
	}
	nameLen := binary.BigEndian.Uint16(data[1:3])
	if nameLen != 4 {
		t.Fatalf("expected name length 4, got %d", nameLen)
	}
	if string(data[3:7]) != "test" {
		t.Fatalf("expected name 'test', got %q", string(data[3:7]))
	}
	if data[7] != 42 {
		t.Fatalf("expected value 42, got %d", data[7])
	}
}

func TestWriteInt(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteInt("x", 12345)

	data := buf.Bytes()
	if data[0] != TagInt {
		t.Fatalf("expected tag type %d, got %d", TagInt, data[0])
	}
	val := int32(binary.BigEndian.Uint32(data[4:8]))
	if val != 12345 {
		t.Fatalf("expected 12345, got %d", val)
	}
}

func TestWriteLongArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteLongArray("data", []int64{1, 2, 3})

	data := buf.Bytes()
	if data[0] != TagLongArray {
		t.Fatalf("expected tag type %d, got %d", TagLongArray, data[0])
	}
	nameLen := binary.BigEndian.Uint16(data[1:3])
	off := 3 + int(nameLen)
	count := int32(binary.BigEndian.Uint32(data[off : off+4]))
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
	off += 4
	for i, want := range []int64{1, 2, 3} {
		got := int64(binary.BigEndian.Uint64(data[off+i*8 : off+i*8+8]))
		if got != want {
			t.Fatalf("index %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestCompoundRoundTripsThroughReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.BeginCompound("")
	w.WriteInt("xPos", 7)
	w.WriteString("Status", "full")
	w.BeginList("sections", TagCompound, 1)
	w.WriteTagByte("Y", 3)
	w.WriteLongArray("data", []int64{10, 20})
	w.EndCompound()
	w.EndCompound()

	if w.Err() != nil {
		t.Fatalf("write error: %v", w.Err())
	}

	root, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if root.Type != TagCompound {
		t.Fatalf("expected root compound, got tag %d", root.Type)
	}
	children := root.Payload.([]*Tag)
	byName := make(map[string]*Tag, len(children))
	for _, c := range children {
		byName[c.Name] = c
	}
	if byName["xPos"].Payload.(int32) != 7 {
		t.Fatalf("xPos mismatch: %+v", byName["xPos"])
	}
	if byName["Status"].Payload.(string) != "full" {
		t.Fatalf("Status mismatch: %+v", byName["Status"])
	}
	sections := byName["sections"].Payload.([]*Tag)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	secChildren := sections[0].Payload.([]*Tag)
	var data []int64
	for _, c := range secChildren {
		if c.Name == "data" {
			data = c.Payload.([]int64)
		}
	}
	if len(data) != 2 || data[0] != 10 || data[1] != 20 {
		t.Fatalf("data mismatch: %v", data)
	}
}
