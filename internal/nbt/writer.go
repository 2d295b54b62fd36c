// Package nbt implements the named-binary-tag encoding Minecraft uses for
// chunk and level.dat storage. The low-level Writer below is kept from the
// teacher repo's internal/server/world/nbt writer (same tag-header/put
// primitives) and extended with TagLongArray for packed palette data; a
// generic Reader/Tag tree is added for parsing existing region/level.dat
// bytes, which the teacher never needed since it only ever generated chunks
// on the fly for a live connection.
package nbt

import (
	"encoding/binary"
	"io"
	"math"
)

// NBT tag type IDs.
const (
	TagEnd       byte = 0
	TagByte      byte = 1
	TagShort     byte = 2
	TagInt       byte = 3
	TagLong      byte = 4
	TagFloat     byte = 5
	TagDouble    byte = 6
	TagByteArray byte = 7
	TagString    byte = 8
	TagList      byte = 9
	TagCompound  byte = 10
	TagIntArray  byte = 11
	TagLongArray byte = 12
)

// Writer writes NBT binary data to an io.Writer in big-endian format. All
// write methods accumulate errors internally; call Err() after writing to
// check for failures.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new NBT Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered during writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(data []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(data)
}

func (w *Writer) putByte(v byte) {
	w.write([]byte{v})
}

func (w *Writer) putUint16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

func (w *Writer) putInt32(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	w.write(buf[:])
}

func (w *Writer) putInt64(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	w.write(buf[:])
}

func (w *Writer) writeTagHeader(tagType byte, name string) {
	w.putByte(tagType)
	w.putUint16(uint16(len(name)))
	if len(name) > 0 {
		w.write([]byte(name))
	}
}

// BeginCompound writes a compound tag header (type byte and name). Use
// name="" for a root compound. A compound list element carries no header:
// write its children directly after BeginList and close it with EndCompound.
func (w *Writer) BeginCompound(name string) {
	w.writeTagHeader(TagCompound, name)
}

// EndCompound writes an End tag to close a compound.
func (w *Writer) EndCompound() {
	w.putByte(TagEnd)
}

// WriteTagByte writes a named byte tag.
func (w *Writer) WriteTagByte(name string, v byte) {
	w.writeTagHeader(TagByte, name)
	w.putByte(v)
}

// WriteShort writes a named short tag.
func (w *Writer) WriteShort(name string, v int16) {
	w.writeTagHeader(TagShort, name)
	w.putUint16(uint16(v))
}

// WriteInt writes a named int tag.
func (w *Writer) WriteInt(name string, v int32) {
	w.writeTagHeader(TagInt, name)
	w.putInt32(v)
}

// WriteLong writes a named long tag.
func (w *Writer) WriteLong(name string, v int64) {
	w.writeTagHeader(TagLong, name)
	w.putInt64(v)
}

// WriteFloat writes a named float tag.
func (w *Writer) WriteFloat(name string, v float32) {
	w.writeTagHeader(TagFloat, name)
	w.putInt32(int32(math.Float32bits(v)))
}

// WriteDouble writes a named double tag.
func (w *Writer) WriteDouble(name string, v float64) {
	w.writeTagHeader(TagDouble, name)
	w.putInt64(int64(math.Float64bits(v)))
}

// WriteByteArray writes a named byte array tag.
func (w *Writer) WriteByteArray(name string, v []byte) {
	w.writeTagHeader(TagByteArray, name)
	w.putInt32(int32(len(v)))
	w.write(v)
}

// WriteString writes a named string tag.
func (w *Writer) WriteString(name string, v string) {
	w.writeTagHeader(TagString, name)
	w.putUint16(uint16(len(v)))
	if len(v) > 0 {
		w.write([]byte(v))
	}
}

// WriteIntArray writes a named int array tag.
func (w *Writer) WriteIntArray(name string, v []int32) {
	w.writeTagHeader(TagIntArray, name)
	w.putInt32(int32(len(v)))
	for _, val := range v {
		w.putInt32(val)
	}
}

// WriteLongArray writes a named long array tag. This is the tag the Anvil
// writer's packed palette `data` field uses (spec.md §4.6).
func (w *Writer) WriteLongArray(name string, v []int64) {
	w.writeTagHeader(TagLongArray, name)
	w.putInt32(int32(len(v)))
	for _, val := range v {
		w.putInt64(val)
	}
}

// BeginList writes a named list tag header: tag byte, name, element type,
// and element count.
func (w *Writer) BeginList(name string, elemType byte, count int32) {
	w.writeTagHeader(TagList, name)
	w.putByte(elemType)
	w.putInt32(count)
}

// WriteTag writes t in full — header and payload — under name. This is the
// generic counterpart to the typed Write* methods above: it lets a caller
// re-emit a Tag tree read back by Decode without knowing its shape ahead of
// time, which is what the Anvil writer needs to carry forward chunk data it
// didn't itself generate this run.
func (w *Writer) WriteTag(name string, t *Tag) {
	w.writeTagHeader(t.Type, name)
	w.WritePayload(t)
}

// WritePayload writes only t's payload, with no preceding type/name header.
// Used for list elements, which share one element-type header for the
// whole list, and internally by WriteTag.
func (w *Writer) WritePayload(t *Tag) {
	switch t.Type {
	case TagByte:
		w.putByte(t.Payload.(byte))
	case TagShort:
		w.putUint16(uint16(t.Payload.(int16)))
	case TagInt:
		w.putInt32(t.Payload.(int32))
	case TagLong:
		w.putInt64(t.Payload.(int64))
	case TagFloat:
		w.putInt32(int32(math.Float32bits(t.Payload.(float32))))
	case TagDouble:
		w.putInt64(int64(math.Float64bits(t.Payload.(float64))))
	case TagByteArray:
		b := t.Payload.([]byte)
		w.putInt32(int32(len(b)))
		w.write(b)
	case TagString:
		s := t.Payload.(string)
		w.putUint16(uint16(len(s)))
		if len(s) > 0 {
			w.write([]byte(s))
		}
	case TagIntArray:
		arr := t.Payload.([]int32)
		w.putInt32(int32(len(arr)))
		for _, v := range arr {
			w.putInt32(v)
		}
	case TagLongArray:
		arr := t.Payload.([]int64)
		w.putInt32(int32(len(arr)))
		for _, v := range arr {
			w.putInt64(v)
		}
	case TagList:
		elems, _ := t.Payload.([]*Tag)
		elemType := TagEnd
		if len(elems) > 0 {
			elemType = elems[0].Type
		}
		w.putByte(elemType)
		w.putInt32(int32(len(elems)))
		for _, e := range elems {
			w.WritePayload(e)
		}
	case TagCompound:
		children, _ := t.Payload.([]*Tag)
		for _, c := range children {
			w.WriteTag(c.Name, c)
		}
		w.EndCompound()
	}
}
