package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Tag is a generic, dynamically typed NBT node. Reading into this tree
// (rather than a fixed struct) is what lets the Anvil writer carry forward
// existing chunk data — and the level.dat patcher carry forward unknown
// keys — by decoding and re-encoding them, without needing a schema for the
// whole file. An empty list is re-encoded with element type End, whatever
// element type it was read with.
type Tag struct {
	Type    byte
	Name    string
	Payload any // see decode* functions below for the concrete Go type per tag
}

// Decode reads one fully named top-level tag (type, name, payload) from data.
func Decode(data []byte) (*Tag, error) {
	d := &decoder{buf: data}
	t, err := d.readNamedTag()
	if err != nil {
		return nil, err
	}
	return t, nil
}

type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) remaining() int { return len(d.buf) - d.pos }

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, fmt.Errorf("nbt: unexpected end of data")
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, fmt.Errorf("nbt: unexpected end of data (need %d, have %d)", n, d.remaining())
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readUint16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readInt32() (int32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) readInt64() (int64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b, err := d.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readNamedTag reads (type byte, name, payload) as they appear for a
// compound's children and the file root.
func (d *decoder) readNamedTag() (*Tag, error) {
	typ, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if typ == TagEnd {
		return &Tag{Type: TagEnd}, nil
	}
	name, err := d.readString()
	if err != nil {
		return nil, err
	}
	payload, err := d.readPayload(typ)
	if err != nil {
		return nil, err
	}
	return &Tag{Type: typ, Name: name, Payload: payload}, nil
}

func (d *decoder) readPayload(typ byte) (any, error) {
	switch typ {
	case TagByte:
		return d.readByte()
	case TagShort:
		v, err := d.readUint16()
		return int16(v), err
	case TagInt:
		return d.readInt32()
	case TagLong:
		return d.readInt64()
	case TagFloat:
		v, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(uint32(v)), nil
	case TagDouble:
		v, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(uint64(v)), nil
	case TagByteArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return d.readBytes(int(n))
	case TagString:
		return d.readString()
	case TagIntArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		out := make([]int32, n)
		for i := range out {
			out[i], err = d.readInt32()
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagLongArray:
		n, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := range out {
			out[i], err = d.readInt64()
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case TagList:
		return d.readList()
	case TagCompound:
		return d.readCompound()
	default:
		return nil, fmt.Errorf("nbt: unknown tag type %d", typ)
	}
}

func (d *decoder) readList() ([]*Tag, error) {
	elemType, err := d.readByte()
	if err != nil {
		return nil, err
	}
	count, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	out := make([]*Tag, 0, count)
	for i := int32(0); i < count; i++ {
		if elemType == TagEnd {
			break
		}
		payload, err := d.readPayload(elemType)
		if err != nil {
			return nil, err
		}
		out = append(out, &Tag{Type: elemType, Payload: payload})
	}
	return out, nil
}

func (d *decoder) readCompound() ([]*Tag, error) {
	var out []*Tag
	for {
		child, err := d.readNamedTag()
		if err != nil {
			return nil, err
		}
		if child.Type == TagEnd {
			break
		}
		out = append(out, child)
	}
	return out, nil
}

// Compound returns t's children as a name-keyed map, panicking if t is not
// a compound — callers only use this on tags they already know the shape of.
func (t *Tag) Compound() map[string]*Tag {
	children := t.Payload.([]*Tag)
	m := make(map[string]*Tag, len(children))
	for _, c := range children {
		m[c.Name] = c
	}
	return m
}

// Get returns the named child of a compound tag, or nil if absent.
func (t *Tag) Get(name string) *Tag {
	for _, c := range t.Payload.([]*Tag) {
		if c.Name == name {
			return c
		}
	}
	return nil
}
