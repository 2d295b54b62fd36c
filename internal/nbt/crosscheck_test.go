package nbt

import (
	"bytes"
	"testing"

	tnze "github.com/Tnze/go-mc/nbt"
)

// fixture mirrors a tiny slice of a chunk section, just enough to compare
// the hand-rolled Writer/Reader pair against an independent implementation.
type fixture struct {
	XPos   int32   `nbt:"xPos"`
	Status string  `nbt:"Status"`
	Data   []int64 `nbt:"data"`
}

// TestHandWriterDecodesWithTnze confirms the bytes this package's Writer
// produces are valid, standard NBT: an unrelated library built against the
// wire format (not this package) should parse them without help.
func TestHandWriterDecodesWithTnze(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.BeginCompound("")
	w.WriteInt("xPos", 9)
	w.WriteString("Status", "full")
	w.WriteLongArray("data", []int64{1, 2, 3})
	w.EndCompound()
	if w.Err() != nil {
		t.Fatalf("write error: %v", w.Err())
	}

	var got fixture
	if _, err := tnze.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&got); err != nil {
		t.Fatalf("tnze decode error: %v", err)
	}
	if got.XPos != 9 || got.Status != "full" || len(got.Data) != 3 || got.Data[2] != 3 {
		t.Fatalf("unexpected decode result: %+v", got)
	}
}

// TestTnzeEncodedDecodesWithHandReader confirms the reverse: bytes produced
// by an independent encoder parse correctly through this package's Decode.
func TestTnzeEncodedDecodesWithHandReader(t *testing.T) {
	in := fixture{XPos: 4, Status: "empty", Data: []int64{7, 8}}

	var buf bytes.Buffer
	if err := tnze.NewEncoder(&buf).Encode(in, ""); err != nil {
		t.Fatalf("tnze encode error: %v", err)
	}

	root, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	byName := root.Compound()
	if byName["xPos"].Payload.(int32) != 4 {
		t.Fatalf("xPos mismatch: %+v", byName["xPos"])
	}
	if byName["Status"].Payload.(string) != "empty" {
		t.Fatalf("Status mismatch: %+v", byName["Status"])
	}
	data := byName["data"].Payload.([]int64)
	if len(data) != 2 || data[0] != 7 || data[1] != 8 {
		t.Fatalf("data mismatch: %v", data)
	}
}
