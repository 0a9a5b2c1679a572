package ber

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewBEREncoder(t *testing.T) {
	t.Run("default capacity", func(t *testing.T) {
		enc := NewBEREncoder(0)
		if enc == nil {
			t.Fatal("expected non-nil encoder")
		}
		if cap(enc.buf) != 64 {
			t.Errorf("expected default capacity 64, got %d", cap(enc.buf))
		}
	})

	t.Run("custom capacity", func(t *testing.T) {
		enc := NewBEREncoder(128)
		if cap(enc.buf) != 128 {
			t.Errorf("expected capacity 128, got %d", cap(enc.buf))
		}
	})
}

func TestBEREncoder_Reset(t *testing.T) {
	enc := NewBEREncoder(64)
	enc.WriteNull()
	if enc.Len() == 0 {
		t.Fatal("expected non-zero length after write")
	}
	enc.Reset()
	if enc.Len() != 0 {
		t.Errorf("expected zero length after reset, got %d", enc.Len())
	}
}

func TestBEREncoder_WriteTag(t *testing.T) {
	constructed := func(tag Tag) Tag {
		tag.Constructed = true
		return tag
	}

	tests := []struct {
		name     string
		tag      Tag
		expected []byte
		wantErr  error
	}{
		{name: "universal boolean", tag: Universal(TagBoolean), expected: []byte{0x01}},
		{name: "universal sequence", tag: UniversalConstructed(TagSequence), expected: []byte{0x30}},
		{name: "application 0 constructed", tag: constructed(App(0)), expected: []byte{0x60}},
		{name: "context 3 constructed", tag: constructed(Ctx(3)), expected: []byte{0xA3}},
		{name: "context 31", tag: Ctx(31), expected: []byte{0x9F, 0x1F}},
		{name: "universal 128", tag: Universal(128), expected: []byte{0x1F, 0x81, 0x00}},
		{name: "private 2", tag: Private(2), expected: []byte{0xC2}},
		{name: "negative number", tag: Ctx(-1), wantErr: ErrInvalidTagNumber},
		{name: "bad class", tag: Tag{Class: 0x10}, wantErr: ErrInvalidTagClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewBEREncoder(8)
			err := enc.WriteTag(tt.tag)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(enc.Bytes(), tt.expected) {
				t.Errorf("expected %x, got %x", tt.expected, enc.Bytes())
			}

			got, _, err := DecodeTag(enc.Bytes(), 0)
			if err != nil || got != tt.tag {
				t.Errorf("decode mismatch: %s (%v)", got, err)
			}
		})
	}
}

func TestBEREncoder_WriteLength(t *testing.T) {
	tests := []struct {
		length   int
		expected []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x80}},
		{255, []byte{0x81, 0xFF}},
		{256, []byte{0x82, 0x01, 0x00}},
		{65536, []byte{0x83, 0x01, 0x00, 0x00}},
	}

	for _, tt := range tests {
		enc := NewBEREncoder(8)
		if err := enc.WriteLength(tt.length); err != nil {
			t.Fatalf("%d: unexpected error: %v", tt.length, err)
		}
		if !bytes.Equal(enc.Bytes(), tt.expected) {
			t.Errorf("%d: expected %x, got %x", tt.length, tt.expected, enc.Bytes())
		}
	}

	if err := NewBEREncoder(8).WriteLength(-1); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("expected ErrNegativeLength, got %v", err)
	}
}

func TestBEREncoder_WriteInteger(t *testing.T) {
	tests := []struct {
		value    int64
		expected []byte
	}{
		{0, []byte{0x02, 0x01, 0x00}},
		{127, []byte{0x02, 0x01, 0x7F}},
		{128, []byte{0x02, 0x02, 0x00, 0x80}},
		{256, []byte{0x02, 0x02, 0x01, 0x00}},
		{-1, []byte{0x02, 0x01, 0xFF}},
		{-128, []byte{0x02, 0x01, 0x80}},
		{-129, []byte{0x02, 0x02, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		enc := NewBEREncoder(8)
		if err := enc.WriteInteger(tt.value); err != nil {
			t.Fatalf("%d: unexpected error: %v", tt.value, err)
		}
		if !bytes.Equal(enc.Bytes(), tt.expected) {
			t.Errorf("%d: expected %x, got %x", tt.value, tt.expected, enc.Bytes())
		}
		back, err := ParseInteger(enc.Bytes()[2:])
		if err != nil || back != tt.value {
			t.Errorf("%d: round trip gave %d (%v)", tt.value, back, err)
		}
	}
}

func TestBEREncoder_Primitives(t *testing.T) {
	enc := NewBEREncoder(32)
	enc.WriteBoolean(true)
	enc.WriteNull()
	enc.WriteOID("2.5.4.3")
	enc.WriteString(TagPrintableString, "TR")
	enc.WriteBitString([]byte{0x80}, 7)

	want := []byte{
		0x01, 0x01, 0xFF,
		0x05, 0x00,
		0x06, 0x03, 0x55, 0x04, 0x03,
		0x13, 0x02, 'T', 'R',
		0x03, 0x02, 0x07, 0x80,
	}
	if !bytes.Equal(enc.Bytes(), want) {
		t.Errorf("expected %x, got %x", want, enc.Bytes())
	}

	if err := enc.WriteOID("not.an.oid"); !errors.Is(err, ErrInvalidOID) {
		t.Errorf("expected ErrInvalidOID, got %v", err)
	}
	if err := enc.WriteBitString(nil, 3); !errors.Is(err, ErrInvalidBitString) {
		t.Errorf("expected ErrInvalidBitString, got %v", err)
	}
}

func TestBEREncoder_Constructed(t *testing.T) {
	enc := NewBEREncoder(32)
	pos := enc.WriteApplicationTag(0, true)
	enc.WriteInteger(3)
	ctx := enc.WriteContextTag(0, false)
	enc.WriteRaw([]byte("pw"))
	if err := enc.EndContextTag(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.EndApplicationTag(pos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x60, 0x07, 0x02, 0x01, 0x03, 0x80, 0x02, 'p', 'w'}
	if !bytes.Equal(enc.Bytes(), want) {
		t.Errorf("expected %x, got %x", want, enc.Bytes())
	}
}

func TestBEREncoder_ConstructedLongForm(t *testing.T) {
	enc := NewBEREncoder(256)
	pos := enc.BeginSet()
	payload := bytes.Repeat([]byte{0xAB}, 198)
	enc.WriteOctetString(payload)
	if err := enc.EndSet(pos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := enc.Bytes()
	if !bytes.Equal(out[:3], []byte{0x31, 0x81, 0xC9}) {
		t.Fatalf("unexpected header %x", out[:3])
	}
	if len(out) != 204 {
		t.Fatalf("expected 204 bytes, got %d", len(out))
	}

	h, err := DecodeHeader(out, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner, err := DecodeHeader(out, h.ContentOffset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.Length != 198 || !bytes.Equal(out[inner.ContentOffset():inner.End()], payload) {
		t.Error("content shifted incorrectly")
	}
}

func TestBEREncoder_EndInvalidPosition(t *testing.T) {
	enc := NewBEREncoder(8)
	if err := enc.EndSequence(5); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
}
