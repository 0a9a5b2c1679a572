// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
)

// Errors returned by the encoder
var (
	ErrInvalidTagClass  = errors.New("ber: invalid tag class")
	ErrInvalidTagNumber = errors.New("ber: invalid tag number")
	ErrLengthOverflow   = errors.New("ber: length value overflow")
	ErrNegativeLength   = errors.New("ber: negative length not allowed")
	ErrInvalidPosition  = errors.New("ber: invalid constructed position")
)

// BEREncoder encodes ASN.1 values using BER (Basic Encoding Rules).
// It is used to build fixtures and to re-encode fragments; the decoder
// never depends on it.
type BEREncoder struct {
	buf []byte
}

// NewBEREncoder creates a new BER encoder with an optional initial capacity.
func NewBEREncoder(capacity int) *BEREncoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &BEREncoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *BEREncoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *BEREncoder) Reset() {
	e.buf = e.buf[:0]
}

// Len returns the current length of encoded data.
func (e *BEREncoder) Len() int {
	return len(e.buf)
}

// WriteTag writes the identifier octets for t.
// Numbers up to 30 use the short form, larger ones the long form.
func (e *BEREncoder) WriteTag(t Tag) error {
	if t.Class != ClassUniversal && t.Class != ClassApplication &&
		t.Class != ClassContextSpecific && t.Class != ClassPrivate {
		return ErrInvalidTagClass
	}
	if t.Number < 0 || t.Number > maxTagNumber {
		return ErrInvalidTagNumber
	}

	first := byte(t.Class)
	if t.Constructed {
		first |= TypeConstructed
	}

	if t.Number <= 30 {
		e.buf = append(e.buf, first|byte(t.Number))
		return nil
	}

	e.buf = append(e.buf, first|0x1F)
	e.writeBase128(uint64(t.Number))
	return nil
}

// writeBase128 encodes an integer in base-128 format (high bit indicates continuation)
func (e *BEREncoder) writeBase128(value uint64) {
	if value == 0 {
		e.buf = append(e.buf, 0)
		return
	}

	var tmp [10]byte
	n := 0
	for value > 0 {
		tmp[n] = byte(value & 0x7F)
		value >>= 7
		n++
	}

	for i := n - 1; i >= 0; i-- {
		b := tmp[i]
		if i > 0 {
			b |= 0x80
		}
		e.buf = append(e.buf, b)
	}
}

// WriteLength writes a BER length value to the buffer.
// Uses short form for lengths 0-127, long form for larger values.
func (e *BEREncoder) WriteLength(length int) error {
	enc, err := encodeLength(length)
	if err != nil {
		return err
	}
	e.buf = append(e.buf, enc...)
	return nil
}

func encodeLength(length int) ([]byte, error) {
	if length < 0 {
		return nil, ErrNegativeLength
	}
	if length > MaxLength {
		return nil, ErrLengthOverflow
	}

	if length <= MaxShortFormLength {
		return []byte{byte(length)}, nil
	}

	numBytes := 0
	for temp := length; temp > 0; temp >>= 8 {
		numBytes++
	}

	out := make([]byte, 0, numBytes+1)
	out = append(out, byte(LengthLongFormBit|numBytes))
	for i := numBytes - 1; i >= 0; i-- {
		out = append(out, byte(length>>(i*8)))
	}
	return out, nil
}

// WritePrimitive writes a complete primitive TLV with the given tag.
func (e *BEREncoder) WritePrimitive(t Tag, content []byte) error {
	t.Constructed = false
	if err := e.WriteTag(t); err != nil {
		return err
	}
	if err := e.WriteLength(len(content)); err != nil {
		return err
	}
	e.buf = append(e.buf, content...)
	return nil
}

// WriteBoolean writes a BER-encoded boolean value.
// Per X.690, FALSE is encoded as 0x00, TRUE as any non-zero value (we use 0xFF).
func (e *BEREncoder) WriteBoolean(v bool) error {
	b := byte(0x00)
	if v {
		b = 0xFF
	}
	return e.WritePrimitive(Universal(TagBoolean), []byte{b})
}

// WriteInteger writes a BER-encoded integer value.
// Uses the minimum number of octets with two's complement representation.
func (e *BEREncoder) WriteInteger(v int64) error {
	return e.WritePrimitive(Universal(TagInteger), encodeInteger(v))
}

// encodeInteger encodes an int64 as a minimal two's complement byte slice.
func encodeInteger(v int64) []byte {
	n := 8
	for n > 1 {
		top := byte(v >> ((n - 1) * 8))
		next := byte(v >> ((n - 2) * 8))
		if (top == 0x00 && next&0x80 == 0) || (top == 0xFF && next&0x80 != 0) {
			n--
			continue
		}
		break
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(v >> ((n - 1 - i) * 8))
	}
	return out
}

// WriteOctetString writes a BER-encoded octet string.
func (e *BEREncoder) WriteOctetString(v []byte) error {
	return e.WritePrimitive(Universal(TagOctetString), v)
}

// WriteString writes a character string under the given universal tag
// (TagUTF8String, TagPrintableString, TagIA5String, ...).
func (e *BEREncoder) WriteString(tagNumber int, s string) error {
	return e.WritePrimitive(Universal(tagNumber), []byte(s))
}

// WriteEnumerated writes a BER-encoded enumerated value.
// Enumerated values are encoded identically to integers.
func (e *BEREncoder) WriteEnumerated(v int64) error {
	return e.WritePrimitive(Universal(TagEnumerated), encodeInteger(v))
}

// WriteNull writes a BER-encoded null value.
func (e *BEREncoder) WriteNull() error {
	return e.WritePrimitive(Universal(TagNull), nil)
}

// WriteOID writes a BER-encoded object identifier in dotted notation.
func (e *BEREncoder) WriteOID(dotted string) error {
	oid, err := OIDFromString(dotted)
	if err != nil {
		return err
	}
	content, err := oid.Encode()
	if err != nil {
		return err
	}
	return e.WritePrimitive(Universal(TagOID), content)
}

// WriteBitString writes a BER-encoded bit string.
func (e *BEREncoder) WriteBitString(bits []byte, unused int) error {
	if unused < 0 || unused > 7 || (len(bits) == 0 && unused != 0) {
		return ErrInvalidBitString
	}
	content := make([]byte, 0, len(bits)+1)
	content = append(content, byte(unused))
	content = append(content, bits...)
	return e.WritePrimitive(Universal(TagBitString), content)
}

// WriteRaw writes raw bytes directly to the buffer.
// Useful for pre-encoded data or custom encoding.
func (e *BEREncoder) WriteRaw(data []byte) {
	e.buf = append(e.buf, data...)
}

// Begin writes the identifier octets of a constructed element and reserves
// one length octet. The returned position is passed to End once the
// content has been written.
func (e *BEREncoder) Begin(t Tag) int {
	t.Constructed = true
	if err := e.WriteTag(t); err != nil {
		return -1
	}
	pos := len(e.buf)
	e.buf = append(e.buf, 0x00)
	return pos
}

// End patches the length reserved by Begin, shifting the content when the
// length needs the long form.
func (e *BEREncoder) End(pos int) error {
	if pos < 0 || pos >= len(e.buf) {
		return ErrInvalidPosition
	}
	contentLen := len(e.buf) - pos - 1
	enc, err := encodeLength(contentLen)
	if err != nil {
		return err
	}

	if extra := len(enc) - 1; extra > 0 {
		e.buf = append(e.buf, make([]byte, extra)...)
		copy(e.buf[pos+len(enc):], e.buf[pos+1:pos+1+contentLen])
	}
	copy(e.buf[pos:], enc)
	return nil
}

// BeginSequence starts a universal SEQUENCE.
func (e *BEREncoder) BeginSequence() int {
	return e.Begin(Universal(TagSequence))
}

// EndSequence completes a SEQUENCE started by BeginSequence.
func (e *BEREncoder) EndSequence(pos int) error {
	return e.End(pos)
}

// BeginSet starts a universal SET.
func (e *BEREncoder) BeginSet() int {
	return e.Begin(Universal(TagSet))
}

// EndSet completes a SET started by BeginSet.
func (e *BEREncoder) EndSet(pos int) error {
	return e.End(pos)
}

// WriteApplicationTag starts an APPLICATION tagged element.
// A primitive element is completed the same way as a constructed one.
func (e *BEREncoder) WriteApplicationTag(number int, constructed bool) int {
	return e.beginTagged(App(number), constructed)
}

// EndApplicationTag completes an element started by WriteApplicationTag.
func (e *BEREncoder) EndApplicationTag(pos int) error {
	return e.End(pos)
}

// WriteContextTag starts a context-specific tagged element.
func (e *BEREncoder) WriteContextTag(number int, constructed bool) int {
	return e.beginTagged(Ctx(number), constructed)
}

// EndContextTag completes an element started by WriteContextTag.
func (e *BEREncoder) EndContextTag(pos int) error {
	return e.End(pos)
}

func (e *BEREncoder) beginTagged(t Tag, constructed bool) int {
	t.Constructed = constructed
	if err := e.WriteTag(t); err != nil {
		return -1
	}
	pos := len(e.buf)
	e.buf = append(e.buf, 0x00)
	return pos
}
