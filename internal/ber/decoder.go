// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

// BERDecoder is a bounded cursor over a BER buffer.
// Offsets are always absolute positions in the original buffer, so nested
// decoders report locations that can be mapped back to the capture.
type BERDecoder struct {
	data   []byte
	offset int
	end    int
}

// NewBERDecoder creates a new BER decoder for the given data.
func NewBERDecoder(data []byte) *BERDecoder {
	return &BERDecoder{
		data:   data,
		offset: 0,
		end:    len(data),
	}
}

// NewBERDecoderAt creates a decoder that starts at offset.
func NewBERDecoderAt(data []byte, offset int) *BERDecoder {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	return &BERDecoder{
		data:   data,
		offset: offset,
		end:    len(data),
	}
}

// Offset returns the current absolute read position.
func (d *BERDecoder) Offset() int {
	return d.offset
}

// End returns the absolute offset where this decoder's window stops.
func (d *BERDecoder) End() int {
	return d.end
}

// Remaining returns the number of bytes left in the window.
func (d *BERDecoder) Remaining() int {
	return d.end - d.offset
}

// Empty reports whether the window is exhausted.
func (d *BERDecoder) Empty() bool {
	return d.offset >= d.end
}

// SetOffset moves the cursor. Values outside the window are clamped.
func (d *BERDecoder) SetOffset(offset int) {
	switch {
	case offset < 0:
		d.offset = 0
	case offset > d.end:
		d.offset = d.end
	default:
		d.offset = offset
	}
}

// bounded returns the buffer cut at the window end; absolute offsets stay valid.
func (d *BERDecoder) bounded() []byte {
	return d.data[:d.end]
}

// ReadTag reads a BER tag and advances past it.
func (d *BERDecoder) ReadTag() (Tag, error) {
	tag, pos, err := DecodeTag(d.bounded(), d.offset)
	if err != nil {
		return Tag{}, err
	}
	d.offset = pos
	return tag, nil
}

// PeekTag reads a tag without advancing the offset.
func (d *BERDecoder) PeekTag() (Tag, error) {
	tag, _, err := DecodeTag(d.bounded(), d.offset)
	return tag, err
}

// ReadLength reads a BER length and advances past it.
// The declared length must fit in the remaining window.
func (d *BERDecoder) ReadLength() (int, error) {
	length, pos, err := DecodeLength(d.bounded(), d.offset)
	if err != nil {
		return 0, err
	}
	d.offset = pos
	return length, nil
}

// ReadHeader reads a tag and length and leaves the cursor on the first
// content octet.
func (d *BERDecoder) ReadHeader() (Header, error) {
	h, err := DecodeHeader(d.bounded(), d.offset)
	if err != nil {
		return Header{}, err
	}
	d.offset = h.ContentOffset()
	return h, nil
}

// PeekHeader reads a tag and length without advancing the offset.
func (d *BERDecoder) PeekHeader() (Header, error) {
	return DecodeHeader(d.bounded(), d.offset)
}

// Skip skips the current TLV (Tag-Length-Value) element.
func (d *BERDecoder) Skip() (Header, error) {
	h, err := DecodeHeader(d.bounded(), d.offset)
	if err != nil {
		return Header{}, err
	}
	d.offset = h.End()
	return h, nil
}

// Window returns a decoder over the next n bytes and advances this decoder
// past them.
func (d *BERDecoder) Window(n int) (*BERDecoder, error) {
	if n < 0 || n > d.Remaining() {
		return nil, NewDecodeError(d.offset, "window exceeds available data", ErrInsufficientData)
	}
	sub := &BERDecoder{
		data:   d.data,
		offset: d.offset,
		end:    d.offset + n,
	}
	d.offset += n
	return sub, nil
}

// Clone returns an independent cursor at the same position.
func (d *BERDecoder) Clone() *BERDecoder {
	c := *d
	return &c
}

// Bytes returns the unread bytes of the window without copying.
func (d *BERDecoder) Bytes() []byte {
	return d.data[d.offset:d.end]
}

// ReadContent returns a copy of the next n bytes.
func (d *BERDecoder) ReadContent(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, NewDecodeError(d.offset, "content exceeds available data", ErrInsufficientData)
	}
	out := make([]byte, n)
	copy(out, d.data[d.offset:d.offset+n])
	d.offset += n
	return out, nil
}

// ReadRawValue reads the raw bytes of the current TLV element (including tag and length).
func (d *BERDecoder) ReadRawValue() ([]byte, error) {
	h, err := DecodeHeader(d.bounded(), d.offset)
	if err != nil {
		return nil, err
	}
	out := make([]byte, h.TotalLength())
	copy(out, d.data[h.Offset:h.End()])
	d.offset = h.End()
	return out, nil
}

// ReadPrimitive reads a TLV with the expected tag and returns its content.
func (d *BERDecoder) ReadPrimitive(expected Tag) ([]byte, error) {
	start := d.offset
	h, err := DecodeHeader(d.bounded(), d.offset)
	if err != nil {
		return nil, err
	}
	if !h.Tag.Matches(expected) {
		return nil, &TagMismatchError{
			Offset:   start,
			Expected: expected,
			Actual:   h.Tag,
		}
	}
	d.offset = h.ContentOffset()
	return d.ReadContent(h.Length)
}

// ReadInteger reads a universal INTEGER.
func (d *BERDecoder) ReadInteger() (int64, error) {
	start := d.offset
	content, err := d.ReadPrimitive(Universal(TagInteger))
	if err != nil {
		return 0, err
	}
	v, err := ParseInteger(content)
	if err != nil {
		return 0, NewDecodeError(start, "invalid integer", err)
	}
	return v, nil
}

// ReadOctetString reads a universal OCTET STRING.
func (d *BERDecoder) ReadOctetString() ([]byte, error) {
	return d.ReadPrimitive(Universal(TagOctetString))
}

// ReadOID reads a universal OBJECT IDENTIFIER.
func (d *BERDecoder) ReadOID() (OID, error) {
	start := d.offset
	content, err := d.ReadPrimitive(Universal(TagOID))
	if err != nil {
		return nil, err
	}
	oid, err := ParseOID(content)
	if err != nil {
		return nil, NewDecodeError(start, "invalid object identifier", err)
	}
	return oid, nil
}

// Expect reads the header of a constructed element with the expected tag and
// returns a decoder over its content.
func (d *BERDecoder) Expect(expected Tag) (*BERDecoder, error) {
	start := d.offset
	h, err := DecodeHeader(d.bounded(), d.offset)
	if err != nil {
		return nil, err
	}
	if !h.Tag.Matches(expected) {
		return nil, &TagMismatchError{
			Offset:   start,
			Expected: expected,
			Actual:   h.Tag,
		}
	}
	d.offset = h.ContentOffset()
	return d.Window(h.Length)
}

// ExpectSequence reads a SEQUENCE header and returns a decoder over its content.
func (d *BERDecoder) ExpectSequence() (*BERDecoder, error) {
	return d.Expect(Universal(TagSequence))
}
