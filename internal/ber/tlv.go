// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

// DecodeTag reads the identifier octets at offset.
// It returns the tag and the offset of the first length octet.
func DecodeTag(buf []byte, offset int) (Tag, int, error) {
	if offset < 0 || offset >= len(buf) {
		return Tag{}, offset, NewDecodeError(offset, "cannot read tag", ErrInsufficientData)
	}

	first := buf[offset]
	pos := offset + 1

	tag := Tag{
		Class:       Class(first & 0xC0),
		Constructed: first&TypeConstructed != 0,
		Number:      int(first & 0x1F),
	}
	if tag.Number != 0x1F {
		return tag, pos, nil
	}

	// Long form: base-128, high bit marks continuation
	number := 0
	for i := 0; ; i++ {
		if pos >= len(buf) {
			return Tag{}, offset, NewDecodeError(offset, "truncated long form tag number", ErrMalformedTag)
		}
		b := buf[pos]
		pos++

		if i == 0 && b == 0x80 {
			return Tag{}, offset, NewDecodeError(offset, "non-minimal long form tag number", ErrMalformedTag)
		}
		number = number<<7 | int(b&0x7F)
		if number > maxTagNumber {
			return Tag{}, offset, NewDecodeError(offset, "tag number overflow", ErrMalformedTag)
		}
		if b&0x80 == 0 {
			break
		}
	}
	tag.Number = number
	return tag, pos, nil
}

// DecodeLength reads the length octets at offset and checks the declared
// length against the bytes left in buf. It returns the content length and the
// offset of the first content octet.
func DecodeLength(buf []byte, offset int) (int, int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, offset, NewDecodeError(offset, "cannot read length", ErrInsufficientData)
	}

	first := buf[offset]
	pos := offset + 1
	length := 0

	switch {
	case first&LengthLongFormBit == 0:
		length = int(first)
	case first == LengthLongFormBit:
		return 0, offset, NewDecodeError(offset, "indefinite length encoding not supported", ErrMalformedLength)
	case first == 0xFF:
		return 0, offset, NewDecodeError(offset, "reserved length octet 0xFF", ErrMalformedLength)
	default:
		numBytes := int(first & 0x7F)
		if numBytes > 8 {
			return 0, offset, NewDecodeError(offset, "too many length octets", ErrMalformedLength)
		}
		if pos+numBytes > len(buf) {
			return 0, offset, NewDecodeError(offset, "truncated length encoding", ErrInsufficientData)
		}
		for i := 0; i < numBytes; i++ {
			length = length<<8 | int(buf[pos])
			pos++
			if length > MaxLength {
				return 0, offset, NewDecodeError(offset, "length value overflow", ErrMalformedLength)
			}
		}
	}

	if length > len(buf)-pos {
		return 0, offset, NewDecodeError(offset, "declared length exceeds available data", ErrInsufficientData)
	}
	return length, pos, nil
}

// DecodeHeader reads one tag and one length at offset.
func DecodeHeader(buf []byte, offset int) (Header, error) {
	tag, pos, err := DecodeTag(buf, offset)
	if err != nil {
		return Header{}, err
	}
	length, pos, err := DecodeLength(buf, pos)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Tag:          tag,
		Offset:       offset,
		HeaderLength: pos - offset,
		Length:       length,
	}, nil
}
