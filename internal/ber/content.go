// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseBoolean decodes the content octets of a BOOLEAN.
func ParseBoolean(content []byte) (bool, error) {
	if len(content) != 1 {
		return false, ErrInvalidBoolean
	}
	return content[0] != 0x00, nil
}

// ParseNull checks the content octets of a NULL.
func ParseNull(content []byte) error {
	if len(content) != 0 {
		return ErrInvalidNull
	}
	return nil
}

// ParseInteger decodes the content octets of an INTEGER or ENUMERATED that
// fits in 64 bits.
func ParseInteger(content []byte) (int64, error) {
	if len(content) == 0 || len(content) > 8 {
		return 0, ErrInvalidInteger
	}

	var result int64
	// Sign-extend from the first octet
	if content[0]&0x80 != 0 {
		result = -1
	}
	for _, b := range content {
		result = result<<8 | int64(b)
	}
	return result, nil
}

// ParseBigInteger decodes INTEGER content octets of any size.
func ParseBigInteger(content []byte) (*big.Int, error) {
	if len(content) == 0 {
		return nil, ErrInvalidInteger
	}
	v := new(big.Int).SetBytes(content)
	if content[0]&0x80 != 0 {
		// Two's complement: subtract 2^(8n)
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(content))*8))
	}
	return v, nil
}

// BitString is a decoded BIT STRING.
type BitString struct {
	Bytes     []byte
	BitLength int
}

// At returns the bit at index i, numbered from the most significant bit.
func (b BitString) At(i int) bool {
	if i < 0 || i >= b.BitLength {
		return false
	}
	return b.Bytes[i/8]&(0x80>>(uint(i)%8)) != 0
}

// String renders the bits as a binary string.
func (b BitString) String() string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for i := 0; i < b.BitLength; i++ {
		if b.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString("'B")
	return sb.String()
}

// ParseBitString decodes the content octets of a primitive BIT STRING.
func ParseBitString(content []byte) (BitString, error) {
	if len(content) == 0 {
		return BitString{}, ErrInvalidBitString
	}
	unused := int(content[0])
	if unused > 7 || (len(content) == 1 && unused != 0) {
		return BitString{}, ErrInvalidBitString
	}
	bits := make([]byte, len(content)-1)
	copy(bits, content[1:])
	return BitString{
		Bytes:     bits,
		BitLength: len(bits)*8 - unused,
	}, nil
}

// ParseOID decodes the content octets of an OBJECT IDENTIFIER.
func ParseOID(content []byte) (OID, error) {
	arcs, err := parseArcs(content)
	if err != nil {
		return nil, err
	}

	first := arcs[0]
	oid := make(OID, 0, len(arcs)+1)
	switch {
	case first < 40:
		oid = append(oid, 0, first)
	case first < 80:
		oid = append(oid, 1, first-40)
	default:
		oid = append(oid, 2, first-80)
	}
	return append(oid, arcs[1:]...), nil
}

// ParseRelativeOID decodes the content octets of a RELATIVE-OID.
func ParseRelativeOID(content []byte) (OID, error) {
	return parseArcs(content)
}

// parseArcs splits base-128 subidentifiers.
func parseArcs(content []byte) (OID, error) {
	if len(content) == 0 {
		return nil, ErrInvalidOID
	}
	out := make(OID, 0, len(content))
	var v uint64
	start := true
	for i, b := range content {
		if start && b == 0x80 {
			return nil, fmt.Errorf("%w: non-minimal subidentifier", ErrInvalidOID)
		}
		if v > (1<<57)-1 {
			return nil, fmt.Errorf("%w: subidentifier overflow", ErrInvalidOID)
		}
		v = v<<7 | uint64(b&0x7F)
		start = false
		if b&0x80 != 0 {
			if i == len(content)-1 {
				return nil, fmt.Errorf("%w: truncated subidentifier", ErrInvalidOID)
			}
			continue
		}
		out = append(out, v)
		v = 0
		start = true
	}
	return out, nil
}
