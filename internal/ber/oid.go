// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"fmt"
	"strconv"
	"strings"
)

// OID is an object identifier as a list of arcs.
type OID []uint64

// String returns the dotted decimal form.
func (o OID) String() string {
	var sb strings.Builder
	for i, arc := range o {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(arc, 10))
	}
	return sb.String()
}

// Equal reports whether o and other have the same arcs.
func (o OID) Equal(other OID) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// Encode returns the content octets of o.
func (o OID) Encode() ([]byte, error) {
	if len(o) < 2 || o[0] > 2 || (o[0] < 2 && o[1] >= 40) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOID, o.String())
	}

	e := &BEREncoder{}
	e.writeBase128(o[0]*40 + o[1])
	for _, arc := range o[2:] {
		e.writeBase128(arc)
	}
	return e.buf, nil
}

// OIDFromString parses a dotted decimal OID such as "2.5.4.3".
func OIDFromString(s string) (OID, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidOID)
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least two arcs", ErrInvalidOID, s)
	}

	oid := make(OID, len(parts))
	for i, p := range parts {
		if p == "" || (len(p) > 1 && p[0] == '0') {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOID, s)
		}
		oid[i] = v
	}
	if oid[0] > 2 || (oid[0] < 2 && oid[1] >= 40) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOID, s)
	}
	return oid, nil
}

// IsValidOID reports whether s is a well-formed dotted OID.
func IsValidOID(s string) bool {
	_, err := OIDFromString(s)
	return err == nil
}
