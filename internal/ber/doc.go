// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding and decoding
// as specified in ITU-T X.690.
//
// This package provides the TLV layer used by the schema-driven decoder in
// internal/codec. It only understands tags, lengths and primitive content
// octets; structure is described elsewhere.
//
// # Tag Classes
//
// BER uses four tag classes to identify data types:
//
//   - Universal (0x00): Standard ASN.1 types like INTEGER, BOOLEAN, SEQUENCE
//   - Application (0x40): Protocol-specific types (LDAP operations)
//   - Context-specific (0x80): Context-dependent types within a structure
//   - Private (0xC0): Organization-specific types
//
// # Decoding
//
// DecodeTag, DecodeLength and DecodeHeader are pure functions over a buffer
// and an absolute offset. A declared length that runs past the buffer is
// reported as ErrInsufficientData; structurally invalid octets are reported
// as ErrMalformedTag or ErrMalformedLength. Indefinite lengths are rejected.
//
// BERDecoder is a bounded cursor built on those functions:
//
//	dec := ber.NewBERDecoder(data)
//	h, err := dec.ReadHeader()
//	if err != nil {
//	    // handle error
//	}
//	content, err := dec.Window(h.Length)
//
// All offsets, including those inside windows, are absolute positions in the
// original buffer.
//
// # Encoding
//
// Use BEREncoder to build BER-encoded data:
//
//	encoder := ber.NewBEREncoder(256)
//	pos := encoder.BeginSequence()
//	encoder.WriteInteger(1)
//	encoder.WriteOID("2.5.4.3")
//	encoder.EndSequence(pos)
//	data := encoder.Bytes()
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - ITU-T X.680: ASN.1 notation
package ber
