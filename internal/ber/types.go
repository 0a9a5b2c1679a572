// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import "fmt"

// Class is the tag class (bits 7-8 of the identifier octet).
type Class uint8

// Tag class constants (bits 7-8 of the tag byte)
const (
	ClassUniversal       Class = 0x00 // 00xxxxxx
	ClassApplication     Class = 0x40 // 01xxxxxx
	ClassContextSpecific Class = 0x80 // 10xxxxxx
	ClassPrivate         Class = 0xC0 // 11xxxxxx
)

// String returns the short ASN.1 notation prefix for the class.
func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return fmt.Sprintf("Class(%#x)", uint8(c))
	}
}

// Constructed flag (bit 6 of the tag byte)
const (
	TypePrimitive   = 0x00 // xx0xxxxx
	TypeConstructed = 0x20 // xx1xxxxx
)

// Universal tag numbers
const (
	TagEndOfContents   = 0x00
	TagBoolean         = 0x01
	TagInteger         = 0x02
	TagBitString       = 0x03
	TagOctetString     = 0x04
	TagNull            = 0x05
	TagOID             = 0x06
	TagObjectDesc      = 0x07
	TagExternal        = 0x08
	TagReal            = 0x09
	TagEnumerated      = 0x0A
	TagEmbeddedPDV     = 0x0B
	TagUTF8String      = 0x0C
	TagRelativeOID     = 0x0D
	TagSequence        = 0x10
	TagSet             = 0x11
	TagNumericString   = 0x12
	TagPrintableString = 0x13
	TagTeletexString   = 0x14
	TagVideotexString  = 0x15
	TagIA5String       = 0x16
	TagUTCTime         = 0x17
	TagGeneralizedTime = 0x18
	TagGraphicString   = 0x19
	TagVisibleString   = 0x1A
	TagGeneralString   = 0x1B
	TagUniversalString = 0x1C
	TagBMPString       = 0x1E
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set)
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// MaxLength is the largest content length the decoder accepts.
	MaxLength = 1<<31 - 1
	// maxTagNumber bounds long-form tag numbers (four continuation octets).
	maxTagNumber = 1<<28 - 1
)

// Tag identifies the type of a TLV element.
type Tag struct {
	Class       Class
	Number      int
	Constructed bool
}

// Universal returns a primitive UNIVERSAL tag.
func Universal(number int) Tag {
	return Tag{Class: ClassUniversal, Number: number}
}

// UniversalConstructed returns a constructed UNIVERSAL tag (SEQUENCE, SET).
func UniversalConstructed(number int) Tag {
	return Tag{Class: ClassUniversal, Number: number, Constructed: true}
}

// App returns an APPLICATION tag.
func App(number int) Tag {
	return Tag{Class: ClassApplication, Number: number}
}

// Ctx returns a context-specific tag.
func Ctx(number int) Tag {
	return Tag{Class: ClassContextSpecific, Number: number}
}

// Private returns a PRIVATE tag.
func Private(number int) Tag {
	return Tag{Class: ClassPrivate, Number: number}
}

// Matches reports whether t and other share class and number. The
// constructed bit is a property of the encoding, not of the type.
func (t Tag) Matches(other Tag) bool {
	return t.Class == other.Class && t.Number == other.Number
}

// IsZero reports whether t is the zero tag (UNIVERSAL 0, end-of-contents).
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// String returns the tag in ASN.1 notation, e.g. "[CONTEXT 3]/c".
func (t Tag) String() string {
	form := "p"
	if t.Constructed {
		form = "c"
	}
	return fmt.Sprintf("[%s %d]/%s", t.Class, t.Number, form)
}

// Header is a decoded tag and length, located in the source buffer.
type Header struct {
	Tag Tag
	// Offset is the absolute position of the first identifier octet.
	Offset int
	// HeaderLength is the number of identifier and length octets.
	HeaderLength int
	// Length is the declared content length.
	Length int
}

// ContentOffset returns the absolute offset of the first content octet.
func (h Header) ContentOffset() int {
	return h.Offset + h.HeaderLength
}

// End returns the absolute offset just past the content.
func (h Header) End() int {
	return h.Offset + h.HeaderLength + h.Length
}

// TotalLength returns the length of the whole TLV.
func (h Header) TotalLength() int {
	return h.HeaderLength + h.Length
}
