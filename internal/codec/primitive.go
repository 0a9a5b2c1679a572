package codec

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

type primitiveKind int

const (
	primInteger primitiveKind = iota
	primEnumerated
	primBoolean
	primNull
	primOctetString
	primText
	primOID
	primRelativeOID
	primBitString
	primString
	primBMPString
	primUniversalString
)

// Primitive decodes universal primitive types.
type Primitive struct {
	name  string
	kind  primitiveKind
	tag   ber.Tag
	names map[int64]string
}

func newPrimitive(name string, kind primitiveKind, number int) *Primitive {
	return &Primitive{name: name, kind: kind, tag: ber.Universal(number)}
}

// Integer returns INTEGER. Named numbers are optional.
func Integer(names ...map[int64]string) *Primitive {
	p := newPrimitive("INTEGER", primInteger, ber.TagInteger)
	if len(names) > 0 {
		p.names = names[0]
	}
	return p
}

// Enumerated returns ENUMERATED with the given named values.
func Enumerated(names map[int64]string) *Primitive {
	p := newPrimitive("ENUMERATED", primEnumerated, ber.TagEnumerated)
	p.names = names
	return p
}

// Boolean returns BOOLEAN.
func Boolean() *Primitive { return newPrimitive("BOOLEAN", primBoolean, ber.TagBoolean) }

// Null returns NULL.
func Null() *Primitive { return newPrimitive("NULL", primNull, ber.TagNull) }

// OctetString returns OCTET STRING with a []byte value.
func OctetString() *Primitive {
	return newPrimitive("OCTET STRING", primOctetString, ber.TagOctetString)
}

// OctetText returns an OCTET STRING that carries UTF-8 text.
func OctetText() *Primitive {
	return newPrimitive("OCTET STRING", primText, ber.TagOctetString)
}

// ObjectIdentifier returns OBJECT IDENTIFIER.
func ObjectIdentifier() *Primitive {
	return newPrimitive("OBJECT IDENTIFIER", primOID, ber.TagOID)
}

// RelativeOID returns RELATIVE-OID.
func RelativeOID() *Primitive {
	return newPrimitive("RELATIVE-OID", primRelativeOID, ber.TagRelativeOID)
}

// BitString returns BIT STRING.
func BitString() *Primitive {
	return newPrimitive("BIT STRING", primBitString, ber.TagBitString)
}

// UTF8String returns UTF8String.
func UTF8String() *Primitive {
	return newPrimitive("UTF8String", primString, ber.TagUTF8String)
}

// PrintableString returns PrintableString.
func PrintableString() *Primitive {
	return newPrimitive("PrintableString", primString, ber.TagPrintableString)
}

// IA5String returns IA5String.
func IA5String() *Primitive {
	return newPrimitive("IA5String", primString, ber.TagIA5String)
}

// NumericString returns NumericString.
func NumericString() *Primitive {
	return newPrimitive("NumericString", primString, ber.TagNumericString)
}

// TeletexString returns TeletexString.
func TeletexString() *Primitive {
	return newPrimitive("TeletexString", primString, ber.TagTeletexString)
}

// VisibleString returns VisibleString.
func VisibleString() *Primitive {
	return newPrimitive("VisibleString", primString, ber.TagVisibleString)
}

// GeneralString returns GeneralString.
func GeneralString() *Primitive {
	return newPrimitive("GeneralString", primString, ber.TagGeneralString)
}

// BMPString returns BMPString (UCS-2).
func BMPString() *Primitive {
	return newPrimitive("BMPString", primBMPString, ber.TagBMPString)
}

// UniversalString returns UniversalString (UCS-4).
func UniversalString() *Primitive {
	return newPrimitive("UniversalString", primUniversalString, ber.TagUniversalString)
}

// UTCTime returns UTCTime, kept as its string form.
func UTCTime() *Primitive {
	return newPrimitive("UTCTime", primString, ber.TagUTCTime)
}

// GeneralizedTime returns GeneralizedTime, kept as its string form.
func GeneralizedTime() *Primitive {
	return newPrimitive("GeneralizedTime", primString, ber.TagGeneralizedTime)
}

// Named returns a copy of p under another type name.
func (p *Primitive) Named(name string) *Primitive {
	cp := *p
	cp.name = name
	return &cp
}

func (p *Primitive) TypeName() string { return p.name }

func (p *Primitive) OwnTag() (ber.Tag, bool) { return p.tag, true }

func (p *Primitive) Matches(t ber.Tag) bool { return t.Matches(p.tag) }

func (p *Primitive) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	if h.Tag.Constructed {
		c.Fail(n, InvalidValue, "constructed encoding of "+p.name)
		c.Opaque(content, n)
		return
	}

	raw, _ := content.ReadContent(content.Remaining())
	if err := p.parse(raw, n); err != nil {
		c.Fail(n, InvalidValue, err.Error())
		n.Kind = KindOpaque
		n.Value = raw
	}
}

func (p *Primitive) parse(raw []byte, n *Node) error {
	switch p.kind {
	case primInteger, primEnumerated:
		if len(raw) > 8 && p.kind == primInteger {
			v, err := ber.ParseBigInteger(raw)
			if err != nil {
				return err
			}
			n.Kind, n.Value = KindInteger, v
			return nil
		}
		v, err := ber.ParseInteger(raw)
		if err != nil {
			return err
		}
		n.Kind, n.Value = KindInteger, v
		n.Label = p.names[v]
	case primBoolean:
		v, err := ber.ParseBoolean(raw)
		if err != nil {
			return err
		}
		n.Kind, n.Value = KindBoolean, v
	case primNull:
		if err := ber.ParseNull(raw); err != nil {
			return err
		}
		n.Kind = KindNull
	case primOctetString:
		n.Kind, n.Value = KindBytes, raw
	case primText:
		if !utf8.Valid(raw) {
			n.Kind, n.Value = KindBytes, raw
			return nil
		}
		n.Kind, n.Value = KindString, string(raw)
	case primOID:
		v, err := ber.ParseOID(raw)
		if err != nil {
			return err
		}
		n.Kind, n.Value = KindOID, v
	case primRelativeOID:
		v, err := ber.ParseRelativeOID(raw)
		if err != nil {
			return err
		}
		n.Kind, n.Value = KindOID, v
	case primBitString:
		v, err := ber.ParseBitString(raw)
		if err != nil {
			return err
		}
		n.Kind, n.Value = KindBitString, v
	case primString:
		n.Kind, n.Value = KindString, string(raw)
	case primBMPString:
		if len(raw)%2 != 0 {
			return fmt.Errorf("BMPString has odd length %d", len(raw))
		}
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
		}
		n.Kind, n.Value = KindString, string(utf16.Decode(units))
	case primUniversalString:
		if len(raw)%4 != 0 {
			return fmt.Errorf("UniversalString has length %d", len(raw))
		}
		runes := make([]rune, len(raw)/4)
		for i := range runes {
			runes[i] = rune(raw[4*i])<<24 | rune(raw[4*i+1])<<16 | rune(raw[4*i+2])<<8 | rune(raw[4*i+3])
		}
		n.Kind, n.Value = KindString, string(runes)
	}
	return nil
}
