package codec

import (
	"bytes"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

func tlv(tag ber.Tag, parts ...[]byte) []byte {
	enc := ber.NewBEREncoder(32)
	content := bytes.Join(parts, nil)
	if tag.Constructed {
		pos := enc.Begin(tag)
		enc.WriteRaw(content)
		_ = enc.End(pos)
		return enc.Bytes()
	}
	_ = enc.WritePrimitive(tag, content)
	return enc.Bytes()
}

func constructed(tag ber.Tag) ber.Tag {
	tag.Constructed = true
	return tag
}

func seq(parts ...[]byte) []byte {
	return tlv(ber.UniversalConstructed(ber.TagSequence), parts...)
}

func set(parts ...[]byte) []byte {
	return tlv(ber.UniversalConstructed(ber.TagSet), parts...)
}

func integer(v int64) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteInteger(v)
	return enc.Bytes()
}

func octets(s string) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteOctetString([]byte(s))
	return enc.Bytes()
}

func boolean(v bool) []byte {
	enc := ber.NewBEREncoder(4)
	_ = enc.WriteBoolean(v)
	return enc.Bytes()
}

func null() []byte {
	return []byte{0x05, 0x00}
}

func oid(s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteOID(s)
	return enc.Bytes()
}

func ia5(s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteString(ber.TagIA5String, s)
	return enc.Bytes()
}

// shape is a Node without source positions, for comparing trees.
type shape struct {
	Name      string
	Value     any
	Label     string
	Absent    bool
	Extension bool
	Malformed bool
	Children  []shape
}

func shapeOf(n *Node) shape {
	s := shape{
		Name:      n.Name,
		Value:     n.Value,
		Label:     n.Label,
		Absent:    n.Absent,
		Extension: n.Extension,
		Malformed: n.Malformed,
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func mustBuild(b *Builder) *Registry {
	reg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return reg
}
