package codec

import (
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// Type decodes the content of one ASN.1 value.
//
// The engine reads the header, checks Matches, and hands DecodeValue a
// cursor bounded to the content octets. Types without a tag of their own
// (CHOICE, ANY, open types) report ok=false from OwnTag.
type Type interface {
	TypeName() string
	OwnTag() (tag ber.Tag, ok bool)
	Matches(tag ber.Tag) bool
	DecodeValue(ctx *Context, h ber.Header, content *ber.BERDecoder, n *Node)
}

// Sequence is a SEQUENCE with positional fields.
type Sequence struct {
	Name   string
	Fields []*Field
}

// NewSequence returns a SEQUENCE type.
func NewSequence(name string, fields ...*Field) *Sequence {
	return &Sequence{Name: name, Fields: fields}
}

func (s *Sequence) TypeName() string { return s.Name }

func (s *Sequence) OwnTag() (ber.Tag, bool) {
	return ber.UniversalConstructed(ber.TagSequence), true
}

func (s *Sequence) Matches(t ber.Tag) bool {
	return t.Matches(ber.Universal(ber.TagSequence))
}

func (s *Sequence) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	if !h.Tag.Constructed {
		c.Fail(n, InvalidValue, "primitive encoding of "+s.Name)
		c.Opaque(content, n)
		return
	}
	n.Kind = KindConstructed

	c.pushScope()
	defer c.popScope()

	for _, f := range s.Fields {
		child := &Node{Name: f.Name, Type: f.Type.TypeName()}
		start := content.Offset()

		switch c.decodeField(f, content, h, child) {
		case fieldPresent:
			n.Children = append(n.Children, child)
			c.after(f, child)
		case fieldMissing:
			if !f.omittable() {
				c.Fail(n, UnexpectedTag, missingDetail(f, content))
				return
			}
			c.absent(f, child, start)
			n.Children = append(n.Children, child)
		case fieldBroken:
			n.Children = append(n.Children, child)
			n.Malformed = true
			return
		}
	}
}

func missingDetail(f *Field, d *ber.BERDecoder) string {
	if d.Empty() {
		return fmt.Sprintf("missing mandatory field %s", f.Name)
	}
	t, _ := d.PeekTag()
	return fmt.Sprintf("missing mandatory field %s, found %s", f.Name, t)
}

// Set is a SET whose members are matched by tag in any order.
type Set struct {
	Name   string
	Fields []*Field
	// Extensible SETs accept unknown members silently.
	Extensible bool
}

// NewSet returns a SET type.
func NewSet(name string, fields ...*Field) *Set {
	return &Set{Name: name, Fields: fields}
}

func (s *Set) TypeName() string { return s.Name }

func (s *Set) OwnTag() (ber.Tag, bool) {
	return ber.UniversalConstructed(ber.TagSet), true
}

func (s *Set) Matches(t ber.Tag) bool {
	return t.Matches(ber.Universal(ber.TagSet))
}

type deferredMember struct {
	index  int
	header ber.Header
	tlv    *ber.BERDecoder
}

func (s *Set) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	if !h.Tag.Constructed {
		c.Fail(n, InvalidValue, "primitive encoding of "+s.Name)
		c.Opaque(content, n)
		return
	}
	n.Kind = KindConstructed

	c.pushScope()
	defer c.popScope()

	members := make([]*Node, len(s.Fields))
	var extras []*Node
	var deferred []deferredMember

	for !content.Empty() {
		mh, err := content.PeekHeader()
		if err != nil {
			broken := &Node{Name: "member", Offset: content.Offset(), Length: content.Remaining()}
			c.Fail(broken, KindOf(err), err.Error())
			extras = append(extras, broken)
			n.Malformed = true
			content.SetOffset(content.End())
			break
		}

		idx := s.lookup(mh.Tag)
		if idx < 0 || members[idx] != nil {
			ext := c.opaqueElement(content, "extension")
			if !s.Extensible {
				detail := "unknown member " + mh.Tag.String()
				if idx >= 0 {
					detail = "duplicate member " + s.Fields[idx].Name
				}
				c.Warn(ext, UnexpectedTag, detail)
			}
			extras = append(extras, ext)
			continue
		}

		f := s.Fields[idx]
		child := &Node{Name: f.Name, Type: f.Type.TypeName()}
		members[idx] = child

		if _, known := c.Identifier(); !known && isOpenType(f.Type) {
			tlv, _ := content.Clone().Window(mh.TotalLength())
			content.Skip()
			deferred = append(deferred, deferredMember{index: idx, header: mh, tlv: tlv})
			continue
		}

		c.decodeField(f, content, h, child)
		c.after(f, child)
	}

	for _, m := range deferred {
		f := s.Fields[m.index]
		c.decodeField(f, m.tlv, h, members[m.index])
		c.after(f, members[m.index])
	}

	for i, f := range s.Fields {
		child := members[i]
		if child == nil {
			if !f.omittable() {
				c.Fail(n, UnexpectedTag, "missing mandatory member "+f.Name)
				continue
			}
			child = &Node{Name: f.Name, Type: f.Type.TypeName()}
			c.absent(f, child, content.Offset())
		}
		n.Children = append(n.Children, child)
	}
	n.Children = append(n.Children, extras...)
}

func (s *Set) lookup(t ber.Tag) int {
	for i, f := range s.Fields {
		if !f.Flags.Has(FlagNoOwnTag) && f.matches(t) {
			return i
		}
	}
	return -1
}

// Choice selects one alternative by the leading tag. Alternative tags are
// assumed to be pairwise distinct.
type Choice struct {
	Name         string
	Alternatives []*Field
}

// NewChoice returns a CHOICE type.
func NewChoice(name string, alternatives ...*Field) *Choice {
	return &Choice{Name: name, Alternatives: alternatives}
}

func (ch *Choice) TypeName() string { return ch.Name }

func (ch *Choice) OwnTag() (ber.Tag, bool) { return ber.Tag{}, false }

func (ch *Choice) Matches(t ber.Tag) bool {
	return ch.alternative(t) != nil
}

func (ch *Choice) alternative(t ber.Tag) *Field {
	for _, alt := range ch.Alternatives {
		if alt.matches(t) {
			return alt
		}
	}
	return nil
}

func (ch *Choice) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	alt := ch.alternative(h.Tag)
	if alt == nil {
		c.Fail(n, UnknownChoiceAlternative, fmt.Sprintf("%s has no alternative for %s", ch.Name, h.Tag))
		c.Opaque(content, n)
		return
	}

	child := &Node{
		Name:   alt.Name,
		Type:   alt.Type.TypeName(),
		Tag:    h.Tag,
		Offset: h.Offset,
		Length: h.TotalLength(),
	}
	c.decodeResolved(alt, h, content, child)
	c.after(alt, child)

	n.Kind = KindChoice
	n.Label = alt.Name
	n.Children = append(n.Children, child)
	if child.Malformed {
		n.Malformed = true
	}
}

// Of is a SEQUENCE OF or SET OF with optional size bounds.
type Of struct {
	Name    string
	Element *Field
	Min     int
	// Max of zero means unbounded.
	Max int
	set bool
}

// SequenceOf returns SEQUENCE OF t.
func SequenceOf(t Type) *Of {
	return &Of{
		Name:    "SEQUENCE OF " + t.TypeName(),
		Element: F(elementName(t), t),
	}
}

// SetOf returns SET OF t.
func SetOf(t Type) *Of {
	return &Of{
		Name:    "SET OF " + t.TypeName(),
		Element: F(elementName(t), t),
		set:     true,
	}
}

// OfField returns a SEQUENCE OF whose element carries its own field options.
func OfField(f *Field) *Of {
	return &Of{Name: "SEQUENCE OF " + f.Type.TypeName(), Element: f}
}

func elementName(t Type) string {
	if r, ok := t.(*Ref); ok {
		return r.name
	}
	return "item"
}

// Size sets SIZE(min..max). A max of zero leaves the upper bound open.
func (o *Of) Size(min, max int) *Of {
	o.Min = min
	o.Max = max
	return o
}

// Named overrides the type name.
func (o *Of) Named(name string) *Of {
	o.Name = name
	return o
}

// Items names the element nodes.
func (o *Of) Items(name string) *Of {
	o.Element.Name = name
	return o
}

func (o *Of) TypeName() string { return o.Name }

func (o *Of) OwnTag() (ber.Tag, bool) {
	if o.set {
		return ber.UniversalConstructed(ber.TagSet), true
	}
	return ber.UniversalConstructed(ber.TagSequence), true
}

func (o *Of) Matches(t ber.Tag) bool {
	own, _ := o.OwnTag()
	return t.Matches(own)
}

func (o *Of) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	if !h.Tag.Constructed {
		c.Fail(n, InvalidValue, "primitive encoding of "+o.Name)
		c.Opaque(content, n)
		return
	}
	n.Kind = KindConstructed

	count := 0
	for !content.Empty() {
		child := &Node{Name: o.Element.Name, Type: o.Element.Type.TypeName()}
		start := content.Offset()
		switch c.decodeField(o.Element, content, h, child) {
		case fieldPresent:
			n.Children = append(n.Children, child)
			c.after(o.Element, child)
			count++
			if content.Offset() == start {
				c.Fail(n, InvalidValue, fmt.Sprintf("element %d of %s consumed no octets", count-1, o.Name))
				content.SetOffset(content.End())
				return
			}
		case fieldMissing:
			t, _ := content.PeekTag()
			c.Fail(n, UnexpectedTag, fmt.Sprintf("element %d of %s: unexpected %s", count, o.Name, t))
			return
		case fieldBroken:
			n.Children = append(n.Children, child)
			n.Malformed = true
			return
		}
	}

	if count < o.Min || (o.Max > 0 && count > o.Max) {
		c.Warn(n, BoundsViolation, fmt.Sprintf("%d elements outside SIZE(%d..%s)", count, o.Min, maxString(o.Max)))
	}
}

func maxString(max int) string {
	if max <= 0 {
		return "MAX"
	}
	return fmt.Sprint(max)
}
