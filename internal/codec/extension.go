package codec

import (
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// Any is ANY: the value is kept as raw content bytes.
type Any struct{}

func (Any) TypeName() string { return "ANY" }

func (Any) OwnTag() (ber.Tag, bool) { return ber.Tag{}, false }

func (Any) Matches(ber.Tag) bool { return true }

func (Any) DecodeValue(c *Context, _ ber.Header, content *ber.BERDecoder, n *Node) {
	c.Opaque(content, n)
}

// OpenType is ANY DEFINED BY: the decoder is looked up in the extension
// registry under the OID of the innermost scope's identifier field.
type OpenType struct {
	Name string
}

// Open returns an open type.
func Open(name string) *OpenType {
	return &OpenType{Name: name}
}

func (o *OpenType) TypeName() string { return o.Name }

func (o *OpenType) OwnTag() (ber.Tag, bool) { return ber.Tag{}, false }

func (o *OpenType) Matches(ber.Tag) bool { return true }

func (o *OpenType) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	ext, oid, ok := c.lookupOpen()
	if !ok {
		c.unknownExtension(n, oid)
		c.Opaque(content, n)
		return
	}
	if !ext.Matches(h.Tag) {
		c.Fail(n, UnexpectedTag, fmt.Sprintf("extension %s (%s) does not accept %s", oid, ext.TypeName(), h.Tag))
		c.Opaque(content, n)
		return
	}
	n.Type = ext.TypeName()
	c.invoke(ext, h, content, n)
}

// lookupOpen resolves the current scope identifier to an extension.
func (c *Context) lookupOpen() (Type, string, bool) {
	id, ok := c.Identifier()
	if !ok {
		return nil, "", false
	}
	if id.Numeric {
		return nil, id.String(), false
	}
	ext, ok := c.reg.Extension(id.OID)
	return ext, id.OID, ok
}

func (c *Context) unknownExtension(n *Node, oid string) {
	n.Extension = true
	if oid == "" {
		c.Warn(n, UnknownExtensionOID, "no identifier in scope")
		return
	}
	c.Warn(n, UnknownExtensionOID, "no decoder registered for "+oid)
}

// ResolveAndDecode decodes the next TLV of d with the extension registered
// under oid. Unknown OIDs produce an opaque Extension node; the cursor
// advances by exactly one TLV either way.
func (c *Context) ResolveAndDecode(oid string, d *ber.BERDecoder, name string) *Node {
	if ext, ok := c.reg.Extension(oid); ok {
		return c.DecodeElement(d, name, ext)
	}

	n := &Node{Name: name, Type: "ANY", Offset: d.Offset()}
	if _, err := d.PeekHeader(); err != nil {
		n.Length = d.Remaining()
		c.Fail(n, KindOf(err), err.Error())
		d.SetOffset(d.End())
		return n
	}
	opaque := c.opaqueElement(d, name)
	opaque.Type = n.Type
	c.unknownExtension(opaque, oid)
	return opaque
}

func isOpenType(t Type) bool {
	switch v := resolve(t).(type) {
	case *OpenType:
		return true
	case *Containing:
		return isOpenType(v.Inner)
	case *Tagged:
		return isOpenType(v.Inner)
	}
	return false
}

// Containing is an OCTET STRING whose content is one encoded value of
// Inner (OCTET STRING (CONTAINING Inner)).
type Containing struct {
	Inner Type
}

// ContainingOf returns OCTET STRING (CONTAINING inner).
func ContainingOf(inner Type) *Containing {
	return &Containing{Inner: inner}
}

func (x *Containing) TypeName() string {
	return "OCTET STRING (CONTAINING " + x.Inner.TypeName() + ")"
}

func (x *Containing) OwnTag() (ber.Tag, bool) {
	return ber.Universal(ber.TagOctetString), true
}

func (x *Containing) Matches(t ber.Tag) bool {
	return t.Matches(ber.Universal(ber.TagOctetString))
}

func (x *Containing) DecodeValue(c *Context, _ ber.Header, content *ber.BERDecoder, n *Node) {
	if _, ok := resolve(x.Inner).(*OpenType); ok {
		if _, oid, found := c.lookupOpen(); !found {
			c.unknownExtension(n, oid)
			c.Opaque(content, n)
			return
		}
	}
	c.decodeInner(x.Inner, content, n)
}

// DecodeFunc is a hand-written decoder for a value whose header has been
// read. It must leave content exhausted or accept a TrailingData anomaly.
type DecodeFunc func(c *Context, h ber.Header, content *ber.BERDecoder, n *Node)

// Func wraps a DecodeFunc as a Type.
type Func struct {
	Name string
	// Tag restricts the accepted tag; nil accepts any tag.
	Tag *ber.Tag
	Fn  DecodeFunc
}

// Callback returns a Func that accepts any tag.
func Callback(name string, fn DecodeFunc) *Func {
	return &Func{Name: name, Fn: fn}
}

// WithTag restricts f to one tag.
func (f *Func) WithTag(tag ber.Tag) *Func {
	f.Tag = &tag
	return f
}

func (f *Func) TypeName() string { return f.Name }

func (f *Func) OwnTag() (ber.Tag, bool) {
	if f.Tag == nil {
		return ber.Tag{}, false
	}
	return *f.Tag, true
}

func (f *Func) Matches(t ber.Tag) bool {
	return f.Tag == nil || t.Matches(*f.Tag)
}

func (f *Func) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	defer func() {
		if r := recover(); r != nil {
			c.Fail(n, InvalidValue, fmt.Sprintf("%s: decoder panic: %v", f.Name, r))
			content.SetOffset(content.End())
		}
	}()
	f.Fn(c, h, content, n)
}
