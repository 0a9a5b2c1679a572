package codec

import (
	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// Tagged is a type defined with its own tag, such as
// "BindRequest ::= [APPLICATION 0] SEQUENCE {...}".
//
// Field-level tags are carried by Field flags instead; both follow the same
// rules. IMPLICIT replaces the inner type's tag. EXPLICIT wraps exactly one
// inner TLV. IMPLICIT on a type without a tag of its own is EXPLICIT.
type Tagged struct {
	Name     string
	Tag      ber.Tag
	Inner    Type
	explicit bool
}

// ImplicitType returns "[tag] IMPLICIT inner".
func ImplicitType(name string, tag ber.Tag, inner Type) *Tagged {
	return &Tagged{Name: name, Tag: tag, Inner: inner}
}

// ExplicitType returns "[tag] EXPLICIT inner".
func ExplicitType(name string, tag ber.Tag, inner Type) *Tagged {
	return &Tagged{Name: name, Tag: tag, Inner: inner, explicit: true}
}

func (t *Tagged) TypeName() string { return t.Name }

func (t *Tagged) OwnTag() (ber.Tag, bool) { return t.Tag, true }

func (t *Tagged) Matches(tag ber.Tag) bool { return tag.Matches(t.Tag) }

// Explicit reports whether the inner value is wrapped in its own TLV.
func (t *Tagged) Explicit() bool {
	if t.explicit {
		return true
	}
	_, own := t.Inner.OwnTag()
	return !own
}

func (t *Tagged) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	if t.Explicit() {
		if !h.Tag.Constructed {
			c.Fail(n, InvalidValue, "explicit tag must be constructed")
			c.Opaque(content, n)
			return
		}
		c.decodeInner(t.Inner, content, n)
		return
	}
	c.invoke(t.Inner, h, content, n)
}
