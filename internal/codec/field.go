package codec

import "github.com/KilimcininKorOglu/berx/internal/ber"

// Flags modify how a field is tagged and when it may be omitted.
type Flags uint16

// Field flags.
const (
	FlagOptional Flags = 1 << iota
	FlagDefault
	FlagImplicit
	FlagExplicit
	// FlagNoOwnTag decodes the field from the enclosing value's content
	// without reading a header (COMPONENTS OF).
	FlagNoOwnTag
	// FlagIdentifier makes the field's value key open types that follow
	// it in the same constructed value.
	FlagIdentifier
	// FlagSummarize appends name=value to the summary sink.
	FlagSummarize
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Field describes one component of a SEQUENCE, SET or CHOICE, or the
// element of a SEQUENCE OF.
type Field struct {
	Name    string
	Tag     ber.Tag
	Flags   Flags
	Type    Type
	Default any
}

// F returns a mandatory, untagged field.
func F(name string, t Type) *Field {
	return &Field{Name: name, Type: t}
}

// Optional marks the field OPTIONAL.
func (f *Field) Optional() *Field {
	f.Flags |= FlagOptional
	return f
}

// WithDefault marks the field DEFAULT v. v should have the Go type the
// field's decoder produces (int64 for INTEGER, bool for BOOLEAN, ...).
func (f *Field) WithDefault(v any) *Field {
	f.Flags |= FlagDefault
	f.Default = v
	return f
}

// Implicit gives the field an IMPLICIT tag.
func (f *Field) Implicit(tag ber.Tag) *Field {
	f.Flags = f.Flags&^FlagExplicit | FlagImplicit
	f.Tag = tag
	return f
}

// Explicit gives the field an EXPLICIT tag.
func (f *Field) Explicit(tag ber.Tag) *Field {
	f.Flags = f.Flags&^FlagImplicit | FlagExplicit
	f.Tag = tag
	return f
}

// NoOwnTag makes the field reuse the enclosing header.
func (f *Field) NoOwnTag() *Field {
	f.Flags |= FlagNoOwnTag
	return f
}

// Identifier marks the field as the key for later open types.
func (f *Field) Identifier() *Field {
	f.Flags |= FlagIdentifier
	return f
}

// Summarize adds the field's value to the summary sink.
func (f *Field) Summarize() *Field {
	f.Flags |= FlagSummarize
	return f
}

func (f *Field) omittable() bool {
	return f.Flags&(FlagOptional|FlagDefault) != 0
}

func (f *Field) tagged() bool {
	return f.Flags&(FlagImplicit|FlagExplicit) != 0
}

// explicit reports whether the field's wrapper tag encloses a full inner
// TLV. IMPLICIT on an untagged type (CHOICE, ANY, open type) is EXPLICIT.
func (f *Field) explicit() bool {
	if f.Flags.Has(FlagExplicit) {
		return true
	}
	if f.Flags.Has(FlagImplicit) {
		_, own := f.Type.OwnTag()
		return !own
	}
	return false
}

// matches reports whether a TLV with tag t is an encoding of this field.
func (f *Field) matches(t ber.Tag) bool {
	if f.tagged() {
		return f.Tag.Matches(t)
	}
	return f.Type.Matches(t)
}
