package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// Registry errors
var (
	ErrRegistryFrozen = errors.New("codec: registry is frozen")
	ErrDuplicateType  = errors.New("codec: duplicate type name")
	ErrUndefinedType  = errors.New("codec: type declared but never defined")
	ErrUnknownType    = errors.New("codec: unknown type")
	ErrInvalidOID     = errors.New("codec: invalid extension OID")
	ErrNilType        = errors.New("codec: nil type")
	ErrReferenceCycle = errors.New("codec: reference cycle without a tag")
)

// arena holds named type slots. Refs point at slots by index so a type can
// refer to itself before it is defined.
type arena struct {
	slots []Type
	names []string
}

// Ref is a named reference into the type arena.
type Ref struct {
	name  string
	index int
	arena *arena
}

// Name returns the referenced type name.
func (r *Ref) Name() string { return r.name }

// Target returns the referenced type, or nil while it is undefined.
func (r *Ref) Target() Type {
	return r.arena.slots[r.index]
}

func (r *Ref) TypeName() string { return r.name }

func (r *Ref) OwnTag() (ber.Tag, bool) {
	if t := r.Target(); t != nil {
		return t.OwnTag()
	}
	return ber.Tag{}, false
}

func (r *Ref) Matches(tag ber.Tag) bool {
	if t := r.Target(); t != nil {
		return t.Matches(tag)
	}
	return false
}

func (r *Ref) DecodeValue(c *Context, h ber.Header, content *ber.BERDecoder, n *Node) {
	t := r.Target()
	if t == nil {
		c.Fail(n, InvalidValue, "undefined type "+r.name)
		c.Opaque(content, n)
		return
	}
	n.Type = r.name
	t.DecodeValue(c, h, content, n)
}

// resolve follows references to the underlying type.
func resolve(t Type) Type {
	for i := 0; i < 64; i++ {
		r, ok := t.(*Ref)
		if !ok || r.Target() == nil {
			return t
		}
		t = r.Target()
	}
	return t
}

// Builder collects type definitions and extensions. It is used once,
// single-threaded, and frozen by Build.
type Builder struct {
	arena      *arena
	index      map[string]int
	extensions map[string]Type
	errs       []error
	frozen     bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		arena:      &arena{},
		index:      make(map[string]int),
		extensions: make(map[string]Type),
	}
}

// Declare returns a reference to name, reserving its slot. The type must be
// defined with RegisterType before Build. After Build the builder records
// ErrRegistryFrozen and returns a detached, undefined reference.
func (b *Builder) Declare(name string) *Ref {
	if b.frozen {
		b.errs = append(b.errs, fmt.Errorf("%w: declare %s", ErrRegistryFrozen, name))
		return &Ref{name: name, arena: &arena{slots: []Type{nil}, names: []string{name}}}
	}
	if i, ok := b.index[name]; ok {
		return &Ref{name: name, index: i, arena: b.arena}
	}
	i := len(b.arena.slots)
	b.arena.slots = append(b.arena.slots, nil)
	b.arena.names = append(b.arena.names, name)
	b.index[name] = i
	return &Ref{name: name, index: i, arena: b.arena}
}

// RegisterType defines name as t and returns a reference to it.
func (b *Builder) RegisterType(name string, t Type) (*Ref, error) {
	if b.frozen {
		return nil, ErrRegistryFrozen
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilType, name)
	}
	ref := b.Declare(name)
	if b.arena.slots[ref.index] != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	b.arena.slots[ref.index] = t
	return ref, nil
}

// Define is RegisterType for descriptor tables: the error is kept and
// returned by Build.
func (b *Builder) Define(name string, t Type) *Ref {
	ref, err := b.RegisterType(name, t)
	if err != nil {
		b.errs = append(b.errs, err)
		return b.Declare(name)
	}
	return ref
}

// RegisterExtension binds an OID to the decoder of its open-type values.
// A later registration for the same OID replaces the earlier one.
func (b *Builder) RegisterExtension(oid string, t Type) error {
	if b.frozen {
		return ErrRegistryFrozen
	}
	if !ber.IsValidOID(oid) {
		return fmt.Errorf("%w: %q", ErrInvalidOID, oid)
	}
	if t == nil {
		return fmt.Errorf("%w: extension %s", ErrNilType, oid)
	}
	b.extensions[oid] = t
	return nil
}

// Build checks every declared type is defined and returns the immutable
// registry. The builder cannot be used afterwards.
func (b *Builder) Build() (*Registry, error) {
	if b.frozen {
		return nil, ErrRegistryFrozen
	}

	errs := append([]error(nil), b.errs...)
	for i, t := range b.arena.slots {
		if t == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUndefinedType, b.arena.names[i]))
		}
	}
	if len(errs) == 0 {
		for i := range b.arena.slots {
			if err := b.checkCycle(i); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b.frozen = true
	ext := make(map[string]Type, len(b.extensions))
	for k, v := range b.extensions {
		ext[k] = v
	}
	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return &Registry{
		arena: &arena{
			slots: append([]Type(nil), b.arena.slots...),
			names: append([]string(nil), b.arena.names...),
		},
		index:      index,
		extensions: ext,
	}, nil
}

// checkCycle rejects A ::= B, B ::= A chains, which have no tag to stop on.
func (b *Builder) checkCycle(start int) error {
	seen := map[int]bool{start: true}
	t := b.arena.slots[start]
	for {
		r, ok := t.(*Ref)
		if !ok {
			return nil
		}
		if seen[r.index] {
			return fmt.Errorf("%w: %s", ErrReferenceCycle, b.arena.names[start])
		}
		seen[r.index] = true
		t = b.arena.slots[r.index]
	}
}

// Registry is the frozen set of named types and extensions. It is safe for
// concurrent use.
type Registry struct {
	arena      *arena
	index      map[string]int
	extensions map[string]Type
}

// Type returns a reference to the named type.
func (r *Registry) Type(name string) (Type, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return &Ref{name: name, index: i, arena: r.arena}, true
}

// Types returns every registered type name, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the decoder registered for oid.
func (r *Registry) Extension(oid string) (Type, bool) {
	t, ok := r.extensions[oid]
	return t, ok
}

// Extensions returns every registered extension OID, sorted.
func (r *Registry) Extensions() []string {
	oids := make([]string, 0, len(r.extensions))
	for oid := range r.extensions {
		oids = append(oids, oid)
	}
	sort.Strings(oids)
	return oids
}

// Decode decodes one value of t starting at offset. It never fails: every
// problem is reported as an anomaly in the result.
func (r *Registry) Decode(buf []byte, offset int, t Type, opts Options) *Result {
	c := r.NewContext(opts)
	d := ber.NewBERDecoderAt(buf, offset)
	start := d.Offset()
	root := c.DecodeElement(d, t.TypeName(), t)
	return c.Result(root, d.Offset()-start)
}

// DecodeType decodes a value of the named type.
func (r *Registry) DecodeType(name string, buf []byte, offset int, opts Options) (*Result, error) {
	t, ok := r.Type(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return r.Decode(buf, offset, t, opts), nil
}
