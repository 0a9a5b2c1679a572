package rose

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// Registry errors
var (
	ErrInvalidRegistration = errors.New("rose: invalid registration")
	ErrDuplicateProtocol   = errors.New("rose: duplicate protocol")
	ErrUnknownProtocol     = errors.New("rose: unknown protocol")
)

// GenericContext names the fallback protocol used for unknown contexts.
const GenericContext = "ros"

// Registration describes one protocol.
type Registration struct {
	// ContextOID is the application-context name.
	ContextOID string
	Name       string
	Operations []Operation
	Errors     []Error
	// Root builds the message type. Nil binds the ROS envelope.
	Root func(p *Protocol) codec.Type
}

// Protocol is a registered protocol with its tables.
type Protocol struct {
	name       string
	contextOID string
	operations *OperationTable
	errors     *ErrorTable
	rootFn     func(p *Protocol) codec.Type
	root       codec.Type
}

// Name returns the protocol name.
func (p *Protocol) Name() string { return p.name }

// ContextOID returns the application-context OID.
func (p *Protocol) ContextOID() string { return p.contextOID }

// Operations returns the operation table.
func (p *Protocol) Operations() *OperationTable { return p.operations }

// Errors returns the error table.
func (p *Protocol) Errors() *ErrorTable { return p.errors }

// Root returns the message type. It is nil until the registry is built.
func (p *Protocol) Root() codec.Type { return p.root }

// Builder collects registrations. It is used once, single-threaded.
type Builder struct {
	protocols []*Protocol
	byName    map[string]*Protocol
	byOID     map[string]*Protocol
	frozen    bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		byName: make(map[string]*Protocol),
		byOID:  make(map[string]*Protocol),
	}
}

// Register validates reg and indexes its tables. The returned Protocol may
// be captured by the types passed to Root.
func (b *Builder) Register(reg Registration) (*Protocol, error) {
	if b.frozen {
		return nil, codec.ErrRegistryFrozen
	}
	if reg.Name == "" {
		reg.Name = reg.ContextOID
	}
	if !ber.IsValidOID(reg.ContextOID) {
		return nil, fmt.Errorf("%w: context %q is not an OID", ErrInvalidRegistration, reg.ContextOID)
	}
	if reg.Name == GenericContext {
		return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidRegistration, reg.Name)
	}
	if _, dup := b.byName[reg.Name]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProtocol, reg.Name)
	}
	if _, dup := b.byOID[reg.ContextOID]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProtocol, reg.ContextOID)
	}

	ops, err := NewOperationTable(reg.Operations...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reg.Name, err)
	}
	errs, err := NewErrorTable(reg.Errors...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reg.Name, err)
	}

	p := &Protocol{
		name:       reg.Name,
		contextOID: reg.ContextOID,
		operations: ops,
		errors:     errs,
		rootFn:     reg.Root,
	}
	b.protocols = append(b.protocols, p)
	b.byName[p.name] = p
	b.byOID[p.contextOID] = p
	return p, nil
}

// RegisterOperationTable registers a ROS protocol named after its context.
func (b *Builder) RegisterOperationTable(contextOID string, ops []Operation, errs []Error) error {
	_, err := b.Register(Registration{
		ContextOID: contextOID,
		Operations: ops,
		Errors:     errs,
	})
	return err
}

// Build binds root types and freezes the builder. types must be the
// registry the protocols' types were defined in.
func (b *Builder) Build(types *codec.Registry) (*Registry, error) {
	if b.frozen {
		return nil, codec.ErrRegistryFrozen
	}
	if types == nil {
		return nil, fmt.Errorf("%w: nil type registry", ErrInvalidRegistration)
	}
	b.frozen = true

	for _, p := range b.protocols {
		if p.rootFn != nil {
			p.root = p.rootFn(p)
		}
		if p.root == nil {
			p.root = Envelope(p)
		}
	}

	generic := &Protocol{
		name:       GenericContext,
		operations: &OperationTable{local: map[int64]*Operation{}, global: map[string]*Operation{}},
		errors:     &ErrorTable{local: map[int64]*Error{}, global: map[string]*Error{}},
	}
	generic.root = Envelope(generic)

	protocols := append([]*Protocol(nil), b.protocols...)
	sort.Slice(protocols, func(i, j int) bool { return protocols[i].name < protocols[j].name })

	return &Registry{
		types:     types,
		protocols: protocols,
		byName:    b.byName,
		byOID:     b.byOID,
		generic:   generic,
	}, nil
}

// Registry is the frozen set of protocols. It is safe for concurrent use.
type Registry struct {
	types     *codec.Registry
	protocols []*Protocol
	byName    map[string]*Protocol
	byOID     map[string]*Protocol
	generic   *Protocol
}

// Types returns the type registry the protocols decode against.
func (r *Registry) Types() *codec.Registry { return r.types }

// Lookup finds a protocol by context OID or name.
func (r *Registry) Lookup(id string) (*Protocol, bool) {
	if p, ok := r.byOID[id]; ok {
		return p, true
	}
	p, ok := r.byName[id]
	return p, ok
}

// Protocols returns the registered protocols sorted by name.
func (r *Registry) Protocols() []*Protocol {
	return append([]*Protocol(nil), r.protocols...)
}

// Generic returns the fallback protocol with empty tables.
func (r *Registry) Generic() *Protocol { return r.generic }

// Decode decodes one message of the protocol identified by id. Unknown ids
// are decoded as bare ROS PDUs with an UnknownExtensionOID anomaly on the
// root.
func (r *Registry) Decode(id string, buf []byte, offset int, opts codec.Options) *codec.Result {
	p, known := r.Lookup(id)
	if !known {
		p = r.generic
	}

	c := r.types.NewContext(opts)
	d := ber.NewBERDecoderAt(buf, offset)
	start := d.Offset()
	root := c.DecodeElement(d, p.root.TypeName(), p.root)
	if !known {
		c.Warn(root, codec.UnknownExtensionOID, "unknown application context "+id)
	}
	return c.Result(root, d.Offset()-start)
}
