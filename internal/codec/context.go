package codec

import (
	"fmt"
	"strconv"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// DefaultMaxDepth bounds type nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Options control a single decode.
type Options struct {
	// MaxDepth bounds nested type decoders. Zero means DefaultMaxDepth.
	MaxDepth int
	// StrictTrailing marks values malformed when well-formed TLVs remain
	// after their last field, instead of keeping them as extensions.
	StrictTrailing bool
	// Summary receives summary entries. Nil means a fresh SummaryBuffer.
	Summary Summary
}

// Result is the outcome of decoding one message.
type Result struct {
	Root      *Node
	Anomalies []Anomaly
	// Consumed is the number of bytes read from the start offset.
	Consumed int
	Summary  Summary
}

// Malformed reports whether the root value could not be fully decoded.
func (r *Result) Malformed() bool {
	return r.Root == nil || r.Root.Malformed
}

// Has reports whether an anomaly of kind k was recorded.
func (r *Result) Has(k AnomalyKind) bool {
	for _, a := range r.Anomalies {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// Identifier is the value that selects the decoder of an open type: an
// OID for extensions and global operation codes, or a local integer code.
type Identifier struct {
	OID     string
	Code    int64
	Numeric bool
}

// LocalCode returns a local integer identifier.
func LocalCode(code int64) Identifier {
	return Identifier{Code: code, Numeric: true}
}

// GlobalCode returns an OID identifier.
func GlobalCode(oid string) Identifier {
	return Identifier{OID: oid}
}

// String returns the code or the OID.
func (id Identifier) String() string {
	if id.Numeric {
		return strconv.FormatInt(id.Code, 10)
	}
	return id.OID
}

type scope struct {
	id  Identifier
	set bool
}

// Context holds the state of one decode. It is not safe for concurrent
// use; each message gets its own.
type Context struct {
	reg       *Registry
	opts      Options
	depth     int
	scopes    []scope
	anomalies []Anomaly
}

// NewContext returns a decode context bound to r.
func (r *Registry) NewContext(opts Options) *Context {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Summary == nil {
		opts.Summary = &SummaryBuffer{}
	}
	return &Context{
		reg:    r,
		opts:   opts,
		scopes: make([]scope, 0, 8),
	}
}

// Registry returns the registry the context decodes against.
func (c *Context) Registry() *Registry {
	return c.reg
}

// Anomalies returns every anomaly recorded so far.
func (c *Context) Anomalies() []Anomaly {
	return c.anomalies
}

// Result packages root with the context's anomalies and summary.
func (c *Context) Result(root *Node, consumed int) *Result {
	return &Result{
		Root:      root,
		Anomalies: c.anomalies,
		Consumed:  consumed,
		Summary:   c.opts.Summary,
	}
}

// Summarize appends an entry to the summary sink.
func (c *Context) Summarize(s string) {
	c.opts.Summary.Append(s)
}

// Warn records an anomaly on n without invalidating it.
func (c *Context) Warn(n *Node, kind AnomalyKind, detail string) {
	c.record(n, kind, detail, false)
}

// Fail records an anomaly on n and marks it malformed.
func (c *Context) Fail(n *Node, kind AnomalyKind, detail string) {
	n.Malformed = true
	c.record(n, kind, detail, true)
}

func (c *Context) record(n *Node, kind AnomalyKind, detail string, fatal bool) {
	a := Anomaly{
		Kind:   kind,
		Offset: n.Offset,
		Node:   n.Name,
		Detail: detail,
		Fatal:  fatal,
	}
	n.Anomalies = append(n.Anomalies, a)
	c.anomalies = append(c.anomalies, a)
}

// Opaque stores the unread bytes of d as the raw value of n.
func (c *Context) Opaque(d *ber.BERDecoder, n *Node) {
	raw, _ := d.ReadContent(d.Remaining())
	n.Kind = KindOpaque
	n.Value = raw
}

// Identifier returns the open-type key of the innermost constructed value.
func (c *Context) Identifier() (Identifier, bool) {
	if len(c.scopes) == 0 {
		return Identifier{}, false
	}
	s := c.scopes[len(c.scopes)-1]
	return s.id, s.set
}

func (c *Context) pushScope() {
	c.scopes = append(c.scopes, scope{})
}

func (c *Context) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// noteIdentifier updates the scope slot after field f decoded into n.
func (c *Context) noteIdentifier(f *Field, n *Node) {
	if len(c.scopes) == 0 || n.Malformed {
		return
	}
	marked := f.Flags.Has(FlagIdentifier)
	if !marked && n.Kind != KindOID {
		return
	}
	if id, ok := identifierOf(n, marked); ok {
		c.scopes[len(c.scopes)-1] = scope{id: id, set: true}
	}
}

// identifierOf descends through single-child wrappers (CHOICE) to the
// value that identifies an open type.
func identifierOf(n *Node, marked bool) (Identifier, bool) {
	for n.Value == nil && len(n.Children) == 1 {
		n = n.Children[0]
	}
	switch v := n.Value.(type) {
	case ber.OID:
		return GlobalCode(v.String()), true
	case int64:
		if marked {
			return LocalCode(v), true
		}
	case string:
		if marked {
			return GlobalCode(v), true
		}
	case []byte:
		if marked {
			return GlobalCode(string(v)), true
		}
	}
	return Identifier{}, false
}

// DecodeElement decodes one complete TLV of type t from d. The cursor
// always advances past the TLV unless its header is unreadable, in which
// case it moves to the end of d.
func (c *Context) DecodeElement(d *ber.BERDecoder, name string, t Type) *Node {
	n := &Node{Name: name, Type: t.TypeName(), Offset: d.Offset()}
	f := &Field{Name: name, Type: t}

	if d.Empty() {
		c.Fail(n, InsufficientData, "no data for "+t.TypeName())
		return n
	}

	switch c.decodeField(f, d, ber.Header{}, n) {
	case fieldMissing:
		h, _ := d.PeekHeader()
		n.Tag = h.Tag
		n.Length = h.TotalLength()
		raw, _ := d.ReadRawValue()
		c.Fail(n, UnexpectedTag, fmt.Sprintf("%s does not accept %s", t.TypeName(), h.Tag))
		n.Kind = KindOpaque
		n.Value = raw
	case fieldBroken:
		d.SetOffset(d.End())
	}
	return n
}

// DecodeValue runs t on content whose header h has already been read.
// Types that wrap other types call it to delegate.
func (c *Context) DecodeValue(t Type, h ber.Header, content *ber.BERDecoder, n *Node) {
	c.invoke(t, h, content, n)
}

type fieldOutcome int

const (
	fieldPresent fieldOutcome = iota
	fieldMissing
	fieldBroken
)

// decodeField decodes field f from d into n. fieldMissing means the next
// TLV is not an encoding of f (or d is empty) and nothing was consumed.
// fieldBroken means the next header could not be read, so the caller cannot
// continue past it.
func (c *Context) decodeField(f *Field, d *ber.BERDecoder, parent ber.Header, n *Node) fieldOutcome {
	if f.Flags.Has(FlagNoOwnTag) {
		n.Tag = parent.Tag
		n.Offset = d.Offset()
		start := d.Offset()
		c.invoke(f.Type, parent, d, n)
		n.Length = d.Offset() - start
		if n.Malformed {
			return fieldBroken
		}
		return fieldPresent
	}

	if d.Empty() {
		return fieldMissing
	}

	h, err := d.PeekHeader()
	if err != nil {
		n.Offset = d.Offset()
		n.Length = d.Remaining()
		c.Fail(n, KindOf(err), err.Error())
		return fieldBroken
	}
	if !f.matches(h.Tag) {
		return fieldMissing
	}

	d.ReadHeader()
	content, _ := d.Window(h.Length)
	n.Tag = h.Tag
	n.Offset = h.Offset
	n.Length = h.TotalLength()

	c.decodeResolved(f, h, content, n)
	c.Finish(content, n)
	return fieldPresent
}

// decodeResolved decodes a field whose own header has been consumed.
func (c *Context) decodeResolved(f *Field, h ber.Header, content *ber.BERDecoder, n *Node) {
	if f.explicit() {
		if !h.Tag.Constructed {
			c.Fail(n, InvalidValue, "explicit tag must be constructed")
			c.Opaque(content, n)
			return
		}
		c.decodeInner(f.Type, content, n)
		return
	}
	c.invoke(f.Type, h, content, n)
}

// decodeInner decodes exactly one TLV of t from d into n.
func (c *Context) decodeInner(t Type, d *ber.BERDecoder, n *Node) {
	h, err := d.PeekHeader()
	if err != nil {
		c.Fail(n, KindOf(err), err.Error())
		c.Opaque(d, n)
		return
	}
	if !t.Matches(h.Tag) {
		c.Fail(n, UnexpectedTag, fmt.Sprintf("%s does not accept %s", t.TypeName(), h.Tag))
		c.Opaque(d, n)
		return
	}
	d.ReadHeader()
	content, _ := d.Window(h.Length)
	c.invoke(t, h, content, n)
	c.Finish(content, n)
}

// invoke runs a type decoder under the depth guard.
func (c *Context) invoke(t Type, h ber.Header, content *ber.BERDecoder, n *Node) {
	if n.Type == "" {
		n.Type = t.TypeName()
	}
	if c.depth >= c.opts.MaxDepth {
		c.Fail(n, DepthExceeded, fmt.Sprintf("nesting deeper than %d", c.opts.MaxDepth))
		c.Opaque(content, n)
		return
	}
	c.depth++
	t.DecodeValue(c, h, content, n)
	c.depth--
}

// Finish accounts for bytes left in a value's content window. Types that
// decode a delegated value outside a field call it on that value's node.
func (c *Context) Finish(d *ber.BERDecoder, n *Node) {
	if d.Empty() {
		return
	}
	if n.Malformed {
		d.SetOffset(d.End())
		return
	}

	start := d.Offset()
	probe := d.Clone()
	for !probe.Empty() {
		if _, err := probe.Skip(); err != nil {
			d.SetOffset(d.End())
			c.Fail(n, TrailingData, fmt.Sprintf("%d undecodable bytes at %d: %v", d.End()-start, start, err))
			return
		}
	}

	if c.opts.StrictTrailing {
		d.SetOffset(d.End())
		c.Fail(n, TrailingData, fmt.Sprintf("%d unexpected bytes at %d", d.End()-start, start))
		return
	}

	for !d.Empty() {
		ext := c.opaqueElement(d, "extension")
		n.Children = append(n.Children, ext)
	}
	c.Warn(n, TrailingData, fmt.Sprintf("%d bytes kept as extensions", d.End()-start))
}

// opaqueElement consumes one well-formed TLV as an opaque extension node.
func (c *Context) opaqueElement(d *ber.BERDecoder, name string) *Node {
	h, _ := d.ReadHeader()
	content, _ := d.Window(h.Length)
	n := &Node{
		Name:      name,
		Tag:       h.Tag,
		Offset:    h.Offset,
		Length:    h.TotalLength(),
		Extension: true,
	}
	c.Opaque(content, n)
	return n
}

// absent fills n for an omitted OPTIONAL or DEFAULT field.
func (c *Context) absent(f *Field, n *Node, offset int) {
	n.Absent = true
	n.Offset = offset
	n.Length = 0
	if f.Flags.Has(FlagDefault) {
		n.Defaulted = true
		n.Value = f.Default
		n.Kind = kindOfValue(f.Default)
		if p, ok := resolve(f.Type).(*Primitive); ok {
			if v, ok := f.Default.(int64); ok {
				n.Label = p.names[v]
			}
		}
	}
}

func kindOfValue(v any) ValueKind {
	switch v.(type) {
	case nil:
		return KindNone
	case int64, int:
		return KindInteger
	case bool:
		return KindBoolean
	case string:
		return KindString
	case []byte:
		return KindBytes
	case ber.OID:
		return KindOID
	case ber.BitString:
		return KindBitString
	default:
		return KindOpaque
	}
}

// after handles the per-field bookkeeping once f decoded into n.
func (c *Context) after(f *Field, n *Node) {
	c.noteIdentifier(f, n)
	if f.Flags.Has(FlagSummarize) && !n.Malformed {
		c.Summarize(f.Name + "=" + n.ValueString())
	}
}
