package rose

import (
	"fmt"
	"strconv"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// Role is the position of a value in an exchange.
type Role int

// Roles.
const (
	RoleInvoke Role = iota
	RoleResult
	RoleError
)

// String returns the ROS PDU name of the role.
func (r Role) String() string {
	switch r {
	case RoleInvoke:
		return "invoke"
	case RoleResult:
		return "returnResult"
	case RoleError:
		return "returnError"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

// outcome is ANY DEFINED BY opcode/errcode. The code comes from the scope
// slot unless fixed is set.
type outcome struct {
	p     *Protocol
	role  Role
	fixed *codec.Identifier
}

func (o *outcome) TypeName() string {
	switch o.role {
	case RoleInvoke:
		return "Argument"
	case RoleResult:
		return "Result"
	default:
		return "Parameter"
	}
}

func (o *outcome) OwnTag() (ber.Tag, bool) { return ber.Tag{}, false }

func (o *outcome) Matches(ber.Tag) bool { return true }

func (o *outcome) DecodeValue(c *codec.Context, h ber.Header, content *ber.BERDecoder, n *codec.Node) {
	var id codec.Identifier
	if o.fixed != nil {
		id = *o.fixed
	} else {
		var ok bool
		if id, ok = c.Identifier(); !ok {
			c.Warn(n, o.unknownKind(), "no code in scope")
			c.Opaque(content, n)
			return
		}
	}

	name, t, found := o.p.resolve(o.role, id)
	if !found {
		c.Warn(n, o.unknownKind(), fmt.Sprintf("%s has no %s code %s", o.p.Name(), o.kindName(), id))
		c.Summarize(o.role.String() + " " + id.String())
		c.Opaque(content, n)
		return
	}

	c.Summarize(o.role.String() + " " + name)
	if t == nil {
		n.Label = name
		c.Opaque(content, n)
		return
	}
	if !t.Matches(h.Tag) {
		c.Fail(n, codec.UnexpectedTag, fmt.Sprintf("%s %s does not accept %s", o.kindName(), name, h.Tag))
		c.Opaque(content, n)
		return
	}
	n.Type = t.TypeName()
	c.DecodeValue(t, h, content, n)
	if n.Label == "" {
		n.Label = name
	}
}

func (o *outcome) unknownKind() codec.AnomalyKind {
	if o.role == RoleError {
		return codec.UnknownErrorCode
	}
	return codec.UnknownOperationCode
}

func (o *outcome) kindName() string {
	if o.role == RoleError {
		return "error"
	}
	return "operation"
}

// resolve finds the decoder for a code in the given role.
func (p *Protocol) resolve(role Role, id codec.Identifier) (string, codec.Type, bool) {
	switch role {
	case RoleError:
		e, ok := p.errors.Lookup(id)
		if !ok {
			return "", nil, false
		}
		return e.Name, e.Parameter, true
	default:
		op, ok := p.operations.Lookup(id)
		if !ok {
			return "", nil, false
		}
		if role == RoleInvoke {
			return op.Name, op.Argument, true
		}
		return op.Name, op.Result, true
	}
}

// DecodeInvoke decodes the next TLV of d as the argument of opcode.
func (p *Protocol) DecodeInvoke(c *codec.Context, opcode codec.Identifier, d *ber.BERDecoder) *codec.Node {
	return c.DecodeElement(d, "argument", &outcome{p: p, role: RoleInvoke, fixed: &opcode})
}

// DecodeResult decodes the next TLV of d as the result of opcode.
func (p *Protocol) DecodeResult(c *codec.Context, opcode codec.Identifier, d *ber.BERDecoder) *codec.Node {
	return c.DecodeElement(d, "result", &outcome{p: p, role: RoleResult, fixed: &opcode})
}

// DecodeError decodes the next TLV of d as the parameter of errcode.
func (p *Protocol) DecodeError(c *codec.Context, errcode codec.Identifier, d *ber.BERDecoder) *codec.Node {
	return c.DecodeElement(d, "parameter", &outcome{p: p, role: RoleError, fixed: &errcode})
}

// tagDispatch selects the operation from an APPLICATION tag number.
type tagDispatch struct {
	p *Protocol
}

// TagDispatch returns a type that accepts any APPLICATION element and
// decodes its content with the operation whose local code equals the tag
// number. Operations with an Argument are invokes; the others are results.
func TagDispatch(p *Protocol) codec.Type {
	return &tagDispatch{p: p}
}

func (t *tagDispatch) TypeName() string { return t.p.Name() + " operation" }

func (t *tagDispatch) OwnTag() (ber.Tag, bool) { return ber.Tag{}, false }

func (t *tagDispatch) Matches(tag ber.Tag) bool {
	return tag.Class == ber.ClassApplication
}

func (t *tagDispatch) DecodeValue(c *codec.Context, h ber.Header, content *ber.BERDecoder, n *codec.Node) {
	n.Kind = codec.KindChoice

	op, ok := t.p.operations.Lookup(codec.LocalCode(int64(h.Tag.Number)))
	if !ok {
		c.Warn(n, codec.UnknownOperationCode, fmt.Sprintf("%s has no operation for %s", t.p.Name(), h.Tag))
		c.Summarize("unknown " + h.Tag.String())
		c.Opaque(content, n)
		return
	}

	role, typ := RoleInvoke, op.Argument
	if typ == nil {
		role, typ = RoleResult, op.Result
	}
	c.Summarize(role.String() + " " + op.Name)
	n.Label = op.Name

	child := &codec.Node{
		Name:   op.Name,
		Tag:    h.Tag,
		Offset: h.Offset,
		Length: h.TotalLength(),
	}
	if typ == nil {
		c.Opaque(content, child)
	} else {
		c.DecodeValue(typ, h, content, child)
		c.Finish(content, child)
	}
	n.Children = append(n.Children, child)
	if child.Malformed {
		n.Malformed = true
	}
}
