package codec

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// ValueKind describes what a Node's Value holds.
type ValueKind int

// Value kinds.
const (
	KindNone ValueKind = iota
	KindConstructed
	KindChoice
	KindInteger
	KindBoolean
	KindNull
	KindBytes
	KindString
	KindOID
	KindBitString
	KindOpaque
)

var kindNames = [...]string{
	KindNone:        "none",
	KindConstructed: "constructed",
	KindChoice:      "choice",
	KindInteger:     "integer",
	KindBoolean:     "boolean",
	KindNull:        "null",
	KindBytes:       "bytes",
	KindString:      "string",
	KindOID:         "oid",
	KindBitString:   "bitstring",
	KindOpaque:      "opaque",
}

// String returns the kind name.
func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one decoded value. Offset and Length cover the whole TLV in the
// source buffer, identifier and length octets included.
type Node struct {
	Name   string
	Type   string
	Tag    ber.Tag
	Offset int
	Length int

	Kind ValueKind
	// Value is int64, *big.Int, bool, string, []byte, ber.OID,
	// ber.BitString or nil.
	Value any
	// Label is the named number of an INTEGER/ENUMERATED or the selected
	// alternative of a CHOICE.
	Label    string
	Children []*Node

	Absent    bool
	Defaulted bool
	Extension bool
	Malformed bool

	Anomalies []Anomaly
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find resolves a dotted path of child names, e.g. "protocolOp.searchRequest.scope".
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, ".") {
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of that node.
func (n *Node) Walk(fn func(*Node, int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Int returns the value as int64 when it is a small integer.
func (n *Node) Int() (int64, bool) {
	if n == nil {
		return 0, false
	}
	v, ok := n.Value.(int64)
	return v, ok
}

// Text returns string and byte values as text.
func (n *Node) Text() (string, bool) {
	if n == nil {
		return "", false
	}
	switch v := n.Value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// ValueString renders the value on one line.
func (n *Node) ValueString() string {
	if n == nil {
		return ""
	}
	switch v := n.Value.(type) {
	case nil:
		if n.Label != "" {
			return n.Label
		}
		return ""
	case int64:
		if n.Label != "" {
			return fmt.Sprintf("%d (%s)", v, n.Label)
		}
		return strconv.FormatInt(v, 10)
	case *big.Int:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case []byte:
		if isPrintable(v) {
			return strconv.Quote(string(v))
		}
		return hex.EncodeToString(v)
	case ber.OID:
		return v.String()
	case ber.BitString:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isPrintable(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	for _, r := range string(b) {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
