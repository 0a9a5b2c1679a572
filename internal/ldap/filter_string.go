package ldap

import (
	"fmt"
	"strings"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// FilterString renders a decoded Filter node in the RFC 4515 string form,
// e.g. "(&(objectClass=person)(!(uid=alice)))". It reports false when the
// node is malformed or not a Filter.
func FilterString(n *codec.Node) (string, bool) {
	var sb strings.Builder
	if !writeFilter(&sb, n) {
		return "", false
	}
	return sb.String(), true
}

func writeFilter(sb *strings.Builder, n *codec.Node) bool {
	if n == nil || n.Malformed || n.Kind != codec.KindChoice || len(n.Children) != 1 {
		return false
	}
	alt := n.Children[0]

	switch n.Label {
	case "and", "or":
		op := byte('&')
		if n.Label == "or" {
			op = '|'
		}
		sb.WriteByte('(')
		sb.WriteByte(op)
		for _, c := range alt.Children {
			if !writeFilter(sb, c) {
				return false
			}
		}
		sb.WriteByte(')')
	case "not":
		sb.WriteString("(!")
		if !writeFilter(sb, alt) {
			return false
		}
		sb.WriteByte(')')
	case "equalityMatch":
		return writeAssertion(sb, alt, "=")
	case "greaterOrEqual":
		return writeAssertion(sb, alt, ">=")
	case "lessOrEqual":
		return writeAssertion(sb, alt, "<=")
	case "approxMatch":
		return writeAssertion(sb, alt, "~=")
	case "present":
		attr, ok := alt.Text()
		if !ok {
			return false
		}
		fmt.Fprintf(sb, "(%s=*)", attr)
	case "substrings":
		return writeSubstrings(sb, alt)
	case "extensibleMatch":
		return writeExtensible(sb, alt)
	default:
		return false
	}
	return true
}

func writeAssertion(sb *strings.Builder, ava *codec.Node, op string) bool {
	attr, ok := ava.Child("attributeDesc").Text()
	if !ok {
		return false
	}
	value, ok := ava.Child("assertionValue").Text()
	if !ok {
		return false
	}
	sb.WriteString("(" + attr + op + escapeFilterValue(value) + ")")
	return true
}

func writeSubstrings(sb *strings.Builder, n *codec.Node) bool {
	attr, ok := n.Child("type").Text()
	if !ok {
		return false
	}
	subs := n.Child("substrings")
	if subs == nil {
		return false
	}

	var initial, final string
	var middle []string
	for _, s := range subs.Children {
		if len(s.Children) != 1 {
			return false
		}
		v, ok := s.Children[0].Text()
		if !ok {
			return false
		}
		switch s.Label {
		case "initial":
			initial = escapeFilterValue(v)
		case "any":
			middle = append(middle, escapeFilterValue(v))
		case "final":
			final = escapeFilterValue(v)
		}
	}

	sb.WriteString("(" + attr + "=" + initial + "*")
	for _, m := range middle {
		sb.WriteString(m + "*")
	}
	sb.WriteString(final + ")")
	return true
}

// writeExtensible renders attr:dn:rule:=value.
func writeExtensible(sb *strings.Builder, n *codec.Node) bool {
	value, ok := n.Child("matchValue").Text()
	if !ok {
		return false
	}

	sb.WriteByte('(')
	if t := n.Child("type"); t != nil && !t.Absent {
		attr, _ := t.Text()
		sb.WriteString(attr)
	}
	if dn := n.Child("dnAttributes"); dn != nil && dn.Value == true {
		sb.WriteString(":dn")
	}
	if rule := n.Child("matchingRule"); rule != nil && !rule.Absent {
		id, _ := rule.Text()
		sb.WriteString(":" + id)
	}
	sb.WriteString(":=" + escapeFilterValue(value) + ")")
	return true
}

// escapeFilterValue escapes the octets RFC 4515 reserves in assertion values.
func escapeFilterValue(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '*', '(', ')', '\\', 0:
			fmt.Fprintf(&sb, "\\%02x", b)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
