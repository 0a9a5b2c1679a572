package dap

import (
	"encoding/hex"
	"strings"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// nameType decodes Name ::= CHOICE { rdnSequence RDNSequence } and labels
// the node with its string form.
func nameType(rdnSequence codec.Type) *codec.Func {
	return codec.Callback("Name", func(c *codec.Context, h ber.Header, content *ber.BERDecoder, n *codec.Node) {
		c.DecodeValue(rdnSequence, h, content, n)
		if !n.Malformed {
			n.Label = NameString(n)
		}
	}).WithTag(ber.UniversalConstructed(ber.TagSequence))
}

// NameString renders a decoded Name most specific RDN first, as LDAP
// does: "cn=Alice,o=Example,c=GB". Unknown attribute types are shown by
// OID and undecoded values as '#' followed by the hex content octets.
func NameString(n *codec.Node) string {
	if n == nil {
		return ""
	}
	rdns := make([]string, 0, len(n.Children))
	for _, rdn := range n.Children {
		if rdn.Extension {
			continue
		}
		parts := make([]string, 0, len(rdn.Children))
		for _, atav := range rdn.Children {
			if atav.Extension {
				continue
			}
			parts = append(parts, atavString(atav))
		}
		rdns = append(rdns, strings.Join(parts, "+"))
	}
	for i, j := 0, len(rdns)-1; i < j; i, j = i+1, j-1 {
		rdns[i], rdns[j] = rdns[j], rdns[i]
	}
	return strings.Join(rdns, ",")
}

func atavString(atav *codec.Node) string {
	name := "?"
	if oid, ok := atav.Child("type").Value.(ber.OID); ok {
		name = oid.String()
		if short, ok := attributeShortNames[name]; ok {
			name = short
		}
	}
	return name + "=" + valueText(atav.Child("value"))
}

func valueText(n *codec.Node) string {
	for n != nil && n.Value == nil && len(n.Children) == 1 {
		n = n.Children[0]
	}
	if n == nil {
		return ""
	}
	switch v := n.Value.(type) {
	case string:
		return v
	case []byte:
		return "#" + hex.EncodeToString(v)
	}
	return n.ValueString()
}
