package dap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

func tlv(tag ber.Tag, parts ...[]byte) []byte {
	enc := ber.NewBEREncoder(64)
	content := bytes.Join(parts, nil)
	if tag.Constructed {
		pos := enc.Begin(tag)
		enc.WriteRaw(content)
		_ = enc.End(pos)
		return enc.Bytes()
	}
	_ = enc.WritePrimitive(tag, content)
	return enc.Bytes()
}

func ctxc(n int) ber.Tag {
	t := ber.Ctx(n)
	t.Constructed = true
	return t
}

func seq(parts ...[]byte) []byte {
	return tlv(ber.UniversalConstructed(ber.TagSequence), parts...)
}

func set(parts ...[]byte) []byte {
	return tlv(ber.UniversalConstructed(ber.TagSet), parts...)
}

func integer(v int64) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteInteger(v)
	return enc.Bytes()
}

func oid(s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteOID(s)
	return enc.Bytes()
}

// oidContent returns the content octets of an OID for implicit tagging.
func oidContent(s string) []byte {
	o, _ := ber.OIDFromString(s)
	content, _ := o.Encode()
	return content
}

func str(tagNumber int, s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteString(tagNumber, s)
	return enc.Bytes()
}

func utf8(s string) []byte { return str(ber.TagUTF8String, s) }

func printable(s string) []byte { return str(ber.TagPrintableString, s) }

func ia5(s string) []byte { return str(ber.TagIA5String, s) }

func atav(typ string, value []byte) []byte {
	return seq(oid(typ), value)
}

// dn builds an RDNSequence, root RDN first.
func dn(rdns ...[]byte) []byte {
	return seq(rdns...)
}

func rdn(atavs ...[]byte) []byte {
	return set(atavs...)
}

// aliceDN is cn=Alice,o=Example,c=GB.
func aliceDN() []byte {
	return dn(
		rdn(atav(AttributeCountryName, printable("GB"))),
		rdn(atav(AttributeOrganizationName, utf8("Example"))),
		rdn(atav(AttributeCommonName, utf8("Alice"))),
	)
}

func invoke(id, opcode int64, argument []byte) []byte {
	return tlv(ctxc(1), integer(id), integer(opcode), argument)
}

func returnResult(id, opcode int64, result []byte) []byte {
	return tlv(ctxc(2), integer(id), seq(integer(opcode), result))
}

func returnError(id, errcode int64, parameter ...[]byte) []byte {
	return tlv(ctxc(3), append([][]byte{integer(id), integer(errcode)}, parameter...)...)
}

type fixture struct {
	types     *codec.Registry
	protocols *rose.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cb := codec.NewBuilder()
	rb := rose.NewBuilder()
	require.NoError(t, Module{}.Register(cb, rb))

	types, err := cb.Build()
	require.NoError(t, err)
	protocols, err := rb.Build(types)
	require.NoError(t, err)
	return &fixture{types: types, protocols: protocols}
}

func (f *fixture) decode(data []byte) *codec.Result {
	return f.protocols.Decode(ContextOID, data, 0, codec.Options{})
}

func summary(res *codec.Result) []string {
	return res.Summary.(*codec.SummaryBuffer).Entries()
}
