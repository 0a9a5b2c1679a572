package ldap

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

func appc(n int) ber.Tag {
	t := ber.App(n)
	t.Constructed = true
	return t
}

func ctxc(n int) ber.Tag {
	t := ber.Ctx(n)
	t.Constructed = true
	return t
}

// ctxs is a primitive context-specific string.
func ctxs(n int, s string) []byte {
	return tlv(ber.Ctx(n), []byte(s))
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

func enum(v int64) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteEnumerated(v)
	return enc.Bytes()
}

func octets(s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteOctetString([]byte(s))
	return enc.Bytes()
}

func boolean(v bool) []byte {
	enc := ber.NewBEREncoder(4)
	_ = enc.WriteBoolean(v)
	return enc.Bytes()
}

// message wraps a protocolOp and optional controls in an LDAPMessage.
func message(id int64, op []byte, controls ...[]byte) []byte {
	if len(controls) == 0 {
		return seq(integer(id), op)
	}
	return seq(integer(id), op, tlv(ctxc(ContextTagControls), controls...))
}

func ldapResult(code int64, matched, diag string) []byte {
	return bytes.Join([][]byte{enum(code), octets(matched), octets(diag)}, nil)
}

func equality(attr, value string) []byte {
	return tlv(ctxc(FilterTagEquality), octets(attr), octets(value))
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
	return f.protocols.Decode(ProtocolName, data, 0, codec.Options{})
}

func summary(res *codec.Result) []string {
	return res.Summary.(*codec.SummaryBuffer).Entries()
}
