package rose

import (
	"bytes"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

func tlv(tag ber.Tag, parts ...[]byte) []byte {
	enc := ber.NewBEREncoder(32)
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

func appc(n int) ber.Tag {
	t := ber.App(n)
	t.Constructed = true
	return t
}

func seq(parts ...[]byte) []byte {
	return tlv(ber.UniversalConstructed(ber.TagSequence), parts...)
}

func integer(v int64) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteInteger(v)
	return enc.Bytes()
}

func octets(s string) []byte {
	enc := ber.NewBEREncoder(8)
	_ = enc.WriteOctetString([]byte(s))
	return enc.Bytes()
}

func oid(s string) []byte {
	enc := ber.NewBEREncoder(16)
	_ = enc.WriteOID(s)
	return enc.Bytes()
}

func summary(res *codec.Result) []string {
	return res.Summary.(*codec.SummaryBuffer).Entries()
}

const testContext = "1.3.6.1.4.1.99999.1"

func testOperations() []Operation {
	return []Operation{
		{
			Code: 1,
			Name: "read",
			Argument: codec.NewSequence("ReadArgument",
				codec.F("name", codec.OctetText()),
			),
			Result: codec.Integer(),
		},
		{Code: 2, Name: "ping"},
		{Global: "1.2.3.4", Name: "globalOp", Argument: codec.Integer()},
	}
}

func testErrors() []Error {
	return []Error{
		{Code: 1, Name: "nameError", Parameter: codec.Integer(map[int64]string{1: "noSuchObject"})},
		{Code: 2, Name: "serviceError"},
	}
}

func mustRegistry(regs ...Registration) *Registry {
	types, err := codec.NewBuilder().Build()
	if err != nil {
		panic(err)
	}
	b := NewBuilder()
	for _, reg := range regs {
		if _, err := b.Register(reg); err != nil {
			panic(err)
		}
	}
	r, err := b.Build(types)
	if err != nil {
		panic(err)
	}
	return r
}

func testRegistry() *Registry {
	return mustRegistry(Registration{
		ContextOID: testContext,
		Name:       "test",
		Operations: testOperations(),
		Errors:     testErrors(),
	})
}
