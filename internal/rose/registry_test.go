package rose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

func TestEnvelope_Invoke(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(7), integer(1), seq(octets("cn")))

	res := r.Decode("test", data, 0, codec.Options{})
	require.False(t, res.Malformed())
	assert.Empty(t, res.Anomalies)
	assert.Equal(t, len(data), res.Consumed)
	assert.Equal(t, "invoke", res.Root.Label)

	assert.Equal(t, int64(7), res.Root.Find("invoke.invokeId.present").Value)
	assert.True(t, res.Root.Find("invoke.linkedId").Absent)
	arg := res.Root.Find("invoke.argument")
	require.NotNil(t, arg)
	assert.Equal(t, "read", arg.Label)
	assert.Equal(t, "cn", arg.Child("name").Value)
	assert.Equal(t, []string{"invoke read"}, summary(res))
}

func TestEnvelope_InvokeLinked(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(8), tlv(ber.Ctx(0), []byte{7}), integer(2))

	res := r.Decode("test", data, 0, codec.Options{})
	require.False(t, res.Malformed())
	assert.Equal(t, int64(7), res.Root.Find("invoke.linkedId").Value)
	assert.True(t, res.Root.Find("invoke.argument").Absent)
	assert.Empty(t, summary(res))
}

func TestEnvelope_GlobalOpcode(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(3), oid("1.2.3.4"), integer(5))

	res := r.Decode(testContext, data, 0, codec.Options{})
	require.False(t, res.Malformed())
	arg := res.Root.Find("invoke.argument")
	require.NotNil(t, arg)
	assert.Equal(t, "globalOp", arg.Label)
	assert.Equal(t, int64(5), arg.Value)
}

func TestEnvelope_UnknownOpcode(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(3), integer(99), octets("x"))

	res := r.Decode("test", data, 0, codec.Options{})
	assert.False(t, res.Malformed())
	assert.True(t, res.Has(codec.UnknownOperationCode))
	arg := res.Root.Find("invoke.argument")
	require.NotNil(t, arg)
	assert.Equal(t, codec.KindOpaque, arg.Kind)
	assert.Equal(t, []byte("x"), arg.Value)
	assert.Equal(t, []string{"invoke 99"}, summary(res))
}

func TestEnvelope_ReturnResult(t *testing.T) {
	r := testRegistry()

	res := r.Decode("test", tlv(ctxc(2), integer(7), seq(integer(1), integer(42))), 0, codec.Options{})
	require.False(t, res.Malformed())
	result := res.Root.Find("returnResult.result.result")
	require.NotNil(t, result)
	assert.Equal(t, int64(42), result.Value)
	assert.Equal(t, "read", result.Label)
	assert.Equal(t, []string{"returnResult read"}, summary(res))

	res = r.Decode("test", tlv(ctxc(2), integer(7)), 0, codec.Options{})
	require.False(t, res.Malformed())
	assert.True(t, res.Root.Find("returnResult.result").Absent)
}

func TestEnvelope_ReturnError(t *testing.T) {
	r := testRegistry()

	res := r.Decode("test", tlv(ctxc(3), integer(7), integer(1), integer(1)), 0, codec.Options{})
	require.False(t, res.Malformed())
	param := res.Root.Find("returnError.parameter")
	require.NotNil(t, param)
	assert.Equal(t, int64(1), param.Value)
	assert.Equal(t, "noSuchObject", param.Label)
	assert.Equal(t, []string{"returnError nameError"}, summary(res))

	res = r.Decode("test", tlv(ctxc(3), integer(7), integer(9), integer(1)), 0, codec.Options{})
	assert.False(t, res.Malformed())
	assert.True(t, res.Has(codec.UnknownErrorCode))
	assert.False(t, res.Has(codec.UnknownOperationCode))
}

func TestEnvelope_Reject(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name    string
		data    []byte
		problem string
		label   string
	}{
		{
			name:    "invoke problem",
			data:    tlv(ctxc(4), integer(7), tlv(ber.Ctx(1), []byte{1})),
			problem: "invoke",
			label:   "unrecognizedOperation",
		},
		{
			name:    "general problem without invoke id",
			data:    tlv(ctxc(4), []byte{0x05, 0x00}, tlv(ber.Ctx(0), []byte{2})),
			problem: "general",
			label:   "badlyStructuredPDU",
		},
		{
			name:    "return error problem",
			data:    tlv(ctxc(4), integer(1), tlv(ber.Ctx(3), []byte{4})),
			problem: "returnError",
			label:   "mistypedParameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Decode("test", tt.data, 0, codec.Options{})
			require.False(t, res.Malformed())
			problem := res.Root.Find("reject.problem")
			require.NotNil(t, problem)
			assert.Equal(t, tt.problem, problem.Label)
			assert.Equal(t, tt.label, problem.Child(tt.problem).Label)
			assert.Empty(t, summary(res))
		})
	}
}

func TestEnvelope_UnknownPDU(t *testing.T) {
	r := testRegistry()

	res := r.Decode("test", tlv(ctxc(9), integer(1)), 0, codec.Options{})
	assert.True(t, res.Malformed())
	assert.True(t, res.Has(codec.UnexpectedTag))
	assert.Equal(t, 5, res.Consumed)
}

func TestRegistry_UnknownContext(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(7), integer(1), seq(octets("cn")))

	res := r.Decode("1.2.840.999", data, 0, codec.Options{})
	assert.False(t, res.Malformed())
	assert.True(t, res.Has(codec.UnknownExtensionOID))
	assert.True(t, res.Has(codec.UnknownOperationCode))
	assert.Equal(t, codec.KindOpaque, res.Root.Find("invoke.argument").Kind)
	assert.Equal(t, GenericContext, r.Generic().Name())
}

func TestRegistry_Lookup(t *testing.T) {
	r := mustRegistry(
		Registration{ContextOID: "2.5.3.1", Name: "zeta"},
		Registration{ContextOID: "1.3.6.1.1.18", Name: "alpha"},
	)

	byOID, ok := r.Lookup("2.5.3.1")
	require.True(t, ok)
	byName, ok := r.Lookup("zeta")
	require.True(t, ok)
	assert.Same(t, byOID, byName)
	assert.Equal(t, "2.5.3.1", byName.ContextOID())
	assert.NotNil(t, byName.Root())
	assert.Equal(t, 0, byName.Operations().Len())
	assert.Equal(t, 0, byName.Errors().Len())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	var names []string
	for _, p := range r.Protocols() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestBuilder_RegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		regs []Registration
		err  error
	}{
		{
			name: "invalid context",
			regs: []Registration{{ContextOID: "ldap", Name: "ldap"}},
			err:  ErrInvalidRegistration,
		},
		{
			name: "reserved name",
			regs: []Registration{{ContextOID: "1.2.3", Name: GenericContext}},
			err:  ErrInvalidRegistration,
		},
		{
			name: "duplicate name",
			regs: []Registration{{ContextOID: "1.2.3", Name: "a"}, {ContextOID: "1.2.4", Name: "a"}},
			err:  ErrDuplicateProtocol,
		},
		{
			name: "duplicate context",
			regs: []Registration{{ContextOID: "1.2.3", Name: "a"}, {ContextOID: "1.2.3", Name: "b"}},
			err:  ErrDuplicateProtocol,
		},
		{
			name: "duplicate operation code",
			regs: []Registration{{
				ContextOID: "1.2.3",
				Operations: []Operation{{Code: 1, Name: "a"}, {Code: 1, Name: "b"}},
			}},
			err: ErrDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			var err error
			for _, reg := range tt.regs {
				if _, err = b.Register(reg); err != nil {
					break
				}
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuilder_Frozen(t *testing.T) {
	types, err := codec.NewBuilder().Build()
	require.NoError(t, err)

	b := NewBuilder()
	require.NoError(t, b.RegisterOperationTable("1.2.3", testOperations(), testErrors()))
	r, err := b.Build(types)
	require.NoError(t, err)

	p, ok := r.Lookup("1.2.3")
	require.True(t, ok)
	assert.Equal(t, 3, p.Operations().Len())

	_, err = b.Register(Registration{ContextOID: "1.2.4"})
	assert.ErrorIs(t, err, codec.ErrRegistryFrozen)
	_, err = b.Build(types)
	assert.ErrorIs(t, err, codec.ErrRegistryFrozen)
}

func TestBuilder_NilTypes(t *testing.T) {
	_, err := NewBuilder().Build(nil)
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestRegistry_ConcurrentDecode(t *testing.T) {
	r := testRegistry()
	data := tlv(ctxc(1), integer(7), integer(1), seq(octets("cn")))

	done := make(chan []string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			res := r.Decode("test", data, 0, codec.Options{})
			done <- summary(res)
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, []string{"invoke read"}, <-done)
	}
}
