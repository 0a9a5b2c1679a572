package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

func TestFilterString(t *testing.T) {
	sub := func(n int, s string) []byte { return ctxs(n, s) }

	tests := []struct {
		name   string
		filter []byte
		want   string
	}{
		{
			name:   "present",
			filter: ctxs(FilterTagPresent, "objectClass"),
			want:   "(objectClass=*)",
		},
		{
			name: "and with not",
			filter: tlv(ctxc(FilterTagAnd),
				equality("objectClass", "person"),
				tlv(ctxc(FilterTagNot), equality("uid", "alice")),
			),
			want: "(&(objectClass=person)(!(uid=alice)))",
		},
		{
			name:   "or",
			filter: tlv(ctxc(FilterTagOr), equality("cn", "a"), equality("cn", "b")),
			want:   "(|(cn=a)(cn=b))",
		},
		{
			name:   "escaped value",
			filter: equality("cn", "a*(b)\\"),
			want:   `(cn=a\2a\28b\29\5c)`,
		},
		{
			name:   "ordering",
			filter: tlv(ctxc(FilterTagGreaterOrEqual), octets("age"), octets("30")),
			want:   "(age>=30)",
		},
		{
			name:   "approx",
			filter: tlv(ctxc(FilterTagApproxMatch), octets("sn"), octets("smith")),
			want:   "(sn~=smith)",
		},
		{
			name: "substrings",
			filter: tlv(ctxc(FilterTagSubstrings), octets("cn"),
				seq(sub(0, "Al"), sub(1, "c"), sub(2, "e"))),
			want: "(cn=Al*c*e)",
		},
		{
			name: "substrings any only",
			filter: tlv(ctxc(FilterTagSubstrings), octets("mail"),
				seq(sub(1, "example"))),
			want: "(mail=*example*)",
		},
		{
			name: "extensible",
			filter: tlv(ctxc(FilterTagExtensibleMatch),
				ctxs(1, "caseExactMatch"),
				ctxs(2, "cn"),
				ctxs(3, "Fred"),
				ctxs(4, "\xff"),
			),
			want: "(cn:dn:caseExactMatch:=Fred)",
		},
	}

	f := newFixture(t)
	filterType, ok := f.types.Type("ldap.Filter")
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.types.Decode(tt.filter, 0, filterType, codec.Options{})
			require.False(t, res.Malformed())

			got, ok := FilterString(res.Root)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterString_Rejects(t *testing.T) {
	_, ok := FilterString(nil)
	assert.False(t, ok)

	_, ok = FilterString(&codec.Node{Kind: codec.KindInteger, Value: int64(1)})
	assert.False(t, ok)

	f := newFixture(t)
	filterType, _ := f.types.Type("ldap.Filter")
	res := f.types.Decode([]byte{0xa0, 0x05, 0x04}, 0, filterType, codec.Options{})
	require.True(t, res.Malformed())
	_, ok = FilterString(res.Root)
	assert.False(t, ok)
}

func TestDecode_SearchRequestFilterSummary(t *testing.T) {
	f := newFixture(t)
	res := f.decode(message(4, tlv(appc(ApplicationSearchRequest),
		octets("ou=people,dc=example,dc=com"),
		enum(1), enum(0), integer(0), integer(0), boolean(false),
		tlv(ctxc(FilterTagAnd), equality("objectClass", "person"), ctxs(FilterTagPresent, "mail")),
		seq(),
	)))
	require.False(t, res.Malformed())

	assert.Contains(t, summary(res), "filter=(&(objectClass=person)(mail=*))")
	assert.Equal(t, "ldap.Filter", res.Root.Find("protocolOp.searchRequest.filter").Type)
}
