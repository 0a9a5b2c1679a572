package ldap

import (
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// Control OIDs with registered value decoders.
const (
	PagedResultsOID            = "1.2.840.113556.1.4.319"
	SortRequestOID             = "1.2.840.113556.1.4.473"
	SortResponseOID            = "1.2.840.113556.1.4.474"
	PersistentSearchOID        = "2.16.840.1.113730.3.4.3"
	EntryChangeNotificationOID = "2.16.840.1.113730.3.4.7"
)

// Extended operation OIDs.
const (
	PasswordModifyOID = "1.3.6.1.4.1.4203.1.11.1"
	WhoAmIOID         = "1.3.6.1.4.1.4203.1.11.3"
	StartTLSOID       = "1.3.6.1.4.1.1466.20037"
)

// Sort result codes per RFC 2891
var sortResultNames = map[int64]string{
	0:  "success",
	1:  "operationsError",
	3:  "timeLimitExceeded",
	8:  "strongAuthRequired",
	11: "adminLimitExceeded",
	16: "noSuchAttribute",
	18: "inappropriateMatching",
	50: "insufficientAccessRights",
	51: "busy",
	53: "unwillingToPerform",
	80: "other",
}

// Entry change types for persistent search
var changeTypeNames = map[int64]string{
	1: "add",
	2: "delete",
	4: "modify",
	8: "modDN",
}

// registerExtensions binds control values and extended request values to
// their OIDs.
func registerExtensions(cb *codec.Builder) error {
	text := codec.OctetText()

	extensions := map[string]codec.Type{
		//	realSearchControlValue ::= SEQUENCE {
		//	    size    INTEGER (0..maxInt),
		//	    cookie  OCTET STRING
		//	}
		PagedResultsOID: codec.NewSequence("PagedResultsControlValue",
			codec.F("size", codec.Integer()),
			codec.F("cookie", codec.OctetString()),
		),

		SortRequestOID: codec.SequenceOf(codec.NewSequence("SortKey",
			codec.F("attributeType", text.Named("AttributeDescription")),
			codec.F("orderingRule", text.Named("MatchingRuleId")).Implicit(ctx(0)).Optional(),
			codec.F("reverseOrder", codec.Boolean()).Implicit(ctx(1)).WithDefault(false),
		)).Named("SortKeyList").Items("sortKey"),

		SortResponseOID: codec.NewSequence("SortResult",
			codec.F("sortResult", codec.Enumerated(sortResultNames)),
			codec.F("attributeType", text.Named("AttributeDescription")).Implicit(ctx(0)).Optional(),
		),

		PersistentSearchOID: codec.NewSequence("PersistentSearch",
			codec.F("changeTypes", codec.Integer()),
			codec.F("changesOnly", codec.Boolean()),
			codec.F("returnECs", codec.Boolean()),
		),

		EntryChangeNotificationOID: codec.NewSequence("EntryChangeNotification",
			codec.F("changeType", codec.Enumerated(changeTypeNames)),
			codec.F("previousDN", text.Named("LDAPDN")).Optional(),
			codec.F("changeNumber", codec.Integer()).Optional(),
		),

		// PasswdModifyRequestValue; the response value shares the OID
		// and is left as octets in ExtendedResponse.
		PasswordModifyOID: codec.NewSequence("PasswdModifyRequestValue",
			codec.F("userIdentity", text).Implicit(ctx(0)).Optional(),
			codec.F("oldPasswd", codec.OctetString()).Implicit(ctx(1)).Optional(),
			codec.F("newPasswd", codec.OctetString()).Implicit(ctx(2)).Optional(),
		),
	}

	for oid, t := range extensions {
		if err := cb.RegisterExtension(oid, t); err != nil {
			return err
		}
	}
	return nil
}
