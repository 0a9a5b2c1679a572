package ldap

import "fmt"

// LDAP protocol operation tags (APPLICATION class)
// Per RFC 4511 Section 4.2
const (
	ApplicationBindRequest           = 0  // [APPLICATION 0]
	ApplicationBindResponse          = 1  // [APPLICATION 1]
	ApplicationUnbindRequest         = 2  // [APPLICATION 2]
	ApplicationSearchRequest         = 3  // [APPLICATION 3]
	ApplicationSearchResultEntry     = 4  // [APPLICATION 4]
	ApplicationSearchResultDone      = 5  // [APPLICATION 5]
	ApplicationModifyRequest         = 6  // [APPLICATION 6]
	ApplicationModifyResponse        = 7  // [APPLICATION 7]
	ApplicationAddRequest            = 8  // [APPLICATION 8]
	ApplicationAddResponse           = 9  // [APPLICATION 9]
	ApplicationDelRequest            = 10 // [APPLICATION 10]
	ApplicationDelResponse           = 11 // [APPLICATION 11]
	ApplicationModifyDNRequest       = 12 // [APPLICATION 12]
	ApplicationModifyDNResponse      = 13 // [APPLICATION 13]
	ApplicationCompareRequest        = 14 // [APPLICATION 14]
	ApplicationCompareResponse       = 15 // [APPLICATION 15]
	ApplicationAbandonRequest        = 16 // [APPLICATION 16]
	ApplicationSearchResultReference = 19 // [APPLICATION 19]
	ApplicationExtendedRequest       = 23 // [APPLICATION 23]
	ApplicationExtendedResponse      = 24 // [APPLICATION 24]
	ApplicationIntermediateResponse  = 25 // [APPLICATION 25]
)

// OperationType is the APPLICATION tag number of a protocolOp.
type OperationType int

var operationNames = map[OperationType]string{
	ApplicationBindRequest:           "bindRequest",
	ApplicationBindResponse:          "bindResponse",
	ApplicationUnbindRequest:         "unbindRequest",
	ApplicationSearchRequest:         "searchRequest",
	ApplicationSearchResultEntry:     "searchResEntry",
	ApplicationSearchResultDone:      "searchResDone",
	ApplicationModifyRequest:         "modifyRequest",
	ApplicationModifyResponse:        "modifyResponse",
	ApplicationAddRequest:            "addRequest",
	ApplicationAddResponse:           "addResponse",
	ApplicationDelRequest:            "delRequest",
	ApplicationDelResponse:           "delResponse",
	ApplicationModifyDNRequest:       "modDNRequest",
	ApplicationModifyDNResponse:      "modDNResponse",
	ApplicationCompareRequest:        "compareRequest",
	ApplicationCompareResponse:       "compareResponse",
	ApplicationAbandonRequest:        "abandonRequest",
	ApplicationSearchResultReference: "searchResRef",
	ApplicationExtendedRequest:       "extendedReq",
	ApplicationExtendedResponse:      "extendedResp",
	ApplicationIntermediateResponse:  "intermediateResponse",
}

// String returns the protocolOp alternative name from RFC 4511.
func (o OperationType) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(o))
}

// Context-specific tags
const (
	ContextTagControls      = 0  // LDAPMessage [0] Controls
	ContextTagReferral      = 3  // LDAPResult [3] Referral
	ContextTagSimpleAuth    = 0  // AuthenticationChoice simple [0]
	ContextTagSASLAuth      = 3  // AuthenticationChoice sasl [3]
	ContextTagSASLCreds     = 7  // BindResponse serverSaslCreds [7]
	ContextTagNewSuperior   = 0  // ModifyDNRequest newSuperior [0]
	ContextTagRequestName   = 0  // ExtendedRequest requestName [0]
	ContextTagRequestValue  = 1  // ExtendedRequest requestValue [1]
	ContextTagResponseName  = 10 // ExtendedResponse responseName [10]
	ContextTagResponseValue = 11 // ExtendedResponse responseValue [11]
)

// Filter tag numbers (context-specific) per RFC 4511
const (
	FilterTagAnd             = 0 // [0] SET OF filter
	FilterTagOr              = 1 // [1] SET OF filter
	FilterTagNot             = 2 // [2] Filter
	FilterTagEquality        = 3 // [3] AttributeValueAssertion
	FilterTagSubstrings      = 4 // [4] SubstringFilter
	FilterTagGreaterOrEqual  = 5 // [5] AttributeValueAssertion
	FilterTagLessOrEqual     = 6 // [6] AttributeValueAssertion
	FilterTagPresent         = 7 // [7] AttributeDescription
	FilterTagApproxMatch     = 8 // [8] AttributeValueAssertion
	FilterTagExtensibleMatch = 9 // [9] MatchingRuleAssertion
)

// SearchRequest scope
var scopeNames = map[int64]string{
	0: "baseObject",
	1: "singleLevel",
	2: "wholeSubtree",
}

// SearchRequest derefAliases
var derefNames = map[int64]string{
	0: "neverDerefAliases",
	1: "derefInSearching",
	2: "derefFindingBaseObj",
	3: "derefAlways",
}

// ModifyRequest change operation
var modifyOperationNames = map[int64]string{
	0: "add",
	1: "delete",
	2: "replace",
	3: "increment",
}
