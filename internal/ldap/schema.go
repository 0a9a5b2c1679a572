package ldap

import (
	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

// typePrefix qualifies LDAP type names in the shared registry.
const typePrefix = "ldap."

// schema holds the LDAP types needed to build the operation table.
type schema struct {
	control codec.Type
	ops     []rose.Operation
}

func app(n int) ber.Tag { return ber.App(n) }

func ctx(n int) ber.Tag { return ber.Ctx(n) }

func defineTypes(cb *codec.Builder) *schema {
	def := func(name string, t codec.Type) *codec.Ref {
		return cb.Define(typePrefix+name, t)
	}

	var (
		ldapString     = codec.OctetText().Named("LDAPString")
		ldapDN         = codec.OctetText().Named("LDAPDN")
		relativeDN     = codec.OctetText().Named("RelativeLDAPDN")
		ldapOID        = codec.OctetText().Named("LDAPOID")
		attrDesc       = codec.OctetText().Named("AttributeDescription")
		attrValue      = codec.OctetText().Named("AttributeValue")
		assertionValue = codec.OctetText().Named("AssertionValue")
		matchingRuleID = codec.OctetText().Named("MatchingRuleId")
		uri            = codec.OctetText().Named("URI")
		messageID      = codec.Integer().Named("MessageID")
	)

	referral := codec.SequenceOf(uri).Size(1, 0).Named("Referral").Items("uri")

	result := def("LDAPResult", codec.NewSequence("LDAPResult",
		codec.F("resultCode", codec.Enumerated(resultCodeLabels())).Summarize(),
		codec.F("matchedDN", ldapDN),
		codec.F("diagnosticMessage", ldapString),
		codec.F("referral", referral).Implicit(ctx(ContextTagReferral)).Optional(),
	))

	// response wraps LDAPResult under an APPLICATION tag.
	response := func(name string, tag int) codec.Type {
		return def(name, codec.ImplicitType(name, app(tag), result))
	}

	ava := def("AttributeValueAssertion", codec.NewSequence("AttributeValueAssertion",
		codec.F("attributeDesc", attrDesc),
		codec.F("assertionValue", assertionValue),
	))

	partialAttribute := def("PartialAttribute", codec.NewSequence("PartialAttribute",
		codec.F("type", attrDesc),
		codec.F("vals", codec.SetOf(attrValue).Items("value")),
	))

	attribute := def("Attribute", codec.NewSequence("Attribute",
		codec.F("type", attrDesc),
		codec.F("vals", codec.SetOf(attrValue).Size(1, 0).Items("value")),
	))

	filter := cb.Declare(typePrefix + "Filter")
	filterSet := func() *codec.Of {
		return codec.SetOf(filter).Size(1, 0).Named("SET OF Filter").Items("filter")
	}

	substring := codec.NewChoice("Substring",
		codec.F("initial", assertionValue).Implicit(ctx(0)),
		codec.F("any", assertionValue).Implicit(ctx(1)),
		codec.F("final", assertionValue).Implicit(ctx(2)),
	)
	substringFilter := codec.NewSequence("SubstringFilter",
		codec.F("type", attrDesc),
		codec.F("substrings", codec.SequenceOf(substring).Size(1, 0).Items("substring")),
	)
	matchingRuleAssertion := codec.NewSequence("MatchingRuleAssertion",
		codec.F("matchingRule", matchingRuleID).Implicit(ctx(1)).Optional(),
		codec.F("type", attrDesc).Implicit(ctx(2)).Optional(),
		codec.F("matchValue", assertionValue).Implicit(ctx(3)),
		codec.F("dnAttributes", codec.Boolean()).Implicit(ctx(4)).WithDefault(false),
	)

	def("Filter", codec.NewChoice("Filter",
		codec.F("and", filterSet()).Implicit(ctx(FilterTagAnd)),
		codec.F("or", filterSet()).Implicit(ctx(FilterTagOr)),
		codec.F("not", filter).Explicit(ctx(FilterTagNot)),
		codec.F("equalityMatch", ava).Implicit(ctx(FilterTagEquality)),
		codec.F("substrings", substringFilter).Implicit(ctx(FilterTagSubstrings)),
		codec.F("greaterOrEqual", ava).Implicit(ctx(FilterTagGreaterOrEqual)),
		codec.F("lessOrEqual", ava).Implicit(ctx(FilterTagLessOrEqual)),
		codec.F("present", attrDesc).Implicit(ctx(FilterTagPresent)),
		codec.F("approxMatch", ava).Implicit(ctx(FilterTagApproxMatch)),
		codec.F("extensibleMatch", matchingRuleAssertion).Implicit(ctx(FilterTagExtensibleMatch)),
	))

	control := def("Control", codec.NewSequence("Control",
		codec.F("controlType", ldapOID).Identifier().Summarize(),
		codec.F("criticality", codec.Boolean()).WithDefault(false),
		codec.F("controlValue", codec.ContainingOf(codec.Open("controlValue"))).Optional(),
	))

	bindRequest := def("BindRequest", codec.NewSequence("BindRequest",
		codec.F("version", codec.Integer()),
		codec.F("name", ldapDN).Summarize(),
		codec.F("authentication", codec.NewChoice("AuthenticationChoice",
			codec.F("simple", codec.OctetString()).Implicit(ctx(ContextTagSimpleAuth)),
			codec.F("sasl", codec.NewSequence("SaslCredentials",
				codec.F("mechanism", ldapString).Summarize(),
				codec.F("credentials", codec.OctetString()).Optional(),
			)).Implicit(ctx(ContextTagSASLAuth)),
		)),
	))

	bindResponse := def("BindResponse", codec.NewSequence("BindResponse",
		codec.F("result", result).NoOwnTag(),
		codec.F("serverSaslCreds", codec.OctetString()).Implicit(ctx(ContextTagSASLCreds)).Optional(),
	))

	searchRequest := def("SearchRequest", codec.NewSequence("SearchRequest",
		codec.F("baseObject", ldapDN).Summarize(),
		codec.F("scope", codec.Enumerated(scopeNames)),
		codec.F("derefAliases", codec.Enumerated(derefNames)),
		codec.F("sizeLimit", codec.Integer()),
		codec.F("timeLimit", codec.Integer()),
		codec.F("typesOnly", codec.Boolean()),
		codec.F("filter", summarizedFilter{filter}),
		codec.F("attributes", codec.SequenceOf(ldapString).Named("AttributeSelection").Items("selector")),
	))

	searchResultEntry := def("SearchResultEntry", codec.NewSequence("SearchResultEntry",
		codec.F("objectName", ldapDN).Summarize(),
		codec.F("attributes", codec.SequenceOf(partialAttribute).Named("PartialAttributeList").Items("attribute")),
	))

	searchResultReference := def("SearchResultReference",
		codec.SequenceOf(uri).Size(1, 0).Named("SearchResultReference").Items("uri"))

	modifyRequest := def("ModifyRequest", codec.NewSequence("ModifyRequest",
		codec.F("object", ldapDN).Summarize(),
		codec.F("changes", codec.SequenceOf(codec.NewSequence("Change",
			codec.F("operation", codec.Enumerated(modifyOperationNames)),
			codec.F("modification", partialAttribute),
		)).Items("change")),
	))

	addRequest := def("AddRequest", codec.NewSequence("AddRequest",
		codec.F("entry", ldapDN).Summarize(),
		codec.F("attributes", codec.SequenceOf(attribute).Named("AttributeList").Items("attribute")),
	))

	modifyDNRequest := def("ModifyDNRequest", codec.NewSequence("ModifyDNRequest",
		codec.F("entry", ldapDN).Summarize(),
		codec.F("newrdn", relativeDN),
		codec.F("deleteoldrdn", codec.Boolean()),
		codec.F("newSuperior", ldapDN).Implicit(ctx(ContextTagNewSuperior)).Optional(),
	))

	compareRequest := def("CompareRequest", codec.NewSequence("CompareRequest",
		codec.F("entry", ldapDN).Summarize(),
		codec.F("ava", ava),
	))

	extendedRequest := def("ExtendedRequest", codec.NewSequence("ExtendedRequest",
		codec.F("requestName", ldapOID).Implicit(ctx(ContextTagRequestName)).Identifier().Summarize(),
		codec.F("requestValue", codec.ContainingOf(codec.Open("requestValue"))).
			Implicit(ctx(ContextTagRequestValue)).Optional(),
	))

	extendedResponse := def("ExtendedResponse", codec.NewSequence("ExtendedResponse",
		codec.F("result", result).NoOwnTag(),
		codec.F("responseName", ldapOID).Implicit(ctx(ContextTagResponseName)).Optional().Summarize(),
		codec.F("responseValue", codec.OctetString()).Implicit(ctx(ContextTagResponseValue)).Optional(),
	))

	intermediateResponse := def("IntermediateResponse", codec.NewSequence("IntermediateResponse",
		codec.F("responseName", ldapOID).Implicit(ctx(0)).Optional().Summarize(),
		codec.F("responseValue", codec.OctetString()).Implicit(ctx(1)).Optional(),
	))

	invoke := func(code int, t codec.Type) rose.Operation {
		return rose.Operation{Code: int64(code), Name: OperationType(code).String(), Argument: t}
	}
	reply := func(code int, t codec.Type) rose.Operation {
		return rose.Operation{Code: int64(code), Name: OperationType(code).String(), Result: t}
	}

	return &schema{
		control: control,
		ops: []rose.Operation{
			invoke(ApplicationBindRequest, bindRequest),
			reply(ApplicationBindResponse, bindResponse),
			invoke(ApplicationUnbindRequest, codec.Null().Named("UnbindRequest")),
			invoke(ApplicationSearchRequest, searchRequest),
			reply(ApplicationSearchResultEntry, searchResultEntry),
			reply(ApplicationSearchResultDone, response("SearchResultDone", ApplicationSearchResultDone)),
			reply(ApplicationSearchResultReference, searchResultReference),
			invoke(ApplicationModifyRequest, modifyRequest),
			reply(ApplicationModifyResponse, response("ModifyResponse", ApplicationModifyResponse)),
			invoke(ApplicationAddRequest, addRequest),
			reply(ApplicationAddResponse, response("AddResponse", ApplicationAddResponse)),
			invoke(ApplicationDelRequest, ldapDN.Named("DelRequest")),
			reply(ApplicationDelResponse, response("DelResponse", ApplicationDelResponse)),
			invoke(ApplicationModifyDNRequest, modifyDNRequest),
			reply(ApplicationModifyDNResponse, response("ModifyDNResponse", ApplicationModifyDNResponse)),
			invoke(ApplicationCompareRequest, compareRequest),
			reply(ApplicationCompareResponse, response("CompareResponse", ApplicationCompareResponse)),
			invoke(ApplicationAbandonRequest, messageID.Named("AbandonRequest")),
			invoke(ApplicationExtendedRequest, extendedRequest),
			reply(ApplicationExtendedResponse, extendedResponse),
			reply(ApplicationIntermediateResponse, intermediateResponse),
		},
	}
}

// defineMessage registers the LDAPMessage envelope around protocolOp
// dispatch for p.
func defineMessage(cb *codec.Builder, p *rose.Protocol, s *schema) codec.Type {
	return cb.Define(typePrefix+"LDAPMessage", codec.NewSequence("LDAPMessage",
		codec.F("messageID", codec.Integer().Named("MessageID")).Summarize(),
		codec.F("protocolOp", rose.TagDispatch(p)),
		codec.F("controls", codec.SequenceOf(s.control).Named("Controls").Items("control")).
			Implicit(ctx(ContextTagControls)).Optional(),
	))
}

// summarizedFilter decodes a Filter and adds its string form to the summary.
type summarizedFilter struct {
	codec.Type
}

func (f summarizedFilter) DecodeValue(c *codec.Context, h ber.Header, content *ber.BERDecoder, n *codec.Node) {
	f.Type.DecodeValue(c, h, content, n)
	if s, ok := FilterString(n); ok {
		c.Summarize("filter=" + s)
	}
}
