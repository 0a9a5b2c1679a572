package dap

import (
	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

// typePrefix qualifies DAP type names in the shared registry.
const typePrefix = "dap."

func ctx(n int) ber.Tag { return ber.Ctx(n) }

// tables holds the operation and error tables built from the schema.
type tables struct {
	ops  []rose.Operation
	errs []rose.Error
}

func defineTypes(cb *codec.Builder) *tables {
	def := func(name string, t codec.Type) *codec.Ref {
		return cb.Define(typePrefix+name, t)
	}

	attributeType := codec.ObjectIdentifier().Named("AttributeType")

	atav := def("AttributeTypeAndValue", codec.NewSequence("AttributeTypeAndValue",
		codec.F("type", attributeType),
		codec.F("value", codec.Open("AttributeValue")),
	))
	rdn := def("RelativeDistinguishedName",
		codec.SetOf(atav).Size(1, 0).Named("RelativeDistinguishedName").Items("atav"))
	rdnSequence := codec.SequenceOf(rdn).Named("RDNSequence").Items("rdn")
	name := def("Name", nameType(rdnSequence))

	ava := def("AttributeValueAssertion", codec.NewSequence("AttributeValueAssertion",
		codec.F("type", attributeType),
		codec.F("assertion", codec.Open("AttributeValue")),
	))

	attribute := def("Attribute", codec.NewSequence("Attribute",
		codec.F("type", attributeType),
		codec.F("values", codec.SetOf(codec.Open("AttributeValue")).Items("value")),
	))

	selection := def("EntryInformationSelection", &codec.Set{
		Name: "EntryInformationSelection",
		Fields: []*codec.Field{
			codec.F("attributes", codec.NewChoice("AttributeSelection",
				codec.F("allUserAttributes", codec.Null()).Implicit(ctx(0)),
				codec.F("select", codec.SetOf(attributeType).Items("type")).Implicit(ctx(1)),
			)).WithDefault("allUserAttributes"),
			codec.F("infoTypes", codec.Integer(infoTypeNames)).Implicit(ctx(2)).WithDefault(int64(1)),
		},
		Extensible: true,
	})

	entryInformation := def("EntryInformation", codec.NewSequence("EntryInformation",
		codec.F("name", name),
		codec.F("fromEntry", codec.Boolean()).WithDefault(true),
		codec.F("information", codec.SetOf(codec.NewChoice("Information",
			codec.F("attributeType", attributeType),
			codec.F("attribute", attribute),
		)).Items("item")).Optional(),
	))

	filter := cb.Declare(typePrefix + "Filter")
	filterSet := func() *codec.Of {
		return codec.SetOf(filter).Named("SET OF Filter").Items("filter")
	}
	substrings := codec.NewSequence("SubstringsFilter",
		codec.F("type", attributeType),
		codec.F("strings", codec.SequenceOf(codec.NewChoice("SubstringPart",
			codec.F("initial", codec.Open("AttributeValue")).Explicit(ctx(0)),
			codec.F("any", codec.Open("AttributeValue")).Explicit(ctx(1)),
			codec.F("final", codec.Open("AttributeValue")).Explicit(ctx(2)),
		)).Items("string")),
	)
	filterItem := codec.NewChoice("FilterItem",
		codec.F("equality", ava).Implicit(ctx(0)),
		codec.F("substrings", substrings).Implicit(ctx(1)),
		codec.F("greaterOrEqual", ava).Implicit(ctx(2)),
		codec.F("lessOrEqual", ava).Implicit(ctx(3)),
		codec.F("present", attributeType).Implicit(ctx(4)),
		codec.F("approximateMatch", ava).Implicit(ctx(5)),
	)
	def("Filter", codec.NewChoice("Filter",
		codec.F("item", filterItem).Explicit(ctx(0)),
		codec.F("and", filterSet()).Implicit(ctx(1)),
		codec.F("or", filterSet()).Implicit(ctx(2)),
		codec.F("not", filter).Explicit(ctx(3)),
	))

	readArgument := def("ReadArgument", &codec.Set{
		Name: "ReadArgument",
		Fields: []*codec.Field{
			codec.F("object", name).Explicit(ctx(0)),
			codec.F("selection", selection).Implicit(ctx(1)).Optional(),
			codec.F("modifyRightsRequest", codec.Boolean()).Implicit(ctx(2)).WithDefault(false),
		},
		Extensible: true,
	})
	readResult := def("ReadResult", &codec.Set{
		Name: "ReadResult",
		Fields: []*codec.Field{
			codec.F("entry", entryInformation).Implicit(ctx(0)),
		},
		Extensible: true,
	})

	compareArgument := def("CompareArgument", &codec.Set{
		Name: "CompareArgument",
		Fields: []*codec.Field{
			codec.F("object", name).Explicit(ctx(0)),
			codec.F("purported", ava).Implicit(ctx(1)),
		},
		Extensible: true,
	})
	compareResult := def("CompareResult", &codec.Set{
		Name: "CompareResult",
		Fields: []*codec.Field{
			codec.F("name", name).Optional(),
			codec.F("matched", codec.Boolean()).Implicit(ctx(0)),
			codec.F("fromEntry", codec.Boolean()).Implicit(ctx(1)).WithDefault(true),
		},
		Extensible: true,
	})

	abandonArgument := def("AbandonArgument", codec.NewSequence("AbandonArgument",
		codec.F("invokeID", rose.InvokeID()).Explicit(ctx(0)),
	))

	listArgument := def("ListArgument", &codec.Set{
		Name: "ListArgument",
		Fields: []*codec.Field{
			codec.F("object", name).Explicit(ctx(0)),
			codec.F("listFamily", codec.Boolean()).Implicit(ctx(2)).WithDefault(false),
		},
		Extensible: true,
	})
	listResult := cb.Declare(typePrefix + "ListResult")
	def("ListResult", codec.NewChoice("ListResult",
		codec.F("listInfo", &codec.Set{
			Name: "ListInfo",
			Fields: []*codec.Field{
				codec.F("name", name).Optional(),
				codec.F("subordinates", codec.SetOf(codec.NewSequence("Subordinate",
					codec.F("rdn", rdn),
					codec.F("aliasEntry", codec.Boolean()).Implicit(ctx(0)).WithDefault(false),
					codec.F("fromEntry", codec.Boolean()).Implicit(ctx(1)).WithDefault(true),
				)).Items("subordinate")).Implicit(ctx(1)),
			},
			Extensible: true,
		}),
		codec.F("uncorrelatedListInfo",
			codec.SetOf(listResult).Named("SET OF ListResult").Items("listResult")).Implicit(ctx(0)),
	))

	searchArgument := def("SearchArgument", &codec.Set{
		Name: "SearchArgument",
		Fields: []*codec.Field{
			codec.F("baseObject", name).Explicit(ctx(0)),
			codec.F("subset", codec.Integer(subsetNames)).Implicit(ctx(1)).WithDefault(int64(0)),
			codec.F("filter", filter).Explicit(ctx(2)).Optional(),
			codec.F("searchAliases", codec.Boolean()).Implicit(ctx(3)).WithDefault(true),
			codec.F("selection", selection).Implicit(ctx(4)).Optional(),
		},
		Extensible: true,
	})
	searchResult := cb.Declare(typePrefix + "SearchResult")
	def("SearchResult", codec.NewChoice("SearchResult",
		codec.F("searchInfo", &codec.Set{
			Name: "SearchInfo",
			Fields: []*codec.Field{
				codec.F("name", name).Optional(),
				codec.F("entries", codec.SetOf(entryInformation).Items("entry")).Implicit(ctx(0)),
			},
			Extensible: true,
		}),
		codec.F("uncorrelatedSearchInfo",
			codec.SetOf(searchResult).Named("SET OF SearchResult").Items("searchResult")).Implicit(ctx(0)),
	))

	// Errors
	attributeError := def("AttributeErrorParameter", &codec.Set{
		Name: "AttributeErrorParameter",
		Fields: []*codec.Field{
			codec.F("object", name).Explicit(ctx(0)),
			codec.F("problems", codec.SetOf(codec.NewSequence("AttributeProblem",
				codec.F("problem", codec.Integer(attributeProblemNames)).Implicit(ctx(0)),
				codec.F("type", attributeType).Implicit(ctx(1)),
				codec.F("value", codec.Open("AttributeValue")).Explicit(ctx(2)).Optional(),
			)).Items("problem")).Implicit(ctx(1)),
		},
		Extensible: true,
	})
	nameError := def("NameErrorParameter", &codec.Set{
		Name: "NameErrorParameter",
		Fields: []*codec.Field{
			codec.F("problem", codec.Integer(nameProblemNames)).Implicit(ctx(0)),
			codec.F("matched", name).Explicit(ctx(1)),
		},
		Extensible: true,
	})
	serviceError := def("ServiceErrorParameter", &codec.Set{
		Name: "ServiceErrorParameter",
		Fields: []*codec.Field{
			codec.F("problem", codec.Integer(serviceProblemNames)).Implicit(ctx(0)),
		},
		Extensible: true,
	})
	presentationAddress := codec.NewSequence("PresentationAddress",
		codec.F("pSelector", codec.OctetString()).Explicit(ctx(0)).Optional(),
		codec.F("sSelector", codec.OctetString()).Explicit(ctx(1)).Optional(),
		codec.F("tSelector", codec.OctetString()).Explicit(ctx(2)).Optional(),
		codec.F("nAddresses", codec.SetOf(codec.OctetString()).Items("address")).Explicit(ctx(3)),
	)
	accessPoint := &codec.Set{
		Name: "AccessPoint",
		Fields: []*codec.Field{
			codec.F("ae-title", name).Explicit(ctx(0)),
			codec.F("address", presentationAddress).Implicit(ctx(1)),
		},
		Extensible: true,
	}
	referral := def("ReferralParameter", &codec.Set{
		Name: "ReferralParameter",
		Fields: []*codec.Field{
			codec.F("candidate", &codec.Set{
				Name: "ContinuationReference",
				Fields: []*codec.Field{
					codec.F("targetObject", name).Explicit(ctx(0)),
					codec.F("aliasedRDNs", codec.Integer()).Implicit(ctx(1)).Optional(),
					codec.F("rdnsResolved", codec.Integer()).Implicit(ctx(3)).Optional(),
					codec.F("referenceType", codec.Enumerated(referenceTypeNames)).Implicit(ctx(4)).Optional(),
					codec.F("accessPoints", codec.SetOf(accessPoint).Items("accessPoint")).Implicit(ctx(5)),
				},
				Extensible: true,
			}).Implicit(ctx(0)),
		},
		Extensible: true,
	})
	securityError := def("SecurityErrorParameter", &codec.Set{
		Name: "SecurityErrorParameter",
		Fields: []*codec.Field{
			codec.F("problem", codec.Integer(securityProblemNames)).Implicit(ctx(0)),
		},
		Extensible: true,
	})

	return &tables{
		ops: []rose.Operation{
			{Code: OpRead, Name: "read", Argument: readArgument, Result: readResult},
			{Code: OpCompare, Name: "compare", Argument: compareArgument, Result: compareResult},
			{Code: OpAbandon, Name: "abandon", Argument: abandonArgument, Result: codec.Null().Named("AbandonResult")},
			{Code: OpList, Name: "list", Argument: listArgument, Result: listResult},
			{Code: OpSearch, Name: "search", Argument: searchArgument, Result: searchResult},
		},
		errs: []rose.Error{
			{Code: ErrCodeAttributeError, Name: "attributeError", Parameter: attributeError},
			{Code: ErrCodeNameError, Name: "nameError", Parameter: nameError},
			{Code: ErrCodeServiceError, Name: "serviceError", Parameter: serviceError},
			{Code: ErrCodeReferral, Name: "referral", Parameter: referral},
			{Code: ErrCodeAbandoned, Name: "abandoned"},
			{Code: ErrCodeSecurityError, Name: "securityError", Parameter: securityError},
		},
	}
}
