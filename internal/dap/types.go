package dap

// Operation codes
const (
	OpRead    = 1
	OpCompare = 2
	OpAbandon = 3
	OpList    = 4
	OpSearch  = 5
)

// Error codes
const (
	ErrCodeAttributeError = 1
	ErrCodeNameError      = 2
	ErrCodeServiceError   = 3
	ErrCodeReferral       = 4
	ErrCodeAbandoned      = 5
	ErrCodeSecurityError  = 6
)

// Attribute types with registered value syntaxes.
const (
	AttributeCommonName         = "2.5.4.3"
	AttributeSurname            = "2.5.4.4"
	AttributeCountryName        = "2.5.4.6"
	AttributeOrganizationName   = "2.5.4.10"
	AttributeOrganizationalUnit = "2.5.4.11"
	AttributeTitle              = "2.5.4.12"
	AttributeMail               = "0.9.2342.19200300.100.1.3"
	AttributeDomainComponent    = "0.9.2342.19200300.100.1.25"
)

// attributeShortNames are the LDAP names used when rendering DNs.
var attributeShortNames = map[string]string{
	AttributeCommonName:         "cn",
	AttributeSurname:            "sn",
	AttributeCountryName:        "c",
	AttributeOrganizationName:   "o",
	AttributeOrganizationalUnit: "ou",
	AttributeTitle:              "title",
	AttributeMail:               "mail",
	AttributeDomainComponent:    "dc",
}

var (
	subsetNames = map[int64]string{
		0: "baseObject",
		1: "oneLevel",
		2: "wholeSubtree",
	}
	infoTypeNames = map[int64]string{
		0: "attributeTypesOnly",
		1: "attributeTypesAndValues",
	}
	attributeProblemNames = map[int64]string{
		1: "noSuchAttributeOrValue",
		2: "invalidAttributeSyntax",
		3: "undefinedAttributeType",
		4: "inappropriateMatching",
		5: "constraintViolation",
		6: "attributeOrValueAlreadyExists",
	}
	nameProblemNames = map[int64]string{
		1: "noSuchObject",
		2: "aliasProblem",
		3: "invalidAttributeSyntax",
		4: "aliasDereferencingProblem",
	}
	serviceProblemNames = map[int64]string{
		1:  "busy",
		2:  "unavailable",
		3:  "unwillingToPerform",
		4:  "chainingRequired",
		5:  "unableToProceed",
		6:  "invalidReference",
		7:  "timeLimitExceeded",
		8:  "administrativeLimitExceeded",
		9:  "loopDetected",
		10: "unavailableCriticalExtension",
		11: "outOfScope",
		12: "ditError",
		13: "invalidQueryReference",
	}
	securityProblemNames = map[int64]string{
		1: "inappropriateAuthentication",
		2: "invalidCredentials",
		3: "insufficientAccessRights",
		4: "invalidSignature",
		5: "protectionRequired",
		6: "noInformation",
		7: "blockedCredentials",
	}
	referenceTypeNames = map[int64]string{
		1: "superior",
		2: "subordinate",
		3: "cross",
		4: "nonSpecificSubordinate",
		5: "supplier",
		6: "master",
		7: "immediateSuperior",
		8: "self",
	}
)
