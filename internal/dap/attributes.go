package dap

import (
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// DirectoryString returns the X.520 DirectoryString syntax.
func DirectoryString() *codec.Choice {
	return codec.NewChoice("DirectoryString",
		codec.F("teletexString", codec.TeletexString()),
		codec.F("printableString", codec.PrintableString()),
		codec.F("universalString", codec.UniversalString()),
		codec.F("uTF8String", codec.UTF8String()),
		codec.F("bmpString", codec.BMPString()),
	)
}

// registerAttributes binds attribute types to their value syntaxes.
func registerAttributes(cb *codec.Builder) error {
	directoryString := DirectoryString()
	syntaxes := map[string]codec.Type{
		AttributeCommonName:         directoryString,
		AttributeSurname:            directoryString,
		AttributeOrganizationName:   directoryString,
		AttributeOrganizationalUnit: directoryString,
		AttributeTitle:              directoryString,
		AttributeCountryName:        codec.PrintableString().Named("CountryName"),
		AttributeMail:               codec.IA5String().Named("Mail"),
		AttributeDomainComponent:    codec.IA5String().Named("DomainComponent"),
	}
	for oid, t := range syntaxes {
		if err := cb.RegisterExtension(oid, t); err != nil {
			return fmt.Errorf("attribute %s: %w", oid, err)
		}
	}
	return nil
}
