package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

// Registration identifiers
const (
	ProtocolName = "ldap"
	ContextOID   = "1.3.6.1.1.18"
	// MessageType is the registry name of the root type.
	MessageType = typePrefix + "LDAPMessage"
)

// Module registers LDAPv3.
type Module struct{}

// Name returns the protocol name.
func (Module) Name() string { return ProtocolName }

// Register defines the LDAP types and extensions in cb and the protocol
// in rb.
func (Module) Register(cb *codec.Builder, rb *rose.Builder) error {
	s := defineTypes(cb)
	if err := registerExtensions(cb); err != nil {
		return fmt.Errorf("ldap: %w", err)
	}

	var message codec.Type
	p, err := rb.Register(rose.Registration{
		ContextOID: ContextOID,
		Name:       ProtocolName,
		Operations: s.ops,
		Root:       func(*rose.Protocol) codec.Type { return message },
	})
	if err != nil {
		return fmt.Errorf("ldap: %w", err)
	}
	message = defineMessage(cb, p, s)
	return nil
}
