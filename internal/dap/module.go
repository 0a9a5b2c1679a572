package dap

import (
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/codec"
	"github.com/KilimcininKorOglu/berx/internal/rose"
)

// Registration identifiers
const (
	ProtocolName = "dap"
	ContextOID   = "2.5.3.1"
)

// Module registers the Directory Access Protocol subset.
type Module struct{}

// Name returns the protocol name.
func (Module) Name() string { return ProtocolName }

// Register defines the DAP types and attribute syntaxes in cb and binds
// the ROS envelope to the DAP tables in rb.
func (Module) Register(cb *codec.Builder, rb *rose.Builder) error {
	t := defineTypes(cb)
	if err := registerAttributes(cb); err != nil {
		return fmt.Errorf("dap: %w", err)
	}
	if _, err := rb.Register(rose.Registration{
		ContextOID: ContextOID,
		Name:       ProtocolName,
		Operations: t.ops,
		Errors:     t.errs,
	}); err != nil {
		return fmt.Errorf("dap: %w", err)
	}
	return nil
}
