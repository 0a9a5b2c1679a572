package rose

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KilimcininKorOglu/berx/internal/ber"
	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// Table errors
var (
	ErrDuplicateCode = errors.New("rose: duplicate code")
	ErrInvalidCode   = errors.New("rose: invalid global code")
)

// Operation binds an operation code to its argument and result types.
// Either type may be nil when the operation has no such value.
type Operation struct {
	Code int64
	// Global is the OID of a global code; empty for local codes.
	Global   string
	Name     string
	Argument codec.Type
	Result   codec.Type
}

// Identifier returns the code as an open-type identifier.
func (o Operation) Identifier() codec.Identifier {
	if o.Global != "" {
		return codec.GlobalCode(o.Global)
	}
	return codec.LocalCode(o.Code)
}

// Error binds an error code to its parameter type.
type Error struct {
	Code      int64
	Global    string
	Name      string
	Parameter codec.Type
}

// Identifier returns the code as an open-type identifier.
func (e Error) Identifier() codec.Identifier {
	if e.Global != "" {
		return codec.GlobalCode(e.Global)
	}
	return codec.LocalCode(e.Code)
}

// OperationTable maps operation codes to operations.
type OperationTable struct {
	local  map[int64]*Operation
	global map[string]*Operation
}

// NewOperationTable indexes ops. Codes must be unique.
func NewOperationTable(ops ...Operation) (*OperationTable, error) {
	t := &OperationTable{
		local:  make(map[int64]*Operation, len(ops)),
		global: make(map[string]*Operation),
	}
	for i := range ops {
		op := &ops[i]
		if op.Global != "" {
			if !ber.IsValidOID(op.Global) {
				return nil, fmt.Errorf("%w: operation %s: %q", ErrInvalidCode, op.Name, op.Global)
			}
			if _, dup := t.global[op.Global]; dup {
				return nil, fmt.Errorf("%w: operation %s (%s)", ErrDuplicateCode, op.Name, op.Global)
			}
			t.global[op.Global] = op
			continue
		}
		if _, dup := t.local[op.Code]; dup {
			return nil, fmt.Errorf("%w: operation %s (%d)", ErrDuplicateCode, op.Name, op.Code)
		}
		t.local[op.Code] = op
	}
	return t, nil
}

// Lookup returns the operation for id.
func (t *OperationTable) Lookup(id codec.Identifier) (*Operation, bool) {
	if id.Numeric {
		op, ok := t.local[id.Code]
		return op, ok
	}
	op, ok := t.global[id.OID]
	return op, ok
}

// Len returns the number of operations.
func (t *OperationTable) Len() int {
	return len(t.local) + len(t.global)
}

// Operations returns the operations, local codes first in code order.
func (t *OperationTable) Operations() []*Operation {
	out := make([]*Operation, 0, t.Len())
	for _, op := range t.local {
		out = append(out, op)
	}
	for _, op := range t.global {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Global == "") != (b.Global == "") {
			return a.Global == ""
		}
		if a.Global == "" {
			return a.Code < b.Code
		}
		return a.Global < b.Global
	})
	return out
}

// ErrorTable maps error codes to errors.
type ErrorTable struct {
	local  map[int64]*Error
	global map[string]*Error
}

// NewErrorTable indexes errs. Codes must be unique.
func NewErrorTable(errs ...Error) (*ErrorTable, error) {
	t := &ErrorTable{
		local:  make(map[int64]*Error, len(errs)),
		global: make(map[string]*Error),
	}
	for i := range errs {
		e := &errs[i]
		if e.Global != "" {
			if !ber.IsValidOID(e.Global) {
				return nil, fmt.Errorf("%w: error %s: %q", ErrInvalidCode, e.Name, e.Global)
			}
			if _, dup := t.global[e.Global]; dup {
				return nil, fmt.Errorf("%w: error %s (%s)", ErrDuplicateCode, e.Name, e.Global)
			}
			t.global[e.Global] = e
			continue
		}
		if _, dup := t.local[e.Code]; dup {
			return nil, fmt.Errorf("%w: error %s (%d)", ErrDuplicateCode, e.Name, e.Code)
		}
		t.local[e.Code] = e
	}
	return t, nil
}

// Lookup returns the error for id.
func (t *ErrorTable) Lookup(id codec.Identifier) (*Error, bool) {
	if id.Numeric {
		e, ok := t.local[id.Code]
		return e, ok
	}
	e, ok := t.global[id.OID]
	return e, ok
}

// Len returns the number of errors.
func (t *ErrorTable) Len() int {
	return len(t.local) + len(t.global)
}

// Errors returns the errors, local codes first in code order.
func (t *ErrorTable) Errors() []*Error {
	out := make([]*Error, 0, t.Len())
	for _, e := range t.local {
		out = append(out, e)
	}
	for _, e := range t.global {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Global == "") != (b.Global == "") {
			return a.Global == ""
		}
		if a.Global == "" {
			return a.Code < b.Code
		}
		return a.Global < b.Global
	})
	return out
}
