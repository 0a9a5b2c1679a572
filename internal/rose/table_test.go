package rose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

func TestOperationTable_Lookup(t *testing.T) {
	table, err := NewOperationTable(testOperations()...)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	op, ok := table.Lookup(codec.LocalCode(1))
	require.True(t, ok)
	assert.Equal(t, "read", op.Name)

	op, ok = table.Lookup(codec.GlobalCode("1.2.3.4"))
	require.True(t, ok)
	assert.Equal(t, "globalOp", op.Name)

	_, ok = table.Lookup(codec.LocalCode(99))
	assert.False(t, ok)
	_, ok = table.Lookup(codec.GlobalCode("1.2.3.5"))
	assert.False(t, ok)
}

func TestOperationTable_Order(t *testing.T) {
	table, err := NewOperationTable(
		Operation{Global: "1.2.9", Name: "g"},
		Operation{Code: 5, Name: "five"},
		Operation{Code: -1, Name: "minus"},
	)
	require.NoError(t, err)

	var names []string
	for _, op := range table.Operations() {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"minus", "five", "g"}, names)
}

func TestOperationTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		err  error
	}{
		{
			name: "duplicate local",
			ops:  []Operation{{Code: 1, Name: "a"}, {Code: 1, Name: "b"}},
			err:  ErrDuplicateCode,
		},
		{
			name: "duplicate global",
			ops:  []Operation{{Global: "1.2.3", Name: "a"}, {Global: "1.2.3", Name: "b"}},
			err:  ErrDuplicateCode,
		},
		{
			name: "invalid global",
			ops:  []Operation{{Global: "not.an.oid", Name: "a"}},
			err:  ErrInvalidCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOperationTable(tt.ops...)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestErrorTable(t *testing.T) {
	table, err := NewErrorTable(testErrors()...)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	e, ok := table.Lookup(codec.LocalCode(2))
	require.True(t, ok)
	assert.Equal(t, "serviceError", e.Name)

	_, err = NewErrorTable(Error{Code: 1}, Error{Code: 1})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, codec.LocalCode(7), Operation{Code: 7}.Identifier())
	assert.Equal(t, codec.GlobalCode("2.5.1"), Operation{Code: 7, Global: "2.5.1"}.Identifier())
	assert.Equal(t, codec.LocalCode(3), Error{Code: 3}.Identifier())
}
