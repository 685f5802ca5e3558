// column.go - Column model for reconstructed user tables
package schema

import (
	"github.com/wilhasse/go-mdf/sysobj"
)

// Column is one column of a reconstructed user table.
type Column struct {
	Name    string
	ColID   uint32
	Ordinal int // position within the table, 0-based
	Type    ScalarType
	UType   uint32 // user type id (geography = 130)
	Length  uint16
	Prec    uint8
	Scale   uint8
}

// NewColumn pairs a syscolpars row with its resolved scalar type, the way
// the catalog stores them.
func NewColumn(cp sysobj.SysColParsRow, st sysobj.SysScalarTypesRow) *Column {
	return &Column{
		Name:   cp.Name,
		ColID:  cp.ColID,
		Type:   ScalarType(st.XType),
		UType:  cp.UType,
		Length: cp.Length,
		Prec:   cp.Prec,
		Scale:  cp.Scale,
	}
}

// IsFixed reports whether the column occupies the fixed portion of a row:
// the scalar type is fixed-size and the declared length is not the variable
// sentinel.
func (c *Column) IsFixed() bool {
	return IsFixedType(c.Type) && c.Length != sysobj.LengthVar
}

// FixedSize is the on-disk byte width of a fixed column.
func (c *Column) FixedSize() int {
	return FixedSize(c.Type, c.Length, c.Prec)
}

// IsGeography reports whether the column stores geography CLR payloads.
func (c *Column) IsGeography() bool {
	return c.Type == TypeCLR && c.UType == UTypeGeography
}

// TypeName renders the column's scalar type for dumps.
func (c *Column) TypeName() string {
	if c.IsGeography() {
		return "geography"
	}
	return c.Type.String()
}
