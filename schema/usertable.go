// usertable.go - Reconstructed user table with column offsets
package schema

import (
	"fmt"
	"strings"

	"github.com/wilhasse/go-mdf/format"
)

// UserTable is an immutable table descriptor rebuilt from the catalogs.
// offsets[i] holds the byte offset of fixed column i (counted from the row
// start) or the running variable index of variable column i.
type UserTable struct {
	ID      uint32
	Name    string
	Columns []*Column

	offsets   []int
	fixedSize int
	varCount  int
}

// NewUserTable computes the offset map the same way rows are laid out on
// disk: fixed columns pack after the 4-byte row head in colid order,
// variable columns take ascending var indexes.
func NewUserTable(id uint32, name string, cols []*Column) (*UserTable, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q: no columns", name)
	}
	t := &UserTable{
		ID:      id,
		Name:    name,
		Columns: cols,
		offsets: make([]int, len(cols)),
	}
	offset := format.RowHeadSize
	varIndex := 0
	for i, c := range cols {
		c.Ordinal = i
		if c.IsFixed() {
			t.offsets[i] = offset
			offset += c.FixedSize()
		} else {
			t.offsets[i] = varIndex
			varIndex++
		}
	}
	t.fixedSize = offset - format.RowHeadSize
	t.varCount = varIndex
	return t, nil
}

// FixedOffset returns the byte offset of fixed column i from the row start.
func (t *UserTable) FixedOffset(i int) int { return t.offsets[i] }

// VarIndex returns the variable index of variable column i.
func (t *UserTable) VarIndex(i int) int { return t.offsets[i] }

// FixedSize is the total byte size of all fixed columns.
func (t *UserTable) FixedSize() int { return t.fixedSize }

// FixedRowLen is the expected row_head.fixed_length of this table's rows.
func (t *UserTable) FixedRowLen() int { return format.RowHeadSize + t.fixedSize }

// CountVar is the number of variable columns.
func (t *UserTable) CountVar() int { return t.varCount }

// CountFixed is the number of fixed columns.
func (t *UserTable) CountFixed() int { return len(t.Columns) - t.varCount }

// Find locates a column by name, case-insensitively.
func (t *UserTable) Find(name string) (int, *Column) {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return i, c
		}
	}
	return -1, nil
}

// FindGeography returns the first geography column, or -1.
func (t *UserTable) FindGeography() int {
	for i, c := range t.Columns {
		if c.IsGeography() {
			return i
		}
	}
	return -1
}

// TypeSchema renders the table for text dumps.
func (t *UserTable) TypeSchema(pk *PrimaryKey) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "name = %s\nid = %d (%X)\nColumns(%d)\n", t.Name, t.ID, t.ID, len(t.Columns))
	for i, c := range t.Columns {
		fmt.Fprintf(&sb, "[%d] %s : %s (", c.ColID, c.Name, c.TypeName())
		if c.Length == 0xFFFF {
			sb.WriteString("var")
		} else {
			fmt.Fprintf(&sb, "%d", c.Length)
		}
		sb.WriteString(")")
		if c.IsFixed() {
			sb.WriteString(" fixed")
		}
		if pk != nil {
			for k, kc := range pk.Cols {
				if kc.Ordinal == i {
					if k == 0 {
						sb.WriteString(" IsPrimaryKey")
					} else {
						sb.WriteString(" IndexKey")
					}
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
