// ddl.go - Cross-check a reconstructed table against a CREATE TABLE statement
package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ExpectedColumn is one column of a user-supplied table definition.
type ExpectedColumn struct {
	Name string
	Type ScalarType
}

// ExpectedTable is the declared shape parsed out of a CREATE TABLE
// statement, used to verify what the catalogs yielded.
type ExpectedTable struct {
	Name        string
	Columns     []ExpectedColumn
	PrimaryKeys []string
}

var sqlTypeNames = map[string]ScalarType{
	"tinyint":          TypeTinyInt,
	"smallint":         TypeSmallInt,
	"int":              TypeInt,
	"integer":          TypeInt,
	"bigint":           TypeBigInt,
	"real":             TypeReal,
	"float":            TypeFloat,
	"double":           TypeFloat,
	"bit":              TypeBit,
	"decimal":          TypeDecimal,
	"numeric":          TypeNumeric,
	"money":            TypeMoney,
	"smallmoney":       TypeSmallMoney,
	"date":             TypeDate,
	"time":             TypeTime,
	"datetime":         TypeDateTime,
	"datetime2":        TypeDateTime2,
	"smalldatetime":    TypeSmallDateTime,
	"char":             TypeChar,
	"varchar":          TypeVarChar,
	"nchar":            TypeNChar,
	"nvarchar":         TypeNVarChar,
	"binary":           TypeBinary,
	"varbinary":        TypeVarBinary,
	"text":             TypeText,
	"ntext":            TypeNText,
	"image":            TypeImage,
	"xml":              TypeXML,
	"uniqueidentifier": TypeUniqueIdentifier,
	"timestamp":        TypeTimestamp,
	"geography":        TypeCLR,
	"geometry":         TypeCLR,
}

// ParseExpectedTable parses a CREATE TABLE statement into an ExpectedTable.
func ParseExpectedTable(sql string) (*ExpectedTable, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse SQL failed: %w", err)
	}
	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.Action != sqlparser.CreateStr {
		return nil, fmt.Errorf("statement is not CREATE TABLE")
	}
	if ddl.TableSpec == nil {
		return nil, fmt.Errorf("no table spec in CREATE TABLE")
	}
	out := &ExpectedTable{Name: ddl.Table.Name.String()}
	for _, col := range ddl.TableSpec.Columns {
		typ, ok := sqlTypeNames[strings.ToLower(col.Type.Type)]
		if !ok {
			return nil, fmt.Errorf("column %s: unsupported type %q", col.Name, col.Type.Type)
		}
		out.Columns = append(out.Columns, ExpectedColumn{
			Name: col.Name.String(),
			Type: typ,
		})
	}
	for _, idx := range ddl.TableSpec.Indexes {
		if idx.Info.Primary {
			out.PrimaryKeys = nil
			for _, col := range idx.Columns {
				out.PrimaryKeys = append(out.PrimaryKeys, col.Column.String())
			}
		}
	}
	return out, nil
}

// ParseExpectedTableFile reads and parses CREATE TABLE from a SQL file.
func ParseExpectedTableFile(filename string) (*ExpectedTable, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read SQL file failed: %w", err)
	}
	return ParseExpectedTable(string(content))
}

// Match verifies a reconstructed table against the expectation: same name,
// same column names in order, compatible scalar types.
func (e *ExpectedTable) Match(t *UserTable) error {
	if !strings.EqualFold(e.Name, t.Name) {
		return fmt.Errorf("table name %q, expected %q", t.Name, e.Name)
	}
	if len(e.Columns) != len(t.Columns) {
		return fmt.Errorf("table %q has %d columns, expected %d", t.Name, len(t.Columns), len(e.Columns))
	}
	for i, ec := range e.Columns {
		c := t.Columns[i]
		if !strings.EqualFold(ec.Name, c.Name) {
			return fmt.Errorf("column %d is %q, expected %q", i, c.Name, ec.Name)
		}
		if ec.Type != c.Type {
			return fmt.Errorf("column %q is %s, expected %s", c.Name, c.Type, ec.Type)
		}
	}
	return nil
}
