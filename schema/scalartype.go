// scalartype.go - Scalar type ids and fixed-size rules
package schema

// ScalarType is the system scalar type id (sysscalartypes.xtype).
type ScalarType uint8

const (
	TypeNone             ScalarType = 0
	TypeImage            ScalarType = 34
	TypeText             ScalarType = 35
	TypeUniqueIdentifier ScalarType = 36
	TypeDate             ScalarType = 40
	TypeTime             ScalarType = 41
	TypeDateTime2        ScalarType = 42
	TypeDateTimeOffset   ScalarType = 43
	TypeTinyInt          ScalarType = 48
	TypeSmallInt         ScalarType = 52
	TypeInt              ScalarType = 56
	TypeSmallDateTime    ScalarType = 58
	TypeReal             ScalarType = 59
	TypeMoney            ScalarType = 60
	TypeDateTime         ScalarType = 61
	TypeFloat            ScalarType = 62
	TypeVariant          ScalarType = 98
	TypeNText            ScalarType = 99
	TypeBit              ScalarType = 104
	TypeDecimal          ScalarType = 106
	TypeNumeric          ScalarType = 108
	TypeSmallMoney       ScalarType = 122
	TypeBigInt           ScalarType = 127
	TypeVarBinary        ScalarType = 165
	TypeVarChar          ScalarType = 167
	TypeBinary           ScalarType = 173
	TypeChar             ScalarType = 175
	TypeTimestamp        ScalarType = 189
	TypeNVarChar         ScalarType = 231
	TypeNChar            ScalarType = 239
	TypeCLR              ScalarType = 240 // hierarchyid, geometry, geography
	TypeXML              ScalarType = 241
)

// User type ids (sysscalartypes.id) for CLR spatial types.
const (
	UTypeGeometry  = 129
	UTypeGeography = 130
)

var typeNames = map[ScalarType]string{
	TypeImage:            "image",
	TypeText:             "text",
	TypeUniqueIdentifier: "uniqueidentifier",
	TypeDate:             "date",
	TypeTime:             "time",
	TypeDateTime2:        "datetime2",
	TypeDateTimeOffset:   "datetimeoffset",
	TypeTinyInt:          "tinyint",
	TypeSmallInt:         "smallint",
	TypeInt:              "int",
	TypeSmallDateTime:    "smalldatetime",
	TypeReal:             "real",
	TypeMoney:            "money",
	TypeDateTime:         "datetime",
	TypeFloat:            "float",
	TypeVariant:          "sql_variant",
	TypeNText:            "ntext",
	TypeBit:              "bit",
	TypeDecimal:          "decimal",
	TypeNumeric:          "numeric",
	TypeSmallMoney:       "smallmoney",
	TypeBigInt:           "bigint",
	TypeVarBinary:        "varbinary",
	TypeVarChar:          "varchar",
	TypeBinary:           "binary",
	TypeChar:             "char",
	TypeTimestamp:        "timestamp",
	TypeNVarChar:         "nvarchar",
	TypeNChar:            "nchar",
	TypeCLR:              "clr",
	TypeXML:              "xml",
}

func (t ScalarType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// IsFixedType reports whether the scalar type belongs to the fixed-size set.
// Declared-length types (char, nchar, binary, decimal) are fixed too; the
// per-column length decides the byte width.
func IsFixedType(t ScalarType) bool {
	switch t {
	case TypeTinyInt, TypeSmallInt, TypeInt, TypeBigInt,
		TypeReal, TypeFloat, TypeMoney, TypeSmallMoney,
		TypeBit, TypeDateTime, TypeSmallDateTime, TypeDate,
		TypeTime, TypeDateTime2, TypeDateTimeOffset,
		TypeUniqueIdentifier, TypeTimestamp,
		TypeChar, TypeNChar, TypeBinary,
		TypeDecimal, TypeNumeric:
		return true
	}
	return false
}

// FixedSize returns the on-disk byte width of a fixed column given its
// declared length, or 0 when the type is not fixed.
func FixedSize(t ScalarType, length uint16, prec uint8) int {
	switch t {
	case TypeTinyInt, TypeBit:
		return 1
	case TypeSmallInt:
		return 2
	case TypeInt, TypeReal, TypeSmallMoney, TypeSmallDateTime:
		return 4
	case TypeBigInt, TypeFloat, TypeMoney, TypeDateTime, TypeTimestamp:
		return 8
	case TypeDate:
		return 3
	case TypeTime:
		return 5
	case TypeDateTime2:
		return 8
	case TypeDateTimeOffset:
		return 10
	case TypeUniqueIdentifier:
		return 16
	case TypeChar, TypeBinary:
		return int(length)
	case TypeNChar:
		return int(length)
	case TypeDecimal, TypeNumeric:
		switch {
		case prec <= 9:
			return 5
		case prec <= 19:
			return 9
		case prec <= 28:
			return 13
		default:
			return 17
		}
	}
	return 0
}
