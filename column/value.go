// value.go - Decoded column values
package column

import (
	"fmt"
	"time"
)

// Kind tags a decoded Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindBigInt
	KindFloat
	KindDouble
	KindDateTime
	KindBytes
	KindString
	KindGUID
	KindGeoRef
)

// Value is one decoded column. Bytes-backed kinds (Bytes, String source,
// GUID, GeoRef) borrow from the row and stay valid only while the page is
// resident.
type Value struct {
	Kind Kind

	Int     int64
	Float   float64
	Time    time.Time
	Bytes   []byte
	Str     string
	Complex bool // LOB pointer rather than inline payload
}

var Null = Value{Kind: KindNull}

func IntValue(v int64) Value      { return Value{Kind: KindInt, Int: v} }
func BigIntValue(v int64) Value   { return Value{Kind: KindBigInt, Int: v} }
func FloatValue(v float64) Value  { return Value{Kind: KindFloat, Float: v} }
func DoubleValue(v float64) Value { return Value{Kind: KindDouble, Float: v} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func BytesValue(b []byte) Value   { return Value{Kind: KindBytes, Bytes: b} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInt, KindBigInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat, KindDouble:
		return fmt.Sprintf("%g", v.Float)
	case KindDateTime:
		return v.Time.Format("2006-01-02 15:04:05.000")
	case KindString:
		return v.Str
	case KindBytes:
		return fmt.Sprintf("0x%X", v.Bytes)
	case KindGUID:
		b := v.Bytes
		if len(b) != 16 {
			return fmt.Sprintf("0x%X", b)
		}
		return fmt.Sprintf("%08X-%04X-%04X-%04X-%012X",
			uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16|uint32(b[3])<<24,
			uint16(b[4])|uint16(b[5])<<8,
			uint16(b[6])|uint16(b[7])<<8,
			uint16(b[8])<<8|uint16(b[9]),
			b[10:16])
	case KindGeoRef:
		return fmt.Sprintf("geography(%d bytes)", len(v.Bytes))
	}
	return "?"
}
