// decoder.go - Decode row bytes into typed values using a table schema
package column

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/schema"
)

// datetimeEpoch is day zero of the datetime type.
var datetimeEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Decode decodes every column of a leaf row. Decoding is a pure function of
// (row bytes, table): equal inputs yield equal outputs.
func Decode(rec record.Record, t *schema.UserTable) ([]Value, error) {
	out := make([]Value, len(t.Columns))
	for i := range t.Columns {
		v, err := DecodeColumn(rec, t, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// DecodeColumn decodes column i of a leaf row.
func DecodeColumn(rec record.Record, t *schema.UserTable, i int) (Value, error) {
	if i < 0 || i >= len(t.Columns) {
		return Null, fmt.Errorf("column %d out of range", i)
	}
	if rec.IsNull(i) {
		return Null, nil
	}
	c := t.Columns[i]
	if c.IsFixed() {
		b, err := rec.Fixed(t.FixedOffset(i), c.FixedSize())
		if err != nil {
			return Null, fmt.Errorf("column %q: %w", c.Name, err)
		}
		return decodeFixed(c, b)
	}
	v := t.VarIndex(i)
	b, err := rec.Var(v)
	if err != nil {
		return Null, fmt.Errorf("column %q: %w", c.Name, err)
	}
	if b == nil {
		// Trailing variable columns omitted from the row are NULL.
		return Null, nil
	}
	return decodeVar(c, b, rec.VarComplex(v))
}

func decodeFixed(c *schema.Column, b []byte) (Value, error) {
	switch c.Type {
	case schema.TypeTinyInt, schema.TypeBit:
		return IntValue(int64(b[0])), nil
	case schema.TypeSmallInt:
		return IntValue(int64(int16(binary.LittleEndian.Uint16(b)))), nil
	case schema.TypeInt:
		return IntValue(int64(int32(binary.LittleEndian.Uint32(b)))), nil
	case schema.TypeBigInt:
		return BigIntValue(int64(binary.LittleEndian.Uint64(b))), nil
	case schema.TypeReal:
		return FloatValue(float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))), nil
	case schema.TypeFloat:
		return DoubleValue(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case schema.TypeSmallMoney:
		return DoubleValue(float64(int32(binary.LittleEndian.Uint32(b))) / 10000), nil
	case schema.TypeMoney:
		return DoubleValue(float64(int64(binary.LittleEndian.Uint64(b))) / 10000), nil
	case schema.TypeDateTime:
		return decodeDateTime(b), nil
	case schema.TypeSmallDateTime:
		mins := binary.LittleEndian.Uint16(b)
		days := binary.LittleEndian.Uint16(b[2:])
		tm := datetimeEpoch.AddDate(0, 0, int(days)).Add(time.Duration(mins) * time.Minute)
		return Value{Kind: KindDateTime, Time: tm}, nil
	case schema.TypeUniqueIdentifier:
		return Value{Kind: KindGUID, Bytes: b}, nil
	case schema.TypeChar:
		return StringValue(strings.TrimRight(string(b), " ")), nil
	case schema.TypeNChar:
		return StringValue(strings.TrimRight(format.DecodeNChar(b), " ")), nil
	case schema.TypeBinary, schema.TypeTimestamp,
		schema.TypeDate, schema.TypeTime, schema.TypeDateTime2, schema.TypeDateTimeOffset,
		schema.TypeDecimal, schema.TypeNumeric:
		return BytesValue(b), nil
	}
	return BytesValue(b), nil
}

// decodeDateTime interprets the classic 8-byte datetime: 300ths of a second
// since midnight, then days since 1900-01-01.
func decodeDateTime(b []byte) Value {
	ticks := int32(binary.LittleEndian.Uint32(b))
	days := int32(binary.LittleEndian.Uint32(b[4:]))
	tm := datetimeEpoch.AddDate(0, 0, int(days)).
		Add(time.Duration(ticks) * time.Second / 300)
	return Value{Kind: KindDateTime, Time: tm}
}

func decodeVar(c *schema.Column, b []byte, lobPointer bool) (Value, error) {
	if c.IsGeography() {
		return Value{Kind: KindGeoRef, Bytes: b, Complex: lobPointer}, nil
	}
	if lobPointer {
		// 16-byte in-row LOB reference into a text-mix page; resolution
		// happens outside the decoder.
		return Value{Kind: KindBytes, Bytes: b, Complex: true}, nil
	}
	switch c.Type {
	case schema.TypeNVarChar, schema.TypeNText, schema.TypeXML:
		return StringValue(format.DecodeNChar(b)), nil
	case schema.TypeVarChar, schema.TypeText:
		return StringValue(string(b)), nil
	}
	return BytesValue(b), nil
}
