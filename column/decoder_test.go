package column

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/schema"
	"github.com/wilhasse/go-mdf/sysobj"
)

func mkTable(t *testing.T, cols ...*schema.Column) *schema.UserTable {
	t.Helper()
	ut, err := schema.NewUserTable(1, "t", cols)
	require.NoError(t, err)
	return ut
}

func intCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: schema.TypeInt, UType: 56, Length: 4}
}

func nvarcharCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: schema.TypeNVarChar, UType: 231, Length: sysobj.LengthVar}
}

func TestDecodeNullVariableColumn(t *testing.T) {
	// Table (a INT, b NVARCHAR, c INT); bitmap bits 010; fixed bytes
	// 01 00 00 00 / 02 00 00 00.
	ut := mkTable(t, intCol("a"), nvarcharCol("b"), intCol("c"))
	raw := record.Build(
		[]byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00},
		[]bool{false, true, false},
		nil)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	values, err := Decode(rec, ut)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, IntValue(1), values[0])
	assert.True(t, values[1].IsNull())
	assert.Equal(t, IntValue(2), values[2])
}

func TestDecodeIntAndString(t *testing.T) {
	ut := mkTable(t, intCol("id"), nvarcharCol("name"))
	raw := record.Build(
		[]byte{0x2A, 0x00, 0x00, 0x00},
		[]bool{false, false},
		[][]byte{format.EncodeNChar("hi")})
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	values, err := Decode(rec, ut)
	require.NoError(t, err)
	assert.Equal(t, int64(42), values[0].Int)
	assert.Equal(t, KindString, values[1].Kind)
	assert.Equal(t, "hi", values[1].Str)
}

func TestDecodeIsPure(t *testing.T) {
	ut := mkTable(t, intCol("id"), nvarcharCol("name"))
	raw := record.Build([]byte{9, 0, 0, 0}, []bool{false, false},
		[][]byte{format.EncodeNChar("x")})
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	v1, err := Decode(rec, ut)
	require.NoError(t, err)
	v2, err := Decode(rec, ut)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestDecodeNumericTypes(t *testing.T) {
	cols := []*schema.Column{
		{Name: "ti", Type: schema.TypeTinyInt, Length: 1},
		{Name: "si", Type: schema.TypeSmallInt, Length: 2},
		{Name: "bi", Type: schema.TypeBigInt, Length: 8},
		{Name: "r", Type: schema.TypeReal, Length: 4},
		{Name: "f", Type: schema.TypeFloat, Length: 8},
	}
	ut := mkTable(t, cols...)

	fixed := make([]byte, 0, 23)
	fixed = append(fixed, 0xFF)                                     // tinyint 255
	fixed = binary.LittleEndian.AppendUint16(fixed, uint16(0xFFFE)) // smallint -2
	fixed = binary.LittleEndian.AppendUint64(fixed, uint64(1<<40))  // bigint
	fixed = binary.LittleEndian.AppendUint32(fixed, math.Float32bits(1.5))
	fixed = binary.LittleEndian.AppendUint64(fixed, math.Float64bits(-2.25))
	raw := record.Build(fixed, make([]bool, 5), nil)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	values, err := Decode(rec, ut)
	require.NoError(t, err)
	assert.Equal(t, int64(255), values[0].Int)
	assert.Equal(t, int64(-2), values[1].Int)
	assert.Equal(t, int64(1)<<40, values[2].Int)
	assert.Equal(t, KindBigInt, values[2].Kind)
	assert.InDelta(t, 1.5, values[3].Float, 1e-9)
	assert.InDelta(t, -2.25, values[4].Float, 1e-9)
}

func TestDecodeDateTime(t *testing.T) {
	ut := mkTable(t, &schema.Column{Name: "d", Type: schema.TypeDateTime, Length: 8})
	// 2 days after the 1900 epoch, 300 ticks = one second past midnight.
	fixed := make([]byte, 0, 8)
	fixed = binary.LittleEndian.AppendUint32(fixed, 300)
	fixed = binary.LittleEndian.AppendUint32(fixed, 2)
	raw := record.Build(fixed, []bool{false}, nil)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	v, err := DecodeColumn(rec, ut, 0)
	require.NoError(t, err)
	assert.Equal(t, KindDateTime, v.Kind)
	assert.Equal(t, time.Date(1900, 1, 3, 0, 0, 1, 0, time.UTC), v.Time)
}

func TestDecodeGUIDAndChar(t *testing.T) {
	cols := []*schema.Column{
		{Name: "g", Type: schema.TypeUniqueIdentifier, Length: 16},
		{Name: "c", Type: schema.TypeChar, Length: 4},
	}
	ut := mkTable(t, cols...)
	fixed := append(make([]byte, 16), 'a', 'b', ' ', ' ')
	raw := record.Build(fixed, make([]bool, 2), nil)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	values, err := Decode(rec, ut)
	require.NoError(t, err)
	assert.Equal(t, KindGUID, values[0].Kind)
	assert.Equal(t, "ab", values[1].Str) // trailing spaces trimmed
}

func TestDecodeGeographyColumn(t *testing.T) {
	geo := &schema.Column{Name: "geo", Type: schema.TypeCLR, UType: schema.UTypeGeography, Length: sysobj.LengthVar}
	ut := mkTable(t, intCol("id"), geo)
	payload := []byte{0xE6, 0x10, 0x00, 0x00, 0x01, 0x0C} // SRID 4326 + point tag prefix
	raw := record.Build([]byte{1, 0, 0, 0}, []bool{false, false}, [][]byte{payload})
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	v, err := DecodeColumn(rec, ut, 1)
	require.NoError(t, err)
	assert.Equal(t, KindGeoRef, v.Kind)
	assert.Equal(t, payload, v.Bytes)
}

func TestDecodeOmittedTrailingVarIsNull(t *testing.T) {
	ut := mkTable(t, intCol("id"), nvarcharCol("name"))
	raw := record.Build([]byte{1, 0, 0, 0}, []bool{false, true}, nil)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)

	v, err := DecodeColumn(rec, ut, 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}
