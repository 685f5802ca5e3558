package record

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordFixedOnly(t *testing.T) {
	fixed := []byte{0x2A, 0, 0, 0} // int 42
	raw := Build(fixed, []bool{false}, nil)

	rec, err := ParseRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(8), rec.Head.FixedLen)
	assert.Equal(t, uint16(1), rec.ColCount)
	assert.Equal(t, uint16(0), rec.VarCount)
	assert.False(t, rec.Head.HasVarColumns())
	assert.True(t, rec.Head.HasNullBitmap())
	assert.False(t, rec.IsNull(0))

	b, err := rec.Fixed(4, 4)
	require.NoError(t, err)
	assert.Equal(t, fixed, b)
	assert.Equal(t, len(raw), rec.Size())
}

func TestParseRecordVarColumns(t *testing.T) {
	fixed := []byte{1, 0, 0, 0}
	v0 := []byte("hello")
	v1 := []byte("world!")
	raw := Build(fixed, []bool{false, false, false}, [][]byte{v0, v1})

	rec, err := ParseRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), rec.ColCount)
	assert.Equal(t, uint16(2), rec.VarCount)

	got0, err := rec.Var(0)
	require.NoError(t, err)
	assert.Equal(t, v0, got0)

	got1, err := rec.Var(1)
	require.NoError(t, err)
	assert.Equal(t, v1, got1)

	// Var indexes past the array read as omitted.
	got2, err := rec.Var(2)
	require.NoError(t, err)
	assert.Nil(t, got2)

	assert.Equal(t, len(raw), rec.Size())
}

func TestParseRecordNullBitmap(t *testing.T) {
	raw := Build([]byte{9, 0}, []bool{true, false, true}, nil)
	rec, err := ParseRecord(raw)
	require.NoError(t, err)
	assert.True(t, rec.IsNull(0))
	assert.False(t, rec.IsNull(1))
	assert.True(t, rec.IsNull(2))
	assert.False(t, rec.IsNull(3)) // out of range reads false
}

func TestParseRecordTrailingBytes(t *testing.T) {
	// Rows are sliced out of pages; trailing bytes must not confuse the
	// variable-offset trailer.
	raw := Build(nil, []bool{false}, [][]byte{[]byte("abc")})
	padded := append(append([]byte{}, raw...), 0xEE, 0xEE, 0xEE)

	rec, err := ParseRecord(padded)
	require.NoError(t, err)
	v, err := rec.Var(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
	assert.Equal(t, len(raw), rec.Size())
}

func TestVarComplexBit(t *testing.T) {
	raw := Build(nil, []bool{false}, [][]byte{[]byte("ptr16bytes_here!")})
	// Flip the complex bit on the first var end offset.
	rec, err := ParseRecord(raw)
	require.NoError(t, err)
	off := rec.varAryOff
	end := binary.LittleEndian.Uint16(raw[off:])
	binary.LittleEndian.PutUint16(raw[off:], end|0x8000)

	rec, err = ParseRecord(raw)
	require.NoError(t, err)
	assert.True(t, rec.VarComplex(0))
	v, err := rec.Var(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("ptr16bytes_here!"), v)
}

func TestParseRecordCorrupt(t *testing.T) {
	_, err := ParseRecord([]byte{0x10})
	assert.Error(t, err)

	// Fixed length pointing past the buffer.
	bad := []byte{0x10, 0, 0xFF, 0x7F, 1, 2, 3}
	_, err = ParseRecord(bad)
	assert.Error(t, err)
}

func TestRowHeadBits(t *testing.T) {
	h := RowHead{StatusA: StatusHasNullBitmap | StatusHasVarColumns}
	assert.True(t, h.HasNullBitmap())
	assert.True(t, h.HasVarColumns())
	assert.Equal(t, RecPrimary, h.Type())

	h = RowHead{StatusA: 0x06} // type bits = 3
	assert.Equal(t, RecIndex, h.Type())
}
