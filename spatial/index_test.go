package spatial

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-mdf/record"
)

func spatialRowBytes(cell Cell, pk0 int64, attr CellAttr, srid uint32) []byte {
	fixed := make([]byte, 0, PageRowSize-4)
	fixed = append(fixed, cell.Bytes()...)
	fixed = binary.LittleEndian.AppendUint64(fixed, uint64(pk0))
	fixed = binary.LittleEndian.AppendUint16(fixed, uint16(attr))
	fixed = binary.LittleEndian.AppendUint32(fixed, srid)
	return record.Build(fixed, make([]bool, 4), nil)
}

func TestParsePageRow(t *testing.T) {
	cell := MakeCell(96, 152, 89, 85)
	raw := spatialRowBytes(cell, 2072064, CellPart, 4326)
	rec, err := record.ParseRecord(raw)
	require.NoError(t, err)
	require.Equal(t, uint16(PageRowSize), rec.Head.FixedLen)

	row, err := ParsePageRow(rec)
	require.NoError(t, err)
	assert.Equal(t, cell, row.CellID)
	assert.Equal(t, int64(2072064), row.PK0)
	assert.Equal(t, CellPart, row.Attr)
	assert.Equal(t, uint32(4326), row.SRID)
	assert.False(t, row.Cover())
}

func TestParseKeyRoundTrip(t *testing.T) {
	k := Key{CellID: MakeCell(1, 2, 3, 4), PK0: -7}
	b := append(k.CellID.Bytes(), make([]byte, 8)...)
	binary.LittleEndian.PutUint64(b[CellSizeOnDisk:], uint64(k.PK0))
	got, err := ParseKey(b)
	require.NoError(t, err)
	assert.Equal(t, k, got)
}

func TestCompareKey(t *testing.T) {
	a := Key{CellID: MakeCell(1, 2, 3, 4), PK0: 10}
	b := Key{CellID: MakeCell(1, 2, 3, 5), PK0: 0}
	assert.Negative(t, CompareKey(a, b))
	assert.Positive(t, CompareKey(b, a))

	c := Key{CellID: a.CellID, PK0: 11}
	assert.Negative(t, CompareKey(a, c))
	assert.Zero(t, CompareKey(a, a))

	min := MinKeyForCell(a.CellID)
	assert.Negative(t, CompareKey(min, a))
}
