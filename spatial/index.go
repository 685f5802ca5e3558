// index.go - Spatial index row layouts: leaf rows and tree keys
package spatial

import (
	"encoding/binary"
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

// CellAttr describes how a cell relates to the indexed geometry.
type CellAttr uint16

const (
	CellTouch CellAttr = 0 // cell at least touches the object
	CellPart  CellAttr = 1 // object partially covers the cell
	CellCover CellAttr = 2 // object covers the cell
)

func (a CellAttr) String() string {
	switch a {
	case CellTouch:
		return "touch"
	case CellPart:
		return "part"
	case CellCover:
		return "cover"
	}
	return fmt.Sprintf("CellAttr(%d)", uint16(a))
}

// PageRowSize is the fixed size of a spatial leaf row: 4-byte row head,
// cell id, bigint primary key, attribute, SRID.
const PageRowSize = 23

// PageRow is one leaf row of a geography index keyed by (cell_id, pk0).
type PageRow struct {
	CellID Cell
	PK0    int64
	Attr   CellAttr
	SRID   uint32
}

// Cover reports whether the indexed object fully covers the cell.
func (r PageRow) Cover() bool { return r.Attr == CellCover }

// ParsePageRow decodes a 23-byte spatial leaf row.
func ParsePageRow(rec record.Record) (PageRow, error) {
	if int(rec.Head.FixedLen) != PageRowSize {
		return PageRow{}, fmt.Errorf("spatial page row: fixed length %d, want %d", rec.Head.FixedLen, PageRowSize)
	}
	b := rec.Bytes
	if len(b) < PageRowSize {
		return PageRow{}, format.ErrShortRead
	}
	cell, err := ParseCell(b[4:9])
	if err != nil {
		return PageRow{}, err
	}
	return PageRow{
		CellID: cell,
		PK0:    int64(binary.LittleEndian.Uint64(b[9:17])),
		Attr:   CellAttr(binary.LittleEndian.Uint16(b[17:19])),
		SRID:   binary.LittleEndian.Uint32(b[19:23]),
	}, nil
}

// KeySize is the width of the composite tree key (cell_id, pk0).
const KeySize = CellSizeOnDisk + 8

// Key is the composite spatial tree key.
type Key struct {
	CellID Cell
	PK0    int64
}

// CompareKey orders keys by cell then primary key.
func CompareKey(a, b Key) int {
	if d := Compare(a.CellID, b.CellID); d != 0 {
		return d
	}
	switch {
	case a.PK0 < b.PK0:
		return -1
	case a.PK0 > b.PK0:
		return 1
	}
	return 0
}

// ParseKey decodes a 13-byte tree key.
func ParseKey(b []byte) (Key, error) {
	if len(b) < KeySize {
		return Key{}, format.ErrShortRead
	}
	cell, err := ParseCell(b[:CellSizeOnDisk])
	if err != nil {
		return Key{}, err
	}
	return Key{
		CellID: cell,
		PK0:    int64(binary.LittleEndian.Uint64(b[CellSizeOnDisk : CellSizeOnDisk+8])),
	}, nil
}

// MinKeyForCell is the smallest key with the given cell id.
func MinKeyForCell(c Cell) Key {
	return Key{CellID: c, PK0: -1 << 63}
}
