// sysrowsets.go - Rowset catalog rows (53 bytes)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysRowSetsRowSize = 53

// SysRowSetsRow maps a rowset (partition) to its owning object and index.
type SysRowSetsRow struct {
	RowSetID   uint64
	OwnerType  uint8
	IDMajor    uint32 // object id
	IDMinor    uint32 // index id
	NumPart    uint32
	Status     uint32
	FGIDFS     uint16
	RCRows     uint64
	CmprLevel  uint8
	FillFact   uint8
	MaxNullBit uint16
	MaxLeaf    uint32
	MaxInt     uint16
	MinLeaf    uint16
	MinInt     uint16
}

func ParseSysRowSetsRow(rec record.Record) (SysRowSetsRow, error) {
	if int(rec.Head.FixedLen) != SysRowSetsRowSize {
		return SysRowSetsRow{}, fmt.Errorf("sysrowsets row: fixed length %d, want %d", rec.Head.FixedLen, SysRowSetsRowSize)
	}
	b := rec.Bytes
	rowsetid, err := format.Le64(b, 4)
	if err != nil {
		return SysRowSetsRow{}, err
	}
	idmajor, _ := format.Le32(b, 13)
	idminor, _ := format.Le32(b, 17)
	numpart, _ := format.Le32(b, 21)
	status, _ := format.Le32(b, 25)
	fgidfs, _ := format.Le16(b, 29)
	rcrows, _ := format.Le64(b, 31)
	maxnullbit, _ := format.Le16(b, 41)
	maxleaf, _ := format.Le32(b, 43)
	maxint, _ := format.Le16(b, 47)
	minleaf, _ := format.Le16(b, 49)
	minint, err := format.Le16(b, 51)
	if err != nil {
		return SysRowSetsRow{}, err
	}
	return SysRowSetsRow{
		RowSetID:   rowsetid,
		OwnerType:  b[12],
		IDMajor:    idmajor,
		IDMinor:    idminor,
		NumPart:    numpart,
		Status:     status,
		FGIDFS:     fgidfs,
		RCRows:     rcrows,
		CmprLevel:  b[39],
		FillFact:   b[40],
		MaxNullBit: maxnullbit,
		MaxLeaf:    maxleaf,
		MaxInt:     maxint,
		MinLeaf:    minleaf,
		MinInt:     minint,
	}, nil
}
