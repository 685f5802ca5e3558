// sysidxstats.go - Index catalog rows (39-byte fixed portion + name)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysIdxStatsRowSize = 39

// Index types.
const (
	IdxTypeHeap         = 0
	IdxTypeClustered    = 1
	IdxTypeNonClustered = 2
	IdxTypeSpatial      = 4
)

// SysIdxStatsRow is one index or heap of one object. The name is the row's
// first variable column; it is absent for heaps.
type SysIdxStatsRow struct {
	ID        uint32 // owning object id
	IndID     uint32 // 1 for the clustered index
	Status    uint32
	IntProp   uint32
	FillFact  uint8
	Type      uint8
	TinyProp  uint8
	DataSpace uint32
	LobDS     uint32
	RowSet    uint64 // allocation-unit owner id of this index
	Name      string
}

func (r SysIdxStatsRow) IsClustered() bool { return r.IndID == 1 }
func (r SysIdxStatsRow) IsSpatial() bool   { return r.Type == IdxTypeSpatial }

func ParseSysIdxStatsRow(rec record.Record) (SysIdxStatsRow, error) {
	if int(rec.Head.FixedLen) != SysIdxStatsRowSize {
		return SysIdxStatsRow{}, fmt.Errorf("sysidxstats row: fixed length %d, want %d", rec.Head.FixedLen, SysIdxStatsRowSize)
	}
	b := rec.Bytes
	id, err := format.Le32(b, 4)
	if err != nil {
		return SysIdxStatsRow{}, err
	}
	indid, _ := format.Le32(b, 8)
	status, _ := format.Le32(b, 12)
	intprop, _ := format.Le32(b, 16)
	dataspace, _ := format.Le32(b, 23)
	lobds, _ := format.Le32(b, 27)
	rowset, err := format.Le64(b, 31)
	if err != nil {
		return SysIdxStatsRow{}, err
	}
	name, err := rec.Var(0)
	if err != nil {
		return SysIdxStatsRow{}, err
	}
	return SysIdxStatsRow{
		ID:        id,
		IndID:     indid,
		Status:    status,
		IntProp:   intprop,
		FillFact:  b[20],
		Type:      b[21],
		TinyProp:  b[22],
		DataSpace: dataspace,
		LobDS:     lobds,
		RowSet:    rowset,
		Name:      format.DecodeNChar(name),
	}, nil
}
