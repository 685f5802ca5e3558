// sysallocunits.go - Allocation-unit catalog rows (73 bytes)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

// ObjectID constants of the system catalogs reachable from the boot page.
const (
	ObjSysRowSets     = 5
	ObjSysAllocUnits  = 7
	ObjSysSchObjs     = 34
	ObjSysColPars     = 41
	ObjSysScalarTypes = 50
	ObjSysIdxStats    = 54
	ObjSysIsCols      = 55
	ObjSysObjValues   = 60
)

const SysAllocUnitsRowSize = 73

// SysAllocUnitsRow describes one allocation unit: who owns it, what kind of
// data it stores, and where its page chains start.
type SysAllocUnitsRow struct {
	AUID       uint64
	Type       format.DataType
	OwnerID    uint64
	Status     uint32
	FGID       uint16
	PGFirst    format.PageID
	PGRoot     format.PageID
	PGFirstIAM format.PageID
	PCUsed     uint64
	PCData     uint64
	PCReserved uint64
	DBFragID   uint32
}

func ParseSysAllocUnitsRow(rec record.Record) (SysAllocUnitsRow, error) {
	if int(rec.Head.FixedLen) != SysAllocUnitsRowSize {
		return SysAllocUnitsRow{}, fmt.Errorf("sysallocunits row: fixed length %d, want %d", rec.Head.FixedLen, SysAllocUnitsRowSize)
	}
	b := rec.Bytes
	auid, err := format.Le64(b, 4)
	if err != nil {
		return SysAllocUnitsRow{}, err
	}
	ownerid, _ := format.Le64(b, 13)
	status, _ := format.Le32(b, 21)
	fgid, _ := format.Le16(b, 25)
	pgfirst, _ := format.ParsePageID(b, 27)
	pgroot, _ := format.ParsePageID(b, 33)
	pgfirstiam, err := format.ParsePageID(b, 39)
	if err != nil {
		return SysAllocUnitsRow{}, err
	}
	pcused, _ := format.Le64(b, 45)
	pcdata, _ := format.Le64(b, 53)
	pcreserved, _ := format.Le64(b, 61)
	dbfragid, _ := format.Le32(b, 69)
	return SysAllocUnitsRow{
		AUID:       auid,
		Type:       format.DataType(b[12]),
		OwnerID:    ownerid,
		Status:     status,
		FGID:       fgid,
		PGFirst:    pgfirst,
		PGRoot:     pgroot,
		PGFirstIAM: pgfirstiam,
		PCUsed:     pcused,
		PCData:     pcdata,
		PCReserved: pcreserved,
		DBFragID:   dbfragid,
	}, nil
}
