// sysobjvalues.go - Object-value catalog rows (17-byte fixed portion)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysObjValuesRowSize = 17

// SysObjValuesRow holds auxiliary object values (module definitions,
// defaults). Value is the first variable column, left undecoded.
type SysObjValuesRow struct {
	ValClass uint8
	ObjID    uint32
	SubObjID uint32
	ValNum   uint32
	Value    []byte
}

func ParseSysObjValuesRow(rec record.Record) (SysObjValuesRow, error) {
	if int(rec.Head.FixedLen) != SysObjValuesRowSize {
		return SysObjValuesRow{}, fmt.Errorf("sysobjvalues row: fixed length %d, want %d", rec.Head.FixedLen, SysObjValuesRowSize)
	}
	b := rec.Bytes
	objid, err := format.Le32(b, 5)
	if err != nil {
		return SysObjValuesRow{}, err
	}
	subobjid, _ := format.Le32(b, 9)
	valnum, err := format.Le32(b, 13)
	if err != nil {
		return SysObjValuesRow{}, err
	}
	value, err := rec.Var(0)
	if err != nil {
		return SysObjValuesRow{}, err
	}
	return SysObjValuesRow{
		ValClass: b[4],
		ObjID:    objid,
		SubObjID: subobjid,
		ValNum:   valnum,
		Value:    value,
	}, nil
}
