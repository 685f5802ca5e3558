// sysscalartypes.go - Scalar-type catalog rows (49-byte fixed portion + name)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysScalarTypesRowSize = 49

// SysScalarTypesRow is one scalar type, system or user defined.
type SysScalarTypesRow struct {
	ID          uint32
	SchID       uint32
	XType       uint8
	Length      uint16
	Prec        uint8
	Scale       uint8
	CollationID uint32
	Status      uint32
	Created     uint64
	Modified    uint64
	Name        string
}

func ParseSysScalarTypesRow(rec record.Record) (SysScalarTypesRow, error) {
	if int(rec.Head.FixedLen) != SysScalarTypesRowSize {
		return SysScalarTypesRow{}, fmt.Errorf("sysscalartypes row: fixed length %d, want %d", rec.Head.FixedLen, SysScalarTypesRowSize)
	}
	b := rec.Bytes
	id, err := format.Le32(b, 4)
	if err != nil {
		return SysScalarTypesRow{}, err
	}
	schid, _ := format.Le32(b, 8)
	length, _ := format.Le16(b, 13)
	collationid, _ := format.Le32(b, 17)
	status, _ := format.Le32(b, 21)
	created, _ := format.Le64(b, 25)
	modified, err := format.Le64(b, 33)
	if err != nil {
		return SysScalarTypesRow{}, err
	}
	name, err := rec.Var(0)
	if err != nil {
		return SysScalarTypesRow{}, err
	}
	return SysScalarTypesRow{
		ID:          id,
		SchID:       schid,
		XType:       b[12],
		Length:      length,
		Prec:        b[15],
		Scale:       b[16],
		CollationID: collationid,
		Status:      status,
		Created:     created,
		Modified:    modified,
		Name:        format.DecodeNChar(name),
	}, nil
}
