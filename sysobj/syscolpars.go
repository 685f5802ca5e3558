// syscolpars.go - Column catalog rows (45-byte fixed portion + name)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysColParsRowSize = 45

// LengthVar is the declared-length sentinel for max-length variable columns
// (varchar(max), nvarchar(max), varbinary(max)).
const LengthVar = 0xFFFF

// SysColParsRow is one column of one object.
type SysColParsRow struct {
	ID          uint32 // owning object id
	Number      uint16 // procedure parameter set, 0 for table columns
	ColID       uint32
	XType       uint8  // system scalar type id
	UType       uint32 // user scalar type id, joins sysscalartypes.id
	Length      uint16
	Prec        uint8
	Scale       uint8
	CollationID uint32
	Status      uint32
	MaxInRow    uint16
	Name        string
}

// IsLengthVar reports whether the declared length is the (max) sentinel.
func (r SysColParsRow) IsLengthVar() bool { return r.Length == LengthVar }

func ParseSysColParsRow(rec record.Record) (SysColParsRow, error) {
	if int(rec.Head.FixedLen) != SysColParsRowSize {
		return SysColParsRow{}, fmt.Errorf("syscolpars row: fixed length %d, want %d", rec.Head.FixedLen, SysColParsRowSize)
	}
	b := rec.Bytes
	id, err := format.Le32(b, 4)
	if err != nil {
		return SysColParsRow{}, err
	}
	number, _ := format.Le16(b, 8)
	colid, _ := format.Le32(b, 10)
	utype, _ := format.Le32(b, 15)
	length, _ := format.Le16(b, 19)
	collationid, _ := format.Le32(b, 23)
	status, _ := format.Le32(b, 27)
	maxinrow, err := format.Le16(b, 31)
	if err != nil {
		return SysColParsRow{}, err
	}
	name, err := rec.Var(0)
	if err != nil {
		return SysColParsRow{}, err
	}
	return SysColParsRow{
		ID:          id,
		Number:      number,
		ColID:       colid,
		XType:       b[14],
		UType:       utype,
		Length:      length,
		Prec:        b[21],
		Scale:       b[22],
		CollationID: collationid,
		Status:      status,
		MaxInRow:    maxinrow,
		Name:        format.DecodeNChar(name),
	}, nil
}
