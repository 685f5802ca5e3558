// sysiscols.go - Index-key catalog rows (28 bytes)
package sysobj

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysIsColsRowSize = 28

// statusDescending marks a descending key column.
const statusDescending = 0x4

// SysIsColsRow is one key column of one index: (object, index) -> column at
// key ordinal.
type SysIsColsRow struct {
	IDMajor  uint32 // object id
	IDMinor  uint32 // index id
	SubID    uint32 // key ordinal, 1-based
	Status   uint32
	IntProp  uint32 // column id
	TinyProp [4]uint8
}

func (r SysIsColsRow) KeyOrdinal() uint32 { return r.SubID }
func (r SysIsColsRow) ColID() uint32      { return r.IntProp }
func (r SysIsColsRow) IsDescending() bool { return r.Status&statusDescending != 0 }

func ParseSysIsColsRow(rec record.Record) (SysIsColsRow, error) {
	if int(rec.Head.FixedLen) != SysIsColsRowSize {
		return SysIsColsRow{}, fmt.Errorf("sysiscols row: fixed length %d, want %d", rec.Head.FixedLen, SysIsColsRowSize)
	}
	b := rec.Bytes
	idmajor, err := format.Le32(b, 4)
	if err != nil {
		return SysIsColsRow{}, err
	}
	idminor, _ := format.Le32(b, 8)
	subid, _ := format.Le32(b, 12)
	status, _ := format.Le32(b, 16)
	intprop, err := format.Le32(b, 20)
	if err != nil {
		return SysIsColsRow{}, err
	}
	return SysIsColsRow{
		IDMajor:  idmajor,
		IDMinor:  idminor,
		SubID:    subid,
		Status:   status,
		IntProp:  intprop,
		TinyProp: [4]uint8{b[24], b[25], b[26], b[27]},
	}, nil
}
