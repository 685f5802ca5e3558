// sysschobjs.go - Schema-object catalog rows (44-byte fixed portion + name)
package sysobj

import (
	"fmt"
	"strings"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

const SysSchObjsRowSize = 44

// SysSchObjsRow is one schema object (table, view, procedure, ...). The name
// is the row's first variable column, stored UTF-16LE.
type SysSchObjsRow struct {
	ID       uint32
	NSID     uint32
	NSClass  uint8
	Status   uint32
	Kind     string // two-character object kind code, e.g. "U", "S", "IT"
	PID      uint32
	PClass   uint8
	IntProp  uint32
	Created  uint64
	Modified uint64
	Name     string
}

// IsUserTable reports whether this object is a user table.
func (r SysSchObjsRow) IsUserTable() bool { return r.Kind == "U" }

func ParseSysSchObjsRow(rec record.Record) (SysSchObjsRow, error) {
	if int(rec.Head.FixedLen) != SysSchObjsRowSize {
		return SysSchObjsRow{}, fmt.Errorf("sysschobjs row: fixed length %d, want %d", rec.Head.FixedLen, SysSchObjsRowSize)
	}
	b := rec.Bytes
	id, err := format.Le32(b, 4)
	if err != nil {
		return SysSchObjsRow{}, err
	}
	nsid, _ := format.Le32(b, 8)
	status, _ := format.Le32(b, 13)
	pid, _ := format.Le32(b, 19)
	intprop, _ := format.Le32(b, 24)
	created, _ := format.Le64(b, 28)
	modified, err := format.Le64(b, 36)
	if err != nil {
		return SysSchObjsRow{}, err
	}
	name, err := rec.Var(0)
	if err != nil {
		return SysSchObjsRow{}, err
	}
	return SysSchObjsRow{
		ID:       id,
		NSID:     nsid,
		NSClass:  b[12],
		Status:   status,
		Kind:     strings.TrimSpace(string(b[17:19])),
		PID:      pid,
		PClass:   b[23],
		IntProp:  intprop,
		Created:  created,
		Modified: modified,
		Name:     format.DecodeNChar(name),
	}, nil
}
