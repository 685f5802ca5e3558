// header.go - Row head parsing (4-byte record prefix)
package record

import (
	"github.com/wilhasse/go-mdf/format"
)

// StatusA bits.
const (
	StatusHasNullBitmap = 0x10
	StatusHasVarColumns = 0x20
)

// RecordType is encoded in statusA bits 1-3.
type RecordType uint8

const (
	RecPrimary      RecordType = 0
	RecForwarded    RecordType = 1
	RecForwarding   RecordType = 2
	RecIndex        RecordType = 3
	RecBlobFragment RecordType = 4
	RecGhostIndex   RecordType = 5
	RecGhostData    RecordType = 6
	RecGhostVersion RecordType = 7
)

// RowHead is the 4-byte prefix of every data row: two status bytes and the
// offset of the column-count field (which is also where the fixed-size
// portion ends).
type RowHead struct {
	StatusA  uint8
	StatusB  uint8
	FixedLen uint16 // offset of the 2-byte total column count
}

func (h RowHead) Type() RecordType    { return RecordType((h.StatusA >> 1) & 0x7) }
func (h RowHead) HasNullBitmap() bool { return h.StatusA&StatusHasNullBitmap != 0 }
func (h RowHead) HasVarColumns() bool { return h.StatusA&StatusHasVarColumns != 0 }

func ParseRowHead(b []byte, off int) (RowHead, error) {
	if off < 0 || off+format.RowHeadSize > len(b) {
		return RowHead{}, format.ErrShortRead
	}
	fixed, _ := format.Le16(b, off+2)
	return RowHead{
		StatusA:  b[off],
		StatusB:  b[off+1],
		FixedLen: fixed,
	}, nil
}
