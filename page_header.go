// page_header.go - 96-byte page header parsing
package gomdf

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
)

// PageHeader is the 96-byte header at the start of every page.
type PageHeader struct {
	HeaderVersion uint8
	Type          format.PageType
	TypeFlagBits  uint8
	Level         uint8 // 0 = leaf
	FlagBits      uint16
	IndexID       uint16
	PrevPage      format.PageID
	PMinLen       uint16 // fixed row size on this page
	NextPage      format.PageID
	SlotCount     uint16
	ObjectID      uint32
	FreeCount     uint16
	FreeData      uint16 // offset of the free-space start
	PageID        format.PageID
	ReservedCount uint16
	LSN1          uint32
	LSN2          uint32
	LSN3          uint16
	XactReserved  uint16
	XdesID        [6]byte
	GhostRecCount uint16
	TornBits      uint32
}

// Header field offsets.
const (
	offHeaderVersion = 0x00
	offType          = 0x01
	offTypeFlagBits  = 0x02
	offLevel         = 0x03
	offFlagBits      = 0x04
	offIndexID       = 0x06
	offPrevPage      = 0x08
	offPMinLen       = 0x0E
	offNextPage      = 0x10
	offSlotCount     = 0x16
	offObjectID      = 0x18
	offFreeCount     = 0x1C
	offFreeData      = 0x1E
	offPageID        = 0x20
	offReservedCount = 0x26
	offLSN           = 0x28
	offXactReserved  = 0x32
	offXdesID        = 0x34
	offGhostRecCount = 0x3A
	offTornBits      = 0x3C
)

// ParsePageHeader reads the header of one full page image.
func ParsePageHeader(p []byte) (PageHeader, error) {
	if len(p) < format.PageHeaderSize {
		return PageHeader{}, fmt.Errorf("short page header: %d bytes", len(p))
	}
	flagBits, _ := format.Le16(p, offFlagBits)
	indexID, _ := format.Le16(p, offIndexID)
	prev, _ := format.ParsePageID(p, offPrevPage)
	pminlen, _ := format.Le16(p, offPMinLen)
	next, _ := format.ParsePageID(p, offNextPage)
	slotCnt, _ := format.Le16(p, offSlotCount)
	objID, _ := format.Le32(p, offObjectID)
	freeCnt, _ := format.Le16(p, offFreeCount)
	freeData, _ := format.Le16(p, offFreeData)
	pageID, _ := format.ParsePageID(p, offPageID)
	reserved, _ := format.Le16(p, offReservedCount)
	lsn1, _ := format.Le32(p, offLSN)
	lsn2, _ := format.Le32(p, offLSN+4)
	lsn3, _ := format.Le16(p, offLSN+8)
	xact, _ := format.Le16(p, offXactReserved)
	ghost, _ := format.Le16(p, offGhostRecCount)
	torn, _ := format.Le32(p, offTornBits)

	h := PageHeader{
		HeaderVersion: p[offHeaderVersion],
		Type:          format.PageType(p[offType]),
		TypeFlagBits:  p[offTypeFlagBits],
		Level:         p[offLevel],
		FlagBits:      flagBits,
		IndexID:       indexID,
		PrevPage:      prev,
		PMinLen:       pminlen,
		NextPage:      next,
		SlotCount:     slotCnt,
		ObjectID:      objID,
		FreeCount:     freeCnt,
		FreeData:      freeData,
		PageID:        pageID,
		ReservedCount: reserved,
		LSN1:          lsn1,
		LSN2:          lsn2,
		LSN3:          lsn3,
		XactReserved:  xact,
		GhostRecCount: ghost,
		TornBits:      torn,
	}
	copy(h.XdesID[:], p[offXdesID:offXdesID+6])
	return h, nil
}

func (h PageHeader) IsLeaf() bool { return h.Level == 0 }
