// boot_page.go - Boot page metadata (page 9 of file 1)
package gomdf

import (
	"strings"

	"github.com/wilhasse/go-mdf/format"
)

// Boot row field offsets, relative to the row start.
const (
	bootOffVersion        = 4
	bootOffCreateVersion  = 6
	bootOffStatus         = 12
	bootOffNextID         = 16
	bootOffCrDate         = 20
	bootOffDBName         = 28 // nchar(128)
	bootOffDBID           = 284
	bootOffMaxDbTimestamp = 296
	bootOffFirstSysIdx    = 452 // first sysallocunits page
	bootRowMinSize        = 458
)

// BootPage carries the database-level metadata the reader needs: the name
// and the pointer into the system-object allocation chain.
type BootPage struct {
	Version        uint16
	CreateVersion  uint16
	Status         uint32
	DBName         string
	DBID           uint16
	MaxDbTimestamp uint64
	FirstSysIdx    format.PageID
}

// ParseBootPage reads the boot row at slot 0 of a boot page.
func ParseBootPage(p *Page) (*BootPage, error) {
	if p.Header.Type != format.PageTypeBoot {
		return nil, errorf(KindCorruptPage, p.ID(), 0,
			"page type %s, want BOOT", p.Header.Type)
	}
	if p.SlotCount() < 1 {
		return nil, errorf(KindCorruptPage, p.ID(), 0, "boot page has no rows")
	}
	off, err := p.Slot(0)
	if err != nil {
		return nil, err
	}
	b := p.Data[off:]
	if len(b) < bootRowMinSize {
		return nil, errorf(KindCorruptPage, p.ID(), 0,
			"boot row truncated at %d bytes", len(b))
	}
	version, _ := format.Le16(b, bootOffVersion)
	createVersion, _ := format.Le16(b, bootOffCreateVersion)
	status, _ := format.Le32(b, bootOffStatus)
	dbid, _ := format.Le16(b, bootOffDBID)
	maxTS, _ := format.Le64(b, bootOffMaxDbTimestamp)
	firstSysIdx, _ := format.ParsePageID(b, bootOffFirstSysIdx)

	name := format.DecodeNChar(b[bootOffDBName : bootOffDBName+256])
	if i := strings.IndexRune(name, 0); i >= 0 {
		name = name[:i]
	}
	return &BootPage{
		Version:        version,
		CreateVersion:  createVersion,
		Status:         status,
		DBName:         name,
		DBID:           dbid,
		MaxDbTimestamp: maxTS,
		FirstSysIdx:    firstSysIdx,
	}, nil
}
