// page.go - Typed view over a raw 8 KiB page: header, slot array, rows
package gomdf

import (
	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/sysobj"
)

// Page is a parsed page. Data borrows the full 8 KiB frame from the store
// and stays valid as long as the store.
type Page struct {
	Index  uint32 // page index within its file
	Header PageHeader
	Data   []byte
}

// NewPage parses and validates a page image. Slot offsets must stay inside
// the body and the slot array must fit the page body.
func NewPage(index uint32, data []byte) (*Page, error) {
	if len(data) != format.PageSize {
		return nil, errorf(KindCorruptPage, format.PageID{Page: index},
			0, "expected %dB page, got %d", format.PageSize, len(data))
	}
	h, err := ParsePageHeader(data)
	if err != nil {
		return nil, newError(KindCorruptPage, format.PageID{Page: index}, 0, err)
	}
	p := &Page{Index: index, Header: h, Data: data}
	id := p.ID()
	if int(h.SlotCount)*format.SlotSize > format.BodySize {
		return nil, errorf(KindCorruptPage, id, h.ObjectID,
			"slot count %d overruns body", h.SlotCount)
	}
	if h.FreeData != 0 && (int(h.FreeData) < format.PageHeaderSize || int(h.FreeData) > format.PageSize) {
		return nil, errorf(KindCorruptPage, id, h.ObjectID,
			"free-space offset %d outside body", h.FreeData)
	}
	slotArrayStart := format.PageSize - int(h.SlotCount)*format.SlotSize
	for i := 0; i < int(h.SlotCount); i++ {
		off, _ := format.Le16(data, format.PageSize-(i+1)*format.SlotSize)
		if int(off) < format.PageHeaderSize || int(off) >= slotArrayStart {
			return nil, errorf(KindCorruptPage, id, h.ObjectID,
				"slot %d offset %d outside body", i, off)
		}
	}
	return p, nil
}

// ID is the page's own identity from its header, falling back to the load
// index when the header identity is unset.
func (p *Page) ID() format.PageID {
	if !p.Header.PageID.IsNull() {
		return p.Header.PageID
	}
	return format.PageID{File: 1, Page: p.Index}
}

func (p *Page) IsLeaf() bool { return p.Header.IsLeaf() }

// SlotCount is the number of rows on the page.
func (p *Page) SlotCount() int { return int(p.Header.SlotCount) }

// Slot returns the bounds-checked byte offset of row i.
func (p *Page) Slot(i int) (int, error) {
	if i < 0 || i >= p.SlotCount() {
		return 0, errorf(KindCorruptPage, p.ID(), p.Header.ObjectID,
			"slot %d out of range (%d slots)", i, p.SlotCount())
	}
	off, _ := format.Le16(p.Data, format.PageSize-(i+1)*format.SlotSize)
	return int(off), nil
}

// Record returns the parsed row at slot i, borrowing the page bytes.
func (p *Page) Record(i int) (record.Record, error) {
	off, err := p.Slot(i)
	if err != nil {
		return record.Record{}, err
	}
	rec, err := record.ParseRecord(p.Data[off:])
	if err != nil {
		return record.Record{}, newError(KindCorruptPage, p.ID(), p.Header.ObjectID, err)
	}
	return rec, nil
}

// RowIter iterates a page's rows lazily in slot order.
type RowIter struct {
	page *Page
	slot int
	rec  record.Record
	err  error
}

// Rows returns a row iterator over the page.
func (p *Page) Rows() *RowIter { return &RowIter{page: p} }

// Next advances to the next row; it returns false at the end or on error.
func (it *RowIter) Next() bool {
	if it.err != nil || it.slot >= it.page.SlotCount() {
		return false
	}
	it.rec, it.err = it.page.Record(it.slot)
	if it.err != nil {
		return false
	}
	it.slot++
	return true
}

// Record is the current row.
func (it *RowIter) Record() record.Record { return it.rec }

// Slot is the current row's slot index.
func (it *RowIter) Slot() int { return it.slot - 1 }

// Err reports the first iteration error.
func (it *RowIter) Err() error { return it.err }

// catalogRows parses every row of a catalog page, verifying the page's
// object id and the catalog's fixed row size.
func catalogRows[T any](p *Page, objectID uint32, rowSize int, parse func(record.Record) (T, error)) ([]T, error) {
	if objectID != 0 && p.Header.ObjectID != objectID {
		return nil, errorf(KindCorruptPage, p.ID(), p.Header.ObjectID,
			"page belongs to object %d, want %d", p.Header.ObjectID, objectID)
	}
	out := make([]T, 0, p.SlotCount())
	it := p.Rows()
	for it.Next() {
		rec := it.Record()
		if int(rec.Head.FixedLen) != rowSize {
			return nil, errorf(KindCorruptPage, p.ID(), objectID,
				"slot %d: fixed row length %d, want %d", it.Slot(), rec.Head.FixedLen, rowSize)
		}
		row, err := parse(rec)
		if err != nil {
			return nil, newError(KindCorruptPage, p.ID(), objectID, err)
		}
		out = append(out, row)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Typed catalog accessors.

func (p *Page) SysAllocUnitsRows() ([]sysobj.SysAllocUnitsRow, error) {
	return catalogRows(p, sysobj.ObjSysAllocUnits, sysobj.SysAllocUnitsRowSize, sysobj.ParseSysAllocUnitsRow)
}

func (p *Page) SysSchObjsRows() ([]sysobj.SysSchObjsRow, error) {
	return catalogRows(p, sysobj.ObjSysSchObjs, sysobj.SysSchObjsRowSize, sysobj.ParseSysSchObjsRow)
}

func (p *Page) SysColParsRows() ([]sysobj.SysColParsRow, error) {
	return catalogRows(p, sysobj.ObjSysColPars, sysobj.SysColParsRowSize, sysobj.ParseSysColParsRow)
}

func (p *Page) SysScalarTypesRows() ([]sysobj.SysScalarTypesRow, error) {
	return catalogRows(p, sysobj.ObjSysScalarTypes, sysobj.SysScalarTypesRowSize, sysobj.ParseSysScalarTypesRow)
}

func (p *Page) SysIdxStatsRows() ([]sysobj.SysIdxStatsRow, error) {
	return catalogRows(p, sysobj.ObjSysIdxStats, sysobj.SysIdxStatsRowSize, sysobj.ParseSysIdxStatsRow)
}

func (p *Page) SysIsColsRows() ([]sysobj.SysIsColsRow, error) {
	return catalogRows(p, sysobj.ObjSysIsCols, sysobj.SysIsColsRowSize, sysobj.ParseSysIsColsRow)
}

func (p *Page) SysRowSetsRows() ([]sysobj.SysRowSetsRow, error) {
	return catalogRows(p, sysobj.ObjSysRowSets, sysobj.SysRowSetsRowSize, sysobj.ParseSysRowSetsRow)
}

func (p *Page) SysObjValuesRows() ([]sysobj.SysObjValuesRow, error) {
	return catalogRows(p, sysobj.ObjSysObjValues, sysobj.SysObjValuesRowSize, sysobj.ParseSysObjValuesRow)
}
