package gomdf

import (
	"encoding/binary"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
)

// Test fixtures: build synthetic page images.

func pid(page uint32) format.PageID { return format.PageID{File: 1, Page: page} }

type pageSpec struct {
	typ     format.PageType
	level   uint8
	objID   uint32
	indexID uint16
	pminlen uint16
	prev    format.PageID
	next    format.PageID
	rows    [][]byte
}

// makePage lays out a page: header, rows packed from offset 96, slot array
// at the tail.
func makePage(idx uint32, ps pageSpec) []byte {
	p := make([]byte, format.PageSize)
	p[offHeaderVersion] = 1
	p[offType] = byte(ps.typ)
	p[offLevel] = ps.level
	format.PutLe16(p, offIndexID, ps.indexID)
	format.PutPageID(p, offPrevPage, ps.prev)
	format.PutLe16(p, offPMinLen, ps.pminlen)
	format.PutPageID(p, offNextPage, ps.next)
	format.PutLe16(p, offSlotCount, uint16(len(ps.rows)))
	format.PutLe32(p, offObjectID, ps.objID)
	format.PutPageID(p, offPageID, pid(idx))

	cur := format.PageHeaderSize
	for i, row := range ps.rows {
		copy(p[cur:], row)
		format.PutLe16(p, format.PageSize-(i+1)*format.SlotSize, uint16(cur))
		cur += len(row)
	}
	format.PutLe16(p, offFreeData, uint16(cur))
	format.PutLe16(p, offFreeCount, uint16(format.PageSize-cur-len(ps.rows)*format.SlotSize))
	return p
}

type imageBuilder struct {
	pages map[uint32][]byte
	count uint32
}

func newImage(pageCount uint32) *imageBuilder {
	return &imageBuilder{pages: make(map[uint32][]byte), count: pageCount}
}

func (b *imageBuilder) set(idx uint32, page []byte) {
	b.pages[idx] = page
}

func (b *imageBuilder) add(idx uint32, ps pageSpec) {
	b.set(idx, makePage(idx, ps))
}

func (b *imageBuilder) bytes() []byte {
	out := make([]byte, int(b.count)*format.PageSize)
	for idx, p := range b.pages {
		copy(out[int(idx)*format.PageSize:], p)
	}
	return out
}

// makeBootPage builds the page-9 boot page pointing at the sysallocunits
// list.
func makeBootPage(name string, firstSysIdx format.PageID) []byte {
	row := make([]byte, bootRowMinSize)
	row[0] = record.StatusHasNullBitmap
	format.PutLe16(row, 2, uint16(len(row))) // fixed length: whole row
	format.PutLe16(row, bootOffVersion, 904)
	format.PutLe16(row, bootOffCreateVersion, 904)
	nameBytes := format.EncodeNChar(name)
	copy(row[bootOffDBName:bootOffDBName+256], nameBytes)
	format.PutLe16(row, bootOffDBID, 5)
	format.PutPageID(row, bootOffFirstSysIdx, firstSysIdx)
	return makePage(format.BootPage, pageSpec{
		typ:  format.PageTypeBoot,
		rows: [][]byte{row},
	})
}

// makeIAMPage builds an IAM page whose single-page slots list the given
// pages.
func makeIAMPage(idx uint32, objID uint32, indexID uint16, next format.PageID, singles ...format.PageID) []byte {
	p := makePage(idx, pageSpec{
		typ:     format.PageTypeIAM,
		objID:   objID,
		indexID: indexID,
		next:    next,
	})
	for i, id := range singles {
		format.PutPageID(p, iamOffSlots+i*format.PageIDSize, id)
	}
	return p
}

// Catalog row images. Field offsets follow the sysobj layouts; the writers
// place values relative to the row start, so subtract the 4-byte head when
// filling the fixed slice.

type fixedWriter []byte

func newFixed(rowSize int) fixedWriter { return make(fixedWriter, rowSize-format.RowHeadSize) }

func (w fixedWriter) u8(rowOff int, v uint8) { w[rowOff-format.RowHeadSize] = v }
func (w fixedWriter) u16(rowOff int, v uint16) {
	binary.LittleEndian.PutUint16(w[rowOff-format.RowHeadSize:], v)
}
func (w fixedWriter) u32(rowOff int, v uint32) {
	binary.LittleEndian.PutUint32(w[rowOff-format.RowHeadSize:], v)
}
func (w fixedWriter) u64(rowOff int, v uint64) {
	binary.LittleEndian.PutUint64(w[rowOff-format.RowHeadSize:], v)
}
func (w fixedWriter) pageID(rowOff int, id format.PageID) {
	format.PutPageID([]byte(w), rowOff-format.RowHeadSize, id)
}

func allocUnitRow(auid uint64, owner uint64, dt format.DataType, root, firstIAM, first format.PageID) []byte {
	w := newFixed(73)
	w.u64(4, auid)
	w.u8(12, uint8(dt))
	w.u64(13, owner)
	w.pageID(27, first)
	w.pageID(33, root)
	w.pageID(39, firstIAM)
	return record.Build(w, make([]bool, 13), nil)
}

func schObjRow(id uint32, kind, name string) []byte {
	w := newFixed(44)
	w.u32(4, id)
	copy(w[17-format.RowHeadSize:], (kind + "  ")[:2])
	return record.Build(w, make([]bool, 12), [][]byte{format.EncodeNChar(name)})
}

func colParRow(objID uint32, colid uint32, name string, xtype uint8, utype uint32, length uint16) []byte {
	w := newFixed(45)
	w.u32(4, objID)
	w.u32(10, colid)
	w.u8(14, xtype)
	w.u32(15, utype)
	w.u16(19, length)
	return record.Build(w, make([]bool, 15), [][]byte{format.EncodeNChar(name)})
}

func scalarTypeRow(id uint32, xtype uint8, name string, length uint16) []byte {
	w := newFixed(49)
	w.u32(4, id)
	w.u8(12, xtype)
	w.u16(13, length)
	return record.Build(w, make([]bool, 13), [][]byte{format.EncodeNChar(name)})
}

func idxStatRow(objID, indid uint32, idxType uint8, rowset uint64, name string) []byte {
	w := newFixed(39)
	w.u32(4, objID)
	w.u32(8, indid)
	w.u8(21, idxType)
	w.u64(31, rowset)
	return record.Build(w, make([]bool, 11), [][]byte{format.EncodeNChar(name)})
}

func isColRow(objID, indid, subid, colid uint32, status uint32) []byte {
	w := newFixed(28)
	w.u32(4, objID)
	w.u32(8, indid)
	w.u32(12, subid)
	w.u32(16, status)
	w.u32(20, colid)
	return record.Build(w, make([]bool, 9), nil)
}

func rowSetRow(rowsetid uint64, objID, indid uint32) []byte {
	w := newFixed(53)
	w.u64(4, rowsetid)
	w.u32(13, objID)
	w.u32(17, indid)
	return record.Build(w, make([]bool, 16), nil)
}

// indexRowBytes builds one row of an index page: status byte, key, child.
func indexRowBytes(key []byte, child format.PageID) []byte {
	out := make([]byte, 0, 1+len(key)+format.PageIDSize)
	out = append(out, 0)
	out = append(out, key...)
	buf := make([]byte, format.PageIDSize)
	format.PutPageID(buf, 0, child)
	return append(out, buf...)
}

func int32Key(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}
