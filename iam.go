// iam.go - IAM chain walking: allocation-unit page enumeration
package gomdf

import (
	"github.com/wilhasse/go-mdf/format"
)

// IAM page body layout, after the 96-byte header: a small chain header, the
// eight single-page allocation slots, then the extent bitmap.
const (
	iamOffSequence  = format.PageHeaderSize
	iamOffStatus    = format.PageHeaderSize + 4
	iamOffStartPage = format.PageHeaderSize + 8
	iamOffSlots     = format.PageHeaderSize + 14
	iamSlotCount    = 8
	iamOffBitmap    = iamOffSlots + iamSlotCount*format.PageIDSize
	iamPagesPerBit  = 8 // one bit covers one extent
)

// IAMPage is a typed view over an IAM page.
type IAMPage struct {
	page      *Page
	Sequence  uint32
	StartPage format.PageID
	Slots     [iamSlotCount]format.PageID
}

// ParseIAMPage validates and types an IAM page.
func ParseIAMPage(p *Page) (*IAMPage, error) {
	if p.Header.Type != format.PageTypeIAM {
		return nil, errorf(KindIAMChainBroken, p.ID(), p.Header.ObjectID,
			"page type %s, want IAM", p.Header.Type)
	}
	ip := &IAMPage{page: p}
	ip.Sequence, _ = format.Le32(p.Data, iamOffSequence)
	ip.StartPage, _ = format.ParsePageID(p.Data, iamOffStartPage)
	for i := 0; i < iamSlotCount; i++ {
		ip.Slots[i], _ = format.ParsePageID(p.Data, iamOffSlots+i*format.PageIDSize)
	}
	return ip, nil
}

// extentBit reports whether extent e is allocated to the unit.
func (ip *IAMPage) extentBit(e int) bool {
	off := iamOffBitmap + e/8
	if off >= format.PageSize {
		return false
	}
	return ip.page.Data[off]&(1<<(uint(e)%8)) != 0
}

// extentCount is the number of extents the bitmap covers.
func (ip *IAMPage) extentCount() int {
	return (format.PageSize - iamOffBitmap) * 8
}

// IAMIter walks an IAM chain lazily, yielding every page of the allocation
// unit: the single-page slots of each IAM page first, then its bitmap
// extents, then the next IAM page in the chain. Restartable from the chain
// head.
type IAMIter struct {
	store    *PageStore
	objectID uint32
	indexID  uint16
	cur      *IAMPage
	slot     int // next single-page slot
	extent   int // next extent
	inExtent int // next page within the current extent, -1 if none
	id       format.PageID
	err      error
	done     bool
}

// WalkIAM starts an IAM walk at the chain head (pgfirstiam).
func (s *PageStore) WalkIAM(first format.PageID) *IAMIter {
	it := &IAMIter{store: s, inExtent: -1}
	if first.IsNull() {
		it.done = true
		return it
	}
	p, err := s.LoadByID(first)
	if err != nil {
		it.err = err
		return it
	}
	ip, err := ParseIAMPage(p)
	if err != nil {
		it.err = err
		return it
	}
	it.cur = ip
	it.objectID = p.Header.ObjectID
	it.indexID = p.Header.IndexID
	return it
}

// Next advances to the next page of the allocation unit.
func (it *IAMIter) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	for {
		// Pending pages within an extent run.
		if it.inExtent >= 0 {
			base := it.cur.StartPage
			pg := base.Page + uint32(it.extent-1)*iamPagesPerBit + uint32(it.inExtent)
			it.id = format.PageID{File: base.File, Page: pg}
			it.inExtent++
			if it.inExtent >= iamPagesPerBit {
				it.inExtent = -1
			}
			return true
		}
		// Single-page slots first.
		for it.slot < iamSlotCount {
			id := it.cur.Slots[it.slot]
			it.slot++
			if !id.IsNull() {
				it.id = id
				return true
			}
		}
		// Then bitmap extents.
		for it.extent < it.cur.extentCount() {
			e := it.extent
			it.extent++
			if it.cur.extentBit(e) {
				it.inExtent = 0
				break
			}
		}
		if it.inExtent >= 0 {
			continue
		}
		// End of this IAM page: follow the chain.
		next := it.cur.page.Header.NextPage
		if next.IsNull() {
			it.done = true
			return false
		}
		p, err := it.store.LoadByID(next)
		if err != nil {
			it.err = err
			return false
		}
		if p.Header.Type != format.PageTypeIAM ||
			p.Header.ObjectID != it.objectID || p.Header.IndexID != it.indexID {
			it.err = errorf(KindIAMChainBroken, next, it.objectID,
				"chain next is %s page of object %d index %d",
				p.Header.Type, p.Header.ObjectID, p.Header.IndexID)
			return false
		}
		ip, err := ParseIAMPage(p)
		if err != nil {
			it.err = err
			return false
		}
		it.cur = ip
		it.slot = 0
		it.extent = 0
	}
}

// PageID is the current page of the walk.
func (it *IAMIter) PageID() format.PageID { return it.id }

// Err reports the first walk error.
func (it *IAMIter) Err() error { return it.err }
