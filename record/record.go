// record.go - Full row layout: fixed portion, NULL bitmap, variable trailer
package record

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
)

// Complex variable columns (LOB pointers) flag the high bit of their end
// offset.
const varComplexBit = 0x8000

// Record is a borrowed view over one row's bytes. Bytes runs from the row
// head to the end of the last variable column; the view stays valid only as
// long as the underlying page.
type Record struct {
	Bytes    []byte
	Head     RowHead
	ColCount uint16
	VarCount uint16

	bitmapOff  int // NULL bitmap position, 0 if absent
	varAryOff  int // variable end-offset array position
	varDataOff int // first byte of variable payloads
}

// ParseRecord interprets b as a complete row starting at its row head.
// b may extend past the row's end (rows are sliced out of pages); variable
// end offsets delimit the true extent.
func ParseRecord(b []byte) (Record, error) {
	head, err := ParseRowHead(b, 0)
	if err != nil {
		return Record{}, err
	}
	r := Record{Bytes: b, Head: head}
	if int(head.FixedLen) < format.RowHeadSize || int(head.FixedLen)+2 > len(b) {
		return Record{}, fmt.Errorf("row fixed length %d out of range", head.FixedLen)
	}
	r.ColCount, _ = format.Le16(b, int(head.FixedLen))
	cur := int(head.FixedLen) + 2
	if head.HasNullBitmap() {
		r.bitmapOff = cur
		cur += (int(r.ColCount) + 7) / 8
		if cur > len(b) {
			return Record{}, format.ErrShortRead
		}
	}
	if head.HasVarColumns() {
		if cur+2 > len(b) {
			return Record{}, format.ErrShortRead
		}
		r.VarCount, _ = format.Le16(b, cur)
		cur += 2
		r.varAryOff = cur
		cur += int(r.VarCount) * 2
		if cur > len(b) {
			return Record{}, format.ErrShortRead
		}
		r.varDataOff = cur
	}
	return r, nil
}

// IsNull reports whether column i (0-based over all columns) is NULL.
func (r Record) IsNull(i int) bool {
	if r.bitmapOff == 0 || i < 0 || i >= int(r.ColCount) {
		return false
	}
	b := r.Bytes[r.bitmapOff+i/8]
	return b&(1<<(uint(i)%8)) != 0
}

// Fixed returns the bytes of a fixed column at the given offset from the row
// start (the first fixed column sits at format.RowHeadSize).
func (r Record) Fixed(off, size int) ([]byte, error) {
	if off < format.RowHeadSize || off+size > int(r.Head.FixedLen) || off+size > len(r.Bytes) {
		return nil, fmt.Errorf("fixed column [%d,%d) outside fixed portion (len %d)", off, off+size, r.Head.FixedLen)
	}
	return r.Bytes[off : off+size], nil
}

// varEnd returns the end offset of variable column v with the complex bit
// stripped.
func (r Record) varEnd(v int) int {
	raw, _ := format.Le16(r.Bytes, r.varAryOff+v*2)
	return int(raw &^ varComplexBit)
}

// Var returns the payload of variable column v (0-based var index). A
// trailing-omitted column yields a nil slice; an empty column yields an
// empty, non-nil slice.
func (r Record) Var(v int) ([]byte, error) {
	if v < 0 || v >= int(r.VarCount) {
		// Trailing NULL variable columns may be omitted from the array.
		return nil, nil
	}
	start := r.varDataOff
	if v > 0 {
		start = r.varEnd(v - 1)
	}
	end := r.varEnd(v)
	if start > end || end > len(r.Bytes) || start < r.varDataOff {
		return nil, fmt.Errorf("var column %d range [%d,%d) invalid", v, start, end)
	}
	return r.Bytes[start:end], nil
}

// VarComplex reports whether variable column v carries a LOB pointer instead
// of inline payload.
func (r Record) VarComplex(v int) bool {
	if v < 0 || v >= int(r.VarCount) {
		return false
	}
	raw, _ := format.Le16(r.Bytes, r.varAryOff+v*2)
	return raw&varComplexBit != 0
}

// Size returns the total byte length of the row: through the last variable
// column, or through the trailer when no variable columns exist.
func (r Record) Size() int {
	if r.VarCount > 0 {
		return r.varEnd(int(r.VarCount) - 1)
	}
	end := int(r.Head.FixedLen) + 2
	if r.bitmapOff != 0 {
		end = r.bitmapOff + (int(r.ColCount)+7)/8
	}
	return end
}
