// btree.go - B-tree navigation: descent, leaf chain, lower bounds
package gomdf

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/schema"
)

// Index pages store rows of: 1 status byte, the composite key, a 6-byte
// child pointer.
const indexRowStatusSize = 1

// Tree navigates one B-tree: a root, a fixed-width composite key, a
// comparator, and a way to extract the key from a leaf row.
type Tree struct {
	store   *PageStore
	Root    format.PageID
	KeyLen  int
	Compare func(a, b []byte) int
	LeafKey func(rec record.Record) ([]byte, error)

	objectID uint32
}

// NewTree builds a navigator over a clustered index.
func NewTree(store *PageStore, ci *schema.ClusterIndex) *Tree {
	return &Tree{
		store:   store,
		Root:    ci.Root,
		KeyLen:  ci.KeyLength(),
		Compare: MakeKeyComparator(ci.PrimaryKey),
		LeafKey: MakeLeafKeyFunc(ci),
	}
}

// indexRow reads slot i of an index page: key bytes and child pointer.
func (t *Tree) indexRow(p *Page, i int) ([]byte, format.PageID, error) {
	off, err := p.Slot(i)
	if err != nil {
		return nil, format.PageID{}, err
	}
	end := off + indexRowStatusSize + t.KeyLen + format.PageIDSize
	if end > format.PageSize {
		return nil, format.PageID{}, errorf(KindCorruptIndex, p.ID(), p.Header.ObjectID,
			"index row at slot %d overruns page", i)
	}
	key := p.Data[off+indexRowStatusSize : off+indexRowStatusSize+t.KeyLen]
	child, _ := format.ParsePageID(p.Data, off+indexRowStatusSize+t.KeyLen)
	return key, child, nil
}

// isKeyNull reports the minus-infinity slot: slot 0 of the leftmost index
// page at each level.
func isKeyNull(p *Page, slot int) bool {
	return slot == 0 && p.Header.PrevPage.IsNull()
}

// loadChild validates a downward pointer.
func (t *Tree) loadChild(parent *Page, id format.PageID) (*Page, error) {
	if id.IsNull() {
		return nil, errorf(KindCorruptIndex, parent.ID(), parent.Header.ObjectID,
			"null child pointer below level %d", parent.Header.Level)
	}
	p, err := t.store.LoadByID(id)
	if err != nil {
		return nil, err
	}
	if p.Header.Level != parent.Header.Level-1 {
		return nil, errorf(KindCorruptIndex, id, parent.Header.ObjectID,
			"child level %d below parent level %d", p.Header.Level, parent.Header.Level)
	}
	if ok, err := t.store.IsAllocated(id); err != nil {
		return nil, err
	} else if !ok {
		return nil, errorf(KindCorruptIndex, id, parent.Header.ObjectID,
			"child page is deallocated")
	}
	return p, nil
}

// FindLeaf descends from the root to the leaf that covers key: at each index
// page, the rightmost slot whose key is <= the search key (the leftmost
// slot stands for minus infinity).
func (t *Tree) FindLeaf(key []byte) (*Page, error) {
	p, err := t.store.LoadByID(t.Root)
	if err != nil {
		return nil, err
	}
	t.objectID = p.Header.ObjectID
	for !p.IsLeaf() {
		n := p.SlotCount()
		if n == 0 {
			return nil, errorf(KindCorruptIndex, p.ID(), p.Header.ObjectID, "empty index page")
		}
		// Binary search: rightmost slot with key[i] <= search.
		lo, hi := 0, n-1
		pick := 0
		for lo <= hi {
			mid := (lo + hi) / 2
			if isKeyNull(p, mid) {
				lo = mid + 1
				pick = mid
				continue
			}
			k, _, err := t.indexRow(p, mid)
			if err != nil {
				return nil, err
			}
			if t.Compare(k, key) <= 0 {
				pick = mid
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}
		_, child, err := t.indexRow(p, pick)
		if err != nil {
			return nil, err
		}
		p, err = t.loadChild(p, child)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// BeginLeaf descends the leftmost edge to the first leaf.
func (t *Tree) BeginLeaf() (*Page, error) {
	return t.descendEdge(0)
}

// EndLeaf descends the rightmost edge to the last leaf.
func (t *Tree) EndLeaf() (*Page, error) {
	return t.descendEdge(-1)
}

func (t *Tree) descendEdge(slot int) (*Page, error) {
	p, err := t.store.LoadByID(t.Root)
	if err != nil {
		return nil, err
	}
	t.objectID = p.Header.ObjectID
	for !p.IsLeaf() {
		n := p.SlotCount()
		if n == 0 {
			return nil, errorf(KindCorruptIndex, p.ID(), p.Header.ObjectID, "empty index page")
		}
		i := slot
		if i < 0 {
			i = n - 1
		}
		_, child, err := t.indexRow(p, i)
		if err != nil {
			return nil, err
		}
		p, err = t.loadChild(p, child)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NextLeaf follows the leaf-level next pointer; nil at the chain end.
func (t *Tree) NextLeaf(p *Page) (*Page, error) {
	return t.sibling(p, p.Header.NextPage)
}

// PrevLeaf follows the leaf-level prev pointer; nil at the chain start.
func (t *Tree) PrevLeaf(p *Page) (*Page, error) {
	return t.sibling(p, p.Header.PrevPage)
}

func (t *Tree) sibling(p *Page, id format.PageID) (*Page, error) {
	if id.IsNull() {
		return nil, nil
	}
	n, err := t.store.LoadByID(id)
	if err != nil {
		return nil, err
	}
	if n.Header.Level != p.Header.Level || n.Header.ObjectID != p.Header.ObjectID {
		return nil, errorf(KindCorruptIndex, id, p.Header.ObjectID,
			"sibling is level %d of object %d", n.Header.Level, n.Header.ObjectID)
	}
	return n, nil
}

// LowerBound positions at the first leaf row with key >= search; the page is
// nil when no such row exists.
func (t *Tree) LowerBound(search []byte) (*Page, int, error) {
	p, err := t.FindLeaf(search)
	if err != nil {
		return nil, 0, err
	}
	for p != nil {
		n := p.SlotCount()
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			rec, err := p.Record(mid)
			if err != nil {
				return nil, 0, err
			}
			k, err := t.LeafKey(rec)
			if err != nil {
				return nil, 0, err
			}
			if t.Compare(k, search) < 0 {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo < n {
			return p, lo, nil
		}
		p, err = t.NextLeaf(p)
		if err != nil {
			return nil, 0, err
		}
	}
	return nil, 0, nil
}

// MakeKeyComparator builds a byte comparator over the concatenated sub-keys
// of a primary key, honoring per-column sort order. Numeric sub-keys use
// little-endian integer compare matching the on-disk layout.
func MakeKeyComparator(pk *schema.PrimaryKey) func(a, b []byte) int {
	cols := pk.Cols
	return func(a, b []byte) int {
		off := 0
		for _, kc := range cols {
			n := kc.SubKeyLen
			d := subKeyCompare(kc.Column.Type, a[off:off+n], b[off:off+n])
			if kc.Order == schema.OrderDescending {
				d = -d
			}
			if d != 0 {
				return d
			}
			off += n
		}
		return 0
	}
}

func subKeyCompare(t schema.ScalarType, a, b []byte) int {
	switch t {
	case schema.TypeTinyInt, schema.TypeBit:
		return int(a[0]) - int(b[0])
	case schema.TypeSmallInt:
		return cmpInt64(int64(int16(binary.LittleEndian.Uint16(a))), int64(int16(binary.LittleEndian.Uint16(b))))
	case schema.TypeInt:
		return cmpInt64(int64(int32(binary.LittleEndian.Uint32(a))), int64(int32(binary.LittleEndian.Uint32(b))))
	case schema.TypeBigInt, schema.TypeMoney, schema.TypeDateTime:
		return cmpInt64(int64(binary.LittleEndian.Uint64(a)), int64(binary.LittleEndian.Uint64(b)))
	case schema.TypeReal:
		return cmpFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(a))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
	case schema.TypeFloat:
		return cmpFloat(math.Float64frombits(binary.LittleEndian.Uint64(a)),
			math.Float64frombits(binary.LittleEndian.Uint64(b)))
	}
	return bytes.Compare(a, b)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MakeLeafKeyFunc extracts the composite key bytes of a clustered-index
// leaf row from the row's fixed columns.
func MakeLeafKeyFunc(ci *schema.ClusterIndex) func(rec record.Record) ([]byte, error) {
	table := ci.Table
	cols := ci.Cols
	keyLen := ci.KeyLength()
	return func(rec record.Record) ([]byte, error) {
		key := make([]byte, 0, keyLen)
		for _, kc := range cols {
			b, err := rec.Fixed(table.FixedOffset(kc.Ordinal), kc.SubKeyLen)
			if err != nil {
				return nil, err
			}
			key = append(key, b...)
		}
		return key, nil
	}
}

// EncodeKeyValues renders typed key values into composite key bytes
// (little-endian, fixed widths).
func EncodeKeyValues(pk *schema.PrimaryKey, values ...int64) []byte {
	key := make([]byte, 0, pk.KeyLength())
	for i, kc := range pk.Cols {
		var v int64
		if i < len(values) {
			v = values[i]
		}
		switch kc.SubKeyLen {
		case 1:
			key = append(key, byte(v))
		case 2:
			key = binary.LittleEndian.AppendUint16(key, uint16(v))
		case 4:
			key = binary.LittleEndian.AppendUint32(key, uint32(v))
		default:
			key = binary.LittleEndian.AppendUint64(key, uint64(v))
		}
	}
	return key
}
