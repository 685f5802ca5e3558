// spatial_query.go - Geographic range lookups against a spatial index
package gomdf

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/schema"
	"github.com/wilhasse/go-mdf/spatial"
)

// spatialLeafKeyOff is where the (cell_id, pk0) key sits in a spatial leaf
// row, right after the row head.
const spatialLeafKeyOff = format.RowHeadSize

// spatialKeyCompare orders composite spatial keys: cell bytes first, then
// the bigint primary key numerically.
func spatialKeyCompare(a, b []byte) int {
	if d := bytes.Compare(a[:spatial.CellSizeOnDisk], b[:spatial.CellSizeOnDisk]); d != 0 {
		return d
	}
	pa := int64(binary.LittleEndian.Uint64(a[spatial.CellSizeOnDisk:]))
	pb := int64(binary.LittleEndian.Uint64(b[spatial.CellSizeOnDisk:]))
	return cmpInt64(pa, pb)
}

func encodeSpatialKey(k spatial.Key) []byte {
	out := make([]byte, 0, spatial.KeySize)
	out = append(out, k.CellID.Bytes()...)
	out = binary.LittleEndian.AppendUint64(out, uint64(k.PK0))
	return out
}

// spatialTree builds a navigator over a table's spatial index.
func (db *Database) spatialTree(idx *schema.IndexInfo) *Tree {
	return &Tree{
		store:   db.store,
		Root:    idx.Root,
		KeyLen:  spatial.KeySize,
		Compare: spatialKeyCompare,
		LeafKey: func(rec record.Record) ([]byte, error) {
			if len(rec.Bytes) < spatialLeafKeyOff+spatial.KeySize {
				return nil, format.ErrShortRead
			}
			return rec.Bytes[spatialLeafKeyOff : spatialLeafKeyOff+spatial.KeySize], nil
		},
	}
}

// SpatialHit is one match of a spatial lookup: the index row plus the base
// table's row when the primary key resolves.
type SpatialHit struct {
	IndexRow spatial.PageRow
	Row      *Row // nil when the base row cannot be resolved
	Distance float64
}

// SpatialIter drives a range lookup lazily: cover cells from the cell-set,
// B-tree seeks per cover cell, and an exact per-row distance check against
// the stored geometry. Cancellation is observed between page boundaries.
type SpatialIter struct {
	ctx    context.Context
	db     *Database
	info   *schema.TableInfo
	tree   *Tree
	center spatial.Point
	radius float64
	geoCol int

	cluster *Tree

	cells  []spatial.Cell
	cellI  int
	prefix spatial.Cell
	page   *Page
	slot   int
	seen   map[int64]bool

	hit SpatialHit
	err error
}

// SpatialLookup finds the rows of a table whose geography lies within
// radiusMeters of center, using the table's spatial index.
func (db *Database) SpatialLookup(ctx context.Context, tableName string, center spatial.Point, radiusMeters float64) (*SpatialIter, error) {
	info, err := db.FindTable(tableName)
	if err != nil {
		return nil, err
	}
	if info.Spatial == nil {
		return nil, errorf(KindUnknownTable, format.PageID{}, info.Table.ID,
			"table %q has no spatial index", tableName)
	}
	set, err := spatial.CellRange(center, radiusMeters, spatial.DefaultGrid)
	if err != nil {
		return nil, errorf(KindCorruptIndex, format.PageID{}, info.Table.ID, "%v", err)
	}
	it := &SpatialIter{
		ctx:    ctx,
		db:     db,
		info:   info,
		tree:   db.spatialTree(info.Spatial),
		center: center,
		radius: radiusMeters,
		geoCol: info.Table.FindGeography(),
		cells:  set.Cells(),
		seen:   make(map[int64]bool),
	}
	if info.Cluster != nil {
		it.cluster = NewTree(db.store, info.Cluster)
	}
	return it, nil
}

// Next advances to the next matching row.
func (it *SpatialIter) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		if it.page == nil {
			if it.cellI >= len(it.cells) {
				return false
			}
			it.prefix = it.cells[it.cellI]
			it.cellI++
			search := encodeSpatialKey(spatial.MinKeyForCell(it.prefix))
			page, slot, err := it.tree.LowerBound(search)
			if err != nil {
				it.err = err
				return false
			}
			it.page = page
			it.slot = slot
			continue
		}
		if it.slot >= it.page.SlotCount() {
			if err := it.ctx.Err(); err != nil {
				it.err = newError(KindCancelled, it.page.ID(), it.info.Table.ID, err)
				return false
			}
			next, err := it.tree.NextLeaf(it.page)
			if err != nil {
				it.err = err
				return false
			}
			it.page = next
			it.slot = 0
			continue
		}
		rec, err := it.page.Record(it.slot)
		it.slot++
		if err != nil {
			it.err = err
			return false
		}
		row, err := spatial.ParsePageRow(rec)
		if err != nil {
			it.err = newError(KindCorruptPage, it.page.ID(), it.info.Table.ID, err)
			return false
		}
		if !row.CellID.HasPrefix(it.prefix) {
			// Past the cover cell: move to the next one.
			it.page = nil
			continue
		}
		if it.seen[row.PK0] {
			continue
		}
		it.seen[row.PK0] = true
		hit, ok, err := it.check(row)
		if err != nil {
			it.err = err
			return false
		}
		if !ok {
			continue
		}
		it.hit = hit
		return true
	}
}

// check resolves the base row and applies the exact distance filter.
func (it *SpatialIter) check(idxRow spatial.PageRow) (SpatialHit, bool, error) {
	hit := SpatialHit{IndexRow: idxRow, Distance: math.NaN()}
	if it.cluster == nil || len(it.info.Cluster.Cols) != 1 {
		// No single-column cluster key to chase; the cover cell is the best
		// answer available.
		return hit, true, nil
	}
	search := EncodeKeyValues(it.info.Cluster.PrimaryKey, idxRow.PK0)
	page, slot, err := it.cluster.LowerBound(search)
	if err != nil {
		return hit, false, err
	}
	if page == nil {
		return hit, false, nil
	}
	rec, err := page.Record(slot)
	if err != nil {
		return hit, false, err
	}
	key, err := it.cluster.LeafKey(rec)
	if err != nil {
		return hit, false, err
	}
	if it.cluster.Compare(key, search) != 0 {
		return hit, false, nil
	}
	hit.Row = &Row{Table: it.info.Table, Rec: rec, PageID: page.ID(), Slot: slot}
	if it.geoCol < 0 {
		return hit, true, nil
	}
	val, err := hit.Row.Column(it.geoCol)
	if err != nil {
		return hit, false, err
	}
	if val.IsNull() || val.Complex {
		// LOB-resident geometry is out of reach here; keep the candidate.
		return hit, true, nil
	}
	geo, err := spatial.ParseGeography(val.Bytes)
	if err != nil {
		return hit, true, nil
	}
	hit.Distance = geo.MinDistance(it.center)
	if hit.Distance > it.radius && !geo.STContains(it.center) {
		return hit, false, nil
	}
	return hit, true, nil
}

// Hit is the current match.
func (it *SpatialIter) Hit() *SpatialHit { return &it.hit }

// Row is the current match's base-table row (may be nil).
func (it *SpatialIter) Row() *Row { return it.hit.Row }

// Err reports the first lookup error.
func (it *SpatialIter) Err() error { return it.err }
