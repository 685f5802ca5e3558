// datatable.go - Row scans over one user table
package gomdf

import (
	"context"

	"github.com/wilhasse/go-mdf/column"
	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/record"
	"github.com/wilhasse/go-mdf/schema"
)

// DataTable couples a database with one reconstructed table.
type DataTable struct {
	db   *Database
	info *schema.TableInfo
}

// DataTable opens a table by name; UnknownTable when absent.
func (db *Database) DataTable(name string) (*DataTable, error) {
	info, err := db.FindTable(name)
	if err != nil {
		return nil, err
	}
	return &DataTable{db: db, info: info}, nil
}

// NewDataTable wraps an already-resolved table.
func (db *Database) NewDataTable(info *schema.TableInfo) *DataTable {
	return &DataTable{db: db, info: info}
}

// Table is the underlying schema.
func (dt *DataTable) Table() *schema.UserTable { return dt.info.Table }

// Cluster is the clustered index, nil for heaps.
func (dt *DataTable) Cluster() *schema.ClusterIndex { return dt.info.Cluster }

// Row is one decoded-on-demand row borrowed from a resident page.
type Row struct {
	Table  *schema.UserTable
	Rec    record.Record
	PageID format.PageID
	Slot   int
}

// Column decodes column i.
func (r *Row) Column(i int) (column.Value, error) {
	return column.DecodeColumn(r.Rec, r.Table, i)
}

// Values decodes every column.
func (r *Row) Values() ([]column.Value, error) {
	return column.Decode(r.Rec, r.Table)
}

// TableRowIter scans a table's leaf rows lazily: the clustered leaf chain
// when the table has one, the IAM-discovered heap pages otherwise. The
// cancellation signal is checked between page boundaries.
type TableRowIter struct {
	dt  *DataTable
	ctx context.Context

	tree  *Tree
	page  *Page
	slot  int
	heap  []format.PageID
	heapI int

	row Row
	err error
}

// Rows starts a full-table scan.
func (dt *DataTable) Rows(ctx context.Context) *TableRowIter {
	it := &TableRowIter{dt: dt, ctx: ctx}
	if ci := dt.info.Cluster; ci != nil {
		it.tree = NewTree(dt.db.store, ci)
		it.page, it.err = it.tree.BeginLeaf()
		return it
	}
	// Heap: pages come from the IAM chain.
	owner := uint64(dt.info.Table.ID)
	if len(dt.info.Indexes) > 0 {
		owner = dt.info.Indexes[0].Row.RowSet
	}
	it.heap, it.err = dt.db.FindDataPage(owner, format.DataTypeInRow, format.PageTypeData)
	if it.err == nil {
		it.advanceHeapPage()
	}
	return it
}

func (it *TableRowIter) advanceHeapPage() {
	it.page = nil
	it.slot = 0
	for it.heapI < len(it.heap) {
		id := it.heap[it.heapI]
		it.heapI++
		p, err := it.dt.db.store.LoadByID(id)
		if err != nil {
			it.err = err
			return
		}
		if p.SlotCount() > 0 {
			it.page = p
			return
		}
	}
}

// Next advances the scan; false at the end or on error.
func (it *TableRowIter) Next() bool {
	if it.err != nil {
		return false
	}
	for it.page != nil {
		if it.slot < it.page.SlotCount() {
			rec, err := it.page.Record(it.slot)
			if err != nil {
				it.err = err
				return false
			}
			it.row = Row{
				Table:  it.dt.info.Table,
				Rec:    rec,
				PageID: it.page.ID(),
				Slot:   it.slot,
			}
			it.slot++
			return true
		}
		// Page boundary: observe cancellation, then move on.
		if err := it.ctx.Err(); err != nil {
			it.err = newError(KindCancelled, it.page.ID(), it.dt.info.Table.ID, err)
			return false
		}
		if it.tree != nil {
			next, err := it.tree.NextLeaf(it.page)
			if err != nil {
				it.err = err
				return false
			}
			it.page = next
			it.slot = 0
		} else {
			it.advanceHeapPage()
		}
	}
	return false
}

// Row is the current row.
func (it *TableRowIter) Row() *Row { return &it.row }

// Err reports the first scan error.
func (it *TableRowIter) Err() error { return it.err }
