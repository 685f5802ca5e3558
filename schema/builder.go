// builder.go - Reconstruct user tables from catalog rows
package schema

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/sysobj"
)

// Catalog aggregates the parsed system-catalog rows the builder consumes.
type Catalog struct {
	Objects    []sysobj.SysSchObjsRow
	Columns    []sysobj.SysColParsRow
	Types      []sysobj.SysScalarTypesRow
	Indexes    []sysobj.SysIdxStatsRow
	IndexCols  []sysobj.SysIsColsRow
	RowSets    []sysobj.SysRowSetsRow
	AllocUnits []sysobj.SysAllocUnitsRow
}

// IndexInfo locates one index of a table on disk.
type IndexInfo struct {
	Row       sysobj.SysIdxStatsRow
	Root      format.PageID
	FirstIAM  format.PageID
	FirstPage format.PageID
}

// TableInfo is the builder's output for one user table.
type TableInfo struct {
	Table   *UserTable
	Cluster *ClusterIndex // nil for heaps
	Spatial *IndexInfo    // nil unless a spatial index exists
	Indexes []*IndexInfo  // all indexes, indid order
}

// TableError records a table whose reconstruction failed; other tables are
// unaffected.
type TableError struct {
	Object uint32
	Name   string
	Err    error
}

func (e TableError) Error() string {
	return fmt.Sprintf("table %q (id %d): %v", e.Name, e.Object, e.Err)
}

// Build reconstructs every user table in the catalog. Tables that reference
// missing columns, types, or allocation units are reported in the second
// return and skipped.
func Build(cat *Catalog) ([]*TableInfo, []TableError) {
	types := make(map[uint32]sysobj.SysScalarTypesRow, len(cat.Types))
	for _, t := range cat.Types {
		types[t.ID] = t
	}

	var out []*TableInfo
	var failed []TableError
	for _, obj := range cat.Objects {
		if !obj.IsUserTable() {
			continue
		}
		info, err := buildTable(cat, types, obj)
		if err != nil {
			failed = append(failed, TableError{Object: obj.ID, Name: obj.Name, Err: err})
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table.Name < out[j].Table.Name })
	return out, failed
}

func buildTable(cat *Catalog, types map[uint32]sysobj.SysScalarTypesRow, obj sysobj.SysSchObjsRow) (*TableInfo, error) {
	var colpars []sysobj.SysColParsRow
	for _, cp := range cat.Columns {
		if cp.ID == obj.ID && cp.Number == 0 {
			colpars = append(colpars, cp)
		}
	}
	if len(colpars) == 0 {
		return nil, errors.New("no columns in syscolpars")
	}
	sort.Slice(colpars, func(i, j int) bool { return colpars[i].ColID < colpars[j].ColID })

	cols := make([]*Column, 0, len(colpars))
	for _, cp := range colpars {
		st, ok := types[cp.UType]
		if !ok {
			return nil, errors.Errorf("column %q: scalar type %d not in sysscalartypes", cp.Name, cp.UType)
		}
		cols = append(cols, NewColumn(cp, st))
	}
	table, err := NewUserTable(obj.ID, obj.Name, cols)
	if err != nil {
		return nil, err
	}

	info := &TableInfo{Table: table}
	for _, idx := range indexesOf(cat, obj.ID) {
		loc, err := locateIndex(cat, obj.ID, idx)
		if err != nil {
			return nil, errors.Wrapf(err, "index %q (indid %d)", idx.Name, idx.IndID)
		}
		info.Indexes = append(info.Indexes, loc)
		if idx.IsClustered() {
			pk, err := buildPrimaryKey(cat, table, idx, loc.Root)
			if err != nil {
				return nil, err
			}
			info.Cluster = NewClusterIndex(pk, table)
		}
		if idx.IsSpatial() && info.Spatial == nil {
			info.Spatial = loc
		}
	}
	return info, nil
}

func indexesOf(cat *Catalog, objectID uint32) []sysobj.SysIdxStatsRow {
	var out []sysobj.SysIdxStatsRow
	for _, idx := range cat.Indexes {
		if idx.ID == objectID && idx.Type != sysobj.IdxTypeHeap {
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IndID < out[j].IndID })
	return out
}

// locateIndex resolves the allocation unit of an index: its rowset first
// (sysrowsets keyed by object and index), the object id itself as fallback.
func locateIndex(cat *Catalog, objectID uint32, idx sysobj.SysIdxStatsRow) (*IndexInfo, error) {
	owners := []uint64{uint64(objectID)}
	if idx.RowSet != 0 {
		owners = []uint64{idx.RowSet, uint64(objectID)}
	}
	for _, rs := range cat.RowSets {
		if rs.IDMajor == objectID && rs.IDMinor == idx.IndID {
			owners = append([]uint64{rs.RowSetID}, owners...)
		}
	}
	for _, owner := range owners {
		for _, au := range cat.AllocUnits {
			if au.OwnerID == owner && au.Type == format.DataTypeInRow {
				return &IndexInfo{
					Row:       idx,
					Root:      au.PGRoot,
					FirstIAM:  au.PGFirstIAM,
					FirstPage: au.PGFirst,
				}, nil
			}
		}
	}
	return nil, errors.New("no in-row allocation unit")
}

func buildPrimaryKey(cat *Catalog, table *UserTable, idx sysobj.SysIdxStatsRow, root format.PageID) (*PrimaryKey, error) {
	var iscols []sysobj.SysIsColsRow
	for _, ic := range cat.IndexCols {
		if ic.IDMajor == table.ID && ic.IDMinor == idx.IndID {
			iscols = append(iscols, ic)
		}
	}
	if len(iscols) == 0 {
		return nil, errors.New("no key columns in sysiscols")
	}
	sort.Slice(iscols, func(i, j int) bool { return iscols[i].KeyOrdinal() < iscols[j].KeyOrdinal() })

	keyCols := make([]KeyColumn, 0, len(iscols))
	for _, ic := range iscols {
		found := -1
		for i, c := range table.Columns {
			if c.ColID == ic.ColID() {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, errors.Errorf("key column id %d not in table", ic.ColID())
		}
		order := OrderAscending
		if ic.IsDescending() {
			order = OrderDescending
		}
		keyCols = append(keyCols, KeyColumn{
			Ordinal: found,
			Column:  table.Columns[found],
			Order:   order,
		})
	}
	return NewPrimaryKey(root, idx.Name, keyCols)
}
