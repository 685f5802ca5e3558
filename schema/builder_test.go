package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/sysobj"
)

func testCatalog() *Catalog {
	return &Catalog{
		Objects: []sysobj.SysSchObjsRow{
			{ID: 100, Kind: "U", Name: "T"},
			{ID: 50, Kind: "S", Name: "sysschobjs"}, // system object, skipped
		},
		Columns: []sysobj.SysColParsRow{
			{ID: 100, ColID: 2, Name: "name", XType: 231, UType: 231, Length: sysobj.LengthVar},
			{ID: 100, ColID: 1, Name: "id", XType: 56, UType: 56, Length: 4},
			{ID: 100, ColID: 3, Name: "flag", XType: 48, UType: 48, Length: 1},
		},
		Types: []sysobj.SysScalarTypesRow{
			{ID: 56, XType: 56, Name: "int", Length: 4},
			{ID: 231, XType: 231, Name: "nvarchar", Length: sysobj.LengthVar},
			{ID: 48, XType: 48, Name: "tinyint", Length: 1},
		},
		Indexes: []sysobj.SysIdxStatsRow{
			{ID: 100, IndID: 1, Type: sysobj.IdxTypeClustered, RowSet: 7001, Name: "PK_T"},
		},
		IndexCols: []sysobj.SysIsColsRow{
			{IDMajor: 100, IDMinor: 1, SubID: 1, IntProp: 1},
		},
		RowSets: []sysobj.SysRowSetsRow{
			{RowSetID: 7001, IDMajor: 100, IDMinor: 1},
		},
		AllocUnits: []sysobj.SysAllocUnitsRow{
			{
				AUID: 1, Type: format.DataTypeInRow, OwnerID: 7001,
				PGRoot:     format.PageID{File: 1, Page: 30},
				PGFirstIAM: format.PageID{File: 1, Page: 31},
				PGFirst:    format.PageID{File: 1, Page: 30},
			},
		},
	}
}

func TestBuildUserTable(t *testing.T) {
	tables, failed := Build(testCatalog())
	require.Empty(t, failed)
	require.Len(t, tables, 1)

	info := tables[0]
	ut := info.Table
	assert.Equal(t, uint32(100), ut.ID)
	assert.Equal(t, "T", ut.Name)
	require.Len(t, ut.Columns, 3)

	// Columns come back in colid order.
	assert.Equal(t, "id", ut.Columns[0].Name)
	assert.Equal(t, "name", ut.Columns[1].Name)
	assert.Equal(t, "flag", ut.Columns[2].Name)

	// Fixed offsets pack after the row head; variables take var indexes.
	assert.True(t, ut.Columns[0].IsFixed())
	assert.Equal(t, 4, ut.FixedOffset(0))
	assert.False(t, ut.Columns[1].IsFixed())
	assert.Equal(t, 0, ut.VarIndex(1))
	assert.True(t, ut.Columns[2].IsFixed())
	assert.Equal(t, 8, ut.FixedOffset(2))

	assert.Equal(t, 5, ut.FixedSize())
	assert.Equal(t, 9, ut.FixedRowLen())
	assert.Equal(t, 2, ut.CountFixed())
	assert.Equal(t, 1, ut.CountVar())

	// Clustered index resolved through sysrowsets to the allocation unit.
	require.NotNil(t, info.Cluster)
	assert.Equal(t, format.PageID{File: 1, Page: 30}, info.Cluster.Root)
	require.Len(t, info.Cluster.Cols, 1)
	assert.Equal(t, "id", info.Cluster.Cols[0].Column.Name)
	assert.Equal(t, 4, info.Cluster.KeyLength())
	assert.Equal(t, OrderAscending, info.Cluster.Cols[0].Order)
}

func TestBuildIsIdempotent(t *testing.T) {
	t1, f1 := Build(testCatalog())
	t2, f2 := Build(testCatalog())
	require.Empty(t, f1)
	require.Empty(t, f2)
	require.Len(t, t2, len(t1))
	assert.Equal(t, t1[0].Table, t2[0].Table)
	assert.Equal(t, t1[0].Cluster.Root, t2[0].Cluster.Root)
}

func TestBuildMissingScalarType(t *testing.T) {
	cat := testCatalog()
	cat.Types = cat.Types[:1] // drop nvarchar and tinyint
	tables, failed := Build(cat)
	assert.Empty(t, tables)
	require.Len(t, failed, 1)
	assert.Equal(t, uint32(100), failed[0].Object)
	assert.Contains(t, failed[0].Error(), "scalar type")
}

func TestBuildFailureIsolatedPerTable(t *testing.T) {
	cat := testCatalog()
	// A second table with no columns fails alone.
	cat.Objects = append(cat.Objects, sysobj.SysSchObjsRow{ID: 200, Kind: "U", Name: "Broken"})
	tables, failed := Build(cat)
	require.Len(t, tables, 1)
	assert.Equal(t, "T", tables[0].Table.Name)
	require.Len(t, failed, 1)
	assert.Equal(t, uint32(200), failed[0].Object)
}

func TestBuildDescendingKey(t *testing.T) {
	cat := testCatalog()
	cat.IndexCols[0].Status = 0x4
	tables, failed := Build(cat)
	require.Empty(t, failed)
	assert.Equal(t, OrderDescending, tables[0].Cluster.Cols[0].Order)
}

func TestBuildSpatialIndex(t *testing.T) {
	cat := testCatalog()
	cat.Indexes = append(cat.Indexes, sysobj.SysIdxStatsRow{
		ID: 100, IndID: 2, Type: sysobj.IdxTypeSpatial, RowSet: 7002, Name: "SIDX_T",
	})
	cat.AllocUnits = append(cat.AllocUnits, sysobj.SysAllocUnitsRow{
		AUID: 2, Type: format.DataTypeInRow, OwnerID: 7002,
		PGRoot: format.PageID{File: 1, Page: 40},
	})
	tables, failed := Build(cat)
	require.Empty(t, failed)
	require.NotNil(t, tables[0].Spatial)
	assert.Equal(t, format.PageID{File: 1, Page: 40}, tables[0].Spatial.Root)
	assert.Len(t, tables[0].Indexes, 2)
}
