package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMarshalTableJSON(t *testing.T) {
	tables, failed := Build(testCatalog())
	require.Empty(t, failed)
	info := tables[0]

	out, err := MarshalTableJSON(info.Table, info.Cluster.PrimaryKey)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(out))

	doc := gjson.ParseBytes(out)
	assert.Equal(t, int64(100), doc.Get("id").Int())
	assert.Equal(t, "T", doc.Get("name").String())
	assert.Equal(t, int64(3), doc.Get("columns.#").Int())
	assert.Equal(t, "id", doc.Get("columns.0.name").String())
	assert.Equal(t, "int", doc.Get("columns.0.type").String())
	assert.True(t, doc.Get("columns.0.fixed").Bool())
	assert.Equal(t, int64(4), doc.Get("columns.0.offset").Int())
	assert.Equal(t, "nvarchar", doc.Get("columns.1.type").String())
	assert.False(t, doc.Get("columns.1.fixed").Bool())
	assert.Equal(t, int64(0), doc.Get("columns.1.var_index").Int())
	assert.Equal(t, "id", doc.Get("primary_key.0.name").String())
	assert.Equal(t, "ASC", doc.Get("primary_key.0.order").String())
}

func TestTypeSchemaText(t *testing.T) {
	tables, failed := Build(testCatalog())
	require.Empty(t, failed)
	info := tables[0]

	text := info.Table.TypeSchema(info.Cluster.PrimaryKey)
	assert.Contains(t, text, "name = T")
	assert.Contains(t, text, "id : int (4) fixed IsPrimaryKey")
	assert.Contains(t, text, "name : nvarchar (var)")
}
