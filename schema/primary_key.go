// primary_key.go - Primary-key and clustered-index descriptors
package schema

import (
	"fmt"

	"github.com/wilhasse/go-mdf/format"
)

// SortOrder of one key column.
type SortOrder uint8

const (
	OrderAscending SortOrder = iota
	OrderDescending
)

func (o SortOrder) String() string {
	if o == OrderDescending {
		return "DESC"
	}
	return "ASC"
}

// KeyColumn is one key column of an index in key-ordinal order.
type KeyColumn struct {
	Ordinal   int // column ordinal within the table
	Column    *Column
	Order     SortOrder
	SubKeyLen int // byte width of this sub-key on index pages
}

// PrimaryKey points at the clustered-index root and lists the key columns.
type PrimaryKey struct {
	Root   format.PageID
	Name   string
	Cols   []KeyColumn
	keyLen int
}

func NewPrimaryKey(root format.PageID, name string, cols []KeyColumn) (*PrimaryKey, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("primary key %q: no key columns", name)
	}
	pk := &PrimaryKey{Root: root, Name: name, Cols: cols}
	for i := range pk.Cols {
		c := pk.Cols[i].Column
		size := c.FixedSize()
		if size == 0 {
			return nil, fmt.Errorf("primary key %q: column %q is not fixed-size", name, c.Name)
		}
		pk.Cols[i].SubKeyLen = size
		pk.keyLen += size
	}
	return pk, nil
}

// KeyLength is the total byte width of the composite key.
func (pk *PrimaryKey) KeyLength() int { return pk.keyLen }

// SubKeyLength is the byte width of key column i.
func (pk *PrimaryKey) SubKeyLength(i int) int { return pk.Cols[i].SubKeyLen }

// ClusterIndex couples a primary key with the table it orders.
type ClusterIndex struct {
	*PrimaryKey
	Table *UserTable
}

func NewClusterIndex(pk *PrimaryKey, table *UserTable) *ClusterIndex {
	return &ClusterIndex{PrimaryKey: pk, Table: table}
}
