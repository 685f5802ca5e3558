// Package gomdf provides a Go library for parsing and navigating MDF
// database files: 8 KiB page-structured files holding system catalogs,
// user tables, B-tree indexes, and geography indexes. The library is
// strictly read-only.
//
// The library is organized into logical groups of functionality:
//
// Core Types and Constants:
//   - format: page size, page types, little-endian primitives, page ids
//   - errors.go: typed error kinds carrying the offending page identity
//
// Page Structure Components:
//   - page_header.go: 96-byte page header parsing
//   - page.go: typed page view (slot array, row iteration, catalog rows)
//   - boot_page.go: boot-page metadata (page 9)
//   - store.go: page store with a parsed-page cache
//
// Navigation:
//   - iam.go: IAM chain walking (allocation-unit page enumeration)
//   - btree.go: B-tree descent, leaf chains, lower bounds
//
// Schema and Records:
//   - sysobj: typed system-catalog rows
//   - schema: user-table reconstruction, DDL cross-check, JSON export
//   - record: raw row layout (row head, NULL bitmap, variable trailer)
//   - column: typed value decoding driven by a table schema
//
// Spatial:
//   - spatial: globe projection, Hilbert grids, cell sets, geography
//     payloads
//   - spatial_query.go: range lookups against a geography index
//
// Basic usage:
//
//	db, _ := gomdf.Open("data.mdf")
//	defer db.Close()
//
//	tables, _ := db.Tables()
//	dt, _ := db.DataTable(tables[0].Name)
//	it := dt.Rows(context.Background())
//	for it.Next() {
//	    values, _ := it.Row().Values()
//	    fmt.Println(values)
//	}
package gomdf
