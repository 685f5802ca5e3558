// database.go - Database front door and catalog reader
package gomdf

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wilhasse/go-mdf/format"
	"github.com/wilhasse/go-mdf/schema"
	"github.com/wilhasse/go-mdf/sysobj"
)

// Option configures Open.
type Option func(*options)

type options struct {
	log       *zap.Logger
	cacheSize int64
}

// WithLogger routes library logging; the default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCacheSize bounds the parsed-page cache in bytes.
func WithCacheSize(bytes int64) Option {
	return func(o *options) { o.cacheSize = bytes }
}

// Database is an open, read-only database. All observable state is immutable
// after Open; concurrent readers may share one instance.
type Database struct {
	store *PageStore
	log   *zap.Logger
	boot  *BootPage

	allocRows []sysobj.SysAllocUnitsRow

	sf        singleflight.Group
	mu        sync.RWMutex
	tables    []*schema.TableInfo
	tableErrs []schema.TableError
	built     bool

	allocCache    sync.Map // allocKey -> []sysobj.SysAllocUnitsRow
	dataPageCache sync.Map // dataPageKey -> []format.PageID
}

type allocKey struct {
	owner uint64
	dt    format.DataType
}

type dataPageKey struct {
	owner uint64
	dt    format.DataType
	pt    format.PageType
}

// Open opens a database file.
func Open(path string, opts ...Option) (*Database, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	store, err := OpenStore(path, o.cacheSize, o.log)
	if err != nil {
		return nil, err
	}
	db, err := newDatabase(store, o.log)
	if err != nil {
		store.Close()
		return nil, err
	}
	return db, nil
}

// OpenImage opens an in-memory page image (tests, probes).
func OpenImage(image []byte, opts ...Option) (*Database, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	store, err := NewMemStore(image)
	if err != nil {
		return nil, err
	}
	db, err := newDatabase(store, o.log)
	if err != nil {
		store.Close()
		return nil, err
	}
	return db, nil
}

func newDatabase(store *PageStore, log *zap.Logger) (*Database, error) {
	db := &Database{store: store, log: log}
	bp, err := store.Load(format.BootPage)
	if err != nil {
		return nil, err
	}
	boot, err := ParseBootPage(bp)
	if err != nil {
		return nil, err
	}
	db.boot = boot
	if err := db.loadSysAllocUnits(); err != nil {
		return nil, err
	}
	log.Debug("database opened",
		zap.String("name", boot.DBName),
		zap.Int("alloc_units", len(db.allocRows)))
	return db, nil
}

// loadSysAllocUnits walks the sysallocunits page list reachable from the
// boot page.
func (db *Database) loadSysAllocUnits() error {
	id := db.boot.FirstSysIdx
	if id.IsNull() {
		return errorf(KindCorruptPage, format.PageID{File: 1, Page: format.BootPage}, 0,
			"boot page has no system-object pointer")
	}
	seen := make(map[format.PageID]bool)
	for !id.IsNull() {
		if seen[id] {
			return errorf(KindCorruptPage, id, sysobj.ObjSysAllocUnits,
				"sysallocunits page list loops")
		}
		seen[id] = true
		p, err := db.store.LoadByID(id)
		if err != nil {
			return err
		}
		rows, err := p.SysAllocUnitsRows()
		if err != nil {
			return err
		}
		db.allocRows = append(db.allocRows, rows...)
		id = p.Header.NextPage
	}
	return nil
}

// Close releases the underlying store.
func (db *Database) Close() error { return db.store.Close() }

// Name is the database name from the boot page.
func (db *Database) Name() string { return db.boot.DBName }

// PageCount is the primary file's page count.
func (db *Database) PageCount() uint32 { return db.store.PageCount() }

// Store exposes the page store for page-level tooling.
func (db *Database) Store() *PageStore { return db.store }

// FindSysAlloc returns the allocation-unit rows owned by an object for one
// data type (in-row, LOB, row-overflow). Results are memoized.
func (db *Database) FindSysAlloc(owner uint64, dt format.DataType) []sysobj.SysAllocUnitsRow {
	key := allocKey{owner: owner, dt: dt}
	if v, ok := db.allocCache.Load(key); ok {
		return v.([]sysobj.SysAllocUnitsRow)
	}
	var out []sysobj.SysAllocUnitsRow
	for _, row := range db.allocRows {
		if row.OwnerID == owner && row.Type == dt {
			out = append(out, row)
		}
	}
	db.allocCache.Store(key, out)
	return out
}

// FindDataPage walks the IAM chains of an object's allocation units and
// collects the pages of the requested type. Results are memoized.
func (db *Database) FindDataPage(owner uint64, dt format.DataType, pt format.PageType) ([]format.PageID, error) {
	key := dataPageKey{owner: owner, dt: dt, pt: pt}
	if v, ok := db.dataPageCache.Load(key); ok {
		return v.([]format.PageID), nil
	}
	var out []format.PageID
	for _, au := range db.FindSysAlloc(owner, dt) {
		it := db.store.WalkIAM(au.PGFirstIAM)
		for it.Next() {
			id := it.PageID()
			p, err := db.store.LoadByID(id)
			if err != nil {
				if IsKind(err, KindOutOfBounds) {
					continue // bitmap may cover pages past allocation
				}
				return nil, err
			}
			if p.Header.Type == pt {
				out = append(out, id)
			}
		}
		if err := it.Err(); err != nil {
			return nil, err
		}
	}
	db.dataPageCache.Store(key, out)
	return out, nil
}

// catalogPages loads the in-row data pages of one system catalog.
func (db *Database) catalogPages(objectID uint32) ([]*Page, error) {
	ids, err := db.FindDataPage(uint64(objectID), format.DataTypeInRow, format.PageTypeData)
	if err != nil {
		return nil, err
	}
	pages := make([]*Page, 0, len(ids))
	for _, id := range ids {
		p, err := db.store.LoadByID(id)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// loadCatalog materializes every system-catalog table the schema builder
// consumes.
func (db *Database) loadCatalog() (*schema.Catalog, error) {
	cat := &schema.Catalog{AllocUnits: db.allocRows}

	pages, err := db.catalogPages(sysobj.ObjSysSchObjs)
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysSchObjsRows()
		if err != nil {
			return nil, err
		}
		cat.Objects = append(cat.Objects, rows...)
	}

	if pages, err = db.catalogPages(sysobj.ObjSysColPars); err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysColParsRows()
		if err != nil {
			return nil, err
		}
		cat.Columns = append(cat.Columns, rows...)
	}

	if pages, err = db.catalogPages(sysobj.ObjSysScalarTypes); err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysScalarTypesRows()
		if err != nil {
			return nil, err
		}
		cat.Types = append(cat.Types, rows...)
	}

	if pages, err = db.catalogPages(sysobj.ObjSysIdxStats); err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysIdxStatsRows()
		if err != nil {
			return nil, err
		}
		cat.Indexes = append(cat.Indexes, rows...)
	}

	if pages, err = db.catalogPages(sysobj.ObjSysIsCols); err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysIsColsRows()
		if err != nil {
			return nil, err
		}
		cat.IndexCols = append(cat.IndexCols, rows...)
	}

	if pages, err = db.catalogPages(sysobj.ObjSysRowSets); err != nil {
		return nil, err
	}
	for _, p := range pages {
		rows, err := p.SysRowSetsRows()
		if err != nil {
			return nil, err
		}
		cat.RowSets = append(cat.RowSets, rows...)
	}

	return cat, nil
}

// buildTables reconstructs the schema once; concurrent callers share one
// build through the singleflight barrier.
func (db *Database) buildTables() error {
	db.mu.RLock()
	built := db.built
	db.mu.RUnlock()
	if built {
		return nil
	}
	_, err, _ := db.sf.Do("usertables", func() (interface{}, error) {
		cat, err := db.loadCatalog()
		if err != nil {
			return nil, err
		}
		tables, tableErrs := schema.Build(cat)
		db.mu.Lock()
		db.tables = tables
		db.tableErrs = tableErrs
		db.built = true
		db.mu.Unlock()
		for _, te := range tableErrs {
			db.log.Warn("table skipped", zap.Uint32("object", te.Object),
				zap.String("name", te.Name), zap.Error(te.Err))
		}
		db.log.Debug("schema built", zap.Int("tables", len(tables)))
		return nil, nil
	})
	return err
}

// Tables enumerates the reconstructed user tables.
func (db *Database) Tables() ([]*schema.UserTable, error) {
	infos, err := db.TableInfos()
	if err != nil {
		return nil, err
	}
	out := make([]*schema.UserTable, len(infos))
	for i, info := range infos {
		out[i] = info.Table
	}
	return out, nil
}

// TableInfos enumerates tables with their index descriptors.
func (db *Database) TableInfos() ([]*schema.TableInfo, error) {
	if err := db.buildTables(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.tables, nil
}

// TableErrors lists tables whose reconstruction failed, wrapped as
// SchemaIncomplete.
func (db *Database) TableErrors() ([]error, error) {
	if err := db.buildTables(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]error, len(db.tableErrs))
	for i, te := range db.tableErrs {
		out[i] = newError(KindSchemaIncomplete, format.PageID{}, te.Object, te)
	}
	return out, nil
}

// FindTable looks a table up by name, case-insensitively.
func (db *Database) FindTable(name string) (*schema.TableInfo, error) {
	infos, err := db.TableInfos()
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if strings.EqualFold(info.Table.Name, name) {
			return info, nil
		}
	}
	return nil, errorf(KindUnknownTable, format.PageID{}, 0, "table %q not found", name)
}

func (db *Database) String() string {
	return fmt.Sprintf("database %q (%d pages)", db.boot.DBName, db.PageCount())
}
