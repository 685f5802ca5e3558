// store.go - Page store: file-backed 8 KiB frames with a parsed-page cache
package gomdf

import (
	"io"
	"os"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wilhasse/go-mdf/format"
)

// DefaultCacheSize bounds the parsed-page cache (bytes).
const DefaultCacheSize = 64 << 20

type storeFile struct {
	r      io.ReaderAt
	pages  uint32
	closer io.Closer
}

// PageStore owns the database files and serves parsed pages by index or by
// (file, page) identity. Pages are immutable once parsed; concurrent readers
// share them through the cache.
type PageStore struct {
	files map[uint16]*storeFile
	cache *ristretto.Cache[uint64, *Page]
	log   *zap.Logger
}

// OpenStore opens the primary database file as file 1. Secondary files join
// via AttachFile. The file size must be a whole number of pages.
func OpenStore(path string, cacheSize int64, log *zap.Logger) (*PageStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *Page]{
		NumCounters: cacheSize / format.PageSize * 10,
		MaxCost:     cacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, newError(KindFileUnavailable, format.PageID{}, 0, err)
	}
	s := &PageStore{
		files: make(map[uint16]*storeFile),
		cache: cache,
		log:   log,
	}
	if err := s.AttachFile(1, path); err != nil {
		cache.Close()
		return nil, err
	}
	log.Debug("page store opened",
		zap.String("path", path),
		zap.Uint32("pages", s.PageCount()))
	return s, nil
}

// AttachFile registers a database file under the given file id.
func (s *PageStore) AttachFile(fileID uint16, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return newError(KindFileUnavailable, format.PageID{File: fileID}, 0, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return newError(KindFileUnavailable, format.PageID{File: fileID}, 0, err)
	}
	if st.Size()%format.PageSize != 0 {
		f.Close()
		return errorf(KindFileUnavailable, format.PageID{File: fileID}, 0,
			"%s: size %d is not a multiple of %d", path, st.Size(), format.PageSize)
	}
	s.files[fileID] = &storeFile{
		r:      f,
		pages:  uint32(st.Size() / format.PageSize),
		closer: f,
	}
	return nil
}

// NewMemStore builds a store over an in-memory page image (tests, probes).
func NewMemStore(image []byte) (*PageStore, error) {
	if len(image)%format.PageSize != 0 {
		return nil, errorf(KindFileUnavailable, format.PageID{File: 1}, 0,
			"image size %d is not a multiple of %d", len(image), format.PageSize)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *Page]{
		NumCounters: DefaultCacheSize / format.PageSize * 10,
		MaxCost:     DefaultCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, newError(KindFileUnavailable, format.PageID{}, 0, err)
	}
	return &PageStore{
		files: map[uint16]*storeFile{
			1: {r: readerAt(image), pages: uint32(len(image) / format.PageSize)},
		},
		cache: cache,
		log:   zap.NewNop(),
	}, nil
}

type readerAt []byte

func (b readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// Close releases the files and the cache.
func (s *PageStore) Close() error {
	var first error
	for _, f := range s.files {
		if f.closer != nil {
			if err := f.closer.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	s.cache.Close()
	return first
}

// PageCount is the number of pages in the primary file.
func (s *PageStore) PageCount() uint32 {
	return s.files[1].pages
}

// Load returns the parsed page at the given index of the primary file.
func (s *PageStore) Load(pageIndex uint32) (*Page, error) {
	return s.load(1, pageIndex)
}

// LoadByID resolves a (file, page) identity. Unknown file ids fail with
// UnknownFile; for a single-file database only file 1 exists.
func (s *PageStore) LoadByID(id format.PageID) (*Page, error) {
	if _, ok := s.files[id.File]; !ok {
		return nil, errorf(KindUnknownFile, id, 0, "file %d not attached", id.File)
	}
	return s.load(id.File, id.Page)
}

func (s *PageStore) load(fileID uint16, pageIndex uint32) (*Page, error) {
	key := uint64(fileID)<<32 | uint64(pageIndex)
	if p, ok := s.cache.Get(key); ok {
		return p, nil
	}
	f := s.files[fileID]
	if pageIndex >= f.pages {
		return nil, errorf(KindOutOfBounds, format.PageID{File: fileID, Page: pageIndex}, 0,
			"page index %d past end of file (%d pages)", pageIndex, f.pages)
	}
	buf := make([]byte, format.PageSize)
	if _, err := f.r.ReadAt(buf, int64(pageIndex)*format.PageSize); err != nil {
		return nil, newError(KindFileUnavailable, format.PageID{File: fileID, Page: pageIndex}, 0,
			errors.Wrapf(err, "read page %d", pageIndex))
	}
	p, err := NewPage(pageIndex, buf)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, p, format.PageSize)
	return p, nil
}

// IsPFSIndex reports whether a page index hosts a PFS page.
func IsPFSIndex(idx uint32) bool {
	return idx%format.PFSInterval == 1
}

// pfsAllocatedBit marks an allocated page in its PFS byte.
const pfsAllocatedBit = 0x40

// IsAllocated consults the covering PFS page for the allocation status of a
// page. When the PFS page is absent or not a PFS page (minimal images), the
// page is assumed allocated.
func (s *PageStore) IsAllocated(id format.PageID) (bool, error) {
	f, ok := s.files[id.File]
	if !ok {
		return false, errorf(KindUnknownFile, id, 0, "file %d not attached", id.File)
	}
	if id.Page >= f.pages {
		return false, nil
	}
	interval := id.Page / format.PFSInterval
	pfsIdx := interval*format.PFSInterval + 1
	if pfsIdx >= f.pages {
		return true, nil
	}
	pfs, err := s.load(id.File, pfsIdx)
	if err != nil {
		return false, err
	}
	if pfs.Header.Type != format.PageTypePFS {
		return true, nil
	}
	slot := int(id.Page - interval*format.PFSInterval)
	off := format.PageHeaderSize + slot
	if off >= format.PageSize {
		return true, nil
	}
	return pfs.Data[off]&pfsAllocatedBit != 0, nil
}
