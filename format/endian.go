// endian.go - Little-endian byte reading utilities
package format

import (
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned by the page-id and row parsers when a read would
// run past the available bytes. Le16, Le32 and Le64 report their own
// out-of-bounds errors.
var ErrShortRead = errors.New("short read")

func Le16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, errors.New("Le16 out of bounds")
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), nil
}
func Le32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, errors.New("Le32 out of bounds")
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), nil
}
func Le64(b []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(b) {
		return 0, errors.New("Le64 out of bounds")
	}
	return binary.LittleEndian.Uint64(b[off : off+8]), nil
}

// PutLe16 and friends exist for test fixtures that build synthetic pages.
func PutLe16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:off+2], v) }
func PutLe32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:off+4], v) }
func PutLe64(b []byte, off int, v uint64) { binary.LittleEndian.PutUint64(b[off:off+8], v) }
