// build.go - Row image assembly for fixtures and synthetic pages
package record

import "encoding/binary"

// Build assembles a row image: 4-byte head, fixed bytes, column count, NULL
// bitmap over nulls, then the variable trailer. len(nulls) is the total
// column count. vars may be nil for a fixed-only row.
func Build(fixed []byte, nulls []bool, vars [][]byte) []byte {
	statusA := uint8(StatusHasNullBitmap)
	if len(vars) > 0 {
		statusA |= StatusHasVarColumns
	}
	fixedLen := 4 + len(fixed)
	bitmap := make([]byte, (len(nulls)+7)/8)
	for i, n := range nulls {
		if n {
			bitmap[i/8] |= 1 << (uint(i) % 8)
		}
	}
	out := make([]byte, 0, fixedLen+2+len(bitmap)+2+len(vars)*2)
	out = append(out, statusA, 0)
	out = binary.LittleEndian.AppendUint16(out, uint16(fixedLen))
	out = append(out, fixed...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(nulls)))
	out = append(out, bitmap...)
	if len(vars) > 0 {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(vars)))
		aryOff := len(out)
		for range vars {
			out = append(out, 0, 0)
		}
		for i, v := range vars {
			out = append(out, v...)
			binary.LittleEndian.PutUint16(out[aryOff+i*2:], uint16(len(out)))
		}
	}
	return out
}
