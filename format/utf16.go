package format

import "unicode/utf16"

// DecodeNChar converts UTF-16LE bytes (no BOM) to a string. A trailing odd
// byte is ignored.
func DecodeNChar(b []byte) string {
	n := len(b) / 2
	u := make([]uint16, n)
	for i := 0; i < n; i++ {
		u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(u))
}

// EncodeNChar converts a string to UTF-16LE bytes (test fixtures).
func EncodeNChar(s string) []byte {
	u := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(u))
	for i, c := range u {
		b[2*i] = byte(c)
		b[2*i+1] = byte(c >> 8)
	}
	return b
}
