package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHilbertRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		for d := 0; d < n*n; d++ {
			x, y := D2XY(n, d)
			assert.Equal(t, d, XY2D(n, x, y), "n=%d d=%d", n, d)
		}
	}
}

func TestHilbertXYRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				gx, gy := D2XY(n, XY2D(n, x, y))
				assert.Equal(t, x, gx, "n=%d x=%d y=%d", n, x, y)
				assert.Equal(t, y, gy, "n=%d x=%d y=%d", n, x, y)
			}
		}
	}
}

func TestHilbertDistanceRange(t *testing.T) {
	seen := make(map[int]bool)
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			d := XY2D(16, x, y)
			assert.GreaterOrEqual(t, d, 0)
			assert.Less(t, d, 256)
			assert.False(t, seen[d], "distance %d repeated", d)
			seen[d] = true
		}
	}
}
