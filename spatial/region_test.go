package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellRangeZeroRadius(t *testing.T) {
	center := Point{Lat: 55.7831, Lon: 37.3567}
	set, err := CellRange(center, 0, DefaultGrid)
	require.NoError(t, err)
	cells := set.Cells()
	require.Len(t, cells, 1)
	assert.Equal(t, MakeCellAt(center, DefaultGrid), cells[0])
}

func TestCellRangeCoversCenter(t *testing.T) {
	center := Point{Lat: 55.7831, Lon: 37.3567}
	set, err := CellRange(center, 10000, DefaultGrid)
	require.NoError(t, err)
	assert.True(t, set.Contains(MakeCellAt(center, DefaultGrid)))

	// Points inside the radius are covered too.
	for _, bearing := range []float64{0, 90, 180, 270, 45} {
		p := Destination(center, 5000, bearing)
		assert.True(t, set.Contains(MakeCellAt(p, DefaultGrid)), "bearing=%v", bearing)
	}
}

func TestCellRangeExcludesFarPoints(t *testing.T) {
	center := Point{Lat: 55.7831, Lon: 37.3567}
	set, err := CellRange(center, 1000, DefaultGrid)
	require.NoError(t, err)
	far := Point{Lat: -33.9, Lon: 18.4}
	assert.False(t, set.Contains(MakeCellAt(far, DefaultGrid)))
}

func TestCellRangeOverPole(t *testing.T) {
	center := Point{Lat: 89.5, Lon: 10}
	set, err := CellRange(center, 200000, DefaultGrid)
	require.NoError(t, err)
	// The cover reaches around the pole: the same latitude on the far
	// meridian is within 200 km of the center.
	opposite := Point{Lat: 89.5, Lon: -170}
	assert.True(t, set.Contains(MakeCellAt(opposite, DefaultGrid)))
	assert.True(t, set.Contains(MakeCellAt(center, DefaultGrid)))
}

func TestCellRangeAntimeridian(t *testing.T) {
	center := Point{Lat: 0, Lon: 179.9}
	set, err := CellRange(center, 50000, DefaultGrid)
	require.NoError(t, err)
	assert.True(t, set.Contains(MakeCellAt(center, DefaultGrid)))
	east := Point{Lat: 0, Lon: -179.9}
	assert.True(t, set.Contains(MakeCellAt(east, DefaultGrid)))
}

func TestCellRectCoversInterior(t *testing.T) {
	rc := SpatialRect{MinLat: 50, MaxLat: 52, MinLon: 30, MaxLon: 33}
	set, err := CellRect(rc, DefaultGrid)
	require.NoError(t, err)
	for _, p := range []Point{
		{51, 31}, {50.1, 30.1}, {51.9, 32.9},
	} {
		assert.True(t, set.Contains(MakeCellAt(p, DefaultGrid)), "p=%v", p)
	}
	assert.False(t, set.Contains(MakeCellAt(Point{Lat: 40, Lon: 31}, DefaultGrid)))
}

func TestCellRectRejectsInvalid(t *testing.T) {
	_, err := CellRect(SpatialRect{MinLat: 10, MaxLat: 5, MinLon: 0, MaxLon: 1}, DefaultGrid)
	assert.Error(t, err)
}
