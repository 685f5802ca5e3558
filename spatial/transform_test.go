package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongitudeQuadrant(t *testing.T) {
	cases := []struct {
		lon  float64
		want quadrant
	}{
		{0, q0}, {45, q0}, {-45, q0},
		{90, q1}, {135, q1},
		{180, q2}, {-180, q2},
		{-90, q3}, {-135, q3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, longitudeQuadrant(c.lon), "lon=%v", c.lon)
	}
}

func TestCartesian(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     point3D
	}{
		{0, 0, point3D{1, 0, 0}},
		{0, 90, point3D{0, 1, 0}},
		{90, 0, point3D{0, 0, 1}},
		{90, 90, point3D{0, 0, 1}},
		{45, 45, point3D{0.5, 0.5, 0.70710678118654752440}},
	}
	for _, c := range cases {
		got := cartesian(c.lat, c.lon)
		assert.InDelta(t, c.want.X, got.X, 1e-12)
		assert.InDelta(t, c.want.Y, got.Y, 1e-12)
		assert.InDelta(t, c.want.Z, got.Z, 1e-12)
	}
}

func TestLinePlaneIntersect(t *testing.T) {
	p := linePlaneIntersect(0, 0)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 0.0, p.Y, 1e-12)
	assert.InDelta(t, 0.0, p.Z, 1e-12)

	p = linePlaneIntersect(45, 45)
	l := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	assert.InDelta(t, 0.58578643762690497, l, 1e-12)
}

func TestNormCoordinates(t *testing.T) {
	assert.InDelta(t, 0.0, NormLongitude(0), 1e-12)
	assert.InDelta(t, 180.0, NormLongitude(180), 1e-12)
	assert.InDelta(t, -180.0, NormLongitude(-180), 1e-12)
	assert.InDelta(t, 90.0, NormLongitude(-180-90), 1e-12)
	assert.InDelta(t, -90.0, NormLongitude(180+90), 1e-12)
	assert.InDelta(t, -90.0, NormLongitude(180+90+360), 1e-12)

	assert.InDelta(t, 0.0, NormLatitude(0), 1e-12)
	assert.InDelta(t, -90.0, NormLatitude(-90), 1e-12)
	assert.InDelta(t, 90.0, NormLatitude(90), 1e-12)
	assert.InDelta(t, 80.0, NormLatitude(90+10), 1e-12)
	assert.InDelta(t, 80.0, NormLatitude(90+10+360), 1e-12)
	assert.InDelta(t, -80.0, NormLatitude(-90-10), 1e-12)
	assert.InDelta(t, -80.0, NormLatitude(-90-10-360), 1e-12)
	assert.InDelta(t, -80.0, NormLatitude(-90-10+360), 1e-12)
}

func TestPointQuadrant(t *testing.T) {
	cases := []struct {
		p    Point2D
		want quadrant
	}{
		{Point2D{0, 0}, q1},
		{Point2D{0, 0.25}, q2},
		{Point2D{0.5, 0.375}, q3},
		{Point2D{0.5, 0.5}, q3},
		{Point2D{1.0, 0.25}, q0},
		{Point2D{1.0, 0.75}, q0},
		{Point2D{1.0, 1.0}, q0},
		{Point2D{0.5, 1.0}, q1},
		{Point2D{0, 0.75}, q2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pointQuadrant(c.p), "p=%v", c.p)
	}
}

func TestProjectGlobeBoundary(t *testing.T) {
	// Longitude 0 is q0's centre line: y sits exactly on the north pole's
	// row (0.75).
	p2 := ProjectGlobe(Point{Lat: 45, Lon: 0})
	assert.InDelta(t, 0.75, p2.Y, 1e-9)
	assert.InDelta(t, 0.7928932188134524, p2.X, 1e-9)

	back := ReverseProjectGlobe(p2)
	assert.InDelta(t, 45.0, back.Lat, 1e-9)
	assert.InDelta(t, 0.0, back.Lon, 1e-9)
}

func TestKnownCells(t *testing.T) {
	// Reference cell ids for fixed points.
	cases := []struct {
		p    Point
		want Cell
	}{
		{Point{45, 0}, MakeCell(160, 236, 255, 239)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MakeCellAt(c.p, DefaultGrid), "p=%v", c.p)
	}
}

func TestProjectReverseRoundTrip(t *testing.T) {
	// Full-grid sweep, poles and the antimeridian excepted (longitude
	// collapses there).
	const sx, sy = 16 * 4, 16 * 2
	dy := 180.0 / sy
	dx := 360.0 / sx
	for y := -90.0 + dy; y < 90.0; y += dy {
		for x := -180.0 + dx; x < 180.0; x += dx {
			p2 := ProjectGlobe(Point{Lat: y, Lon: x})
			require.GreaterOrEqual(t, p2.X, 0.0)
			require.LessOrEqual(t, p2.X, 1.0)
			require.GreaterOrEqual(t, p2.Y, 0.0)
			require.LessOrEqual(t, p2.Y, 1.0)
			back := ReverseProjectGlobe(p2)
			require.InDelta(t, y, back.Lat, 1e-9, "lat=%v lon=%v", y, x)
			require.InDelta(t, x, back.Lon, 1e-9, "lat=%v lon=%v", y, x)
		}
	}
}

func TestReverseAtPoles(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		p2 := ProjectGlobe(Point{Lat: lat, Lon: 77})
		back := ReverseProjectGlobe(p2)
		assert.InDelta(t, lat, back.Lat, 1e-9)
		assert.InDelta(t, 0.0, back.Lon, 1e-9)
	}
}

func TestGlobeToCellDepth(t *testing.T) {
	for _, p := range []Point{
		{48.7139, 44.4984},
		{55.7975, 49.2194},
		{0, -86},
		{45, -135},
		{0, 0},
		{90, 0},
		{-90, 0},
		{0, 180},
	} {
		c := MakeCellAt(p, DefaultGrid)
		assert.Equal(t, uint8(CellDepth), c.Depth, "p=%v", p)
	}
}

func TestCellPointRoundTrip(t *testing.T) {
	// A cell's corner point must encode back to the same cell.
	for _, p := range []Point{
		{55.7831, 37.3567},
		{47.2629, 39.7111},
		{-33.9, 18.4},
		{0.5, 0.5},
	} {
		c := MakeCellAt(p, DefaultGrid)
		corner := CellPoint(c, DefaultGrid)
		c2 := GlobeToCell(corner, DefaultGrid)
		assert.Equal(t, c, c2, "p=%v", p)
	}
}

func TestHaversine(t *testing.T) {
	p1 := Point{}
	p2 := Point{}
	assert.InDelta(t, 0.0, Distance(p1, p2), 1e-9)

	p2.Lat = 90.0 / 16
	h1 := Haversine(p1, p2, EarthRadius)
	h2 := p2.Lat * degToRad * EarthRadius
	assert.InDelta(t, h2, h1, 1e-6)

	p2.Lat = 90
	h1 = Haversine(p1, p2, EarthRadius)
	h2 = p2.Lat * degToRad * EarthRadius
	assert.InDelta(t, h2, h1, 1e-6)
}

func TestDestination(t *testing.T) {
	quarter := EarthRadius * math.Pi / 2
	eighth := quarter / 2
	start := Point{Lat: 0, Lon: 0}

	d := Destination(start, quarter, 0)
	assert.InDelta(t, 90.0, d.Lat, 1e-9)

	d = Destination(start, quarter, 360)
	assert.InDelta(t, 90.0, d.Lat, 1e-9)

	d = Destination(start, eighth, 0)
	assert.InDelta(t, 45.0, d.Lat, 1e-9)
	assert.InDelta(t, 0.0, d.Lon, 1e-9)

	d = Destination(start, eighth, 90)
	assert.InDelta(t, 0.0, d.Lat, 1e-9)
	assert.InDelta(t, 45.0, d.Lon, 1e-9)

	d = Destination(start, eighth, 180)
	assert.InDelta(t, -45.0, d.Lat, 1e-9)

	d = Destination(start, eighth, 270)
	assert.InDelta(t, 0.0, d.Lat, 1e-9)
	assert.InDelta(t, -45.0, d.Lon, 1e-9)

	// Through the pole and down the far side.
	d = Destination(Point{Lat: 90, Lon: 0}, eighth, 0)
	assert.InDelta(t, 45.0, d.Lat, 1e-9)

	// Zero distance is the identity.
	d = Destination(Point{Lat: 10, Lon: 20}, 0, 123)
	assert.Equal(t, Point{Lat: 10, Lon: 20}, d)
}
