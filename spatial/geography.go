// geography.go - Tagged geography payloads stored in CLR columns
package spatial

import (
	"encoding/binary"
	"fmt"
	"math"
)

// GeoType tags a geography payload.
type GeoType uint16

const (
	GeoNull         GeoType = 0
	GeoPoint        GeoType = 3073 // 0x0C01
	GeoMultiPolygon GeoType = 1025 // 0x0401
	GeoLineString   GeoType = 5121 // 0x1401
)

// Payload sizes: 6-byte head (SRID + tag), points of 16 bytes each.
const (
	geoHeadSize         = 6
	geoPointSize        = 22
	geoMultiPolygonSize = 26
	geoLineStringSize   = 38
)

// Geography is a decoded geography column payload. Points are stored on
// disk as (lat, lon) float64 pairs.
type Geography struct {
	SRID   uint32
	Type   GeoType
	points []Point
}

// GeographyType classifies a raw payload without fully decoding it.
func GeographyType(b []byte) GeoType {
	if len(b) < geoHeadSize {
		return GeoNull
	}
	tag := GeoType(binary.LittleEndian.Uint16(b[4:6]))
	switch {
	case len(b) == geoPointSize && tag == GeoPoint:
		return GeoPoint
	case len(b) >= geoMultiPolygonSize && tag == GeoMultiPolygon:
		return GeoMultiPolygon
	case len(b) >= geoLineStringSize && tag == GeoLineString:
		return GeoLineString
	}
	return GeoNull
}

// ParseGeography decodes a geography payload.
func ParseGeography(b []byte) (*Geography, error) {
	t := GeographyType(b)
	if t == GeoNull {
		return nil, fmt.Errorf("unknown geography payload (%d bytes)", len(b))
	}
	g := &Geography{
		SRID: binary.LittleEndian.Uint32(b[0:4]),
		Type: t,
	}
	switch t {
	case GeoPoint:
		g.points = []Point{parseGeoPoint(b[geoHeadSize:])}
	case GeoLineString:
		g.points = []Point{
			parseGeoPoint(b[geoHeadSize:]),
			parseGeoPoint(b[geoHeadSize+16:]),
		}
	case GeoMultiPolygon:
		n := int(binary.LittleEndian.Uint32(b[geoHeadSize : geoHeadSize+4]))
		need := geoHeadSize + 4 + n*16
		if n < 0 || len(b) < need {
			return nil, fmt.Errorf("multipolygon: %d points but %d bytes", n, len(b))
		}
		g.points = make([]Point, n)
		for i := 0; i < n; i++ {
			g.points[i] = parseGeoPoint(b[geoHeadSize+4+i*16:])
		}
	}
	return g, nil
}

func parseGeoPoint(b []byte) Point {
	return Point{
		Lat: math.Float64frombits(binary.LittleEndian.Uint64(b[0:8])),
		Lon: math.Float64frombits(binary.LittleEndian.Uint64(b[8:16])),
	}
}

// Points returns the payload's points in storage order.
func (g *Geography) Points() []Point { return g.points }

// RingNum counts the rings of a multipolygon: a ring closes when its first
// point repeats.
func (g *Geography) RingNum() int {
	if g.Type != GeoMultiPolygon || len(g.points) < 2 {
		return 0
	}
	count := 0
	p1 := 0
	for p2 := 1; p2 < len(g.points); p2++ {
		if g.points[p1] == g.points[p2] {
			count++
			p1 = p2 + 1
			p2 = p1
			if p2 >= len(g.points) {
				break
			}
		}
	}
	return count
}

// STContains reports whether the geography contains the point: exact match
// for points, ray casting per ring for multipolygons, false for linestrings.
func (g *Geography) STContains(p Point) bool {
	switch g.Type {
	case GeoPoint:
		return g.points[0] == p
	case GeoMultiPolygon:
		return g.multiPolygonContains(p)
	}
	return false
}

func (g *Geography) multiPolygonContains(p Point) bool {
	pt := Point2D{X: p.Lon, Y: p.Lat}
	start := 0
	for i := 1; i < len(g.points); i++ {
		if g.points[i] == g.points[start] {
			ring := make([]Point2D, 0, i-start)
			for _, rp := range g.points[start:i] {
				ring = append(ring, Point2D{X: rp.Lon, Y: rp.Lat})
			}
			if PolyContains(ring, pt) {
				return true
			}
			start = i + 1
			i = start
			if i >= len(g.points) {
				break
			}
		}
	}
	return false
}

// MinDistance returns the smallest great-circle distance in meters from p
// to any stored point.
func (g *Geography) MinDistance(p Point) float64 {
	best := math.Inf(1)
	for _, q := range g.points {
		if d := Distance(p, q); d < best {
			best = d
		}
	}
	return best
}
