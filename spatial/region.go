// region.go - Geographic range to cell-set cover
package spatial

import (
	"fmt"
)

// EdgeN is the per-edge subdivision of the contour sampling.
const EdgeN = 16

// SpatialRect is a geographic rectangle. MinLon may exceed MaxLon only
// before antimeridian splitting.
type SpatialRect struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (rc SpatialRect) IsValid() bool {
	return rc.MinLat < rc.MaxLat && rc.MinLon < rc.MaxLon &&
		rc.MinLat >= -90 && rc.MaxLat <= 90 &&
		rc.MinLon >= -180 && rc.MaxLon <= 180
}

// corners in ring order.
func (rc SpatialRect) corner(i int) Point {
	switch i {
	case 0:
		return Point{Lat: rc.MinLat, Lon: rc.MinLon}
	case 1:
		return Point{Lat: rc.MinLat, Lon: rc.MaxLon}
	case 2:
		return Point{Lat: rc.MaxLat, Lon: rc.MaxLon}
	default:
		return Point{Lat: rc.MaxLat, Lon: rc.MinLon}
	}
}

// CellRange covers the circle (center, radius meters) with cells: the
// bounding rectangle from destination points at the four cardinal bearings,
// split at the antimeridian when needed. A rectangle reaching over a pole
// widens to the full longitude span below the pole; the excess is meant to
// be filtered by an exact distance check per row.
func CellRange(center Point, radiusMeters float64, grid Grid) (*CellSet, error) {
	set := NewCellSet()
	if radiusMeters <= 0 {
		set.Insert(MakeCellAt(center, grid))
		return set, nil
	}
	deg := radToDeg * radiusMeters / earthRadiusAt(center.Lat, false)
	crossNorth := center.Lat+deg > 90
	crossSouth := center.Lat-deg < -90
	if crossNorth && crossSouth {
		// Whole globe.
		for b := 0; b < 256; b++ {
			set.InsertPrefix(MakeCell(uint8(b), 0, 0, 0), 1)
		}
		return set, nil
	}
	var rects []SpatialRect
	switch {
	case crossNorth:
		rects = append(rects, SpatialRect{
			MinLat: center.Lat - deg, MaxLat: 90,
			MinLon: -180, MaxLon: 180,
		})
	case crossSouth:
		rects = append(rects, SpatialRect{
			MinLat: -90, MaxLat: center.Lat + deg,
			MinLon: -180, MaxLon: 180,
		})
	default:
		lh := Destination(center, radiusMeters, 270)
		rh := Destination(center, radiusMeters, 90)
		rc := SpatialRect{
			MinLat: center.Lat - deg, MaxLat: center.Lat + deg,
			MinLon: lh.Lon, MaxLon: rh.Lon,
		}
		if rc.MinLon > rc.MaxLon { // crosses the antimeridian
			rects = append(rects,
				SpatialRect{MinLat: rc.MinLat, MaxLat: rc.MaxLat, MinLon: rc.MinLon, MaxLon: 180},
				SpatialRect{MinLat: rc.MinLat, MaxLat: rc.MaxLat, MinLon: -180, MaxLon: rc.MaxLon})
		} else {
			rects = append(rects, rc)
		}
	}
	for _, rc := range rects {
		if err := CellRectInto(set, rc, grid); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// CellRect covers a geographic rectangle with cells.
func CellRect(rc SpatialRect, grid Grid) (*CellSet, error) {
	set := NewCellSet()
	if err := CellRectInto(set, rc, grid); err != nil {
		return nil, err
	}
	return set, nil
}

// CellRectInto samples the rectangle's contour, projects it, and recurses
// through the grid levels inserting every depth-4 cell the projected polygon
// touches; sub-cells wholly inside the polygon enter as full prefixes.
func CellRectInto(set *CellSet, rc SpatialRect, grid Grid) error {
	if !rc.IsValid() {
		return fmt.Errorf("invalid spatial rect [%g..%g]x[%g..%g]", rc.MinLat, rc.MaxLat, rc.MinLon, rc.MaxLon)
	}
	poly := buildContour(rc)
	bbox := contourBBox(poly)
	recurseCells(set, poly, bbox, Cell{}, 1, Point2D{}, 1.0, grid)
	return nil
}

// buildContour samples EdgeN points per rectangle edge and projects each.
func buildContour(rc SpatialRect) []Point2D {
	poly := make([]Point2D, 0, EdgeN*4)
	p1 := rc.corner(0)
	for i := 0; i < 4; i++ {
		p2 := rc.corner((i + 1) % 4)
		dx := p2.Lon - p1.Lon
		dy := p2.Lat - p1.Lat
		for k := 0; k < EdgeN; k++ {
			poly = append(poly, ProjectGlobe(Point{
				Lat: p1.Lat + float64(k)*dy/EdgeN,
				Lon: p1.Lon + float64(k)*dx/EdgeN,
			}))
		}
		p1 = p2
	}
	return poly
}

func contourBBox(poly []Point2D) Rect2D {
	bb := Rect2D{LT: poly[0], RB: poly[0]}
	for _, p := range poly[1:] {
		bb.LT.X = min2(bb.LT.X, p.X)
		bb.LT.Y = min2(bb.LT.Y, p.Y)
		bb.RB.X = max2(bb.RB.X, p.X)
		bb.RB.Y = max2(bb.RB.Y, p.Y)
	}
	return bb
}

// recurseCells tests each cell of the current grid level against the
// polygon. origin/size describe the parent cell's unit-square extent.
func recurseCells(set *CellSet, poly []Point2D, bbox Rect2D, prefix Cell, depth uint8, origin Point2D, size float64, grid Grid) {
	g := grid[depth-1]
	step := size / float64(g)
	for y := 0; y < g; y++ {
		for x := 0; x < g; x++ {
			cellRC := Rect2D{
				LT: Point2D{X: origin.X + float64(x)*step, Y: origin.Y + float64(y)*step},
				RB: Point2D{X: origin.X + float64(x+1)*step, Y: origin.Y + float64(y+1)*step},
			}
			if !cellRC.Overlaps(bbox) {
				continue
			}
			res := Contains(poly, cellRC)
			if res == ContainsNone {
				continue
			}
			c := prefix
			c.ID[depth-1] = uint8(XY2D(g, x, y))
			switch {
			case res == ContainsRectInside:
				set.InsertPrefix(c, depth)
			case depth == CellDepth:
				c.Depth = CellDepth
				set.Insert(c)
			default:
				recurseCells(set, poly, bbox, c, depth+1, cellRC.LT, step, grid)
			}
		}
	}
}
