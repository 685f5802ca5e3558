// transform.go - Globe to unit-square projection and cell encoding
//
// The sphere is split into four longitude quadrants and two hemispheres.
// A point is projected onto the plane x+y+z=1 through the origin ray, the
// in-triangle coordinates are scaled per quadrant, and the result lands in
// a quadrant-specific sub-rectangle of the unit square. The inverse applies
// the exact algebraic reverse of each step.
package spatial

import "math"

type quadrant int

const (
	q0 quadrant = iota // [-45..45] longitude
	q1                 // (45..135]
	q2                 // (135..180][-180..-135)
	q3                 // [-135..-45)
)

const fepsilon = 1e-12

var (
	e1     = point3D{1, 0, 0}
	planeN = normalize3(point3D{1, 1, 1})

	// In-triangle basis: px runs e1->e2, py runs mid(e1,e2)->e3.
	basisPX = normalize3(point3D{-1, 1, 0})
	basisPY = normalize3(point3D{-0.5, -0.5, 1})

	lenLX = math.Sqrt(2.0)
	lenLY = math.Sqrt(1.5)

	scale02 = Point2D{X: 0.5 / lenLX, Y: 0.5 / lenLY}
	scale13 = Point2D{X: 1 / lenLX, Y: 0.25 / lenLY}

	atan12 = math.Atan2(1, 2)
)

func normalize3(p point3D) point3D {
	l := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	return point3D{p.X / l, p.Y / l, p.Z / l}
}

func dot3(a, b point3D) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func mul3(p point3D, k float64) point3D { return point3D{p.X * k, p.Y * k, p.Z * k} }

func add3(a, b point3D) point3D { return point3D{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func longitudeQuadrant(x float64) quadrant {
	if x >= 0 {
		if x <= 45 {
			return q0
		}
		if x <= 135 {
			return q1
		}
	} else {
		if x >= -45 {
			return q0
		}
		if x >= -135 {
			return q3
		}
	}
	return q2
}

// longitudeMeridian maps a longitude to its distance from the quadrant's
// western meridian, in [0, 90].
func longitudeMeridian(x float64, q quadrant) float64 {
	if x >= 0 {
		switch q {
		case q0:
			return x + 45
		case q1:
			return x - 45
		default:
			return x - 135
		}
	}
	switch q {
	case q0:
		return x + 45
	case q3:
		return x + 135
	default:
		return x + 180 + 45
	}
}

func revertLongitudeMeridian(x float64, q quadrant) float64 {
	switch q {
	case q0:
		return x - 45
	case q1:
		return x + 45
	case q2:
		if x <= 45 {
			return x + 135
		}
		return x - 180 - 45
	default:
		return x - 135
	}
}

// cartesian returns the 3-D point on the unit sphere.
func cartesian(lat, lon float64) point3D {
	l := math.Cos(lat * degToRad)
	return point3D{
		X: l * math.Cos(lon*degToRad),
		Y: l * math.Sin(lon*degToRad),
		Z: math.Sin(lat * degToRad),
	}
}

func reverseCartesian(p point3D) Point {
	var s Point
	switch {
	case p.Z >= 1-fepsilon:
		s.Lat = 90
	case p.Z <= -1+fepsilon:
		s.Lat = -90
	default:
		s.Lat = math.Asin(p.Z) * radToDeg
	}
	s.Lon = math.Atan2(p.Y, p.X) * radToDeg
	return s
}

// linePlaneIntersect intersects the origin ray through (lat, lon) with the
// plane x+y+z=1; lat and lon must lie in [0, 90].
func linePlaneIntersect(lat, lon float64) point3D {
	ray := cartesian(lat, lon)
	nu := dot3(ray, planeN)
	return mul3(ray, planeN.X/nu)
}

func reverseLinePlaneIntersect(p point3D) Point {
	return reverseCartesian(normalize3(p))
}

type hemisphere bool

const (
	hemiNorth hemisphere = true
	hemiSouth hemisphere = false
)

// scalePlaneIntersect maps a plane point into the unit square: in-triangle
// coordinates, quadrant scaling, then the per-quadrant placement table.
func scalePlaneIntersect(p3 point3D, q quadrant, hemi hemisphere) Point2D {
	v3 := point3D{p3.X - e1.X, p3.Y - e1.Y, p3.Z - e1.Z}
	p2 := Point2D{X: dot3(v3, basisPX), Y: dot3(v3, basisPY)}
	if q == q1 || q == q3 {
		p2.X *= scale13.X
		p2.Y *= scale13.Y
	} else {
		p2.X *= scale02.X
		p2.Y *= scale02.Y
	}
	var ret Point2D
	if hemi == hemiNorth {
		switch q {
		case q0:
			ret.X = 1 - p2.Y
			ret.Y = 0.5 + p2.X
		case q1:
			ret.X = 1 - p2.X
			ret.Y = 1 - p2.Y
		case q2:
			ret.X = p2.Y
			ret.Y = 1 - p2.X
		default:
			ret.X = p2.X
			ret.Y = 0.5 + p2.Y
		}
	} else {
		switch q {
		case q0:
			ret.X = 1 - p2.Y
			ret.Y = 0.5 - p2.X
		case q1:
			ret.X = 1 - p2.X
			ret.Y = p2.Y
		case q2:
			ret.X = p2.Y
			ret.Y = p2.X
		default:
			ret.X = p2.X
			ret.Y = 0.5 - p2.Y
		}
	}
	return ret
}

func reverseScalePlaneIntersect(ret Point2D, q quadrant, hemi hemisphere) point3D {
	var p2 Point2D
	if hemi == hemiNorth {
		switch q {
		case q0:
			p2.Y = 1 - ret.X
			p2.X = ret.Y - 0.5
		case q1:
			p2.X = 1 - ret.X
			p2.Y = 1 - ret.Y
		case q2:
			p2.Y = ret.X
			p2.X = 1 - ret.Y
		default:
			p2.X = ret.X
			p2.Y = ret.Y - 0.5
		}
	} else {
		switch q {
		case q0:
			p2.Y = 1 - ret.X
			p2.X = 0.5 - ret.Y
		case q1:
			p2.X = 1 - ret.X
			p2.Y = ret.Y
		case q2:
			p2.Y = ret.X
			p2.X = ret.Y
		default:
			p2.X = ret.X
			p2.Y = 0.5 - ret.Y
		}
	}
	if q == q1 || q == q3 {
		p2.X /= scale13.X
		p2.Y /= scale13.Y
	} else {
		p2.X /= scale02.X
		p2.Y /= scale02.Y
	}
	return add3(e1, add3(mul3(basisPX, p2.X), mul3(basisPY, p2.Y)))
}

// ProjectGlobe maps a geographic point into the unit square.
func ProjectGlobe(s Point) Point2D {
	q := longitudeQuadrant(s.Lon)
	meridian := longitudeMeridian(s.Lon, q)
	north := s.Lat >= 0
	lat := s.Lat
	if !north {
		lat = -lat
	}
	p3 := linePlaneIntersect(lat, meridian)
	hemi := hemiSouth
	if north {
		hemi = hemiNorth
	}
	ret := scalePlaneIntersect(p3, q, hemi)
	// Rounding can leave edge points a hair outside the square.
	ret.X = math.Min(1, math.Max(0, ret.X))
	ret.Y = math.Min(1, math.Max(0, ret.Y))
	return ret
}

// northHemisphere classifies a projected point; the north half occupies
// y >= 0.5.
func northHemisphere(p Point2D) hemisphere {
	return hemisphere(p.Y >= 0.5)
}

// pointQuadrant recovers the longitude quadrant of a projected point from
// its polar angle around the hemisphere's pole point.
func pointQuadrant(p Point2D) quadrant {
	north := p.Y >= 0.5
	poleY := 0.25
	if north {
		poleY = 0.75
	}
	arg := math.Atan2(p.Y-poleY, p.X-0.5)
	if !north {
		arg = -arg
	}
	if arg >= 0 {
		if arg <= atan12 {
			return q0
		}
		if arg <= math.Pi-atan12 {
			return q1
		}
	} else {
		if arg >= -atan12 {
			return q0
		}
		if arg >= atan12-math.Pi {
			return q3
		}
	}
	return q2
}

// ReverseProjectGlobe is the exact inverse of ProjectGlobe. At the poles the
// longitude collapses to 0.
func ReverseProjectGlobe(p2 Point2D) Point {
	q := pointQuadrant(p2)
	hemi := northHemisphere(p2)
	p3 := reverseScalePlaneIntersect(p2, q, hemi)
	ret := reverseLinePlaneIntersect(p3)
	if hemi != hemiNorth {
		ret.Lat = -ret.Lat
	}
	if math.Abs(math.Abs(ret.Lat)-90) < fepsilon {
		ret.Lon = 0
	} else {
		ret.Lon = revertLongitudeMeridian(ret.Lon, q)
	}
	return ret
}

// GlobeToCell encodes a unit-square point as a full-depth cell: at each
// level the integer grid cell becomes a Hilbert distance and the residual
// fraction feeds the next level.
func GlobeToCell(globe Point2D, grid Grid) Cell {
	var cell Cell
	frac := globe
	for k := 0; k < CellDepth; k++ {
		g := grid[k]
		hx := clampGrid(int(float64(g)*frac.X), g)
		hy := clampGrid(int(float64(g)*frac.Y), g)
		cell.ID[k] = uint8(XY2D(g, hx, hy))
		frac = Point2D{
			X: float64(g)*frac.X - float64(hx),
			Y: float64(g)*frac.Y - float64(hy),
		}
	}
	cell.Depth = CellDepth
	return cell
}

func clampGrid(v, g int) int {
	if v < 0 {
		return 0
	}
	if v > g-1 {
		return g - 1
	}
	return v
}

// MakeCellAt encodes a geographic point directly.
func MakeCellAt(p Point, grid Grid) Cell {
	return GlobeToCell(ProjectGlobe(p), grid)
}

// CellPoint returns the lower-left unit-square corner of a cell.
func CellPoint(cell Cell, grid Grid) Point2D {
	var pos Point2D
	f := 1.0
	for k := 0; k < CellDepth; k++ {
		f /= float64(grid[k])
		x, y := D2XY(grid[k], int(cell.ID[k]))
		pos.X += float64(x) * f
		pos.Y += float64(y) * f
	}
	return pos
}

// CellToPoint maps a cell's corner back to geography.
func CellToPoint(cell Cell, grid Grid) Point {
	return ReverseProjectGlobe(CellPoint(cell, grid))
}

// QuadrantGrid returns the extent, in grid-0 cells, of a quadrant's
// sub-rectangle of the unit square.
func QuadrantGrid(q int, grid int) (int, int) {
	if q%2 != 0 {
		return grid, grid / 4
	}
	return grid / 2, grid / 2
}
