// mathutil.go - Planar intersection helpers for the cell-cover recursion
package spatial

// Rect2D is an axis-aligned rectangle in the unit square, LT the lower-left
// corner, RB the upper-right.
type Rect2D struct {
	LT Point2D
	RB Point2D
}

func (rc Rect2D) PointInside(p Point2D) bool {
	return p.X >= rc.LT.X && p.X <= rc.RB.X && p.Y >= rc.LT.Y && p.Y <= rc.RB.Y
}

func (rc Rect2D) Overlaps(o Rect2D) bool {
	return rc.LT.X <= o.RB.X && o.LT.X <= rc.RB.X &&
		rc.LT.Y <= o.RB.Y && o.LT.Y <= rc.RB.Y
}

// LineIntersect reports whether segments (a,b) and (c,d) intersect.
func LineIntersect(a, b, c, d Point2D) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

func cross(a, b, p Point2D) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func onSegment(a, b, p Point2D) bool {
	return min2(a.X, b.X) <= p.X && p.X <= max2(a.X, b.X) &&
		min2(a.Y, b.Y) <= p.Y && p.Y <= max2(a.Y, b.Y)
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// LineRectIntersect reports whether segment (a,b) crosses or touches rc.
func LineRectIntersect(a, b Point2D, rc Rect2D) bool {
	if rc.PointInside(a) || rc.PointInside(b) {
		return true
	}
	lt := rc.LT
	rb := rc.RB
	lb := Point2D{X: lt.X, Y: rb.Y}
	rt := Point2D{X: rb.X, Y: lt.Y}
	return LineIntersect(a, b, lt, rt) ||
		LineIntersect(a, b, rt, rb) ||
		LineIntersect(a, b, rb, lb) ||
		LineIntersect(a, b, lb, lt)
}

// PolyContains reports whether p lies inside the closed polygon by ray
// casting.
func PolyContains(poly []Point2D, p Point2D) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ContainsResult classifies a polygon against a rectangle.
type ContainsResult int

const (
	ContainsNone       ContainsResult = iota // disjoint
	ContainsIntersect                        // boundaries cross
	ContainsRectInside                       // rectangle wholly inside polygon
	ContainsPolyInside                       // polygon wholly inside rectangle
)

// Contains classifies the closed contour poly against rc.
func Contains(poly []Point2D, rc Rect2D) ContainsResult {
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		if LineRectIntersect(poly[j], poly[i], rc) {
			return ContainsIntersect
		}
		j = i
	}
	if len(poly) > 0 && rc.PointInside(poly[0]) {
		return ContainsPolyInside
	}
	if PolyContains(poly, rc.LT) {
		return ContainsRectInside
	}
	return ContainsNone
}
