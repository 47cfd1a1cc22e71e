// Package geometry provides the 2D primitives used for floor-plan analysis:
// polygon area, centroid, point containment, and ring repair.
package geometry

import "math"

// Point represents a 2D point in drawing coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Polygon is a closed ring of vertices. The closing edge from the last
// vertex back to the first is implicit.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// NewPolygon creates a polygon, dropping consecutive duplicate vertices
// and an explicit closing vertex if present.
func NewPolygon(pts []Point) Polygon {
	clean := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(clean) > 0 && clean[len(clean)-1] == p {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) > 1 && clean[0] == clean[len(clean)-1] {
		clean = clean[:len(clean)-1]
	}
	return Polygon{Vertices: clean}
}

// SignedArea returns the shoelace area; positive for counter-clockwise rings
func (pg Polygon) SignedArea() float64 {
	n := len(pg.Vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := pg.Vertices[i]
		b := pg.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the absolute polygon area in raw drawing units squared
func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// Centroid returns the geometric centroid. For degenerate (zero-area)
// rings it falls back to the vertex mean.
func (pg Polygon) Centroid() Point {
	n := len(pg.Vertices)
	if n == 0 {
		return Point{}
	}
	a := pg.SignedArea()
	if a == 0 {
		var c Point
		for _, p := range pg.Vertices {
			c.X += p.X
			c.Y += p.Y
		}
		c.X /= float64(n)
		c.Y /= float64(n)
		return c
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		p := pg.Vertices[i]
		q := pg.Vertices[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Contains checks whether a point lies strictly inside the polygon using
// ray casting. Points on an edge are not guaranteed to be inside.
func (pg Polygon) Contains(p Point) bool {
	n := len(pg.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := pg.Vertices[i]
		b := pg.Vertices[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// IsSimple reports whether no two non-adjacent edges of the ring cross
func (pg Polygon) IsSimple() bool {
	_, _, found := pg.firstCrossing()
	return !found
}

// Repair attempts to fix a self-intersecting ring by splitting it at each
// crossing and keeping the larger loop, mirroring the usual zero-width
// buffer fixup. The second return value is false if the ring could not be
// made simple.
func (pg Polygon) Repair() (Polygon, bool) {
	out := NewPolygon(pg.Vertices)
	if len(out.Vertices) < 3 {
		return out, false
	}
	// Each split strictly shrinks the ring, so this terminates.
	for attempt := 0; attempt <= len(pg.Vertices); attempt++ {
		i, j, found := out.firstCrossing()
		if !found {
			return out, len(out.Vertices) >= 3 && out.Area() > 0
		}
		out = out.splitAt(i, j)
		if len(out.Vertices) < 3 {
			return out, false
		}
	}
	return out, false
}

// firstCrossing returns the indices of the first pair of non-adjacent
// edges that properly intersect.
func (pg Polygon) firstCrossing() (int, int, bool) {
	n := len(pg.Vertices)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			a1 := pg.Vertices[i]
			a2 := pg.Vertices[(i+1)%n]
			b1 := pg.Vertices[j]
			b2 := pg.Vertices[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// splitAt cuts the ring at the crossing between edges i and j and returns
// the larger of the two resulting loops.
func (pg Polygon) splitAt(i, j int) Polygon {
	n := len(pg.Vertices)
	ip, ok := segmentIntersection(
		pg.Vertices[i], pg.Vertices[(i+1)%n],
		pg.Vertices[j], pg.Vertices[(j+1)%n],
	)
	if !ok {
		return Polygon{}
	}

	var loopA, loopB []Point
	loopA = append(loopA, ip)
	for k := i + 1; k <= j; k++ {
		loopA = append(loopA, pg.Vertices[k])
	}
	loopB = append(loopB, ip)
	for k := (j + 1) % n; k != i+1; k = (k + 1) % n {
		loopB = append(loopB, pg.Vertices[k])
	}

	a := NewPolygon(loopA)
	b := NewPolygon(loopB)
	if a.Area() >= b.Area() {
		return a
	}
	return b
}

// segmentsCross reports a proper intersection between open segments,
// excluding shared endpoints.
func segmentsCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// segmentIntersection returns the intersection point of two segments
func segmentIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	rx := a2.X - a1.X
	ry := a2.Y - a1.Y
	sx := b2.X - b1.X
	sy := b2.Y - b1.Y
	denom := rx*sy - ry*sx
	if denom == 0 {
		return Point{}, false
	}
	t := ((b1.X-a1.X)*sy - (b1.Y-a1.Y)*sx) / denom
	return Point{X: a1.X + t*rx, Y: a1.Y + t*ry}, true
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ApproximateCircle returns an n-sided polygon inscribed in the circle
func ApproximateCircle(center Point, radius float64, sides int) Polygon {
	pts := make([]Point, 0, sides)
	for i := 0; i < sides; i++ {
		angle := float64(i) / float64(sides) * 2 * math.Pi
		pts = append(pts, Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return Polygon{Vertices: pts}
}
