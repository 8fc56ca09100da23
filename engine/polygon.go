package engine

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

const sqrt3Over4 = 1.7320508075688772 / 4

// IDSequence hands out monotonically increasing polygon identities. Each
// context that constructs polygons (the world generator, the player) owns
// its own sequence; identities are only ever compared within one store.
type IDSequence struct {
	next uint64
}

// Next returns a fresh identity. The zero value starts counting at 1.
func (s *IDSequence) Next() uint64 {
	s.next++
	return s.next
}

// Edge is a directed segment between two consecutive polygon vertices.
type Edge struct {
	Start, End r2.Point
}

// Polygon is an immutable convex shape with a stable identity. Vertex order
// is winding order, and the vertex ring is closed (the last edge wraps back
// to the first vertex). Convexity is not validated; every containment and
// collision method assumes it.
type Polygon struct {
	id       uint64
	vertices []r2.Point
	edges    []Edge
}

// NewPolygon builds a polygon from a vertex ring, drawing a fresh identity
// from ids. It panics when given fewer than 3 vertices since no containment
// or collision result is defined for a degenerate shape.
func NewPolygon(ids *IDSequence, vertices []r2.Point) *Polygon {
	if len(vertices) < 3 {
		panic("engine: polygon needs at least 3 vertices")
	}

	edges := make([]Edge, len(vertices))
	for i, v := range vertices {
		edges[i] = Edge{Start: v, End: vertices[(i+1)%len(vertices)]}
	}

	return &Polygon{
		id:       ids.Next(),
		vertices: vertices,
		edges:    edges,
	}
}

// NewTriangle builds an equilateral triangle of side length size centered
// at center, apex up, rotated about the center by rotation radians.
func NewTriangle(ids *IDSequence, size float64, center r2.Point, rotation float64) *Polygon {
	left := center.X - size*0.5
	right := center.X + size*0.5
	top := center.Y + size*sqrt3Over4
	bottom := center.Y - size*sqrt3Over4

	model := []r2.Point{
		{X: center.X, Y: top},
		{X: left, Y: bottom},
		{X: right, Y: bottom},
	}

	vertices := make([]r2.Point, len(model))
	for i, v := range model {
		vertices[i] = rotateAbout(v, center, rotation)
	}

	return NewPolygon(ids, vertices)
}

// NewRegularPolygon builds a regular polygon with the given number of sides
// and circumradius size, centered at center and rotated by rotation radians.
func NewRegularPolygon(ids *IDSequence, sides int, size float64, center r2.Point, rotation float64) *Polygon {
	vertices := make([]r2.Point, sides)
	for i := range vertices {
		angle := rotation + 2*math.Pi*float64(i)/float64(sides)
		vertices[i] = center.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(size))
	}
	return NewPolygon(ids, vertices)
}

// ID returns the polygon's identity. Two polygons are the same element iff
// their identities match, regardless of vertex content.
func (p *Polygon) ID() uint64 {
	return p.id
}

// Vertices returns the vertex ring. Callers must not mutate it.
func (p *Polygon) Vertices() []r2.Point {
	return p.vertices
}

// Edges returns the derived edge list. Callers must not mutate it.
func (p *Polygon) Edges() []Edge {
	return p.edges
}

func (p *Polygon) String() string {
	return fmt.Sprintf("(%d: %v)", p.id, p.vertices)
}

// ContainsPoint reports whether the point lies inside the polygon. For each
// edge it takes the cross product of the edge vector and the vector from
// the edge start to the point; the point is inside iff every cross product
// has the same sign. Only correct for convex, consistently wound polygons.
func (p *Polygon) ContainsPoint(point r2.Point) bool {
	var haveSign, currentSign bool

	for _, edge := range p.edges {
		sign := edge.End.Sub(edge.Start).Cross(point.Sub(edge.Start)) >= 0
		if !haveSign {
			haveSign = true
			currentSign = sign
			continue
		}
		if sign != currentSign {
			return false
		}
	}
	return true
}

// CollisionDisplacement runs the Separating Axis Theorem test against
// other. It projects both polygons onto the perpendicular of every edge of
// both shapes (this polygon's edges first, in vertex order); if any axis
// separates the projections there is no collision and it returns false.
// Otherwise it returns the minimum-translation vector: the first axis with
// the smallest projection overlap, scaled by that overlap.
func (p *Polygon) CollisionDisplacement(other *Polygon) (r2.Point, bool) {
	displacement := math.Inf(1)
	var minAxis r2.Point

	for _, pair := range [2][2]*Polygon{{p, other}, {other, p}} {
		lhs, rhs := pair[0], pair[1]
		for _, edge := range lhs.edges {
			axis := edge.End.Sub(edge.Start).Ortho()

			minLHS, maxLHS := projectOnto(lhs.vertices, axis)
			minRHS, maxRHS := projectOnto(rhs.vertices, axis)

			if !(maxRHS >= minLHS && maxLHS >= minRHS) {
				return r2.Point{}, false
			}

			overlap := math.Min(maxLHS, maxRHS) - math.Max(minLHS, minRHS)
			if overlap < displacement {
				displacement = overlap
				minAxis = axis
			}
		}
	}
	return minAxis.Mul(displacement), true
}

// CollidesWith reports whether the two polygons overlap.
func (p *Polygon) CollidesWith(other *Polygon) bool {
	_, collides := p.CollisionDisplacement(other)
	return collides
}

func projectOnto(vertices []r2.Point, axis r2.Point) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range vertices {
		shadow := v.Dot(axis)
		min = math.Min(min, shadow)
		max = math.Max(max, shadow)
	}
	return min, max
}

func rotateAbout(v, center r2.Point, angle float64) r2.Point {
	sin, cos := math.Sincos(angle)
	d := v.Sub(center)
	return center.Add(r2.Point{X: d.X*cos - d.Y*sin, Y: d.X*sin + d.Y*cos})
}
