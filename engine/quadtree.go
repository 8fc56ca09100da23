package engine

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// maxNodeEntries is the number of identities a leaf may hold before it
// splits into four quadrant children.
const maxNodeEntries = 10

// QuadTree is an adaptive spatial index over polygons. Geometry is owned by
// a single master map keyed by polygon identity; tree nodes hold identities
// only, so the same polygon may be referenced by several leaves when it
// straddles a quadrant boundary.
type QuadTree struct {
	store map[uint64]*Polygon
	root  *treeNode
}

// NewQuadTree returns an empty index whose root covers the whole plane.
func NewQuadTree() *QuadTree {
	return &QuadTree{
		store: make(map[uint64]*Polygon),
		root: newTreeNode(r2.Rect{
			X: r1.Interval{Lo: -math.MaxFloat64, Hi: math.MaxFloat64},
			Y: r1.Interval{Lo: -math.MaxFloat64, Hi: math.MaxFloat64},
		}),
	}
}

// Len returns the number of indexed polygons.
func (t *QuadTree) Len() int {
	return len(t.store)
}

// Polygons returns every indexed polygon in unspecified order.
func (t *QuadTree) Polygons() []*Polygon {
	polygons := make([]*Polygon, 0, len(t.store))
	for _, p := range t.store {
		polygons = append(polygons, p)
	}
	return polygons
}

// Insert adds a polygon to the index. A node accepts the polygon when any
// of its vertices lies inside the node's rectangle. This pre-filter is
// deliberately conservative: a polygon that straddles a node without a
// vertex inside it is not offered to that node. Queries use the same
// filter, so insert and lookup stay symmetric.
func (t *QuadTree) Insert(p *Polygon) {
	t.store[p.ID()] = p
	t.root.insert(p, t.store)
}

// RemoveAtPoint removes every polygon that contains the point, both from
// the leaves and from the master map. Split nodes are never collapsed back
// into leaves.
func (t *QuadTree) RemoveAtPoint(point r2.Point) {
	t.root.removeAtPoint(point, t.store)
	for id, p := range t.store {
		if p.ContainsPoint(point) {
			delete(t.store, id)
		}
	}
}

// FindInArea returns every indexed polygon colliding with area. The result
// is deduplicated by identity since overlapping leaves can report the same
// polygon more than once. An area entirely outside the indexed region
// yields an empty result.
func (t *QuadTree) FindInArea(area *Polygon) []*Polygon {
	found := make(map[uint64]*Polygon)
	t.root.findInArea(area, t.store, found)

	result := make([]*Polygon, 0, len(found))
	for _, p := range found {
		result = append(result, p)
	}
	return result
}

// treeNode is either a leaf holding polygon identities or an internal node
// with exactly four quadrant children.
type treeNode struct {
	rect     r2.Rect
	elements []uint64
	children *[4]treeNode
}

func newTreeNode(rect r2.Rect) *treeNode {
	if rect.X.IsEmpty() || rect.Y.IsEmpty() {
		panic("engine: quadtree node region is empty or inverted")
	}
	return &treeNode{rect: rect}
}

func (n *treeNode) accepts(p *Polygon) bool {
	for _, v := range p.Vertices() {
		if n.rect.ContainsPoint(v) {
			return true
		}
	}
	return false
}

func (n *treeNode) insert(p *Polygon, store map[uint64]*Polygon) {
	if !n.accepts(p) {
		return
	}
	if n.children != nil {
		for i := range n.children {
			n.children[i].insert(p, store)
		}
		return
	}

	n.elements = append(n.elements, p.ID())
	if len(n.elements) > maxNodeEntries {
		n.split(store)
	}
}

// split turns a leaf into an internal node with four children meeting at
// the rectangle's midpoint and re-offers every held identity to them.
func (n *treeNode) split(store map[uint64]*Polygon) {
	mid := n.rect.Center()
	children := &[4]treeNode{
		*newTreeNode(r2.Rect{
			X: r1.Interval{Lo: n.rect.X.Lo, Hi: mid.X},
			Y: r1.Interval{Lo: mid.Y, Hi: n.rect.Y.Hi},
		}),
		*newTreeNode(r2.Rect{
			X: r1.Interval{Lo: mid.X, Hi: n.rect.X.Hi},
			Y: r1.Interval{Lo: mid.Y, Hi: n.rect.Y.Hi},
		}),
		*newTreeNode(r2.Rect{
			X: r1.Interval{Lo: n.rect.X.Lo, Hi: mid.X},
			Y: r1.Interval{Lo: n.rect.Y.Lo, Hi: mid.Y},
		}),
		*newTreeNode(r2.Rect{
			X: r1.Interval{Lo: mid.X, Hi: n.rect.X.Hi},
			Y: r1.Interval{Lo: n.rect.Y.Lo, Hi: mid.Y},
		}),
	}

	for _, id := range n.elements {
		p, ok := store[id]
		if !ok {
			continue
		}
		for i := range children {
			children[i].insert(p, store)
		}
	}

	n.elements = nil
	n.children = children
}

func (n *treeNode) removeAtPoint(point r2.Point, store map[uint64]*Polygon) {
	if !n.rect.ContainsPoint(point) {
		return
	}
	if n.children != nil {
		for i := range n.children {
			n.children[i].removeAtPoint(point, store)
		}
		return
	}

	kept := n.elements[:0]
	for _, id := range n.elements {
		if p, ok := store[id]; ok && !p.ContainsPoint(point) {
			kept = append(kept, id)
		}
	}
	n.elements = kept
}

func (n *treeNode) findInArea(area *Polygon, store, found map[uint64]*Polygon) {
	if !n.accepts(area) {
		return
	}
	if n.children != nil {
		for i := range n.children {
			n.children[i].findInArea(area, store, found)
		}
		return
	}

	for _, id := range n.elements {
		if p, ok := store[id]; ok && p.CollidesWith(area) {
			found[p.ID()] = p
		}
	}
}
