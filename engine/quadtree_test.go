package engine

import (
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadTreeLenAndPolygons(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()
	assert.Equal(t, 0, tree.Len())

	first := squareAt(&ids, 0, 0, 1)
	second := squareAt(&ids, 10, 0, 1)
	tree.Insert(first)
	tree.Insert(second)

	assert.Equal(t, 2, tree.Len())
	assert.ElementsMatch(t, []*Polygon{first, second}, tree.Polygons())
}

func TestFindInAreaRoundTrip(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()
	squares := make([]*Polygon, 0, 5)
	for i := 0; i < 5; i++ {
		s := squareAt(&ids, float64(i)*10, 0, 1)
		squares = append(squares, s)
		tree.Insert(s)
	}

	// An area spanning exactly the squares at x=10 and x=20.
	area := NewPolygon(&ids, []r2.Point{
		{X: 9, Y: -1},
		{X: 21.5, Y: -1},
		{X: 21.5, Y: 2},
		{X: 9, Y: 2},
	})

	found := tree.FindInArea(area)
	assert.ElementsMatch(t, []*Polygon{squares[1], squares[2]}, found)
}

func TestFindInAreaOutsidePopulatedRegion(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()
	tree.Insert(squareAt(&ids, 0, 0, 1))

	area := squareAt(&ids, 1000, 1000, 1)
	assert.Empty(t, tree.FindInArea(area))
}

func TestLeafSplitsOverEntryThreshold(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()

	tiles := make([]*Polygon, 0, maxNodeEntries+2)
	for i := 0; i < maxNodeEntries+2; i++ {
		tile := NewTriangle(&ids, 0.5, r2.Point{X: float64(i) + 0.5, Y: 5}, 0)
		tiles = append(tiles, tile)
		tree.Insert(tile)
	}

	require.NotNil(t, tree.root.children, "the root leaf must split past the entry threshold")
	assert.Equal(t, maxNodeEntries+2, tree.Len())

	// Every tile is still found, exactly once, after the split.
	for _, tile := range tiles {
		found := tree.FindInArea(tile)
		require.Len(t, found, 1)
		assert.Equal(t, tile.ID(), found[0].ID())
	}
}

func TestRemoveAtPoint(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()
	target := squareAt(&ids, 0, 0, 1)
	other := squareAt(&ids, 10, 0, 1)
	tree.Insert(target)
	tree.Insert(other)

	tree.RemoveAtPoint(r2.Point{X: 0.5, Y: 0.5})

	assert.Equal(t, 1, tree.Len())
	probe := squareAt(&ids, 0.25, 0.25, 0.5)
	assert.Empty(t, tree.FindInArea(probe), "the removed polygon must never come back from a query")

	found := tree.FindInArea(squareAt(&ids, 10.25, 0.25, 0.5))
	require.Len(t, found, 1)
	assert.Equal(t, other.ID(), found[0].ID())
}

func TestRemoveAtPointMissesEverything(t *testing.T) {
	var ids IDSequence
	tree := NewQuadTree()
	tree.Insert(squareAt(&ids, 0, 0, 1))

	tree.RemoveAtPoint(r2.Point{X: 50, Y: 50})
	assert.Equal(t, 1, tree.Len())
}

func TestNewTreeNodeRejectsInvertedRegion(t *testing.T) {
	assert.Panics(t, func() {
		newTreeNode(r2.Rect{
			X: r1.Interval{Lo: 1, Hi: -1},
			Y: r1.Interval{Lo: 0, Hi: 1},
		})
	})
}
