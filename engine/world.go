package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/golang/geo/r2"
)

const (
	sqrt3Over2 = 1.7320508075688772 / 2

	// carverCount is how many shuffled carver seeds are promoted to
	// active carvers once the grid stage finishes.
	carverCount = 10

	// minTileRatio stops a carver once the surviving-tile ratio drops to
	// this fraction of the post-grid tile count.
	minTileRatio = 0.5

	carverTurn = math.Pi / 3
)

// World is the finished, immutable result of generation: the surviving
// terrain tiles plus a spatial index over them.
type World struct {
	tiles []*Polygon
	index *QuadTree
}

// Tiles returns the surviving tiles. Callers must not mutate the slice.
func (w *World) Tiles() []*Polygon {
	return w.tiles
}

// FindInArea returns the tiles colliding with area, via the world's index.
func (w *World) FindInArea(area *Polygon) []*Polygon {
	return w.index.FindInArea(area)
}

type buildStage int

const (
	stageGeneratingGrid buildStage = iota
	stageCarving
)

// gridCell is one pending cell of the triangle grid walk: a tile center,
// whether this tile is flipped, and the base orientation of the next row.
type gridCell struct {
	center         r2.Point
	flipped        bool
	nextRowFlipped bool
}

// carver is a random-walk erosion agent: a position and a travel direction
// in radians.
type carver struct {
	position  r2.Point
	direction float64
}

// WorldGenerator builds a World in two stages: tile a rectangular region
// with alternating equilateral triangles, then erode roughly half of them
// with random-walk carvers. All progress lives in the generator's own
// queues, so generation can be resumed across any number of Advance calls.
type WorldGenerator struct {
	tileSize   float64
	dimensions r2.Point
	ids        IDSequence
	rng        *rand.Rand

	stage          buildStage
	queue          []gridCell
	tiles          []*Polygon
	seeds          []carver
	carvers        []carver
	startTileCount int
}

// NewWorldGenerator prepares a generator for a dimensions.X by dimensions.Y
// region centered on the origin, tiled with triangles of side tileSize. The
// grid walk starts at the top-left corner.
func NewWorldGenerator(tileSize float64, dimensions r2.Point) *WorldGenerator {
	g := &WorldGenerator{
		tileSize:   tileSize,
		dimensions: dimensions,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.queue = append(g.queue, gridCell{
		center:         r2.Point{X: -dimensions.X / 2, Y: dimensions.Y / 2},
		flipped:        false,
		nextRowFlipped: true,
	})
	return g
}

// Advance performs generation work until the budget is exhausted, then
// yields so the caller's loop can run a frame. It returns the finished
// World once both stages complete, or nil while generation is still in
// progress. The elapsed time is checked after each unit of work (one grid
// cell or one carver step), so even a zero budget makes progress.
func (g *WorldGenerator) Advance(budget time.Duration) *World {
	start := time.Now()

	for {
		switch g.stage {
		case stageGeneratingGrid:
			g.processGridCell()
			if len(g.queue) == 0 {
				g.finishGrid()
			}
		case stageCarving:
			if len(g.carvers) == 0 {
				return g.finish()
			}
			g.processCarver()
		}

		if time.Since(start) > budget {
			return nil
		}
	}
}

// processGridCell generates one triangle tile, records a carver seed for
// it, and enqueues the next cell. The walk moves right by half a tile,
// flipping orientation each step; past the right boundary it drops to the
// next row, resets to the left edge and flips the row base orientation.
// Nothing is enqueued once the next row would cross the bottom boundary.
func (g *WorldGenerator) processGridCell() {
	cell := g.queue[0]
	g.queue = g.queue[1:]

	rotation := 0.0
	if cell.flipped {
		rotation = math.Pi
	}
	tile := NewTriangle(&g.ids, g.tileSize, cell.center, rotation)

	edges := tile.Edges()
	edge := edges[g.rng.Intn(len(edges))]
	midpoint := edge.Start.Add(edge.End).Mul(0.5)
	direction := math.Atan2(midpoint.Y-cell.center.Y, midpoint.X-cell.center.X)

	g.seeds = append(g.seeds, carver{position: cell.center, direction: direction})
	g.tiles = append(g.tiles, tile)

	next := cell.center.Add(r2.Point{X: g.tileSize / 2})
	if next.X > g.dimensions.X/2 {
		next = r2.Point{X: -g.dimensions.X / 2, Y: cell.center.Y - g.tileSize*sqrt3Over2}
		if next.Y < -g.dimensions.Y/2 {
			return
		}
		g.queue = append(g.queue, gridCell{
			center:         next,
			flipped:        cell.nextRowFlipped,
			nextRowFlipped: !cell.nextRowFlipped,
		})
	} else {
		g.queue = append(g.queue, gridCell{
			center:         next,
			flipped:        !cell.flipped,
			nextRowFlipped: cell.nextRowFlipped,
		})
	}
}

// finishGrid records the post-grid tile count, promotes a shuffled batch of
// carver seeds, and moves to the carving stage.
func (g *WorldGenerator) finishGrid() {
	g.startTileCount = len(g.tiles)
	g.rng.Shuffle(len(g.seeds), func(i, j int) {
		g.seeds[i], g.seeds[j] = g.seeds[j], g.seeds[i]
	})

	promoted := carverCount
	if promoted > len(g.seeds) {
		promoted = len(g.seeds)
	}
	g.carvers = append(g.carvers, g.seeds[:promoted]...)
	g.stage = stageCarving
}

// processCarver removes the tile under one carver and, while the surviving
// ratio is still above the threshold, walks the carver one tile-size step
// in its direction, turning 60 degrees left or right at random. A carver at
// or below the threshold is dropped.
func (g *WorldGenerator) processCarver() {
	c := g.carvers[0]
	g.carvers = g.carvers[1:]

	if idx := g.findTile(c.position); idx >= 0 {
		g.tiles[idx] = g.tiles[len(g.tiles)-1]
		g.tiles = g.tiles[:len(g.tiles)-1]
	}

	if float64(len(g.tiles))/float64(g.startTileCount) > minTileRatio {
		next := c.position.Add(r2.Point{
			X: math.Cos(c.direction) * g.tileSize,
			Y: math.Sin(c.direction) * g.tileSize,
		})
		direction := c.direction + carverTurn
		if g.rng.Intn(2) == 0 {
			direction = c.direction - carverTurn
		}
		g.carvers = append(g.carvers, carver{position: next, direction: direction})
	}
}

// findTile is a lazy linear scan for the tile containing the point.
func (g *WorldGenerator) findTile(point r2.Point) int {
	for i, t := range g.tiles {
		if t.ContainsPoint(point) {
			return i
		}
	}
	return -1
}

func (g *WorldGenerator) finish() *World {
	index := NewQuadTree()
	for _, t := range g.tiles {
		index.Insert(t)
	}
	return &World{tiles: g.tiles, index: index}
}
