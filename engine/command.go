package engine

import "github.com/golang/geo/r2"

// Color is a normalized RGB color with components in 0..1.
type Color struct {
	R, G, B float64
}

// Command is a drawable primitive produced by a game tick. Commands carry
// plain data in the logical -1..1 coordinate space; the rendering layer is
// solely responsible for turning them into pixels.
type Command interface {
	command()
}

// Clear fills the whole target with one color.
type Clear struct {
	Color Color
}

// FilledPolygon draws a filled convex polygon.
type FilledPolygon struct {
	Vertices []r2.Point
	Color    Color
}

// Circle draws a filled circle.
type Circle struct {
	Center r2.Point
	Radius float64
	Color  Color
}

func (Clear) command()         {}
func (FilledPolygon) command() {}
func (Circle) command()        {}
