package game

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/RonsBrain/rollroll/engine"
)

// Renderer turns engine draw commands into pixels. Logical coordinates are
// a Y-up square spanning -1..1 across the window's larger dimension, so the
// world keeps its aspect ratio on any window shape.
type Renderer struct {
	white *ebiten.Image
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{white: white}
}

// Render executes the command list against the screen in order.
func (r *Renderer) Render(screen *ebiten.Image, commands []engine.Command) {
	bounds := screen.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	for _, command := range commands {
		switch c := command.(type) {
		case engine.Clear:
			screen.Fill(toColor(c.Color))
		case engine.FilledPolygon:
			r.fillPolygon(screen, c.Vertices, c.Color, width, height)
		case engine.Circle:
			x, y := deviceCoordinates(c.Center, width, height)
			radius := deviceLength(c.Radius, width, height)
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), toColor(c.Color), true)
		}
	}
}

// DrawStatus draws a HUD status line in the top-left corner.
func (r *Renderer) DrawStatus(screen *ebiten.Image, message string) {
	text.Draw(screen, message, basicfont.Face7x13, 8, 16, color.White)
}

// fillPolygon fills a convex polygon as a triangle fan. A fan is only
// correct for convex shapes, which is all the engine produces.
func (r *Renderer) fillPolygon(screen *ebiten.Image, vertices []r2.Point, clr engine.Color, width, height int) {
	if len(vertices) < 3 {
		return
	}

	vs := make([]ebiten.Vertex, len(vertices))
	for i, v := range vertices {
		x, y := deviceCoordinates(v, width, height)
		vs[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(clr.R),
			ColorG: float32(clr.G),
			ColorB: float32(clr.B),
			ColorA: 1,
		}
	}

	is := make([]uint16, 0, (len(vertices)-2)*3)
	for i := 2; i < len(vertices); i++ {
		is = append(is, 0, uint16(i-1), uint16(i))
	}

	screen.DrawTriangles(vs, is, r.white, nil)
}

// deviceCoordinates maps a logical point onto the window, centering the
// -1..1 square on the larger window dimension and flipping Y to screen
// orientation.
func deviceCoordinates(p r2.Point, width, height int) (float64, float64) {
	dimension := float64(max(width, height))
	x := dimension*((p.X+1)*0.5) - (dimension-float64(width))*0.5
	y := dimension*((-p.Y+1)*0.5) - (dimension-float64(height))*0.5
	return x, y
}

// deviceLength maps a logical length to pixels on the larger dimension.
func deviceLength(length float64, width, height int) float64 {
	dimension := float64(max(width, height))
	return dimension * length * 0.5
}

func toColor(c engine.Color) color.Color {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}
