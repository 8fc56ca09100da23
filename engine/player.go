package engine

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const (
	accelerationRate = 0.001
	maxVelocity      = 0.02
	phi              = 1.6180344
	maxRotationAngle = math.Pi * 4
	stoneSize        = 0.01
	stoneOrbit       = 0.03
)

// Player is the rolling ball of stones the movement query is resolved for.
// Stones live on a unit sphere scaled to the orbit radius and rotate as the
// player moves, like pebbles stuck to a rolling ball.
type Player struct {
	stones   []r3.Vector
	position r2.Point
	velocity r2.Point
	ids      IDSequence
}

// NewPlayer creates a player with numStones stones spread over a sphere
// using the Fibonacci sphere construction, plus one stone at the center.
func NewPlayer(numStones int) *Player {
	stones := []r3.Vector{{}}
	for num := 0; num < numStones; num++ {
		y := 1 - (float64(num)/float64(numStones-1))*2
		radius := math.Sqrt(1 - y*y)
		theta := phi * float64(num)
		stones = append(stones, r3.Vector{
			X: math.Cos(theta) * radius,
			Y: y,
			Z: math.Sin(theta) * radius,
		}.Mul(stoneOrbit))
	}
	return &Player{stones: stones}
}

// Accelerate applies a movement intent, clamping each velocity component to
// the maximum speed.
func (p *Player) Accelerate(amount r2.Point) {
	p.velocity = p.velocity.Add(amount.Mul(accelerationRate))
	p.velocity.X = math.Max(-maxVelocity, math.Min(maxVelocity, p.velocity.X))
	p.velocity.Y = math.Max(-maxVelocity, math.Min(maxVelocity, p.velocity.Y))
}

// Relax eases the velocity back toward zero when there is no input.
func (p *Player) Relax() {
	p.velocity = moveTowards(p.velocity, r2.Point{}, accelerationRate)
}

// NextPosition returns where the player would be after one step at the
// current velocity.
func (p *Player) NextPosition() r2.Point {
	return p.position.Add(p.velocity)
}

// SetVelocity overrides the velocity, typically with the displacement that
// resolves a collision.
func (p *Player) SetVelocity(velocity r2.Point) {
	p.velocity = velocity
}

// Advance moves the player one step and rolls the stones around the axis
// perpendicular to the direction of travel, proportionally to the distance
// covered.
func (p *Player) Advance() {
	if p.velocity == (r2.Point{}) {
		return
	}

	angle := maxRotationAngle * math.Pi * p.position.Sub(p.NextPosition()).Norm()
	perp := p.velocity.Ortho().Normalize()
	axis := r3.Vector{X: perp.X, Y: perp.Y}
	for i, stone := range p.stones {
		p.stones[i] = rotateAboutAxis(stone, axis, angle)
	}
	p.position = p.NextPosition()
}

// Position returns the player's current position.
func (p *Player) Position() r2.Point {
	return p.position
}

// Stones returns the stones as drawable hexagons at their projected 2D
// positions.
func (p *Player) Stones() []*Polygon {
	stones := make([]*Polygon, 0, len(p.stones))
	for _, stone := range p.stones {
		center := r2.Point{X: stone.X, Y: stone.Y}
		stones = append(stones, NewRegularPolygon(&p.ids, 6, stoneSize, center, 0))
	}
	return stones
}

// rotateAboutAxis rotates v around the unit axis by angle radians using the
// Rodrigues rotation formula.
func rotateAboutAxis(v, axis r3.Vector, angle float64) r3.Vector {
	sin, cos := math.Sincos(angle)
	return v.Mul(cos).
		Add(axis.Cross(v).Mul(sin)).
		Add(axis.Mul(axis.Dot(v) * (1 - cos)))
}

func moveTowards(v, target r2.Point, maxDelta float64) r2.Point {
	delta := target.Sub(v)
	distance := delta.Norm()
	if distance <= maxDelta || distance == 0 {
		return target
	}
	return v.Add(delta.Mul(maxDelta / distance))
}
