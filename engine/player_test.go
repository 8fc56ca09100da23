package engine

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerStones(t *testing.T) {
	p := NewPlayer(12)

	stones := p.Stones()
	require.Len(t, stones, 13, "twelve sphere stones plus the center one")
	for _, stone := range stones {
		assert.Len(t, stone.Vertices(), 6)
	}
}

func TestAccelerateClampsVelocity(t *testing.T) {
	p := NewPlayer(12)
	for i := 0; i < 100; i++ {
		p.Accelerate(r2.Point{X: 1, Y: -1})
	}

	assert.Equal(t, maxVelocity, p.velocity.X)
	assert.Equal(t, -maxVelocity, p.velocity.Y)
}

func TestRelaxConvergesToZero(t *testing.T) {
	p := NewPlayer(12)
	p.Accelerate(r2.Point{X: 1, Y: 0.5})

	for i := 0; i < 100; i++ {
		p.Relax()
	}
	assert.Equal(t, r2.Point{}, p.velocity)
}

func TestAdvanceMovesByVelocity(t *testing.T) {
	p := NewPlayer(12)
	p.Accelerate(r2.Point{X: 1, Y: 0})
	p.Advance()

	assert.InDelta(t, accelerationRate, p.Position().X, 1e-12)
	assert.InDelta(t, 0, p.Position().Y, 1e-12)
}

func TestAdvanceWithoutVelocityIsANoOp(t *testing.T) {
	p := NewPlayer(12)
	before := append([]r2.Point(nil), p.Stones()[1].Vertices()...)

	p.Advance()

	assert.Equal(t, r2.Point{}, p.Position())
	assert.Equal(t, before, p.Stones()[1].Vertices())
}

func TestAdvancePreservesStoneOrbit(t *testing.T) {
	p := NewPlayer(12)
	before := p.stones[1].Norm()

	p.Accelerate(r2.Point{X: 1, Y: 0})
	p.Advance()

	assert.InDelta(t, before, p.stones[1].Norm(), 1e-9,
		"rolling rotates stones, it must not change their orbit radius")
}

func TestSetVelocityOverridesAcceleration(t *testing.T) {
	p := NewPlayer(12)
	p.Accelerate(r2.Point{X: 1, Y: 1})
	p.SetVelocity(r2.Point{X: 0.005, Y: 0})

	assert.Equal(t, r2.Point{X: 0.005, Y: 0}, p.velocity)
	assert.Equal(t, r2.Point{X: 0.005, Y: 0}, p.NextPosition())
}
