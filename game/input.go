package game

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
)

// axisDeadZone filters out stick drift on gamepads.
const axisDeadZone = 0.1

// ReadMovement returns the current movement intent with components in
// -1..1, from the keyboard (WASD or arrows) or the first standard gamepad's
// left stick. Y is up, matching the engine's Cartesian coordinates; a zero
// vector means no input.
func ReadMovement() r2.Point {
	var movement r2.Point

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		movement.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		movement.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		movement.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		movement.Y -= 1
	}

	if movement == (r2.Point{}) {
		if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
			x := ebiten.StandardGamepadAxisValue(ids[0], ebiten.StandardGamepadAxisLeftStickHorizontal)
			y := ebiten.StandardGamepadAxisValue(ids[0], ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Abs(x) > axisDeadZone {
				movement.X = x
			}
			if math.Abs(y) > axisDeadZone {
				// Gamepad Y is a screen axis, flip it to Cartesian.
				movement.Y = -y
			}
		}
	}

	return movement
}
