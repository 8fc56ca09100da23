package game

import (
	"math"
	"time"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/RonsBrain/rollroll/engine"
)

// probeHalfSize is half the side of the square swept area used to resolve
// the player's attempted move against the world.
const probeHalfSize = 0.01

var (
	backgroundColor = engine.Color{}
	tileColor       = engine.Color{R: 1, G: 1, B: 1}
	stoneColor      = engine.Color{R: 1, G: 1, B: 1}
	progressColor   = engine.Color{R: 1, B: 1}
)

// Game drives the engine once per frame and implements ebiten.Game. While
// the world is generating it hands the generator one time slice per tick so
// frames keep flowing; once the world is ready it resolves player movement
// against the world's spatial index.
type Game struct {
	config    Config
	logger    *zap.Logger
	generator *engine.WorldGenerator
	world     *engine.World
	player    *engine.Player
	probeIDs  engine.IDSequence
	commands  []engine.Command
	renderer  *Renderer
	startedAt time.Time
}

// NewGame creates a game and kicks off world generation.
func NewGame(config Config, logger *zap.Logger) *Game {
	dimensions := r2.Point{X: config.WorldWidth, Y: config.WorldHeight}
	return &Game{
		config:    config,
		logger:    logger,
		generator: engine.NewWorldGenerator(config.TileSize, dimensions),
		player:    engine.NewPlayer(config.StoneCount),
		renderer:  NewRenderer(),
		startedAt: time.Now(),
	}
}

// Update advances the game by one tick.
func (g *Game) Update() error {
	g.commands = g.tick(ReadMovement(), g.commands[:0])
	return nil
}

// Draw renders the current tick's command list.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.commands)
	if g.world == nil {
		g.renderer.DrawStatus(screen, "generating world...")
	}
}

// Layout reports the drawing size; the renderer adapts to any window shape.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// tick produces the frame's command list, reusing the passed arena.
func (g *Game) tick(movement r2.Point, commands []engine.Command) []engine.Command {
	commands = append(commands, engine.Clear{Color: backgroundColor})

	if g.world == nil {
		world := g.generator.Advance(g.config.GenerationBudget())
		if world == nil {
			commands = append(commands, engine.Circle{Radius: 0.1, Color: progressColor})
			return commands
		}
		g.world = world
		g.logger.Info("world generated",
			zap.Int("tiles", len(world.Tiles())),
			zap.Duration("elapsed", time.Since(g.startedAt)))
	}

	if movement == (r2.Point{}) {
		g.player.Relax()
	} else {
		g.player.Accelerate(movement)
		g.resolveMovement()
	}
	g.player.Advance()

	offset := g.player.Position()
	for _, tile := range g.world.Tiles() {
		vertices := make([]r2.Point, len(tile.Vertices()))
		for i, v := range tile.Vertices() {
			vertices[i] = v.Sub(offset)
		}
		commands = append(commands, engine.FilledPolygon{Vertices: vertices, Color: tileColor})
	}

	for _, stone := range g.player.Stones() {
		commands = append(commands, engine.FilledPolygon{Vertices: stone.Vertices(), Color: stoneColor})
	}

	return commands
}

// resolveMovement sweeps a small square at the player's next position
// through the world's spatial index and, if any tile collides, overrides
// the velocity with the component-wise minimum of the separating
// displacements.
func (g *Game) resolveMovement() {
	next := g.player.NextPosition()
	area := engine.NewPolygon(&g.probeIDs, []r2.Point{
		next.Add(r2.Point{X: -probeHalfSize, Y: probeHalfSize}),
		next.Add(r2.Point{X: probeHalfSize, Y: probeHalfSize}),
		next.Add(r2.Point{X: probeHalfSize, Y: -probeHalfSize}),
		next.Add(r2.Point{X: -probeHalfSize, Y: -probeHalfSize}),
	})

	minDisplacement := r2.Point{X: math.Inf(1), Y: math.Inf(1)}
	for _, tile := range g.world.FindInArea(area) {
		if displacement, ok := tile.CollisionDisplacement(area); ok {
			minDisplacement.X = math.Min(minDisplacement.X, displacement.X)
			minDisplacement.Y = math.Min(minDisplacement.Y, displacement.Y)
		}
	}

	if !math.IsInf(minDisplacement.X, 1) && !math.IsInf(minDisplacement.Y, 1) {
		g.player.SetVelocity(minDisplacement)
	}
}
