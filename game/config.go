package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings for the game shell and world
// generation.
type Config struct {
	// ScreenWidth is the initial window width in pixels.
	ScreenWidth int `yaml:"screen_width"`

	// ScreenHeight is the initial window height in pixels.
	ScreenHeight int `yaml:"screen_height"`

	// TileSize is the side length of a terrain triangle in logical units.
	TileSize float64 `yaml:"tile_size"`

	// WorldWidth is the generated region's width in logical units.
	WorldWidth float64 `yaml:"world_width"`

	// WorldHeight is the generated region's height in logical units.
	WorldHeight float64 `yaml:"world_height"`

	// GenerationBudgetMillis is the time slice handed to the world
	// generator on each tick while the world is being built.
	GenerationBudgetMillis int `yaml:"generation_budget_ms"`

	// StoneCount is the number of stones orbiting the player.
	StoneCount int `yaml:"stone_count"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:            800,
		ScreenHeight:           600,
		TileSize:               0.2,
		WorldWidth:             2.0,
		WorldHeight:            2.0,
		GenerationBudgetMillis: 10,
		StoneCount:             12,
	}
}

// GenerationBudget returns the per-tick generation time slice.
func (c Config) GenerationBudget() time.Duration {
	return time.Duration(c.GenerationBudgetMillis) * time.Millisecond
}

// LoadConfig overlays a YAML file onto the default configuration. An empty
// path returns the defaults unchanged; fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}
