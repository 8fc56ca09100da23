package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 800, config.ScreenWidth)
	assert.Equal(t, 600, config.ScreenHeight)
	assert.Equal(t, 0.2, config.TileSize)
	assert.Equal(t, 2.0, config.WorldWidth)
	assert.Equal(t, 2.0, config.WorldHeight)
	assert.Equal(t, 10*time.Millisecond, config.GenerationBudget())
	assert.Equal(t, 12, config.StoneCount)
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigOverlaysOnlyProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "screen_width: 1024\ntile_size: 0.1\ngeneration_budget_ms: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, config.ScreenWidth)
	assert.Equal(t, 0.1, config.TileSize)
	assert.Equal(t, 5*time.Millisecond, config.GenerationBudget())

	assert.Equal(t, 600, config.ScreenHeight)
	assert.Equal(t, 2.0, config.WorldWidth)
	assert.Equal(t, 12, config.StoneCount)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("screen_width: [oops\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
