package maze

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazer/pkg/engine/world"
)

const scenarioYAML = `
colCount: 3
rowCount: 3
maxSoftWallCount: 1
walls: [[1, 0]]
entrypoints: [[0, 0]]
checkpoints:
  - position: [2, 2]
    level: 1
  - position: [0, 2]
    level: 0
`

func TestParseConfiguration(t *testing.T) {
	cfg, err := ParseConfiguration([]byte(scenarioYAML))
	require.NoError(t, err)

	want := Configuration{
		ColCount:         3,
		RowCount:         3,
		MaxSoftWallCount: 1,
		Walls:            []world.Position{world.Pos(1, 0)},
		Entrypoints:      []world.Position{world.Pos(0, 0)},
		Checkpoints: []Checkpoint{
			{Position: world.Pos(2, 2), Level: 1},
			{Position: world.Pos(0, 2), Level: 0},
		},
	}
	assert.True(t, cfg.Equal(want), "ParseConfiguration = %+v, want %+v", cfg, want)
}

func TestParseConfiguration_BadPair(t *testing.T) {
	_, err := ParseConfiguration([]byte("colCount: 2\nrowCount: 2\nwalls: [[1]]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walls[0]")
}

func TestParseConfiguration_OutOfBounds(t *testing.T) {
	_, err := ParseConfiguration([]byte("colCount: 2\nrowCount: 2\nentrypoints: [[2, 0]]\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestParseConfiguration_Malformed(t *testing.T) {
	_, err := ParseConfiguration([]byte("colCount: [oops"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfiguration))
}

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ColCount)

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
