package maze

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mazer/pkg/engine/world"
)

// configurationFile is the on-disk YAML shape. Positions are [x, y] pairs.
type configurationFile struct {
	ColCount         int     `yaml:"colCount"`
	RowCount         int     `yaml:"rowCount"`
	MaxSoftWallCount int     `yaml:"maxSoftWallCount"`
	Walls            [][]int `yaml:"walls"`
	Entrypoints      [][]int `yaml:"entrypoints"`
	Checkpoints      []struct {
		Position []int `yaml:"position"`
		Level    int   `yaml:"level"`
	} `yaml:"checkpoints"`
}

// ParseConfiguration decodes and validates a YAML maze configuration
func ParseConfiguration(data []byte) (Configuration, error) {
	var file configurationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Configuration{}, fmt.Errorf("decoding maze configuration: %w", err)
	}

	cfg := Configuration{
		ColCount:         file.ColCount,
		RowCount:         file.RowCount,
		MaxSoftWallCount: file.MaxSoftWallCount,
	}

	var err error
	if cfg.Walls, err = toPositions("walls", file.Walls); err != nil {
		return Configuration{}, err
	}
	if cfg.Entrypoints, err = toPositions("entrypoints", file.Entrypoints); err != nil {
		return Configuration{}, err
	}
	for i, cp := range file.Checkpoints {
		p, err := toPosition(cp.Position)
		if err != nil {
			return Configuration{}, fmt.Errorf("checkpoints[%d]: %w", i, err)
		}
		cfg.Checkpoints = append(cfg.Checkpoints, Checkpoint{Position: p, Level: cp.Level})
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// LoadConfiguration reads a YAML maze configuration file
func LoadConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading maze configuration: %w", err)
	}
	return ParseConfiguration(data)
}

func toPositions(field string, pairs [][]int) ([]world.Position, error) {
	out := make([]world.Position, 0, len(pairs))
	for i, pair := range pairs {
		p, err := toPosition(pair)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func toPosition(pair []int) (world.Position, error) {
	if len(pair) != 2 {
		return world.Position{}, fmt.Errorf("position must be an [x, y] pair, got %v", pair)
	}
	return world.Pos(pair[0], pair[1]), nil
}
