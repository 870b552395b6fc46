// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-three game.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Match3Config contains all configuration for the match-three game.
type Match3Config struct {
	Board     Match3Board     `yaml:"board"`
	Tiles     []TileStyle     `yaml:"tiles"`
	Rules     Match3Rules     `yaml:"rules"`
	Animation Match3Animation `yaml:"animation"`
}

// Match3Board defines the grid.
type Match3Board struct {
	Width             int  `yaml:"width"`
	Height            int  `yaml:"height"`
	TileTypes         int  `yaml:"tile_types"`
	NoStartingMatches bool `yaml:"no_starting_matches"`
}

// TileStyle describes how one tile type is drawn.
type TileStyle struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"` // a single character
	Color string `yaml:"color"` // core color name, e.g. "bright_cyan"
}

// Match3Rules defines scoring and the round timer.
type Match3Rules struct {
	ScorePerCascade int `yaml:"score_per_cascade"`
	TargetScore     int `yaml:"target_score"`
	DurationSeconds int `yaml:"duration_seconds"`
}

// Match3Animation defines effect lengths in simulation ticks.
// Zero makes an effect complete immediately.
type Match3Animation struct {
	SwapTicks    int `yaml:"swap_ticks"`
	RevertTicks  int `yaml:"revert_ticks"`
	DeflateTicks int `yaml:"deflate_ticks"`
	InflateTicks int `yaml:"inflate_ticks"`
	ShuffleTicks int `yaml:"shuffle_ticks"`
}

// ErrPalette is returned when the tile palette cannot draw every tile type.
var ErrPalette = errors.New("config: invalid tile palette")

// EngineConfig converts the YAML settings into the rules engine configuration.
func (c Match3Config) EngineConfig() engine.Config {
	return engine.Config{
		Width:             c.Board.Width,
		Height:            c.Board.Height,
		TileTypes:         c.Board.TileTypes,
		ScorePerCascade:   c.Rules.ScorePerCascade,
		TargetScore:       c.Rules.TargetScore,
		Duration:          time.Duration(c.Rules.DurationSeconds) * time.Second,
		NoStartingMatches: c.Board.NoStartingMatches,
	}
}

// Validate checks the engine preconditions and the palette.
func (c Match3Config) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Tiles) < c.Board.TileTypes {
		return fmt.Errorf("%w: %d tile types but only %d styles", ErrPalette, c.Board.TileTypes, len(c.Tiles))
	}
	for i, t := range c.Tiles[:c.Board.TileTypes] {
		if utf8.RuneCountInString(t.Glyph) != 1 {
			return fmt.Errorf("%w: tile %d (%s) glyph %q must be one character", ErrPalette, i, t.Name, t.Glyph)
		}
		if _, ok := core.ParseColor(t.Color); !ok {
			return fmt.Errorf("%w: tile %d (%s) has unknown color %q", ErrPalette, i, t.Name, t.Color)
		}
	}
	a := c.Animation
	if a.SwapTicks < 0 || a.RevertTicks < 0 || a.DeflateTicks < 0 || a.InflateTicks < 0 || a.ShuffleTicks < 0 {
		return errors.New("config: animation ticks must not be negative")
	}
	return nil
}
