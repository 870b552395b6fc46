package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset parses a CLI flag value. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Description returns a one-line summary for menus.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Four tile kinds, more time, lower target"
	case DifficultyHard:
		return "Six tile kinds, less time, higher target"
	default:
		return "The classic timed round"
	}
}

// ApplyMatch3Preset adjusts a loaded configuration for a preset. Normal
// leaves it untouched; easy and hard scale the timer and target relative
// to the loaded values and change the number of tile kinds. Fewer kinds
// make matches more likely.
func ApplyMatch3Preset(cfg Match3Config, preset DifficultyPreset) Match3Config {
	switch preset {
	case DifficultyEasy:
		cfg.Board.TileTypes = max(cfg.Board.TileTypes-1, 3)
		cfg.Rules.DurationSeconds = cfg.Rules.DurationSeconds * 3 / 2
		cfg.Rules.TargetScore = cfg.Rules.TargetScore * 5 / 7
	case DifficultyHard:
		cfg.Board.TileTypes = min(cfg.Board.TileTypes+1, len(cfg.Tiles))
		cfg.Rules.DurationSeconds = cfg.Rules.DurationSeconds * 4 / 5
		cfg.Rules.TargetScore = cfg.Rules.TargetScore * 9 / 7
	}
	return cfg
}
