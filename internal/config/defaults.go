package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration used when no YAML
// can be read at all.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Width:             engine.DefaultWidth,
			Height:            engine.DefaultHeight,
			TileTypes:         engine.DefaultTileTypes,
			NoStartingMatches: true,
		},
		Tiles: []TileStyle{
			{Name: "ruby", Glyph: "●", Color: "red"},
			{Name: "emerald", Glyph: "▲", Color: "green"},
			{Name: "topaz", Glyph: "◆", Color: "yellow"},
			{Name: "sapphire", Glyph: "■", Color: "blue"},
			{Name: "amethyst", Glyph: "★", Color: "magenta"},
			{Name: "pearl", Glyph: "○", Color: "bright_white"},
			{Name: "amber", Glyph: "✚", Color: "orange"},
		},
		Rules: Match3Rules{
			ScorePerCascade: engine.DefaultScorePerCascade,
			TargetScore:     engine.DefaultTargetScore,
			DurationSeconds: int(engine.DefaultDuration.Seconds()),
		},
		Animation: Match3Animation{
			SwapTicks:    6,
			RevertTicks:  6,
			DeflateTicks: 8,
			InflateTicks: 6,
			ShuffleTicks: 12,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for `match3 config`.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
