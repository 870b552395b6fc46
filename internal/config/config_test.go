package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := decodeMatch3(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded YAML should validate: %v", err)
	}

	def := DefaultMatch3Config()
	if cfg.Board != def.Board || cfg.Rules != def.Rules || cfg.Animation != def.Animation {
		t.Errorf("embedded YAML drifted from DefaultMatch3Config:\n got %+v\nwant %+v", cfg, def)
	}
	if len(cfg.Tiles) != len(def.Tiles) {
		t.Errorf("palette size = %d, expected %d", len(cfg.Tiles), len(def.Tiles))
	}
}

func TestEngineConfig(t *testing.T) {
	ec := DefaultMatch3Config().EngineConfig()
	if ec != engine.DefaultConfig() {
		t.Errorf("EngineConfig() = %+v, expected %+v", ec, engine.DefaultConfig())
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match3.yaml")
	yaml := `
board:
  width: 6
  height: 7
rules:
  target_score: 300
  duration_seconds: 45
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() error: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 7 {
		t.Errorf("board = %dx%d, expected 6x7", cfg.Board.Width, cfg.Board.Height)
	}
	// Keys absent from the file keep their defaults
	if cfg.Board.TileTypes != engine.DefaultTileTypes {
		t.Errorf("TileTypes = %d, expected default", cfg.Board.TileTypes)
	}
	if cfg.Rules.ScorePerCascade != engine.DefaultScorePerCascade {
		t.Errorf("ScorePerCascade = %d, expected default", cfg.Rules.ScorePerCascade)
	}
	if cfg.EngineConfig().Duration != 45*time.Second {
		t.Errorf("Duration = %v, expected 45s", cfg.EngineConfig().Duration)
	}
	if len(cfg.Tiles) != len(DefaultMatch3Config().Tiles) {
		t.Errorf("missing tiles list should keep the default palette")
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"two tile types", "board:\n  tile_types: 2\n", engine.ErrTooFewTileTypes},
		{"narrow board", "board:\n  width: 2\n  height: 2\n", engine.ErrBoardTooSmall},
		{"short palette", "tiles:\n  - {name: a, glyph: A, color: red}\n", ErrPalette},
		{"bad glyph", "board:\n  tile_types: 3\ntiles:\n  - {name: a, glyph: AB, color: red}\n  - {name: b, glyph: B, color: red}\n  - {name: c, glyph: C, color: red}\n", ErrPalette},
		{"bad color", "board:\n  tile_types: 3\ntiles:\n  - {name: a, glyph: A, color: red}\n  - {name: b, glyph: B, color: puce}\n  - {name: c, glyph: C, color: red}\n", ErrPalette},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadMatch3(path)
			if !errors.Is(err, tc.want) {
				t.Errorf("LoadMatch3() error = %v, expected %v", err, tc.want)
			}
		})
	}

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(broken); err == nil {
		t.Error("malformed YAML should be an error")
	}
}

func TestLoadMatch3FallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() error: %v", err)
	}
	if cfg.Rules.TargetScore != engine.DefaultTargetScore {
		t.Errorf("TargetScore = %d, expected embedded default", cfg.Rules.TargetScore)
	}
}

func TestLoadMatch3UserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".match3", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "match3.yaml"), []byte("rules:\n  target_score: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() error: %v", err)
	}
	if cfg.Rules.TargetScore != 42 {
		t.Errorf("TargetScore = %d, expected 42 from user config", cfg.Rules.TargetScore)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"Easy", DifficultyEasy, false},
		{" hard ", DifficultyHard, false},
		{"normal", DifficultyNormal, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	base := DefaultMatch3Config()

	tests := []struct {
		preset    DifficultyPreset
		tileTypes int
		duration  int
		target    int
	}{
		{DifficultyEasy, 4, 150, 500},
		{DifficultyNormal, 5, 100, 700},
		{DifficultyHard, 6, 80, 900},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := ApplyMatch3Preset(base, tc.preset)
			if cfg.Board.TileTypes != tc.tileTypes {
				t.Errorf("TileTypes = %d, expected %d", cfg.Board.TileTypes, tc.tileTypes)
			}
			if cfg.Rules.DurationSeconds != tc.duration {
				t.Errorf("DurationSeconds = %d, expected %d", cfg.Rules.DurationSeconds, tc.duration)
			}
			if cfg.Rules.TargetScore != tc.target {
				t.Errorf("TargetScore = %d, expected %d", cfg.Rules.TargetScore, tc.target)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should validate: %v", err)
			}
		})
	}

	// Easy never drops below three kinds; hard never exceeds the palette.
	small := base
	small.Board.TileTypes = 3
	if got := ApplyMatch3Preset(small, DifficultyEasy).Board.TileTypes; got != 3 {
		t.Errorf("easy on 3 kinds = %d, expected 3", got)
	}
	big := base
	big.Board.TileTypes = len(base.Tiles)
	if got := ApplyMatch3Preset(big, DifficultyHard).Board.TileTypes; got != len(base.Tiles) {
		t.Errorf("hard on a full palette = %d, expected %d", got, len(base.Tiles))
	}
}
