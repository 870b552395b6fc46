package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads the match-three configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// Files are decoded on top of the built-in defaults, so a partial file only
// overrides the keys it names. An explicit customPath that is missing or
// invalid is an error; the fallback locations are skipped silently.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeMatch3(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return Match3Config{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "match3.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := decodeMatch3(defaultMatch3YAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadMatch3Preset loads the configuration and applies a difficulty preset.
func LoadMatch3Preset(customPath string, preset DifficultyPreset) (Match3Config, error) {
	cfg, err := LoadMatch3(customPath)
	if err != nil {
		return cfg, err
	}
	cfg = ApplyMatch3Preset(cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("preset %s: %w", preset, err)
	}
	return cfg, nil
}

func tryLoad(path string) (Match3Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, false
	}
	cfg, err := decodeMatch3(data)
	if err != nil || cfg.Validate() != nil {
		return Match3Config{}, false
	}
	return cfg, true
}

// decodeMatch3 overlays YAML onto the defaults. A tiles list in the file
// replaces the default palette as a whole.
func decodeMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	cfg.Tiles = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	if cfg.Tiles == nil {
		cfg.Tiles = DefaultMatch3Config().Tiles
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}
