package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPyro loads the Pyro configuration. Values missing from the file keep
// their defaults.
// Search order: customPath -> ~/.pyro/configs/pyro.yaml -> ./configs/pyro.yaml -> embedded default
func LoadPyro(customPath string) (PyroConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPyroConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParsePyro(data)
		if err != nil {
			return DefaultPyroConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pyro.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParsePyro(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pyro.yaml")); err == nil {
		if cfg, err := ParsePyro(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParsePyro(defaultPyroYAML)
	if err != nil {
		return DefaultPyroConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParsePyro decodes YAML over the defaults and validates the result.
func ParsePyro(data []byte) (PyroConfig, error) {
	cfg := DefaultPyroConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c PyroConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pyro", "configs", filename)
}

// UserConfigPath returns where the user configuration file is looked up.
func UserConfigPath() string {
	return userConfigPath("pyro.yaml")
}

// WriteFile writes YAML data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// ApplyPyroPreset modifies the config based on a difficulty preset.
func ApplyPyroPreset(cfg *PyroConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Fire.BaseSpread = 0.30
		cfg.Level.GasCanProbability = 0.03
		cfg.Player.MaxGasCans = 4
	case DifficultyHard:
		cfg.Fire.BaseSpread = 0.50
		cfg.Fire.Persistence = 0.95
		cfg.Level.GasCanProbability = 0.015
		cfg.Player.MaxGasCans = 2
	}
}
