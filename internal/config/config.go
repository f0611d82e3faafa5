// Package config provides YAML-based configuration loading and difficulty
// management for Pyro.
package config

import (
	"errors"
	"fmt"
)

// PyroConfig contains every tunable of the game.
type PyroConfig struct {
	Level      LevelConfig      `yaml:"level"`
	Fire       FireConfig       `yaml:"fire"`
	Gas        GasConfig        `yaml:"gas"`
	Explosion  ExplosionConfig  `yaml:"explosion"`
	Player     PlayerConfig     `yaml:"player"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LevelConfig defines level generation parameters.
type LevelConfig struct {
	Height            int     `yaml:"height"`              // Fine tiles, rounded up to the ratio
	Width             int     `yaml:"width"`               // Fine tiles, rounded up to the ratio
	Ratio             int     `yaml:"ratio"`               // Fine tiles per maze cell side
	GasCanProbability float64 `yaml:"gas_can_probability"` // Chance an empty tile holds a gas can
	WallRemovalRatio  float64 `yaml:"wall_removal_ratio"`  // Extra walls removed, as a fraction of cells
	MaxStartAttempts  int     `yaml:"max_start_attempts"`
	MaxWalkAttempts   int     `yaml:"max_walk_attempts"` // Direction retries per random walk step
}

// FireConfig defines fire spreading.
type FireConfig struct {
	BaseSpread     float64 `yaml:"base_spread"`
	SpreadIncrease float64 `yaml:"spread_increase"` // Per burning neighbor
	Persistence    float64 `yaml:"persistence"`
}

// GasConfig defines gas spreading.
type GasConfig struct {
	BaseSpread     float64 `yaml:"base_spread"`
	SpreadIncrease float64 `yaml:"spread_increase"` // Per gas neighbor
}

// ExplosionConfig defines gas can explosions.
type ExplosionConfig struct {
	MinRadius int `yaml:"min_radius"`
	MaxRadius int `yaml:"max_radius"`
	MaxChain  int `yaml:"max_chain"` // Explosions allowed in one chain reaction
}

// PlayerConfig defines the player.
type PlayerConfig struct {
	Size       int `yaml:"size"` // Footprint side, odd
	MaxGasCans int `yaml:"max_gas_cans"`
}

// ScoringConfig defines scoring and campaign length.
type ScoringConfig struct {
	LevelPoints    int `yaml:"level_points"`
	CampaignLevels int `yaml:"campaign_levels"`
}

// TimingConfig defines simulation speed.
type TimingConfig struct {
	TickRate    int `yaml:"tick_rate"`    // Ticks per second
	SpreadEvery int `yaml:"spread_every"` // Automaton runs every Nth tick while the player lives
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "levels", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Levels/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireSpreadBonus  float64 `yaml:"fire_spread_bonus"`  // Added to base fire spread at max difficulty
	GasCanMultiplier float64 `yaml:"gas_can_multiplier"` // Gas can probability multiplier added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every out-of-range tunable.
func (c PyroConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Level.Ratio >= 3, "level.ratio must be at least 3, got %d", c.Level.Ratio)
	check(c.Level.Height > 2*c.Level.Ratio, "level.height %d too small for ratio %d", c.Level.Height, c.Level.Ratio)
	check(c.Level.Width > 2*c.Level.Ratio, "level.width %d too small for ratio %d", c.Level.Width, c.Level.Ratio)
	check(isProbability(c.Level.GasCanProbability), "level.gas_can_probability must be in [0,1], got %v", c.Level.GasCanProbability)
	check(c.Level.WallRemovalRatio >= 0, "level.wall_removal_ratio must not be negative, got %v", c.Level.WallRemovalRatio)
	check(c.Level.MaxStartAttempts >= 0, "level.max_start_attempts must not be negative")
	check(c.Level.MaxWalkAttempts > 0, "level.max_walk_attempts must be positive")

	check(isProbability(c.Fire.BaseSpread), "fire.base_spread must be in [0,1], got %v", c.Fire.BaseSpread)
	check(c.Fire.SpreadIncrease >= 0, "fire.spread_increase must not be negative")
	check(isProbability(c.Fire.Persistence), "fire.persistence must be in [0,1], got %v", c.Fire.Persistence)
	check(isProbability(c.Gas.BaseSpread), "gas.base_spread must be in [0,1], got %v", c.Gas.BaseSpread)
	check(c.Gas.SpreadIncrease >= 0, "gas.spread_increase must not be negative")

	check(c.Explosion.MinRadius >= 0, "explosion.min_radius must not be negative")
	check(c.Explosion.MaxRadius >= c.Explosion.MinRadius, "explosion.max_radius %d below min_radius %d", c.Explosion.MaxRadius, c.Explosion.MinRadius)
	check(c.Explosion.MaxChain > 0, "explosion.max_chain must be positive")

	check(c.Player.Size > 0 && c.Player.Size%2 == 1, "player.size must be odd and positive, got %d", c.Player.Size)
	check(c.Player.Size <= c.Level.Ratio-2, "player.size %d must fit a corridor of level.ratio %d", c.Player.Size, c.Level.Ratio)
	check(c.Player.MaxGasCans >= 0 && c.Player.MaxGasCans <= 4, "player.max_gas_cans must be in [0,4], got %d", c.Player.MaxGasCans)

	check(c.Scoring.LevelPoints > 0, "scoring.level_points must be positive")
	check(c.Scoring.CampaignLevels > 0, "scoring.campaign_levels must be positive")
	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive")
	check(c.Timing.SpreadEvery > 0, "timing.spread_every must be positive")

	switch c.Difficulty.Progression.Type {
	case "levels", "score", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q unknown", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
