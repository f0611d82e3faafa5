package config

import "math"

// DifficultyManager calculates dynamic game parameters from progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from the number
// of levels escaped and the score so far.
func (d *DifficultyManager) Level(levels int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "levels":
		progress = float64(levels) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FireSpread returns the base fire spread probability for the difficulty,
// capped at 1.
func (d *DifficultyManager) FireSpread(base float64, levels int, score int) float64 {
	level := d.Level(levels, score)
	return math.Min(1.0, base+level*d.cfg.Scaling.FireSpreadBonus)
}

// GasCanProbability returns the gas can density for the difficulty, capped at 1.
func (d *DifficultyManager) GasCanProbability(base float64, levels int, score int) float64 {
	level := d.Level(levels, score)
	return math.Min(1.0, base*(1.0+level*d.cfg.Scaling.GasCanMultiplier))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
