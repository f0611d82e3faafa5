package config

import (
	_ "embed"
)

//go:embed defaults/pyro.yaml
var defaultPyroYAML []byte

// DefaultPyroConfig returns the default Pyro configuration.
func DefaultPyroConfig() PyroConfig {
	return PyroConfig{
		Level: LevelConfig{
			Height:            100,
			Width:             100,
			Ratio:             5,
			GasCanProbability: 0.02,
			WallRemovalRatio:  0.6,
			MaxStartAttempts:  1000,
			MaxWalkAttempts:   1000,
		},
		Fire: FireConfig{
			BaseSpread:     0.40,
			SpreadIncrease: 0.03,
			Persistence:    0.90,
		},
		Gas: GasConfig{
			BaseSpread:     0.10,
			SpreadIncrease: 0.005,
		},
		Explosion: ExplosionConfig{
			MinRadius: 3,
			MaxRadius: 6,
			MaxChain:  64,
		},
		Player: PlayerConfig{
			Size:       3,
			MaxGasCans: 4,
		},
		Scoring: ScoringConfig{
			LevelPoints:    10000,
			CampaignLevels: 10,
		},
		Timing: TimingConfig{
			TickRate:    20,
			SpreadEvery: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "levels",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				FireSpreadBonus:  0.2,
				GasCanMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultPyroYAML))
	copy(out, defaultPyroYAML)
	return out
}
