package pyro

import (
	"github.com/vovakirdan/tui-pyro/internal/config"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/automaton"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/maze"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/player"
)

// SettingsFromConfig converts the YAML configuration into component
// tunables.
func SettingsFromConfig(cfg config.PyroConfig) Settings {
	mazeOpts := maze.DefaultOptions()
	mazeOpts.WallRemovalRatio = cfg.Level.WallRemovalRatio
	mazeOpts.MaxDirectionAttempts = cfg.Level.MaxWalkAttempts

	return Settings{
		Height:      cfg.Level.Height,
		Width:       cfg.Level.Width,
		SpreadEvery: cfg.Timing.SpreadEvery,
		Level: level.Params{
			Ratio:             cfg.Level.Ratio,
			GasCanProbability: cfg.Level.GasCanProbability,
			MaxStartAttempts:  cfg.Level.MaxStartAttempts,
			Maze:              mazeOpts,
		},
		Automaton: automaton.Params{
			BaseFireSpread:     cfg.Fire.BaseSpread,
			FireSpreadIncrease: cfg.Fire.SpreadIncrease,
			FirePersistence:    cfg.Fire.Persistence,
			BaseGasSpread:      cfg.Gas.BaseSpread,
			GasSpreadIncrease:  cfg.Gas.SpreadIncrease,
			MinExplosionRadius: cfg.Explosion.MinRadius,
			MaxExplosionRadius: cfg.Explosion.MaxRadius,
			MaxChain:           cfg.Explosion.MaxChain,
		},
		Player: player.Params{
			Size:        cfg.Player.Size,
			MaxGasCans:  cfg.Player.MaxGasCans,
			LevelPoints: cfg.Scoring.LevelPoints,
		},
	}
}

// scaleDifficulty returns s with fire spread and gas can density raised
// for the given progress.
func scaleDifficulty(s Settings, cfg config.PyroConfig, dm *config.DifficultyManager, levels, score int) Settings {
	s.Automaton.BaseFireSpread = dm.FireSpread(cfg.Fire.BaseSpread, levels, score)
	s.Level.GasCanProbability = dm.GasCanProbability(cfg.Level.GasCanProbability, levels, score)
	return s
}
