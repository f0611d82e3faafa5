package pyro

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pyro/internal/config"
	"github.com/vovakirdan/tui-pyro/internal/core"
	"github.com/vovakirdan/tui-pyro/internal/grid"
	"github.com/vovakirdan/tui-pyro/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign" // escape a fixed number of levels to win
	ModeEndless  Mode = "endless"  // keep escaping while the fire grows hotter
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives level events of every game created afterwards
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty clears it.
func SetDifficultyPreset(preset string) error {
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetLogger sets the logger handed to new games. nil disables logging.
func SetLogger(l *log.Logger) {
	logger = l
}

func init() {
	registry.Register("pyro", func() registry.Game {
		return New()
	})
	registry.Register("pyro_endless", func() registry.Game {
		return NewEndless()
	})
}

// Game adapts Pyro to the platform: it maps input to player commands,
// chains levels and renders the view around the player.
type Game struct {
	mode       Mode
	runtime    core.RuntimeConfig
	cfg        config.PyroConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	pyro       *Pyro

	tick         uint64
	escaped      int // levels escaped in this run
	results      []LevelResult
	levelCleared bool
	clearTicks   int
	paused       bool
	gameOver     bool
	won          bool
	err          error
}

// New creates a campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "pyro_endless"
	}
	return "pyro"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Pyro (Endless)"
	}
	return "Pyro"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Burn your way out of maze after maze as the fire grows hotter"
	}
	return "Leave a fuse behind, reach the exit, and let the maze burn"
}

// Reset loads the configuration and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadPyro(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default configuration", "err", err)
		}
		cfg = config.DefaultPyroConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPyroPreset(&cfg, difficultyPreset)
	}
	g.ResetWithConfig(cfg, runtime)
}

// ResetWithConfig starts a new run with an explicit configuration.
func (g *Game) ResetWithConfig(cfg config.PyroConfig, runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.pyro = NewPyro(SettingsFromConfig(cfg), g.rng)
	g.pyro.SetLogger(logger)

	g.tick = 0
	g.escaped = 0
	g.results = nil
	g.levelCleared = false
	g.clearTicks = 0
	g.paused = false
	g.gameOver = false
	g.won = false
	g.err = nil

	g.startLevel()
}

// startLevel builds the next level with the difficulty reached so far.
func (g *Game) startLevel() {
	s := scaleDifficulty(SettingsFromConfig(g.cfg), g.cfg, g.difficulty, g.escaped, g.pyro.Score())
	g.pyro.SetAutomatonParams(s.Automaton)
	g.pyro.SetLevelParams(s.Level)

	g.levelCleared = false
	g.clearTicks = 0
	if err := g.pyro.StartNewLevel(); err != nil {
		g.err = err
		g.gameOver = true
		if logger != nil {
			logger.Error("cannot build level", "err", err)
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.ResetWithConfig(g.cfg, core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.gameOver || g.won || g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.clearTicks++
		if input.Has(core.ActionConfirm) || g.clearTicks >= g.clearDelay() {
			g.startLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	if !g.pyro.Tick() {
		g.levelOver()
	}

	return core.StepResult{State: g.State()}
}

// clearDelay is how long the level summary stays up, about three seconds.
func (g *Game) clearDelay() int {
	return max(1, g.cfg.Timing.TickRate*3)
}

// processInput turns actions into player commands.
func (g *Game) processInput(input core.InputFrame) {
	switch {
	case input.Has(core.ActionUp):
		g.pyro.SetDirection(grid.North)
	case input.Has(core.ActionDown):
		g.pyro.SetDirection(grid.South)
	case input.Has(core.ActionLeft):
		g.pyro.SetDirection(grid.West)
	case input.Has(core.ActionRight):
		g.pyro.SetDirection(grid.East)
	case input.Has(core.ActionStop):
		g.pyro.SetDirection(grid.None)
	}

	// Errors only mean no level is running, which Step already ruled out.
	if input.Has(core.ActionPickUp) {
		_, _ = g.pyro.PickUpGasCan()
	}
	if input.Has(core.ActionDrop) {
		_, _ = g.pyro.DropGasCan()
	}
}

// levelOver records the finished level and decides what comes next.
func (g *Game) levelOver() {
	r := g.pyro.LastResult()
	g.results = append(g.results, r)

	if r.Outcome != OutcomeEscaped {
		g.gameOver = true
		return
	}

	g.escaped++
	if g.mode == ModeCampaign && g.escaped >= g.cfg.Scoring.CampaignLevels {
		g.won = true
		return
	}
	g.levelCleared = true
	g.clearTicks = 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.pyro != nil {
		score = g.pyro.Score()
	}
	return core.GameState{
		Score:    score,
		Level:    g.escaped,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Results returns the finished levels of the current run.
func (g *Game) Results() []LevelResult {
	out := make([]LevelResult, len(g.results))
	copy(out, g.results)
	return out
}

// Err returns the level construction error that ended the run, if any.
func (g *Game) Err() error {
	return g.err
}

// Pyro exposes the running simulation.
func (g *Game) Pyro() *Pyro {
	return g.pyro
}
