// Package pyro runs the game: it owns the current level and the player,
// advances them one tick at a time and credits the player when a level
// ends. Game adapts it to the platform's registry.Game interface.
package pyro

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pyro/internal/games/pyro/automaton"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/player"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

// ErrNoLevel is returned by operations that need a running level.
var ErrNoLevel = errors.New("pyro: no level started")

// Settings bundles the tunables of every component.
type Settings struct {
	Height      int // fine tiles, rounded up to the ratio
	Width       int
	SpreadEvery int // the automaton runs every Nth tick while the player plays
	Level       level.Params
	Automaton   automaton.Params
	Player      player.Params
}

// DefaultSettings returns the stock tunables for a 100x100 level.
func DefaultSettings() Settings {
	return Settings{
		Height:      100,
		Width:       100,
		SpreadEvery: 2,
		Level:       level.DefaultParams(),
		Automaton:   automaton.DefaultParams(),
		Player:      player.DefaultParams(),
	}
}

// Outcome tells how a level ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeEscaped
	OutcomeBurned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEscaped:
		return "escaped"
	case OutcomeBurned:
		return "burned"
	default:
		return "none"
	}
}

// LevelResult is the record of a finished level.
type LevelResult struct {
	Number     int
	Outcome    Outcome
	WallsLeft  int
	Baseline   int
	Increment  int
	Ticks      int
	Explosions int
}

// Pyro owns one level and one player and drives their interaction.
type Pyro struct {
	settings  Settings
	rng       *rand.Rand
	automaton *automaton.Automaton
	player    *player.Player
	level     *level.Level
	logger    *log.Logger

	levelNumber int
	ticks       int
	running     bool
	stats       automaton.Stats
	last        LevelResult
}

// NewPyro creates a game with no level. rng drives every random choice.
func NewPyro(s Settings, rng *rand.Rand) *Pyro {
	if s.SpreadEvery < 1 {
		s.SpreadEvery = 1
	}
	return &Pyro{
		settings:  s,
		rng:       rng,
		automaton: automaton.New(s.Automaton, rng),
		player:    player.New(s.Player),
	}
}

// SetLogger enables logging of level events. nil disables it.
func (p *Pyro) SetLogger(l *log.Logger) {
	p.logger = l
}

// Settings returns the tunables in use.
func (p *Pyro) Settings() Settings { return p.settings }

// SetAutomatonParams changes the spread tunables for the following ticks.
func (p *Pyro) SetAutomatonParams(ap automaton.Params) {
	p.settings.Automaton = ap
	p.automaton.SetParams(ap)
}

// SetLevelParams changes the generation tunables for the following levels.
func (p *Pyro) SetLevelParams(lp level.Params) {
	p.settings.Level = lp
}

// StartNewLevel builds a fresh level and places the player on its start.
// Score and held gas cans carry over.
func (p *Pyro) StartNewLevel() error {
	l, err := level.Build(p.settings.Height, p.settings.Width, p.settings.Level, p.rng)
	if err != nil {
		return fmt.Errorf("pyro: level %d: %w", p.levelNumber+1, err)
	}
	p.StartLevel(l)
	return nil
}

// StartLevel plays l as the next level.
func (p *Pyro) StartLevel(l *level.Level) {
	p.level = l
	p.player.Reset(l.Start, false)
	p.levelNumber++
	p.ticks = 0
	p.running = true
	p.stats = automaton.Stats{}
	p.last = LevelResult{}

	p.debug("level started",
		"number", p.levelNumber,
		"size", fmt.Sprintf("%dx%d", l.Height, l.Width),
		"start", l.Start,
		"exits", len(l.Exits),
		"walls", l.WallCount)
}

// Restart drops score and gas cans and starts again from level one.
func (p *Pyro) Restart() error {
	p.player = player.New(p.settings.Player)
	p.levelNumber = 0
	p.level = nil
	p.running = false
	return p.StartNewLevel()
}

// Tick advances the game by one step and reports whether the level is
// still running. While the player plays, it moves every tick and the fire
// spreads every SpreadEvery ticks. An escaped player sets the start tile
// alight and the level burns out before it is scored.
func (p *Pyro) Tick() bool {
	if !p.running || p.level == nil {
		return false
	}
	p.ticks++

	l, pl := p.level, p.player
	switch {
	case pl.IsAlive() && !pl.IsFinished():
		pl.Move(l)
		if p.ticks%p.settings.SpreadEvery == 0 {
			p.spread()
		}
		pl.RefreshStatus(l)
		if !pl.IsAlive() {
			p.debug("player burned", "level", p.levelNumber, "tick", p.ticks, "at", pl.Center())
		} else if pl.IsFinished() {
			p.debug("player escaped", "level", p.levelNumber, "tick", p.ticks, "at", pl.Center())
		}
	case pl.IsAlive():
		l.SetTerrain(l.Start.Row, l.Start.Col, level.Fire)
		pl.Stop()
	case l.IsOnFire():
		p.spread()
	default:
		p.finish()
		return false
	}
	return true
}

func (p *Pyro) spread() {
	s := p.automaton.Step(p.level, p.player)
	if s.ChainCapped && p.logger != nil {
		p.logger.Warn("explosion chain capped", "level", p.levelNumber, "tick", p.ticks, "explosions", s.Explosions)
	}
	p.stats.Add(s)
}

func (p *Pyro) finish() {
	l := p.level
	inc := p.player.AddScore(l, l.WallCount)

	outcome := OutcomeBurned
	if p.player.IsFinished() {
		outcome = OutcomeEscaped
	}
	p.last = LevelResult{
		Number:     p.levelNumber,
		Outcome:    outcome,
		WallsLeft:  l.CountTerrain(level.Wall),
		Baseline:   l.WallCount,
		Increment:  inc,
		Ticks:      p.ticks,
		Explosions: p.stats.Explosions,
	}
	p.running = false

	if p.logger != nil {
		p.logger.Info("level over",
			"number", p.levelNumber,
			"outcome", outcome,
			"walls", fmt.Sprintf("%d/%d", p.last.WallsLeft, p.last.Baseline),
			"increment", inc,
			"score", p.player.Score())
	}
}

func (p *Pyro) debug(msg string, kv ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, kv...)
	}
}

// SetTerrain overwrites a tile. Coordinates off the level are ignored.
func (p *Pyro) SetTerrain(row, col int, t level.Terrain) bool {
	if p.level == nil {
		return false
	}
	return p.level.SetTerrain(row, col, t)
}

// Terrain returns the terrain at (row, col), None off the level.
func (p *Pyro) Terrain(row, col int) level.Terrain {
	if p.level == nil {
		return level.None
	}
	return p.level.Terrain(row, col)
}

// SetDirection points the player. None stops it.
func (p *Pyro) SetDirection(d grid.Direction) {
	p.player.SetDirection(d)
}

// PickUpGasCan collects gas cans under the player.
func (p *Pyro) PickUpGasCan() (int, error) {
	if p.level == nil {
		return 0, ErrNoLevel
	}
	if !p.playing() {
		return 0, nil
	}
	return p.player.PickUpGasCan(p.level), nil
}

// DropGasCan puts a held gas can down next to the player.
func (p *Pyro) DropGasCan() (bool, error) {
	if p.level == nil {
		return false, ErrNoLevel
	}
	if !p.playing() {
		return false, nil
	}
	return p.player.DropGasCan(p.level), nil
}

func (p *Pyro) playing() bool {
	return p.running && p.player.IsAlive() && !p.player.IsFinished()
}

func (p *Pyro) Level() *level.Level     { return p.level }
func (p *Pyro) Player() *player.Player  { return p.player }
func (p *Pyro) LevelNumber() int        { return p.levelNumber }
func (p *Pyro) Ticks() int              { return p.ticks }
func (p *Pyro) Running() bool           { return p.running }
func (p *Pyro) Stats() automaton.Stats  { return p.stats }
func (p *Pyro) LastResult() LevelResult { return p.last }
func (p *Pyro) Score() int              { return p.player.Score() }
