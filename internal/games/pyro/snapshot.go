package pyro

import (
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateBurning      GameStateType = "burning" // player gone, level still on fire
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Level    int // current level number, 1-based
	Escaped  int
	Score    int
	Center   grid.Coord
	Dir      grid.Direction
	GasCans  int
	Alive    bool
	Finished bool
	Fires    int
	Walls    int
	Terrain  string // glyph rendering of the level
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.levelCleared:
		state = StateLevelCleared
	case g.pyro != nil && !g.pyro.Player().IsAlive():
		state = StateBurning
	}

	s := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Escaped: g.escaped,
		State:   state,
	}
	if g.pyro == nil {
		return s
	}

	pl := g.pyro.Player()
	s.Level = g.pyro.LevelNumber()
	s.Score = pl.Score()
	s.Center = pl.Center()
	s.Dir = pl.Direction()
	s.GasCans = pl.GasCans()
	s.Alive = pl.IsAlive()
	s.Finished = pl.IsFinished()
	if l := g.pyro.Level(); l != nil {
		s.Fires = l.CountTerrain(level.Fire)
		s.Walls = l.CountTerrain(level.Wall)
		s.Terrain = l.String()
	}
	return s
}
