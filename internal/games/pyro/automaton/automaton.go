// Package automaton advances the fire and gas cellular automaton over a
// level's tiles.
//
// One call to Step is one full pass: every fire and gas tile that was not
// itself changed earlier in the pass spreads into its 8-neighborhood. Tiles
// changed during a pass are marked and are neither sources nor targets for
// the rest of it. The marks are cleared when the pass ends.
package automaton

import (
	"math/rand"

	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
)

// Params holds the automaton tunables.
type Params struct {
	BaseFireSpread     float64 // chance a wall neighbor catches fire
	FireSpreadIncrease float64 // added per burning neighbor
	FirePersistence    float64 // chance a fire survives its own spread
	BaseGasSpread      float64 // chance an empty neighbor fills with gas
	GasSpreadIncrease  float64 // added per gas neighbor

	MinExplosionRadius int
	MaxExplosionRadius int
	MaxChain           int // explosions allowed per chain reaction
}

// DefaultParams returns the stock automaton tunables.
func DefaultParams() Params {
	return Params{
		BaseFireSpread:     0.40,
		FireSpreadIncrease: 0.03,
		FirePersistence:    0.90,
		BaseGasSpread:      0.10,
		GasSpreadIncrease:  0.005,
		MinExplosionRadius: 3,
		MaxExplosionRadius: 6,
		MaxChain:           64,
	}
}

// Occupant is whatever stands on the level. Empty tiles only burn under a
// living occupant that has not finished.
type Occupant interface {
	IsTouching(row, col int) bool
	IsAlive() bool
	IsFinished() bool
}

// Stats counts what happened during one pass.
type Stats struct {
	Ignited      int
	Gassed       int
	Extinguished int
	Explosions   int
	ChainCapped  bool
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Ignited += other.Ignited
	s.Gassed += other.Gassed
	s.Extinguished += other.Extinguished
	s.Explosions += other.Explosions
	s.ChainCapped = s.ChainCapped || other.ChainCapped
}

// Automaton applies the spread rules with its own random source.
type Automaton struct {
	params Params
	rng    *rand.Rand
}

// New creates an automaton.
func New(p Params, rng *rand.Rand) *Automaton {
	if p.MaxExplosionRadius < p.MinExplosionRadius {
		p.MaxExplosionRadius = p.MinExplosionRadius
	}
	if p.MaxChain <= 0 {
		p.MaxChain = 1
	}
	return &Automaton{params: p, rng: rng}
}

// Params returns the tunables in use.
func (a *Automaton) Params() Params {
	return a.params
}

// SetParams replaces the tunables, keeping the random source.
func (a *Automaton) SetParams(p Params) {
	*a = *New(p, a.rng)
}

// Step runs one full pass over l in row-major order and clears the
// per-pass marks afterwards. occ may be nil.
func (a *Automaton) Step(l *level.Level, occ Occupant) Stats {
	var stats Stats

	l.Each(func(t *level.Tile) {
		if t.SpreadTo {
			return
		}
		switch t.Terrain {
		case level.Fire:
			stats.Add(a.SpreadFire(l, occ, t.Row, t.Col))
		case level.Gas:
			stats.Add(a.SpreadGas(l, t.Row, t.Col))
		case level.None, level.Wall, level.StrongWall, level.GasCan, level.Fuse, level.Exit:
		}
	})
	l.ClearSpreadFlags()

	return stats
}

// SpreadFire spreads the fire at (row, col) into its neighbors and then
// gives it a chance to burn out.
func (a *Automaton) SpreadFire(l *level.Level, occ Occupant, row, col int) Stats {
	var stats Stats
	src := l.Tile(row, col)
	if src == nil || src.Terrain != level.Fire {
		return stats
	}

	neighbors := l.Neighbors(row, col)
	probability := a.params.BaseFireSpread + a.params.FireSpreadIncrease*float64(countTerrain(neighbors, level.Fire))

	for _, n := range neighbors {
		if n.SpreadTo {
			continue
		}
		switch n.Terrain {
		case level.Wall:
			if a.rng.Float64() < probability {
				n.SpreadInto(level.Fire)
				stats.Ignited++
			}
		case level.Gas, level.Fuse:
			n.SpreadInto(level.Fire)
			stats.Ignited++
		case level.None:
			if burnsUnder(occ, n.Row, n.Col) {
				n.SpreadInto(level.Fire)
				stats.Ignited++
			}
		case level.GasCan:
			stats.Add(a.Explode(l, n.Row, n.Col, a.ExplosionRadius()))
		case level.StrongWall, level.Exit, level.Fire:
		}
	}

	if src.Terrain == level.Fire && a.rng.Float64() > a.params.FirePersistence {
		src.SpreadInto(level.None)
		stats.Extinguished++
	}

	return stats
}

// SpreadGas fills empty neighbors of the gas at (row, col).
func (a *Automaton) SpreadGas(l *level.Level, row, col int) Stats {
	var stats Stats
	src := l.Tile(row, col)
	if src == nil || src.Terrain != level.Gas {
		return stats
	}

	neighbors := l.Neighbors(row, col)
	probability := a.params.BaseGasSpread + a.params.GasSpreadIncrease*float64(countTerrain(neighbors, level.Gas))

	for _, n := range neighbors {
		if n.SpreadTo || n.Terrain != level.None {
			continue
		}
		if a.rng.Float64() < probability {
			n.SpreadInto(level.Gas)
			stats.Gassed++
		}
	}

	return stats
}

func burnsUnder(occ Occupant, row, col int) bool {
	return occ != nil && occ.IsAlive() && !occ.IsFinished() && occ.IsTouching(row, col)
}

func countTerrain(tiles []*level.Tile, terrain level.Terrain) int {
	n := 0
	for _, t := range tiles {
		if t.Terrain == terrain {
			n++
		}
	}
	return n
}
