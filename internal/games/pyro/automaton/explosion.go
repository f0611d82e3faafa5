package automaton

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

// ExplosionRadius rolls a radius uniformly in [MinExplosionRadius, MaxExplosionRadius].
func (a *Automaton) ExplosionRadius() int {
	lo, hi := a.params.MinExplosionRadius, a.params.MaxExplosionRadius
	return lo + a.rng.Intn(hi-lo+1)
}

type blast struct {
	at     grid.Coord
	radius int
}

// Explode detonates a gas can at (row, col). Every tile within radius+1 of
// the center is set on fire, except exits and strong walls. Gas cans caught
// in the blast explode in turn with a freshly rolled radius, at most once
// each and at most MaxChain explosions in total; cans past the cap just burn.
func (a *Automaton) Explode(l *level.Level, row, col, radius int) Stats {
	var stats Stats
	origin := grid.C(row, col)
	if !l.Contains(row, col) {
		return stats
	}

	queued := mapset.New[grid.Coord]()
	queued.Put(origin)
	queue := []blast{{at: origin, radius: radius}}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		stats.Explosions++

		if l.SpreadInto(b.at.Row, b.at.Col, level.Fire) {
			stats.Ignited++
		}

		reach := float64(b.radius + 1)
		for _, c := range spiral(b.at, b.radius+1) {
			t := l.Tile(c.Row, c.Col)
			if t == nil || t.SpreadTo || b.at.Distance(c) > reach {
				continue
			}

			switch t.Terrain {
			case level.GasCan:
				if queued.Has(c) {
					continue
				}
				if queued.Size() >= a.params.MaxChain {
					stats.ChainCapped = true
					t.SpreadInto(level.Fire)
					stats.Ignited++
					continue
				}
				queued.Put(c)
				queue = append(queue, blast{at: c, radius: a.ExplosionRadius()})
			case level.Exit, level.StrongWall:
			case level.None, level.Wall, level.Gas, level.Fire, level.Fuse:
				t.SpreadInto(level.Fire)
				stats.Ignited++
			}
		}
	}

	return stats
}

// spiral returns every coordinate within Chebyshev distance reach of
// center as a square spiral: legs alternate between the row and column
// axes, grow by one every two legs and flip sign after each pair.
func spiral(center grid.Coord, reach int) []grid.Coord {
	side := 2*reach + 1
	total := side * side
	out := make([]grid.Coord, 0, total)

	at := center
	out = append(out, at)
	sign := 1
	for leg := 1; len(out) < total; leg++ {
		for i := 0; i < leg && len(out) < total; i++ {
			at.Row += sign
			out = append(out, at)
		}
		for i := 0; i < leg && len(out) < total; i++ {
			at.Col += sign
			out = append(out, at)
		}
		sign = -sign
	}

	return out
}
