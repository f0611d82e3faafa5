// Package player implements the pyromaniac walking the level. The player
// only holds coordinates into the level; every tile access goes through
// the level's bounds-checked accessors.
package player

import (
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

// Params holds the player tunables.
type Params struct {
	Size        int // footprint side, odd
	MaxGasCans  int
	LevelPoints int // points for a level finished with every wall intact
}

// DefaultParams returns the stock player tunables.
func DefaultParams() Params {
	return Params{
		Size:        3,
		MaxGasCans:  4,
		LevelPoints: 10000,
	}
}

// Player is the pyromaniac.
type Player struct {
	params Params

	center    grid.Coord
	direction grid.Direction
	alive     bool
	moving    bool
	finished  bool
	gasCans   int
	score     int
}

// New creates a player off the level with no score.
func New(p Params) *Player {
	if p.Size < 1 {
		p.Size = 1
	}
	pl := &Player{params: p}
	pl.Reset(grid.C(-1, -1), true)
	return pl
}

// Reset places the player at center, alive and standing still. A complete
// reset also drops the score and held gas cans.
func (p *Player) Reset(center grid.Coord, complete bool) {
	p.center = center
	p.direction = grid.None
	p.alive = true
	p.moving = false
	p.finished = false
	if complete {
		p.gasCans = 0
		p.score = 0
	}
}

func (p *Player) Center() grid.Coord        { return p.center }
func (p *Player) Direction() grid.Direction { return p.direction }
func (p *Player) IsAlive() bool             { return p.alive }
func (p *Player) IsMoving() bool            { return p.moving }
func (p *Player) IsFinished() bool          { return p.finished }
func (p *Player) GasCans() int              { return p.gasCans }
func (p *Player) Score() int                { return p.score }
func (p *Player) Params() Params            { return p.params }

// SetDirection sets the facing direction. None stops the player.
func (p *Player) SetDirection(d grid.Direction) {
	p.direction = d
}

// Stop marks the player dead without touching the level. Used once the
// player has escaped and the level is left to burn.
func (p *Player) Stop() {
	p.alive = false
	p.moving = false
}

func (p *Player) half() int {
	return p.params.Size / 2
}

// IsTouching reports whether (row, col) lies inside the footprint.
func (p *Player) IsTouching(row, col int) bool {
	return abs(row-p.center.Row) <= p.half() && abs(col-p.center.Col) <= p.half()
}

// Footprint calls fn for every on-level tile under the player.
func (p *Player) Footprint(l *level.Level, fn func(t *level.Tile)) {
	l.Square(p.center.Row, p.center.Col, p.params.Size, fn)
}

// Move steps the player one tile along its facing direction when the
// strip it would move into is clear. The vacated center is left as a fuse.
// It reports whether the player moved.
func (p *Player) Move(l *level.Level) bool {
	p.moving = p.alive && !p.finished && p.direction.IsCardinal() && p.canMove(l)
	if p.moving {
		p.setFuse(l)
		p.center = p.center.Step(p.direction)
	}
	return p.moving
}

// leadingStrip returns the on-level tiles just beyond the footprint edge in
// the facing direction.
func (p *Player) leadingStrip(l *level.Level) []*level.Tile {
	dr, dc := p.direction.Delta()
	ahead := p.center.Add(dr*(p.half()+1), dc*(p.half()+1))

	var strip []*level.Tile
	for i := -p.half(); i <= p.half(); i++ {
		at := ahead.Add(dc*i, dr*i)
		if t := l.Tile(at.Row, at.Col); t != nil {
			strip = append(strip, t)
		}
	}
	return strip
}

func (p *Player) canMove(l *level.Level) bool {
	strip := p.leadingStrip(l)
	for _, t := range strip {
		if t.Terrain.Solid() {
			return false
		}
	}
	return len(strip) > 0
}

func (p *Player) setFuse(l *level.Level) {
	switch l.Terrain(p.center.Row, p.center.Col) {
	case level.Gas, level.None:
		l.SetTerrain(p.center.Row, p.center.Col, level.Fuse)
	case level.Wall, level.StrongWall, level.GasCan, level.Fire, level.Fuse, level.Exit:
	}
}

// RefreshStatus kills the player standing in fire or finishes the player
// standing on an exit, whichever the footprint shows first in row-major
// order.
func (p *Player) RefreshStatus(l *level.Level) {
	if !p.alive || p.finished {
		return
	}

	var hit level.Terrain
	p.Footprint(l, func(t *level.Tile) {
		if hit == level.None && (t.Terrain == level.Fire || t.Terrain == level.Exit) {
			hit = t.Terrain
		}
	})

	switch hit {
	case level.Fire:
		p.Kill(l)
	case level.Exit:
		p.finished = true
		p.setFuse(l)
	}
}

// Kill ends the player: held gas cans drop to the footprint corners and
// everything else under the player catches fire.
func (p *Player) Kill(l *level.Level) {
	p.alive = false
	p.moving = false

	for p.gasCans > 0 {
		p.DropGasCan(l)
	}
	p.Footprint(l, func(t *level.Tile) {
		if t.Terrain != level.GasCan {
			t.Terrain = level.Fire
		}
	})
}

// PickUpGasCan collects gas cans under the footprint until the player's
// hands are full. It returns the number collected.
func (p *Player) PickUpGasCan(l *level.Level) int {
	picked := 0
	p.Footprint(l, func(t *level.Tile) {
		if t.Terrain == level.GasCan && p.gasCans < p.params.MaxGasCans {
			t.Terrain = level.None
			p.gasCans++
			picked++
		}
	})
	return picked
}

// DropGasCan puts down the last gas can picked up. Each can count has its
// own footprint corner: 4 bottom-right, 3 bottom-left, 2 top-right and
// 1 top-left. A moving player spills gas instead.
func (p *Player) DropGasCan(l *level.Level) bool {
	if p.gasCans == 0 {
		return false
	}

	h := p.half()
	var dr, dc int
	switch p.gasCans {
	case 4:
		dr, dc = h, h
	case 3:
		dr, dc = h, -h
	case 2:
		dr, dc = -h, h
	default:
		dr, dc = -h, -h
	}

	terrain := level.GasCan
	if p.moving {
		terrain = level.Gas
	}
	p.gasCans--
	l.SetTerrain(p.center.Row+dr, p.center.Col+dc, terrain)
	return true
}

// AddScore credits the level's result against its wall baseline and
// returns the increment.
func (p *Player) AddScore(l *level.Level, baseline int) int {
	inc := ScoreIncrement(l.CountTerrain(level.Wall), baseline, p.params.LevelPoints)
	p.score += inc
	return inc
}

// ScoreIncrement is floor(wallsLeft/baseline * points), or twice the points
// for a level with no wall left.
func ScoreIncrement(wallsLeft, baseline, points int) int {
	if wallsLeft == 0 {
		return 2 * points
	}
	if baseline < 1 {
		baseline = 1
	}
	return wallsLeft * points / baseline
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
