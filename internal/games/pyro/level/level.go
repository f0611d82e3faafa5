// Package level turns a generated maze into the fine-grained tile grid the
// game is played on. A Level owns its tiles; everything else addresses them
// by coordinate through bounds-checked accessors.
package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-pyro/internal/games/pyro/maze"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

var (
	// ErrLevelTooSmall is returned when the coarse grid has no interior
	// cell to place an exit segment or a start position on.
	ErrLevelTooSmall = errors.New("level: coarse grid must be at least 3x3")

	// ErrInvalidRatio is returned for cell ratios too small to carve an exit.
	ErrInvalidRatio = errors.New("level: cell ratio must be at least 3")

	// ErrNoStartPosition is returned when no start candidate is far enough
	// from every exit.
	ErrNoStartPosition = errors.New("level: no start position far enough from exits")
)

// Params controls level construction.
type Params struct {
	Ratio             int     // fine tiles per coarse cell side
	GasCanProbability float64 // chance each empty tile becomes a gas can
	MaxStartAttempts  int     // random start samples before the exhaustive scan
	Maze              maze.Options
}

// DefaultParams returns the stock level parameters.
func DefaultParams() Params {
	return Params{
		Ratio:             5,
		GasCanProbability: 0.02,
		MaxStartAttempts:  1000,
		Maze:              maze.DefaultOptions(),
	}
}

// Tile is a single fine-grid square.
type Tile struct {
	Row, Col int
	Terrain  Terrain
	SpreadTo bool // already updated during the current automaton pass
}

// SpreadInto sets the terrain and marks the tile as updated this pass.
func (t *Tile) SpreadInto(terrain Terrain) {
	t.Terrain = terrain
	t.SpreadTo = true
}

// Level is a playable tile grid.
type Level struct {
	Height int
	Width  int

	Start     grid.Coord
	Exits     []grid.Coord
	ExitSide  grid.Direction
	WallCount int // wall tiles present when the level was built

	tiles *grid.Grid[Tile]
}

// Blank creates a level of the given size with every tile set to None and
// no exits.
func Blank(height, width int) *Level {
	return &Level{
		Height: height,
		Width:  width,
		tiles: grid.New(height, width, func(r, c int) Tile {
			return Tile{Row: r, Col: c}
		}),
	}
}

// Parse builds a level from rows of terrain glyphs. Exits are collected
// from the parsed tiles and WallCount is taken from the parsed walls.
func Parse(rows []string) (*Level, error) {
	if len(rows) == 0 {
		return nil, errors.New("level: no rows")
	}
	width := len([]rune(rows[0]))
	l := Blank(len(rows), width)

	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("level: row %d has width %d, expected %d", r, len(runes), width)
		}
		for c, ch := range runes {
			t, ok := terrainForGlyph(ch)
			if !ok {
				return nil, fmt.Errorf("level: unknown glyph %q at %d,%d", ch, r, c)
			}
			l.tiles.At(r, c).Terrain = t
		}
	}

	l.Exits = l.collect(Exit)
	l.WallCount = l.CountTerrain(Wall)
	return l, nil
}

func terrainForGlyph(ch rune) (Terrain, bool) {
	for t, g := range terrainGlyphs {
		if g == ch {
			return Terrain(t), true
		}
	}
	return None, false
}

// Build generates a maze and converts it into a level of at least
// height x width tiles. Dimensions are rounded up to multiples of the ratio.
func Build(height, width int, p Params, rng *rand.Rand) (*Level, error) {
	if p.Ratio < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRatio, p.Ratio)
	}

	coarseH := ceilDiv(height, p.Ratio)
	coarseW := ceilDiv(width, p.Ratio)
	if coarseH < 3 || coarseW < 3 {
		return nil, fmt.Errorf("%w: got %dx%d cells for %dx%d tiles", ErrLevelTooSmall, coarseH, coarseW, height, width)
	}

	m, err := maze.Generate(coarseH, coarseW, rng, p.Maze)
	if err != nil {
		return nil, fmt.Errorf("level: generate maze: %w", err)
	}

	l := Blank(coarseH*p.Ratio, coarseW*p.Ratio)
	l.paintWalls(m, p.Ratio)
	l.applyStrongWalls()
	l.applyGasCans(p.GasCanProbability, rng)
	l.applyExit(coarseH, coarseW, p.Ratio, rng)

	start, err := l.findStart(coarseH, coarseW, p.Ratio, p.MaxStartAttempts, rng)
	if err != nil {
		return nil, err
	}
	l.Start = start
	l.WallCount = l.CountTerrain(Wall)

	return l, nil
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// paintWalls draws a ratio-long line of wall tiles along every edge of a
// cell's footprint that still carries a wall flag.
func (l *Level) paintWalls(m *maze.Maze, ratio int) {
	m.Each(func(c *maze.Cell) {
		top, left := c.Row*ratio, c.Col*ratio
		bottom, right := top+ratio-1, left+ratio-1

		for i := 0; i < ratio; i++ {
			if c.North {
				l.SetTerrain(top, left+i, Wall)
			}
			if c.South {
				l.SetTerrain(bottom, left+i, Wall)
			}
			if c.West {
				l.SetTerrain(top+i, left, Wall)
			}
			if c.East {
				l.SetTerrain(top+i, right, Wall)
			}
		}
	})
}

// applyStrongWalls hardens the corner tile and its two edge neighbors at
// each of the four corners.
func (l *Level) applyStrongWalls() {
	h, w := l.Height-1, l.Width-1
	corners := []grid.Coord{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1},
		{Row: 0, Col: w}, {Row: 0, Col: w - 1}, {Row: 1, Col: w},
		{Row: h, Col: 0}, {Row: h, Col: 1}, {Row: h - 1, Col: 0},
		{Row: h, Col: w}, {Row: h, Col: w - 1}, {Row: h - 1, Col: w},
	}
	for _, c := range corners {
		l.SetTerrain(c.Row, c.Col, StrongWall)
	}
}

func (l *Level) applyGasCans(probability float64, rng *rand.Rand) {
	l.tiles.Each(func(_, _ int, t *Tile) {
		if t.Terrain == None && rng.Float64() < probability {
			t.Terrain = GasCan
		}
	})
}

// applyExit carves a ratio-2 tile opening on a random side, aligned to a
// coarse cell that is not at either end of that side.
func (l *Level) applyExit(coarseH, coarseW, ratio int, rng *rand.Rand) {
	l.ExitSide = grid.Random(rng)

	var span, fixed int
	vertical := false
	switch l.ExitSide {
	case grid.North:
		span, fixed = coarseW, 0
	case grid.South:
		span, fixed = coarseW, l.Height-1
	case grid.West:
		span, fixed, vertical = coarseH, 0, true
	case grid.East:
		span, fixed, vertical = coarseH, l.Width-1, true
	}

	cell := 1 + rng.Intn(span-2)
	l.Exits = l.Exits[:0]
	for i := 1; i < ratio-1; i++ {
		at := grid.C(fixed, cell*ratio+i)
		if vertical {
			at = grid.C(cell*ratio+i, fixed)
		}
		l.SetTerrain(at.Row, at.Col, Exit)
		l.Exits = append(l.Exits, at)
	}
}

// MinStartDistance is the distance every exit must exceed from the start.
func (l *Level) MinStartDistance() float64 {
	return float64(min(l.Height, l.Width)) / 2
}

// ExitDistance returns the distance from c to the nearest exit, or +Inf
// when the level has no exits.
func (l *Level) ExitDistance(c grid.Coord) float64 {
	d := math.Inf(1)
	for _, e := range l.Exits {
		d = math.Min(d, c.Distance(e))
	}
	return d
}

// findStart samples random interior cell centers until one is far enough
// from every exit, then falls back to scanning every candidate for the
// farthest one.
func (l *Level) findStart(coarseH, coarseW, ratio, attempts int, rng *rand.Rand) (grid.Coord, error) {
	threshold := l.MinStartDistance()
	center := func(ri, ci int) grid.Coord {
		return grid.C(ri*ratio+ratio/2, ci*ratio+ratio/2)
	}

	for i := 0; i < attempts; i++ {
		c := center(1+rng.Intn(coarseH-2), 1+rng.Intn(coarseW-2))
		if l.ExitDistance(c) > threshold {
			return c, nil
		}
	}

	best, bestDist := grid.Coord{}, -1.0
	for ri := 1; ri < coarseH-1; ri++ {
		for ci := 1; ci < coarseW-1; ci++ {
			c := center(ri, ci)
			if d := l.ExitDistance(c); d > bestDist {
				best, bestDist = c, d
			}
		}
	}
	if bestDist > threshold {
		return best, nil
	}
	return grid.Coord{}, fmt.Errorf("%w: best %.2f, need more than %.2f", ErrNoStartPosition, bestDist, threshold)
}

// Contains reports whether (row, col) is on the level.
func (l *Level) Contains(row, col int) bool {
	return l.tiles.InBounds(row, col)
}

// Tile returns the tile at (row, col), or nil when out of bounds.
func (l *Level) Tile(row, col int) *Tile {
	return l.tiles.At(row, col)
}

// Terrain returns the terrain at (row, col). Out-of-bounds reads return None.
func (l *Level) Terrain(row, col int) Terrain {
	if t := l.tiles.At(row, col); t != nil {
		return t.Terrain
	}
	return None
}

// SetTerrain sets the terrain at (row, col). It reports false and does
// nothing when the coordinate is off the level or the terrain is unknown.
func (l *Level) SetTerrain(row, col int, terrain Terrain) bool {
	t := l.tiles.At(row, col)
	if t == nil || !terrain.Valid() {
		return false
	}
	t.Terrain = terrain
	return true
}

// SpreadInto sets the terrain at (row, col) and marks the tile as updated
// for the current pass.
func (l *Level) SpreadInto(row, col int, terrain Terrain) bool {
	t := l.tiles.At(row, col)
	if t == nil || !terrain.Valid() {
		return false
	}
	t.SpreadInto(terrain)
	return true
}

// Each calls fn for every tile in row-major order.
func (l *Level) Each(fn func(t *Tile)) {
	l.tiles.Each(func(_, _ int, t *Tile) { fn(t) })
}

// Square calls fn for every on-level tile of the size x size square
// centered on (row, col), in row-major order.
func (l *Level) Square(row, col, size int, fn func(t *Tile)) {
	l.tiles.Square(row, col, size, func(_, _ int, t *Tile) { fn(t) })
}

// Neighbors returns the on-level tiles of the 8-neighborhood of (row, col).
func (l *Level) Neighbors(row, col int) []*Tile {
	coords := l.tiles.Neighbors8(row, col)
	out := make([]*Tile, 0, len(coords))
	for _, c := range coords {
		out = append(out, l.tiles.At(c.Row, c.Col))
	}
	return out
}

// IsOnFire reports whether any tile is burning.
func (l *Level) IsOnFire() bool {
	_, ok := l.tiles.Search(0, 0, func(_, _ int, t *Tile) bool {
		return t.Terrain == Fire
	})
	return ok
}

// CountTerrain returns the number of tiles of the given terrain.
func (l *Level) CountTerrain(terrain Terrain) int {
	return l.tiles.Count(func(t *Tile) bool { return t.Terrain == terrain })
}

// ClearSpreadFlags resets every tile's per-pass update flag.
func (l *Level) ClearSpreadFlags() {
	l.tiles.Each(func(_, _ int, t *Tile) { t.SpreadTo = false })
}

func (l *Level) collect(terrain Terrain) []grid.Coord {
	var out []grid.Coord
	l.tiles.Each(func(r, c int, t *Tile) {
		if t.Terrain == terrain {
			out = append(out, grid.C(r, c))
		}
	})
	return out
}

// String renders the level with one glyph per tile.
func (l *Level) String() string {
	var sb strings.Builder
	sb.Grow((l.Width + 1) * l.Height)
	for r := 0; r < l.Height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < l.Width; c++ {
			sb.WriteRune(l.Terrain(r, c).Glyph())
		}
	}
	return sb.String()
}
