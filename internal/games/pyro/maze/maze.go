// Package maze generates mazes over a coarse grid of cells using Wilson's
// algorithm, which yields an unbiased random spanning tree. A cosmetic pass
// then perforates extra inside walls so the maze has cycles.
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spakin/disjoint"

	"github.com/vovakirdan/tui-pyro/internal/grid"
)

var (
	// ErrInvalidSize is returned for mazes without at least one cell.
	ErrInvalidSize = errors.New("maze: dimensions must be positive")

	// ErrSeedNotInMaze means a random walk grew to cover every cell without
	// reaching the maze, so the initial cell was never marked.
	ErrSeedNotInMaze = errors.New("maze: initial cell not marked as part of maze")

	// ErrLoopNotOnStack means loop erasure emptied the walk stack without
	// finding the revisited cell, so a stacked flag was left uncleared.
	ErrLoopNotOnStack = errors.New("maze: revisited cell not found on walk stack")

	// ErrWalkStuck means no direction led to an on-grid neighbor within the
	// retry bound.
	ErrWalkStuck = errors.New("maze: random walk could not leave cell")
)

// Options tunes generation.
type Options struct {
	// WallRemovalRatio is the fraction of the cell count removed as extra
	// inside walls after the spanning tree is built.
	WallRemovalRatio float64

	// MaxDirectionAttempts bounds the retries for a walk step that would
	// leave the grid.
	MaxDirectionAttempts int

	// MaxRemovalAttempts bounds the retries for picking an inside wall.
	MaxRemovalAttempts int
}

// DefaultOptions returns the stock generation options.
func DefaultOptions() Options {
	return Options{
		WallRemovalRatio:     0.6,
		MaxDirectionAttempts: 1000,
		MaxRemovalAttempts:   1000,
	}
}

// Cell is a coarse maze-generation unit.
type Cell struct {
	Row, Col int

	North, South, East, West bool // true = wall present

	PartOfMaze bool
	Stacked    bool
	Direction  grid.Direction // direction stepped in when last visited
}

// Wall reports whether the wall on side d is present.
func (c *Cell) Wall(d grid.Direction) bool {
	switch d {
	case grid.North:
		return c.North
	case grid.South:
		return c.South
	case grid.East:
		return c.East
	case grid.West:
		return c.West
	default:
		return false
	}
}

// SetWall sets the wall flag on side d.
func (c *Cell) SetWall(d grid.Direction, present bool) {
	switch d {
	case grid.North:
		c.North = present
	case grid.South:
		c.South = present
	case grid.East:
		c.East = present
	case grid.West:
		c.West = present
	}
}

// Maze owns a Height x Width grid of cells.
type Maze struct {
	Height int
	Width  int

	cells *grid.Grid[Cell]
	rng   *rand.Rand
	opts  Options
}

// New creates a maze with every wall present and no cell in the maze yet.
func New(height, width int, rng *rand.Rand, opts Options) (*Maze, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, height, width)
	}
	if opts.MaxDirectionAttempts <= 0 {
		opts.MaxDirectionAttempts = DefaultOptions().MaxDirectionAttempts
	}
	if opts.MaxRemovalAttempts <= 0 {
		opts.MaxRemovalAttempts = DefaultOptions().MaxRemovalAttempts
	}
	return &Maze{
		Height: height,
		Width:  width,
		cells: grid.New(height, width, func(r, c int) Cell {
			return Cell{Row: r, Col: c, North: true, South: true, East: true, West: true}
		}),
		rng:  rng,
		opts: opts,
	}, nil
}

// Generate creates a maze and runs the full generation: spanning tree,
// duplicate wall removal and the cosmetic perforation pass.
func Generate(height, width int, rng *rand.Rand, opts Options) (*Maze, error) {
	m, err := New(height, width, rng, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Generate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Cell returns the cell at (row, col), or nil when out of bounds.
func (m *Maze) Cell(row, col int) *Cell {
	return m.cells.At(row, col)
}

// NextCell returns the cell one step from c in direction d, or nil when
// that step leaves the grid. None returns c itself.
func (m *Maze) NextCell(c *Cell, d grid.Direction) *Cell {
	if !d.IsCardinal() {
		return c
	}
	dr, dc := d.Delta()
	return m.Cell(c.Row+dr, c.Col+dc)
}

// Generate runs the spanning tree construction followed by the cosmetic
// passes.
func (m *Maze) Generate() error {
	if err := m.BuildSpanningTree(); err != nil {
		return err
	}
	m.RemoveDuplicateWalls()
	m.Perforate(int(float64(m.Height*m.Width) * m.opts.WallRemovalRatio))
	return nil
}

// BuildSpanningTree runs Wilson's algorithm. Cell (0,0) seeds the maze;
// every other cell joins through a loop-erased random walk.
func (m *Maze) BuildSpanningTree() error {
	cell := m.Cell(0, 0)
	cell.PartOfMaze = true

	for cell = m.nextCellNotPartOfMaze(cell); cell != nil; cell = m.nextCellNotPartOfMaze(cell) {
		stack, err := m.randomWalkToMaze(cell)
		if err != nil {
			return err
		}
		m.addAsPartOfMaze(stack)
	}
	return nil
}

// nextCellNotPartOfMaze scans in row-major order from the start of from's
// row for a cell not yet in the maze.
func (m *Maze) nextCellNotPartOfMaze(from *Cell) *Cell {
	at, ok := m.cells.Search(from.Row, 0, func(_, _ int, c *Cell) bool {
		return !c.PartOfMaze
	})
	if !ok {
		return nil
	}
	return m.Cell(at.Row, at.Col)
}

// randomWalkToMaze walks randomly from initial until it lands on a cell in
// the maze, erasing loops as they form. The returned stack runs from initial
// to the first maze cell reached.
func (m *Maze) randomWalkToMaze(initial *Cell) ([]*Cell, error) {
	stack := []*Cell{initial}
	cell := initial

	for cell != nil && !cell.PartOfMaze {
		if cell.Stacked {
			var err error
			stack, err = m.removeLoop(stack[:len(stack)-1], cell)
			if err != nil {
				return nil, err
			}
		} else {
			cell.Stacked = true
		}

		if len(stack) == m.Height*m.Width {
			return nil, ErrSeedNotInMaze
		}

		next, dir, err := m.randomStep(cell)
		if err != nil {
			return nil, err
		}
		cell.Direction = dir
		cell = next
		stack = append(stack, cell)
	}

	return stack, nil
}

// randomStep picks random directions until one leads to an on-grid cell.
func (m *Maze) randomStep(from *Cell) (*Cell, grid.Direction, error) {
	for i := 0; i < m.opts.MaxDirectionAttempts; i++ {
		dir := grid.Random(m.rng)
		if next := m.NextCell(from, dir); next != nil {
			return next, dir, nil
		}
	}
	return nil, grid.None, fmt.Errorf("%w at %d,%d", ErrWalkStuck, from.Row, from.Col)
}

// removeLoop pops the stack back to the earlier occurrence of cell, clearing
// the stacked flag of every cell it discards, and leaves cell on top.
func (m *Maze) removeLoop(stack []*Cell, cell *Cell) ([]*Cell, error) {
	first := stack[0]

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == cell {
			break
		}
		top.Stacked = false
	}

	if len(stack) == 0 && first != cell {
		return nil, fmt.Errorf("%w at %d,%d", ErrLoopNotOnStack, cell.Row, cell.Col)
	}

	return append(stack, cell), nil
}

// addAsPartOfMaze pops the walk stack, opening the wall each cell stepped
// through and adding it to the maze.
func (m *Maze) addAsPartOfMaze(stack []*Cell) {
	for i := len(stack) - 1; i >= 0; i-- {
		cell := stack[i]
		m.removeWall(cell)
		cell.Stacked = false
		cell.PartOfMaze = true
	}
}

// removeWall clears the wall on cell's recorded direction, and the opposing
// wall of the neighbor there when it exists.
func (m *Maze) removeWall(cell *Cell) {
	if !cell.Direction.IsCardinal() {
		return
	}
	cell.SetWall(cell.Direction, false)
	if opp := m.NextCell(cell, cell.Direction); opp != nil {
		opp.SetWall(cell.Direction.Opposite(), false)
	}
}

// RemoveDuplicateWalls singles every inside wall so it is recorded on only
// one of its two cells. Border walls are untouched.
func (m *Maze) RemoveDuplicateWalls() {
	m.cells.Each(func(_, _ int, cell *Cell) {
		for _, d := range grid.Compass {
			if !cell.Wall(d) {
				continue
			}
			if opp := m.NextCell(cell, d); opp != nil && opp.Wall(d.Opposite()) {
				cell.SetWall(d, false)
			}
		}
	})
}

// Perforate removes n random inside walls. A pick may land on a wall that
// is already open. It returns the number of picks made.
func (m *Maze) Perforate(n int) int {
	done := 0
	for i := 0; i < n; i++ {
		if !m.RemoveRandomInsideWall() {
			break
		}
		done++
	}
	return done
}

// RemoveRandomInsideWall opens a uniformly random wall that is not on the
// border. It reports false when no inside wall exists within the retry
// bound, as for a 1x1 maze.
func (m *Maze) RemoveRandomInsideWall() bool {
	for i := 0; i < m.opts.MaxRemovalAttempts; i++ {
		cell := m.Cell(m.rng.Intn(m.Height), m.rng.Intn(m.Width))
		dir := grid.Random(m.rng)
		opp := m.NextCell(cell, dir)
		if opp == nil {
			continue
		}
		cell.SetWall(dir, false)
		opp.SetWall(dir.Opposite(), false)
		return true
	}
	return false
}

// HasWallBetween reports whether a wall separates cell from its neighbor in
// direction d, checking both sides. Sides leaving the grid report the
// cell's own flag.
func (m *Maze) HasWallBetween(cell *Cell, d grid.Direction) bool {
	if cell.Wall(d) {
		return true
	}
	opp := m.NextCell(cell, d)
	return opp != nil && opp.Wall(d.Opposite())
}

// Connected reports whether every cell is reachable from every other
// through open walls.
func (m *Maze) Connected() bool {
	sets := grid.New(m.Height, m.Width, func(_, _ int) *disjoint.Element {
		return disjoint.NewElement()
	})

	m.cells.Each(func(r, c int, cell *Cell) {
		for _, d := range []grid.Direction{grid.South, grid.East} {
			opp := m.NextCell(cell, d)
			if opp == nil || m.HasWallBetween(cell, d) {
				continue
			}
			a := *sets.At(r, c)
			b := *sets.At(opp.Row, opp.Col)
			if a.Find() != b.Find() {
				disjoint.Union(a, b)
			}
		}
	})

	root := (*sets.At(0, 0)).Find()
	connected := true
	sets.Each(func(_, _ int, e **disjoint.Element) {
		if (*e).Find() != root {
			connected = false
		}
	})
	return connected
}

// Each calls fn for every cell in row-major order.
func (m *Maze) Each(fn func(c *Cell)) {
	m.cells.Each(func(_, _ int, c *Cell) { fn(c) })
}

// DirectionString renders the recorded walk direction of every cell, one
// row per line.
func (m *Maze) DirectionString() string {
	var sb strings.Builder
	for r := 0; r < m.Height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.Width; c++ {
			switch m.Cell(r, c).Direction {
			case grid.North:
				sb.WriteRune('↑')
			case grid.South:
				sb.WriteRune('↓')
			case grid.West:
				sb.WriteRune('←')
			case grid.East:
				sb.WriteRune('→')
			default:
				sb.WriteRune('O')
			}
		}
	}
	return sb.String()
}

// String renders the walls as ASCII art.
func (m *Maze) String() string {
	var sb strings.Builder
	for r := 0; r < m.Height; r++ {
		for c := 0; c < m.Width; c++ {
			if m.HasWallBetween(m.Cell(r, c), grid.North) {
				sb.WriteString("+--")
			} else {
				sb.WriteString("+  ")
			}
		}
		sb.WriteString("+\n")

		for c := 0; c < m.Width; c++ {
			if m.HasWallBetween(m.Cell(r, c), grid.West) {
				sb.WriteString("|  ")
			} else {
				sb.WriteString("   ")
			}
		}
		if m.Cell(r, m.Width-1).East {
			sb.WriteString("|")
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < m.Width; c++ {
		if m.Cell(m.Height-1, c).South {
			sb.WriteString("+--")
		} else {
			sb.WriteString("+  ")
		}
	}
	sb.WriteString("+")
	return sb.String()
}
