// Package grid provides generic rectangular-grid helpers shared by the maze
// generator, the level builder and the tile automaton.
//
// Grids are addressed by (row, col) with row 0 at the top. Every accessor is
// bounds-checked: out-of-range coordinates are skipped, never an error.
package grid

// Grid is a rectangular grid of values stored in row-major order:
// index = row*Cols + col.
type Grid[T any] struct {
	Rows  int
	Cols  int
	cells []T
}

// New creates a grid of the given dimensions, building every element with
// ctor. A nil ctor leaves elements at their zero value.
func New[T any](rows, cols int, ctor func(row, col int) T) *Grid[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid[T]{
		Rows:  rows,
		Cols:  cols,
		cells: make([]T, rows*cols),
	}
	if ctor != nil {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				g.cells[r*cols+c] = ctor(r, c)
			}
		}
	}
	return g
}

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Contains reports whether c lies on the grid.
func (g *Grid[T]) Contains(c Coord) bool {
	return g.InBounds(c.Row, c.Col)
}

// At returns a pointer to the element at (row, col), or nil when out of bounds.
func (g *Grid[T]) At(row, col int) *T {
	if !g.InBounds(row, col) {
		return nil
	}
	return &g.cells[row*g.Cols+col]
}

// Get returns the element at (row, col) and whether it was in bounds.
func (g *Grid[T]) Get(row, col int) (T, bool) {
	if !g.InBounds(row, col) {
		var zero T
		return zero, false
	}
	return g.cells[row*g.Cols+col], true
}

// Set stores v at (row, col). Out-of-bounds writes are ignored.
func (g *Grid[T]) Set(row, col int, v T) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.cells[row*g.Cols+col] = v
	return true
}

// Each calls fn for every element in row-major order.
func (g *Grid[T]) Each(fn func(row, col int, v *T)) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			fn(r, c, &g.cells[r*g.Cols+c])
		}
	}
}

// Search scans rows from startRow (and columns from startCol on every row)
// in row-major order and returns the first coordinate matching pred.
func (g *Grid[T]) Search(startRow, startCol int, pred func(row, col int, v *T) bool) (Coord, bool) {
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}
	for r := startRow; r < g.Rows; r++ {
		for c := startCol; c < g.Cols; c++ {
			if pred(r, c, &g.cells[r*g.Cols+c]) {
				return C(r, c), true
			}
		}
	}
	return Coord{}, false
}

// Count returns the number of elements matching pred.
func (g *Grid[T]) Count(pred func(v *T) bool) int {
	n := 0
	for i := range g.cells {
		if pred(&g.cells[i]) {
			n++
		}
	}
	return n
}

// Square calls fn for every on-grid element of the size x size square
// centered on (row, col), in row-major order. Even sizes are treated as the
// next odd size down.
func (g *Grid[T]) Square(row, col, size int, fn func(row, col int, v *T)) {
	half := size / 2
	for r := row - half; r <= row+half; r++ {
		for c := col - half; c <= col+half; c++ {
			if v := g.At(r, c); v != nil {
				fn(r, c, v)
			}
		}
	}
}

// Neighbors8 returns the on-grid coordinates of the 3x3 square around
// (row, col), excluding the center, in row-major order.
func (g *Grid[T]) Neighbors8(row, col int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.InBounds(row+dr, col+dc) {
				out = append(out, C(row+dr, col+dc))
			}
		}
	}
	return out
}
