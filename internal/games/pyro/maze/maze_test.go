package maze

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pyro/internal/grid"
)

func newTestMaze(t *testing.T, h, w int, seed int64) *Maze {
	t.Helper()
	m, err := New(h, w, rand.New(rand.NewSource(seed)), DefaultOptions())
	if err != nil {
		t.Fatalf("New(%d, %d) error: %v", h, w, err)
	}
	return m
}

// openEdges counts inside edges with no wall on either side.
func openEdges(m *Maze) int {
	n := 0
	m.Each(func(c *Cell) {
		for _, d := range []grid.Direction{grid.South, grid.East} {
			if m.NextCell(c, d) != nil && !m.HasWallBetween(c, d) {
				n++
			}
		}
	})
	return n
}

func TestSpanningTree(t *testing.T) {
	tests := []struct {
		name string
		h, w int
	}{
		{"single cell", 1, 1},
		{"single row", 1, 8},
		{"single column", 8, 1},
		{"square", 5, 5},
		{"wide", 6, 14},
		{"large", 20, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 10; seed++ {
				m := newTestMaze(t, tc.h, tc.w, seed)
				if err := m.BuildSpanningTree(); err != nil {
					t.Fatalf("BuildSpanningTree() error: %v", err)
				}

				if !m.Connected() {
					t.Fatalf("seed %d: maze is not connected\n%s", seed, m)
				}
				if got, want := openEdges(m), tc.h*tc.w-1; got != want {
					t.Errorf("seed %d: open edges = %d, expected %d", seed, got, want)
				}

				m.Each(func(c *Cell) {
					if !c.PartOfMaze {
						t.Errorf("cell %d,%d not part of maze", c.Row, c.Col)
					}
					if c.Stacked {
						t.Errorf("cell %d,%d left stacked", c.Row, c.Col)
					}
				})
			}
		})
	}
}

func TestBorderWallsSurvive(t *testing.T) {
	m := newTestMaze(t, 7, 9, 3)
	if err := m.Generate(); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for c := 0; c < m.Width; c++ {
		if !m.Cell(0, c).North {
			t.Errorf("cell 0,%d lost its north border", c)
		}
		if !m.Cell(m.Height-1, c).South {
			t.Errorf("cell %d,%d lost its south border", m.Height-1, c)
		}
	}
	for r := 0; r < m.Height; r++ {
		if !m.Cell(r, 0).West {
			t.Errorf("cell %d,0 lost its west border", r)
		}
		if !m.Cell(r, m.Width-1).East {
			t.Errorf("cell %d,%d lost its east border", r, m.Width-1)
		}
	}
}

func TestRemoveDuplicateWallsSinglesInsideWalls(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m := newTestMaze(t, 8, 8, seed)
		if err := m.BuildSpanningTree(); err != nil {
			t.Fatalf("BuildSpanningTree() error: %v", err)
		}
		before := openEdges(m)

		m.RemoveDuplicateWalls()

		m.Each(func(c *Cell) {
			for _, d := range grid.Compass {
				opp := m.NextCell(c, d)
				if opp != nil && c.Wall(d) && opp.Wall(d.Opposite()) {
					t.Errorf("seed %d: wall %v of %d,%d recorded on both sides", seed, d, c.Row, c.Col)
				}
			}
		})
		if after := openEdges(m); after != before {
			t.Errorf("seed %d: open edges changed from %d to %d", seed, before, after)
		}
		if !m.Connected() {
			t.Errorf("seed %d: maze disconnected by duplicate removal", seed)
		}
	}
}

func TestPerforateOnlyOpensWalls(t *testing.T) {
	m := newTestMaze(t, 10, 10, 42)
	if err := m.BuildSpanningTree(); err != nil {
		t.Fatalf("BuildSpanningTree() error: %v", err)
	}
	m.RemoveDuplicateWalls()
	before := openEdges(m)

	if n := m.Perforate(60); n != 60 {
		t.Errorf("Perforate(60) = %d, expected 60", n)
	}
	if after := openEdges(m); after < before {
		t.Errorf("open edges dropped from %d to %d", before, after)
	}
	if !m.Connected() {
		t.Error("perforated maze should stay connected")
	}
}

func TestPerforateSingleCell(t *testing.T) {
	m := newTestMaze(t, 1, 1, 1)
	if n := m.Perforate(5); n != 0 {
		t.Errorf("Perforate() on 1x1 = %d, expected 0", n)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(12, 9, rand.New(rand.NewSource(7)), DefaultOptions())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, err := Generate(12, 9, rand.New(rand.NewSource(7)), DefaultOptions())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if a.String() != b.String() {
		t.Error("same seed should produce the same walls")
	}
	if a.DirectionString() != b.DirectionString() {
		t.Error("same seed should produce the same walk directions")
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		h, w int
	}{
		{"zero height", 0, 5},
		{"zero width", 5, 0},
		{"negative", -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.h, tc.w, rand.New(rand.NewSource(1)), DefaultOptions())
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("Generate(%d, %d) error = %v, expected ErrInvalidSize", tc.h, tc.w, err)
			}
		})
	}
}

func TestRemoveLoop(t *testing.T) {
	m := newTestMaze(t, 3, 3, 1)
	a, b, c, d := m.Cell(0, 0), m.Cell(0, 1), m.Cell(1, 1), m.Cell(1, 0)
	for _, cell := range []*Cell{a, b, c, d} {
		cell.Stacked = true
	}

	stack, err := m.removeLoop([]*Cell{a, b, c, d}, b)
	if err != nil {
		t.Fatalf("removeLoop() error: %v", err)
	}
	if len(stack) != 2 || stack[0] != a || stack[1] != b {
		t.Errorf("removeLoop() left %d cells, expected [a b]", len(stack))
	}
	if c.Stacked || d.Stacked {
		t.Error("cells erased from the loop should be unstacked")
	}
	if !b.Stacked {
		t.Error("revisited cell should stay stacked")
	}
}

func TestRemoveLoopMissingCell(t *testing.T) {
	m := newTestMaze(t, 3, 3, 1)
	stack := []*Cell{m.Cell(0, 0), m.Cell(0, 1)}

	_, err := m.removeLoop(stack, m.Cell(2, 2))
	if !errors.Is(err, ErrLoopNotOnStack) {
		t.Errorf("removeLoop() error = %v, expected ErrLoopNotOnStack", err)
	}
}

func TestNextCell(t *testing.T) {
	m := newTestMaze(t, 3, 3, 1)
	center := m.Cell(1, 1)

	if got := m.NextCell(center, grid.North); got != m.Cell(0, 1) {
		t.Errorf("NextCell(north) = %v, expected 0,1", got)
	}
	if got := m.NextCell(center, grid.None); got != center {
		t.Error("NextCell(none) should return the cell itself")
	}
	if got := m.NextCell(m.Cell(0, 0), grid.West); got != nil {
		t.Error("NextCell() off the grid should return nil")
	}
}

func TestDirectionStringShape(t *testing.T) {
	m := newTestMaze(t, 2, 3, 1)
	if got := m.DirectionString(); got != "OOO\nOOO" {
		t.Errorf("DirectionString() = %q, expected %q", got, "OOO\nOOO")
	}
}
