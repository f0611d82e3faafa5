package grid

import (
	"fmt"
	"math"
	"math/rand"
)

// Coord is a (row, col) position. Row increases downward.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Step returns the coordinate one step away in direction d.
func (c Coord) Step(d Direction) Coord {
	dr, dc := d.Delta()
	return c.Add(dr, dc)
}

// Distance returns the Euclidean distance to other.
func (c Coord) Distance(other Coord) float64 {
	dr := float64(c.Row - other.Row)
	dc := float64(c.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Direction is one of the four cardinal directions, or None.
type Direction uint8

const (
	None Direction = iota
	North
	West
	South
	East
)

// Compass lists the cardinal directions in compass order. Random direction
// draws index into it, so its order is part of seeded determinism.
var Compass = [4]Direction{North, West, South, East}

// Random returns a uniformly random cardinal direction.
func Random(rng *rand.Rand) Direction {
	return Compass[rng.Intn(len(Compass))]
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case West:
		return "west"
	case South:
		return "south"
	case East:
		return "east"
	default:
		return "none"
	}
}

// Delta returns the (dr, dc) offset of one step in this direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case West:
		return 0, -1
	case East:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the opposing direction. None is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return None
	}
}

// IsCardinal reports whether d is one of the four cardinal directions.
func (d Direction) IsCardinal() bool {
	return d >= North && d <= East
}
