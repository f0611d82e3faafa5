package level

import "fmt"

// Terrain is the kind of a tile.
type Terrain uint8

const (
	None Terrain = iota
	Wall
	StrongWall
	GasCan
	Gas
	Fire
	Fuse
	Exit

	terrainCount
)

var terrainNames = [terrainCount]string{
	None:       "none",
	Wall:       "wall",
	StrongWall: "strongwall",
	GasCan:     "gascan",
	Gas:        "gas",
	Fire:       "fire",
	Fuse:       "fuse",
	Exit:       "exit",
}

var terrainGlyphs = [terrainCount]rune{
	None:       '.',
	Wall:       '#',
	StrongWall: '@',
	GasCan:     'g',
	Gas:        '~',
	Fire:       '*',
	Fuse:       ':',
	Exit:       'E',
}

// Valid reports whether t is one of the known terrains.
func (t Terrain) Valid() bool {
	return t < terrainCount
}

// String returns the lowercase name of the terrain.
func (t Terrain) String() string {
	if !t.Valid() {
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
	return terrainNames[t]
}

// Glyph returns the ASCII character used for debug rendering.
func (t Terrain) Glyph() rune {
	if !t.Valid() {
		return '?'
	}
	return terrainGlyphs[t]
}

// Flammable reports whether fire always spreads into t.
func (t Terrain) Flammable() bool {
	return t == Gas || t == Fuse
}

// Solid reports whether t blocks movement.
func (t Terrain) Solid() bool {
	return t == Wall || t == StrongWall
}

// ParseTerrain parses a terrain name as produced by String.
func ParseTerrain(s string) (Terrain, error) {
	for t, name := range terrainNames {
		if name == s {
			return Terrain(t), nil
		}
	}
	return None, fmt.Errorf("unknown terrain %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Terrain) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid terrain %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
