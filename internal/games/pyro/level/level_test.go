package level

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pyro/internal/grid"
)

func buildLevel(t *testing.T, h, w int, seed int64) *Level {
	t.Helper()
	l, err := Build(h, w, DefaultParams(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Build(%d, %d) error: %v", h, w, err)
	}
	return l
}

func TestBuildStartFarFromExits(t *testing.T) {
	sizes := []struct{ h, w int }{{25, 25}, {50, 30}, {100, 100}, {15, 40}}

	for _, sz := range sizes {
		for seed := int64(1); seed <= 20; seed++ {
			l := buildLevel(t, sz.h, sz.w, seed)
			threshold := float64(min(l.Height, l.Width)) / 2
			for _, e := range l.Exits {
				if d := l.Start.Distance(e); d <= threshold {
					t.Errorf("%dx%d seed %d: start %v is %.2f from exit %v, need more than %.2f",
						sz.h, sz.w, seed, l.Start, d, e, threshold)
				}
			}
		}
	}
}

func TestBuildExits(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 20; seed++ {
		l := buildLevel(t, 40, 40, seed)

		if len(l.Exits) != p.Ratio-2 {
			t.Fatalf("seed %d: %d exits, expected %d", seed, len(l.Exits), p.Ratio-2)
		}
		for _, e := range l.Exits {
			if l.Terrain(e.Row, e.Col) != Exit {
				t.Errorf("seed %d: exit %v has terrain %v", seed, e, l.Terrain(e.Row, e.Col))
			}
			onBorder := e.Row == 0 || e.Row == l.Height-1 || e.Col == 0 || e.Col == l.Width-1
			if !onBorder {
				t.Errorf("seed %d: exit %v not on the border", seed, e)
			}
		}
		if n := l.CountTerrain(Exit); n != len(l.Exits) {
			t.Errorf("seed %d: %d exit tiles, expected %d", seed, n, len(l.Exits))
		}
	}
}

func TestBuildStrongWallCorners(t *testing.T) {
	l := buildLevel(t, 25, 25, 9)
	h, w := l.Height-1, l.Width-1
	corners := []grid.Coord{
		grid.C(0, 0), grid.C(1, 0), grid.C(0, 1),
		grid.C(0, w), grid.C(0, w-1), grid.C(1, w),
		grid.C(h, 0), grid.C(h, 1), grid.C(h-1, 0),
		grid.C(h, w), grid.C(h, w-1), grid.C(h-1, w),
	}
	for _, c := range corners {
		if got := l.Terrain(c.Row, c.Col); got != StrongWall {
			t.Errorf("Terrain%v = %v, expected strongwall", c, got)
		}
	}
	if n := l.CountTerrain(StrongWall); n != len(corners) {
		t.Errorf("CountTerrain(strongwall) = %d, expected %d", n, len(corners))
	}
}

func TestBuildWallBaseline(t *testing.T) {
	l := buildLevel(t, 30, 30, 4)
	if l.WallCount == 0 {
		t.Fatal("level should have walls")
	}
	if n := l.CountTerrain(Wall); n != l.WallCount {
		t.Errorf("WallCount = %d, expected %d", l.WallCount, n)
	}
}

func TestBuildStartAlignment(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 10; seed++ {
		l := buildLevel(t, 50, 50, seed)
		if l.Start.Row%p.Ratio != p.Ratio/2 || l.Start.Col%p.Ratio != p.Ratio/2 {
			t.Errorf("seed %d: start %v not on a cell center", seed, l.Start)
		}
		if l.Start.Row < p.Ratio || l.Start.Row >= l.Height-p.Ratio {
			t.Errorf("seed %d: start row %d in an outer cell", seed, l.Start.Row)
		}
	}
}

func TestBuildRoundsUp(t *testing.T) {
	l := buildLevel(t, 23, 31, 1)
	if l.Height != 25 || l.Width != 35 {
		t.Errorf("Build(23, 31) size = %dx%d, expected 25x35", l.Height, l.Width)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		h, w  int
		ratio int
		want  error
	}{
		{"too short", 10, 50, 5, ErrLevelTooSmall},
		{"too narrow", 50, 10, 5, ErrLevelTooSmall},
		{"empty", 0, 0, 5, ErrLevelTooSmall},
		{"ratio too small", 50, 50, 2, ErrInvalidRatio},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			p.Ratio = tc.ratio
			_, err := Build(tc.h, tc.w, p, rand.New(rand.NewSource(1)))
			if !errors.Is(err, tc.want) {
				t.Errorf("Build() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := buildLevel(t, 40, 40, 11)
	b := buildLevel(t, 40, 40, 11)
	if a.String() != b.String() {
		t.Error("same seed should build the same level")
	}
	if a.Start != b.Start {
		t.Errorf("start %v != %v for the same seed", a.Start, b.Start)
	}
}

func TestFindStartFallsBackToFarthest(t *testing.T) {
	l := Blank(25, 25)
	l.Exits = []grid.Coord{grid.C(0, 12)}

	start, err := l.findStart(5, 5, 5, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("findStart() error: %v", err)
	}
	if start != grid.C(17, 7) {
		t.Errorf("findStart() = %v, expected (17,7)", start)
	}
}

func TestFindStartNoCandidate(t *testing.T) {
	l := Blank(15, 15)
	l.Exits = []grid.Coord{grid.C(7, 7)}

	_, err := l.findStart(3, 3, 5, 10, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoStartPosition) {
		t.Errorf("findStart() error = %v, expected ErrNoStartPosition", err)
	}
}

func TestApplyGasCans(t *testing.T) {
	l := Blank(6, 6)
	l.SetTerrain(0, 0, Wall)

	l.applyGasCans(0, rand.New(rand.NewSource(1)))
	if n := l.CountTerrain(GasCan); n != 0 {
		t.Errorf("probability 0 placed %d gas cans", n)
	}

	l.applyGasCans(1, rand.New(rand.NewSource(1)))
	if n := l.CountTerrain(GasCan); n != 35 {
		t.Errorf("probability 1 placed %d gas cans, expected 35", n)
	}
	if l.Terrain(0, 0) != Wall {
		t.Error("gas cans should only replace empty tiles")
	}
}

func TestAccessorsOutOfBounds(t *testing.T) {
	l := Blank(3, 3)

	if l.Tile(-1, 0) != nil {
		t.Error("Tile() out of bounds should be nil")
	}
	if l.Terrain(3, 3) != None {
		t.Error("Terrain() out of bounds should be none")
	}
	if l.SetTerrain(0, 3, Fire) {
		t.Error("SetTerrain() out of bounds should report false")
	}
	if l.SpreadInto(5, 5, Fire) {
		t.Error("SpreadInto() out of bounds should report false")
	}
	if l.SetTerrain(0, 0, Terrain(99)) {
		t.Error("SetTerrain() with unknown terrain should report false")
	}
	if l.IsOnFire() {
		t.Error("blank level should not be on fire")
	}
}

func TestSpreadFlags(t *testing.T) {
	l := Blank(3, 3)
	l.SpreadInto(1, 1, Fire)

	if !l.Tile(1, 1).SpreadTo {
		t.Error("SpreadInto() should mark the tile")
	}
	if !l.IsOnFire() {
		t.Error("IsOnFire() should see the new fire")
	}

	l.ClearSpreadFlags()
	if l.Tile(1, 1).SpreadTo {
		t.Error("ClearSpreadFlags() should reset the mark")
	}
}

func TestParseRoundTrip(t *testing.T) {
	rows := []string{
		"@@###@@",
		"@.g~*:@",
		"#..E..#",
	}
	l, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := l.String(); got != strings.Join(rows, "\n") {
		t.Errorf("String() = %q, expected %q", got, strings.Join(rows, "\n"))
	}
	if len(l.Exits) != 1 || l.Exits[0] != grid.C(2, 3) {
		t.Errorf("Exits = %v, expected [(2,3)]", l.Exits)
	}
	if l.WallCount != 5 {
		t.Errorf("WallCount = %d, expected 5", l.WallCount)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("Parse(nil) should fail")
	}
	if _, err := Parse([]string{"...", ".."}); err == nil {
		t.Error("Parse() with ragged rows should fail")
	}
	if _, err := Parse([]string{".x."}); err == nil {
		t.Error("Parse() with unknown glyph should fail")
	}
}

func TestTerrainNames(t *testing.T) {
	for tr := None; tr <= Exit; tr++ {
		got, err := ParseTerrain(tr.String())
		if err != nil || got != tr {
			t.Errorf("ParseTerrain(%q) = %v, %v, expected %v", tr.String(), got, err, tr)
		}
	}
	if _, err := ParseTerrain("lava"); err == nil {
		t.Error("ParseTerrain(lava) should fail")
	}
}
