package pyro

import (
	"fmt"

	"github.com/vovakirdan/tui-pyro/internal/core"
	"github.com/vovakirdan/tui-pyro/internal/games/pyro/level"
	"github.com/vovakirdan/tui-pyro/internal/grid"
)

const (
	hudHeight  = 2
	minScreenW = 30
	minScreenH = 10
)

// TerrainCell returns how a terrain is drawn.
func TerrainCell(t level.Terrain) (rune, core.Color) {
	switch t {
	case level.None:
		return ' ', core.ColorDefault
	case level.Wall:
		return '#', core.ColorGray
	case level.StrongWall:
		return '@', core.ColorBrightWhite
	case level.GasCan:
		return 'g', core.ColorBrightRed
	case level.Gas:
		return '~', core.ColorGreen
	case level.Fire:
		return '*', core.ColorOrange
	case level.Fuse:
		return ':', core.ColorYellow
	case level.Exit:
		return 'E', core.ColorBrightCyan
	default:
		return '?', core.ColorMagenta
	}
}

func directionRune(d grid.Direction) rune {
	switch d {
	case grid.North:
		return '^'
	case grid.South:
		return 'v'
	case grid.West:
		return '<'
	case grid.East:
		return '>'
	default:
		return 'o'
	}
}

// Render draws the HUD and the part of the level around the player.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.pyro == nil || g.pyro.Level() == nil {
		g.renderOverlay(dst, "No level", errText(g.err))
		return
	}

	g.renderHUD(dst)
	g.renderLevel(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You escaped them all!", fmt.Sprintf("Final Score: %d  -  R to restart", g.pyro.Score()))
	case g.gameOver:
		g.renderOverlay(dst, "Burned!", fmt.Sprintf("Score: %d  -  R to restart", g.pyro.Score()))
	case g.levelCleared:
		r := g.pyro.LastResult()
		g.renderOverlay(dst,
			fmt.Sprintf("Level %d escaped: +%d", r.Number, r.Increment),
			fmt.Sprintf("Walls left %d/%d  -  Enter to continue", r.WallsLeft, r.Baseline))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// renderHUD draws the status bar and its separator.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.pyro
	pl := p.Player()
	l := p.Level()

	levelText := fmt.Sprintf("Level %d", p.LevelNumber())
	if g.mode == ModeCampaign {
		levelText = fmt.Sprintf("Level %d/%d", p.LevelNumber(), g.cfg.Scoring.CampaignLevels)
	}
	hud := fmt.Sprintf(" %s  %s  Score: %d  Cans: %d/%d  Walls: %d/%d",
		g.Title(), levelText, p.Score(),
		pl.GasCans(), pl.Params().MaxGasCans,
		l.CountTerrain(level.Wall), l.WallCount)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	for x := range dst.Width() {
		dst.SetCell(x, 1, '─', core.ColorGray)
	}
}

// renderLevel draws the visible window of tiles, scrolled to keep the
// player centered, and the player on top.
func (g *Game) renderLevel(dst *core.Screen) {
	l := g.pyro.Level()
	pl := g.pyro.Player()

	viewH := dst.Height() - hudHeight
	viewW := dst.Width()
	focus := pl.Center()
	if !l.Contains(focus.Row, focus.Col) {
		focus = l.Start
	}
	offR := core.ScrollOffset(l.Height, viewH, focus.Row)
	offC := core.ScrollOffset(l.Width, viewW, focus.Col)

	for y := range min(viewH, l.Height) {
		for x := range min(viewW, l.Width) {
			r, c := TerrainCell(l.Terrain(offR+y, offC+x))
			dst.SetCell(x, hudHeight+y, r, c)
		}
	}

	if !pl.IsAlive() {
		return
	}
	pl.Footprint(l, func(t *level.Tile) {
		x, y := t.Col-offC, t.Row-offR
		if x < 0 || x >= viewW || y < 0 || y >= viewH {
			return
		}
		ch := '█'
		if t.Row == pl.Center().Row && t.Col == pl.Center().Col {
			ch = directionRune(pl.Direction())
		}
		dst.SetCell(x, hudHeight+y, ch, core.ColorBrightYellow)
	})
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := min(maxLen+4, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	drawCentered(dst, box.Y+1, line1)
	drawCentered(dst, box.Y+3, line2)
}

func drawCentered(dst *core.Screen, y int, text string) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColor(x, y, text, core.ColorBrightWhite)
}
