package match3

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	cellWidth  = 3 // bracket, glyph, bracket
	hudRows    = 4 // title, score line, mode line, spacer
	footerRows = 3 // spacer, status, controls
)

// boardSize returns the outer size of the boxed board.
func (g *Game) boardSize() (w, h int) {
	return g.cfg.Board.Width*cellWidth + 2, g.cfg.Board.Height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudRows

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, "MATCH-3", core.ColorBrightMagenta)

	score := g.session.Score()
	target := g.session.Config().TargetScore
	scoreColor := core.ColorDefault
	if score >= target {
		scoreColor = core.ColorBrightGreen
	}
	dst.DrawTextColored(boardX, 1, fmt.Sprintf("Score: %d/%d", score, target), scoreColor)

	remaining := g.session.Remaining()
	timeStr := "Time: " + formatClock(remaining)
	timeColor := core.ColorDefault
	if remaining <= 10*time.Second {
		timeColor = core.ColorBrightRed
	}
	timeX := max(boardX+boardW-utf8.RuneCountInString(timeStr), boardX)
	dst.DrawTextColored(timeX, 1, timeStr, timeColor)

	mode := fmt.Sprintf("%s | Round %d", titleCase(string(g.preset)), g.session.Round())
	dst.DrawTextCenteredColored(2, mode, core.ColorGray)
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	boardW, boardH := g.boardSize()
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))

	board := g.session.Board()
	m := board.Snapshot()
	marks := g.cellMarks()
	frame, animating := g.anim.Current()

	for y := range m.Height() {
		for x := range m.Width() {
			c := engine.C(x, y)
			px := boardX + 1 + x*cellWidth
			py := boardY + 1 + y

			st := g.style(m.At(c))
			glyph, color := st.Glyph, st.Color
			if animating {
				glyph, color = g.animatedGlyph(frame, c, st)
			}
			dst.SetColored(px+1, py, glyph, color)

			if mk, ok := marks[c]; ok {
				dst.SetColored(px, py, mk.left, mk.color)
				dst.SetColored(px+2, py, mk.right, mk.color)
			}
		}
	}
}

type mark struct {
	left, right rune
	color       core.Color
}

// cellMarks returns the bracket decorations, later entries winning.
func (g *Game) cellMarks() map[engine.Coord]mark {
	marks := make(map[engine.Coord]mark)
	if frame, ok := g.anim.Current(); ok {
		switch frame.effect.Kind {
		case engine.EffectSwap, engine.EffectRevert:
			for _, c := range frame.effect.Cells {
				marks[c] = mark{'{', '}', core.ColorBrightYellow}
			}
		}
	}
	if g.hint != nil {
		marks[g.hint.A] = mark{'«', '»', core.ColorBrightCyan}
		marks[g.hint.B] = mark{'«', '»', core.ColorBrightCyan}
	}
	for _, c := range g.session.Board().Selection() {
		marks[c] = mark{'(', ')', core.ColorBrightYellow}
	}
	if g.session.Outcome() == engine.OutcomeNone {
		marks[g.cursor] = mark{'[', ']', core.ColorBrightWhite}
	}
	return marks
}

// animatedGlyph returns the glyph of c for the current animation frame.
func (g *Game) animatedGlyph(p playback, c engine.Coord, st tileStyle) (rune, core.Color) {
	progress := p.Progress()
	switch p.effect.Kind {
	case engine.EffectDeflate:
		if !slices.Contains(p.effect.Cells, c) {
			break
		}
		if progress < 0.5 {
			return '•', st.Color
		}
		return '·', core.ColorGray
	case engine.EffectInflate:
		if slices.Contains(p.effect.Cells, c) && progress < 0.5 {
			return '∘', st.Color
		}
	case engine.EffectShuffle:
		if progress < 0.75 && len(g.styles) > 0 {
			spin := g.styles[(int(g.tick)/3+c.X+c.Y)%len(g.styles)]
			return spin.Glyph, core.ColorGray
		}
	}
	return st.Glyph, st.Color
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCenteredColored(y+1, g.message, core.ColorBrightYellow)
	}
	dst.DrawTextCenteredColored(y+2, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	score := fmt.Sprintf("Score %d / %d", g.session.Score(), g.session.Config().TargetScore)
	switch g.session.Outcome() {
	case engine.OutcomeWon:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightGreen, "TARGET REACHED!", score, "Press R to play again")
	case engine.OutcomeLost:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed, "TIME UP", score, "Press R to restart")
	}
}

// drawOverlay draws a centered text box over the board.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, color)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(x, box.Y+1+i, line, c)
	}
}

// formatClock renders d as m:ss, rounding partial seconds up.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
