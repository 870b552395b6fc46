package match3

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// tileStyle is how one tile type looks on screen.
type tileStyle struct {
	Name  string
	Glyph rune
	Color core.Color
}

// fallbackGlyphs cover tile types the palette does not name.
const fallbackGlyphs = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// palette resolves the configured styles for every tile type. Missing or
// malformed entries fall back to a digit or letter in the default color.
func palette(tiles []config.TileStyle, n int) []tileStyle {
	out := make([]tileStyle, n)
	for i := range out {
		st := tileStyle{Glyph: '?'}
		if i < len(fallbackGlyphs) {
			st.Glyph = rune(fallbackGlyphs[i])
		}
		if i < len(tiles) {
			t := tiles[i]
			st.Name = t.Name
			if r, size := utf8.DecodeRuneInString(t.Glyph); r != utf8.RuneError && size == len(t.Glyph) {
				st.Glyph = r
			}
			if c, ok := core.ParseColor(t.Color); ok {
				st.Color = c
			}
		}
		out[i] = st
	}
	return out
}

func (g *Game) style(t engine.TileType) tileStyle {
	if int(t) < len(g.styles) {
		return g.styles[t]
	}
	return tileStyle{Glyph: '?'}
}
