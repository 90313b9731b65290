package termui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/inevitable-go/internal/palette"
)

// canvas draws particles as glyphs, blending their color into the backdrop
type canvas struct {
	screen tcell.Screen
	w, h   int
}

func (c canvas) Emblem(x, y, size, rotation, alpha, hue float64) {
	glyph := '♥'
	if size < 2 {
		glyph = '·'
	}
	c.put(x, y, glyph, style(palette.Over(palette.Emblem(hue), palette.Backdrop, alpha), palette.Backdrop).Bold(size >= 3))
}

func (c canvas) Glint(x, y, size, rotation, alpha float64) {
	glyph := '✦'
	if size < 0.8 {
		glyph = '+'
	}
	c.put(x, y, glyph, style(palette.Over(palette.Glint(), palette.Backdrop, alpha), palette.Backdrop))
}

func (c canvas) put(x, y float64, r rune, st tcell.Style) {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return
	}
	// Keep the existing cell background so particles pass over buttons
	_, _, cur, _ := c.screen.GetContent(cx, cy)
	_, bg, _ := cur.Decompose()
	c.screen.SetContent(cx, cy, r, nil, st.Background(bg))
}
