package main

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/olivierh59500/inevitable-go/internal/flow"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/palette"
	"github.com/olivierh59500/inevitable-go/internal/scene"
)

const (
	cornerRadius = 14
	focusWidth   = 3
	titleSize    = 34
	bodySize     = 18
	buttonSize   = 22
	smallSize    = 15
	textMargin   = 40 // horizontal room kept around wrapped text
	lineGap      = 1.35
	hint         = "tab focus   enter press   m motion   r restart   esc quit"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type fonts struct {
	title, body, button, small *text.GoTextFace
}

func loadFonts() (fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fonts{}, err
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return fonts{}, err
	}
	return fonts{
		title:  &text.GoTextFace{Source: bold, Size: titleSize},
		body:   &text.GoTextFace{Source: regular, Size: bodySize},
		button: &text.GoTextFace{Source: bold, Size: buttonSize},
		small:  &text.GoTextFace{Source: regular, Size: smallSize},
	}, nil
}

// Draw is called each frame by Ebitengine
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(palette.RGBA(palette.Backdrop, 1))

	view := s.scene.View()
	cx := view.W / 2
	titleY := view.H/2 - windowMetrics.Button.H*2

	switch s.scene.Screen() {
	case flow.Intro:
		drawText(screen, s.scene.Title(), s.fonts.title, cx, titleY, palette.Ink)
		s.drawButton(screen, s.scene.PrimaryButton(), scene.IntroButton, true, false)

	case flow.Question:
		drawText(screen, s.scene.Title(), s.fonts.title, cx, titleY, palette.Ink)
		s.drawParagraph(screen, s.scene.Feedback(), cx, titleY+titleSize*1.4)
		s.drawButton(screen, s.scene.YesButton(), scene.YesLabel, true, s.scene.Focused() == scene.FocusYes)
		s.drawNo(screen)

	case flow.Celebrating:
		drawText(screen, s.scene.Title(), s.fonts.title, cx, titleY, palette.Ink)
		if badge := s.scene.Badge(); badge != "" {
			drawText(screen, badge, s.fonts.body, cx, titleY+titleSize*1.4, palette.Primary)
		}
		s.drawButton(screen, s.scene.PrimaryButton(), scene.RestartLabel, true, false)
		s.scene.Celebration().Draw(canvas{dst: screen})
	}

	drawText(screen, hint, s.fonts.small, cx, view.H-smallSize*1.5, palette.Muted)
	s.drawDebug(screen)
}

// drawButton draws a rounded button. Primary buttons are filled, the others
// outlined on a card.
func (s *Stage) drawButton(dst *ebiten.Image, r geom.Rect, label string, primary, focused bool) {
	if focused {
		ring := geom.Rect{X: r.X - focusWidth*2, Y: r.Y - focusWidth*2, W: r.W + focusWidth*4, H: r.H + focusWidth*4}
		fillPath(dst, roundedRectPath(ring, cornerRadius+focusWidth*2), palette.Focus, 1)
	}
	fill, ink := palette.Primary, palette.OnColor
	if !primary {
		border := geom.Rect{X: r.X - 2, Y: r.Y - 2, W: r.W + 4, H: r.H + 4}
		fillPath(dst, roundedRectPath(border, cornerRadius+2), palette.Outline, 1)
		fill, ink = palette.Card, palette.Ink
	}
	fillPath(dst, roundedRectPath(r, cornerRadius), fill, 1)

	face := s.fonts.button
	if text.Advance(label, face) > r.W-16 {
		face = s.fonts.body
	}
	c := r.Center()
	drawText(dst, label, face, c.X, c.Y, ink)
}

// drawNo renders the No button offscreen at rest, then composites it with the
// animated scale, rotation, opacity, brightness and blur
func (s *Stage) drawNo(screen *ebiten.Image) {
	look := s.scene.NoLook()
	const pad = focusWidth * 3
	w, h := int(math.Ceil(look.Rect.W+pad*2)), int(math.Ceil(look.Rect.H+pad*2))
	if s.noImage == nil || s.noImage.Bounds().Dx() != w || s.noImage.Bounds().Dy() != h {
		s.noImage = ebiten.NewImage(w, h)
	}
	s.noImage.Clear()
	local := geom.Rect{X: pad, Y: pad, W: look.Rect.W, H: look.Rect.H}
	s.drawButton(s.noImage, local, s.scene.No().Label(), false, s.scene.Focused() == scene.FocusNo)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(look.Scale, look.Scale)
	op.GeoM.Rotate(look.Rotate * math.Pi / 180)
	c := look.Rect.Center()
	op.GeoM.Translate(c.X, c.Y)
	b := float32(look.Brightness)
	op.ColorScale.Scale(b, b, b, 1)
	op.ColorScale.ScaleAlpha(float32(look.Opacity))
	op.Filter = ebiten.FilterLinear

	if look.Blur > 0.1 {
		// Soften with offset copies around the sharp one
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			ghost := *op
			ghost.GeoM.Translate(look.Blur*math.Cos(a), look.Blur*math.Sin(a))
			ghost.ColorScale.ScaleAlpha(0.25)
			screen.DrawImage(s.noImage, &ghost)
		}
		op.ColorScale.ScaleAlpha(0.5)
	}
	screen.DrawImage(s.noImage, op)
}

func (s *Stage) drawParagraph(dst *ebiten.Image, str string, cx, top float64) {
	if str == "" {
		return
	}
	face := s.fonts.body
	limit := math.Max(float64(s.Width)-textMargin*2, bodySize*8)
	lines := wrap(str, limit, func(l string) float64 { return text.Advance(l, face) })
	for i, l := range lines {
		drawText(dst, l, face, cx, top+float64(i)*bodySize*lineGap, palette.Muted)
	}
}

// drawText draws str centered on (cx, cy)
func drawText(dst *ebiten.Image, str string, face text.Face, cx, cy float64, c colorful.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(palette.RGBA(c, 1))
	text.Draw(dst, str, face, op)
}

// fillPath fills path with a solid color at the given opacity
func fillPath(dst *ebiten.Image, path *vector.Path, c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	c = c.Clamped()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(alpha)
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// canvas draws celebration particles as hearts and stars
type canvas struct {
	dst *ebiten.Image
}

func (c canvas) Emblem(x, y, size, rotation, alpha, hue float64) {
	fillPath(c.dst, heartPath(x, y, size, rotation), palette.Emblem(hue), alpha)
}

func (c canvas) Glint(x, y, size, rotation, alpha float64) {
	if size < 2 {
		vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(size), palette.RGBA(palette.Glint(), alpha), true)
		return
	}
	fillPath(c.dst, starPath(x, y, size/2, rotation), palette.Glint(), alpha)
}
