// Package termui runs the scene in a terminal with tcell. Positions are in
// cells; mouse motion drives hover and proximity just like a pointer.
package termui

import (
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/celebration"
	"github.com/olivierh59500/inevitable-go/internal/chime"
	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/config"
	"github.com/olivierh59500/inevitable-go/internal/flow"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/palette"
	"github.com/olivierh59500/inevitable-go/internal/placement"
	"github.com/olivierh59500/inevitable-go/internal/scene"
)

// Cell-unit tuning. Pixel values from the window host are divided down.
const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	cellsPerPixel = 0.1
	sampleRate    = beep.SampleRate(44100)
)

var metrics = scene.Metrics{
	Button: geom.Size{W: 16, H: 3},
	No:     geom.Size{W: 12, H: 3},
	Gap:    4,
}

// App is the terminal host
type App struct {
	screen tcell.Screen
	scene  *scene.Scene
	volume float64
	audio  bool

	buttons tcell.ButtonMask // previous mouse state, for press edges
}

// New initialises the terminal and builds the scene
func New(cfg config.Config, content *behavior.Content) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	a := newApp(screen, cfg, content)
	a.initAudio()
	return a, nil
}

// newApp builds the scene on an initialised screen
func newApp(screen tcell.Screen, cfg config.Config, content *behavior.Content) *App {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sampler := placement.NewSampler(rng)
	sampler.Padding = 1
	sampler.CornerPadding = 2
	sampler.RepelRadius = 16
	sampler.Zone = geom.Size{W: 24, H: 5}

	ev := cfg.Evasion()
	ev.ProximityRadius *= cellsPerPixel

	a := &App{screen: screen, volume: cfg.ChimeVolume()}
	a.scene = scene.New(scene.Options{
		Metrics:       metrics,
		Evasion:       ev,
		Celebration:   celebration.Config{Scale: cellsPerPixel},
		Content:       content,
		Clock:         clock.Real{},
		Rand:          rng,
		ReducedMotion: cfg.ReducedMotion,
		Sampler:       sampler,
		OnCelebrate:   a.playChime,
	})

	w, h := screen.Size()
	a.scene.Resize(float64(w), float64(h))
	return a
}

func (a *App) initAudio() {
	if a.volume <= 0 {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the celebration works without sound
		log.Printf("termui: audio init failed: %v", err)
		return
	}
	a.audio = true
}

func (a *App) playChime(attempts int) {
	if !a.audio {
		return
	}
	speaker.Play(chime.Celebration(attempts, sampleRate, a.volume))
}

// Run processes events and frames until the user quits
func (a *App) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.forward(events, done)

	for {
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
			a.scene.Tick()
			a.draw()
		}
	}
}

// forward pumps terminal events into events until the screen is finalised
// or done closes
func (a *App) forward(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Close restores the terminal and releases audio
func (a *App) Close() {
	a.scene.Close()
	if a.audio {
		speaker.Close()
	}
	a.screen.Fini()
}

func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			a.scene.FocusNext()
		case tcell.KeyEnter:
			a.scene.Activate()
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				a.scene.Activate()
			case 'm', 'M':
				a.scene.SetReducedMotion(!a.scene.ReducedMotion())
			case 'r', 'R':
				a.scene.Restart()
			case 'q', 'Q':
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		p := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
		buttons := ev.Buttons()
		a.scene.Pointer(p)
		if buttons&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0 {
			a.scene.Click(p)
		}
		a.buttons = buttons

	case *tcell.EventResize:
		a.screen.Sync()
		w, h := a.screen.Size()
		a.scene.Resize(float64(w), float64(h))
	}
	return true
}

func (a *App) draw() {
	s := a.screen
	bg := style(palette.Ink, palette.Backdrop)
	s.SetStyle(bg)
	s.Clear()

	w, h := s.Size()
	sc := a.scene
	cy := h / 2

	switch sc.Screen() {
	case flow.Intro:
		a.centered(cy-5, sc.Title(), bg.Bold(true))
		a.button(sc.PrimaryButton(), scene.IntroButton, palette.Primary, palette.OnColor, 1, false)
	case flow.Question:
		a.centered(cy-7, sc.Title(), bg.Bold(true))
		a.centered(cy-5, sc.Feedback(), style(palette.Muted, palette.Backdrop))
		a.button(sc.YesButton(), scene.YesLabel, palette.Primary, palette.OnColor, 1, sc.Focused() == scene.FocusYes)
		a.noButton(sc.Focused() == scene.FocusNo)
	case flow.Celebrating:
		a.centered(cy-5, sc.Title(), bg.Bold(true))
		if badge := sc.Badge(); badge != "" {
			a.centered(cy-3, badge, style(palette.Primary, palette.Backdrop))
		}
		a.button(sc.PrimaryButton(), scene.RestartLabel, palette.Card, palette.Primary, 1, false)
	}

	sc.Celebration().Draw(canvas{screen: s, w: w, h: h})

	hint := "tab: focus  enter: press  m: motion  r: restart  esc: quit"
	if sc.ReducedMotion() {
		hint = "[reduced motion] " + hint
	}
	a.centered(h-1, hint, style(palette.Muted, palette.Backdrop))
	s.Show()
}

func (a *App) noButton(focused bool) {
	look := a.scene.NoLook()
	face := palette.Brighten(palette.Card, look.Brightness)
	text := palette.Over(palette.Ink, face, look.Opacity)
	face = palette.Over(face, palette.Backdrop, look.Opacity)

	r := look.Box()
	if r.H < 1 {
		r = geom.CenteredRect(r.Center(), geom.Size{W: r.W, H: 1})
	}
	a.fill(r, face, text, a.scene.No().Label(), focused, look.Blur > 0, look.Rotate != 0)
}

func (a *App) button(r geom.Rect, label string, face, text colorful.Color, alpha float64, focused bool) {
	a.fill(r, palette.Over(face, palette.Backdrop, alpha), text, label, focused, false, false)
}

func (a *App) fill(r geom.Rect, face, text colorful.Color, label string, focused, dim, italic bool) {
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := int(math.Round(r.Right())), int(math.Round(r.Bottom()))
	st := style(text, face).Dim(dim).Italic(italic).Bold(true)
	if focused {
		st = st.Reverse(true)
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			a.screen.SetContent(x, y, ' ', nil, st)
		}
	}

	// Truncate to the box, then center
	width := x1 - x0
	label = runewidth.Truncate(label, width, "…")
	lx := x0 + (width-runewidth.StringWidth(label))/2
	a.text(lx, y0+(y1-y0)/2, label, st)
}

func (a *App) centered(y int, s string, st tcell.Style) {
	w, _ := a.screen.Size()
	s = runewidth.Truncate(s, w, "…")
	a.text((w-runewidth.StringWidth(s))/2, y, s, st)
}

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}

func style(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
