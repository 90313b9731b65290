package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/celebration"
	"github.com/olivierh59500/inevitable-go/internal/clock"
	"github.com/olivierh59500/inevitable-go/internal/config"
	"github.com/olivierh59500/inevitable-go/internal/geom"
	"github.com/olivierh59500/inevitable-go/internal/scene"
)

// Window sizes, in device-independent pixels
var windowMetrics = scene.Metrics{
	Button: geom.Size{W: 180, H: 56},
	No:     geom.Size{W: 160, H: 56},
	Gap:    24,
}

// Stage runs the scene in an Ebitengine window
type Stage struct {
	scene *scene.Scene
	chime *chimePlayer
	fonts fonts
	debug bool

	Width, Height int

	cursor  geom.Point
	touches []ebiten.TouchID
	noImage *ebiten.Image // offscreen No button, transformed on the way out
}

// NewStage builds the scene for a window of cfg.Width by cfg.Height
func NewStage(cfg config.Config, content *behavior.Content) (*Stage, error) {
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Stage{
		chime:  newChimePlayer(cfg.ChimeVolume()),
		fonts:  f,
		debug:  cfg.Debug,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	s.scene = scene.New(scene.Options{
		Metrics:       windowMetrics,
		Evasion:       cfg.Evasion(),
		Celebration:   celebration.Config{Scale: 1},
		Content:       content,
		Clock:         clock.Real{},
		Rand:          rand.New(rand.NewSource(seed)),
		ReducedMotion: cfg.ReducedMotion,
		OnCelebrate:   s.chime.Play,
	})
	s.scene.Resize(float64(s.Width), float64(s.Height))
	return s, nil
}

// Update is called each tick by Ebitengine
func (s *Stage) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	s.handleInput()
	s.scene.Tick()
	return nil
}

// Layout follows the window size so the No button can use all of it
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.Width || outsideHeight != s.Height {
		s.Width, s.Height = outsideWidth, outsideHeight
		s.scene.Resize(float64(s.Width), float64(s.Height))
	}
	return s.Width, s.Height
}

// handleInput processes keyboard, mouse and touch input
func (s *Stage) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.scene.FocusNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.scene.Activate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.scene.SetReducedMotion(!s.scene.ReducedMotion())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.scene.Restart()
	}

	mx, my := ebiten.CursorPosition()
	if p := (geom.Point{X: float64(mx), Y: float64(my)}); p != s.cursor {
		s.cursor = p
		s.scene.Pointer(p)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.scene.Click(s.cursor)
	}

	// A tap is a pointer arriving and pressing at once
	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	for _, id := range s.touches {
		tx, ty := ebiten.TouchPosition(id)
		p := geom.Point{X: float64(tx), Y: float64(ty)}
		s.scene.Pointer(p)
		s.scene.Click(p)
	}
}

func (s *Stage) drawDebug(screen *ebiten.Image) {
	if !s.debug {
		return
	}
	fx := s.scene.Celebration()
	emblems, glints := fx.Counts()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS %.0f  FPS %.0f\nscreen %v  attempts %d  state %v\nreduced %v  particles %d/%d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		s.scene.Screen(), s.scene.Attempts(), s.scene.No().State(),
		s.scene.ReducedMotion(), emblems, glints,
	))
}

// Close stops the scene's timers and releases audio
func (s *Stage) Close() {
	s.scene.Close()
	s.chime.Close()
}
