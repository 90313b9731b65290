package main

import (
	"log"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/olivierh59500/inevitable-go/internal/chime"
)

const sampleRate = 44100

// chimePlayer plays the celebration arpeggio through Ebitengine's audio
// context. A nil player is silent.
type chimePlayer struct {
	ctx    *audio.Context
	volume float64
	player *audio.Player
}

func newChimePlayer(volume float64) *chimePlayer {
	if volume <= 0 {
		return nil
	}
	return &chimePlayer{ctx: audio.NewContext(sampleRate), volume: volume}
}

// Play renders and starts the chime for an attempt count, cutting off any
// chime still ringing
func (c *chimePlayer) Play(attempts int) {
	if c == nil {
		return
	}
	c.stop()
	pcm := chime.Render(chime.Celebration(attempts, beep.SampleRate(sampleRate), c.volume))
	c.player = c.ctx.NewPlayerFromBytes(pcm)
	c.player.Play()
}

func (c *chimePlayer) stop() {
	if c.player == nil {
		return
	}
	if err := c.player.Close(); err != nil {
		log.Printf("audio: close player: %v", err)
	}
	c.player = nil
}

// Close releases the current player
func (c *chimePlayer) Close() {
	if c == nil {
		return
	}
	c.stop()
}
