// Package chime synthesises the bell arpeggio played when the question is
// answered. Streams are rendered to PCM up front; playback belongs to the host.
package chime

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Arpeggio timing
const (
	NoteGap    = 120 * time.Millisecond
	NoteLength = 650 * time.Millisecond
	Attack     = 6 * time.Millisecond

	baseNotes = 3
	maxExtra  = 3
	noteGain  = 0.3
	decayRate = 5.5 // per second
)

// Pentatonic run from C5, one entry per possible note
var scale = [baseNotes + maxExtra]float64{523.25, 659.25, 783.99, 1046.50, 1318.51, 1567.98}

// partials of a simple bell: fundamental plus a quieter octave and twelfth
var partials = []struct{ ratio, amp float64 }{
	{1, 0.7},
	{2, 0.2},
	{3, 0.1},
}

// Notes returns how many notes the chime has for an attempt count
func Notes(attempts int) int {
	if attempts < 0 {
		attempts = 0
	}
	extra := attempts / 10
	if extra > maxExtra {
		extra = maxExtra
	}
	return baseNotes + extra
}

// bell is a decaying sum of sine partials
type bell struct {
	freq     float64
	rate     beep.SampleRate
	position int
	total    int
	attack   int
}

func newBell(freq float64, rate beep.SampleRate) beep.Streamer {
	return &bell{
		freq:   freq,
		rate:   rate,
		total:  rate.N(NoteLength),
		attack: rate.N(Attack),
	}
}

func (b *bell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.position >= b.total {
			return i, i > 0
		}
		t := float64(b.position) / float64(b.rate)

		env := math.Exp(-decayRate * t)
		if b.position < b.attack {
			env *= float64(b.position) / float64(b.attack)
		}

		var val float64
		for _, p := range partials {
			val += p.amp * math.Sin(2*math.Pi*b.freq*p.ratio*t)
		}
		val *= env

		samples[i][0] = val
		samples[i][1] = val
		b.position++
	}
	return len(samples), true
}

func (b *bell) Err() error { return nil }

// volume wraps s in a linear gain; 0 silences it
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Celebration builds the arpeggio for an attempt count at the given linear volume
func Celebration(attempts int, rate beep.SampleRate, vol float64) beep.Streamer {
	n := Notes(attempts)
	voices := make([]beep.Streamer, 0, n)
	for i := 0; i < n; i++ {
		note := volume(newBell(scale[i], rate), noteGain)
		voices = append(voices, beep.Seq(beep.Silence(rate.N(time.Duration(i)*NoteGap)), note))
	}
	return volume(beep.Mix(voices...), vol)
}

// Render drains s into 16-bit little-endian interleaved stereo PCM, clipping
// at full scale
func Render(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	frame := make([]byte, 4)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:], uint16(pcm16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(pcm16(buf[i][1])))
			out = append(out, frame...)
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func pcm16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}
