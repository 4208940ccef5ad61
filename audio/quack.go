// Package audio synthesizes the duck's quack and plays it when the player
// signals.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// QuackDuration is the length of one quack.
const QuackDuration = 220 * time.Millisecond

const (
	quackHigh   = 620.0 // Hz at the start of the glide
	quackLow    = 380.0 // Hz at the end
	quackAttack = 0.08  // fraction of the quack spent fading in
)

// quack is a nasal tone gliding downward under a fast attack and a linear
// release.
type quack struct {
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

// Quack returns a finite streamer of one quack at the given sample rate.
func Quack(rate beep.SampleRate) beep.Streamer {
	return &effects.Volume{
		Streamer: &quack{rate: rate, total: rate.N(QuackDuration)},
		Base:     2,
		Volume:   -1,
	}
}

func (q *quack) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if q.position >= q.total {
			return i, i > 0
		}
		t := float64(q.position) / float64(q.total)

		// Square and sine blended for the reedy sound, squashed to [-1, 1].
		square := 1.0
		if q.phase >= 0.5 {
			square = -1
		}
		sine := math.Sin(2 * math.Pi * q.phase)
		val := 0.35*square + 0.65*sine

		vol := 1 - t
		if t < quackAttack {
			vol = t / quackAttack
		}
		samples[i][0] = val * vol
		samples[i][1] = val * vol

		freq := quackHigh + (quackLow-quackHigh)*t
		q.phase += freq / float64(q.rate)
		q.phase -= math.Floor(q.phase)
		q.position++
	}
	return len(samples), true
}

func (q *quack) Err() error { return nil }

// Blip is a short sine confirmation tone.
func Blip(rate beep.SampleRate, freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(60*time.Millisecond), sine), nil
}
