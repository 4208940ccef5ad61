package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker is opened at.
const SampleRate = beep.SampleRate(44100)

// Speaker mixes sounds into the system audio device.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Init opens the audio device. It is safe to call more than once.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes streamer in. Nothing plays before Init.
func (s *Speaker) Play(streamer beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Quack plays one quack.
func (s *Speaker) Quack() {
	s.Play(Quack(SampleRate))
}

// Blip plays a short confirmation tone.
func (s *Speaker) Blip(freq float64) {
	if b, err := Blip(SampleRate, freq); err == nil {
		s.Play(b)
	}
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	s.mixer.Clear()
	s.initialized = false
}
