// Package sounder plays the alarm melody on a tone output and lets a button
// press cut it short.
package sounder

import (
	"context"
	"time"

	"azaymonitor/x/mathx"
)

// Note is one melody step. MIDI is what the tinygo tone driver takes; Hz is
// kept for outputs that want a plain frequency.
type Note struct {
	Name string
	MIDI uint8
	Hz   uint16
}

// Melody is one octave of C major, C5 up to C6.
var Melody = [...]Note{
	{"C5", 72, 523},
	{"D5", 74, 587},
	{"E5", 76, 659},
	{"F5", 77, 698},
	{"G5", 79, 784},
	{"A5", 81, 880},
	{"B5", 83, 988},
	{"C6", 84, 1047},
}

const (
	DefaultNoteDuration = 250 * time.Millisecond
	PollInterval        = 10 * time.Millisecond

	minNote = PollInterval
	maxNote = 5 * time.Second
)

// Tone is the sound output.
type Tone interface {
	Play(n Note) error
	Stop()
}

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(ctx context.Context, d time.Duration) bool

type Player struct {
	tone Tone
	note time.Duration
	tick Tick

	// OnError is told about a note the output refused. Optional.
	OnError func(n Note, err error)
}

// New returns a Player. The note duration is clamped to [10ms, 5s]; zero
// selects DefaultNoteDuration.
func New(t Tone, note time.Duration) *Player {
	if note == 0 {
		note = DefaultNoteDuration
	}
	return &Player{
		tone: t,
		note: mathx.Clamp(note, minNote, maxNote),
		tick: wait,
	}
}

// WithTick swaps the wait function; used by simulations and tests.
func (p *Player) WithTick(t Tick) *Player {
	p.tick = t
	return p
}

func (p *Player) NoteDuration() time.Duration { return p.note }

// Play runs the melody once, sampling pressed every PollInterval. It returns
// true as soon as a press is seen and false when the melody completes or ctx
// ends. The output is silent on return.
func (p *Player) Play(ctx context.Context, pressed func() bool) bool {
	defer p.tone.Stop()

	slices := mathx.CeilDiv(p.note, PollInterval)
	for _, n := range Melody {
		if err := p.tone.Play(n); err != nil && p.OnError != nil {
			p.OnError(n, err)
		}
		for i := time.Duration(0); i < slices; i++ {
			if pressed() {
				return true
			}
			if !p.tick(ctx, PollInterval) {
				return false
			}
		}
	}
	return false
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
