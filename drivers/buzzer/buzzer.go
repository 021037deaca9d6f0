//go:build rp2040 || rp2350

// Package buzzer drives a passive piezo through tinygo's PWM tone driver.
package buzzer

import (
	"machine"

	"tinygo.org/x/drivers/tone"

	"azaymonitor/services/sounder"
)

type Buzzer struct {
	spk tone.Speaker
}

// New claims pin on the given PWM slice.
func New(pwm tone.PWM, pin machine.Pin) (*Buzzer, error) {
	spk, err := tone.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return &Buzzer{spk: spk}, nil
}

func (b *Buzzer) Play(n sounder.Note) error {
	b.spk.SetNote(tone.Note(n.MIDI))
	return nil
}

func (b *Buzzer) Stop() { b.spk.Stop() }
