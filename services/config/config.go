package config

import (
	"time"

	"azaymonitor/errcode"
	"azaymonitor/types"
	"azaymonitor/x/conv"
	"azaymonitor/x/timex"
)

const (
	DefaultNoteDuration = 250 * time.Millisecond
	DefaultCycle        = 150 * time.Millisecond
	DefaultDebounce     = 300 * time.Millisecond
)

// Settings is everything a reminder device needs besides its peripherals.
type Settings struct {
	Schedule     types.Schedule
	NoteDuration time.Duration
	Cycle        time.Duration
	Debounce     time.Duration
	DebugTimers  bool
}

// Default returns the stock schedule and timings.
func Default() Settings {
	return Settings{
		Schedule:     DefaultSchedule(),
		NoteDuration: DefaultNoteDuration,
		Cycle:        DefaultCycle,
		Debounce:     DefaultDebounce,
	}
}

// EmbeddedConfigLookup allows overriding how per-device settings are resolved.
var EmbeddedConfigLookup = func(device string) (Settings, bool) {
	switch device {
	case "pico":
		return Default(), true
	case "pico-debug":
		s := Default()
		s.DebugTimers = true
		return s, true
	}
	return Settings{}, false
}

// ForDevice resolves compiled-in settings for a device ID and finalises them.
func ForDevice(device string) (Settings, error) {
	s, ok := EmbeddedConfigLookup(device)
	if !ok {
		return Settings{}, &errcode.E{C: errcode.InvalidParams, Op: "config.for_device", Msg: "no embedded config for device: " + device}
	}
	return s.Finalise()
}

// Finalise fills zero timings with defaults, applies debug timers and
// validates the schedule.
func (s Settings) Finalise() (Settings, error) {
	if s.NoteDuration <= 0 {
		s.NoteDuration = DefaultNoteDuration
	}
	if s.Cycle <= 0 {
		s.Cycle = DefaultCycle
	}
	if s.Debounce <= 0 {
		s.Debounce = DefaultDebounce
	}
	if s.DebugTimers {
		s.Schedule = WithDebugTimers(s.Schedule)
	}
	if err := Validate(s.Schedule); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the invariants the state machine relies on.
func Validate(s types.Schedule) error {
	if len(s) == 0 {
		return &errcode.E{C: errcode.InvalidSchedule, Op: "config.validate", Msg: "schedule is empty"}
	}
	if len(s) > types.MaxTasks {
		return &errcode.E{C: errcode.InvalidSchedule, Op: "config.validate", Msg: "more than " + conv.Dec(types.MaxTasks) + " tasks"}
	}
	for i, t := range s {
		if t.Label == "" {
			return &errcode.E{C: errcode.InvalidSchedule, Op: "config.validate", Msg: "task " + conv.Dec(i) + ": empty label"}
		}
		if t.Timer > types.TimerAbsolute {
			return &errcode.E{C: errcode.InvalidSchedule, Op: "config.validate", Msg: "task " + conv.Dec(i) + ": unknown timer kind"}
		}
		if t.OffsetSeconds >= timex.DaySeconds {
			return &errcode.E{C: errcode.InvalidSchedule, Op: "config.validate", Msg: "task " + conv.Dec(i) + ": offset of a day or more"}
		}
	}
	return nil
}
