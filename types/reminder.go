package types

import "azaymonitor/x/conv"

// ---- Task table ----

// TimerKind selects how a task arms its alarm.
type TimerKind uint8

const (
	TimerNone TimerKind = iota
	TimerRelative
	// TimerAbsolute is part of the persisted layout but no task behaviour is
	// attached to it.
	TimerAbsolute
)

func (k TimerKind) String() string {
	switch k {
	case TimerRelative:
		return "relative"
	case TimerAbsolute:
		return "absolute"
	default:
		return "none"
	}
}

// ParseTimerKind maps "none", "relative" and "absolute". The empty string is
// TimerNone.
func ParseTimerKind(s string) (TimerKind, bool) {
	switch s {
	case "", "none":
		return TimerNone, true
	case "relative":
		return TimerRelative, true
	case "absolute":
		return TimerAbsolute, true
	}
	return TimerNone, false
}

type Task struct {
	Label         string    `json:"label"`
	Timer         TimerKind `json:"timer"`
	OffsetSeconds uint32    `json:"offset_s,omitempty"` // only for TimerRelative
}

func (t Task) HasRelativeTimer() bool { return t.Timer == TimerRelative }

// Schedule is the ordered, fixed task list. It is never mutated once built.
type Schedule []Task

// MaxTasks is bounded by the one-byte step cursor.
const MaxTasks = 256

// At returns the task for a step, wrapping out-of-range cursors.
func (s Schedule) At(step uint8) Task {
	return s[int(step)%len(s)]
}

// ---- Persisted state ----

// ReminderState is the only mutable, persisted entity.
type ReminderState struct {
	Step       uint8  `json:"step"`
	AlarmFlags uint8  `json:"alarm_flags"` // reserved, written but not interpreted
	Deadline   uint32 `json:"deadline_s"`  // seconds since midnight; 0 = not armed
}

func (r ReminderState) Armed() bool { return r.Deadline != 0 }

// Mode is the volatile system state. Boot always starts in ModeNormal.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeAlarmRinging
	ModeAlarmStopped
)

func (m Mode) String() string {
	switch m {
	case ModeAlarmRinging:
		return "alarm_ringing"
	case ModeAlarmStopped:
		return "alarm_stopped"
	default:
		return "normal"
	}
}

// ---- Time of day ----

type TimeOfDay struct {
	Hours   uint8 `json:"h"`
	Minutes uint8 `json:"m"`
	Seconds uint8 `json:"s"`
}

// Valid reports whether t is a wall-clock time (00:00:00..23:59:59).
func (t TimeOfDay) Valid() bool {
	return t.Hours < 24 && t.Minutes < 60 && t.Seconds < 60
}

// String renders "HH:MM:SS".
func (t TimeOfDay) String() string {
	return string(conv.AppendClock(make([]byte, 0, 8), t.Hours, t.Minutes, t.Seconds, true))
}

// SecondsOfDay converts to seconds since midnight.
func (t TimeOfDay) SecondsOfDay() uint32 {
	return uint32(t.Hours)*3600 + uint32(t.Minutes)*60 + uint32(t.Seconds)
}

// TimeFromSeconds splits a second count into H:M:S. Hours are not reduced
// modulo 24, so countdowns longer than a day keep their magnitude (truncated
// to the byte, as the display field is).
func TimeFromSeconds(total uint32) TimeOfDay {
	h := total / 3600
	total %= 3600
	return TimeOfDay{
		Hours:   uint8(h),
		Minutes: uint8(total / 60),
		Seconds: uint8(total % 60),
	}
}

// ---- Bus payloads ----

type ReminderEventKind string

const (
	EventArmed    ReminderEventKind = "armed"
	EventRinging  ReminderEventKind = "ringing"
	EventStopped  ReminderEventKind = "stopped"
	EventAdvanced ReminderEventKind = "advanced"
)

// ReminderEvent is published under reminder/event/<kind>.
type ReminderEvent struct {
	Kind     ReminderEventKind `json:"kind"`
	Step     uint8             `json:"step"`
	Label    string            `json:"label"`
	Deadline uint32            `json:"deadline_s,omitempty"`
	Now      uint32            `json:"now_s"`
}

// ReminderSnapshot is published retained under reminder/state.
type ReminderSnapshot struct {
	State ReminderState `json:"state"`
	Mode  Mode          `json:"mode"`
	Label string        `json:"label"`
	Now   uint32        `json:"now_s"`
}
