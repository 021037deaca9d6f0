// Package reminder implements the medication/feeding reminder: a fixed task
// list walked one step per button press, with relative alarms armed when a
// timed task becomes active.
//
// Tick is the pure state machine; Service binds it to a clock, a persistent
// slot, a display, a sounder and a button and runs it at a fixed cadence.
package reminder

import (
	"azaymonitor/types"
	"azaymonitor/x/mathx"
	"azaymonitor/x/timex"
)

// State is everything Tick reads and writes. Rec is persisted; Mode is not.
type State struct {
	Rec  types.ReminderState
	Mode types.Mode
}

// Inputs for one cycle.
type Inputs struct {
	Now     uint32 // seconds since midnight, [0, 86400)
	Pressed bool   // one debounced press; in ModeAlarmRinging includes a sounder interruption
}

// Frame is what the display shows for one cycle.
type Frame struct {
	Label     string
	Step      uint8
	Countdown bool
	Time      types.TimeOfDay
}

// Outputs tell the caller which side effects the cycle requires.
type Outputs struct {
	Frame Frame

	// ClearDisplay is applied after the task header is written and before the
	// time line, matching the device's write order.
	ClearDisplay bool

	// Persist requests that State.Rec be written back before the cycle ends.
	Persist bool

	// ConsumedPress means a press changed state; the caller must hold off
	// sampling the button for the debounce period.
	ConsumedPress bool

	// Armed is set on the cycle a relative timer is armed. ArmedAt is the
	// deadline folded into the day, for the diagnostic line only.
	Armed   bool
	ArmedAt types.TimeOfDay

	Events []types.ReminderEvent
}

// Tick advances the machine by one cycle. sched must be non-empty.
//
// Within ModeNormal the three rules run in order in the same cycle: arm, then
// trigger, then press. A press on the cycle the alarm fires still advances
// the step, and the machine stays in ModeAlarmRinging.
//
// The trigger compares raw values. A deadline armed shortly before midnight
// can exceed 86400 and is never reached by a clock that wraps to 0; the
// diagnostic ArmedAt shows the folded time. This is kept as observed on the
// device.
func Tick(st *State, sched types.Schedule, in Inputs) Outputs {
	var out Outputs

	st.Rec.Step = WrapStep(st.Rec.Step, len(sched))
	task := sched.At(st.Rec.Step)
	out.Frame.Label = task.Label
	out.Frame.Step = st.Rec.Step

	switch st.Mode {
	case types.ModeNormal:
		if task.HasRelativeTimer() && st.Rec.Deadline == 0 {
			st.Rec.Deadline = in.Now + task.OffsetSeconds
			out.Persist = true
			out.Armed = true
			out.ArmedAt = types.TimeFromSeconds(timex.Normalize(st.Rec.Deadline))
			out.emit(types.EventArmed, st, task.Label, in.Now)
		}
		if task.HasRelativeTimer() && st.Rec.Deadline > 0 && in.Now >= st.Rec.Deadline {
			st.Mode = types.ModeAlarmRinging
			out.emit(types.EventRinging, st, task.Label, in.Now)
		}
		if in.Pressed {
			advance(st, sched, &out, in.Now)
		}

	case types.ModeAlarmRinging:
		if in.Pressed {
			st.Mode = types.ModeAlarmStopped
			out.ConsumedPress = true
			out.emit(types.EventStopped, st, task.Label, in.Now)
		}

	case types.ModeAlarmStopped:
		if in.Pressed {
			st.Mode = types.ModeNormal
			advance(st, sched, &out, in.Now)
		}
	}

	if left, ok := timex.Remaining(st.Rec.Deadline, in.Now); ok {
		out.Frame.Countdown = true
		out.Frame.Time = types.TimeFromSeconds(left)
	} else {
		out.Frame.Time = types.TimeFromSeconds(in.Now)
	}
	return out
}

// Advance moves to the next task and disarms the timer. Exposed for callers
// that need the bare step operation (tests, host tooling).
func Advance(st *State, sched types.Schedule) {
	var out Outputs
	advance(st, sched, &out, 0)
}

func advance(st *State, sched types.Schedule, out *Outputs, now uint32) {
	// Step is already in [0, n) and n <= 256, so a uint8 overflow lands on 0.
	st.Rec.Step = WrapStep(st.Rec.Step+1, len(sched))
	st.Rec.Deadline = 0
	out.Persist = true
	out.ClearDisplay = true
	out.ConsumedPress = true
	out.emit(types.EventAdvanced, st, sched.At(st.Rec.Step).Label, now)
}

// WrapStep reduces a (possibly corrupted) cursor into [0, n).
func WrapStep(step uint8, n int) uint8 {
	return uint8(mathx.Wrap(int(step), n))
}

func (o *Outputs) emit(kind types.ReminderEventKind, st *State, label string, now uint32) {
	o.Events = append(o.Events, types.ReminderEvent{
		Kind:     kind,
		Step:     st.Rec.Step,
		Label:    label,
		Deadline: st.Rec.Deadline,
		Now:      now,
	})
}
