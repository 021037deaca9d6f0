package config

import "azaymonitor/types"

// Relative timer lengths of the stock schedule.
const (
	HalfHour   = 30 * 60
	TenMinutes = 10 * 60

	// DebugOffset replaces every relative offset when debug timers are on.
	DebugOffset = 2
)

// Labels of the stock schedule. Kept within the 16-column display.
const (
	MedAntepsin    = "Antepsin 1/4"
	MedKvamatel    = "Kvamatel 1/6"
	MedVetmedin    = "Vetmedin 1"
	MedFeed        = "Feed"
	MedTrigrim     = "Trigrim 1/4"
	MedGaba        = "Gaba 1ml"
	MedAmlodipin   = "Amlodipin 1/15"
	MedViagra      = "Viagra50/14 1ml"
	MedVeroshpiron = "Veroshpiron 1/4"
	MedUrsosan     = "Ursosan 1/6"
	MedSleep       = "Sleep"
	MedWalk        = "Walk"

	SpacerLabel    = "Spacer"
	SeparatorLabel = "---------------"
)

// ---- task constructors ----

func Simple(label string) types.Task { return types.Task{Label: label} }

func Relative(label string, offsetSeconds uint32) types.Task {
	return types.Task{Label: label, Timer: types.TimerRelative, OffsetSeconds: offsetSeconds}
}

// Absolute declares a task with an absolute timer. No behaviour is attached.
func Absolute(label string, secondsOfDay uint32) types.Task {
	return types.Task{Label: label, Timer: types.TimerAbsolute, OffsetSeconds: secondsOfDay}
}

// Spacer is a ten-minute pause task.
func Spacer() types.Task { return Relative(SpacerLabel, TenMinutes) }

// Separator is a visual divider between blocks.
func Separator() types.Task { return Simple(SeparatorLabel) }

// MedicationBlock is the morning/evening round: the common medications, a
// timed feed, the variable medication, the rest of the common ones and a
// spacer.
func MedicationBlock(variable string) []types.Task {
	return []types.Task{
		Simple(MedAntepsin),
		Simple(MedKvamatel),
		Simple(MedVetmedin),
		Relative(MedFeed, HalfHour),
		Simple(variable),
		Simple(MedGaba),
		Simple(MedAmlodipin),
		Simple(MedViagra),
		Spacer(),
	}
}

// DefaultSchedule builds the stock day in order.
func DefaultSchedule() types.Schedule {
	var s types.Schedule
	s = append(s, Simple(MedWalk))
	s = append(s, MedicationBlock(MedTrigrim)...)
	s = append(s, Separator())

	s = append(s, Simple(MedWalk))
	s = append(s, MedicationBlock(MedVeroshpiron)...)
	s = append(s, Separator())

	s = append(s,
		Simple(MedWalk),
		Simple(MedVetmedin),
		Relative(MedFeed, HalfHour),
		Simple(MedWalk),
		Relative(MedUrsosan, TenMinutes),
		Simple(MedSleep),
	)
	return s
}

// WithDebugTimers returns a copy with every relative offset shortened to
// DebugOffset.
func WithDebugTimers(s types.Schedule) types.Schedule {
	out := make(types.Schedule, len(s))
	copy(out, s)
	for i := range out {
		if out[i].HasRelativeTimer() {
			out[i].OffsetSeconds = DebugOffset
		}
	}
	return out
}
