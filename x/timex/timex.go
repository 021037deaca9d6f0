package timex

import "time"

// DaySeconds is the length of the device's only time domain: a day without a
// date.
const DaySeconds = 86400

// SecondsOfDay returns seconds since local midnight for t.
func SecondsOfDay(t time.Time) uint32 {
	h, m, s := t.Clock()
	return uint32(h*3600 + m*60 + s)
}

// Normalize folds a seconds count into [0, DaySeconds).
func Normalize(s uint32) uint32 { return s % DaySeconds }

// Remaining returns deadline-now when now is strictly before deadline.
// Values are compared raw; a deadline past midnight (>= DaySeconds) is not
// folded back into the day.
func Remaining(deadline, now uint32) (uint32, bool) {
	if deadline == 0 || now >= deadline {
		return 0, false
	}
	return deadline - now, true
}
