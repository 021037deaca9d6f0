// Package sim provides in-process stand-ins for the reminder's peripherals:
// an adjustable clock, a latched button, a 16x2 character panel, a tone
// recorder and a memory slot store.
package sim

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"azaymonitor/drivers/lcd"
	"azaymonitor/errcode"
	"azaymonitor/services/sounder"
	"azaymonitor/types"
	"azaymonitor/x/timex"
)

// ---- Clock ----

// Clock runs from a start time of day at Speed times real time. Shift moves
// it without touching the rate.
type Clock struct {
	mu     sync.Mutex
	start  uint32
	origin time.Time
	speed  float64
	offset time.Duration

	wall func() time.Time
}

// NewClock starts at start (seconds since midnight) running speed times real
// time. speed <= 0 is treated as 1.
func NewClock(start uint32, speed float64) *Clock {
	return newClock(start, speed, time.Now)
}

// NewWallClock follows the host's local time of day.
func NewWallClock() *Clock {
	return NewClock(timex.SecondsOfDay(time.Now()), 1)
}

func newClock(start uint32, speed float64, wall func() time.Time) *Clock {
	if speed <= 0 {
		speed = 1
	}
	return &Clock{start: timex.Normalize(start), origin: wall(), speed: speed, wall: wall}
}

func (c *Clock) Now() (types.TimeOfDay, error) {
	return types.TimeFromSeconds(c.SecondsOfDay()), nil
}

// SecondsOfDay is the simulated seconds since midnight.
func (c *Clock) SecondsOfDay() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := time.Duration(float64(c.wall().Sub(c.origin))*c.speed) + c.offset
	sec := int64(c.start) + int64(elapsed/time.Second)
	sec %= timex.DaySeconds
	if sec < 0 {
		sec += timex.DaySeconds
	}
	return uint32(sec)
}

// Shift moves the clock by d, wrapping at midnight.
func (c *Clock) Shift(d time.Duration) {
	c.mu.Lock()
	c.offset += d
	c.mu.Unlock()
}

// ---- Button ----

// Button latches a press until the next sample reads it. Presses made while
// Settle waits are dropped, as a level-sampled button would miss them.
type Button struct {
	pending atomic.Bool
}

func (b *Button) Press() { b.pending.Store(true) }

func (b *Button) Pressed() bool { return b.pending.Swap(false) }

// Settle blocks for d or until ctx is done, then discards any latched press.
func (b *Button) Settle(ctx context.Context, d time.Duration) {
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
	b.pending.Store(false)
}

// ---- LCD ----

// LCD is a character panel satisfying lcd.Panel.
type LCD struct {
	mu       sync.Mutex
	rows     [lcd.Rows][lcd.Cols]byte
	col, row uint8
	clears   int
}

func NewLCD() *LCD {
	l := &LCD{}
	l.clearLocked()
	return l
}

func (l *LCD) SetCursor(col, row uint8) {
	l.mu.Lock()
	l.col, l.row = col, row
	l.mu.Unlock()
}

func (l *LCD) Print(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range data {
		if int(l.row) < lcd.Rows && int(l.col) < lcd.Cols {
			l.rows[l.row][l.col] = c
		}
		l.col++
	}
}

func (l *LCD) ClearDisplay() {
	l.mu.Lock()
	l.clearLocked()
	l.clears++
	l.mu.Unlock()
}

func (l *LCD) clearLocked() {
	for r := range l.rows {
		for c := range l.rows[r] {
			l.rows[r][c] = ' '
		}
	}
	l.col, l.row = 0, 0
}

// Lines returns both rows, each exactly lcd.Cols wide.
func (l *LCD) Lines() [lcd.Rows]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out [lcd.Rows]string
	for r := range l.rows {
		out[r] = string(l.rows[r][:])
	}
	return out
}

func (l *LCD) String() string {
	lines := l.Lines()
	return strings.Join(lines[:], "\n")
}

// ---- Tone ----

// Tone records the note currently sounding.
type Tone struct {
	mu      sync.Mutex
	note    sounder.Note
	playing bool
	played  int

	// OnNote is called for every note started. Optional.
	OnNote func(n sounder.Note)
}

func (t *Tone) Play(n sounder.Note) error {
	t.mu.Lock()
	t.note, t.playing = n, true
	t.played++
	cb := t.OnNote
	t.mu.Unlock()
	if cb != nil {
		cb(n)
	}
	return nil
}

func (t *Tone) Stop() {
	t.mu.Lock()
	t.playing = false
	t.mu.Unlock()
}

// Sounding reports the current note, if any.
func (t *Tone) Sounding() (sounder.Note, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.note, t.playing
}

// Played counts notes started since creation.
func (t *Tone) Played() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.played
}

// ---- Store ----

// MemStore is a volatile slot store.
type MemStore struct {
	mu    sync.Mutex
	slots map[uint8][]byte
}

func NewMemStore() *MemStore { return &MemStore{slots: make(map[uint8][]byte)} }

func (m *MemStore) Load(_ context.Context, slot uint8) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.slots[slot]
	if !ok {
		return nil, errcode.NoRecord
	}
	return append([]byte(nil), b...), nil
}

func (m *MemStore) Save(_ context.Context, slot uint8, rec []byte) error {
	m.mu.Lock()
	m.slots[slot] = append([]byte(nil), rec...)
	m.mu.Unlock()
	return nil
}
