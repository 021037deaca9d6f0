package reminder

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"azaymonitor/bus"
	"azaymonitor/errcode"
	"azaymonitor/types"
	"azaymonitor/x/conv"
)

// -----------------------------------------------------------------------------
// Collaborators
// -----------------------------------------------------------------------------

// Clock reports the wall-clock time of day.
type Clock interface {
	Now() (types.TimeOfDay, error)
}

// Store is a durable slot store. Load returns errcode.NoRecord for a slot that
// has never been written.
type Store interface {
	Load(ctx context.Context, slot uint8) ([]byte, error)
	Save(ctx context.Context, slot uint8, rec []byte) error
}

// Display is the two-line text surface.
type Display interface {
	ShowTask(label string, step uint8)
	ShowTime(countdown bool, t types.TimeOfDay)
	Clear()
}

// Sounder plays the alarm pattern, polling pressed while it plays. It returns
// true when a press cut the pattern short.
type Sounder interface {
	Play(ctx context.Context, pressed func() bool) bool
}

// Button reports whether the button is down right now.
type Button interface {
	Pressed() bool
}

// -----------------------------------------------------------------------------
// Topics
// -----------------------------------------------------------------------------

var (
	TopicState = bus.T("reminder", "state")
	TopicEvent = bus.T("reminder", "event")
)

// EventTopic returns reminder/event/<kind>.
func EventTopic(kind types.ReminderEventKind) bus.Topic {
	return TopicEvent.Append(string(kind))
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

const (
	DefaultCycle    = 150 * time.Millisecond
	DefaultDebounce = 300 * time.Millisecond
)

type Config struct {
	Schedule types.Schedule
	Cycle    time.Duration // pause between cycles in Run
	Debounce time.Duration // dead time after a press changes state
}

// Devices groups the collaborators. Conn, Diag, Sleep and OnError are optional.
type Devices struct {
	Clock   Clock
	Store   Store
	Display Display
	Sounder Sounder
	Button  Button

	Conn *bus.Connection
	Diag io.Writer // serial diagnostic line on arming

	// Sleep blocks for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration)

	// OnError receives best-effort failures (persistence writes). Defaults to
	// println.
	OnError func(op string, err error)
}

type Service struct {
	cfg Config
	dev Devices

	mu sync.Mutex
	st State
}

func NewService(cfg Config, dev Devices) *Service {
	if cfg.Cycle <= 0 {
		cfg.Cycle = DefaultCycle
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if dev.Sleep == nil {
		dev.Sleep = sleepCtx
	}
	if dev.OnError == nil {
		dev.OnError = func(op string, err error) {
			println("[reminder]", op, "failed:", err.Error())
		}
	}
	return &Service{cfg: cfg, dev: dev}
}

// State returns a copy of the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Boot loads the persisted record from the state slot. A slot that was never
// written boots as step 0 with no alarm. Mode always starts as normal.
func (s *Service) Boot(ctx context.Context) error {
	raw, err := s.dev.Store.Load(ctx, StateSlot)
	var rec types.ReminderState
	switch {
	case err == nil:
		rec, err = DecodeRecord(raw, len(s.cfg.Schedule))
		if err != nil && !errors.Is(err, errcode.NoRecord) {
			return err
		}
	case errors.Is(err, errcode.NoRecord):
	default:
		return errcode.Wrap(errcode.StoreRead, "reminder.boot", err)
	}

	s.mu.Lock()
	s.st = State{Rec: rec, Mode: types.ModeNormal}
	snap := s.snapshotLocked(0)
	s.mu.Unlock()
	s.publish(snap, nil)
	return nil
}

// Step runs one cycle. Clock failures are returned and nothing is ticked;
// persistence failures are reported through OnError.
func (s *Service) Step(ctx context.Context) error {
	tod, err := s.dev.Clock.Now()
	if err != nil {
		return errcode.Wrap(errcode.ClockRead, "reminder.step", err)
	}
	if !tod.Valid() {
		return &errcode.E{C: errcode.ClockRead, Op: "reminder.step", Msg: "time out of range"}
	}
	now := tod.SecondsOfDay()

	s.mu.Lock()
	mode := s.st.Mode
	s.mu.Unlock()

	var pressed bool
	if mode == types.ModeAlarmRinging {
		cut := s.dev.Sounder.Play(ctx, s.dev.Button.Pressed)
		if err := ctx.Err(); err != nil {
			return err
		}
		pressed = cut || s.dev.Button.Pressed()
	} else {
		pressed = s.dev.Button.Pressed()
	}

	s.mu.Lock()
	out := Tick(&s.st, s.cfg.Schedule, Inputs{Now: now, Pressed: pressed})
	rec := s.st.Rec
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.dev.Display.ShowTask(out.Frame.Label, out.Frame.Step)
	if out.ClearDisplay {
		s.dev.Display.Clear()
	}
	s.dev.Display.ShowTime(out.Frame.Countdown, out.Frame.Time)

	if out.Persist {
		if err := s.dev.Store.Save(ctx, StateSlot, EncodeRecord(rec)); err != nil {
			s.dev.OnError("persist", errcode.Wrap(errcode.StoreWrite, "reminder.step", err))
		}
	}
	if out.Armed {
		s.writeDiag(out.ArmedAt)
	}
	s.publish(snap, out.Events)

	if out.ConsumedPress {
		s.dev.Sleep(ctx, s.cfg.Debounce)
	}
	return nil
}

// Run boots and then cycles until ctx is cancelled or the clock fails.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Boot(ctx); err != nil {
		return err
	}
	for {
		if err := s.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.dev.Sleep(ctx, s.cfg.Cycle)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Service) snapshotLocked(now uint32) types.ReminderSnapshot {
	return types.ReminderSnapshot{
		State: s.st.Rec,
		Mode:  s.st.Mode,
		Label: s.cfg.Schedule.At(s.st.Rec.Step).Label,
		Now:   now,
	}
}

func (s *Service) publish(snap types.ReminderSnapshot, evs []types.ReminderEvent) {
	c := s.dev.Conn
	if c == nil {
		return
	}
	for _, ev := range evs {
		c.Publish(c.NewMessage(EventTopic(ev.Kind), ev, false))
	}
	c.Publish(c.NewMessage(TopicState, snap, true))
}

// writeDiag emits "Next alarm will be activated at: H:MM:SS".
func (s *Service) writeDiag(at types.TimeOfDay) {
	line := make([]byte, 0, 48)
	line = append(line, "Next alarm will be activated at: "...)
	line = conv.AppendClock(line, at.Hours, at.Minutes, at.Seconds, false)
	if s.dev.Diag == nil {
		println(string(line))
		return
	}
	line = append(line, '\r', '\n')
	_, _ = s.dev.Diag.Write(line)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
