package sounder

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recTone struct {
	played  []Note
	stopped int
	err     error
}

func (r *recTone) Play(n Note) error { r.played = append(r.played, n); return r.err }
func (r *recTone) Stop()             { r.stopped++ }

func countingTick(n *int) Tick {
	return func(ctx context.Context, _ time.Duration) bool {
		*n++
		return ctx.Err() == nil
	}
}

func TestPlay_FullMelody(t *testing.T) {
	tone := &recTone{}
	ticks := 0
	p := New(tone, 0).WithTick(countingTick(&ticks))

	if p.Play(context.Background(), func() bool { return false }) {
		t.Fatal("reported a press without one")
	}
	if len(tone.played) != len(Melody) || tone.played[0].Name != "C5" || tone.played[7].Name != "C6" {
		t.Fatalf("played=%v", tone.played)
	}
	if ticks != len(Melody)*25 {
		t.Fatalf("ticks=%d want %d", ticks, len(Melody)*25)
	}
	if tone.stopped != 1 {
		t.Fatalf("stopped=%d", tone.stopped)
	}
}

func TestPlay_PressCutsShort(t *testing.T) {
	tone := &recTone{}
	ticks := 0
	p := New(tone, 0).WithTick(countingTick(&ticks))

	polls := 0
	cut := p.Play(context.Background(), func() bool {
		polls++
		return polls == 30 // inside the second note
	})
	if !cut {
		t.Fatal("press not reported")
	}
	if len(tone.played) != 2 || tone.stopped != 1 {
		t.Fatalf("played=%d stopped=%d", len(tone.played), tone.stopped)
	}
}

func TestPlay_CancelledContext(t *testing.T) {
	tone := &recTone{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ticks := 0
	p := New(tone, 0).WithTick(countingTick(&ticks))
	if p.Play(ctx, func() bool { return false }) {
		t.Fatal("cancelled play reported a press")
	}
	if ticks != 1 || tone.stopped != 1 {
		t.Fatalf("ticks=%d stopped=%d", ticks, tone.stopped)
	}
}

func TestNew_ClampsNoteDuration(t *testing.T) {
	if d := New(&recTone{}, time.Millisecond).NoteDuration(); d != 10*time.Millisecond {
		t.Fatalf("short=%v", d)
	}
	if d := New(&recTone{}, time.Minute).NoteDuration(); d != 5*time.Second {
		t.Fatalf("long=%v", d)
	}
	if d := New(&recTone{}, 0).NoteDuration(); d != DefaultNoteDuration {
		t.Fatalf("default=%v", d)
	}
}

func TestPlay_ToneErrorsAreReported(t *testing.T) {
	tone := &recTone{err: errors.New("pwm busy")}
	var seen []string
	p := New(tone, 10*time.Millisecond).WithTick(func(context.Context, time.Duration) bool { return true })
	p.OnError = func(n Note, _ error) { seen = append(seen, n.Name) }
	p.Play(context.Background(), func() bool { return false })
	if len(seen) != len(Melody) {
		t.Fatalf("errors=%v", seen)
	}
}

func TestWait_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if wait(ctx, time.Hour) {
		t.Fatal("wait ignored cancellation")
	}
	if !wait(context.Background(), time.Millisecond) {
		t.Fatal("wait should complete")
	}
}
