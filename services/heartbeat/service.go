// Package heartbeat prints a periodic liveness line with the reminder's last
// snapshot and echoes reminder events as they happen. It only reads the bus.
package heartbeat

import (
	"context"
	"time"

	"azaymonitor/bus"
	"azaymonitor/services/reminder"
	"azaymonitor/types"
	"azaymonitor/x/conv"
	"azaymonitor/x/timex"
)

const DefaultInterval = 60 * time.Second

type Service struct {
	Interval time.Duration
	// Print receives one line per call. Defaults to println.
	Print func(line string)

	last types.ReminderSnapshot
	seen bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	stateSub := conn.Subscribe(reminder.TopicState)
	defer conn.Unsubscribe(stateSub)
	evSub := conn.Subscribe(reminder.TopicEvent.Append("#"))
	defer conn.Unsubscribe(evSub)

	tick := time.NewTicker(s.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Print("[heartbeat] stopping")
			return
		case <-tick.C:
			s.Print(s.heartbeatLine())
		case msg := <-stateSub.Channel():
			if snap, ok := msg.Payload.(types.ReminderSnapshot); ok {
				s.last, s.seen = snap, true
			}
		case msg := <-evSub.Channel():
			if ev, ok := msg.Payload.(types.ReminderEvent); ok {
				s.Print(EventLine(ev))
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	if s.Print == nil {
		s.Print = func(line string) { println(line) }
	}
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) heartbeatLine() string {
	if !s.seen {
		return "[heartbeat] waiting for reminder"
	}
	var n [3]byte
	b := make([]byte, 0, 64)
	b = append(b, "[heartbeat] "...)
	b = appendClock(b, s.last.Now)
	b = append(b, " step="...)
	b = append(b, conv.Utoa(n[:], uint64(s.last.State.Step))...)
	b = append(b, " mode="...)
	b = append(b, s.last.Mode.String()...)
	b = append(b, " task="...)
	b = append(b, s.last.Label...)
	return string(b)
}

// EventLine renders an event as "[reminder] <kind> step=N <label>" with the
// deadline appended for armed events.
func EventLine(ev types.ReminderEvent) string {
	var n [3]byte
	b := make([]byte, 0, 64)
	b = append(b, "[reminder] "...)
	b = append(b, string(ev.Kind)...)
	b = append(b, " step="...)
	b = append(b, conv.Utoa(n[:], uint64(ev.Step))...)
	b = append(b, ' ')
	b = append(b, ev.Label...)
	if ev.Kind == types.EventArmed {
		b = append(b, " at "...)
		b = appendClock(b, ev.Deadline)
	}
	return string(b)
}

func appendClock(b []byte, sec uint32) []byte {
	t := types.TimeFromSeconds(timex.Normalize(sec))
	return conv.AppendClock(b, t.Hours, t.Minutes, t.Seconds, true)
}
