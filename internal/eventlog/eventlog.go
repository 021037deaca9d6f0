// Package eventlog writes reminder bus traffic to a zerolog logger.
package eventlog

import (
	"context"

	"github.com/rs/zerolog"

	"azaymonitor/bus"
	"azaymonitor/services/reminder"
	"azaymonitor/types"
	"azaymonitor/x/timex"
)

// Logger consumes reminder events until its context ends.
type Logger struct {
	log  zerolog.Logger
	conn *bus.Connection
	sub  *bus.Subscription
}

// New subscribes immediately so that nothing published after New returns is
// missed.
func New(log zerolog.Logger, conn *bus.Connection) *Logger {
	return &Logger{
		log:  log.With().Str("component", "reminder").Logger(),
		conn: conn,
		sub:  conn.Subscribe(reminder.TopicEvent.Append("#")),
	}
}

// Run blocks until ctx is done or the subscription closes.
func (l *Logger) Run(ctx context.Context) {
	defer l.conn.Unsubscribe(l.sub)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-l.sub.Channel():
			if !ok {
				return
			}
			if ev, ok := msg.Payload.(types.ReminderEvent); ok {
				l.logEvent(ev)
			}
		}
	}
}

func (l *Logger) logEvent(ev types.ReminderEvent) {
	e := l.log.Info()
	if ev.Kind == types.EventRinging {
		e = l.log.Warn()
	}
	e = e.Str("event", string(ev.Kind)).
		Uint8("step", ev.Step).
		Str("task", ev.Label).
		Str("at", types.TimeFromSeconds(ev.Now).String())
	if ev.Kind == types.EventArmed {
		e = e.Uint32("deadline_s", ev.Deadline).
			Str("deadline", types.TimeFromSeconds(timex.Normalize(ev.Deadline)).String())
	}
	e.Msg("reminder " + string(ev.Kind))
}
