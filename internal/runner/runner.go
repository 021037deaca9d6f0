// Package runner drives the reminder loop at a fixed cadence on the host,
// using gocron in place of the firmware's sleep loop.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Stepper runs one cycle. A returned error stops the runner.
type Stepper interface {
	Step(ctx context.Context) error
}

type Runner struct {
	scheduler gocron.Scheduler
	log       zerolog.Logger
	errs      chan error
}

func New(log zerolog.Logger) (*Runner, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Runner{scheduler: s, log: log, errs: make(chan error, 1)}, nil
}

// Every schedules st every interval. Runs never overlap: a slow cycle pushes
// the next one back.
func (r *Runner) Every(ctx context.Context, name string, interval time.Duration, st Stepper) error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := st.Step(ctx); err != nil && ctx.Err() == nil {
				select {
				case r.errs <- fmt.Errorf("%s: %w", name, err):
				default:
				}
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	r.log.Debug().Str("job", name).Dur("interval", interval).Msg("scheduled")
	return nil
}

// EveryFunc schedules a plain function.
func (r *Runner) EveryFunc(ctx context.Context, name string, interval time.Duration, fn func()) error {
	return r.Every(ctx, name, interval, StepFunc(func(context.Context) error { fn(); return nil }))
}

// Run starts the scheduler and blocks until ctx ends or a job fails.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info().Msg("starting scheduler")
	r.scheduler.Start()
	defer func() {
		if err := r.scheduler.Shutdown(); err != nil {
			r.log.Error().Err(err).Msg("scheduler shutdown")
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-r.errs:
		return err
	}
}

// StepFunc adapts a function to Stepper.
type StepFunc func(ctx context.Context) error

func (f StepFunc) Step(ctx context.Context) error { return f(ctx) }
