package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"azaymonitor/internal/eventlog"
	"azaymonitor/internal/runner"
	"azaymonitor/internal/sim"
	"azaymonitor/services/config"
)

type RunCmd struct {
	flags    *Flags
	settings *config.Settings

	// flags
	start      string
	speed      float64
	pressEvery time.Duration
	runFor     time.Duration
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags, settings *config.Settings) *RunCmd {
	return &RunCmd{flags: flags, settings: settings}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run the reminder headless, logging its events",
		UsageText: "azaysim run [--start HH:MM:SS] [--speed N] [--press-every D] [--for D]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "start",
				Usage:       "simulated start time of day (default: now)",
				Destination: &cmd.start,
			},
			&cli.FloatFlag{
				Name:        "speed",
				Usage:       "clock multiplier",
				Value:       1,
				Destination: &cmd.speed,
			},
			&cli.DurationFlag{
				Name:        "press-every",
				Usage:       "press the button automatically at this interval",
				Destination: &cmd.pressEvery,
			},
			&cli.DurationFlag{
				Name:        "for",
				Usage:       "stop after this long (default: until interrupted)",
				Destination: &cmd.runFor,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	log, closeLog, err := cmd.flags.Logger("")
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	start, err := parseStart(cmd.start)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cmd.runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.runFor)
		defer cancel()
	}

	r, err := newRig(cmd.flags, cmd.settings, sim.NewClock(start, cmd.speed), log)
	if err != nil {
		return err
	}
	defer r.Close()

	events := eventlog.New(log, r.bus.NewConnection("eventlog"))
	go events.Run(ctx)

	if err := r.svc.Boot(ctx); err != nil {
		return err
	}
	st := r.svc.State()
	log.Info().
		Uint8("step", st.Rec.Step).
		Str("task", cmd.settings.Schedule.At(st.Rec.Step).Label).
		Int("tasks", len(cmd.settings.Schedule)).
		Msg("reminder booted")

	sched, err := runner.New(log)
	if err != nil {
		return err
	}
	if err := sched.Every(ctx, "reminder-step", cmd.settings.Cycle, r.svc); err != nil {
		return err
	}
	if cmd.pressEvery > 0 {
		if err := sched.EveryFunc(ctx, "auto-press", cmd.pressEvery, r.btn.Press); err != nil {
			return err
		}
	}
	return sched.Run(ctx)
}
