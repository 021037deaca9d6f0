package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"azaymonitor/internal/eventlog"
	"azaymonitor/internal/runner"
	"azaymonitor/internal/sim"
	"azaymonitor/internal/tui"
	"azaymonitor/services/config"
)

type TUICmd struct {
	flags    *Flags
	settings *config.Settings

	// flags
	start string
	speed float64
}

// NewTUICmd creates a new tui command
func NewTUICmd(flags *Flags, settings *config.Settings) *TUICmd {
	return &TUICmd{flags: flags, settings: settings}
}

// Register adds the tui command to the application
func (cmd *TUICmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Interactive front panel: LCD, buzzer and button",
		UsageText: "azaysim tui [--start HH:MM:SS] [--speed N]",
		Description: `Space or enter presses the button, +/- shift the simulated clock by one
minute, q quits. Logs go to <data-dir>/azaysim.log unless --log-file is set.`,
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
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *TUICmd) run(ctx context.Context, c *cli.Command) error {
	log, closeLog, err := cmd.flags.Logger(filepath.Join(cmd.flags.DataDir, "azaysim.log"))
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer closeLog()

	start, err := parseStart(cmd.start)
	if err != nil {
		return err
	}
	r, err := newRig(cmd.flags, cmd.settings, sim.NewClock(start, cmd.speed), log)
	if err != nil {
		return err
	}
	defer r.Close()

	events := eventlog.New(log, r.bus.NewConnection("eventlog"))

	deps := tui.Deps{
		Panel:  r.panel,
		Button: r.btn,
		Clock:  r.clock,
		Tone:   r.tone,
		State:  r.svc,
		Total:  len(cmd.settings.Schedule),
	}
	return tui.Run(ctx, deps, func(ctx context.Context) error {
		go events.Run(ctx)
		if err := r.svc.Boot(ctx); err != nil {
			return err
		}
		sched, err := runner.New(log)
		if err != nil {
			return err
		}
		if err := sched.Every(ctx, "reminder-step", cmd.settings.Cycle, r.svc); err != nil {
			return err
		}
		return sched.Run(ctx)
	})
}
