// Package commands implements the azaysim command line: a host simulator for
// the medication reminder.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"azaymonitor/bus"
	"azaymonitor/drivers/lcd"
	"azaymonitor/errcode"
	"azaymonitor/internal/logging"
	"azaymonitor/internal/sim"
	"azaymonitor/internal/sqlitestore"
	"azaymonitor/services/config"
	"azaymonitor/services/reminder"
	"azaymonitor/services/sounder"
	"azaymonitor/x/timex"
)

// NewApp builds the root command with every subcommand registered.
func NewApp(version string) *cli.Command {
	flags := &Flags{}
	settings := &config.Settings{}

	app := &cli.Command{
		Name:      "azaysim",
		Usage:     "Simulate the AzayMonitor medication reminder on the host",
		UsageText: "azaysim [global options] command [command options]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("AZAY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to a JSON log file",
				Sources:     cli.EnvVars("AZAY_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the schedule YAML (missing file = stock schedule)",
				Sources:     cli.EnvVars("AZAY_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory for the persisted state",
				Sources:     cli.EnvVars("AZAY_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			s, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			*settings = s
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}
			return ctx, nil
		},
	}

	NewRunCmd(flags, settings).Register(app)
	NewTUICmd(flags, settings).Register(app)
	NewStateCmd(flags, settings).Register(app)
	NewTasksCmd(settings).Register(app)
	return app
}

// rig is one simulated device.
type rig struct {
	clock *sim.Clock
	panel *sim.LCD
	btn   *sim.Button
	tone  *sim.Tone
	store *sqlitestore.Store
	bus   *bus.Bus
	svc   *reminder.Service
}

func newRig(flags *Flags, settings *config.Settings, clock *sim.Clock, log zerolog.Logger) (*rig, error) {
	store, err := sqlitestore.Open(flags.StatePath())
	if err != nil {
		return nil, err
	}
	r := &rig{
		clock: clock,
		panel: sim.NewLCD(),
		btn:   &sim.Button{},
		tone:  &sim.Tone{},
		store: store,
		bus:   bus.NewBus(16),
	}
	r.tone.OnNote = func(n sounder.Note) {
		log.Debug().Str("note", n.Name).Uint16("hz", n.Hz).Msg("buzzer")
	}

	r.svc = reminder.NewService(reminder.Config{
		Schedule: settings.Schedule,
		Cycle:    settings.Cycle,
		Debounce: settings.Debounce,
	}, reminder.Devices{
		Clock:   clock,
		Store:   store,
		Display: lcd.New(r.panel),
		Sounder: sounder.New(r.tone, settings.NoteDuration),
		Button:  r.btn,
		Conn:    r.bus.NewConnection("reminder"),
		Sleep:   r.btn.Settle,
		Diag:    logging.LineWriter{Log: log.With().Str("component", "serial").Logger(), Msg: "diagnostic"},
		OnError: func(op string, err error) {
			log.Error().Err(err).Str("op", op).Str("code", string(errcode.Of(err))).Msg("reminder")
		},
	})
	return r, nil
}

func (r *rig) Close() error { return r.store.Close() }

// parseStart reads HH:MM:SS. Empty means the host's current time of day.
func parseStart(s string) (uint32, error) {
	if s == "" {
		return timex.SecondsOfDay(time.Now()), nil
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("invalid --start %q (want HH:MM:SS): %w", s, err)
	}
	return timex.SecondsOfDay(t), nil
}
