package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"azaymonitor/errcode"
	"azaymonitor/internal/sqlitestore"
	"azaymonitor/services/config"
	"azaymonitor/services/reminder"
	"azaymonitor/types"
	"azaymonitor/x/timex"
)

type StateCmd struct {
	flags    *Flags
	settings *config.Settings
}

// NewStateCmd creates a new state command
func NewStateCmd(flags *Flags, settings *config.Settings) *StateCmd {
	return &StateCmd{flags: flags, settings: settings}
}

// Register adds the state command and its subcommands to the application
func (cmd *StateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "state",
		Usage: "Inspect or change the persisted reminder state",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the persisted step and alarm",
				Action: cmd.show,
			},
			{
				Name:   "reset",
				Usage:  "Forget the persisted state; the next boot starts at step 0",
				Action: cmd.reset,
			},
			{
				Name:      "set-step",
				Usage:     "Move the cursor to step N and clear any alarm",
				UsageText: "azaysim state set-step N",
				Action:    cmd.setStep,
			},
		},
	})
	return app
}

func (cmd *StateCmd) open() (*sqlitestore.Store, error) {
	return sqlitestore.Open(cmd.flags.StatePath())
}

func (cmd *StateCmd) show(ctx context.Context, c *cli.Command) error {
	store, err := cmd.open()
	if err != nil {
		return err
	}
	defer store.Close()

	w := c.Root().Writer
	raw, err := store.Load(ctx, reminder.StateSlot)
	if errors.Is(err, errcode.NoRecord) {
		fmt.Fprintln(w, "no persisted state (boots at step 0)")
		return nil
	}
	if err != nil {
		return err
	}
	rec, err := reminder.DecodeRecord(raw, len(cmd.settings.Schedule))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "step:     %d/%d %s\n", rec.Step, len(cmd.settings.Schedule), cmd.settings.Schedule.At(rec.Step).Label)
	fmt.Fprintf(w, "flags:    %#02x\n", rec.AlarmFlags)
	if rec.Armed() {
		fmt.Fprintf(w, "deadline: %d (%s)\n", rec.Deadline, types.TimeFromSeconds(timex.Normalize(rec.Deadline)))
	} else {
		fmt.Fprintln(w, "deadline: none")
	}
	if ts, err := store.UpdatedAt(ctx, reminder.StateSlot); err == nil {
		fmt.Fprintf(w, "updated:  %s\n", ts.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (cmd *StateCmd) reset(ctx context.Context, c *cli.Command) error {
	store, err := cmd.open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, reminder.StateSlot); err != nil {
		return err
	}
	fmt.Fprintln(c.Root().Writer, "state reset")
	return nil
}

func (cmd *StateCmd) setStep(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: azaysim state set-step N")
	}
	n, err := strconv.Atoi(c.Args().First())
	if err != nil || n < 0 || n >= len(cmd.settings.Schedule) {
		return &errcode.E{C: errcode.InvalidParams, Op: "state.set_step",
			Msg: fmt.Sprintf("step must be 0..%d, got %q", len(cmd.settings.Schedule)-1, c.Args().First())}
	}

	store, err := cmd.open()
	if err != nil {
		return err
	}
	defer store.Close()

	var rec types.ReminderState
	if raw, err := store.Load(ctx, reminder.StateSlot); err == nil {
		rec, _ = reminder.DecodeRecord(raw, len(cmd.settings.Schedule))
	}
	rec.Step = uint8(n)
	rec.Deadline = 0
	if err := store.Save(ctx, reminder.StateSlot, reminder.EncodeRecord(rec)); err != nil {
		return err
	}
	fmt.Fprintf(c.Root().Writer, "step set to %d %s\n", n, cmd.settings.Schedule.At(rec.Step).Label)
	return nil
}
