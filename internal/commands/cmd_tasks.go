package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"azaymonitor/services/config"
	"azaymonitor/types"
)

type TasksCmd struct {
	settings *config.Settings

	// flags
	yamlOutput bool
}

// NewTasksCmd creates a new tasks command
func NewTasksCmd(settings *config.Settings) *TasksCmd {
	return &TasksCmd{settings: settings}
}

// Register adds the tasks command to the application
func (cmd *TasksCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tasks",
		Usage:     "Print the schedule",
		UsageText: "azaysim tasks [--yaml]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yaml",
				Usage:       "print as a config file",
				Destination: &cmd.yamlOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *TasksCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	if cmd.yamlOutput {
		b, err := config.Marshal(*cmd.settings)
		if err != nil {
			return fmt.Errorf("marshal schedule: %w", err)
		}
		_, err = out.Write(b)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTASK\tTIMER\tOFFSET")
	for i, t := range cmd.settings.Schedule {
		offset := "-"
		if t.Timer != types.TimerNone {
			offset = (time.Duration(t.OffsetSeconds) * time.Second).String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, t.Label, t.Timer, offset)
	}
	return w.Flush()
}
