package commands

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/pkg/iojson"
)

type StatusCmd struct {
	flags  *Flags
	app    *hard75.App
	asJSON bool
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags, app *hard75.App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Show the current day, checklist and statistics",
		UsageText: "hard75 status [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})
	return app
}

type statusJSON struct {
	AttemptID  string               `json:"attempt_id"`
	Day        int                  `json:"day"`
	StartDate  *time.Time           `json:"start_date"`
	Tasks      map[string]bool      `json:"tasks"`
	Phase      string               `json:"phase"`
	Degraded   bool                 `json:"degraded"`
	Statistics challenge.Statistics `json:"statistics"`
}

func (cmd *StatusCmd) run(_ context.Context, c *cli.Command) error {
	svc := cmd.app.Challenge
	state := svc.State()
	stats := svc.Statistics()

	if cmd.asJSON {
		tasks := make(map[string]bool, challenge.TaskCount)
		for _, task := range challenge.AllTasks() {
			tasks[task.String()] = state.Tasks.Done(task)
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, statusJSON{
			AttemptID:  state.AttemptID,
			Day:        state.CurrentDay,
			StartDate:  state.StartDate,
			Tasks:      tasks,
			Phase:      svc.Phase(),
			Degraded:   svc.Degraded(),
			Statistics: stats,
		})
	}

	writeStatus(c.Root().Writer, state, stats)
	return nil
}
