package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

type ToggleCmd struct {
	flags *Flags
	app   *hard75.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *hard75.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Usage:     "Flip one or more of today's tasks",
		UsageText: "hard75 toggle <task>...",
		Description: `Marks each named task done, or not done if it already was.

Task names: diet, workout1, workout2, water, reading, squats, pushups,
abholds, photo.`,
		ShellComplete: TaskNameCompleter,
		Action:        cmd.run,
	})
	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one task is required")
	}

	tasks := make([]challenge.Task, 0, c.Args().Len())
	for _, name := range c.Args().Slice() {
		task, err := challenge.ParseTask(name)
		if err != nil {
			return err
		}
		tasks = append(tasks, task)
	}

	var saveErr error
	for _, task := range tasks {
		done, err := cmd.app.Challenge.ToggleTask(ctx, task)
		if err := saveResult(p, err); err != nil {
			return err
		}
		if err != nil {
			saveErr = err
		}

		if done {
			p.Successf("%s done", task.Label())
		} else {
			p.Infof("%s not done", task.Label())
		}
	}

	if saveErr == nil {
		stats := cmd.app.Challenge.Statistics()
		p.Printf("%d/%d tasks complete (%d%%)", stats.TasksCompleted, challenge.TaskCount, stats.TaskPercent)
	}
	return nil
}
