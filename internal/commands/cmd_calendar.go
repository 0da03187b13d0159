package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
)

type CalendarCmd struct {
	flags *Flags
	app   *hard75.App
}

// NewCalendarCmd creates a new calendar command
func NewCalendarCmd(flags *Flags, app *hard75.App) *CalendarCmd {
	return &CalendarCmd{flags: flags, app: app}
}

// Register adds the calendar command to the application
func (cmd *CalendarCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "calendar",
		Usage:     "Show all 75 days and their status",
		UsageText: "hard75 calendar",
		Action:    cmd.run,
	})
	return app
}

func (cmd *CalendarCmd) run(_ context.Context, c *cli.Command) error {
	writeCalendar(c.Root().Writer, challenge.Calendar(cmd.app.Challenge.State()))
	return nil
}
