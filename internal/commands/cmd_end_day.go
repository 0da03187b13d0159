package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

type EndDayCmd struct {
	flags   *Flags
	app     *hard75.App
	confirm *confirmer
	yes     bool
}

// NewEndDayCmd creates a new end-day command
func NewEndDayCmd(flags *Flags, app *hard75.App) *EndDayCmd {
	return &EndDayCmd{flags: flags, app: app, confirm: newConfirmer(flags)}
}

// Register adds the end-day command to the application
func (cmd *EndDayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "end-day",
		Usage:     "Close today and move on to the next day",
		UsageText: "hard75 end-day [--yes]",
		Description: `Closes the current day when every task is complete.

If tasks are missing you are asked whether to start over from Day 1. The
current attempt is archived and your photos are kept.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "start over without asking when the day is incomplete",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *EndDayCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.app.Challenge

	outcome, err := svc.EndDay(ctx)
	if err := saveResult(p, err); err != nil {
		return err
	}

	switch o := outcome.(type) {
	case challenge.DayAdvancedOutcome:
		p.Successf("Day %d complete! 🎉", o.ClosedDay)
		p.Printf("Day %d starts now", o.NewDay)

	case challenge.ChallengeCompletedOutcome:
		prompt := hard75.PromptChallengeComplete
		p.Successf("%s", prompt.Title)
		p.Printf("%s", prompt.Message)
		p.Printf("Run 'hard75 reset' to start a new challenge.")

	case challenge.IncompleteDayOutcome:
		return cmd.restart(ctx, p, o)
	}
	return nil
}

func (cmd *EndDayCmd) restart(ctx context.Context, p *printer.Printer, o challenge.IncompleteDayOutcome) error {
	svc := cmd.app.Challenge

	names := make([]string, 0, len(o.Missing))
	for _, task := range o.Missing {
		names = append(names, task.String())
	}
	p.Warnf("Day %d has %d incomplete task(s): %v", o.Day, len(o.Missing), names)

	ok, err := cmd.confirm.Confirm(hard75.PromptIncompleteDay, cmd.yes)
	if err != nil || !ok {
		svc.Cancel()
		if err != nil {
			return err
		}
		p.Infof("Day %d is still open", o.Day)
		return nil
	}

	rec, err := svc.ForceRestart(ctx)
	if err := saveResult(p, err); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	p.Successf("Starting fresh from Day 1 💪")
	p.Printf("Archived attempt with %d/%d days completed", rec.DaysCompleted, challenge.TotalDays)
	return nil
}
