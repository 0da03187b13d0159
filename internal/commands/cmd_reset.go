package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

type ResetCmd struct {
	flags   *Flags
	app     *hard75.App
	confirm *confirmer
	yes     bool
}

// NewResetCmd creates a new reset command
func NewResetCmd(flags *Flags, app *hard75.App) *ResetCmd {
	return &ResetCmd{flags: flags, app: app, confirm: newConfirmer(flags)}
}

// Register adds the reset command to the application
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reset",
		Usage:     "Archive the current attempt and start a new challenge",
		UsageText: "hard75 reset [--yes]",
		Description: `Starts a new challenge from Day 1 and clears all photos.

When the current attempt has progress it is saved to the attempt history
first and you are asked to confirm.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ResetCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	svc := cmd.app.Challenge

	needsConfirm, err := svc.RequestReset(ctx)
	if err := saveResult(p, err); err != nil {
		return err
	}
	if !needsConfirm {
		p.Successf("New challenge started! 🚀")
		return nil
	}

	ok, err := cmd.confirm.Confirm(hard75.PromptResetChallenge, cmd.yes)
	if err != nil || !ok {
		svc.Cancel()
		if err != nil {
			return err
		}
		p.Infof("Reset cancelled")
		return nil
	}

	rec, archived, err := svc.ConfirmReset(ctx)
	if err := saveResult(p, err); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	p.Successf("New challenge started! 🚀")
	if archived {
		p.Printf("Archived attempt with %d/%d days completed", rec.DaysCompleted, challenge.TotalDays)
	}
	return nil
}
