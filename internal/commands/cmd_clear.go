package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

type ClearCmd struct {
	flags   *Flags
	app     *hard75.App
	confirm *confirmer
	yes     bool
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *hard75.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app, confirm: newConfirmer(flags)}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Delete all progress, photos and history",
		UsageText: "hard75 clear [--yes]",
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

func (cmd *ClearCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	ok, err := cmd.confirm.Confirm(hard75.PromptClearData, cmd.yes)
	if err != nil {
		return err
	}
	if !ok {
		p.Infof("Nothing was deleted")
		return nil
	}

	if err := saveResult(p, cmd.app.Challenge.ClearAllData(ctx)); err != nil {
		return err
	}
	p.Successf("All data cleared")
	return nil
}
