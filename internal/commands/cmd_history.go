package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/core/styles"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
	"github.com/colonyops/hard75/pkg/iojson"
)

type HistoryCmd struct {
	flags  *Flags
	app    *hard75.App
	asJSON bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *hard75.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "List previous attempts, newest first",
		UsageText: "hard75 history [--json]",
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

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	history := challenge.History(cmd.app.Challenge.State())
	w := c.Root().Writer

	if cmd.asJSON {
		return iojson.WriteWith(w, os.Stderr, history)
	}

	if len(history) == 0 {
		printer.Ctx(ctx).Infof("No previous attempts")
		return nil
	}

	for _, h := range history {
		a := h.Attempt
		start := "?"
		if a.StartDate != nil {
			start = a.StartDate.Local().Format("Jan 2, 2006")
		}
		reason := styles.WarningStyle.Render(string(a.Reason))
		_, _ = fmt.Fprintf(w, "%s  %s → %s  %s  %s\n",
			styles.HeaderStyle.Render(fmt.Sprintf("Attempt %d", h.Number)),
			start,
			a.EndDate.Local().Format("Jan 2, 2006"),
			fmt.Sprintf("%d/%d days", a.DaysCompleted, challenge.TotalDays),
			reason,
		)
	}
	return nil
}
