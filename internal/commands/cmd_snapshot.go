package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
	"github.com/colonyops/hard75/pkg/iojson"
)

type SnapshotCmd struct {
	flags   *Flags
	app     *hard75.App
	confirm *confirmer
	output  string
	yes     bool
	reader  iojson.FileReader[json.RawMessage]
}

// NewSnapshotCmd creates a new snapshot command
func NewSnapshotCmd(flags *Flags, app *hard75.App) *SnapshotCmd {
	return &SnapshotCmd{flags: flags, app: app, confirm: newConfirmer(flags)}
}

// Register adds the snapshot command to the application
func (cmd *SnapshotCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "snapshot",
		Usage: "Export or import the challenge snapshot",
		Commands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "Write the versioned snapshot document",
				UsageText: "hard75 snapshot export [-o file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "destination file (defaults to stdout)",
						Destination: &cmd.output,
					},
				},
				Action: cmd.runExport,
			},
			{
				Name:      "import",
				Usage:     "Replace the current state with a snapshot",
				UsageText: "hard75 snapshot import -f file [--yes]",
				Description: `Accepts a document written by 'snapshot export' or the JSON value of the
original browser app's "75hard-state" local storage entry.`,
				Flags: []cli.Flag{
					cmd.reader.Flag(),
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runImport,
			},
		},
	})
	return app
}

func (cmd *SnapshotCmd) runExport(ctx context.Context, c *cli.Command) error {
	data, err := cmd.app.Challenge.Export()
	if err != nil {
		return err
	}

	if cmd.output == "" {
		_, err := fmt.Fprintln(c.Root().Writer, string(data))
		return err
	}

	if err := os.WriteFile(cmd.output, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	printer.Ctx(ctx).Success("Snapshot written", cmd.output)
	return nil
}

func (cmd *SnapshotCmd) runImport(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	data, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	if hasProgress(cmd.app.Challenge.State()) {
		ok, err := cmd.confirm.Confirm(hard75.PromptImport, cmd.yes)
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Import cancelled")
			return nil
		}
	}

	format, err := cmd.app.Challenge.Import(ctx, data)
	if err := saveResult(p, err); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	state := cmd.app.Challenge.State()
	p.Successf("Imported %s snapshot from %s, now on day %d", format, cmd.reader.Source(), state.CurrentDay)
	return nil
}

func hasProgress(s challenge.State) bool {
	return challenge.ResetRequiresConfirmation(s) || s.Tasks.Completed() > 0 || len(s.Attempts) > 0 || len(s.Photos) > 0
}
