package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *hard75.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *hard75.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !isTerminal() {
		return fmt.Errorf("the interactive checklist needs a terminal; try 'hard75 status'")
	}

	m := tui.New(ctx, tui.Deps{
		Challenge: cmd.app.Challenge,
		Bus:       cmd.app.Bus,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
