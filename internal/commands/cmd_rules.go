package commands

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

//go:embed rules.md
var rulesMarkdown string

type RulesCmd struct {
	flags *Flags
}

// NewRulesCmd creates a new rules command
func NewRulesCmd(flags *Flags) *RulesCmd {
	return &RulesCmd{flags: flags}
}

// Register adds the rules command to the application
func (cmd *RulesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rules",
		Usage:     "Explain the challenge rules",
		UsageText: "hard75 rules",
		Action:    cmd.run,
	})
	return app
}

func (cmd *RulesCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		_, err = fmt.Fprint(w, rulesMarkdown)
		return err
	}

	rendered, err := renderer.Render(rulesMarkdown)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		rendered = rulesMarkdown
	}

	_, err = fmt.Fprint(w, rendered)
	return err
}
