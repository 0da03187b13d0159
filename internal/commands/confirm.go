package commands

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/colonyops/hard75/internal/hard75"
)

var errNeedsConfirmation = errors.New("confirmation required but stdin is not a terminal; rerun with --yes")

// promptFunc asks the user to accept p. Tests replace it.
type promptFunc func(p hard75.Prompt) (bool, error)

var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func huhPrompt(p hard75.Prompt) (bool, error) {
	if !isTerminal() {
		return false, errNeedsConfirmation
	}

	var ok bool
	err := huh.NewConfirm().
		Title(p.Title).
		Description(p.Message).
		Affirmative(p.Confirm).
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// confirmer answers confirmation prompts, honoring --yes and
// confirm.assume_yes.
type confirmer struct {
	flags  *Flags
	prompt promptFunc
}

func newConfirmer(flags *Flags) *confirmer {
	return &confirmer{flags: flags, prompt: huhPrompt}
}

func (c *confirmer) Confirm(p hard75.Prompt, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if c.flags.Config != nil && c.flags.Config.Confirm.AssumeYes {
		return true, nil
	}
	return c.prompt(p)
}
