package doctor

import (
	"context"
	"os"

	"golang.org/x/term"
)

// isTerminalFunc reports whether fd is a terminal.
// Package-level variable to allow test overrides.
var isTerminalFunc = term.IsTerminal

// TerminalCheck reports whether interactive prompts and the TUI can run.
type TerminalCheck struct{}

// NewTerminalCheck creates a terminal check.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if isTerminalFunc(int(os.Stdin.Fd())) {
		result.Items = append(result.Items, CheckItem{
			Label:  "stdin",
			Status: StatusPass,
			Detail: "interactive",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "stdin",
			Status: StatusWarn,
			Detail: "not a terminal (confirmations need --yes, TUI unavailable)",
		})
	}

	return result
}
