package commands

import (
	"errors"

	"github.com/colonyops/hard75/internal/hard75"
	"github.com/colonyops/hard75/internal/printer"
)

// saveResult reports a persistence failure as a warning. The operation
// itself succeeded in memory, so the command does not fail.
func saveResult(p *printer.Printer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, hard75.ErrNotSaved) {
		p.Warnf("progress not saved: %v", err)
		return nil
	}
	return err
}
