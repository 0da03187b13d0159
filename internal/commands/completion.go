package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/hard75/internal/core/challenge"
)

// TaskNameCompleter suggests task identifiers as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskNameCompleter(ctx context.Context, cmd *cli.Command) {
	if args := cmd.Args(); args.Present() {
		last := args.Slice()[args.Len()-1]
		if len(last) > 0 && last[0] == '-' {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}
	}

	w := cmd.Root().Writer
	for _, name := range challenge.TaskNames() {
		_, _ = fmt.Fprintln(w, name)
	}
}
