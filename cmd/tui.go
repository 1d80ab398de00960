package cmd

import (
	"context"
	"fmt"

	"github.com/spaghetus/tasktree-go/internal/config"
	"github.com/spaghetus/tasktree-go/internal/ui"
)

// tuiCommand launches the interactive viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.Run(ctx, cfg)
}
