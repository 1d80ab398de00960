package cmd

import (
	"fmt"
	"os"

	"github.com/spaghetus/tasktree-go/internal/config"
	"github.com/spaghetus/tasktree-go/internal/render"
	"github.com/spaghetus/tasktree-go/internal/taskset"
)

// showTreeCommand prints the merged tree's derived dependency graph.
func showTreeCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	merged := taskset.LoadAll(cfg.TasksetsPath, cfg.Tasksets, loadOptions(cfg))
	return render.WriteTree(os.Stdout, merged.Graph)
}
