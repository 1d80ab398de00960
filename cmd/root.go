// Package cmd implements the CLI command structure for tasktree.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/spaghetus/tasktree-go/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasktree CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasktree", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	setupLogging(cfg.LogLevel)

	subcommand := "list-tasks"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "list-tasks":
		return listTasksCommand(cfg, remainingArgs)
	case "show-task":
		return showTaskCommand(cfg, remainingArgs)
	case "show-tree":
		return showTreeCommand(cfg, remainingArgs)
	case "add-task":
		return addTaskCommand(cfg, remainingArgs)
	case "remove-task":
		return removeTaskCommand(cfg, remainingArgs)
	case "complete-task":
		return completeTaskCommand(cfg, remainingArgs)
	case "lint":
		return lintCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func setupLogging(level string) {
	log.SetOutput(os.Stderr)
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.WarnLevel
	}
	log.SetLevel(parsed)
}

func versionCommand() error {
	fmt.Printf("tasktree %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `tasktree - a task list that knows its dependencies

Usage:
  tasktree [global flags] <command> [command flags]

Commands:
  list-tasks               Print every task in the selected tasksets as JSON (default)
  show-task NAME...        Print the named tasks as JSON
  show-tree                Print the dependency tree
  add-task NAME DESC       Add or replace a task (single taskset only)
  remove-task NAME...      Remove tasks from every selected taskset
  complete-task NAME...    Mark tasks complete (or not, with -complete=false)
  lint                     Check the merged tree and report problems
  doctor                   Show effective configuration and taskset health
  tui                      Interactive viewer
  version                  Show version

Global flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
