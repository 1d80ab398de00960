package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spaghetus/tasktree-go/internal/config"
	"github.com/spaghetus/tasktree-go/internal/taskset"
	"github.com/spaghetus/tasktree-go/internal/tree"
)

// listTasksCommand prints every task in the merged tasksets as JSON.
func listTasksCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	merged := taskset.LoadAll(cfg.TasksetsPath, cfg.Tasksets, loadOptions(cfg))
	return printJSON(merged.Tasks)
}

// showTaskCommand prints the named tasks as JSON, one document per task.
func showTaskCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show-task needs at least one task name")
	}
	merged := taskset.LoadAll(cfg.TasksetsPath, cfg.Tasksets, loadOptions(cfg))
	var missing []string
	for _, name := range args {
		task, ok := merged.Tasks[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if err := printJSON(task); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no such task: %s", strings.Join(missing, ", "))
	}
	return nil
}

// addTaskCommand adds or replaces one task. It refuses to run against more
// than one taskset; an add has to know exactly which file it lands in.
func addTaskCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasktree add-task", flag.ContinueOnError)
	duration := fs.String("duration", "", "Expected duration of the task (e.g. 30m, 2h)")
	fs.StringVar(duration, "t", "", "Expected duration (shorthand)")
	depends := fs.String("depends", "", "Comma-separated names this task depends on")
	fs.StringVar(depends, "r", "", "Comma-separated dependencies (shorthand)")
	symbolic := fs.Bool("symbolic", false, "The task is complete when its dependencies are")
	fs.BoolVar(symbolic, "s", false, "Symbolic (shorthand)")
	complete := fs.Bool("complete", false, "The task is already complete")
	fs.BoolVar(complete, "c", false, "Already complete (shorthand)")
	dueArg := fs.String("due", "", "Due date (RFC 3339, \"2006-01-02 15:04\", or \"2006-01-02\")")
	fs.StringVar(dueArg, "d", "", "Due date (shorthand)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("add-task needs exactly a name and a description, got %v", rest)
	}
	name, description := rest[0], rest[1]

	if len(cfg.Tasksets) != 1 {
		return fmt.Errorf("exactly one taskset must be selected for add-task, got %d", len(cfg.Tasksets))
	}

	task := &tree.Task{
		Description: description,
		DependsOn:   splitAndTrim(*depends, ","),
		Symbolic:    *symbolic,
		Complete:    *complete,
	}
	if *duration != "" {
		// Same parser the loader uses, so anything accepted here loads back.
		var d tree.Duration
		if err := d.UnmarshalText([]byte(*duration)); err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		task.EstimatedTime = &d
	}
	if *dueArg != "" {
		due, err := parseDueDate(*dueArg, time.Now())
		if err != nil {
			return err
		}
		task.Due = &due
	}

	path := taskset.Path(cfg.TasksetsPath, cfg.Tasksets[0])
	set, err := taskset.LoadOrEmpty(path, loadOptions(cfg))
	if err != nil {
		return fmt.Errorf("refusing to overwrite invalid taskset: %w", err)
	}
	set.Insert(name, task)
	return taskset.Save(path, set)
}

// removeTaskCommand deletes the named tasks from every selected taskset.
func removeTaskCommand(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("remove-task needs at least one task name")
	}
	return editEachTaskset(cfg, func(set *tree.Tree) {
		for _, name := range args {
			set.Remove(name)
		}
	})
}

// completeTaskCommand sets the completion flag on the named tasks in every
// selected taskset. Tasks a set doesn't contain are left alone.
func completeTaskCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasktree complete-task", flag.ContinueOnError)
	complete := fs.Bool("complete", true, "The completion state to set")
	fs.BoolVar(complete, "c", true, "Completion state (shorthand)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	names := fs.Args()
	if len(names) == 0 {
		return fmt.Errorf("complete-task needs at least one task name")
	}
	return editEachTaskset(cfg, func(set *tree.Tree) {
		for _, name := range names {
			set.SetComplete(name, *complete)
		}
	})
}

// editEachTaskset loads each selected taskset, applies edit, and saves it
// back. A set that doesn't exist yet starts empty; an invalid one aborts
// the command rather than being overwritten.
func editEachTaskset(cfg *config.Config, edit func(*tree.Tree)) error {
	for _, setName := range cfg.Tasksets {
		path := taskset.Path(cfg.TasksetsPath, setName)
		set, err := taskset.LoadOrEmpty(path, loadOptions(cfg))
		if err != nil {
			return fmt.Errorf("refusing to overwrite invalid taskset: %w", err)
		}
		edit(set)
		if err := taskset.Save(path, set); err != nil {
			return err
		}
	}
	return nil
}

func loadOptions(cfg *config.Config) taskset.Options {
	return taskset.Options{Strict: cfg.Strict}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// dueDateLayouts are the accepted due-date forms, tried in order. All are
// interpreted in local time.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDueDate(s string, now time.Time) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse due date %q", s)
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
