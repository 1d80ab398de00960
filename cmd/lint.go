package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/spaghetus/tasktree-go/internal/config"
	"github.com/spaghetus/tasktree-go/internal/lint"
	"github.com/spaghetus/tasktree-go/internal/taskset"
)

var (
	structuralColor = color.New(color.FgRed).SprintFunc()
	semanticColor   = color.New(color.FgYellow).SprintFunc()
	okColor         = color.New(color.FgGreen).SprintFunc()
)

// lintCommand checks the merged tree and prints every finding. Structural
// problems (cycles, missing names) print red, semantic ones (floating
// symbolics, impossible schedules) yellow. A non-empty report makes the
// command fail so scripts can gate on it.
func lintCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	merged := taskset.LoadAll(cfg.TasksetsPath, cfg.Tasksets, loadOptions(cfg))

	findings := lint.Check(merged)
	if len(findings) == 0 {
		fmt.Println(okColor("no errors found."))
		return nil
	}
	for _, f := range findings {
		paint := semanticColor
		if f.Structural() {
			paint = structuralColor
		}
		fmt.Printf("%s %s\n", paint(string(f.Kind)), f.Error())
	}
	return fmt.Errorf("%d problem(s) found", len(findings))
}

// doctorCommand reports the effective configuration and the health of each
// selected taskset.
func doctorCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	fmt.Println("configuration:")
	fmt.Printf("  tasksets path:   %s\n", cfg.TasksetsPath)
	fmt.Printf("  tasksets:        %v\n", cfg.Tasksets)
	fmt.Printf("  strict:          %t\n", cfg.Strict)
	fmt.Printf("  log level:       %s\n", cfg.LogLevel)
	fmt.Printf("  pomodoro:        %v work / %v break, long break %v after %d\n",
		cfg.PomodoroLength, cfg.ShortBreakLength, cfg.LongBreakLength, cfg.LongBreakAfter)

	fmt.Println("tasksets:")
	if fi, err := os.Stat(cfg.TasksetsPath); err != nil || !fi.IsDir() {
		fmt.Printf("  %s directory %s does not exist\n", structuralColor("✗"), cfg.TasksetsPath)
		return fmt.Errorf("tasksets directory missing")
	}

	healthy := true
	for _, name := range cfg.Tasksets {
		path := taskset.Path(cfg.TasksetsPath, name)
		set, err := taskset.Load(path, loadOptions(cfg))
		if err != nil {
			fmt.Printf("  %s %s: %v\n", structuralColor("✗"), name, err)
			healthy = false
			continue
		}
		findings := lint.Check(set)
		if len(findings) == 0 {
			fmt.Printf("  %s %s: %d task(s), clean\n", okColor("✓"), name, len(set.Tasks))
			continue
		}
		fmt.Printf("  %s %s: %d task(s), %d finding(s)\n", semanticColor("!"), name, len(set.Tasks), len(findings))
	}
	if !healthy {
		return fmt.Errorf("some tasksets failed to load")
	}
	return nil
}
