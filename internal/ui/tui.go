// Package ui provides the interactive terminal viewer.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spaghetus/tasktree-go/internal/config"
	"github.com/spaghetus/tasktree-go/internal/lint"
	"github.com/spaghetus/tasktree-go/internal/taskset"
	"github.com/spaghetus/tasktree-go/internal/tree"
)

// Run starts the viewer over the tasksets named in cfg. When exactly one
// taskset is selected the viewer can toggle completion and writes changes
// back through the loader; with several sets merged it is read-only, since
// an edit couldn't tell which file to land in.
func Run(ctx context.Context, cfg *config.Config) error {
	if !isTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := newModel(cfg)
	m.reload()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

type model struct {
	cfg      *config.Config
	editable bool

	tr       *tree.Tree
	names    []string
	cursor   int
	findings []lint.Finding
	showLint bool

	status string
	fatal  error
}

func newModel(cfg *config.Config) *model {
	return &model{
		cfg:      cfg,
		editable: len(cfg.Tasksets) == 1,
	}
}

func (m *model) reload() {
	opts := taskset.Options{Strict: m.cfg.Strict}
	m.tr = taskset.LoadAll(m.cfg.TasksetsPath, m.cfg.Tasksets, opts)
	m.names = m.tr.SortedNames()
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.showLint {
		m.findings = lint.Check(m.tr)
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case " ":
			m.toggleCurrent()
		case "l":
			m.showLint = !m.showLint
			if m.showLint {
				m.findings = lint.Check(m.tr)
			}
		case "r":
			m.reload()
			m.status = "reloaded"
		}
	}
	return m, nil
}

// toggleCurrent flips the selected task's completion and writes the single
// backing taskset to disk. The edit applies to the file the task set was
// loaded from, then the view reloads so symbolic promotions show through.
func (m *model) toggleCurrent() {
	if len(m.names) == 0 {
		return
	}
	if !m.editable {
		m.status = "read-only: more than one taskset loaded"
		return
	}
	name := m.names[m.cursor]

	path := taskset.Path(m.cfg.TasksetsPath, m.cfg.Tasksets[0])
	set, err := taskset.LoadOrEmpty(path, taskset.Options{Strict: m.cfg.Strict})
	if err != nil {
		m.status = err.Error()
		return
	}
	task, ok := set.Tasks[name]
	if !ok {
		m.status = fmt.Sprintf("%s is not in taskset %s", name, m.cfg.Tasksets[0])
		return
	}
	set.SetComplete(name, !task.Complete)
	if err := taskset.Save(path, set); err != nil {
		m.status = err.Error()
		return
	}
	m.reload()
	m.status = fmt.Sprintf("toggled %s", name)
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasktree"))
	b.WriteString("  ")
	b.WriteString(faintStyle.Render(strings.Join(m.cfg.Tasksets, ", ")))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(faintStyle.Render("no tasks"))
		b.WriteString("\n")
	}
	for i, name := range m.names {
		task := m.tr.Tasks[name]
		marker := pendingStyle.Render("[ ]")
		if task.Complete {
			marker = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s  %s", marker, name, faintStyle.Render(task.Description))
		if task.Symbolic {
			line += " " + symbolicStyle.Render("(symbolic)")
		}
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.showLint {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("lint"))
		b.WriteString("\n")
		if len(m.findings) == 0 {
			b.WriteString(doneStyle.Render("no errors found."))
			b.WriteString("\n")
		}
		for _, f := range m.findings {
			style := warnStyle
			if f.Structural() {
				style = errorStyle
			}
			b.WriteString(style.Render("• " + f.Error()))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("↑/↓ move · space toggle · l lint · r reload · q quit"))
	b.WriteString("\n")
	return b.String()
}
