// Package tree implements the task-dependency data model: the task map, the
// symbolic-completion fixpoint, and the derived dependency graph.
package tree

import "sort"

// Tree owns a set of named tasks and the dependency graph derived from
// them. The task map is the only persisted state; the graph is rebuilt from
// it on demand and never written to disk.
type Tree struct {
	Tasks map[string]*Task `toml:"tasks" json:"tasks"`

	// Graph is the derived dependency graph, refreshed by Populate.
	Graph *Graph `toml:"-" json:"-"`
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{Tasks: make(map[string]*Task)}
}

// Populate resolves symbolic completion to a fixpoint and rebuilds the
// derived graph, discarding any previous one. The fixpoint mutates the
// tasks' Complete flags; it is not a pure projection.
func (t *Tree) Populate() {
	t.resolveSymbolics()
	t.Graph = buildGraph(t)
}

// resolveSymbolics marks each symbolic task complete once every one of its
// dependencies is complete, repeating until a full pass changes nothing.
// Completion only moves false->true, so the loop ends within len(Tasks)
// passes. A dependency name missing from the map blocks the promotion; the
// lint engine reports the missing name.
func (t *Tree) resolveSymbolics() {
	for {
		changed := false
		for _, name := range t.SortedNames() {
			task := t.Tasks[name]
			if !task.Symbolic || task.Complete {
				continue
			}
			implied := true
			for _, dep := range task.DependsOn {
				d, ok := t.Tasks[dep]
				if !ok || !d.Complete {
					implied = false
					break
				}
			}
			if implied {
				task.Complete = true
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// SortedNames returns the task names in lexicographic order. Every walk
// that produces user-visible output iterates in this order so results are
// deterministic across runs.
func (t *Tree) SortedNames() []string {
	names := make([]string, 0, len(t.Tasks))
	for name := range t.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Insert adds or fully replaces the named task and rebuilds the derived
// graph so persisted state never carries a stale one.
func (t *Tree) Insert(name string, task *Task) {
	if t.Tasks == nil {
		t.Tasks = make(map[string]*Task)
	}
	t.Tasks[name] = task
	t.Populate()
}

// Remove deletes the named task, if present, and rebuilds the derived
// graph. It reports whether the task existed. Other tasks' dependency
// lists are left alone; a dangling reference becomes a lint finding.
func (t *Tree) Remove(name string) bool {
	if _, ok := t.Tasks[name]; !ok {
		return false
	}
	delete(t.Tasks, name)
	t.Populate()
	return true
}

// SetComplete sets the named task's completion flag and rebuilds the
// derived graph. It reports whether the task existed.
func (t *Tree) SetComplete(name string, complete bool) bool {
	task, ok := t.Tasks[name]
	if !ok {
		return false
	}
	task.Complete = complete
	t.Populate()
	return true
}

// Merge unions other's tasks into t. On a name collision the task from
// other fully replaces t's; fields are never merged. Applied left-to-right
// over a sequence of trees this is last-writer-wins, which makes it
// associative but not commutative. The derived graph is rebuilt afterwards.
func (t *Tree) Merge(other *Tree) {
	if t.Tasks == nil {
		t.Tasks = make(map[string]*Task, len(other.Tasks))
	}
	for name, task := range other.Tasks {
		clone := *task
		t.Tasks[name] = &clone
	}
	t.Populate()
}
