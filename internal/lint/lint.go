// Package lint checks a task tree for structural and semantic problems:
// symbolic tasks anchored to nothing real, dependency cycles, dependencies
// on names that don't exist, and schedules that cannot meet their due
// dates. It never stops at the first problem; every check runs and the
// findings come back together.
package lint

import (
	"sort"
	"time"

	"github.com/spaghetus/tasktree-go/internal/tree"
)

// Check runs every lint pass over tr and returns the findings in a
// deterministic order: floating symbolics, then cycles, then missing
// dependencies, then infeasible schedules. The feasibility pass is skipped
// when a cycle was found, since a cyclic graph cannot be time-ordered.
// Success is an empty result.
//
// The wall clock is sampled once per call so every feasibility check in a
// pass agrees on "now".
func Check(tr *tree.Tree) []Finding {
	return checkAt(tr, time.Now())
}

func checkAt(tr *tree.Tree, now time.Time) []Finding {
	var findings []Finding
	findings = append(findings, floatingSymbolics(tr)...)

	cycles := cyclicDependencies(tr)
	findings = append(findings, cycles...)
	findings = append(findings, missingDependencies(tr)...)

	if len(cycles) == 0 {
		findings = append(findings, impossibleTasks(tr, now)...)
	}
	return findings
}

// floatingSymbolics reports symbolic tasks that are not transitively
// anchored to any non-symbolic work. The anchored set grows to a fixpoint:
// a task is anchored when any dependency is non-symbolic or is itself
// already anchored. A missing dependency name anchors nothing. Symbolic
// tasks with no dependencies at all are exempt; they carry no derivable
// completion semantics either way.
func floatingSymbolics(tr *tree.Tree) []Finding {
	anchored := make(map[string]bool)
	for {
		grew := false
		for name, task := range tr.Tasks {
			if anchored[name] || len(task.DependsOn) == 0 {
				continue
			}
			for _, dep := range task.DependsOn {
				d, ok := tr.Tasks[dep]
				if (ok && !d.Symbolic) || anchored[dep] {
					anchored[name] = true
					grew = true
					break
				}
			}
		}
		if !grew {
			break
		}
	}

	var out []Finding
	for _, name := range tr.SortedNames() {
		task := tr.Tasks[name]
		if task.Symbolic && len(task.DependsOn) > 0 && !anchored[name] {
			out = append(out, Finding{Kind: KindFloatingSymbolic, Task: name})
		}
	}
	return out
}

// cyclicDependencies walks depends_on edges from every task and records the
// edge that closed each cycle it ran into. The same witness edge reached
// from different starting tasks is reported once.
func cyclicDependencies(tr *tree.Tree) []Finding {
	witnesses := make(map[[2]string]bool)
	for _, start := range tr.SortedNames() {
		collectCycleWitnesses(tr, start, witnesses)
	}

	keys := make([][2]string, 0, len(witnesses))
	for k := range witnesses {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	out := make([]Finding, 0, len(keys))
	for _, k := range keys {
		out = append(out, Finding{Kind: KindCyclicDependency, Task: k[0], Dependency: k[1]})
	}
	return out
}

// collectCycleWitnesses is a depth-first walk with an explicit stack and a
// path-membership set, so deep graphs cannot blow the call stack. When a
// dependency already sits on the current path, the edge (current task, that
// dependency) is recorded and the branch is not descended further. Names
// missing from the task map end the path.
func collectCycleWitnesses(tr *tree.Tree, start string, witnesses map[[2]string]bool) {
	type frame struct {
		name string
		next int
	}
	onPath := map[string]bool{start: true}
	stack := []frame{{name: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		deps := tr.Tasks[top.name].DependsOn
		if top.next >= len(deps) {
			delete(onPath, top.name)
			stack = stack[:len(stack)-1]
			continue
		}
		dep := deps[top.next]
		top.next++

		if onPath[dep] {
			witnesses[[2]string{top.name, dep}] = true
			continue
		}
		if _, ok := tr.Tasks[dep]; !ok {
			continue
		}
		onPath[dep] = true
		stack = append(stack, frame{name: dep})
	}
}

// missingDependencies reports every dependency name that is not a key in
// the task map, once per missing name per task.
func missingDependencies(tr *tree.Tree) []Finding {
	var out []Finding
	for _, name := range tr.SortedNames() {
		seen := make(map[string]bool)
		for _, dep := range tr.Tasks[name].DependsOn {
			if _, ok := tr.Tasks[dep]; ok || seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, Finding{Kind: KindNonexistentDependency, Task: name, Dependency: dep})
		}
	}
	return out
}

// impossibleTasks reports tasks whose due dates cannot be met. A task that
// is already complete is never impossible. A due date behind "now" is
// DueInPast and short-circuits the time check for that task, so the two
// reasons are mutually exclusive within one pass. Otherwise the task fails
// with NotEnoughTime when its own estimate plus the estimates of its
// incomplete dependencies extend past the due date.
func impossibleTasks(tr *tree.Tree, now time.Time) []Finding {
	var out []Finding
	for _, name := range tr.SortedNames() {
		task := tr.Tasks[name]
		if task.Due == nil || task.Complete {
			continue
		}
		due := *task.Due
		if due.Before(now) {
			out = append(out, Finding{Kind: KindImpossibleTask, Task: name, Reason: ReasonDueInPast})
			continue
		}
		needed := task.Estimate() + incompleteDependencyTime(tr, task)
		if now.Add(needed).After(due) {
			out = append(out, Finding{Kind: KindImpossibleTask, Task: name, Reason: ReasonNotEnoughTime})
		}
	}
	return out
}

// incompleteDependencyTime sums the estimates of the incomplete
// dependencies reachable from task. Descent prunes at the first complete
// node on each path; work buried beneath a finished dependency is treated
// as accounted for. Each task counts at most once no matter how many paths
// reach it, and missing names contribute nothing.
func incompleteDependencyTime(tr *tree.Tree, task *tree.Task) time.Duration {
	var total time.Duration
	seen := make(map[string]bool)
	stack := append([]string(nil), task.DependsOn...)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[name] {
			continue
		}
		seen[name] = true
		dep, ok := tr.Tasks[name]
		if !ok || dep.Complete {
			continue
		}
		total += dep.Estimate()
		stack = append(stack, dep.DependsOn...)
	}
	return total
}
