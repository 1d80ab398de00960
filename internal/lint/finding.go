package lint

import "fmt"

// Kind tags a finding with the check that produced it.
type Kind string

const (
	KindFloatingSymbolic      Kind = "floating_symbolic"
	KindCyclicDependency      Kind = "cyclic_dependency"
	KindNonexistentDependency Kind = "nonexistent_dependency"
	KindImpossibleTask        Kind = "impossible_task"
)

// Reason narrows an impossible-task finding.
type Reason string

const (
	ReasonDueInPast     Reason = "due_in_past"
	ReasonNotEnoughTime Reason = "not_enough_time"
)

// Finding is one problem discovered in a task tree. Dependency is set for
// the checks that implicate an edge; Reason only for impossible tasks.
type Finding struct {
	Kind       Kind   `json:"kind"`
	Task       string `json:"task"`
	Dependency string `json:"dependency,omitempty"`
	Reason     Reason `json:"reason,omitempty"`
}

// Structural reports whether the finding means the graph itself is
// malformed, as opposed to a well-formed graph describing an unsound plan.
func (f Finding) Structural() bool {
	return f.Kind == KindCyclicDependency || f.Kind == KindNonexistentDependency
}

func (f Finding) Error() string {
	switch f.Kind {
	case KindFloatingSymbolic:
		return fmt.Sprintf("%s: symbolic task is not anchored to any real work", f.Task)
	case KindCyclicDependency:
		return fmt.Sprintf("%s: cyclic dependency on %s", f.Task, f.Dependency)
	case KindNonexistentDependency:
		return fmt.Sprintf("%s: depends on %s, which does not exist", f.Task, f.Dependency)
	case KindImpossibleTask:
		if f.Reason == ReasonDueInPast {
			return fmt.Sprintf("%s: due date is in the past", f.Task)
		}
		return fmt.Sprintf("%s: not enough time left before the due date", f.Task)
	default:
		return fmt.Sprintf("%s: %s", f.Task, f.Kind)
	}
}
