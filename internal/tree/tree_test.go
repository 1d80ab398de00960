package tree

import (
	"reflect"
	"testing"
	"time"
)

func estimate(d time.Duration) *Duration {
	return &Duration{Duration: d}
}

func TestResolveSymbolicsFixpoint(t *testing.T) {
	// c -> b -> a, where b and c are symbolic and a is already done. One
	// pass promotes b, the next promotes c.
	tr := New()
	tr.Tasks["a"] = &Task{Description: "real work", Complete: true}
	tr.Tasks["b"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"a"}}
	tr.Tasks["c"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"b"}}

	tr.Populate()

	for _, name := range []string{"b", "c"} {
		if !tr.Tasks[name].Complete {
			t.Errorf("task %s: not promoted by symbolic resolution", name)
		}
	}
}

func TestResolveSymbolicsIncompleteDependency(t *testing.T) {
	tr := New()
	tr.Tasks["a"] = &Task{Description: "real work"}
	tr.Tasks["b"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"a"}}

	tr.Populate()

	if tr.Tasks["b"].Complete {
		t.Error("symbolic task promoted while a dependency is incomplete")
	}
}

func TestResolveSymbolicsMissingDependency(t *testing.T) {
	tr := New()
	tr.Tasks["b"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"ghost"}}

	tr.Populate()

	if tr.Tasks["b"].Complete {
		t.Error("symbolic task promoted over a missing dependency")
	}
}

func TestResolveSymbolicsIdempotent(t *testing.T) {
	build := func() *Tree {
		tr := New()
		tr.Tasks["a"] = &Task{Description: "real work", Complete: true}
		tr.Tasks["b"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"a"}}
		tr.Tasks["c"] = &Task{Description: "milestone", Symbolic: true, DependsOn: []string{"b", "a"}}
		return tr
	}

	once := build()
	once.Populate()

	twice := build()
	twice.Populate()
	twice.Populate()

	for name := range once.Tasks {
		if once.Tasks[name].Complete != twice.Tasks[name].Complete {
			t.Errorf("task %s: second resolution changed completion", name)
		}
	}
}

func TestResolveSymbolicsMonotone(t *testing.T) {
	// A completed symbolic task stays complete even when its dependencies
	// are not.
	tr := New()
	tr.Tasks["a"] = &Task{Description: "real work"}
	tr.Tasks["b"] = &Task{Description: "milestone", Symbolic: true, Complete: true, DependsOn: []string{"a"}}

	tr.Populate()

	if !tr.Tasks["b"].Complete {
		t.Error("symbolic resolution flipped a task from complete to incomplete")
	}
}

func TestBuildGraphNodesAndEdges(t *testing.T) {
	tr := New()
	tr.Tasks["a"] = &Task{Description: "done", Complete: true}
	tr.Tasks["b"] = &Task{Description: "pending", DependsOn: []string{"a", "ghost"}}

	tr.Populate()
	g := tr.Graph

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes: got %d, want 3 (root + 2 tasks)", len(g.Nodes))
	}
	if !g.Nodes[g.Root()].IsRoot {
		t.Error("node 0 is not the root")
	}

	// Root edge per task plus one dependency edge; the edge to the missing
	// name is omitted.
	if len(g.Edges) != 3 {
		t.Fatalf("edges: got %d, want 3", len(g.Edges))
	}

	bi, ok := g.Lookup("b")
	if !ok {
		t.Fatal("task b missing from graph")
	}
	ai, _ := g.Lookup("a")
	var found bool
	for _, e := range g.From(bi) {
		if e.To == ai {
			found = true
			if !e.DepComplete {
				t.Error("edge b->a: dependency completion label not set")
			}
		}
	}
	if !found {
		t.Error("edge b->a missing")
	}
}

func TestPopulateReplacesGraph(t *testing.T) {
	tr := New()
	tr.Tasks["a"] = &Task{Description: "only"}
	tr.Populate()
	old := tr.Graph

	tr.Tasks["b"] = &Task{Description: "second"}
	tr.Populate()

	if tr.Graph == old {
		t.Error("Populate reused the previous derived graph")
	}
	if len(tr.Graph.Nodes) != 3 {
		t.Errorf("nodes after repopulate: got %d, want 3", len(tr.Graph.Nodes))
	}
}

func TestMergePrecedence(t *testing.T) {
	left := New()
	left.Tasks["a"] = &Task{Description: "from the left", Complete: true}
	left.Tasks["only-left"] = &Task{Description: "kept"}

	right := New()
	right.Tasks["a"] = &Task{Description: "from the right", EstimatedTime: estimate(time.Hour)}

	left.Merge(right)

	got := left.Tasks["a"]
	if got.Description != "from the right" {
		t.Errorf("description: got %q, want the right-hand task", got.Description)
	}
	if got.Complete {
		t.Error("merge combined fields instead of replacing the task")
	}
	if got.Estimate() != time.Hour {
		t.Errorf("estimate: got %v, want 1h", got.Estimate())
	}
	if _, ok := left.Tasks["only-left"]; !ok {
		t.Error("merge dropped a task that had no collision")
	}
	if left.Graph == nil {
		t.Error("merge did not rebuild the derived graph")
	}
}

func TestMergeDoesNotAliasSource(t *testing.T) {
	left := New()
	right := New()
	right.Tasks["a"] = &Task{Description: "shared?"}

	left.Merge(right)
	left.Tasks["a"].Complete = true

	if right.Tasks["a"].Complete {
		t.Error("merged task aliases the source tree's task")
	}
}

func TestSetCompleteAndRemove(t *testing.T) {
	tr := New()
	tr.Tasks["a"] = &Task{Description: "work"}
	tr.Populate()

	if !tr.SetComplete("a", true) {
		t.Fatal("SetComplete: task not found")
	}
	i, _ := tr.Graph.Lookup("a")
	if !tr.Graph.Nodes[i].Complete {
		t.Error("graph node not refreshed after SetComplete")
	}

	if tr.SetComplete("ghost", true) {
		t.Error("SetComplete reported success for a missing task")
	}

	if !tr.Remove("a") {
		t.Fatal("Remove: task not found")
	}
	if len(tr.Graph.Nodes) != 1 {
		t.Errorf("nodes after remove: got %d, want just the root", len(tr.Graph.Nodes))
	}
	if tr.Remove("a") {
		t.Error("Remove reported success twice for the same task")
	}
}

func TestSortedNames(t *testing.T) {
	tr := New()
	for _, name := range []string{"c", "a", "b"} {
		tr.Tasks[name] = &Task{Description: name}
	}
	if got, want := tr.SortedNames(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SortedNames: got %v, want %v", got, want)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if d.Duration != 90*time.Minute {
		t.Errorf("got %v, want 1h30m", d.Duration)
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "1h30m0s" {
		t.Errorf("MarshalText: got %q", text)
	}

	if err := d.UnmarshalText([]byte("-5m")); err == nil {
		t.Error("negative duration accepted")
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("unparseable duration accepted")
	}
}
