package render

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/spaghetus/tasktree-go/internal/tree"
)

func init() {
	// Plain output so assertions don't fight ANSI escapes.
	color.NoColor = true
}

func TestWriteTree(t *testing.T) {
	tr := tree.New()
	tr.Tasks["build"] = &tree.Task{Description: "build it", DependsOn: []string{"design"}}
	tr.Tasks["design"] = &tree.Task{Description: "design it", Complete: true}
	tr.Populate()

	var b strings.Builder
	if err := WriteTree(&b, tr.Graph); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "root" {
		t.Errorf("first line: got %q, want root", lines[0])
	}
	if !strings.Contains(out, "build: false") {
		t.Errorf("output missing incomplete task:\n%s", out)
	}
	if !strings.Contains(out, "design: true") {
		t.Errorf("output missing complete task:\n%s", out)
	}
	// design appears under root and again under build.
	if got := strings.Count(out, "design: true"); got != 2 {
		t.Errorf("design rendered %d times, want 2:\n%s", got, out)
	}
}

func TestWriteTreeCyclicTerminates(t *testing.T) {
	tr := tree.New()
	tr.Tasks["a"] = &tree.Task{Description: "a", DependsOn: []string{"b"}}
	tr.Tasks["b"] = &tree.Task{Description: "b", DependsOn: []string{"a"}}
	tr.Populate()

	var b strings.Builder
	if err := WriteTree(&b, tr.Graph); err != nil {
		t.Fatalf("WriteTree on a cyclic graph: %v", err)
	}
	if !strings.Contains(b.String(), "...") {
		t.Errorf("cycle not elided:\n%s", b.String())
	}
}

func TestWriteTreeNilGraph(t *testing.T) {
	var b strings.Builder
	if err := WriteTree(&b, nil); err == nil {
		t.Error("nil graph accepted")
	}
}
