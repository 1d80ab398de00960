// Package render prints the derived dependency graph as an indented tree.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/spaghetus/tasktree-go/internal/tree"
)

var (
	rootLabel  = color.New(color.Bold).SprintFunc()
	doneLabel  = color.New(color.FgGreen).SprintFunc()
	todoLabel  = color.New(color.FgYellow).SprintFunc()
	elideLabel = color.New(color.Faint).SprintFunc()
)

// WriteTree writes the graph to w starting from its synthetic root, one
// node per line with box-drawing connectors. A dependency shows up under
// every task that needs it, the same as the graph it renders. A node that
// is already on the current path is printed once more with an ellipsis and
// not expanded, so a cyclic graph still renders and terminates.
func WriteTree(w io.Writer, g *tree.Graph) error {
	if g == nil {
		return fmt.Errorf("derived graph is not populated")
	}
	children := make([][]tree.Edge, len(g.Nodes))
	for _, e := range g.Edges {
		children[e.From] = append(children[e.From], e)
	}

	onPath := make([]bool, len(g.Nodes))
	return writeNode(w, g, children, g.Root(), "", "", onPath)
}

func writeNode(w io.Writer, g *tree.Graph, children [][]tree.Edge, i int, lead, childLead string, onPath []bool) error {
	node := g.Nodes[i]
	if onPath[i] {
		_, err := fmt.Fprintf(w, "%s%s\n", lead, elideLabel(node.Name+" ..."))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", lead, label(node)); err != nil {
		return err
	}

	onPath[i] = true
	defer func() { onPath[i] = false }()

	edges := children[i]
	for n, e := range edges {
		connector, nextLead := "├── ", "│   "
		if n == len(edges)-1 {
			connector, nextLead = "└── ", "    "
		}
		if err := writeNode(w, g, children, e.To, childLead+connector, childLead+nextLead, onPath); err != nil {
			return err
		}
	}
	return nil
}

func label(node tree.Node) string {
	if node.IsRoot {
		return rootLabel(node.Name)
	}
	if node.Complete {
		return fmt.Sprintf("%s: %s", node.Name, doneLabel("true"))
	}
	return fmt.Sprintf("%s: %s", node.Name, todoLabel("false"))
}
