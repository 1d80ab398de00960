package tree

import "fmt"

// RootName is the name of the synthetic root node every graph carries.
const RootName = "root"

// Node is one vertex of the derived dependency graph.
type Node struct {
	Name     string
	Complete bool
	IsRoot   bool
}

func (n Node) String() string {
	if n.IsRoot {
		return RootName
	}
	return fmt.Sprintf("%s: %t", n.Name, n.Complete)
}

// Edge is a directed edge between two nodes, addressed by index.
// DepComplete records whether the target task was complete when the graph
// was built; it is always false on edges out of the root.
type Edge struct {
	From        int
	To          int
	DepComplete bool
}

// Graph is the derived dependency graph: an arena of nodes addressed by
// stable indices. The node set is exactly {root} plus one node per task,
// with an edge from the root to every task and an edge from each task to
// each of its dependencies that exist in the task map.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[string]int
}

// Root returns the index of the synthetic root node.
func (g *Graph) Root() int { return 0 }

// Lookup returns the node index for a task name.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// From returns the edges leaving node i, in insertion order.
func (g *Graph) From(i int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == i {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) add(n Node) int {
	i := len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	g.index[n.Name] = i
	return i
}

// buildGraph derives the graph from the (already symbolic-resolved) task
// map. Node completion flags and edge labels are read in a second pass over
// the resolved tasks. A dependency name absent from the map produces no
// edge rather than failing; the lint engine owns missing-name reporting.
func buildGraph(t *Tree) *Graph {
	g := &Graph{index: make(map[string]int, len(t.Tasks)+1)}
	g.add(Node{Name: RootName, Complete: true, IsRoot: true})

	names := t.SortedNames()
	for _, name := range names {
		i := g.add(Node{Name: name, Complete: t.Tasks[name].Complete})
		g.Edges = append(g.Edges, Edge{From: 0, To: i})
	}
	for _, name := range names {
		from := g.index[name]
		for _, dep := range t.Tasks[name].DependsOn {
			to, ok := g.index[dep]
			if !ok {
				continue
			}
			g.Edges = append(g.Edges, Edge{From: from, To: to, DepComplete: t.Tasks[dep].Complete})
		}
	}
	return g
}
