// SPDX-License-Identifier: MIT

// Breadth-first traversals over a Graph: spanning tree, connected components
// and the fundamental cycle basis derived from the tree.

package topology

import (
	"fmt"
)

// Tree is the outcome of a breadth-first search:
//   - Order: vertices in visit sequence, Root first.
//   - Depth: distance in edges from Root.
//   - Parent: predecessor of every non-root vertex.
//   - ParentEdge: the edge used to reach every non-root vertex.
type Tree struct {
	Root       string
	Order      []string
	Depth      map[string]int
	Parent     map[string]string
	ParentEdge map[string]*Edge
}

// Contains reports whether v was reached from Root.
func (t *Tree) Contains(v string) bool {
	_, ok := t.Depth[v]

	return ok
}

// PathToRoot returns v, parent(v), …, Root. Returns nil if v was not reached.
func (t *Tree) PathToRoot(v string) []string {
	if !t.Contains(v) {
		return nil
	}
	path := make([]string, 0, t.Depth[v]+1)
	for cur := v; ; cur = t.Parent[cur] {
		path = append(path, cur)
		if cur == t.Root {
			break
		}
	}

	return path
}

// SpanningTree runs BFS from root. Neighbours are expanded in edge-ID order,
// so the tree is deterministic for a given graph.
// Returns ErrVertexNotFound when root is absent.
// Complexity: O(V + E log E).
func SpanningTree(g *Graph, root string) (*Tree, error) {
	if !g.HasVertex(root) {
		return nil, fmt.Errorf("SpanningTree(%s): %w", root, ErrVertexNotFound)
	}
	n := g.VertexCount()
	t := &Tree{
		Root:       root,
		Order:      make([]string, 0, n),
		Depth:      make(map[string]int, n),
		Parent:     make(map[string]string, n),
		ParentEdge: make(map[string]*Edge, n),
	}

	// Seed queue with the root (no parent)
	queue := []string{root}
	t.Depth[root] = 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t.Order = append(t.Order, cur)

		incident, err := g.Incident(cur)
		if err != nil {
			return nil, err
		}
		for _, e := range incident {
			nb := e.Other(cur)
			if t.Contains(nb) {
				continue
			}
			t.Depth[nb] = t.Depth[cur] + 1
			t.Parent[nb] = cur
			t.ParentEdge[nb] = e
			queue = append(queue, nb)
		}
	}

	return t, nil
}

// Components returns the connected components of g, each sorted, ordered by
// their smallest vertex.
// Complexity: O(V + E log E).
func Components(g *Graph) ([][]string, error) {
	seen := make(map[string]bool, g.VertexCount())
	var out [][]string
	for _, v := range g.Vertices() {
		if seen[v] {
			continue
		}
		t, err := SpanningTree(g, v)
		if err != nil {
			return nil, err
		}
		comp := make([]string, 0, len(t.Order))
		for _, u := range g.Vertices() {
			if t.Contains(u) {
				seen[u] = true
				comp = append(comp, u)
			}
		}
		out = append(out, comp)
	}

	return out, nil
}

// Cycle is a closed walk: Edges[i] joins Nodes[i] and Nodes[(i+1) % len(Nodes)].
type Cycle struct {
	Nodes []string
	Edges []string
}

// FundamentalCycles returns one cycle per edge outside a BFS spanning tree
// rooted at the smallest vertex. For a connected graph the result is a cycle
// basis of size |E| − |V| + 1. Cycles appear in the order of their closing
// edge IDs; each starts at the closing edge's From endpoint.
//
// Returns ErrDisconnected when g has more than one component.
// Complexity: O(E·V) for path extraction on top of the BFS.
func FundamentalCycles(g *Graph) ([]Cycle, error) {
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, nil
	}
	t, err := SpanningTree(g, vertices[0])
	if err != nil {
		return nil, err
	}
	if len(t.Order) != len(vertices) {
		return nil, fmt.Errorf("FundamentalCycles: %w", ErrDisconnected)
	}

	inTree := make(map[string]bool, len(t.ParentEdge))
	for _, e := range t.ParentEdge {
		inTree[e.ID] = true
	}

	var cycles []Cycle
	for _, e := range g.Edges() {
		if inTree[e.ID] {
			continue
		}
		cycles = append(cycles, t.closeCycle(e))
	}

	return cycles, nil
}

// closeCycle walks From → LCA → To through the tree and returns to From
// across the closing edge e.
func (t *Tree) closeCycle(e *Edge) Cycle {
	pu, pv := t.PathToRoot(e.From), t.PathToRoot(e.To)

	// Strip the shared suffix; pu[i] == pv[j] is the lowest common ancestor.
	i, j := len(pu)-1, len(pv)-1
	for i > 0 && j > 0 && pu[i-1] == pv[j-1] {
		i--
		j--
	}

	c := Cycle{
		Nodes: make([]string, 0, i+j+1),
		Edges: make([]string, 0, i+j+1),
	}
	for k := 0; k <= i; k++ {
		c.Nodes = append(c.Nodes, pu[k])
	}
	for k := j - 1; k >= 0; k-- {
		c.Nodes = append(c.Nodes, pv[k])
	}
	for k := 0; k < i; k++ {
		c.Edges = append(c.Edges, t.ParentEdge[pu[k]].ID)
	}
	for k := j - 1; k >= 0; k-- {
		c.Edges = append(c.Edges, t.ParentEdge[pv[k]].ID)
	}
	c.Edges = append(c.Edges, e.ID)

	return c
}
