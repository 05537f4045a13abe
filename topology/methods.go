// SPDX-License-Identifier: MIT

// Graph lifecycle and query methods. Mutations take the write lock, queries
// the read lock; every slice returned is a fresh, sorted copy.

package topology

import (
	"fmt"
	"sort"
)

func (g *Graph) addVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.adjacency[id] = make(map[string]map[string]struct{})
}

// HasVertex reports whether id is a vertex of g.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// AddEdge inserts an edge with the given ID between a and b, creating the
// endpoints if needed. Endpoints are stored canonically (From < To).
//
// Errors: ErrEmptyVertexID, ErrLoopNotAllowed, ErrDuplicateEdge.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(id, a, b string) (*Edge, error) {
	// 1) Input validation
	if id == "" || a == "" || b == "" {
		return nil, ErrEmptyVertexID
	}
	if a == b {
		return nil, fmt.Errorf("AddEdge(%s): %w", id, ErrLoopNotAllowed)
	}
	if a > b {
		a, b = b, a
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) IDs are caller-chosen and must be unique
	if _, exists := g.edges[id]; exists {
		return nil, fmt.Errorf("AddEdge(%s): %w", id, ErrDuplicateEdge)
	}

	// 3) Endpoints are created on demand
	g.addVertexLocked(a)
	g.addVertexLocked(b)

	// 4) Store and mirror adjacency
	e := &Edge{ID: id, From: a, To: b}
	g.edges[id] = e
	g.link(a, b, id)
	g.link(b, a, id)

	return e, nil
}

func (g *Graph) link(u, v, id string) {
	inner, ok := g.adjacency[u][v]
	if !ok {
		inner = make(map[string]struct{})
		g.adjacency[u][v] = inner
	}
	inner[id] = struct{}{}
}

// Edge returns the edge with the given ID or ErrEdgeNotFound.
// Complexity: O(1).
func (g *Graph) Edge(id string) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, fmt.Errorf("Edge(%s): %w", id, ErrEdgeNotFound)
	}

	return e, nil
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Edges returns all edges sorted by ID.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}

// Incident returns the edges touching id, sorted by ID.
// Returns ErrVertexNotFound for an unknown vertex.
// Complexity: O(d log d).
func (g *Graph) Incident(id string) ([]*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("Incident(%s): %w", id, ErrVertexNotFound)
	}
	out := make([]*Edge, 0, len(nbrs))
	for _, ids := range nbrs {
		for eid := range ids {
			out = append(out, g.edges[eid])
		}
	}
	sortEdges(out)

	return out, nil
}

// Between returns the edges joining u and v (in either order), sorted by ID.
// Unknown vertices yield an empty result.
// Complexity: O(k log k) for k parallel edges.
func (g *Graph) Between(u, v string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.adjacency[u][v]
	out := make([]*Edge, 0, len(ids))
	for eid := range ids {
		out = append(out, g.edges[eid])
	}
	sortEdges(out)

	return out
}

// Degree returns the number of edges touching id (parallel edges counted).
// Returns ErrVertexNotFound for an unknown vertex.
func (g *Graph) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("Degree(%s): %w", id, ErrVertexNotFound)
	}
	d := 0
	for _, ids := range nbrs {
		d += len(ids)
	}

	return d, nil
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

func sortEdges(es []*Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID < es[j].ID })
}
