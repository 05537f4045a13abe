// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"sync"
)

// Sentinel errors for topology operations.
var (
	// ErrEmptyVertexID indicates a vertex or edge ID is the empty string.
	ErrEmptyVertexID = errors.New("topology: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("topology: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("topology: edge not found")

	// ErrDuplicateEdge indicates an edge ID is already in use.
	ErrDuplicateEdge = errors.New("topology: duplicate edge ID")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("topology: self-loop not allowed")

	// ErrDisconnected indicates the graph has more than one component.
	ErrDisconnected = errors.New("topology: graph is not connected")
)

// Edge is an undirected connection with a canonical orientation.
//
// From < To lexicographically; the orientation carries no physics by itself
// but is the sign reference for anything that flows along the edge.
type Edge struct {
	// ID uniquely identifies the edge (a branch name).
	ID string

	// From is the lexicographically smaller endpoint.
	From string

	// To is the lexicographically larger endpoint.
	To string
}

// Other returns the endpoint of e that is not v.
func (e *Edge) Other(v string) string {
	if e.From == v {
		return e.To
	}

	return e.From
}

// Graph is an undirected multigraph keyed by string IDs.
// mu guards vertices, edges and adjacency.
type Graph struct {
	mu sync.RWMutex

	vertices map[string]struct{} // vertex ID set
	edges    map[string]*Edge    // edge ID → Edge

	// adjacency[u][v][edgeID] = struct{}{}, mirrored in adjacency[v][u].
	adjacency map[string]map[string]map[string]struct{}
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		vertices:  make(map[string]struct{}),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
}
