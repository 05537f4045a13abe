// SPDX-License-Identifier: MIT

// Package topology provides the undirected multigraph underneath a flow
// network, plus the traversals the solver needs from it.
//
// The Graph G = (V,E) stores:
//
//   - Vertices: node names (junctions of the network).
//   - Edges: branches, identified by caller-chosen IDs (branch names), each
//     with canonical endpoints From < To. Parallel edges are allowed, since
//     two resistors may join the same pair of nodes; self-loops are not.
//   - Adjacency as nested maps: adjacency[u][v][edgeID] = struct{}{}, mirrored
//     for v→u, giving O(1) insert and existence checks.
//
// Every query returns deterministically ordered results (vertices and edges
// sorted by ID), so derived equation sets never depend on map iteration.
//
// Traversals:
//
//	SpanningTree(g, root)   BFS tree: visit order, depth, parent and parent edge
//	Components(g)           connected components, each sorted
//	FundamentalCycles(g)    one cycle per non-tree edge: |E| − |V| + 1 cycles
//	                        for a connected graph, each as an ordered edge walk
//
// All Graph methods are safe for concurrent use (single sync.RWMutex).
//
// Errors:
//
//	ErrEmptyVertexID   – zero-length vertex ID
//	ErrVertexNotFound  – missing vertex
//	ErrEdgeNotFound    – missing edge
//	ErrDuplicateEdge   – edge ID already present
//	ErrLoopNotAllowed  – from == to
//	ErrDisconnected    – a traversal that needs one component found several
package topology
