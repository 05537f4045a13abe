// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/topology"
)

// Network owns a set of branches, the nodes derived from them and the loops
// bound to them. It is the only writer of branch flows.
type Network struct {
	mu sync.Mutex // serializes analyses and mutations

	branches []element.Branch // insertion order
	byName   map[string]element.Branch
	graph    *topology.Graph

	nodes      []*Node // first-seen order
	nodeByName map[string]*Node

	loops []*Loop // bound

	// Series chains of the last successful Layout, used by FlowOf for sources.
	chainOf map[string]*chain
}

// New builds a network from an unordered branch list. Nodes are derived from
// the branch endpoints. The network must be connected.
//
// Errors: ErrNoBranches, ErrNilBranch, ErrDuplicateBranch, ErrTopology.
func New(branches []element.Branch) (*Network, error) {
	if len(branches) == 0 {
		return nil, ErrNoBranches
	}
	n := &Network{
		branches: make([]element.Branch, 0, len(branches)),
		byName:   make(map[string]element.Branch, len(branches)),
		graph:    topology.NewGraph(),
	}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("New: branch %d: %w", i, ErrNilBranch)
		}
		if _, dup := n.byName[b.Name()]; dup {
			return nil, fmt.Errorf("New: %w %q", ErrDuplicateBranch, b.Name())
		}
		if _, err := n.graph.AddEdge(b.Name(), b.Start(), b.End()); err != nil {
			return nil, fmt.Errorf("New: %w: %w", ErrTopology, err)
		}
		n.byName[b.Name()] = b
		n.branches = append(n.branches, b)
	}

	comps, err := topology.Components(n.graph)
	if err != nil {
		return nil, fmt.Errorf("New: %w: %w", ErrTopology, err)
	}
	if len(comps) > 1 {
		return nil, fmt.Errorf("New: %w: %d components: %w", ErrTopology, len(comps), topology.ErrDisconnected)
	}

	n.nodes, n.nodeByName = buildNodes(n.branches)

	return n, nil
}

// Branches returns the branches in insertion order.
func (n *Network) Branches() []element.Branch {
	return append([]element.Branch(nil), n.branches...)
}

// Branch looks up a branch by name.
func (n *Network) Branch(name string) (element.Branch, bool) {
	b, ok := n.byName[name]

	return b, ok
}

// Nodes returns the nodes in the order their names first appear among the
// branch endpoints.
func (n *Network) Nodes() []*Node {
	return append([]*Node(nil), n.nodes...)
}

// Node looks up a node by name.
func (n *Network) Node(name string) (*Node, bool) {
	nd, ok := n.nodeByName[name]

	return nd, ok
}

// Loops returns the bound loops in the order they were added.
func (n *Network) Loops() []*Loop {
	return append([]*Loop(nil), n.loops...)
}

// Graph exposes the junction multigraph; edge IDs are branch names.
func (n *Network) Graph() *topology.Graph { return n.graph }

// SetInjection sets the external flow at a node: positive enters, negative
// leaves. Changing an injection can change which nodes are junctions.
func (n *Network) SetInjection(node string, q float64) error {
	if !n.mu.TryLock() {
		return ErrBusy
	}
	defer n.mu.Unlock()

	nd, ok := n.nodeByName[node]
	if !ok {
		return fmt.Errorf("SetInjection: %w %q", ErrUnknownNode, node)
	}
	nd.injection = q

	return nil
}

// AddLoop binds l and appends it to the loop equations.
func (n *Network) AddLoop(l *Loop) error {
	if !n.mu.TryLock() {
		return ErrBusy
	}
	defer n.mu.Unlock()

	bound, err := l.bind(n)
	if err != nil {
		return err
	}
	for _, have := range n.loops {
		if have.name == bound.name {
			return fmt.Errorf("%w: duplicate loop name %q", ErrTopology, bound.name)
		}
	}
	n.loops = append(n.loops, bound)

	return nil
}

// DeriveLoops replaces the loop set with the fundamental cycles of a BFS
// spanning tree rooted at the smallest node name. Loops are named L1, L2, …
func (n *Network) DeriveLoops() error {
	if !n.mu.TryLock() {
		return ErrBusy
	}
	defer n.mu.Unlock()

	cycles, err := topology.FundamentalCycles(n.graph)
	if err != nil {
		return fmt.Errorf("DeriveLoops: %w: %w", ErrTopology, err)
	}
	if want := n.graph.EdgeCount() - n.graph.VertexCount() + 1; len(cycles) != want {
		return fmt.Errorf("DeriveLoops: %w: %d cycles, want %d", ErrTopology, len(cycles), want)
	}
	loops := make([]*Loop, 0, len(cycles))
	for i, c := range cycles {
		bound, err := LoopFromBranches(fmt.Sprintf("L%d", i+1), c.Edges...).bind(n)
		if err != nil {
			return fmt.Errorf("DeriveLoops: %w", err)
		}
		loops = append(loops, bound)
	}
	n.loops = loops

	return nil
}

// FlowOf returns the signed start → end flow of b. Carriers report their own
// state; a source reports the current of its series chain as of the last
// analysis, or 0 before any.
func (n *Network) FlowOf(b element.Branch) float64 {
	if c, ok := b.(element.Carrier); ok {
		return c.Flow()
	}
	ch, ok := n.chainOf[b.Name()]
	if !ok {
		return 0
	}

	return ch.flowOf(b)
}
