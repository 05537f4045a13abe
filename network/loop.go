// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/lvnet/element"
)

// Loop is a closed traversal, given either as a node sequence or as an ordered
// list of branch names. A Loop only becomes evaluable once a Network binds it.
type Loop struct {
	name     string
	nodes    []string
	branches []string
	steps    []step
}

// step is one branch of a walk together with the direction it is traversed.
type step struct {
	branch element.Branch
	dir    element.Direction
}

// NewLoop describes a loop by its node sequence. The walk wraps from the last
// node back to the first; each consecutive pair must be joined by exactly one
// branch.
func NewLoop(name string, nodes ...string) *Loop {
	return &Loop{name: name, nodes: append([]string(nil), nodes...)}
}

// LoopFromBranches describes a loop by its branches in traversal order. The
// node sequence is derived when the loop is bound; the walk must close.
func LoopFromBranches(name string, branches ...string) *Loop {
	return &Loop{name: name, branches: append([]string(nil), branches...)}
}

// Name returns the loop name.
func (l *Loop) Name() string { return l.name }

// Nodes returns the node sequence. For a branch-list loop it is empty until
// the loop is bound.
func (l *Loop) Nodes() []string { return append([]string(nil), l.nodes...) }

// Branches returns the branch names in traversal order. For a node loop it is
// empty until the loop is bound.
func (l *Loop) Branches() []string { return append([]string(nil), l.branches...) }

// Residual sums the signed drops of the walk. It fails with ErrTopology for an
// unbound loop and with ErrDomain when a constitutive law does.
func (l *Loop) Residual() (float64, error) {
	if l.steps == nil {
		return 0, fmt.Errorf("%w: loop %q is not bound to a network", ErrTopology, l.name)
	}
	var sum float64
	for _, s := range l.steps {
		d, err := s.branch.SignedDrop(s.dir)
		if err != nil {
			return 0, fmt.Errorf("%w: loop %q, branch %q: %w", ErrDomain, l.name, s.branch.Name(), err)
		}
		sum += d
	}

	return sum, nil
}

// bind resolves l against n and returns a bound copy.
func (l *Loop) bind(n *Network) (*Loop, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: nil loop", ErrTopology)
	}
	if l.name == "" {
		return nil, fmt.Errorf("%w: empty loop name", ErrTopology)
	}
	switch {
	case len(l.branches) > 0 && len(l.nodes) == 0:
		return l.bindBranches(n)
	case len(l.nodes) > 0 && len(l.branches) == 0:
		return l.bindNodes(n)
	default:
		return nil, fmt.Errorf("%w: loop %q needs either nodes or branches", ErrTopology, l.name)
	}
}

func (l *Loop) bindNodes(n *Network) (*Loop, error) {
	if len(l.nodes) < 3 {
		return nil, fmt.Errorf("%w: loop %q needs at least 3 nodes", ErrTopology, l.name)
	}
	out := &Loop{name: l.name, nodes: append([]string(nil), l.nodes...)}
	for i, u := range l.nodes {
		v := l.nodes[(i+1)%len(l.nodes)]
		if _, ok := n.nodeByName[u]; !ok {
			return nil, fmt.Errorf("%w: loop %q: %w %q", ErrTopology, l.name, ErrUnknownNode, u)
		}
		edges := n.graph.Between(u, v)
		switch len(edges) {
		case 0:
			return nil, fmt.Errorf("%w: loop %q: no branch joins %s and %s", ErrTopology, l.name, u, v)
		case 1:
		default:
			return nil, fmt.Errorf("%w: loop %q: %d parallel branches join %s and %s; list branches instead",
				ErrTopology, l.name, len(edges), u, v)
		}
		b := n.byName[edges[0].ID]
		dir, _ := element.DirectionFrom(b, u)
		out.steps = append(out.steps, step{branch: b, dir: dir})
		out.branches = append(out.branches, b.Name())
	}

	return out, nil
}

func (l *Loop) bindBranches(n *Network) (*Loop, error) {
	bs := make([]element.Branch, len(l.branches))
	for i, name := range l.branches {
		e, err := n.graph.Edge(name)
		if err != nil {
			return nil, fmt.Errorf("%w: loop %q: %w %q", ErrTopology, l.name, ErrUnknownBranch, name)
		}
		bs[i] = n.byName[e.ID]
	}
	if len(bs) < 2 {
		return nil, fmt.Errorf("%w: loop %q needs at least 2 branches", ErrTopology, l.name)
	}

	// Start at the endpoint of the first branch that the second one does not
	// touch; a parallel pair starts at the canonical start.
	first, second := bs[0], bs[1]
	var start string
	switch {
	case element.Connects(second, first.Start(), first.End()):
		start = first.Start()
	case element.Touches(second, first.End()):
		start = first.Start()
	case element.Touches(second, first.Start()):
		start = first.End()
	default:
		return nil, fmt.Errorf("%w: loop %q: %s and %s share no node", ErrTopology, l.name, first.Name(), second.Name())
	}

	out := &Loop{name: l.name, branches: append([]string(nil), l.branches...)}
	cur := start
	for _, b := range bs {
		dir, ok := element.DirectionFrom(b, cur)
		if !ok {
			return nil, fmt.Errorf("%w: loop %q: branch %s does not continue from %s", ErrTopology, l.name, b.Name(), cur)
		}
		out.nodes = append(out.nodes, cur)
		out.steps = append(out.steps, step{branch: b, dir: dir})
		cur = element.Opposite(b, cur)
	}
	if cur != start {
		return nil, fmt.Errorf("%w: loop %q does not close (ends at %s, started at %s)", ErrTopology, l.name, cur, start)
	}

	return out, nil
}
