// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvnet/element"
)

// chain is a maximal run of branches joined by interior nodes. All of its
// branches carry the same flow; value is that flow measured along the walk.
type chain struct {
	index    int
	from, to string
	steps    []step
	value    float64
}

// flowOf converts the chain value into b's start → end flow.
func (c *chain) flowOf(b element.Branch) float64 {
	for _, s := range c.steps {
		if s.branch.Name() == b.Name() {
			return s.dir.Sign() * c.value
		}
	}

	return 0
}

// apply stores v as the chain value and writes it into every carrier.
func (c *chain) apply(v float64) {
	c.value = v
	for _, s := range c.steps {
		if cr, ok := s.branch.(element.Carrier); ok {
			cr.SetFlow(s.dir.Sign() * v)
		}
	}
}

// Unknown describes one entry of the unknown vector: the flow of a series
// chain, positive from From toward To along Branches.
type Unknown struct {
	Index    int
	From     string
	To       string
	Branches []string
}

// Layout maps the topology onto the nonlinear system: unknowns first, then
// the equation rows in order (node equations, then loops).
type Layout struct {
	Unknowns      []Unknown
	Junctions     []string // sorted
	Reference     string   // junction whose continuity equation is dropped
	NodeEquations []string // Junctions without Reference
	LoopEquations []string

	chains []*chain
	eqs    []*Node
}

// Equations is the number of residual rows.
func (l *Layout) Equations() int { return len(l.NodeEquations) + len(l.LoopEquations) }

// Layout derives the unknowns and equations for the current injections and
// loops. reference names the dropped junction; "" selects the last junction
// in sorted order.
//
// Errors: ErrUnknownNode (reference is not a junction), ErrEquationCount.
func (n *Network) Layout(reference string) (*Layout, error) {
	if !n.mu.TryLock() {
		return nil, ErrBusy
	}
	defer n.mu.Unlock()

	return n.layout(reference)
}

func (n *Network) layout(reference string) (*Layout, error) {
	junction := make(map[string]bool, len(n.nodes))
	var junctions []string
	for _, nd := range n.nodes {
		deg, err := n.graph.Degree(nd.name)
		if err != nil {
			return nil, fmt.Errorf("Layout: %w: %w", ErrTopology, err)
		}
		// Degree-2 nodes without injection lie inside a series chain.
		if deg != 2 || nd.injection != 0 {
			junction[nd.name] = true
			junctions = append(junctions, nd.name)
		}
	}
	// A plain ring has no junction; promote its smallest node.
	if len(junctions) == 0 {
		first := n.nodes[0].name
		for _, nd := range n.nodes[1:] {
			if nd.name < first {
				first = nd.name
			}
		}
		junction[first] = true
		junctions = append(junctions, first)
	}
	sort.Strings(junctions)

	lay := &Layout{Junctions: junctions}
	assigned := make(map[string]bool, len(n.branches))
	for _, j := range junctions {
		for _, b := range n.nodeByName[j].incident {
			if assigned[b.Name()] {
				continue
			}
			c := n.walkChain(j, b, junction, assigned)
			c.index = len(lay.chains)
			lay.chains = append(lay.chains, c)
		}
	}

	for _, c := range lay.chains {
		u := Unknown{Index: c.index, From: c.from, To: c.to}
		for _, s := range c.steps {
			u.Branches = append(u.Branches, s.branch.Name())
		}
		lay.Unknowns = append(lay.Unknowns, u)
	}

	if reference == "" {
		reference = junctions[len(junctions)-1]
	} else if !junction[reference] {
		return nil, fmt.Errorf("Layout: %w: reference %q is not a junction", ErrUnknownNode, reference)
	}
	lay.Reference = reference
	for _, j := range junctions {
		if j == reference {
			continue
		}
		lay.NodeEquations = append(lay.NodeEquations, j)
		lay.eqs = append(lay.eqs, n.nodeByName[j])
	}
	for _, l := range n.loops {
		lay.LoopEquations = append(lay.LoopEquations, l.name)
	}

	if lay.Equations() != len(lay.Unknowns) {
		return lay, fmt.Errorf("%w: %d node + %d loop equations for %d unknowns",
			ErrEquationCount, len(lay.NodeEquations), len(lay.LoopEquations), len(lay.Unknowns))
	}

	return lay, nil
}

// walkChain follows b away from junction start through interior nodes until
// it reaches a junction.
func (n *Network) walkChain(start string, b element.Branch, junction, assigned map[string]bool) *chain {
	c := &chain{from: start}
	cur := start
	for {
		dir, _ := element.DirectionFrom(b, cur)
		c.steps = append(c.steps, step{branch: b, dir: dir})
		assigned[b.Name()] = true
		cur = element.Opposite(b, cur)
		if junction[cur] {
			break
		}
		b = n.nodeByName[cur].other(b)
	}
	c.to = cur

	return c
}
