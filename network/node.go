// SPDX-License-Identifier: MIT

package network

import (
	"sort"

	"github.com/katalvlaran/lvnet/element"
)

// FlowReader reports the signed flow a branch currently carries, measured
// start → end. Network implements it; sources report the flow of the series
// chain they sit in.
type FlowReader interface {
	FlowOf(b element.Branch) float64
}

// Node is a junction point named by the endpoints of its branches.
type Node struct {
	name      string
	incident  []element.Branch // sorted by branch name
	injection float64
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Branches returns the incident branches sorted by name.
func (n *Node) Branches() []element.Branch {
	out := make([]element.Branch, len(n.incident))
	copy(out, n.incident)

	return out
}

// Degree is the number of incident branches.
func (n *Node) Degree() int { return len(n.incident) }

// Injection is the external flow entering (+) or leaving (−) the node.
func (n *Node) Injection() float64 { return n.injection }

// NetFlow sums branch outflow: +flow where the node is the start of a branch,
// −flow where it is the end.
func (n *Node) NetFlow(fr FlowReader) float64 {
	var sum float64
	for _, b := range n.incident {
		q := fr.FlowOf(b)
		if b.Start() == n.name {
			sum += q
		} else {
			sum -= q
		}
	}

	return sum
}

// Residual is the continuity error NetFlow − Injection.
func (n *Node) Residual(fr FlowReader) float64 {
	return n.NetFlow(fr) - n.injection
}

// other returns the incident branch that is not b; only valid for degree 2.
func (n *Node) other(b element.Branch) element.Branch {
	if n.incident[0].Name() == b.Name() {
		return n.incident[1]
	}

	return n.incident[0]
}

// buildNodes creates one Node per distinct endpoint, in first-seen order, and
// attaches every branch touching it.
func buildNodes(branches []element.Branch) ([]*Node, map[string]*Node) {
	var (
		order  []*Node
		byName = make(map[string]*Node)
	)
	for _, b := range branches {
		for _, id := range [2]string{b.Start(), b.End()} {
			if _, seen := byName[id]; seen {
				continue
			}
			n := &Node{name: id}
			for _, c := range branches {
				if element.Touches(c, id) {
					n.incident = append(n.incident, c)
				}
			}
			sort.Slice(n.incident, func(i, j int) bool {
				return n.incident[i].Name() < n.incident[j].Name()
			})
			byName[id] = n
			order = append(order, n)
		}
	}

	return order, byName
}
