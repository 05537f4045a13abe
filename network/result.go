// SPDX-License-Identifier: MIT

package network

import "github.com/katalvlaran/lvnet/element"

// BranchFlow is the solved flow of one branch, positive from Start to End.
type BranchFlow struct {
	Name  string
	Kind  element.Kind
	Start string
	End   string
	Flow  float64
}

// NodeCheck is the continuity check at one node.
type NodeCheck struct {
	Name      string
	Injection float64
	NetFlow   float64
	Residual  float64
}

// LoopCheck is the loop-law check of one loop.
type LoopCheck struct {
	Name     string
	Nodes    []string
	Residual float64
}

// Result is the outcome of a converged analysis.
type Result struct {
	Iterations int
	Residual   float64   // infinity norm of the final residual vector
	History    []float64 // residual norm per iteration, starting with the guess
	Unknowns   []float64 // final chain flows, indexed like Layout.Unknowns
	Layout     *Layout

	Branches []BranchFlow // insertion order
	Nodes    []NodeCheck  // first-seen order, every node
	Loops    []LoopCheck  // loop order
}

// Flow returns the solved flow of the named branch.
func (r *Result) Flow(name string) (float64, bool) {
	for _, b := range r.Branches {
		if b.Name == name {
			return b.Flow, true
		}
	}

	return 0, false
}

// Node returns the continuity check of the named node.
func (r *Result) Node(name string) (NodeCheck, bool) {
	for _, n := range r.Nodes {
		if n.Name == name {
			return n, true
		}
	}

	return NodeCheck{}, false
}

// Loop returns the loop check of the named loop.
func (r *Result) Loop(name string) (LoopCheck, bool) {
	for _, l := range r.Loops {
		if l.Name == name {
			return l, true
		}
	}

	return LoopCheck{}, false
}

// result snapshots the network state into a Result.
func (n *Network) result(lay *Layout, x []float64, iters int, history []float64) (*Result, error) {
	res := &Result{
		Iterations: iters,
		Residual:   history[len(history)-1],
		History:    history,
		Unknowns:   append([]float64(nil), x...),
		Layout:     lay,
	}
	for _, b := range n.branches {
		res.Branches = append(res.Branches, BranchFlow{
			Name:  b.Name(),
			Kind:  b.Kind(),
			Start: b.Start(),
			End:   b.End(),
			Flow:  n.FlowOf(b),
		})
	}
	for _, nd := range n.nodes {
		net := nd.NetFlow(n)
		res.Nodes = append(res.Nodes, NodeCheck{
			Name:      nd.name,
			Injection: nd.injection,
			NetFlow:   net,
			Residual:  net - nd.injection,
		})
	}
	for _, l := range n.loops {
		r, err := l.Residual()
		if err != nil {
			return nil, err
		}
		res.Loops = append(res.Loops, LoopCheck{Name: l.name, Nodes: l.Nodes(), Residual: r})
	}

	return res, nil
}
