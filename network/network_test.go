// SPDX-License-Identifier: MIT

package network_test

import (
	"testing"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/network"
	"github.com/katalvlaran/lvnet/topology"
	"github.com/stretchr/testify/require"
)

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := network.New(nil)
	require.ErrorIs(t, err, network.ErrNoBranches)

	_, err = network.New([]element.Branch{resistor(t, "a", "b", 1), nil})
	require.ErrorIs(t, err, network.ErrNilBranch)

	_, err = network.New([]element.Branch{resistor(t, "a", "b", 1), resistor(t, "b", "a", 2)})
	require.ErrorIs(t, err, network.ErrDuplicateBranch)

	_, err = network.New([]element.Branch{resistor(t, "a", "b", 1), resistor(t, "c", "d", 1)})
	require.ErrorIs(t, err, network.ErrTopology)
	require.ErrorIs(t, err, topology.ErrDisconnected)
}

func TestNew_DerivesNodes(t *testing.T) {
	t.Parallel()

	net, err := network.New(circuitBranches(t))
	require.NoError(t, err)

	var names []string
	for _, n := range net.Nodes() {
		names = append(names, n.Name())
	}
	require.Equal(t, []string{"a", "d", "b", "c", "e"}, names)

	c, ok := net.Node("c")
	require.True(t, ok)
	require.Equal(t, 3, c.Degree())
	var incident []string
	for _, b := range c.Branches() {
		incident = append(incident, b.Name())
	}
	require.Equal(t, []string{"b-c", "c-d", "c-e"}, incident)
	require.Zero(t, c.Injection())

	_, ok = net.Node("z")
	require.False(t, ok)
}

func TestNew_OrderIndependent(t *testing.T) {
	t.Parallel()

	fwd := circuitBranches(t)
	rev := make([]element.Branch, len(fwd))
	for i, b := range fwd {
		rev[len(fwd)-1-i] = b
	}
	a, err := network.New(fwd)
	require.NoError(t, err)
	b, err := network.New(rev)
	require.NoError(t, err)

	for _, n := range a.Nodes() {
		m, ok := b.Node(n.Name())
		require.True(t, ok)
		require.Equal(t, n.Branches(), m.Branches())
	}
}

func TestSetInjection(t *testing.T) {
	t.Parallel()

	net := pipeNetwork(t)
	a, _ := net.Node("a")
	require.Equal(t, 0.060, a.Injection())

	require.ErrorIs(t, net.SetInjection("zz", 1), network.ErrUnknownNode)
}

func TestLayout_SeriesChains(t *testing.T) {
	t.Parallel()

	lay, err := circuit(t).Layout("")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d"}, lay.Junctions)
	require.Equal(t, "d", lay.Reference)
	require.Equal(t, []string{"c"}, lay.NodeEquations)
	require.Equal(t, []string{"1", "2"}, lay.LoopEquations)
	require.Equal(t, []network.Unknown{
		{Index: 0, From: "c", To: "d", Branches: []string{"b-c", "a-b", "a-d"}},
		{Index: 1, From: "c", To: "d", Branches: []string{"c-d"}},
		{Index: 2, From: "c", To: "d", Branches: []string{"c-e", "d-e"}},
	}, lay.Unknowns)
}

func TestLayout_InjectionMakesJunction(t *testing.T) {
	t.Parallel()

	lay, err := pipeNetwork(t).Layout("")
	require.NoError(t, err)
	// b is the only interior node; every other node is a junction.
	require.Equal(t, []string{"a", "c", "d", "e", "f", "g", "h"}, lay.Junctions)
	require.Equal(t, "h", lay.Reference)
	require.Len(t, lay.NodeEquations, 6)
	require.Len(t, lay.Unknowns, 9)
	require.Equal(t, 9, lay.Equations())
}

func TestLayout_Ring(t *testing.T) {
	t.Parallel()

	net, err := network.New([]element.Branch{
		resistor(t, "x", "y", 1),
		resistor(t, "y", "z", 1),
		source(t, "x", "z", 3),
	})
	require.NoError(t, err)
	require.NoError(t, net.AddLoop(network.NewLoop("r", "x", "y", "z")))

	lay, err := net.Layout("")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, lay.Junctions)
	require.Len(t, lay.Unknowns, 1)
	require.Empty(t, lay.NodeEquations)

	res, err := net.Solve(nil)
	require.NoError(t, err)
	// 3 V across 2 Ω in series.
	q, _ := res.Flow("x-y")
	require.InDelta(t, 1.5, q, 1e-9)
	q, _ = res.Flow("y-z")
	require.InDelta(t, 1.5, q, 1e-9)
	q, _ = res.Flow("x-z")
	require.InDelta(t, -1.5, q, 1e-9)
}

func TestLayout_Errors(t *testing.T) {
	t.Parallel()

	net := circuit(t)
	_, err := net.Layout("a")
	require.ErrorIs(t, err, network.ErrUnknownNode)

	under, err := network.New(circuitBranches(t))
	require.NoError(t, err)
	require.NoError(t, under.AddLoop(network.NewLoop("1", "a", "b", "c", "d")))
	lay, err := under.Layout("")
	require.ErrorIs(t, err, network.ErrEquationCount)
	require.Equal(t, 2, lay.Equations())
	require.Len(t, lay.Unknowns, 3)
}
