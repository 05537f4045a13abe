// SPDX-License-Identifier: MIT

package network_test

import (
	"testing"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/fluid"
	"github.com/katalvlaran/lvnet/network"
	"github.com/stretchr/testify/require"
)

const pipeRoughness = 0.00025 // commercial steel, m

func resistor(t *testing.T, from, to string, ohms float64, opts ...element.Option) element.Branch {
	t.Helper()
	r, err := element.NewResistor(from, to, ohms, opts...)
	require.NoError(t, err)

	return r
}

func source(t *testing.T, from, to string, value float64) element.Branch {
	t.Helper()
	s, err := element.NewSource(from, to, value)
	require.NoError(t, err)

	return s
}

func pipe(t *testing.T, from, to string, length, diameter float64) element.Branch {
	t.Helper()
	p, err := element.NewPipe(from, to, length, diameter, pipeRoughness, fluid.Water())
	require.NoError(t, err)

	return p
}

// circuitBranches is a two-source resistor bridge.
func circuitBranches(t *testing.T) []element.Branch {
	t.Helper()

	return []element.Branch{
		resistor(t, "a", "d", 20),
		resistor(t, "b", "c", 20),
		resistor(t, "c", "d", 10),
		resistor(t, "c", "e", 5),
		source(t, "a", "b", 32),
		source(t, "d", "e", 16),
	}
}

// circuit returns the bridge with its two mesh loops.
func circuit(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New(circuitBranches(t))
	require.NoError(t, err)
	require.NoError(t, net.AddLoop(network.NewLoop("1", "a", "b", "c", "d")))
	require.NoError(t, net.AddLoop(network.NewLoop("2", "c", "d", "e")))

	return net
}

func pipeBranches(t *testing.T) []element.Branch {
	t.Helper()

	return []element.Branch{
		pipe(t, "a", "b", 250, 0.3),
		pipe(t, "a", "c", 100, 0.2),
		pipe(t, "b", "e", 100, 0.2),
		pipe(t, "c", "d", 125, 0.2),
		pipe(t, "c", "f", 100, 0.15),
		pipe(t, "d", "e", 125, 0.2),
		pipe(t, "d", "g", 100, 0.15),
		pipe(t, "e", "h", 100, 0.15),
		pipe(t, "f", "g", 125, 0.25),
		pipe(t, "g", "h", 125, 0.25),
	}
}

// pipeNetwork returns a ten-pipe water network fed at a and drawn at d, f, h.
func pipeNetwork(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.New(pipeBranches(t))
	require.NoError(t, err)
	for node, q := range map[string]float64{"a": 0.060, "d": -0.030, "f": -0.015, "h": -0.015} {
		require.NoError(t, net.SetInjection(node, q))
	}
	require.NoError(t, net.AddLoop(network.LoopFromBranches("A", "a-b", "b-e", "d-e", "c-d", "a-c")))
	require.NoError(t, net.AddLoop(network.LoopFromBranches("B", "c-d", "d-g", "f-g", "c-f")))
	require.NoError(t, net.AddLoop(network.LoopFromBranches("C", "d-e", "e-h", "g-h", "d-g")))

	return net
}

func uniformGuess(n int, v float64) []float64 {
	g := make([]float64, n)
	for i := range g {
		g[i] = v
	}

	return g
}

func requireBalanced(t *testing.T, res *network.Result, eps float64) {
	t.Helper()
	for _, n := range res.Nodes {
		require.InDelta(t, 0, n.Residual, eps, "node %s continuity", n.Name)
	}
	for _, l := range res.Loops {
		require.InDelta(t, 0, l.Residual, eps, "loop %s drop", l.Name)
	}
}
