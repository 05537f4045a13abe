// SPDX-License-Identifier: MIT

package netfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvnet/element"
	"github.com/katalvlaran/lvnet/netfile"
	"github.com/katalvlaran/lvnet/network"
	"github.com/stretchr/testify/require"
)

func TestLoad_Bridge(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Load(filepath.Join("testdata", "bridge.yaml"))
	require.NoError(t, err)
	require.Equal(t, "bridge", doc.Name)
	require.Len(t, doc.Branches, 6)
	require.Equal(t, netfile.TransitionExpected, doc.Transition)
	require.Equal(t, network.DefaultTolerance, doc.Solver.Tolerance)
	require.Equal(t, network.DefaultMaxIterations, doc.Solver.MaxIterations)

	net, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, net.Loops(), 2)

	res, err := net.Solve(doc.Guess(3), doc.Options()...)
	require.NoError(t, err)
	q, ok := res.Flow("c-d")
	require.True(t, ok)
	require.InDelta(t, -16.0/13, q, 1e-6)
}

func TestLoad_Pipes(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Load(filepath.Join("testdata", "pipes.yaml"))
	require.NoError(t, err)
	require.Equal(t, 1e-10, doc.Solver.Tolerance)

	net, err := doc.Build()
	require.NoError(t, err)
	a, _ := net.Node("a")
	require.Equal(t, 0.060, a.Injection())
	p, ok := net.Branch("c-f")
	require.True(t, ok)
	require.Equal(t, element.KindPipe, p.Kind())
	require.InDelta(t, 0.15, p.(*element.Pipe).Diameter(), 0)

	lay, err := net.Layout(doc.Solver.Reference)
	require.NoError(t, err)
	guess := doc.Guess(len(lay.Unknowns))
	require.Equal(t, []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}, guess)

	res, err := net.Solve(guess, doc.Options()...)
	require.NoError(t, err)
	for _, n := range res.Nodes {
		require.InDelta(t, 0, n.Residual, 1e-6, n.Name)
	}
	for _, l := range res.Loops {
		require.InDelta(t, 0, l.Residual, 1e-6, l.Name)
	}
}

func TestParse_DerivesLoops(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Parse([]byte(`
branches:
  - {kind: resistor, from: x, to: y, resistance: 1}
  - {kind: resistor, from: y, to: z, resistance: 1}
  - {kind: source, from: x, to: z, value: 3}
`))
	require.NoError(t, err)
	net, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, net.Loops(), 1)

	res, err := net.Solve(nil, doc.Options()...)
	require.NoError(t, err)
	q, _ := res.Flow("x-y")
	require.InDelta(t, 1.5, q, 1e-9)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", `name: nothing`, netfile.ErrEmptyDocument},
		{"kind", `branches: [{kind: capacitor, from: a, to: b}]`, netfile.ErrUnknownKind},
		{"loop without walk", "branches: [{kind: resistor, from: a, to: b, resistance: 1}]\nloops: [{name: x}]", netfile.ErrBadLoop},
		{"loop with both", "branches: [{kind: resistor, from: a, to: b, resistance: 1}]\nloops: [{name: x, nodes: [a], branches: [a-b]}]", netfile.ErrBadLoop},
		{"transition", "transition: chaotic\nbranches: [{kind: resistor, from: a, to: b, resistance: 1}]", netfile.ErrUnknownTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := netfile.Parse([]byte(tc.yaml))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := netfile.Parse([]byte("branches: {not: a list}"))
	require.Error(t, err)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Parse([]byte(`branches: [{kind: resistor, from: a, to: b, resistance: -1}]`))
	require.NoError(t, err)
	_, err = doc.Build()
	require.ErrorIs(t, err, element.ErrBadResistance)

	doc, err = netfile.Parse([]byte("fluid: {density: 0, viscosity: 1}\nbranches: [{kind: pipe, from: a, to: b, length: 1, diameter: 1}]"))
	require.NoError(t, err)
	_, err = doc.Build()
	require.Error(t, err)

	doc, err = netfile.Parse([]byte(`
branches:
  - {kind: resistor, from: a, to: b, resistance: 1}
  - {kind: resistor, from: b, to: c, resistance: 1}
  - {kind: source, from: a, to: c, value: 1}
loops:
  - {name: bad, nodes: [a, b, q]}
`))
	require.NoError(t, err)
	_, err = doc.Build()
	require.ErrorIs(t, err, network.ErrTopology)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := netfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocument_Guess(t *testing.T) {
	t.Parallel()

	doc := &netfile.Document{Solver: netfile.SolverSpec{Guess: []float64{1, 2}}}
	require.Equal(t, []float64{1, 2}, doc.Guess(5))

	doc = &netfile.Document{Solver: netfile.SolverSpec{InitialFlow: 0.5}}
	require.Equal(t, []float64{0.5, 0.5}, doc.Guess(2))
}

func TestBuild_SampledTransition(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Parse([]byte(`
transition: sample
seed: 7
branches: [{kind: pipe, from: a, to: b, length: 10, diameter: 0.1, roughness: 0.0001}]
`))
	require.NoError(t, err)
	require.Equal(t, uint64(7), doc.Seed)
	_, err = doc.Build()
	require.NoError(t, err)
}

func TestLoad_LoadedBridge(t *testing.T) {
	t.Parallel()

	doc, err := netfile.Load(filepath.Join("testdata", "bridge2.yaml"))
	require.NoError(t, err)
	net, err := doc.Build()
	require.NoError(t, err)

	lay, err := net.Layout("")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d", "e"}, lay.Junctions)
	require.Len(t, lay.Unknowns, 5)
	require.Equal(t, []string{"c", "d"}, lay.NodeEquations)

	res, err := net.Solve(doc.Guess(len(lay.Unknowns)), doc.Options()...)
	require.NoError(t, err)

	// The ideal source pins the load; the bridge currents are unchanged.
	want := map[string]float64{
		"load": 16.0 / 5,
		"c-d":  -16.0 / 13,
		"a-d":  6.4 / 13,
		"c-e":  9.6 / 13,
		"d-e":  -9.6/13 - 16.0/5,
	}
	for name, q := range want {
		got, ok := res.Flow(name)
		require.True(t, ok, name)
		require.InDelta(t, q, got, 1e-6, name)
	}
	for _, n := range res.Nodes {
		require.InDelta(t, 0, n.Residual, 1e-6, n.Name)
	}
}
