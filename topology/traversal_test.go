// SPDX-License-Identifier: MIT

package topology_test

import (
	"testing"

	"github.com/katalvlaran/lvnet/topology"
	"github.com/stretchr/testify/require"
)

// pipeGrid is the 8-node, 10-edge pipe layout used across lvnet tests.
func pipeGrid(t *testing.T) *topology.Graph {
	t.Helper()
	g := topology.NewGraph()
	for _, p := range [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "e"}, {"c", "d"}, {"c", "f"},
		{"d", "e"}, {"d", "g"}, {"e", "h"}, {"f", "g"}, {"g", "h"},
	} {
		_, err := g.AddEdge(p[0]+"-"+p[1], p[0], p[1])
		require.NoError(t, err)
	}
	return g
}

func TestSpanningTree(t *testing.T) {
	t.Parallel()

	g := pipeGrid(t)
	tree, err := topology.SpanningTree(g, "a")
	require.NoError(t, err)
	require.Equal(t, "a", tree.Order[0])
	require.Len(t, tree.Order, 8)
	require.Equal(t, 1, tree.Depth["b"])
	require.Equal(t, 1, tree.Depth["c"])
	require.Equal(t, 2, tree.Depth["e"])
	require.Equal(t, []string{"e", "b", "a"}, tree.PathToRoot("e"))
	require.Equal(t, "b-e", tree.ParentEdge["e"].ID)

	_, err = topology.SpanningTree(g, "zz")
	require.ErrorIs(t, err, topology.ErrVertexNotFound)
}

func TestComponents(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	_, _ = g.AddEdge("x", "a", "b")
	_, _ = g.AddEdge("y", "c", "d")

	comps, err := topology.Components(g)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, comps)

	_, err = topology.FundamentalCycles(g)
	require.ErrorIs(t, err, topology.ErrDisconnected)
}

func TestFundamentalCycles_PipeGrid(t *testing.T) {
	t.Parallel()

	g := pipeGrid(t)
	cycles, err := topology.FundamentalCycles(g)
	require.NoError(t, err)
	require.Len(t, cycles, g.EdgeCount()-g.VertexCount()+1)

	for _, c := range cycles {
		require.Equal(t, len(c.Nodes), len(c.Edges))
		seen := map[string]bool{}
		for i, id := range c.Edges {
			require.False(t, seen[id], "edge %s repeated in cycle", id)
			seen[id] = true
			e, err := g.Edge(id)
			require.NoError(t, err)
			u, v := c.Nodes[i], c.Nodes[(i+1)%len(c.Nodes)]
			require.True(t, (e.From == u && e.To == v) || (e.From == v && e.To == u),
				"edge %s must join %s and %s", id, u, v)
		}
	}
}

func TestFundamentalCycles_ParallelPair(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	_, _ = g.AddEdge("r1", "a", "b")
	_, _ = g.AddEdge("r2", "a", "b")

	cycles, err := topology.FundamentalCycles(g)
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	require.Equal(t, []string{"a", "b"}, cycles[0].Nodes)
	require.Equal(t, []string{"r1", "r2"}, cycles[0].Edges)
}

func TestFundamentalCycles_Tree(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	_, _ = g.AddEdge("ab", "a", "b")
	_, _ = g.AddEdge("bc", "b", "c")

	cycles, err := topology.FundamentalCycles(g)
	require.NoError(t, err)
	require.Empty(t, cycles)

	empty, err := topology.FundamentalCycles(topology.NewGraph())
	require.NoError(t, err)
	require.Nil(t, empty)
}
