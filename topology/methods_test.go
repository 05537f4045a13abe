// SPDX-License-Identifier: MIT

package topology_test

import (
	"testing"

	"github.com/katalvlaran/lvnet/topology"
	"github.com/stretchr/testify/require"
)

func edgeIDs(es []*topology.Edge) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func TestGraph_Vertices(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	require.Zero(t, g.VertexCount())
	_, err := g.AddEdge("r", "b", "a")
	require.NoError(t, err)
	require.Equal(t, 2, g.VertexCount())
	require.True(t, g.HasVertex("a"))
	require.False(t, g.HasVertex("c"))
}

func TestGraph_AddEdge(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	e, err := g.AddEdge("r1", "d", "a")
	require.NoError(t, err)
	require.Equal(t, "a", e.From, "endpoints are canonicalized")
	require.Equal(t, "d", e.To)
	require.Equal(t, "d", e.Other("a"))

	_, err = g.AddEdge("r1", "a", "b")
	require.ErrorIs(t, err, topology.ErrDuplicateEdge)
	_, err = g.AddEdge("r2", "a", "a")
	require.ErrorIs(t, err, topology.ErrLoopNotAllowed)
	_, err = g.AddEdge("", "a", "b")
	require.ErrorIs(t, err, topology.ErrEmptyVertexID)

	// Parallel edges are allowed.
	_, err = g.AddEdge("r0", "a", "d")
	require.NoError(t, err)
	require.Equal(t, []string{"r0", "r1"}, edgeIDs(g.Between("d", "a")))
	require.Equal(t, 2, g.EdgeCount())
	require.Equal(t, []string{"a", "d"}, g.Vertices())

	got, err := g.Edge("r0")
	require.NoError(t, err)
	require.Equal(t, "a", got.From)
	_, err = g.Edge("missing")
	require.ErrorIs(t, err, topology.ErrEdgeNotFound)
}

func TestGraph_IncidentAndDegree(t *testing.T) {
	t.Parallel()

	g := topology.NewGraph()
	for _, e := range [][3]string{{"bc", "b", "c"}, {"ab", "a", "b"}, {"bd", "b", "d"}, {"bd2", "b", "d"}} {
		_, err := g.AddEdge(e[0], e[1], e[2])
		require.NoError(t, err)
	}

	inc, err := g.Incident("b")
	require.NoError(t, err)
	require.Equal(t, []string{"ab", "bc", "bd", "bd2"}, edgeIDs(inc))

	d, err := g.Degree("b")
	require.NoError(t, err)
	require.Equal(t, 4, d)

	_, err = g.Incident("z")
	require.ErrorIs(t, err, topology.ErrVertexNotFound)
	_, err = g.Degree("z")
	require.ErrorIs(t, err, topology.ErrVertexNotFound)
}
