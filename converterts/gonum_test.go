package converters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/stategraph"
	converters "github.com/katalvlaran/stategraph/converterts"
	"github.com/katalvlaran/stategraph/digraph"
)

func statusEqual(a, b stategraph.Status) bool { return a == b }

func TestExport_RoundTripsEdges(t *testing.T) {
	a := digraph.NewArena[stategraph.VertexID](stategraph.Open, statusEqual)
	a.EnsureEdge(0, 1)
	a.EnsureEdge(1, 2)

	snap := converters.Export(a)

	id0 := mustID(t, snap, 0)
	id1 := mustID(t, snap, 1)
	id2 := mustID(t, snap, 2)

	assert.True(t, snap.Graph.HasEdgeFromTo(id0, id1))
	assert.False(t, snap.Graph.HasEdgeFromTo(id2, id0))
}

func TestExport_MergedVertexKeepsSurvivor(t *testing.T) {
	a := digraph.NewArena[stategraph.VertexID](stategraph.Open, statusEqual)
	a.EnsureEdge(0, 1)
	a.Merge(0, 1)

	snap := converters.Export(a)

	_, ok := snap.IDOf(a.GetCanonVertex(0))
	assert.True(t, ok)
}

func TestExport_IsAcyclicForDAG(t *testing.T) {
	a := digraph.NewArena[stategraph.VertexID](stategraph.Open, statusEqual)
	a.EnsureEdge(0, 1)
	a.EnsureEdge(1, 2)

	snap := converters.Export(a)
	_, err := topo.Sort(snap.AsDirected())
	assert.NoError(t, err)
}

func mustID(t *testing.T, snap *converters.Snapshot, v stategraph.VertexID) int64 {
	t.Helper()
	id, ok := snap.IDOf(v)
	require.True(t, ok)

	return id
}
