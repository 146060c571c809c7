package louvain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxgraph/louvain/internal/louvaingraph"
)

func TestRunTriangleConverges(t *testing.T) {
	g := buildFrom(t, [][2]uint32{{1, 2}, {2, 3}, {1, 3}})

	next, q, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0, q, 0.05)
	assert.Equal(t, 1, next.NumVertices())
	assert.EqualValues(t, 6, next.TotalDegree)
}

func TestRunTwoTrianglesJoinedByBridge(t *testing.T) {
	g := buildFrom(t, [][2]uint32{
		{1, 2}, {2, 3}, {1, 3},
		{4, 5}, {5, 6}, {4, 6},
		{3, 4},
	})

	next, q, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, next.NumVertices())
	assert.Greater(t, q, 0.3)
	assert.EqualValues(t, 14, next.TotalDegree)
}

func TestRunDisconnectedSingletonsMergesPairs(t *testing.T) {
	g := buildFrom(t, [][2]uint32{{1, 2}, {3, 4}})

	next, q, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, next.NumVertices())
	assert.InDelta(t, 0.5, q, 1e-9)
}

func TestRunPathOfFour(t *testing.T) {
	g := buildFrom(t, [][2]uint32{{1, 2}, {2, 3}, {3, 4}})

	next, q, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Greater(t, q, 0.0)
	assert.Equal(t, 2, next.NumVertices())
	assert.EqualValues(t, 6, next.TotalDegree)

	for _, v := range next.Vertices {
		assert.EqualValues(t, 3, v.Degree)
		assert.EqualValues(t, 2, v.Neighbors[v.ID], "self-loop weight")
	}
}

func TestRunParallelEdges(t *testing.T) {
	g := louvaingraph.NewGraph(1)
	v2 := g.EnsureVertex(2)
	v1 := g.EnsureVertex(1)
	v3 := g.EnsureVertex(3)
	v1.Neighbors[2] = 3
	v1.Degree = 3
	v2.Neighbors[1] = 3
	v2.Neighbors[3] = 1
	v2.Degree = 4
	v3.Neighbors[2] = 1
	v3.Degree = 1
	g.Communities[1].Degree = 3
	g.Communities[2].Degree = 4
	g.Communities[3].Degree = 1
	g.TotalDegree = 8

	assert.EqualValues(t, 4, g.Vertices[2].Degree)
	assert.EqualValues(t, 8, g.TotalDegree)

	_, _, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
}

func TestRunConvergenceCapNoPositiveGainStaysSingleton(t *testing.T) {
	// A single vertex with a self-loop: its only candidate is its own
	// community, which offers zero gain, so nothing moves.
	g := louvaingraph.NewGraph(1)
	v1 := g.EnsureVertex(1)
	v1.Neighbors[1] = 2
	v1.Degree = 2
	g.Communities[1].Degree = 2
	g.TotalDegree = 2

	var passes int
	_, _, err := Run(context.Background(), g, Options{OnPass: func(pass int, _ float64, moved int) {
		passes = pass
		assert.Equal(t, 0, moved)
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, passes)
}

func TestRunEmptyGraphIsNoop(t *testing.T) {
	g := louvaingraph.NewGraph(1)
	next, q, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, q)
	assert.Same(t, g, next)
}

func TestModularityMonotonicAcrossPasses(t *testing.T) {
	g := buildFrom(t, [][2]uint32{
		{1, 2}, {2, 3}, {1, 3},
		{4, 5}, {5, 6}, {4, 6},
		{3, 4},
	})

	var last float64
	first := true
	_, _, err := Run(context.Background(), g, Options{OnPass: func(_ int, q float64, _ int) {
		if !first {
			assert.GreaterOrEqual(t, q+1e-9, last)
		}
		last = q
		first = false
	}})
	require.NoError(t, err)
}

func TestContractionPreservesTotalDegree(t *testing.T) {
	g := buildFrom(t, [][2]uint32{
		{1, 2}, {2, 3}, {1, 3},
		{4, 5}, {5, 6}, {4, 6},
		{3, 4},
	})
	before := g.TotalDegree

	next, _, err := Run(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, next.TotalDegree)
}

func TestDegreeInvariantsHoldAfterRun(t *testing.T) {
	g := buildFrom(t, [][2]uint32{{1, 2}, {2, 3}, {3, 4}, {4, 1}})

	_, _, err := Run(context.Background(), g, Options{OnPass: func(int, float64, int) {
		assertDegreeInvariants(t, g)
	}})
	require.NoError(t, err)
}

func assertDegreeInvariants(t *testing.T, g *louvaingraph.Graph) {
	t.Helper()
	var sumVertexDegrees, sumCommunityDegrees uint64
	for _, v := range g.Vertices {
		sumVertexDegrees += v.Degree
		c, ok := g.Communities[v.Community]
		require.True(t, ok, "vertex %d's community %d does not exist", v.ID, v.Community)
		_, isMember := c.Members[v.ID]
		require.True(t, isMember, "vertex %d not a member of its own community %d", v.ID, v.Community)
	}
	for _, c := range g.Communities {
		var sum uint64
		for id := range c.Members {
			sum += g.Vertices[id].Degree
		}
		sumCommunityDegrees += sum
		assert.Equal(t, sum, c.Degree, "community %d degree mismatch", c.ID)
	}
	assert.Equal(t, g.TotalDegree, sumVertexDegrees)
	assert.Equal(t, g.TotalDegree, sumCommunityDegrees)
}
