package louvaingraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxgraph/louvain/internal/edge"
)

func packAll(pairs [][2]uint32) []uint64 {
	var out []uint64
	for _, p := range pairs {
		out = append(out, edge.Pack(p[0], p[1]))
	}
	return out
}

func TestBuildTriangleSingletonSeed(t *testing.T) {
	edges := packAll([][2]uint32{
		{1, 2}, {1, 3},
		{2, 1}, {2, 3},
		{3, 1}, {3, 2},
	})
	g, err := Build(context.Background(), edges, 1, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 3, g.NumCommunities())
	assert.EqualValues(t, 6, g.TotalDegree)

	for id, v := range g.Vertices {
		assert.Equal(t, id, v.Community)
		assert.EqualValues(t, 2, v.Degree)
		c := g.Communities[v.Community]
		assert.EqualValues(t, v.Degree, c.Degree)
		_, isMember := c.Members[id]
		assert.True(t, isMember)
	}
}

func TestBuildSelfLoop(t *testing.T) {
	edges := packAll([][2]uint32{{7, 7}})
	g, err := Build(context.Background(), edges, 1, Options{Workers: 1})
	require.NoError(t, err)

	v := g.Vertices[7]
	require.NotNil(t, v)
	assert.EqualValues(t, 2, v.Degree)
	assert.EqualValues(t, 2, v.Neighbors[7])
	assert.EqualValues(t, 2, g.TotalDegree)
}

func TestBuildParallelEdgesAccumulateWeight(t *testing.T) {
	edges := packAll([][2]uint32{
		{1, 2}, {1, 2}, {1, 2}, {2, 1}, {2, 1}, {2, 1},
		{2, 3}, {3, 2},
	})
	g, err := Build(context.Background(), edges, 1, Options{Workers: 3})
	require.NoError(t, err)

	v2 := g.Vertices[2]
	require.NotNil(t, v2)
	assert.EqualValues(t, 3, v2.Neighbors[1])
	assert.EqualValues(t, 1, v2.Neighbors[3])
	assert.EqualValues(t, 4, v2.Degree)
	assert.EqualValues(t, 8, g.TotalDegree)
}

func TestBuildEmptyEdgesYieldsEmptyGraph(t *testing.T) {
	g, err := Build(context.Background(), nil, 1, Options{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumVertices())
	assert.EqualValues(t, 0, g.TotalDegree)
}

func TestSourceVertexSplitPointsNeverSplitsASourceVertex(t *testing.T) {
	edges := packAll([][2]uint32{
		{1, 2}, {1, 3}, {1, 4}, {2, 1}, {2, 5}, {3, 1}, {4, 1}, {5, 2},
	})
	points := sourceVertexSplitPoints(edges, 3)

	for i := 1; i < len(points)-1; i++ {
		if points[i] == 0 || points[i] == len(edges) {
			continue
		}
		left := edge.From(edges[points[i]-1])
		right := edge.From(edges[points[i]])
		assert.NotEqual(t, left, right, "split point %d falls inside a source-vertex run", i)
	}
}

func TestBuildIsWorkerCountInvariant(t *testing.T) {
	edges := packAll([][2]uint32{
		{1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {4, 4},
	})

	one, err := Build(context.Background(), edges, 1, Options{Workers: 1})
	require.NoError(t, err)
	many, err := Build(context.Background(), edges, 1, Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, one.NumVertices(), many.NumVertices())
	assert.Equal(t, one.TotalDegree, many.TotalDegree)
	for id, v := range one.Vertices {
		mv := many.Vertices[id]
		require.NotNil(t, mv)
		assert.Equal(t, v.Degree, mv.Degree)
		assert.Equal(t, v.Neighbors, mv.Neighbors)
	}
}
