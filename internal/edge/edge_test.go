package edge_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxgraph/louvain/internal/edge"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := [][2]uint32{
		{0, 0},
		{0, math.MaxUint32},
		{math.MaxUint32, 0},
		{math.MaxUint32, math.MaxUint32},
		{1, 2},
		{2, 1},
	}
	for _, c := range cases {
		packed := edge.Pack(c[0], c[1])
		from, to := edge.Unpack(packed)
		assert.Equal(t, c[0], from)
		assert.Equal(t, c[1], to)
		assert.Equal(t, c[0], edge.From(packed))
		assert.Equal(t, c[1], edge.To(packed))
	}
}

func TestPackUnpackRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10_000; i++ {
		from := rng.Uint32()
		to := rng.Uint32()
		packed := edge.Pack(from, to)
		gotFrom, gotTo := edge.Unpack(packed)
		require.Equal(t, from, gotFrom)
		require.Equal(t, to, gotTo)
	}
}

func TestPackOrdersBySourceThenDestination(t *testing.T) {
	a := edge.Pack(1, 5)
	b := edge.Pack(1, 6)
	c := edge.Pack(2, 0)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
