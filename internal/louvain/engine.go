// Package louvain implements the local-moving and contraction loops of the
// Louvain modularity-maximization method over a louvaingraph.Graph.
package louvain

import (
	"context"
	"sort"

	"github.com/vxgraph/louvain/internal/louvaingraph"
)

// Options configures one Run call (one epoch's worth of local moving plus
// the contraction that follows it).
type Options struct {
	// MaxPasses bounds the number of inner local-moving passes. A value
	// <= 0 defaults to 100, matching the teacher's convention of a generous
	// but finite cap rather than an unbounded loop.
	MaxPasses int

	// Epsilon is the convergence threshold: the inner loop stops once the
	// change in modularity between two consecutive passes is smaller than
	// this. Per the convergence contract it should fall in [1e-4, 1e-3];
	// a value <= 0 defaults to 1e-4.
	Epsilon float64

	// OnPass, if non-nil, is called after every inner-loop pass with the
	// pass number (1-based), the modularity at the end of that pass, and
	// the number of vertices moved during it. Used by the CLI's progress
	// reporter and telemetry; the engine itself does not depend on it.
	OnPass func(pass int, modularity float64, moved int)
}

func (o Options) maxPasses() int {
	if o.MaxPasses > 0 {
		return o.MaxPasses
	}
	return 100
}

func (o Options) epsilon() float64 {
	if o.Epsilon > 0 {
		return o.Epsilon
	}
	return 1e-4
}

// Run drives one epoch: local moving to convergence, then contraction. It
// returns the contracted graph (ready for the next epoch) and the
// modularity the input graph reached at convergence, before contraction.
func Run(ctx context.Context, g *louvaingraph.Graph, opts Options) (*louvaingraph.Graph, float64, error) {
	if g.NumVertices() == 0 {
		return g, 0, nil
	}
	if g.TotalDegree == 0 {
		return nil, 0, ErrZeroTotalDegree
	}

	q, err := localMoving(ctx, g, opts)
	if err != nil {
		return nil, 0, err
	}

	next := contract(g)
	return next, q, nil
}

// localMoving runs the inner Louvain pass repeatedly until the modularity
// change between passes drops below opts.Epsilon, a pass moves no
// vertices, or opts.MaxPasses is reached. It returns the modularity at the
// final pass.
func localMoving(ctx context.Context, g *louvaingraph.Graph, opts Options) (float64, error) {
	order := sortedVertexIDs(g)
	qPrev := Modularity(g)
	maxPasses := opts.maxPasses()
	eps := opts.epsilon()

	for pass := 1; pass <= maxPasses; pass++ {
		select {
		case <-ctx.Done():
			return qPrev, ctx.Err()
		default:
		}

		moved := onePass(g, order)
		qNow := Modularity(g)

		if opts.OnPass != nil {
			opts.OnPass(pass, qNow, moved)
		}

		if moved == 0 {
			return qNow, nil
		}
		if abs(qNow-qPrev) < eps {
			return qNow, nil
		}
		qPrev = qNow
	}
	return qPrev, nil
}

// onePass iterates every vertex in the given stable order and moves it to
// the neighboring community with the strictly greatest positive
// modularity gain, if any. It returns the number of vertices moved.
func onePass(g *louvaingraph.Graph, order []uint32) int {
	m := float64(g.TotalDegree)
	moved := 0

	for _, id := range order {
		v := g.Vertices[id]
		current := v.Community
		best, bestGain := bestCandidateCommunity(g, v, m)
		if best == current || bestGain <= 0 {
			continue
		}
		moveVertex(g, v, best)
		moved++
	}
	return moved
}

// bestCandidateCommunity finds the community among v's neighbors'
// communities with the strictly greatest positive modularity gain from
// moving v into it. If v is already in a candidate community, that
// candidate's totals are adjusted to exclude v's own contribution before
// the gain is computed, per the modularity-gain formula. Ties are broken
// by iteration order (the first community to reach the maximum gain wins).
func bestCandidateCommunity(g *louvaingraph.Graph, v *louvaingraph.Vertex, m float64) (best uint32, bestGain float64) {
	kv := float64(v.Degree)
	current := v.Community
	best = current

	seen := make(map[uint32]bool, len(v.Neighbors))
	for _, neighborID := range sortedNeighborIDs(v) {
		communityID := g.Vertices[neighborID].Community
		if seen[communityID] {
			continue
		}
		seen[communityID] = true

		kvD := weightToCommunity(g, v, communityID)
		sigmaTot := float64(g.Communities[communityID].Degree)

		if communityID == current {
			sigmaTot -= kv
			kvD -= v.Neighbors[v.ID]
		}

		gain := float64(kvD) - (sigmaTot*kv)/m
		if gain > bestGain {
			bestGain = gain
			best = communityID
		}
	}
	return best, bestGain
}

// weightToCommunity sums the weight of edges from v to vertices currently
// members of the given community, including v's own self-loop if the
// community is v's own (the caller adjusts for that case).
func weightToCommunity(g *louvaingraph.Graph, v *louvaingraph.Vertex, communityID uint32) uint64 {
	var total uint64
	for neighborID, w := range v.Neighbors {
		if g.Vertices[neighborID].Community == communityID {
			total += w
		}
	}
	return total
}

// moveVertex reassigns v from its current community to dest, updating
// both communities' membership and cached degree.
func moveVertex(g *louvaingraph.Graph, v *louvaingraph.Vertex, dest uint32) {
	kv := v.Degree
	src := g.Communities[v.Community]

	delete(src.Members, v.ID)
	src.Degree -= kv
	if len(src.Members) == 0 {
		delete(g.Communities, src.ID)
	}

	destCommunity := g.Communities[dest]
	destCommunity.Members[v.ID] = struct{}{}
	destCommunity.Degree += kv

	v.Community = dest
}

// contract builds the next epoch's graph: one super-vertex per surviving
// community, with inter-community edges merged and intra-community weight
// folded into a self-loop. A single pass over every vertex's adjacency
// handles both cases uniformly: a directed entry whose endpoints land in
// the same community accumulates into that community's self-loop, and one
// whose endpoints land in different communities accumulates into the
// cross edge between them. Total degree is preserved because every
// directed entry of the old graph maps to exactly one directed entry (or
// self-loop) of the new one.
func contract(g *louvaingraph.Graph) *louvaingraph.Graph {
	next := louvaingraph.NewGraph(g.Epoch + 1)
	for id := range g.Communities {
		next.EnsureVertex(id)
	}

	for _, v := range g.Vertices {
		cv := v.Community
		nv := next.Vertices[cv]
		for neighborID, w := range v.Neighbors {
			cu := g.Vertices[neighborID].Community
			nv.Neighbors[cu] += w
			nv.Degree += w
			next.Communities[cv].Degree += w
			next.TotalDegree += w
		}
	}
	return next
}

func sortedVertexIDs(g *louvaingraph.Graph) []uint32 {
	ids := make([]uint32, 0, len(g.Vertices))
	for id := range g.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedNeighborIDs(v *louvaingraph.Vertex) []uint32 {
	ids := make([]uint32, 0, len(v.Neighbors))
	for id := range v.Neighbors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
