package louvaingraph

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vxgraph/louvain/internal/edge"
)

// Options configures a Build call.
type Options struct {
	// Workers is the number of goroutines used to partition and build the
	// vertex maps. A value <= 0 defaults to runtime.NumCPU().
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Build partitions a sorted edge array (as produced by the loader package,
// where all edges sharing a source vertex are contiguous) across workers by
// disjoint source-vertex ranges, builds each worker's vertex map in
// parallel, and unions the results into one Graph with every vertex seeded
// as its own community.
//
// edges must already be sorted ascending as packed (from<<32|to) values;
// Build does not sort.
func Build(ctx context.Context, edges []uint64, epoch int, opts Options) (*Graph, error) {
	if len(edges) == 0 {
		return newSingleton(epoch), nil
	}

	workers := opts.workers()
	points := sourceVertexSplitPoints(edges, workers)

	partials := make([]*Graph, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := points[w], points[w+1]
		if lo == hi {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			partials[w] = buildPartial(edges[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return union(partials, epoch), nil
}

// sourceVertexSplitPoints computes n+1 indices into the sorted edges array
// such that no two adjacent ranges contain edges sharing a "from" vertex.
// It advances each tentative midpoint nedges/n*i forward until the "from"
// field changes, the same scan-forward idiom the loader uses for line
// boundaries.
func sourceVertexSplitPoints(edges []uint64, n int) []int {
	size := len(edges)
	points := make([]int, 0, n+1)
	points = append(points, 0)

	for i := 1; i < n; i++ {
		begin := size / n * i
		if begin >= size {
			points = append(points, size)
			continue
		}
		from := edge.From(edges[begin])
		j := begin
		for j < size && edge.From(edges[j]) == from {
			j++
		}
		points = append(points, j)
	}
	points = append(points, size)
	return points
}

// buildPartial builds a vertex map from a contiguous slice of edges that is
// guaranteed not to share any source vertex with any other worker's slice.
func buildPartial(edges []uint64) *Graph {
	g := newSingleton(0)
	for _, e := range edges {
		from, to := edge.Unpack(e)
		v := g.seedVertex(from)
		w := uint64(1)
		if from == to {
			w = 2
		}
		v.Neighbors[to] += w
		v.Degree += w
		g.TotalDegree += w
	}
	for id, v := range g.Vertices {
		g.Communities[id].Degree = v.Degree
	}
	return g
}

// union drains every worker's disjoint vertex map into one graph. Because
// source-vertex partitions never overlap, no vertex ID appears in more than
// one partial graph.
func union(partials []*Graph, epoch int) *Graph {
	g := newSingleton(epoch)
	for _, p := range partials {
		if p == nil {
			continue
		}
		for id, v := range p.Vertices {
			g.Vertices[id] = v
			g.Communities[id] = p.Communities[id]
		}
		g.TotalDegree += p.TotalDegree
	}
	return g
}
