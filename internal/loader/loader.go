// Package loader reads an edge-list file into a sorted, packed array of
// directed edges, ready for the graph builder to partition by source vertex.
//
// The pipeline is: memory-map the file, split it into N line-aligned
// slices, parse each slice in parallel into packed (from,to) and (to,from)
// edges, concatenate the per-worker results, then sort the whole array so
// all edges sharing a source vertex are contiguous.
package loader

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vxgraph/louvain/internal/mmapfile"
	"github.com/vxgraph/louvain/internal/timerutil"
)

// Options configures a Load call.
type Options struct {
	// Workers is the number of goroutines used for splitting, parsing and
	// sorting. A value <= 0 defaults to runtime.NumCPU().
	Workers int

	// ShowTimers prints a scoped timer line to stdout for each pipeline
	// stage, mirroring the verbose mode of the tool this package descends
	// from.
	ShowTimers bool
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Load reads path as a whitespace-separated "u v" edge list and returns the
// full set of directed edges, packed as uint64 and sorted so that all edges
// with the same source vertex are contiguous and, within a source, ordered
// by destination. Each undirected line "u v" contributes both (u,v) and
// (v,u) to the result.
func Load(ctx context.Context, path string, opts Options) ([]uint64, error) {
	workers := opts.workers()

	timer := noopTimer
	if opts.ShowTimers {
		timer = timerutil.Start
	}

	stop := timer("reading file")
	mapped, err := mmapfile.Open(path)
	stop()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEdgeFileNotFound, path, err)
	}
	defer mapped.Close()

	data := mapped.Data
	if len(data) == 0 {
		return nil, nil
	}

	stop = timer("splitting file into slices")
	points := lineSplitPoints(data, workers)
	stop()

	stop = timer("parallel parsing file")
	parsed := make([][]uint64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := points[w], points[w+1]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			parsed[w] = parseSlice(data[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		stop()
		return nil, err
	}
	stop()

	stop = timer("merging vertices")
	offsets := make([]int, workers+1)
	for w, p := range parsed {
		offsets[w+1] = offsets[w] + len(p)
	}
	edges := make([]uint64, offsets[workers])
	var cg errgroup.Group
	for w, p := range parsed {
		w, p := w, p
		cg.Go(func() error {
			copy(edges[offsets[w]:offsets[w+1]], p)
			return nil
		})
	}
	_ = cg.Wait()
	stop()

	stop = timer("sorting")
	err = radixSort(ctx, edges, workers)
	stop()
	if err != nil {
		return nil, err
	}

	return edges, nil
}

func noopTimer(string) func() { return func() {} }
