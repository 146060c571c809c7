package loader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	radixBits   = 8
	radixBuckets = 1 << radixBits
	radixMask   = radixBuckets - 1
	radixPasses = 64 / radixBits
)

// radixSort sorts edges in place as unsigned 64-bit keys using an 8-bit,
// least-significant-digit radix sort. Sorting the packed (from<<32|to) key
// directly orders edges by source vertex, then by destination vertex within
// a source, which is exactly the order the graph builder needs to carve
// contiguous per-vertex adjacency ranges without a secondary comparator.
//
// The counting phase of each pass is parallelized across workers; the
// scatter phase is inherently sequential (each bucket's write cursor depends
// on every worker's partial counts), so it runs on a single goroutine.
func radixSort(ctx context.Context, edges []uint64, workers int) error {
	if len(edges) < 2 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	buf := make([]uint64, len(edges))
	src, dst := edges, buf

	for pass := 0; pass < radixPasses; pass++ {
		shift := uint(pass * radixBits)

		counts, err := countDigits(ctx, src, shift, workers)
		if err != nil {
			return err
		}

		var total int
		offsets := [radixBuckets]int{}
		for b := 0; b < radixBuckets; b++ {
			offsets[b] = total
			total += counts[b]
		}

		cursor := offsets
		for _, v := range src {
			digit := int((v >> shift) & radixMask)
			dst[cursor[digit]] = v
			cursor[digit]++
		}

		src, dst = dst, src
	}

	// radixPasses is even, so src already aliases the caller's backing array
	// after the final swap; nothing further to copy.
	if &src[0] != &edges[0] {
		copy(edges, src)
	}
	return nil
}

// countDigits computes, for each of the 256 possible byte values of the
// digit selected by shift, how many elements of src have that digit. Work is
// split across workers and the per-worker histograms are summed afterward.
func countDigits(ctx context.Context, src []uint64, shift uint, workers int) ([radixBuckets]int, error) {
	var total [radixBuckets]int
	if workers <= 1 || len(src) < workers {
		for _, v := range src {
			total[(v>>shift)&radixMask]++
		}
		return total, nil
	}

	partials := make([][radixBuckets]int, workers)
	points := lineSplitPointsEven(len(src), workers)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := points[w], points[w+1]
		g.Go(func() error {
			var local [radixBuckets]int
			for _, v := range src[lo:hi] {
				local[(v>>shift)&radixMask]++
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return total, err
	}

	for _, p := range partials {
		for b := 0; b < radixBuckets; b++ {
			total[b] += p[b]
		}
	}
	return total, nil
}

// lineSplitPointsEven divides [0, n) into workers contiguous ranges of
// near-equal size. Unlike lineSplitPoints it has no notion of line
// boundaries; it is used for splitting an in-memory uint64 slice for the
// counting pass.
func lineSplitPointsEven(n, workers int) []int {
	points := make([]int, workers+1)
	for i := 0; i <= workers; i++ {
		points[i] = n / workers * i
	}
	points[workers] = n
	return points
}
