package graphseg

import "sync"

// minParallelEdges is the edge count below which EdgeOrderParallel sorts on
// the calling goroutine.
const minParallelEdges = 1 << 14

// EdgeOrderParallel computes the same permutation as EdgeOrder using
// multiple goroutines. Contiguous index ranges are sorted independently and
// then merged pairwise. numWorkers controls the degree of parallelism; if
// <= 1, or the input is small, it falls back to EdgeOrder.
//
// The result is identical to EdgeOrder for every input and worker count.
func EdgeOrderParallel(weights []float64, numWorkers int) []int {
	m := len(weights)
	if numWorkers <= 1 || m < minParallelEdges {
		return EdgeOrder(weights)
	}

	order := identity(m)
	runLen := (m + numWorkers - 1) / numWorkers

	// Sort each run in place. Runs don't overlap, so no synchronization is
	// needed for writes.
	var wg sync.WaitGroup
	for start := 0; start < m; start += runLen {
		end := min(start+runLen, m)
		wg.Add(1)
		go func(run []int) {
			defer wg.Done()
			sortRun(run, weights)
		}(order[start:end])
	}
	wg.Wait()

	// Merge adjacent runs, doubling the run length each round. Each merge
	// within a round touches a disjoint range of src and dst.
	buf := make([]int, m)
	src, dst := order, buf
	for ; runLen < m; runLen *= 2 {
		for start := 0; start < m; start += 2 * runLen {
			mid := min(start+runLen, m)
			end := min(start+2*runLen, m)
			wg.Add(1)
			go func(start, mid, end int) {
				defer wg.Done()
				mergeRuns(dst[start:end], src[start:mid], src[mid:end], weights)
			}(start, mid, end)
		}
		wg.Wait()
		src, dst = dst, src
	}
	return src
}

// computeWeightsParallel fills weights[i] = metric(features of edges[i])
// using multiple goroutines over contiguous edge ranges. The result is
// bitwise identical to the sequential loop.
func computeWeightsParallel(features []float64, dims int, edges []Edge, metric DistanceMetric, numWorkers int) []float64 {
	weights := make([]float64, len(edges))
	fill := func(start, end int) {
		for i := start; i < end; i++ {
			u, v := edges[i][0], edges[i][1]
			weights[i] = metric.Distance(features[u*dims:(u+1)*dims], features[v*dims:(v+1)*dims])
		}
	}

	if numWorkers <= 1 || len(edges) < minParallelEdges {
		fill(0, len(edges))
		return weights
	}

	var wg sync.WaitGroup
	perWorker := (len(edges) + numWorkers - 1) / numWorkers
	for start := 0; start < len(edges); start += perWorker {
		end := min(start+perWorker, len(edges))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fill(start, end)
		}(start, end)
	}
	wg.Wait()
	return weights
}
