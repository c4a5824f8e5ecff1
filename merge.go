package graphseg

// mergeAdaptive runs the threshold-gated pass. Edges are visited in order;
// an edge joins two components only if its weight is within both
// thresholds, after which the survivor's threshold becomes
// w + thresholdFn(size, c). Rejected edges are never revisited.
// Returns the number of merges performed.
func mergeAdaptive(f *Forest, g Graph, order []int, c float64, thresholdFn ThresholdFunc) int {
	merges := 0
	for _, p := range order {
		a := f.find(g.Edges[p][0])
		b := f.find(g.Edges[p][1])
		if a == b {
			continue
		}
		w := g.Weights[p]
		if w > f.threshold[a] || w > f.threshold[b] {
			continue
		}
		r := f.union(a, b)
		f.threshold[r] = w + thresholdFn(f.size[r], c)
		merges++
	}
	return merges
}

// mergeSmall revisits the edges in the same order and unconditionally joins
// the endpoints' components when either has fewer than minSize vertices.
// Thresholds are not consulted or updated. Returns the number of merges.
func mergeSmall(f *Forest, g Graph, order []int, minSize int) int {
	merges := 0
	for _, p := range order {
		a := f.find(g.Edges[p][0])
		b := f.find(g.Edges[p][1])
		if a == b {
			continue
		}
		if f.size[a] < minSize || f.size[b] < minSize {
			f.union(a, b)
			merges++
		}
	}
	return merges
}
