package graphseg

import (
	"cmp"
	"slices"
)

// EdgeOrder returns the edge indices sorted by ascending weight. Ties keep
// their original index order, so the result is reproducible for identical
// input.
func EdgeOrder(weights []float64) []int {
	order := identity(len(weights))
	sortRun(order, weights)
	return order
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func sortRun(run []int, weights []float64) {
	slices.SortStableFunc(run, func(a, b int) int {
		return cmp.Compare(weights[a], weights[b])
	})
}

// mergeRuns merges two sorted runs into dst using the same ordering as
// sortRun, NaN first. Every index in left is smaller than every index in
// right, so preferring left on equal weights preserves the index tie-break.
func mergeRuns(dst, left, right []int, weights []float64) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp.Less(weights[right[j]], weights[left[i]]) {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
