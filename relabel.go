package graphseg

// relabel sweeps vertices 0..n-1 and numbers each root the first time it is
// reached. Returns the per-vertex cluster ids and the size of each cluster.
func relabel(f *Forest) (labels, sizes []int) {
	n := f.Len()
	labels = make([]int, n)
	// clusterOf[root] is the id given to root, -1 until assigned.
	clusterOf := make([]int, n)
	for i := range clusterOf {
		clusterOf[i] = -1
	}
	sizes = make([]int, 0, f.NumSets())

	for v := 0; v < n; v++ {
		root := f.find(v)
		id := clusterOf[root]
		if id == -1 {
			id = len(sizes)
			clusterOf[root] = id
			sizes = append(sizes, f.size[root])
		}
		labels[v] = id
	}
	return labels, sizes
}
