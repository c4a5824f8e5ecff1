// Package graphseg implements efficient graph-based segmentation: the greedy
// region-merging algorithm of Felzenszwalb and Huttenlocher.
//
// The input is a weighted graph whose edge weights measure dissimilarity
// between neighbouring vertices (typically pixels). Edges are visited in
// increasing weight order and two components are merged when the connecting
// edge is no heavier than either component's internal-variation threshold.
// The threshold of a component relaxes with its size, so small components
// merge easily while large ones need a weak boundary.
//
// Basic usage:
//
//	labels, err := graphseg.Segment(n, edges, weights, 500, 50)
//	// labels[v] is the zero-based cluster id of vertex v
//
// For images:
//
//	g, err := graphseg.ImageGraph(img, graphseg.Eight, graphseg.EuclideanMetric{}, 0)
//	cfg := graphseg.DefaultConfig()
//	cfg.C = 300
//	result, err := graphseg.SegmentGraph(g, cfg)
//	out, err := graphseg.Colorize(result.Labels, w, h, graphseg.RandomPalette(result.NumClusters, 1))
//
// # Passes
//
// SegmentGraph runs three sequential passes over a private [Forest]:
//
//   - adaptive merge: threshold-gated union in sorted edge order
//   - small-region elimination: when MinSize > 0, any edge touching a
//     component smaller than MinSize is merged unconditionally
//   - relabel: roots are numbered 0..K-1 in order of first appearance while
//     sweeping vertex ids
//
// Each call allocates its own forest, so concurrent calls on different graphs
// need no synchronization.
package graphseg
