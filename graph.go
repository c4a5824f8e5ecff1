package graphseg

import "math"

// Edge is an unordered pair of vertex ids. Its identity is its index in
// Graph.Edges.
type Edge [2]int

// Graph is the input to segmentation: a vertex count plus parallel edge and
// weight arrays. Weights are dissimilarities; lower means more alike.
type Graph struct {
	NumVertices int
	Edges       []Edge
	Weights     []float64
}

// NumEdges returns the number of edges.
func (g Graph) NumEdges() int { return len(g.Edges) }

// Validate checks that g is a well-formed segmentation input: a positive
// vertex count, one finite weight per edge, and endpoints in [0, NumVertices).
func (g Graph) Validate() error {
	if g.NumVertices <= 0 {
		return invalidArgument("num vertices must be positive, got %d", g.NumVertices)
	}
	if len(g.Edges) != len(g.Weights) {
		return invalidArgument("%d edges but %d weights", len(g.Edges), len(g.Weights))
	}
	for i, w := range g.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return invalidArgument("weight of edge %d is not finite: %v", i, w)
		}
	}
	for i, e := range g.Edges {
		for _, v := range e {
			if v < 0 || v >= g.NumVertices {
				return outOfRange("edge %d endpoint %d not in [0, %d)", i, v, g.NumVertices)
			}
		}
	}
	return nil
}
