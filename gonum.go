package graphseg

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
)

// FromWeightedUndirected converts a gonum weighted undirected graph into a
// segmentation input. Vertices are numbered by ascending node ID; ids[v] is
// the node ID of vertex v. Each undirected edge is emitted once, ordered by
// its lower endpoint and then by the neighbour's vertex number. Self loops
// are dropped.
func FromWeightedUndirected(g graph.WeightedUndirected) (Graph, []int64, error) {
	nodes := graph.NodesOf(g.Nodes())
	if len(nodes) == 0 {
		return Graph{}, nil, invalidArgument("graph has no nodes")
	}
	slices.SortFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.ID(), b.ID()) })

	ids := make([]int64, len(nodes))
	vertexOf := make(map[int64]int, len(nodes))
	for v, n := range nodes {
		ids[v] = n.ID()
		vertexOf[n.ID()] = v
	}

	out := Graph{NumVertices: len(nodes)}
	neighbors := make([]int, 0)
	for u, n := range nodes {
		neighbors = neighbors[:0]
		for _, m := range graph.NodesOf(g.From(n.ID())) {
			if v := vertexOf[m.ID()]; v > u {
				neighbors = append(neighbors, v)
			}
		}
		slices.Sort(neighbors)
		for _, v := range neighbors {
			e := g.WeightedEdgeBetween(ids[u], ids[v])
			out.Edges = append(out.Edges, Edge{u, v})
			out.Weights = append(out.Weights, e.Weight())
		}
	}
	return out, ids, nil
}
