package graphseg

import (
	"cmp"
	"image"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// featurePoint is a kdtree.Comparable that remembers its vertex id.
type featurePoint struct {
	index  int
	coords []float64
}

func (p featurePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coords[d] - c.(featurePoint).coords[d]
}

func (p featurePoint) Dims() int { return len(p.coords) }

// Distance returns the squared Euclidean distance, as kdtree expects.
func (p featurePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(featurePoint)
	var sum float64
	for i, v := range p.coords {
		d := v - q.coords[i]
		sum += d * d
	}
	return sum
}

type featurePoints []featurePoint

func (p featurePoints) Index(i int) kdtree.Comparable        { return p[i] }
func (p featurePoints) Len() int                             { return len(p) }
func (p featurePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot sorts p along d, breaking coordinate ties by vertex id, and returns
// the median position. The split depends only on the points, so every build
// over the same features yields the same tree and the same search order.
func (p featurePoints) Pivot(d kdtree.Dim) int {
	slices.SortFunc(p, func(a, b featurePoint) int {
		if c := cmp.Compare(a.coords[d], b.coords[d]); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	return len(p) / 2
}

// NearestNeighborGraph connects each of the n points in features (flat
// row-major, dims values per point) to its k nearest neighbours by
// Euclidean distance. Each undirected pair appears once; the weight is the
// distance. Repeated calls on the same features return the same graph. Which
// of several equidistant candidates fills the last neighbour slot is fixed
// by the tree layout.
func NearestNeighborGraph(features []float64, n, dims, k int) (Graph, error) {
	if n <= 0 {
		return Graph{}, invalidArgument("num points must be positive, got %d", n)
	}
	if dims <= 0 {
		return Graph{}, invalidArgument("feature dimensionality must be positive, got %d", dims)
	}
	if len(features) != n*dims {
		return Graph{}, invalidArgument("features length %d does not match n*dims = %d", len(features), n*dims)
	}
	if k < 1 {
		return Graph{}, invalidArgument("k must be >= 1, got %d", k)
	}
	k = min(k, n-1)

	points := make(featurePoints, n)
	for i := range points {
		points[i] = featurePoint{index: i, coords: features[i*dims : (i+1)*dims]}
	}
	// kdtree.New reorders its input, so keep the id-ordered view for queries.
	byIndex := slices.Clone(points)
	tree := kdtree.New(points, false)

	type neighbor struct {
		index int
		dist  float64
	}

	g := Graph{NumVertices: n}
	seen := make(map[Edge]struct{}, n*k)
	found := make([]neighbor, 0, k+1)
	for i := 0; i < n && k > 0; i++ {
		// One extra slot for the query point itself.
		keeper := kdtree.NewNKeeper(k + 1)
		tree.NearestSet(keeper, byIndex[i])

		found = found[:0]
		for _, cd := range keeper.Heap {
			if cd.Comparable == nil {
				continue
			}
			q := cd.Comparable.(featurePoint)
			if q.index == i {
				continue
			}
			found = append(found, neighbor{index: q.index, dist: cd.Dist})
		}
		slices.SortFunc(found, func(a, b neighbor) int {
			if c := cmp.Compare(a.dist, b.dist); c != 0 {
				return c
			}
			return cmp.Compare(a.index, b.index)
		})
		if len(found) > k {
			found = found[:k]
		}

		for _, nb := range found {
			e := Edge{min(i, nb.index), max(i, nb.index)}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			g.Edges = append(g.Edges, e)
			g.Weights = append(g.Weights, math.Sqrt(nb.dist))
		}
	}
	return g, nil
}

// SpatialFeatures returns five features per pixel: x and y scaled by
// spatialScale, followed by RGB in [0, 255]. The result feeds
// NearestNeighborGraph with dims = 5.
func SpatialFeatures(img image.Image, spatialScale float64) (features []float64, width, height int) {
	rgb, width, height := PixelFeatures(img)
	features = make([]float64, width*height*5)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := y*width + x
			features[v*5] = float64(x) * spatialScale
			features[v*5+1] = float64(y) * spatialScale
			copy(features[v*5+2:v*5+5], rgb[v*3:v*3+3])
		}
	}
	return features, width, height
}
