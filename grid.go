package graphseg

import (
	"image"

	"github.com/disintegration/imaging"
)

// Connectivity selects the pixel neighbourhood of a grid graph.
type Connectivity int

const (
	// Four connects each pixel to its right and lower neighbours.
	Four Connectivity = 4
	// Eight adds the lower-right and upper-right diagonals.
	Eight Connectivity = 8
)

func (c Connectivity) String() string {
	switch c {
	case Four:
		return "grid4"
	case Eight:
		return "grid8"
	default:
		return "invalid"
	}
}

// offsets lists the forward neighbour steps (dx, dy) for c, one per
// unordered pixel pair.
func (c Connectivity) offsets() [][2]int {
	switch c {
	case Four:
		return [][2]int{{1, 0}, {0, 1}}
	case Eight:
		return [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	default:
		return nil
	}
}

// PixelFeatures flattens img into row-major RGB features in [0, 255], three
// values per pixel. Pixel (x, y) relative to the image bounds is vertex
// y*width + x.
func PixelFeatures(img image.Image) (features []float64, width, height int) {
	nrgba := imaging.Clone(img)
	width, height = nrgba.Rect.Dx(), nrgba.Rect.Dy()
	features = make([]float64, width*height*3)
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			base := (y*width + x) * 3
			features[base] = float64(row[x*4])
			features[base+1] = float64(row[x*4+1])
			features[base+2] = float64(row[x*4+2])
		}
	}
	return features, width, height
}

// GridEdges returns the neighbour pairs of a width x height grid. Edges are
// emitted pixel by pixel in row-major order, and for each pixel in the
// order of conn's offsets.
func GridEdges(width, height int, conn Connectivity) ([]Edge, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArgument("grid dimensions must be positive, got %dx%d", width, height)
	}
	offsets := conn.offsets()
	if offsets == nil {
		return nil, invalidArgument("unsupported connectivity %d", int(conn))
	}

	edges := make([]Edge, 0, width*height*len(offsets))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, o := range offsets {
				nx, ny := x+o[0], y+o[1]
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				edges = append(edges, Edge{y*width + x, ny*width + nx})
			}
		}
	}
	return edges, nil
}

// GridGraph builds the neighbour graph of a width x height grid whose
// vertices carry dims features each, weighting every edge by metric.
// numWorkers > 1 computes weights in parallel with identical results.
func GridGraph(features []float64, width, height, dims int, conn Connectivity, metric DistanceMetric, numWorkers int) (Graph, error) {
	if dims <= 0 {
		return Graph{}, invalidArgument("feature dimensionality must be positive, got %d", dims)
	}
	edges, err := GridEdges(width, height, conn)
	if err != nil {
		return Graph{}, err
	}
	if len(features) != width*height*dims {
		return Graph{}, invalidArgument("features length %d does not match %dx%dx%d", len(features), width, height, dims)
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	return Graph{
		NumVertices: width * height,
		Edges:       edges,
		Weights:     computeWeightsParallel(features, dims, edges, metric, numWorkers),
	}, nil
}

// ImageGraph builds the pixel grid graph of img with RGB features.
func ImageGraph(img image.Image, conn Connectivity, metric DistanceMetric, numWorkers int) (Graph, error) {
	features, w, h := PixelFeatures(img)
	return GridGraph(features, w, h, 3, conn, metric, numWorkers)
}
