package graphseg

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// randomGridGraph returns an 8-connected w x h grid graph over random RGB
// features.
func randomGridGraph(tb testing.TB, w, h int, seed int64) Graph {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	features := make([]float64, w*h*3)
	for i := range features {
		features[i] = float64(rng.Intn(256))
	}
	g, err := GridGraph(features, w, h, 3, Eight, EuclideanMetric{}, 1)
	if err != nil {
		tb.Fatalf("GridGraph: %v", err)
	}
	return g
}

func TestGridEdges_FourConnected(t *testing.T) {
	edges, err := GridEdges(3, 2, Four)
	if err != nil {
		t.Fatal(err)
	}
	// 0 1 2
	// 3 4 5
	want := []Edge{{0, 1}, {0, 3}, {1, 2}, {1, 4}, {2, 5}, {3, 4}, {4, 5}}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestGridEdges_EightConnected(t *testing.T) {
	edges, err := GridEdges(2, 2, Eight)
	if err != nil {
		t.Fatal(err)
	}
	// 0 1
	// 2 3
	want := []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 3}, {2, 3}, {2, 1}}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestGridEdges_Counts(t *testing.T) {
	tests := []struct {
		w, h int
		conn Connectivity
		want int
	}{
		{1, 1, Four, 0},
		{1, 1, Eight, 0},
		{5, 1, Four, 4},
		{5, 1, Eight, 4},
		{4, 3, Four, 3*3 + 4*2},
		// horizontal + vertical + two diagonal families
		{4, 3, Eight, 3*3 + 4*2 + 3*2 + 3*2},
	}
	for _, tt := range tests {
		edges, err := GridEdges(tt.w, tt.h, tt.conn)
		if err != nil {
			t.Fatalf("%dx%d %v: %v", tt.w, tt.h, tt.conn, err)
		}
		if len(edges) != tt.want {
			t.Errorf("%dx%d %v: got %d edges, want %d", tt.w, tt.h, tt.conn, len(edges), tt.want)
		}
	}
}

func TestGridEdges_Invalid(t *testing.T) {
	if _, err := GridEdges(0, 3, Four); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero width: got %v, want ErrInvalidArgument", err)
	}
	if _, err := GridEdges(3, 3, Connectivity(6)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("connectivity 6: got %v, want ErrInvalidArgument", err)
	}
}

func TestGridGraph_Weights(t *testing.T) {
	// 1x3 strip with scalar features.
	g, err := GridGraph([]float64{0, 3, 7}, 3, 1, 1, Four, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumVertices != 3 {
		t.Errorf("NumVertices = %d, want 3", g.NumVertices)
	}
	if diff := cmp.Diff([]float64{3, 4}, g.Weights); diff != "" {
		t.Errorf("weights mismatch (-want +got):\n%s", diff)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("grid graph does not validate: %v", err)
	}
}

func TestGridGraph_FeatureLengthMismatch(t *testing.T) {
	_, err := GridGraph([]float64{1, 2}, 3, 1, 1, Four, nil, 1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestPixelFeatures(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 0, A: 255})

	features, w, h := PixelFeatures(img)
	if w != 2 || h != 1 {
		t.Fatalf("size = %dx%d, want 2x1", w, h)
	}
	if diff := cmp.Diff([]float64{10, 20, 30, 200, 100, 0}, features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestPixelFeatures_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(5, 5, color.NRGBA{R: 1, A: 255})
	img.SetNRGBA(6, 5, color.NRGBA{R: 2, A: 255})

	features, w, h := PixelFeatures(img)
	if w != 2 || h != 1 {
		t.Fatalf("size = %dx%d, want 2x1", w, h)
	}
	if features[0] != 1 || features[3] != 2 {
		t.Errorf("features = %v, want red channel 1 then 2", features)
	}
}

func TestImageGraph_TwoColours(t *testing.T) {
	// Left half black, right half white.
	img := twoToneImage(8, 4)
	g, err := ImageGraph(img, Four, EuclideanMetric{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	labels, err := Segment(g.NumVertices, g.Edges, g.Weights, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := 0
			if x >= 4 {
				want = 1
			}
			if got := labels[y*8+x]; got != want {
				t.Errorf("pixel (%d,%d): label %d, want %d", x, y, got, want)
			}
		}
	}
}

func twoToneImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			if x >= w/2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
