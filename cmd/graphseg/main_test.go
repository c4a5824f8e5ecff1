package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	leftColor  = color.NRGBA{G: 200, A: 255}
	rightColor = color.NRGBA{R: 200, A: 255}
)

// writeTwoTone saves a w x h image, left half leftColor and right half
// rightColor, under dir and returns its path.
func writeTwoTone(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, leftColor)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, rightColor)
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func openNRGBA(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return imaging.Clone(img)
}

func TestSegmentMeanRender(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 20, 10)
	out := filepath.Join(dir, "out.png")

	require.NoError(t, realMain([]string{"--render", "mean", in, out}))

	got := openNRGBA(t, out)
	require.Equal(t, image.Rect(0, 0, 20, 10), got.Bounds())
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			want := leftColor
			if x >= 10 {
				want = rightColor
			}
			assert.Equal(t, want, got.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestSegmentRandomRender(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 16, 8)

	for _, graph := range []string{"grid4", "grid8", "knn"} {
		t.Run(graph, func(t *testing.T) {
			out := filepath.Join(dir, graph+".png")
			require.NoError(t, realMain([]string{"--graph", graph, "--k", "6", "--min-size", "10", in, out}))

			got := openNRGBA(t, out)
			left, right := got.NRGBAAt(0, 0), got.NRGBAAt(15, 7)
			assert.NotEqual(t, left, right)
			for y := 0; y < 8; y++ {
				for x := 0; x < 16; x++ {
					want := left
					if x >= 8 {
						want = right
					}
					assert.Equal(t, want, got.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestSegmentSameSeedSameOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 12, 12)
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")

	require.NoError(t, realMain([]string{"--seed", "7", in, a}))
	require.NoError(t, realMain([]string{"--seed", "7", "--workers", "3", in, b}))
	assert.Equal(t, openNRGBA(t, a).Pix, openNRGBA(t, b).Pix)
}

func TestSegmentErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 4, 4)
	out := filepath.Join(dir, "out.png")

	badConfig := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badConfig, []byte("c = 10.0\nthreshold = 3\n"), 0o600))

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no args", nil, "need INPUT and OUTPUT"},
		{"one arg", []string{in}, "need INPUT and OUTPUT"},
		{"negative c", []string{"--c", "-1", in, out}, "c must be finite"},
		{"unknown graph", []string{"--graph", "hex", in, out}, "graph must be"},
		{"unknown metric", []string{"--metric", "cosine", in, out}, "metric"},
		{"unknown render", []string{"--render", "sepia", in, out}, "render must be"},
		{"bad k", []string{"--graph", "knn", "--k", "0", in, out}, "k must be"},
		{"missing input", []string{filepath.Join(dir, "missing.png"), out}, "opening"},
		{"missing config", []string{"--config", filepath.Join(dir, "none.toml"), in, out}, "reading config"},
		{"unknown config key", []string{"--config", badConfig, in, out}, "unknown keys threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := realMain(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "failed runs must not write output")
}

func TestSegmentEnvOverride(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 4, 4)
	t.Setenv("GRAPHSEG_C", "-3")

	err := realMain([]string{in, filepath.Join(dir, "out.png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got -3")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeTwoTone(t, dir, "one.png", 10, 6),
		writeTwoTone(t, dir, "two.jpg", 8, 8),
		writeTwoTone(t, dir, "three.png", 6, 10),
	}
	outDir := filepath.Join(dir, "out")

	args := append([]string{"batch", "--out-dir", outDir, "--jobs", "2", "--min-size", "5"}, inputs...)
	require.NoError(t, realMain(args))

	for name, size := range map[string]image.Rectangle{
		"one.png":   image.Rect(0, 0, 10, 6),
		"two.png":   image.Rect(0, 0, 8, 8),
		"three.png": image.Rect(0, 0, 6, 10),
	} {
		got := openNRGBA(t, filepath.Join(outDir, name))
		assert.Equal(t, size, got.Bounds(), name)
	}
}

func TestBatchErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTwoTone(t, dir, "in.png", 4, 4)

	err := realMain([]string{"batch", in})
	require.Error(t, err, "out-dir is required")

	err = realMain([]string{"batch", "--out-dir", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one INPUT")

	err = realMain([]string{"batch", "--out-dir", dir, "--jobs", "0", in})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs must be")

	err = realMain([]string{"batch", "--out-dir", filepath.Join(dir, "out"), in, filepath.Join(dir, "missing.png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
}
