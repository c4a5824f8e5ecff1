package graphseg

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// RandomPalette returns k colors drawn from seed. Hues are uniform and
// saturation and value are kept away from grey and black so neighbouring
// regions stay distinguishable. The same seed always gives the same palette.
func RandomPalette(k int, seed int64) []color.Color {
	rng := rand.New(rand.NewSource(seed))
	palette := make([]color.Color, k)
	for i := range palette {
		palette[i] = colorful.Hsv(
			rng.Float64()*360,
			0.45+0.55*rng.Float64(),
			0.55+0.45*rng.Float64(),
		).Clamped()
	}
	return palette
}

// Colorize paints each pixel with palette[labels[y*width+x]].
func Colorize(labels []int, width, height int, palette []color.Color) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArgument("image dimensions must be positive, got %dx%d", width, height)
	}
	if len(labels) != width*height {
		return nil, invalidArgument("%d labels for a %dx%d image", len(labels), width, height)
	}
	colors := make([]color.NRGBA, len(palette))
	for i, c := range palette {
		colors[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	out := imaging.New(width, height, color.NRGBA{})
	for v, l := range labels {
		if l < 0 || l >= len(colors) {
			return nil, outOfRange("label %d at pixel %d not in palette of %d colors", l, v, len(colors))
		}
		out.SetNRGBA(v%width, v/width, colors[l])
	}
	return out, nil
}

// MeanColor paints each region of img with the average colour of its
// pixels. labels must come from a segmentation of img's pixel grid.
func MeanColor(labels []int, img image.Image) (*image.NRGBA, error) {
	features, width, height := PixelFeatures(img)
	if len(labels) != width*height {
		return nil, invalidArgument("%d labels for a %dx%d image", len(labels), width, height)
	}

	k := 0
	for v, l := range labels {
		if l < 0 {
			return nil, outOfRange("negative label %d at pixel %d", l, v)
		}
		k = max(k, l+1)
	}
	sums := make([][3]float64, k)
	counts := make([]int, k)
	for v, l := range labels {
		sums[l][0] += features[v*3]
		sums[l][1] += features[v*3+1]
		sums[l][2] += features[v*3+2]
		counts[l]++
	}

	palette := make([]color.Color, k)
	for l := range palette {
		if counts[l] == 0 {
			palette[l] = color.NRGBA{}
			continue
		}
		n := float64(counts[l])
		palette[l] = color.NRGBA{
			R: uint8(math.Round(sums[l][0] / n)),
			G: uint8(math.Round(sums[l][1] / n)),
			B: uint8(math.Round(sums[l][2] / n)),
			A: 0xff,
		}
	}
	return Colorize(labels, width, height, palette)
}
