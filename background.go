// Package stampgrid infers the tile structure of unlabeled sprite sheets and
// slices them into per-tile images: background-color estimation, grid-line
// projection analysis, multi-scale grid search, tile slicing and per-tile
// content cropping. All functions operate on in-memory images; the Import
// entry point adds StampFile persistence on top.
package stampgrid

import (
	"image"
	"image/color"
)

// EstimateBackground infers the sheet background color by sampling the four
// corners and the midpoints of each edge (8 points, clamped to bounds) and
// taking the most frequent exact value. Ties resolve to the first-seen
// color, which is arbitrary but deterministic. An empty image yields opaque
// white.
func EstimateBackground(img image.Image) color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	xs := []int{0, w - 1, 0, w - 1, w / 2, w / 2, 0, w - 1}
	ys := []int{0, 0, h - 1, h - 1, 0, h - 1, h / 2, h / 2}
	samples := make([]color.NRGBA, 0, len(xs))
	for i := range xs {
		samples = append(samples, nrgbaAt(img, b.Min.X+xs[i], b.Min.Y+ys[i]))
	}
	return modeColor(samples)
}

// borderBackground takes the mode over every border pixel, not just the 8
// estimator samples. The per-tile cropper uses it so thin decorations at a
// single corner do not skew the estimate.
func borderBackground(img image.Image) color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	samples := make([]color.NRGBA, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		samples = append(samples, nrgbaAt(img, b.Min.X+x, b.Min.Y))
		if h > 1 {
			samples = append(samples, nrgbaAt(img, b.Min.X+x, b.Max.Y-1))
		}
	}
	for y := 1; y < h-1; y++ {
		samples = append(samples, nrgbaAt(img, b.Min.X, b.Min.Y+y))
		if w > 1 {
			samples = append(samples, nrgbaAt(img, b.Max.X-1, b.Min.Y+y))
		}
	}
	return modeColor(samples)
}

func modeColor(samples []color.NRGBA) color.NRGBA {
	if len(samples) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	counts := make(map[color.NRGBA]int, len(samples))
	best := samples[0]
	bestN := 0
	for _, s := range samples {
		counts[s]++
		if counts[s] > bestN {
			bestN = counts[s]
			best = s
		}
	}
	return best
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// colorDiffers reports whether two colors differ beyond the per-channel
// tolerance, measured as squared RGBA distance against tol².
func colorDiffers(a, b color.NRGBA, tol int) bool {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	da := int(a.A) - int(b.A)
	return dr*dr+dg*dg+db*db+da*da > tol*tol
}
