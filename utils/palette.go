package utils

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	if m == PaletteMethodKMeans {
		return "kmeans"
	}
	return "dominantcolor"
}

// ExtractPalette suggests k representative colors for an image, for seeding
// the icon editor's palette from an imported sheet or tile. The kmeans
// method falls back to dominantcolor when it produces nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		slog.Warn("kmeans returned empty palette, falling back to dominantcolor")
	}
	return ExtractDominantPalette(img, k)
}

// ExtractDominantPalette asks dominantcolor for a generous candidate pool
// and thins it down to k diverse entries.
func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	if len(found) == 0 {
		// A gray singleton beats an empty palette for downstream callers.
		found = []dominantcolor.Color{{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		}}
	}
	cands := make([]paletteCandidate, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, paletteCandidate{Color: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return pickDiverse(cands, k)
}

// ExtractKMeansPalette clusters a pixel subsample in RGB space and keeps
// the cluster centers, ordered by population.
func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}

	// Subsample so kmeans stays tractable on large sheets.
	const maxSamples = 12000
	step := 1
	if area := b.Dx() * b.Dy(); area > maxSamples {
		step = int(math.Sqrt(float64(area)/maxSamples)) + 1
	}
	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	cands := make([]paletteCandidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		cands = append(cands, paletteCandidate{Color: col, Weight: max(float64(len(c.Observations)), 1e-6)})
	}
	return pickDiverse(cands, k)
}

// SortPaletteByBrightness orders colors darkest first, so the first entry
// is a natural background choice.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		la := relativeLuminance(a)
		lb := relativeLuminance(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

type paletteCandidate struct {
	Color  colorful.Color
	Weight float64
}

// pickDiverse selects k colors greedily: seed with the heaviest candidate,
// then repeatedly take the candidate maximizing Lab distance to the chosen
// set, softened by its weight so rare outliers do not dominate.
func pickDiverse(cands []paletteCandidate, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	labs := make([][3]float64, len(cands))
	maxW := 0.0
	for i, c := range cands {
		l, a, b := c.Color.Lab()
		labs[i] = [3]float64{l, a, b}
		maxW = max(maxW, c.Weight)
	}
	if maxW <= 0 {
		maxW = 1
	}

	seed := 0
	for i := range cands {
		if cands[i].Weight > cands[seed].Weight {
			seed = i
		}
	}
	chosen := []int{seed}
	taken := make([]bool, len(cands))
	taken[seed] = true

	for len(chosen) < k {
		best, bestScore := -1, -1.0
		for i := range cands {
			if taken[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range chosen {
				d0 := labs[i][0] - labs[s][0]
				d1 := labs[i][1] - labs[s][1]
				d2 := labs[i][2] - labs[s][2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(cands[i].Weight/maxW))
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		chosen = append(chosen, best)
	}

	out := make([]colorful.Color, len(chosen))
	for i, idx := range chosen {
		out[i] = cands[idx].Color
	}
	return out
}
