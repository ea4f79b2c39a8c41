package stampgrid

import (
	"image"
	"image/color"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DefaultTolerance is the per-channel color tolerance used when comparing
// pixels against the estimated background.
const DefaultTolerance = 16

// GridDetection is the result of projection analysis on one image: the
// rising-edge start offsets of foreground bands on each axis and the tile
// size candidates inferred from their spacing.
type GridDetection struct {
	ColStarts  []int
	RowStarts  []int
	Candidates []int
	Cols       int
	Rows       int
}

// Score is the grid plausibility metric: detected cols × rows.
func (d GridDetection) Score() int {
	return d.Cols * d.Rows
}

// DetectGrid computes per-row and per-column foreground projections against
// the background color and locates candidate tile boundaries. The band
// threshold is 2% of the orthogonal dimension, at least 1.
func DetectGrid(img image.Image, bg color.NRGBA, tol int) GridDetection {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowProj := make([]int, h)
	colProj := make([]int, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if colorDiffers(nrgbaAt(img, b.Min.X+x, b.Min.Y+y), bg, tol) {
				rowProj[y]++
				colProj[x]++
			}
		}
	}

	rowThresh := max(1, w*2/100)
	colThresh := max(1, h*2/100)
	rowStarts := bandStarts(rowProj, rowThresh)
	colStarts := bandStarts(colProj, colThresh)

	d := GridDetection{
		ColStarts: colStarts,
		RowStarts: rowStarts,
		Cols:      len(colStarts),
		Rows:      len(rowStarts),
	}
	d.Candidates = spacingCandidates(colStarts, rowStarts)
	return d
}

// bandStarts records the index of each rising edge: positions where the
// projection climbs above the threshold after being below it. Band extents
// are not tracked, only starts.
func bandStarts(proj []int, thresh int) []int {
	var starts []int
	inBand := false
	for i, v := range proj {
		if v >= thresh {
			if !inBand {
				starts = append(starts, i)
				inBand = true
			}
		} else {
			inBand = false
		}
	}
	return starts
}

// spacingCandidates derives tile size guesses from consecutive differences
// between band starts: the GCD of the spacings when it exceeds 1, and the
// median spacing, unioned across both axes with duplicates suppressed.
// Values of 1 or less are dropped; partial detections on one axis still
// contribute through the other.
func spacingCandidates(colStarts, rowStarts []int) []int {
	var out []int
	for _, starts := range [][]int{colStarts, rowStarts} {
		spacings := consecutiveDiffs(starts)
		if len(spacings) == 0 {
			continue
		}
		g := spacings[0]
		for _, s := range spacings[1:] {
			g = gcd(g, s)
		}
		if g > 1 && !slices.Contains(out, g) {
			out = append(out, g)
		}
		if m := intMedian(spacings); m > 1 && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

func consecutiveDiffs(starts []int) []int {
	if len(starts) < 2 {
		return nil
	}
	diffs := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		diffs = append(diffs, starts[i]-starts[i-1])
	}
	return diffs
}

func intMedian(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	fs := make([]float64, len(vals))
	for i, v := range vals {
		fs[i] = float64(v)
	}
	slices.Sort(fs)
	return int(stat.Quantile(0.5, stat.Empirical, fs, nil))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
