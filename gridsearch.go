package stampgrid

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// MaxSearchScale bounds the integer downscale factors tried by SearchGrid.
const MaxSearchScale = 4

// ErrNoGrid is returned when no scale yields any foreground band on both
// axes; the caller must supply manual tile dimensions.
var ErrNoGrid = errors.New("stampgrid: failed to detect grid at any scale")

// ScaleResult pairs the winning detection with the image at the scale it was
// found at. Further processing (auto-crop, slicing) happens on that image.
type ScaleResult struct {
	Scale     int
	Image     image.Image
	Detection GridDetection
}

// SearchGrid runs background estimation and grid detection at downscale
// factors 1 through MaxSearchScale and keeps the combination with the
// highest cols×rows score. Lower scales win ties. Downscaling compensates
// for sheets where noise or partial transparency confuses projection at
// native resolution.
func SearchGrid(img image.Image, tol int) (*ScaleResult, error) {
	var best *ScaleResult
	for scale := 1; scale <= MaxSearchScale; scale++ {
		scaled := img
		if scale > 1 {
			scaled = Downscale(img, scale)
		}
		bg := EstimateBackground(scaled)
		det := DetectGrid(scaled, bg, tol)
		if best == nil || det.Score() > best.Detection.Score() {
			best = &ScaleResult{Scale: scale, Image: scaled, Detection: det}
		}
	}
	if best == nil || best.Detection.Score() == 0 {
		return nil, ErrNoGrid
	}
	return best, nil
}

// DetectAt runs a single-scale detection, for callers that pin the
// downscale factor instead of searching. The factor must lie in
// 1..MaxSearchScale.
func DetectAt(img image.Image, scale, tol int) (*ScaleResult, error) {
	if scale < 1 || scale > MaxSearchScale {
		return nil, fmt.Errorf("stampgrid: downscale factor %d out of range 1-%d", scale, MaxSearchScale)
	}
	scaled := img
	if scale > 1 {
		scaled = Downscale(img, scale)
	}
	bg := EstimateBackground(scaled)
	det := DetectGrid(scaled, bg, tol)
	if det.Score() == 0 {
		return nil, ErrNoGrid
	}
	return &ScaleResult{Scale: scale, Image: scaled, Detection: det}, nil
}

// TileSize estimates a single square tile edge: the median of the spacing
// candidates, else width/cols, else height/rows, else 8.
func (r *ScaleResult) TileSize() int {
	if n := intMedian(r.Detection.Candidates); n > 1 {
		return n
	}
	b := r.Image.Bounds()
	if r.Detection.Cols > 0 {
		if n := b.Dx() / r.Detection.Cols; n > 1 {
			return n
		}
	}
	if r.Detection.Rows > 0 {
		if n := b.Dy() / r.Detection.Rows; n > 1 {
			return n
		}
	}
	return 8
}

// AutoCrop returns the rectangle bounding every detected band start plus one
// tile length on each axis, clamped to the image. Cropping to it removes
// margin noise outside the detected grid.
func (r *ScaleResult) AutoCrop(tileSize int) image.Rectangle {
	b := r.Image.Bounds()
	d := r.Detection
	if len(d.ColStarts) == 0 || len(d.RowStarts) == 0 {
		return b
	}
	left := b.Min.X + d.ColStarts[0]
	top := b.Min.Y + d.RowStarts[0]
	right := b.Min.X + d.ColStarts[len(d.ColStarts)-1] + tileSize
	bottom := b.Min.Y + d.RowStarts[len(d.RowStarts)-1] + tileSize
	return image.Rect(left, top, right, bottom).Intersect(b)
}

// Downscale shrinks the image by an integer factor with nearest-neighbor
// sampling, preserving hard tile edges.
func Downscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := max(1, b.Dx()/factor), max(1, b.Dy()/factor)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
