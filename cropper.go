package stampgrid

import (
	"image"
	"image/color"
)

// Cropper defaults. Tolerance is the per-channel color distance to the
// inferred tile background; AlphaThreshold is the minimum alpha for a pixel
// to count as content on alpha-capable tiles.
const (
	DefaultCropTolerance  = 16
	DefaultAlphaThreshold = 16
)

// ContentBounds finds the minimal bounding box of non-background content in
// a tile. A tile is cropped by alpha when its format carries an alpha
// channel and the 4x4 top-left corner patch holds a pixel with alpha below
// 255; the box then spans every pixel with alpha at or above alphaThresh.
// Otherwise a per-tile border background estimate and a squared
// color-distance test decide content. The returned rectangle is in the
// tile's own coordinate space and clamped to its bounds. ok is false when
// the tile has no content at all.
func ContentBounds(tile image.Image, tol, alphaThresh int) (bounds image.Rectangle, ok bool) {
	if tol <= 0 {
		tol = DefaultCropTolerance
	}
	if alphaThresh <= 0 {
		alphaThresh = DefaultAlphaThreshold
	}
	b := tile.Bounds()
	if b.Empty() {
		return image.Rectangle{}, false
	}

	var isContent func(x, y int) bool
	if alphaContent(tile) {
		isContent = func(x, y int) bool {
			return int(nrgbaAt(tile, x, y).A) >= alphaThresh
		}
	} else {
		bg := borderBackground(tile)
		isContent = func(x, y int) bool {
			return colorDiffers(nrgbaAt(tile, x, y), bg, tol)
		}
	}

	left, top := b.Max.X, b.Max.Y
	right, bottom := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isContent(x, y) {
				continue
			}
			left = min(left, x)
			right = max(right, x)
			top = min(top, y)
			bottom = max(bottom, y)
		}
	}
	if right < left || bottom < top {
		return image.Rectangle{}, false
	}
	// Inclusive indices to exclusive rectangle.
	return image.Rect(left, top, right+1, bottom+1).Intersect(b), true
}

// CropContent crops the tile to its content bounding box. ok is false and
// the tile is returned unchanged when no content is found.
func CropContent(tile image.Image, tol, alphaThresh int) (image.Image, bool) {
	bounds, ok := ContentBounds(tile, tol, alphaThresh)
	if !ok {
		return tile, false
	}
	if bounds == tile.Bounds() {
		return tile, true
	}
	return cropImage(tile, bounds), true
}

// alphaContent reports whether cropping should key on alpha. Decoders hand
// back alpha-capable types for fully opaque images too (png gives
// *image.RGBA for opaque truecolor), so the corner patch is probed for
// actual transparency instead of trusting the pixel format alone.
func alphaContent(tile image.Image) bool {
	if !hasAlphaChannel(tile) {
		return false
	}
	b := tile.Bounds()
	for y := b.Min.Y; y < min(b.Min.Y+4, b.Max.Y); y++ {
		for x := b.Min.X; x < min(b.Min.X+4, b.Max.X); x++ {
			if nrgbaAt(tile, x, y).A < 0xff {
				return true
			}
		}
	}
	return false
}

// hasAlphaChannel reports whether the tile's pixel format can carry alpha
// at all. Formats that cannot (Gray, YCbCr, CMYK) always take the opaque
// branch.
func hasAlphaChannel(img image.Image) bool {
	switch m := img.ColorModel(); m {
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model, color.AlphaModel, color.Alpha16Model:
		return true
	default:
		if p, okP := m.(color.Palette); okP {
			for _, c := range p {
				if _, _, _, a := c.RGBA(); a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}
