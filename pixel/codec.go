package pixel

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// FromImage converts a raster image to a grid, one cell per pixel.
// Alpha 0 maps to a transparent cell, alpha 255 to #RRGGBB, anything in
// between to #RRGGBBAA. No resizing happens here; see FromImageResized.
func FromImage(img image.Image) Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	g := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			g[y][x] = CellOf(c)
		}
	}
	return g
}

// FromImageResized resamples the image to size×size with Lanczos3 before
// conversion. Used for fixed-size icons where the source may be any size.
func FromImageResized(img image.Image, size int) Grid {
	if size <= 0 {
		return Grid{}
	}
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		img = resize.Resize(uint(size), uint(size), img, resize.Lanczos3)
	}
	return FromImage(img)
}

// ToImage renders the grid as an NRGBA image. Transparent cells become
// (0,0,0,0). Returns ErrRagged for non-rectangular grids and a parse error
// for the first malformed cell.
func ToImage(g Grid) (*image.NRGBA, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	w, h := g.Size()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := g[y][x].Color()
			if err != nil {
				return nil, err
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}
