package stampgrid

import "image"

// TileGeometry describes how a sheet decomposes into tiles. Always derived
// from an image plus a guessed or user-supplied tile size, never stored.
type TileGeometry struct {
	TileWidth  int
	TileHeight int
	Cols       int
	Rows       int
}

// CropRect is an optional whole-sheet crop in sheet-pixel coordinates,
// applied once before slicing. It is ignored unless Right > Left and
// Bottom > Top.
type CropRect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Valid reports whether the rectangle describes a usable crop.
func (r CropRect) Valid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

// ApplyCrop crops the image to r, clamped to its bounds. Invalid rectangles
// are treated as absent and return the image unchanged.
func ApplyCrop(img image.Image, r CropRect) image.Image {
	if !r.Valid() {
		return img
	}
	b := img.Bounds()
	rect := image.Rect(b.Min.X+r.Left, b.Min.Y+r.Top, b.Min.X+r.Right, b.Min.Y+r.Bottom).Intersect(b)
	if rect.Empty() {
		return img
	}
	return cropImage(img, rect)
}

// Slice cuts the sheet into a cols×rows grid of tw×th tiles using floor
// division. Remainder strips on the right and bottom are silently dropped.
// Tiles are returned row-major.
func Slice(img image.Image, tw, th int) ([]image.Image, TileGeometry) {
	geom := TileGeometry{TileWidth: tw, TileHeight: th}
	if tw <= 0 || th <= 0 {
		return nil, geom
	}
	b := img.Bounds()
	geom.Cols = b.Dx() / tw
	geom.Rows = b.Dy() / th
	if geom.Cols <= 0 || geom.Rows <= 0 {
		return nil, geom
	}
	tiles := make([]image.Image, 0, geom.Cols*geom.Rows)
	for r := 0; r < geom.Rows; r++ {
		for c := 0; c < geom.Cols; c++ {
			rect := image.Rect(
				b.Min.X+c*tw,
				b.Min.Y+r*th,
				b.Min.X+c*tw+tw,
				b.Min.Y+r*th+th,
			)
			tiles = append(tiles, cropImage(img, rect))
		}
	}
	return tiles, geom
}

type subImager interface {
	image.Image
	SubImage(r image.Rectangle) image.Image
}

// cropImage prefers the decoder's zero-copy SubImage and falls back to an
// NRGBA copy for image types without one.
func cropImage(img image.Image, rect image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			dst.SetNRGBA(x, y, nrgbaAt(img, rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return dst
}
