package stampgrid

import (
	"image"
	"testing"
)

func TestSliceExact(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 96, 64))
	fill(img, red)
	tiles, geom := Slice(img, 32, 32)
	if geom.Cols != 3 || geom.Rows != 2 {
		t.Fatalf("geometry = %dx%d, want 3x2", geom.Cols, geom.Rows)
	}
	if len(tiles) != 6 {
		t.Fatalf("got %d tiles, want 6", len(tiles))
	}
	// Row-major, no gaps, no overlap: tile i covers exactly its cell.
	for i, tile := range tiles {
		r, c := i/geom.Cols, i%geom.Cols
		want := image.Rect(c*32, r*32, c*32+32, r*32+32)
		if tile.Bounds() != want {
			t.Errorf("tile %d bounds = %v, want %v", i, tile.Bounds(), want)
		}
	}
}

func TestSliceRemainderDropped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 70, 50))
	tiles, geom := Slice(img, 32, 32)
	if geom.Cols != 2 || geom.Rows != 1 {
		t.Fatalf("geometry = %dx%d, want 2x1", geom.Cols, geom.Rows)
	}
	if len(tiles) != 2 {
		t.Errorf("got %d tiles, want 2", len(tiles))
	}
}

func TestSliceDegenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	tests := []struct {
		name   string
		tw, th int
	}{
		{"zero width", 0, 8},
		{"zero height", 8, 0},
		{"tile larger than sheet", 32, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles, _ := Slice(img, tt.tw, tt.th)
			if len(tiles) != 0 {
				t.Errorf("got %d tiles, want 0", len(tiles))
			}
		})
	}
}

func TestApplyCrop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill(img, white)
	fillRect(img, image.Rect(10, 10, 20, 20), red)

	cropped := ApplyCrop(img, CropRect{Left: 10, Top: 10, Right: 30, Bottom: 40})
	if b := cropped.Bounds(); b.Dx() != 20 || b.Dy() != 30 {
		t.Errorf("cropped bounds = %v, want 20x30", b)
	}
	if got := nrgbaAt(cropped, cropped.Bounds().Min.X, cropped.Bounds().Min.Y); got != red {
		t.Errorf("cropped origin pixel = %v, want red", got)
	}
}

func TestApplyCropInvalid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	tests := []struct {
		name string
		rect CropRect
	}{
		{"inverted x", CropRect{Left: 30, Top: 0, Right: 10, Bottom: 40}},
		{"inverted y", CropRect{Left: 0, Top: 40, Right: 30, Bottom: 10}},
		{"zero area", CropRect{Left: 5, Top: 5, Right: 5, Bottom: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyCrop(img, tt.rect); got != image.Image(img) {
				t.Error("invalid crop should return the image unchanged")
			}
		})
	}
}

func TestApplyCropClamped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	cropped := ApplyCrop(img, CropRect{Left: 16, Top: 16, Right: 100, Bottom: 100})
	if b := cropped.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("clamped crop bounds = %v, want 16x16", b)
	}
}
