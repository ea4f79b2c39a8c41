package stampgrid

import (
	"errors"
	"image"
	"testing"
)

// insetSheet builds a white sheet with cols×rows red squares, each inset
// by margin inside its tileSize cell, plus trailing sheet margin so the
// auto-crop keeps whole tiles.
func insetSheet(cols, rows, tileSize, margin int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols*tileSize+2*margin, rows*tileSize+2*margin))
	fill(img, white)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0 := c*tileSize + margin
			y0 := r*tileSize + margin
			fillRect(img, image.Rect(x0, y0, x0+tileSize-2*margin, y0+tileSize-2*margin), red)
		}
	}
	return img
}

func TestSearchGrid(t *testing.T) {
	img := gridSheet(2, 2, 32)
	res, err := SearchGrid(img, DefaultTolerance)
	if err != nil {
		t.Fatalf("SearchGrid: %v", err)
	}
	if res.Detection.Cols != 2 || res.Detection.Rows != 2 {
		t.Errorf("grid = %dx%d, want 2x2", res.Detection.Cols, res.Detection.Rows)
	}
	if res.Scale != 1 {
		t.Errorf("scale = %d, want 1 (ties resolve to the lowest scale)", res.Scale)
	}
	if got := res.TileSize(); got != 32 {
		t.Errorf("TileSize = %d, want 32", got)
	}
}

func TestSearchGridMonotonicAcceptance(t *testing.T) {
	img := insetSheet(2, 2, 32, 2)
	best, err := SearchGrid(img, DefaultTolerance)
	if err != nil {
		t.Fatalf("SearchGrid: %v", err)
	}
	// The selected scale's score is never below any individual scale's.
	for scale := 1; scale <= MaxSearchScale; scale++ {
		scaled := Downscale(img, scale)
		det := DetectGrid(scaled, EstimateBackground(scaled), DefaultTolerance)
		if det.Score() > best.Detection.Score() {
			t.Errorf("scale %d scores %d, above selected %d", scale, det.Score(), best.Detection.Score())
		}
	}
}

func TestSearchGridDegenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 48, 48))
	fill(img, white)
	if _, err := SearchGrid(img, DefaultTolerance); !errors.Is(err, ErrNoGrid) {
		t.Errorf("SearchGrid on uniform sheet = %v, want ErrNoGrid", err)
	}
}

func TestDetectAt(t *testing.T) {
	img := gridSheet(2, 2, 32)
	res, err := DetectAt(img, 1, DefaultTolerance)
	if err != nil {
		t.Fatalf("DetectAt: %v", err)
	}
	if res.Detection.Cols != 2 || res.Detection.Rows != 2 {
		t.Errorf("grid = %dx%d, want 2x2", res.Detection.Cols, res.Detection.Rows)
	}

	blank := image.NewNRGBA(image.Rect(0, 0, 48, 48))
	fill(blank, white)
	if _, err := DetectAt(blank, 2, DefaultTolerance); !errors.Is(err, ErrNoGrid) {
		t.Errorf("DetectAt on uniform sheet = %v, want ErrNoGrid", err)
	}
}

func TestDetectAtScaleRange(t *testing.T) {
	img := gridSheet(2, 2, 32)
	if _, err := DetectAt(img, 0, DefaultTolerance); err == nil {
		t.Error("factor below 1 should fail")
	}
	if _, err := DetectAt(img, MaxSearchScale+1, DefaultTolerance); err == nil {
		t.Error("factor above MaxSearchScale should fail")
	}
}

func TestTileSizeFallbacks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	res := &ScaleResult{
		Scale:     1,
		Image:     img,
		Detection: GridDetection{Cols: 4, Rows: 3},
	}
	// No candidates: width/cols.
	if got := res.TileSize(); got != 16 {
		t.Errorf("TileSize = %d, want 16", got)
	}
	res.Detection.Candidates = []int{24, 24, 32}
	if got := res.TileSize(); got != 24 {
		t.Errorf("TileSize with candidates = %d, want 24", got)
	}
	// Nothing usable at all: constant fallback.
	empty := &ScaleResult{Scale: 1, Image: image.NewNRGBA(image.Rect(0, 0, 1, 1)), Detection: GridDetection{}}
	if got := empty.TileSize(); got != 8 {
		t.Errorf("TileSize fallback = %d, want 8", got)
	}
}

func TestAutoCrop(t *testing.T) {
	img := insetSheet(2, 2, 32, 2)
	res, err := SearchGrid(img, DefaultTolerance)
	if err != nil {
		t.Fatalf("SearchGrid: %v", err)
	}
	size := res.TileSize()
	if size != 32 {
		t.Fatalf("TileSize = %d, want 32", size)
	}
	crop := res.AutoCrop(size)
	// Starts at the first content offset and spans two tile lengths.
	want := image.Rect(2, 2, 66, 66)
	if crop != want {
		t.Errorf("AutoCrop = %v, want %v", crop, want)
	}
}

func TestDownscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 40))
	fill(img, red)
	half := Downscale(img, 2)
	if b := half.Bounds(); b.Dx() != 32 || b.Dy() != 20 {
		t.Errorf("Downscale(2) bounds = %v, want 32x20", b)
	}
	same := Downscale(img, 1)
	if same != image.Image(img) {
		t.Error("Downscale(1) should return the input unchanged")
	}
}
