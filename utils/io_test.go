package utils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestSaveReadImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	img.SetNRGBA(3, 2, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SaveImage(img, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	back, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if b := back.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
	r, _, _, a := back.At(3, 2).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("pixel (3,2) = r %d a %d, want opaque red", r, a)
	}
}

func TestReadImageMissing(t *testing.T) {
	if _, err := ReadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestReadImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImage(path); err == nil {
		t.Error("non-image file should fail to decode")
	}
}

func TestSavePalette(t *testing.T) {
	palette := []colorful.Color{{R: 1}, {G: 1}, {B: 1}}
	path := filepath.Join(t.TempDir(), "palette.png")
	if err := SavePalette(palette, 16, path); err != nil {
		t.Fatalf("SavePalette: %v", err)
	}
	img, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 16 {
		t.Errorf("swatch bounds = %v, want 48x16", b)
	}
}

func TestSavePaletteEmpty(t *testing.T) {
	if err := SavePalette(nil, 16, filepath.Join(t.TempDir(), "p.png")); err == nil {
		t.Error("empty palette should fail")
	}
}
