// Package utils holds image file I/O and palette helpers shared by the
// pipeline and the CLI.
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/lucasb-eyer/go-colorful"
)

// ReadImage decodes any registered raster format from disk. A failure here
// is the one fatal condition of an import run.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage writes the image as PNG.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePalette renders the palette as a horizontal swatch strip, one
// tileSize square per color.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	w := tileSize * len(palette)
	img := image.NewRGBA(image.Rect(0, 0, w, tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		for y := 0; y < tileSize; y++ {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImage(img, filename)
}
