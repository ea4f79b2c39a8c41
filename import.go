package stampgrid

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/xkjq/stampgrid/pixel"
	"github.com/xkjq/stampgrid/stamp"
	"github.com/xkjq/stampgrid/utils"
)

// ImportConfig is the configuration surface of one import run, mirroring
// the fields a caller can set per sheet.
type ImportConfig struct {
	SheetPath string
	OutDir    string
	// Prefix names the written stamps: {prefix}_{row}_{col}.json.
	Prefix string
	// TileWidth/TileHeight of 0 trigger grid auto-detection.
	TileWidth  int
	TileHeight int
	// Downscale pins the detection scale (1..MaxSearchScale); 0 searches
	// all scales and keeps the best.
	Downscale int
	// SkipEmpty drops tiles whose grid is fully transparent or that have
	// no detectable content.
	SkipEmpty bool
	// CropBorders trims each tile to its content bounding box.
	CropBorders bool
	// TransparentBackground chroma-keys the sheet background out of each
	// written grid.
	TransparentBackground bool
	// EmbedPNG stores a base64 PNG rendering next to each pixel grid.
	EmbedPNG bool
	// CropOverride is applied to the whole sheet before anything else,
	// in addition to the auto-detected crop. Ignored when invalid.
	CropOverride *CropRect

	Tolerance      int
	AlphaThreshold int

	// Logger receives per-tile skip warnings; nil means slog.Default().
	Logger *slog.Logger
}

// ImportResult summarizes one completed run.
type ImportResult struct {
	Written  int
	Skipped  int
	Geometry TileGeometry
	// Files holds the stamp names written, in row-major tile order.
	Files []string
}

// Import runs the whole pipeline on one sheet: decode, optional manual
// crop, grid detection when no tile size is given, slicing, per-tile
// processing and StampFile output. Per-tile failures are logged and
// skipped; only an unreadable sheet aborts the run. The pipeline is
// synchronous and runs to completion on the calling goroutine.
func Import(cfg ImportConfig) (*ImportResult, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "stamp"
	}

	img, err := utils.ReadImage(cfg.SheetPath)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if cfg.CropOverride != nil {
		img = ApplyCrop(img, *cfg.CropOverride)
	}

	tw, th := cfg.TileWidth, cfg.TileHeight
	if tw <= 0 || th <= 0 {
		var res *ScaleResult
		if cfg.Downscale > 1 {
			res, err = DetectAt(img, cfg.Downscale, cfg.Tolerance)
		} else {
			res, err = SearchGrid(img, cfg.Tolerance)
		}
		if err != nil {
			return nil, err
		}
		size := res.TileSize()
		img = cropImage(res.Image, res.AutoCrop(size))
		tw, th = size, size
		log.Info("grid detected",
			"scale", res.Scale,
			"cols", res.Detection.Cols,
			"rows", res.Detection.Rows,
			"tile_size", size)
	}

	tiles, geom := Slice(img, tw, th)
	if len(tiles) == 0 {
		return nil, fmt.Errorf("tile size %dx%d exceeds sheet %dx%d",
			tw, th, img.Bounds().Dx(), img.Bounds().Dy())
	}

	bg := EstimateBackground(img)
	result := &ImportResult{Geometry: geom}
	source := filepath.Base(cfg.SheetPath)

	for i, tile := range tiles {
		row, col := i/geom.Cols, i%geom.Cols
		name := fmt.Sprintf("%s_%d_%d", cfg.Prefix, row, col)
		skip, err := importTile(cfg, tile, bg, name, source)
		if err != nil {
			log.Warn("tile skipped", "name", name, "error", err)
			result.Skipped++
			continue
		}
		if skip {
			result.Skipped++
			continue
		}
		result.Written++
		result.Files = append(result.Files, name)
	}

	if err := stamp.WriteMarker(cfg.OutDir, result.Written); err != nil {
		return nil, err
	}
	return result, nil
}

// importTile processes one tile and writes its stamp. skip is true when the
// tile is intentionally dropped rather than failed.
func importTile(cfg ImportConfig, tile image.Image, bg color.NRGBA, name, source string) (skip bool, err error) {
	if cfg.CropBorders {
		cropped, ok := CropContent(tile, cfg.Tolerance, cfg.AlphaThreshold)
		if !ok {
			// No content at all; either drop it or keep the raw tile.
			if cfg.SkipEmpty {
				return true, nil
			}
		} else {
			tile = cropped
		}
	}

	grid := pixel.FromImage(tile)
	if cfg.TransparentBackground {
		grid.RemoveChroma(pixel.CellOf(bg))
	}
	if cfg.SkipEmpty && grid.IsEmpty() {
		return true, nil
	}

	f := &stamp.File{
		Metadata: stamp.Metadata{Name: name, Source: source},
		Pixels:   grid,
	}
	if cfg.EmbedPNG {
		if err := f.EmbedPNG(); err != nil {
			return false, err
		}
	}
	if _, err := stamp.Write(cfg.OutDir, name, f); err != nil {
		return false, err
	}
	return false, nil
}
