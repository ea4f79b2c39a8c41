package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xkjq/stampgrid"
)

type importOptions struct {
	outDir         string
	prefix         string
	tileWidth      int
	tileHeight     int
	downscale      int
	skipEmpty      bool
	cropBorders    bool
	transparentBG  bool
	embedPNG       bool
	crop           string
	tolerance      int
	alphaThreshold int
	configPath     string
}

func newImportCmd() *cobra.Command {
	opts := importOptions{}

	cmd := &cobra.Command{
		Use:   "import <sheet.png>",
		Short: "Slice a sprite sheet into stamp JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], &opts)
		},
	}

	addImportFlags(cmd.Flags(), &opts)
	return cmd
}

func addImportFlags(f *pflag.FlagSet, opts *importOptions) {
	f.StringVarP(&opts.outDir, "out-dir", "o", "imported_stamps", "directory for stamp JSON output")
	f.StringVarP(&opts.prefix, "prefix", "p", "stamp", "filename prefix for written stamps")
	f.IntVar(&opts.tileWidth, "tile-width", 0, "tile width in pixels (0 = auto-detect)")
	f.IntVar(&opts.tileHeight, "tile-height", 0, "tile height in pixels (0 = auto-detect)")
	f.IntVar(&opts.downscale, "downscale", 0, "pin detection downscale factor 1-4 (0 = search)")
	f.BoolVar(&opts.skipEmpty, "skip-empty", false, "do not write fully transparent tiles")
	f.BoolVar(&opts.cropBorders, "crop-borders", false, "trim each tile to its content bounding box")
	f.BoolVar(&opts.transparentBG, "transparent-bg", false, "chroma-key the sheet background out of each tile")
	f.BoolVar(&opts.embedPNG, "embed-png", false, "embed a base64 PNG rendering in each stamp")
	f.StringVar(&opts.crop, "crop", "", "manual sheet crop as left,top,right,bottom")
	f.IntVar(&opts.tolerance, "tolerance", stampgrid.DefaultTolerance, "per-channel background color tolerance")
	f.IntVar(&opts.alphaThreshold, "alpha-threshold", stampgrid.DefaultAlphaThreshold, "minimum alpha for content pixels")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file with import defaults")
}

func runImport(cmd *cobra.Command, sheetPath string, opts *importOptions) error {
	if opts.configPath != "" {
		if err := applyDefaults(cmd, opts); err != nil {
			return err
		}
	}

	cfg := stampgrid.ImportConfig{
		SheetPath:             sheetPath,
		OutDir:                opts.outDir,
		Prefix:                opts.prefix,
		TileWidth:             opts.tileWidth,
		TileHeight:            opts.tileHeight,
		Downscale:             opts.downscale,
		SkipEmpty:             opts.skipEmpty,
		CropBorders:           opts.cropBorders,
		TransparentBackground: opts.transparentBG,
		EmbedPNG:              opts.embedPNG,
		Tolerance:             opts.tolerance,
		AlphaThreshold:        opts.alphaThreshold,
		Logger:                slog.Default(),
	}
	if opts.crop != "" {
		rect, err := parseCropFlag(opts.crop)
		if err != nil {
			return err
		}
		cfg.CropOverride = &rect
	}

	result, err := stampgrid.Import(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d stamps to %s (%dx%d tiles, %d cols x %d rows, %d skipped)\n",
		result.Written, opts.outDir,
		result.Geometry.TileWidth, result.Geometry.TileHeight,
		result.Geometry.Cols, result.Geometry.Rows,
		result.Skipped)
	return nil
}

func parseCropFlag(s string) (stampgrid.CropRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return stampgrid.CropRect{}, fmt.Errorf("crop must be left,top,right,bottom, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return stampgrid.CropRect{}, fmt.Errorf("crop value %q: %w", p, err)
		}
		vals[i] = v
	}
	rect := stampgrid.CropRect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	if !rect.Valid() {
		return stampgrid.CropRect{}, fmt.Errorf("crop rectangle %q is empty", s)
	}
	return rect, nil
}
