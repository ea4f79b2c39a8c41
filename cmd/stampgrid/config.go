package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spf13/cobra"
)

// importDefaults mirrors the import flags that make sense as persistent
// per-project settings. Explicitly set flags always win over the file.
type importDefaults struct {
	OutDir                string `yaml:"out_dir"`
	Prefix                string `yaml:"prefix"`
	TileWidth             int    `yaml:"tile_width"`
	TileHeight            int    `yaml:"tile_height"`
	SkipEmpty             *bool  `yaml:"skip_empty"`
	CropBorders           *bool  `yaml:"crop_borders"`
	TransparentBackground *bool  `yaml:"transparent_bg"`
	EmbedPNG              *bool  `yaml:"embed_png"`
	Tolerance             int    `yaml:"tolerance"`
	AlphaThreshold        int    `yaml:"alpha_threshold"`
}

func applyDefaults(cmd *cobra.Command, opts *importOptions) error {
	data, err := os.ReadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var d importDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("parse config %s: %w", opts.configPath, err)
	}

	flags := cmd.Flags()
	if d.OutDir != "" && !flags.Changed("out-dir") {
		opts.outDir = d.OutDir
	}
	if d.Prefix != "" && !flags.Changed("prefix") {
		opts.prefix = d.Prefix
	}
	if d.TileWidth > 0 && !flags.Changed("tile-width") {
		opts.tileWidth = d.TileWidth
	}
	if d.TileHeight > 0 && !flags.Changed("tile-height") {
		opts.tileHeight = d.TileHeight
	}
	if d.SkipEmpty != nil && !flags.Changed("skip-empty") {
		opts.skipEmpty = *d.SkipEmpty
	}
	if d.CropBorders != nil && !flags.Changed("crop-borders") {
		opts.cropBorders = *d.CropBorders
	}
	if d.TransparentBackground != nil && !flags.Changed("transparent-bg") {
		opts.transparentBG = *d.TransparentBackground
	}
	if d.EmbedPNG != nil && !flags.Changed("embed-png") {
		opts.embedPNG = *d.EmbedPNG
	}
	if d.Tolerance > 0 && !flags.Changed("tolerance") {
		opts.tolerance = d.Tolerance
	}
	if d.AlphaThreshold > 0 && !flags.Changed("alpha-threshold") {
		opts.alphaThreshold = d.AlphaThreshold
	}
	return nil
}
