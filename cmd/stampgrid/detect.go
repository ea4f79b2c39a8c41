package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkjq/stampgrid"
	"github.com/xkjq/stampgrid/utils"
)

func newDetectCmd() *cobra.Command {
	var tolerance int
	var downscale int

	cmd := &cobra.Command{
		Use:   "detect <sheet.png>",
		Short: "Report the detected tile grid without writing stamps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := utils.ReadImage(args[0])
			if err != nil {
				return err
			}
			var res *stampgrid.ScaleResult
			if downscale > 1 {
				res, err = stampgrid.DetectAt(img, downscale, tolerance)
			} else {
				res, err = stampgrid.SearchGrid(img, tolerance)
			}
			if err != nil {
				return err
			}
			size := res.TileSize()
			crop := res.AutoCrop(size)
			fmt.Printf("scale: %d\n", res.Scale)
			fmt.Printf("grid: %d cols x %d rows\n", res.Detection.Cols, res.Detection.Rows)
			fmt.Printf("tile size: %d\n", size)
			fmt.Printf("candidates: %v\n", res.Detection.Candidates)
			fmt.Printf("auto-crop: %v\n", crop)
			return nil
		},
	}

	cmd.Flags().IntVar(&tolerance, "tolerance", stampgrid.DefaultTolerance, "per-channel background color tolerance")
	cmd.Flags().IntVar(&downscale, "downscale", 0, "pin detection downscale factor 1-4 (0 = search)")
	return cmd
}
