package main

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/xkjq/stampgrid/utils"
)

func newPaletteCmd() *cobra.Command {
	var k int
	var method string
	var out string
	var swatch int

	cmd := &cobra.Command{
		Use:   "palette <image.png>",
		Short: "Suggest an editor palette from a sheet or tile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := utils.ReadImage(args[0])
			if err != nil {
				return err
			}
			m := utils.PaletteMethodDominantColor
			if method == "kmeans" {
				m = utils.PaletteMethodKMeans
			} else if method != "dominantcolor" {
				return fmt.Errorf("unknown palette method %q", method)
			}
			palette := utils.ExtractPalette(img, k, m)
			if len(palette) == 0 {
				return fmt.Errorf("no palette could be extracted")
			}
			utils.SortPaletteByBrightness(palette)
			for _, c := range palette {
				fmt.Println(hexOf(c))
			}
			if out != "" {
				if err := utils.SavePalette(palette, swatch, out); err != nil {
					return fmt.Errorf("save palette: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "colors", "k", 8, "number of palette colors")
	cmd.Flags().StringVarP(&method, "method", "m", "dominantcolor", "extraction method: dominantcolor or kmeans")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a swatch strip PNG to this path")
	cmd.Flags().IntVar(&swatch, "swatch-size", 64, "swatch square size in pixels")
	return cmd
}

func hexOf(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
