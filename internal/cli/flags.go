package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/pipeline"
)

// bindLayoutFlags registers the layout-related flags shared by convert and
// inspect. The flags write straight into opts; empty values fall back to the
// config file and built-in defaults when the pipeline validates them.
func bindLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.PageSize, "page-size", "", "page size: named (a4, letter, ...) or WIDTHxHEIGHT in mm")
	cmd.Flags().Float64Var(&opts.DPI, "dpi", 0, "resolution for pixel/mm conversion (default 300)")
	cmd.Flags().StringVar(&opts.Margin, "margin", "", "page margins in mm: one, two, or four numbers")
	cmd.Flags().StringVar(&opts.Scaling, "scaling", "", "scaling mode: fit (default), fill, stretch, original")
	cmd.Flags().StringVar(&opts.AlignH, "align-h", "", "horizontal alignment: left, center (default), right")
	cmd.Flags().StringVar(&opts.AlignV, "align-v", "", "vertical alignment: top, center (default), bottom")
	cmd.Flags().BoolVar(&opts.Autorotate, "autorotate", false, "apply the EXIF capture-orientation correction")
	cmd.Flags().BoolVar(&opts.AutoOrient, "auto-orient", false, "swap page orientation to match each image")
	cmd.Flags().StringVar(&opts.Sizes, "sizes", "", "per-image page size mapping file or inline name:value list")
	cmd.Flags().StringVar(&opts.Margins, "margins", "", "per-image margin mapping file or inline name:value list")
	cmd.Flags().StringVar(&opts.Rotations, "rotations", "", "per-image rotation mapping file or inline name:value list")
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "sort directory listings by file name")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cached probe and render results")
}
