package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/office"
)

// newOfficeCmd creates the office command for converting between office
// documents and PDF through LibreOffice.
func newOfficeCmd() *cobra.Command {
	var (
		outDir string
		target string
	)

	cmd := &cobra.Command{
		Use:   "office <document>",
		Short: "Convert between office documents and PDF via LibreOffice",
		Long: `Convert between office documents and PDF via LibreOffice.

With --to pdf (the default), converts any format LibreOffice can open
(docx, odt, xlsx, pptx, ...) to PDF. With --to docx, converts a PDF to
an editable DOCX via the PDF import filter.

Requires the soffice binary on PATH. The result keeps the input's base
name; a produced PDF can be combined with other documents using merge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if outDir == "" {
				outDir = filepath.Dir(args[0])
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", filepath.Base(args[0])))
			spinner.Start()

			var outPath string
			var err error
			switch target {
			case "pdf":
				outPath, err = office.ToPDF(ctx, args[0], outDir)
			case "docx":
				outPath, err = office.ToDocx(ctx, args[0], outDir)
			default:
				spinner.Stop()
				return fmt.Errorf("invalid target format: %q (must be pdf or docx)", target)
			}
			if err != nil {
				if spinner.Cancelled() {
					spinner.Stop()
					return ctx.Err()
				}
				spinner.StopWithError("Conversion failed")
				return fmt.Errorf("office: %w", err)
			}
			spinner.Stop()
			logger.Debug("converted", "input", args[0], "output", outPath)

			printSuccess("Converted document")
			printFile(outPath)
			if target == "pdf" {
				printNextStep("Combine with other documents", fmt.Sprintf("pagebind merge %s ...", outPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "", "output directory (default: alongside the input)")
	cmd.Flags().StringVar(&target, "to", "pdf", "target format: pdf, docx")

	return cmd
}
