package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/observability"
	"github.com/pagebind/pagebind/pkg/pipeline"
)

// newConvertCmd creates the convert command, the main entry point for
// turning images into a PDF document.
func newConvertCmd() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert images into a paginated PDF",
		Long: `Convert images into a paginated PDF document.

The input is a directory of images or a comma-separated list of image
files. Each image becomes one page; page size, margins, rotation,
scaling, and alignment can be set globally via flags or per image via
mapping files.

Settings fall back to the config file (~/.config/pagebind/config.toml)
and then to the built-in defaults (A4, 300 DPI, 10mm margins, fit,
centered). Finished documents are cached locally; identical reruns are
served from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Backend, _ = cmd.Flags().GetString("backend")
			if err := pipeline.ValidateBackend(opts.Backend); err != nil {
				return err
			}
			return runConvert(cmd, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default: derived from input)")
	cmd.Flags().String("backend", pipeline.DefaultBackend, "rendering backend: stream, raster")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindLayoutFlags(cmd, &opts)

	return cmd
}

func runConvert(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base, err := loadBaseDefaults()
	if err != nil {
		return err
	}
	opts.Base = base
	opts.Logger = logger

	runner := newRunner(logger, noCache)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", opts.Input))
	spinner.Start()

	observability.SetPipelineHooks(newSpinnerProgress(spinner))
	defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Conversion failed")
		return fmt.Errorf("convert: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = defaultOutputPath(opts.Input)
	}
	if err := os.WriteFile(output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Converted %d images", result.Stats.ImageCount)
	printFile(output)
	printStats(result.Stats.ImageCount, result.Stats.PageCount, result.CacheInfo.RenderHit)
	printNextStep("Inspect the page plan", fmt.Sprintf("pagebind inspect %s", opts.Input))
	return nil
}

// defaultOutputPath derives an output file name from the input: a
// directory ./scans becomes scans.pdf, a single file photo.jpg becomes
// photo.pdf, and a comma-separated list becomes output.pdf.
func defaultOutputPath(input string) string {
	if strings.Contains(input, ",") {
		return "output.pdf"
	}
	base := filepath.Base(filepath.Clean(input))
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "output.pdf"
	}
	return base + ".pdf"
}
