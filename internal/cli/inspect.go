package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/pipeline"
)

// newInspectCmd creates the inspect command for examining the page plan
// without rendering.
func newInspectCmd() *cobra.Command {
	var (
		output      string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print the page plan without rendering",
		Long: `Print the page plan without rendering.

The inspect command runs the probe and layout stages only and writes the
resulting plan as JSON: one entry per image with the page geometry,
content box, placement rectangle, and net rotation. The plan is exactly
what convert would render, so it is the fastest way to check settings
before committing to a full conversion.

With --interactive, the plan opens in a terminal browser instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return runInspect(cmd, opts, output, noCache, interactive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write plan JSON to file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the plan interactively")
	bindLayoutFlags(cmd, &opts)

	return cmd
}

func runInspect(cmd *cobra.Command, opts pipeline.Options, output string, noCache, interactive bool) error {
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

	prog := newProgress(logger)
	plan, err := runner.Plan(ctx, opts)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	prog.done(fmt.Sprintf("Planned %d pages", len(plan)))

	if interactive {
		model := newPlanModel(plan)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("plan browser: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Planned %d pages", len(plan))
	printFile(output)
	return nil
}
