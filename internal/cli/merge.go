package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/pdfops"
)

// newMergeCmd creates the merge command for combining PDF documents.
func newMergeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <file.pdf>...",
		Short: "Combine PDF documents into one",
		Long: `Combine PDF documents into one.

Input documents are concatenated in argument order. This is useful for
stitching several conversion runs, or converted office documents, into
a single file.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			if err := pdfops.Merge(args, output); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			prog.done(fmt.Sprintf("Merged %d documents", len(args)))

			printSuccess("Merged %d documents", len(args))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "merged.pdf", "output PDF path")

	return cmd
}
