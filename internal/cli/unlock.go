package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/pkg/pdfops"
)

// newUnlockCmd creates the unlock command for removing PDF passwords.
func newUnlockCmd() *cobra.Command {
	var (
		output   string
		password string
	)

	cmd := &cobra.Command{
		Use:   "unlock <file.pdf>",
		Short: "Remove password protection from a PDF",
		Long: `Remove password protection from a PDF.

Without --output the document is decrypted in place. The password is
tried as both the user and the owner password.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pdfops.Unlock(args[0], output, password); err != nil {
				return fmt.Errorf("unlock: %w", err)
			}

			out := output
			if out == "" {
				out = args[0]
			}
			printSuccess("Unlocked document")
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path (default: decrypt in place)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "document password")

	return cmd
}
