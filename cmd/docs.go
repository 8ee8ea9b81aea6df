package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd creates the hidden `docs` command, which writes markdown
// documentation for the whole command tree.
func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate markdown documentation for the command tree",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			if err := doc.GenMarkdownTree(cmd.Root(), dir); err != nil {
				return fmt.Errorf("failed to generate docs: %w", err)
			}
			fmt.Printf("Documentation written to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().String("dir", "./docs", "Directory the markdown files are written to")
	return cmd
}
