package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/tui/theme"
)

// NewSampleConfigCmd creates the `sample-config` command.
func NewSampleConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Print a minimal valid configuration",
		Long: `Print a starter .pre-commit-config.yaml. Use --write to create the
file in the current directory instead; an existing file is never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			if !write {
				fmt.Print(config.SampleConfig)
				return nil
			}

			path := config.ConfigFileNames[0]
			if _, err := os.Stat(path); err == nil {
				return errors.New(errors.ErrCodeWriteFailed,
					fmt.Sprintf("%s already exists; edit it in place or remove it first", path)).
					WithDetail("path", path)
			}

			if err := os.WriteFile(path, []byte(config.SampleConfig), 0644); err != nil {
				return errors.WriteFailed(path, err)
			}
			fmt.Printf("%s wrote %s\n", theme.DefaultTheme.Success.Render("✓"), path)
			return nil
		},
	}

	cmd.Flags().Bool("write", false, "Create .pre-commit-config.yaml instead of printing")
	return cmd
}
