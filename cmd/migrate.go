package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/migrate"
	"github.com/hooktools/core/tui/theme"
)

// NewMigrateConfigCmd creates the `migrate-config` command.
func NewMigrateConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate-config [file]",
		Short: "Migrate a legacy configuration to the current format",
		Long: `Update a configuration that still uses a legacy layout: a top-level
hook list is wrapped in a repos key, and sha keys are renamed to rev.
Comments and formatting outside the migrated lines are preserved.

The file is replaced atomically. With --dry-run the planned changes are
printed and the file is left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			path, err := configPathFromArgs(cmd, args)
			if err != nil {
				return err
			}

			changes, err := migrate.MigrateFile(path, dryRun)
			if err != nil {
				return err
			}

			t := theme.DefaultTheme
			if len(changes) == 0 {
				fmt.Printf("%s %s is already in the current format\n", t.Success.Render("✓"), path)
				return nil
			}

			for _, change := range changes {
				fmt.Printf("  %s %s\n", t.Info.Render("•"), change.Description)
			}
			if dryRun {
				fmt.Printf("%s dry run, %s left unchanged\n", t.Warning.Render("→"), path)
			} else {
				fmt.Printf("%s migrated %s\n", t.Success.Render("✓"), path)
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Report the changes without touching the file")
	return cmd
}

// configPathFromArgs resolves the configuration file a command operates
// on: the positional argument, then the --config flag, then the lookup
// from the current directory upward.
func configPathFromArgs(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if opts := cli.GetOptions(cmd); opts.ConfigFile != "" {
		return opts.ConfigFile, nil
	}
	return config.FindConfigFile(".")
}
