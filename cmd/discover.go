package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/settings"
	"github.com/hooktools/core/tui/components/table"
	"github.com/hooktools/core/tui/theme"
)

// NewDiscoverCmd creates the `discover` command.
func NewDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover [root...]",
		Short: "List the pre-commit files under one or more directories",
		Long: `Walk the given directories and list every configuration and manifest
found, skipping VCS internals, dependency directories, and anything the
ignore patterns in the settings file exclude. Without arguments the
configured watch roots are scanned, falling back to the current
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			s, err := settings.LoadDefault()
			if err != nil {
				s = settings.Default()
			}

			roots := args
			if len(roots) == 0 {
				roots = s.Watch.Roots
			}
			if len(roots) == 0 {
				roots = []string{"."}
			}

			service, err := discover.NewService(cli.GetLogger(cmd), s.Ignore)
			if err != nil {
				return err
			}
			findings, err := service.Discover(roots)
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(findings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(findings) == 0 {
				fmt.Printf("No pre-commit files found under %s.\n", strings.Join(roots, ", "))
				return nil
			}

			rows := make([][]string, 0, len(findings))
			for _, finding := range findings {
				icon := theme.IconConfig
				if finding.Kind == discover.KindManifest {
					icon = theme.IconManifest
				}
				rows = append(rows, []string{
					icon + " " + string(finding.Kind),
					finding.Path,
					finding.Root,
				})
			}

			fmt.Println(table.SimpleTable([]string{"KIND", "PATH", "ROOT"}, rows))
			return nil
		},
	}
}
