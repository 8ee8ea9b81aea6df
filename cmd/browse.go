package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/tui"
	"github.com/hooktools/core/tui/browse"
)

// NewBrowseCmd creates the `browse` command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse discovered pre-commit files interactively",
		Long: `Open an interactive view of every discovered configuration and
manifest with its validation state. When the watch daemon is running
the view is fed from it and updates live as files change; otherwise a
one-off scan of the configured roots is shown.

An optional file argument pre-filters the list to matching paths.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tui.InitializeTUI()

			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}

			client := daemon.New()
			defer client.Close()

			return browse.Run(client, filter)
		},
	}
}
