package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/pkg/paths"
	"github.com/hooktools/core/tui/components/table"
)

// PathsOutput represents the XDG-compliant paths the tool uses.
type PathsOutput struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	StateDir  string `json:"state_dir"`
	CacheDir  string `json:"cache_dir"`
	LogsDir   string `json:"logs_dir"`
	Socket    string `json:"socket"`
	Pidfile   string `json:"pidfile"`
	Snapshot  string `json:"snapshot"`
}

// NewPathsCmd creates the `paths` command.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths the tool uses",
		Long: `Print where hookcfg keeps its files, following the XDG Base Directory
Specification:
- config_dir: the settings file
- state_dir: logs, the daemon pidfile, and the last snapshot
- cache_dir: regenerable data
- socket: the daemon's unix socket

Use --json for machine-readable output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				StateDir:  paths.StateDir(),
				CacheDir:  paths.CacheDir(),
				LogsDir:   paths.LogsDir(),
				Socket:    paths.SocketPath(),
				Pidfile:   paths.PidFilePath(),
				Snapshot:  paths.SnapshotPath(),
			}

			if opts.JSONOutput {
				jsonData, err := json.MarshalIndent(output, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal paths to JSON: %w", err)
				}
				fmt.Println(string(jsonData))
				return nil
			}

			fmt.Println(table.StatusTable([][]string{
				{"config", output.ConfigDir},
				{"data", output.DataDir},
				{"state", output.StateDir},
				{"cache", output.CacheDir},
				{"logs", output.LogsDir},
				{"socket", output.Socket},
				{"pidfile", output.Pidfile},
				{"snapshot", output.Snapshot},
			}))
			return nil
		},
	}
}
