package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/version"
)

// SetVersionTemplate makes --version print the full build details
// instead of cobra's one-liner.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} {{.Version}}\n  Commit:    %s\n  Built:     %s\n  Platform:  %s\n",
		info.Commit, info.BuildDate, info.Platform))
}

// NewVersionCommand returns a version subcommand printing the build
// details of the named binary.
func NewVersionCommand(name string, info version.Info) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + name,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", name, info.Version)
			for _, row := range [][2]string{
				{"Commit", info.Commit},
				{"Built", info.BuildDate},
				{"Go", info.GoVersion},
				{"Platform", info.Platform},
			} {
				fmt.Printf("  %-9s %s\n", row[0]+":", row[1])
			}
		},
	}
}
