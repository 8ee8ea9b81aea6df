package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/manifest"
	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/tui/components/table"
	"github.com/hooktools/core/tui/theme"
)

// NewHooksCmd creates the `hooks` command.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks [file]",
		Short: "List the hooks a configuration or manifest defines",
		Long: `Show every hook with its effective settings after defaults are
applied. The file may be a .pre-commit-config.yaml or a
.pre-commit-hooks.yaml; the kind is picked from the file name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHooksE,
	}

	cmd.Flags().String("stage", "", "Only show hooks that run in this stage")
	return cmd
}

func runHooksE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	stage, _ := cmd.Flags().GetString("stage")

	path, err := configPathFromArgs(cmd, args)
	if err != nil {
		return err
	}

	if kind, ok := discover.Classify(filepath.Base(path)); ok && kind == discover.KindManifest {
		return listManifestHooks(path, opts.JSONOutput)
	}
	return listConfigHooks(path, stage, opts.JSONOutput)
}

func listConfigHooks(path, stage string, jsonOutput bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	resolved := cfg.ResolveHooks()
	if stage != "" {
		resolved = cfg.HooksForStage(stage)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(resolved) == 0 {
		fmt.Println("No hooks found.")
		return nil
	}

	rows := make([][]string, 0, len(resolved))
	for _, rh := range resolved {
		rows = append(rows, []string{
			rh.Hook.RunName(),
			describeSource(rh),
			rh.Rev,
			strings.Join(rh.Hook.Stages, ", "),
			rh.Hook.Files,
		})
	}

	fmt.Printf("%s %s\n", theme.IconConfig, path)
	fmt.Println(table.SimpleTable([]string{"HOOK", "REPO", "REV", "STAGES", "FILES"}, rows))
	return nil
}

func listManifestHooks(path string, jsonOutput bool) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	rows := make([][]string, 0, len(m))
	for _, hook := range m {
		rows = append(rows, []string{
			hook.ID,
			hook.Name,
			hook.Language,
			hook.Entry,
			strings.Join(hook.Stages, ", "),
		})
	}

	fmt.Printf("%s %s\n", theme.IconManifest, path)
	fmt.Println(table.SimpleTable([]string{"HOOK", "NAME", "LANGUAGE", "ENTRY", "STAGES"}, rows))
	return nil
}

// describeSource renders the repo column: clone URLs are shortened to
// their last two path elements and set bold, the local and meta
// keywords keep default and faint weight.
func describeSource(rh config.ResolvedHook) string {
	t := theme.DefaultTheme
	switch rh.Kind {
	case config.RepoKindLocal:
		return t.RepoLocal.Render(rh.Source)
	case config.RepoKindMeta:
		return t.RepoMeta.Render(rh.Source)
	}
	short := rh.Source
	parts := strings.Split(strings.TrimSuffix(short, "/"), "/")
	if len(parts) >= 2 {
		short = parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return t.RepoRemote.Render(short)
}
