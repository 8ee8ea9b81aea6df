package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/settings"
	"github.com/hooktools/core/state"
	"github.com/hooktools/core/tui/theme"
)

// NewWatchCmd creates the `watch` command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root...]",
		Short: "Stream validation events as pre-commit files change",
		Long: `Print a validation event for every pre-commit file change until
interrupted. When the watch daemon is running, events come from its
stream and root arguments are ignored in favor of the daemon's roots.
Without the daemon, the given roots (or the configured ones) are
scanned and watched in-process.

With --json each event is printed as one JSON object per line.`,
		RunE: runWatchE,
	}

	cmd.Flags().String("transport", "sse", "Stream transport to the daemon: sse or ws")
	return cmd
}

func runWatchE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	transport, _ := cmd.Flags().GetString("transport")
	if transport != "sse" && transport != "ws" {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown transport %q, expected sse or ws", transport))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := daemon.New()
	defer client.Close()

	if remote, ok := client.(*daemon.RemoteClient); ok && remote.IsRunning() {
		return watchRemote(ctx, remote, transport, opts.JSONOutput)
	}
	return watchLocal(ctx, cmd, args, opts.JSONOutput)
}

// watchRemote streams events from the running daemon until the context is
// canceled or the daemon goes away.
func watchRemote(ctx context.Context, remote *daemon.RemoteClient, transport string, jsonOutput bool) error {
	var (
		ch  <-chan daemon.StateUpdate
		err error
	)
	if transport == "ws" {
		ch, err = remote.StreamStateWS(ctx)
	} else {
		ch, err = remote.StreamState(ctx)
	}
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Println(theme.DefaultTheme.Muted.Render("Watching via the daemon. Press Ctrl-C to stop."))
	}

	for update := range ch {
		printUpdate(update, jsonOutput)
	}
	return nil
}

// watchLocal scans the roots once, then watches them in-process.
func watchLocal(ctx context.Context, cmd *cobra.Command, args []string, jsonOutput bool) error {
	logger := logging.NewLogger("watch")

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

	watcher, err := daemon.NewWatcher(s.Watch.DebounceDuration(), func(path string, removed bool) {
		if removed {
			printUpdate(daemon.StateUpdate{UpdateType: "file_removed", RemovedPath: path, Source: "watch"}, jsonOutput)
			return
		}
		kind, ok := discover.Classify(filepath.Base(path))
		if !ok {
			return
		}
		printUpdate(daemon.StateUpdate{
			UpdateType: "file",
			File:       daemon.ValidateFile(path, kind),
			Source:     "watch",
		}, jsonOutput)
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	service, err := discover.NewService(cli.GetLogger(cmd), s.Ignore)
	if err != nil {
		return err
	}
	findings, err := service.Discover(roots)
	if err != nil {
		return err
	}

	for _, root := range roots {
		if err := watcher.WatchDir(root); err != nil {
			logger.WithError(err).WithField("root", root).Warn("Cannot watch root")
		}
	}
	for _, finding := range findings {
		printUpdate(daemon.StateUpdate{
			UpdateType: "file",
			File:       daemon.ValidateFile(finding.Path, finding.Kind),
			Source:     "scan",
		}, jsonOutput)
		_ = watcher.WatchDir(filepath.Dir(finding.Path))
	}

	if !jsonOutput {
		fmt.Println(theme.DefaultTheme.Muted.Render("Watching in-process. Press Ctrl-C to stop."))
	}

	watcher.Start(ctx)
	return nil
}

func printUpdate(update daemon.StateUpdate, jsonOutput bool) {
	if jsonOutput {
		data, err := json.Marshal(update)
		if err != nil {
			return
		}
		fmt.Println(string(data))
		return
	}

	t := theme.DefaultTheme
	stamp := t.Muted.Render(time.Now().Format("15:04:05"))

	switch update.UpdateType {
	case "initial":
		fmt.Printf("%s initial state: %d configs, %d manifests\n",
			stamp, len(update.Configs), len(update.Manifests))
	case "configs":
		fmt.Printf("%s rescan: %d configs\n", stamp, update.Scanned)
	case "manifests":
		fmt.Printf("%s rescan: %d manifests\n", stamp, update.Scanned)
	case "file":
		fmt.Printf("%s %s\n", stamp, formatFileEvent(update.File))
	case "file_removed":
		fmt.Printf("%s %s %s removed\n", stamp, t.Warning.Render("−"), update.RemovedPath)
	case "settings_reload":
		fmt.Printf("%s settings reloaded from %s\n", stamp, update.SettingsFile)
	}
}

func formatFileEvent(fs *state.FileState) string {
	if fs == nil {
		return ""
	}
	t := theme.DefaultTheme
	if fs.Valid {
		detail := fmt.Sprintf("%d hooks", fs.Hooks)
		if fs.Kind == string(discover.KindConfig) {
			detail = fmt.Sprintf("%d repos, %d hooks", fs.Repos, fs.Hooks)
		}
		return fmt.Sprintf("%s %s (%s)", t.Success.Render("✓"), fs.Path, detail)
	}
	msg := fmt.Sprintf("%d error(s)", len(fs.Errors))
	if len(fs.Errors) > 0 {
		msg = fs.Errors[0]
		if len(fs.Errors) > 1 {
			msg += fmt.Sprintf(" (+%d more)", len(fs.Errors)-1)
		}
	}
	return fmt.Sprintf("%s %s: %s", t.Error.Render("✗"), fs.Path, msg)
}
