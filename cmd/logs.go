package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/pkg/logging/logutil"
	"github.com/hooktools/core/pkg/paths"
)

// NewLogsCmd builds the `logs` command for reading the tool's own log
// files.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [component]",
		Short: "Show the tool's own logs",
		Long: `Show the log files hookcfg writes under its state directory. Each
subsystem logs to its own date-stamped file; name one (daemon, watch,
config, cli, ...) to narrow the output, otherwise the most recent file
is shown.

Examples:
  # Show the most recent log file
  hookcfg logs

  # Follow the daemon's log
  hookcfg logs daemon -f

  # Last 50 lines as JSON
  hookcfg logs --tail 50 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Keep the file open and stream new lines")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")

	component := ""
	if len(args) > 0 {
		component = args[0]
	}

	logsDir := paths.LogsDir()
	logFile, err := logutil.FindComponentLogFile(logsDir, component)
	if err != nil {
		if component != "" {
			if available, listErr := logutil.Components(logsDir); listErr == nil && len(available) > 0 {
				return fmt.Errorf("%w (components with logs: %s)", err, strings.Join(available, ", "))
			}
		}
		return err
	}

	if !follow {
		return printLogFile(logFile, component, tailLines, opts.JSONOutput)
	}

	// Show the last lines first, then pick up at the end of the file.
	// Without --tail the whole file streams from the start.
	location := &tail.SeekInfo{Offset: 0, Whence: io.SeekStart}
	if tailLines >= 0 {
		if err := printLogFile(logFile, component, tailLines, opts.JSONOutput); err != nil {
			return err
		}
		location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	t, err := tail.TailFile(logFile, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: location,
		Logger:   stdlog.New(io.Discard, "", 0), // Suppress tail library debug output
	})
	if err != nil {
		return fmt.Errorf("cannot tail %s: %w", logFile, err)
	}
	defer t.Stop()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				continue
			}
			printLogLine(line.Text, component, opts.JSONOutput)
		case <-ctx.Done():
			return nil
		}
	}
}

// printLogFile prints a file's contents, keeping only the last tailLines
// lines when requested. Reading the whole file is fine at the sizes the
// date-stamped logs reach.
func printLogFile(path, component string, tailLines int, jsonOutput bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if tailLines >= 0 && len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}
	for _, line := range lines {
		if line != "" {
			printLogLine(line, component, jsonOutput)
		}
	}
	return nil
}

// printLogLine prints one log line. In JSON mode, lines that already are
// JSON pass through with the component added; anything else is wrapped so
// the output stays one valid object per line.
func printLogLine(line, component string, jsonOutput bool) {
	if !jsonOutput {
		fmt.Println(line)
		return
	}

	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(line), &logMap); err != nil {
		fallback := map[string]interface{}{"raw_line": line}
		if component != "" {
			fallback["component"] = component
		}
		data, _ := json.Marshal(fallback)
		fmt.Println(string(data))
		return
	}

	if component != "" {
		if _, ok := logMap["component"]; !ok {
			logMap["component"] = component
		}
	}
	data, _ := json.Marshal(logMap)
	fmt.Println(string(data))
}
