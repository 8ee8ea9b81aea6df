package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hooktools/core/internal/daemon/collector"
	"github.com/hooktools/core/internal/daemon/engine"
	"github.com/hooktools/core/internal/daemon/pidfile"
	"github.com/hooktools/core/internal/daemon/server"
	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/pkg/paths"
	"github.com/hooktools/core/settings"
	"github.com/hooktools/core/state"
	"github.com/hooktools/core/tui/theme"
)

// NewDaemonCmd returns the daemon command with its subcommands.
func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the watch daemon",
		Long: `The watch daemon keeps validation state for every pre-commit file
under the configured roots. It rescans periodically, revalidates files
the moment they change, and serves results over a unix socket to the
other commands.`,
	}

	cmd.AddCommand(newDaemonRunCmd())
	cmd.AddCommand(newDaemonStatusCmd())
	cmd.AddCommand(newDaemonStopCmd())

	return cmd
}

func newDaemonRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("daemon")
			pidPath := paths.PidFilePath()
			sockPath := paths.SocketPath()

			s, err := settings.LoadDefault()
			if err != nil {
				logger.WithError(err).Warn("Settings could not be loaded, using defaults")
				s = settings.Default()
			}
			roots := s.Watch.Roots
			if len(roots) == 0 {
				roots = []string{"."}
			}

			// 1. Acquire Lock
			if err := pidfile.Acquire(pidPath); err != nil {
				return err
			}
			defer func() {
				if err := pidfile.Release(pidPath); err != nil {
					logger.Errorf("Failed to release pidfile: %v", err)
				}
			}()

			// 2. Setup Store and Engine
			st := store.New(roots)
			eng := engine.New(st, logger)

			scan, err := collector.NewScanCollector(roots, s.Ignore, s.Watch.PollDuration())
			if err != nil {
				return err
			}
			eng.Register(scan)
			eng.Register(collector.NewWatchCollector(roots, s.Watch.DebounceDuration()))
			eng.Register(collector.NewSettingsCollector(s.Watch.DebounceDuration()))

			// 3. Setup Server with engine
			srv := server.New(logger, eng, &server.RunningConfig{
				Roots:        roots,
				ScanInterval: s.Watch.PollDuration(),
				Debounce:     s.Watch.DebounceDuration(),
				StartedAt:    time.Now(),
			})

			// 4. Handle Signals
			ctx, cancel := context.WithCancel(context.Background())
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			go func() {
				<-stop
				logger.Info("Received stop signal")
				cancel() // Stop the engine

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Errorf("Server shutdown error: %v", err)
				}

				// Explicitly release pidfile before exit in signal handler
				_ = pidfile.Release(pidPath)
				os.Exit(0)
			}()

			// 5. Start Engine in background
			go eng.Start(ctx)

			// 6. Start Server (Blocking)
			logger.WithField("pid", os.Getpid()).Info("Starting watch daemon")
			if err := srv.ListenAndServe(sockPath); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := theme.DefaultTheme
			pidPath := paths.PidFilePath()

			running, pid, err := pidfile.IsRunning(pidPath)
			if err != nil {
				return err
			}

			if !running {
				fmt.Println(t.Muted.Render("○") + " Stopped")
				printLastSnapshot()
				os.Exit(1) // Non-zero for stopped state, useful for scripts
			}

			fmt.Printf("%s Running (PID %d)\n", t.Success.Render("●"), pid)
			fmt.Printf("Socket: %s\n", paths.SocketPath())

			client := daemon.New()
			defer client.Close()
			remote, ok := client.(*daemon.RemoteClient)
			if !ok {
				return nil
			}

			ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelFn()

			if cfg, err := remote.GetRunningConfig(ctx); err == nil {
				fmt.Printf("Roots: %v\n", cfg.Roots)
				fmt.Printf("Up since: %s (scan %s, debounce %s)\n",
					cfg.StartedAt.Format(time.RFC1123), cfg.ScanInterval, cfg.Debounce)
			}
			if snap, err := remote.GetState(ctx); err == nil {
				valid, invalid := snap.Counts()
				fmt.Printf("Tracking %d configs and %d manifests (%d valid, %d invalid)\n",
					len(snap.Configs), len(snap.Manifests), valid, invalid)
			}
			return nil
		},
	}
}

// printLastSnapshot reports the results persisted by the previous daemon
// run, when there are any.
func printLastSnapshot() {
	snap, err := state.Load()
	if err != nil || snap == nil {
		return
	}
	valid, invalid := snap.Counts()
	fmt.Printf("Last snapshot from %s: %d configs, %d manifests (%d valid, %d invalid)\n",
		snap.UpdatedAt.Format(time.RFC1123), len(snap.Configs), len(snap.Manifests), valid, invalid)
}

func newDaemonStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath := paths.PidFilePath()

			running, pid, err := pidfile.IsRunning(pidPath)
			if err != nil {
				return err
			}

			if !running {
				fmt.Println("The watch daemon is not running")
				return nil
			}

			process, err := os.FindProcess(pid)
			if err != nil {
				return fmt.Errorf("failed to find process %d: %w", pid, err)
			}

			if err := process.Signal(syscall.SIGTERM); err != nil {
				return fmt.Errorf("failed to send stop signal: %w", err)
			}

			fmt.Printf("Sent SIGTERM to process %d\n", pid)
			return nil
		},
	}
}
