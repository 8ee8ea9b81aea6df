// Package cmd implements the hookcfg command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/pkg/profiling"
	"github.com/hooktools/core/version"
)

// NewRootCmd builds the hookcfg root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"hookcfg",
		"Validate, inspect, and watch pre-commit configuration files",
	)
	rootCmd.Long = `hookcfg is a toolkit for the pre-commit file format. It validates
.pre-commit-config.yaml and .pre-commit-hooks.yaml files against the
published schemas, migrates legacy layouts, and can watch directory
trees for changes through a background daemon.`
	rootCmd.Version = version.GetInfo().Version

	// Subcommands print their own findings; cobra should not repeat them
	// or dump usage after a failed validation.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid usage")
	})

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(rootCmd)
	rootCmd.PersistentPreRunE = profiler.PreRun
	rootCmd.PersistentPostRun = profiler.PostRun
	// Profiling flags matter only when chasing a slow run.
	_ = rootCmd.PersistentFlags().MarkHidden("cpu-profile")
	_ = rootCmd.PersistentFlags().MarkHidden("mem-profile")
	_ = rootCmd.PersistentFlags().MarkHidden("timing")

	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewValidateHooksCmd())
	rootCmd.AddCommand(NewMigrateConfigCmd())
	rootCmd.AddCommand(NewSampleConfigCmd())
	rootCmd.AddCommand(NewHooksCmd())
	rootCmd.AddCommand(NewSchemaCmd())
	rootCmd.AddCommand(NewDiscoverCmd())
	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewDaemonCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewLogsCmd())
	rootCmd.AddCommand(NewPathsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("hookcfg", version.GetInfo()))
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

// ExitCode maps an error from Execute to the process exit status. Usage
// problems exit 2; validation failures and everything else exit 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.GetCode(err) == errors.ErrCodeInvalidInput {
		return 2
	}
	return 1
}
