package main

import (
	"os"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(cmd.ExitCode(err))
	}
}
