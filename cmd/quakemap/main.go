package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute(newRootCmd(), os.Args[1:]))
}

// execute runs cmd and returns the process exit code. Errors are printed
// to the command's error stream, including the usage errors that
// SilenceErrors would otherwise hide.
func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}
