package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at build time with -ldflags.
var Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the a11yscan version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "a11yscan %s\n", Version)
	},
}
