package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// newRootCommand creates the root command for the tmbuild CLI.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmbuild",
		Short: "tmbuild ingests a highway-route data corpus and builds its derived outputs",
		Long: `tmbuild reads a highway data tree (systems, routes, waypoints) and a
directory of user travel lists, resolves concurrencies and travel
progress, and emits a relational dump, graph files, and datacheck logs.

Examples:
  tmbuild run --highway-data ./data --config ./config.yaml
  tmbuild graphs --highway-data ./data --graphs ./out/graphs`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ./, ./configs, /etc/tm-dataproc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug-level logging")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newGraphsCommand())

	return rootCmd
}

func execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
