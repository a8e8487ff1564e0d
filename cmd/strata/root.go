package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata evaluates and plots elastic stress fields of dislocation sources",
	Long: `Strata evaluates the stress tensor of point and triangular dislocation sources,
samples it over planar grids, renders contour figures, serves the evaluator over
HTTP and MCP, and builds the native binding package.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "strata.yaml", "Path to the strata config file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("scenes", "", "Directory containing scene documents (overrides config)")
}
