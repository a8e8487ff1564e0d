package main

import (
	"os"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the point and triangle source demo",
	Long: `Evaluates a unit point source and a small triangular dislocation at three
sample points and prints the six tensor values of each point, one per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); ok && tui.IsTerminal(f) {
			tui.PrintBanner(out)
		}
		return strata.RunDemo(out)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
