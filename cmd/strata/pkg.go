package main

import (
	"fmt"
	"os"

	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/aretw0/strata/pkg/adapters/process"
	"github.com/aretw0/strata/pkg/build"
	"github.com/spf13/cobra"
)

var pkgCmd = &cobra.Command{
	Use:   "pkg",
	Short: "Set up, build and package the native binding",
	Long: `Automates the native build: clones the binding generator, creates a virtual
environment, builds the library with CMake, assembles the package and installs
the wheel. Run 'strata pkg help' for the detailed guide.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		fmt.Fprintln(cmd.OutOrStdout(), "\nFor more detailed information, run: strata pkg help")
	},
}

var pkgHelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show detailed help information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		f, isFile := out.(*os.File)
		if !isFile || !tui.IsTerminal(f) {
			_, err := fmt.Fprint(out, build.Help)
			return err
		}

		rendered, err := tui.NewRenderer(tui.Width(f))(build.Help)
		if err != nil {
			rendered = build.Help
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

// defaultTools allow-lists the programs the build steps invoke.
func defaultTools(cfg build.Config) map[string]process.ProcessConfig {
	tools := make(map[string]process.ProcessConfig)
	for _, name := range []string{"git", "cmake", "make", cfg.Python} {
		tools[name] = process.ProcessConfig{Name: name}
	}
	return tools
}

func newPlanCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			plan, err := build.PlanFor(name)
			if err != nil {
				return err
			}

			cfg := a.cfg.Build.WithDefaults()
			tools := defaultTools(cfg)
			for k, v := range a.cfg.ToolMap() {
				tools[k] = v
			}
			if path, _ := cmd.Flags().GetString("tools"); path != "" {
				extra, err := process.LoadTools(path)
				if err != nil {
					return err
				}
				for k, v := range extra {
					tools[k] = v
				}
			}
			runner := process.NewRunner(
				process.WithRegistry(tools),
				process.WithBaseDir(cfg.WorkDir),
				process.WithLogger(a.logger),
			)

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			pipeline := build.NewPipeline(cfg, runner,
				build.WithOutput(cmd.OutOrStdout()),
				build.WithLogger(a.logger),
				build.WithMetrics(a.metrics),
				build.WithDryRun(dryRun),
			)

			outcomes, err := pipeline.Run(cmd.Context(), plan)
			fmt.Fprint(cmd.OutOrStdout(), "\n"+tui.StepSummary(outcomes))
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(pkgCmd)
	pkgCmd.PersistentFlags().Bool("dry-run", false, "Print the commands without running them")
	pkgCmd.PersistentFlags().String("tools", "", "Extra allow-listed tools file (YAML or JSON)")

	pkgCmd.AddCommand(pkgHelpCmd)
	pkgCmd.AddCommand(
		newPlanCmd("install", "Clone the pybind11 repository if it doesn't exist"),
		newPlanCmd("setup", "Create a Python virtual environment"),
		newPlanCmd("build", "Build the library and binding with CMake"),
		newPlanCmd("package", "Assemble, create and install the wheel package"),
		newPlanCmd("all", "Run install, setup, build and package in sequence"),
	)
}
