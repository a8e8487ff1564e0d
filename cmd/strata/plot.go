package main

import (
	"fmt"
	"os"

	"github.com/aretw0/strata/internal/presentation/tui"
	"github.com/aretw0/strata/pkg/plot"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot [scene-id...]",
	Short: "Render contour figures for scenes",
	Long: `Samples each requested component of the given scenes (all scenes when none are
named) and writes one PNG per component to the output directory. Components
whose field is uniform are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("out") {
			a.cfg.Plot.OutputDir, _ = cmd.Flags().GetString("out")
		}
		preview, _ := cmd.Flags().GetBool("preview")

		ctx := cmd.Context()
		eng, cleanup, err := a.engine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		ids := args
		if len(ids) == 0 {
			if ids, err = eng.Scenes(ctx); err != nil {
				return err
			}
			if len(ids) == 0 {
				return fmt.Errorf("no scenes found in %s", a.cfg.ScenesDir)
			}
		}

		out := cmd.OutOrStdout()
		width := tui.DefaultWidth
		profile := termenv.Ascii
		if f, ok := out.(*os.File); ok {
			width = tui.Width(f)
			profile = termenv.NewOutput(f).EnvColorProfile()
		}

		for _, id := range ids {
			scene, err := eng.Scene(ctx, id)
			if err != nil {
				return err
			}
			if err := schema.ValidateScene(scene); err != nil {
				return err
			}

			outcomes, err := eng.Plot(ctx, scene, a.cfg.Plot.OutputDir)
			if err != nil {
				return fmt.Errorf("scene %s: %w", id, err)
			}
			for _, o := range outcomes {
				if o.Skipped {
					fmt.Fprintf(out, "%s %s: uniform (%g), skipped\n", id, o.Component, o.Min)
					continue
				}
				fmt.Fprintf(out, "%s %s: [%.4g, %.4g] -> %s\n", id, o.Component, o.Min, o.Max, o.Path)
				if preview {
					tui.Heatmap(out, o.Field, plot.Jet, width, profile)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringP("out", "o", "figures", "Directory to write figures to (overrides config)")
	plotCmd.Flags().Bool("preview", false, "Print a colored preview of each field in the terminal")
}
