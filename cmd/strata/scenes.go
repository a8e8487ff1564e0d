package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/spf13/cobra"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List and check scene documents",
	Long: `Lists the scenes found in the scenes directory with their title and source count.
Each scene is validated; invalid scenes are reported and make the command fail.
With --watch, keeps running and reports documents as they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		eng, cleanup, err := a.engine(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		ids, err := eng.Scenes(ctx)
		if err != nil {
			return err
		}

		invalid := make(map[string]bool, len(ids))
		for _, id := range ids {
			scene, err := eng.Scene(ctx, id)
			if err == nil {
				err = schema.ValidateScene(scene)
			}
			if err != nil {
				invalid[id] = true
				fmt.Fprintf(out, "%-24s INVALID: %v\n", id, err)
				continue
			}
			fmt.Fprintf(out, "%-24s %-32s %d source(s), %d component(s)\n",
				id, scene.Title, len(scene.Sources), len(scene.RenderComponents()))
		}
		total := len(ids)

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			wctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			changes, err := eng.Watch(wctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)...\n", a.cfg.ScenesDir)
			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				seen[id] = true
			}
			for id := range changes {
				if !seen[id] {
					seen[id] = true
					total++
				}
				scene, err := eng.Scene(wctx, id)
				if errors.Is(err, domain.ErrSceneNotFound) {
					delete(invalid, id)
					fmt.Fprintf(out, "removed: %s\n", id)
					continue
				}
				if err == nil {
					err = schema.ValidateScene(scene)
				}
				if err != nil {
					invalid[id] = true
					fmt.Fprintf(out, "changed: %s INVALID: %v\n", id, err)
					continue
				}
				delete(invalid, id)
				fmt.Fprintf(out, "changed: %s ok\n", id)
			}
		}

		// The exit status reflects the last known state of every scene.
		if len(invalid) > 0 {
			return fmt.Errorf("%d of %d scenes are invalid", len(invalid), total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	scenesCmd.Flags().Bool("watch", false, "Keep running and report scene changes")
}
