package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Drain the offline queue now",
		Long: "Sync runs a manual drain. It is attempted even when the network\n" +
			"monitor reports offline; failures are counted as usual.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runSync(cmd.Context(), ctrl)
			})
		},
	}
}

func (c *Cli) runSync(ctx context.Context, ctrl Controller) error {
	outcome, err := ctrl.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if outcome == nil {
		// Запрос принят работающим демоном, результат придет асинхронно
		if c.jsonOutput {
			return c.printJSON(map[string]bool{"requested": true})
		}
		c.io.Println("Sync requested from the running daemon.")
		c.io.Println("Use 'fieldsync status' to see the outcome.")
		return nil
	}

	if c.jsonOutput {
		return c.printJSON(outcome)
	}

	c.io.Printf("✓ Sync finished (%s) in %s\n", outcome.Trigger, outcome.FinishedAt.Sub(outcome.StartedAt).Round(time.Millisecond))
	c.io.Println(renderTable(
		[]string{"Synced", "Failed", "Conflicts", "Dropped"},
		[][]string{{
			fmt.Sprint(outcome.SuccessCount),
			fmt.Sprint(outcome.FailureCount),
			fmt.Sprint(outcome.ConflictCount),
			fmt.Sprint(outcome.DroppedCount),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
	if outcome.ConflictCount > 0 {
		c.io.Println("Some records need a decision. Run 'fieldsync conflicts'.")
	}
	return nil
}
