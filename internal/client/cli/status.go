package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/daemon"
)

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity, queue and sync health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runStatus(cmd.Context(), ctrl)
			})
		},
	}
}

func (c *Cli) runStatus(ctx context.Context, ctrl Controller) error {
	status, err := ctrl.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(status)
	}

	c.io.Println("=== fieldsync status ===")
	c.io.Println()

	if status.Degraded {
		c.io.Println("⚠️  Offline queue unavailable, running in online-only mode")
		if status.StorageError != "" {
			c.io.Printf("   Reason: %s\n", status.StorageError)
		}
		c.io.Println()
	}

	connectivity := "offline"
	if status.Connectivity.IsOnline {
		connectivity = "online (" + status.Connectivity.ConnectionType + ")"
	}

	rows := [][]string{
		{"Network", connectivity},
		{"Pending", fmt.Sprintf("%d (%s)", status.Pending, formatBytes(status.PayloadBytes))},
		{"Drain running", yesNo(status.DrainInProgress)},
		{"Last sync", formatTime(status.Health.LastSyncTime)},
		{"Last outcome", describeOutcome(status)},
		{"Success rate", fmt.Sprintf("%.0f%%", status.Health.SyncSuccessRate)},
		{"Offline sessions", fmt.Sprint(status.Health.OfflineSessions)},
		{"Offline total", status.Health.TotalOfflineTime.Round(time.Second).String()},
		{"Health score", fmt.Sprintf("%.0f (healthy: %s)", status.Health.Score, yesNo(status.Health.IsHealthy))},
	}
	c.io.Println(renderTable([]string{"Metric", "Value"}, rows, nil))

	if len(status.PerType) > 0 {
		types := make([]string, 0, len(status.PerType))
		for t := range status.PerType {
			types = append(types, t)
		}
		sort.Strings(types)

		perType := make([][]string, 0, len(types))
		for _, t := range types {
			perType = append(perType, []string{t, fmt.Sprint(status.PerType[t])})
		}
		c.io.Println(renderTable([]string{"Type", "Records"}, perType, []columnAlignment{alignLeft, alignRight}))
	}
	return nil
}

func describeOutcome(status *daemon.Status) string {
	o := status.LastOutcome
	if o == nil {
		return "none"
	}
	return fmt.Sprintf("%s: %d ok, %d failed, %d conflicts, %d dropped (%s)",
		o.Trigger, o.SuccessCount, o.FailureCount, o.ConflictCount, o.DroppedCount, formatTime(o.FinishedAt))
}
