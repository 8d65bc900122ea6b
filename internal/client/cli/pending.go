package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/models"
)

func (c *Cli) newPendingCommand() *cobra.Command {
	var recordType string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List records waiting in the offline queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runPending(cmd.Context(), ctrl, recordType)
			})
		},
	}
	cmd.Flags().StringVarP(&recordType, "type", "t", "", "Only show one record type (submission, media)")
	return cmd
}

func (c *Cli) runPending(ctx context.Context, ctrl Controller, recordType string) error {
	records, err := ctrl.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending records: %w", err)
	}

	if recordType != "" {
		t, err := models.ParseRecordType(recordType)
		if err != nil {
			return err
		}
		filtered := records[:0]
		for _, r := range records {
			if r.Type == t {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if c.jsonOutput {
		return c.printJSON(records)
	}

	if len(records) == 0 {
		c.io.Println("Queue is empty. Nothing waiting for sync.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			string(r.Type),
			recordKey(r),
			formatTime(r.CapturedAt),
			strconv.Itoa(r.RetryCount),
			formatBytes(int64(r.Size())),
		})
	}

	c.io.Printf("Pending records: %d\n", len(records))
	c.io.Println(renderTable(
		[]string{"ID", "Type", "Key", "Captured", "Retries", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}

// recordKey достает business key из payload; для нечитаемых записей "-"
func recordKey(r *models.OfflineRecord) string {
	var keyed struct {
		BusinessKey string `json:"business_key"`
	}
	if err := json.Unmarshal(r.Payload, &keyed); err != nil || keyed.BusinessKey == "" {
		return "-"
	}
	return keyed.BusinessKey
}
