package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/daemon"
	"github.com/iudanet/fieldsync/internal/models"
)

func (c *Cli) newConflictsCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List records waiting for a manual conflict decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runConflicts(cmd.Context(), ctrl, verbose)
			})
		},
	}
	cmd.Flags().BoolVarP(&verbose, "diff", "d", false, "Show local and remote values of each field")
	return cmd
}

func (c *Cli) runConflicts(ctx context.Context, ctrl Controller, showDiff bool) error {
	items, err := ctrl.Conflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(items)
	}

	if len(items) == 0 {
		c.io.Println("No open conflicts.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.LocalData.BusinessKey,
			strings.Join(item.ConflictFields, ", "),
			formatTime(item.CapturedAt),
			formatTime(item.RemoteModifiedAt),
		})
	}
	c.io.Printf("Open conflicts: %d\n", len(items))
	c.io.Println(renderTable([]string{"ID", "Key", "Fields", "Captured", "Remote modified"}, rows, nil))

	if showDiff {
		for _, item := range items {
			c.printConflictDiff(item)
		}
	}

	c.io.Println("Resolve with 'fieldsync resolve ID --strategy local|remote|merge'.")
	return nil
}

func (c *Cli) printConflictDiff(item *models.ConflictItem) {
	rows := make([][]string, 0, len(item.ConflictFields))
	for _, f := range item.ConflictFields {
		rows = append(rows, []string{f, item.LocalData.Field(f), item.RemoteData.Field(f)})
	}
	c.io.Printf("%s (%s)\n", item.ID, item.LocalData.BusinessKey)
	c.io.Println(renderTable([]string{"Field", "Local", "Remote"}, rows, nil))
}

func (c *Cli) newResolveCommand() *cobra.Command {
	var (
		strategy string
		fields   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve a conflict manually",
		Long: "Resolve applies a decision to a conflicted record.\n\n" +
			"  local   resend the local version\n" +
			"  remote  keep the server version and drop the local record\n" +
			"  merge   send a merged version; every conflicting field must be given with --set",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runResolve(cmd.Context(), ctrl, args[0], strategy, fields)
			})
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(models.ResolutionKeepLocal), "Resolution strategy: local, remote or merge")
	cmd.Flags().StringToStringVar(&fields, "set", nil, "Merged field value, e.g. --set name=Ivan (merge only)")
	return cmd
}

func (c *Cli) runResolve(ctx context.Context, ctrl Controller, id, strategy string, fields map[string]string) error {
	s := models.ResolutionStrategy(strings.ToLower(strings.TrimSpace(strategy)))
	switch s {
	case models.ResolutionKeepLocal, models.ResolutionKeepRemote, models.ResolutionMerge:
	default:
		return fmt.Errorf("%w: %q", daemon.ErrUnsupportedStrategy, strategy)
	}
	if s != models.ResolutionMerge && len(fields) > 0 {
		return fmt.Errorf("--set is only valid with --strategy merge")
	}
	for _, name := range sortedFieldNames(fields) {
		if !models.IsTrackedField(name) {
			return fmt.Errorf("unknown field %q", name)
		}
	}

	resolution, err := ctrl.Resolve(ctx, id, daemon.ResolveRequest{Strategy: s, Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(resolution)
	}

	c.io.Printf("✓ Conflict %s resolved (%s)\n", id, resolution.Strategy)
	if resolution.RemoteWrite {
		c.io.Println("The resolved version was written to the server.")
	} else {
		c.io.Println("The server version was kept; the local record was removed.")
	}
	return nil
}

func (c *Cli) newDismissCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss a conflict and keep the record queued",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runDismiss(cmd.Context(), ctrl, args[0])
			})
		},
	}
}

func (c *Cli) runDismiss(ctx context.Context, ctrl Controller, id string) error {
	if err := ctrl.Dismiss(ctx, id); err != nil {
		return fmt.Errorf("failed to dismiss conflict: %w", err)
	}
	if c.jsonOutput {
		return c.printJSON(map[string]string{"dismissed": id})
	}
	c.io.Printf("✓ Conflict %s dismissed; the record stays in the queue\n", id)
	return nil
}

func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
