package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/capture"
	"github.com/iudanet/fieldsync/internal/models"
)

type captureOptions struct {
	fromFile    string
	complaint   models.Complaint
	interactive bool
}

func (c *Cli) newCaptureCommand() *cobra.Command {
	var opts captureOptions

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a complaint into the offline queue",
		Long: "Capture validates the complaint and stores it in the durable queue.\n" +
			"It succeeds without network; the record is sent on the next drain.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runCapture(cmd.Context(), ctrl, opts)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.complaint.BusinessKey, "key", "", "Business key (generated when empty)")
	f.StringVar(&opts.complaint.Name, "name", "", "Complainant name")
	f.StringVar(&opts.complaint.Phone, "phone", "", "Contact phone")
	f.StringVar(&opts.complaint.Address, "address", "", "Incident address")
	f.StringVar(&opts.complaint.Description, "description", "", "Complaint text")
	f.StringVar(&opts.complaint.Category, "category", "", "Category")
	f.Float64Var(&opts.complaint.Latitude, "lat", 0, "Latitude")
	f.Float64Var(&opts.complaint.Longitude, "lon", 0, "Longitude")
	f.StringVarP(&opts.fromFile, "file", "f", "", "Read the complaint from a JSON file")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for missing fields")
	return cmd
}

func (c *Cli) runCapture(ctx context.Context, ctrl Controller, opts captureOptions) error {
	complaint := opts.complaint

	if opts.fromFile != "" {
		data, err := os.ReadFile(opts.fromFile)
		if err != nil {
			return fmt.Errorf("failed to read complaint file: %w", err)
		}
		if err := json.Unmarshal(data, &complaint); err != nil {
			return fmt.Errorf("failed to parse complaint file: %w", err)
		}
	}

	if opts.interactive || (c.io.IsTerminal() && (complaint.Name == "" || complaint.Description == "")) {
		if err := c.promptComplaint(&complaint); err != nil {
			return err
		}
	}

	receipt, err := ctrl.SubmitComplaint(ctx, complaint)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(receipt)
	}
	c.printReceipt("Complaint", receipt)
	return nil
}

// promptComplaint спрашивает только незаполненные поля
func (c *Cli) promptComplaint(complaint *models.Complaint) error {
	prompts := []struct {
		label string
		field string
	}{
		{"Name: ", models.FieldName},
		{"Phone: ", models.FieldPhone},
		{"Address: ", models.FieldAddress},
		{"Category: ", models.FieldCategory},
		{"Description: ", models.FieldDescription},
	}

	for _, p := range prompts {
		if complaint.Field(p.field) != "" {
			continue
		}
		value, err := c.io.ReadInput(p.label)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p.field, err)
		}
		complaint.SetField(p.field, value)
	}
	return nil
}

func (c *Cli) printReceipt(what string, receipt *capture.Receipt) {
	if receipt.Queued {
		c.io.Printf("✓ %s queued (record %s, key %s)\n", what, receipt.RecordID, receipt.BusinessKey)
		c.io.Println("It will be sent automatically when the network is available.")
		return
	}
	c.io.Printf("✓ %s sent directly (key %s, remote id %s)\n", what, receipt.BusinessKey, receipt.RemoteID)
	if receipt.ReferenceNumber != "" {
		c.io.Printf("Reference number: %s\n", receipt.ReferenceNumber)
	}
	c.io.Println("⚠️  Offline queue is unavailable; nothing was stored locally.")
}

func (c *Cli) newAttachCommand() *cobra.Command {
	var mimeType string

	cmd := &cobra.Command{
		Use:   "attach KEY FILE",
		Short: "Queue a media attachment for a complaint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withController(cmd.Context(), func(ctrl Controller) error {
				return c.runAttach(cmd.Context(), ctrl, args[0], args[1], mimeType)
			})
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (detected when empty)")
	return cmd
}

func (c *Cli) runAttach(ctx context.Context, ctrl Controller, key, path, mimeType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}

	if mimeType == "" {
		mimeType = detectMimeType(path, data)
	}

	receipt, err := ctrl.AttachMedia(ctx, models.MediaAttachment{
		BusinessKey: key,
		FileName:    filepath.Base(path),
		MimeType:    mimeType,
		Data:        data,
	})
	if err != nil {
		return fmt.Errorf("attach failed: %w", err)
	}

	if c.jsonOutput {
		return c.printJSON(receipt)
	}
	c.printReceipt("Attachment", receipt)
	return nil
}

func detectMimeType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
