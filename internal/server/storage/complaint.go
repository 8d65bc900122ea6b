package storage

import (
	"context"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// Complaint is the server-side entity: the authoritative version plus the
// capture time reported by the client.
type Complaint struct {
	CapturedAt time.Time
	models.RemoteComplaint
}

// Media is an attachment stored next to its complaint
type Media struct {
	CreatedAt   time.Time
	ID          string
	BusinessKey string
	FileName    string
	MimeType    string
	Data        []byte
}

// ComplaintStorage defines interface for complaint persistence
type ComplaintStorage interface {
	// CreateComplaint inserts the complaint unless one with the same business key exists.
	// Returns the stored entity and true if it was created, or the existing entity and false.
	CreateComplaint(ctx context.Context, c *Complaint) (*Complaint, bool, error)

	// GetComplaint retrieves complaint by business key
	// Returns ErrComplaintNotFound if complaint doesn't exist
	GetComplaint(ctx context.Context, businessKey string) (*Complaint, error)

	// UpdateComplaint applies tracked field values and bumps updated_at
	// Returns ErrComplaintNotFound if complaint doesn't exist, ErrUnknownField for
	// fields outside models.TrackedFields
	UpdateComplaint(ctx context.Context, businessKey string, fields map[string]string) (*Complaint, error)
}

// MediaStorage defines interface for attachment persistence
type MediaStorage interface {
	// SaveMedia stores an attachment
	// Returns ErrComplaintNotFound if the complaint doesn't exist
	SaveMedia(ctx context.Context, m *Media) error

	// ListMedia returns attachments of a complaint ordered by creation time
	ListMedia(ctx context.Context, businessKey string) ([]*Media, error)
}
