package storage

import (
	"context"

	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out conflicts_mock.go . ConflictStorage

// ConflictStorage stores conflicts awaiting manual resolution.
// A conflict is keyed by the id of the queued record it refers to.
type ConflictStorage interface {
	// SaveConflict registers or replaces a conflict.
	// Returns ErrRecordNotFound if the referenced record is no longer queued.
	SaveConflict(ctx context.Context, item *models.ConflictItem) error

	// GetConflict returns ErrConflictNotFound if nothing is registered for id
	GetConflict(ctx context.Context, id string) (*models.ConflictItem, error)

	// ListConflicts returns all open conflicts ordered by record id
	ListConflicts(ctx context.Context) ([]*models.ConflictItem, error)

	// DeleteConflict drops the conflict but keeps the record
	DeleteConflict(ctx context.Context, id string) error
}
