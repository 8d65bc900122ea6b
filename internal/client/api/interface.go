package api

import (
	"context"

	"github.com/iudanet/fieldsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет контракт удаленного backend, нужный offline-ядру
type ClientAPI interface {
	// SubmitComplaint creates the entity. The call is idempotent on business key:
	// if the entity already exists it is returned with Created=false.
	SubmitComplaint(ctx context.Context, req api.Complaint) (*api.SubmitResponse, error)

	// FetchComplaint returns the authoritative entity by business key.
	// Returns ErrNotFound if the server has no such entity.
	FetchComplaint(ctx context.Context, businessKey string) (*api.ComplaintResponse, error)

	// UpdateComplaint applies a partial or full tracked field set and bumps updated_at
	UpdateComplaint(ctx context.Context, businessKey string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error)

	// UploadMedia uploads an attachment bound to a complaint business key
	UploadMedia(ctx context.Context, req api.MediaUploadRequest) (*api.MediaUploadResponse, error)

	// FetchConfig returns configuration values for the offline cache
	FetchConfig(ctx context.Context) (*api.ConfigResponse, error)
}

var _ ClientAPI = (*Client)(nil)
