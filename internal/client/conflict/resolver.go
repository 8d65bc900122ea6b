// Package conflict обнаруживает и разрешает расхождения между локальной
// записью очереди и авторитетной версией жалобы на сервере.
package conflict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

// ErrInvalidMerge indicates a merge payload with unknown fields
var ErrInvalidMerge = errors.New("invalid merge payload")

// Resolver detects conflicts and applies resolutions
type Resolver struct {
	apiClient clientapi.ClientAPI
	queue     storage.QueueStorage
	conflicts storage.ConflictStorage
	logger    *slog.Logger
	now       func() time.Time
	policy    Policy
}

// NewResolver создает resolver
func NewResolver(
	apiClient clientapi.ClientAPI,
	queue storage.QueueStorage,
	conflicts storage.ConflictStorage,
	policy Policy,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		apiClient: apiClient,
		queue:     queue,
		conflicts: conflicts,
		policy:    policy,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Policy returns the active auto-resolution policy
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Detect compares a queued submission with the remote entity found by
// business key. Returns nil when there is no conflict.
func (r *Resolver) Detect(ctx context.Context, record *models.OfflineRecord) (*models.ConflictItem, error) {
	if record.Type != models.RecordTypeSubmission {
		return nil, nil
	}

	var local models.Complaint
	if err := json.Unmarshal(record.Payload, &local); err != nil {
		return nil, fmt.Errorf("failed to decode complaint payload: %w", err)
	}

	resp, err := r.apiClient.FetchComplaint(ctx, local.BusinessKey)
	if err != nil {
		if errors.Is(err, clientapi.ErrNotFound) {
			// Первая отправка - на сервере еще ничего нет
			return nil, nil
		}
		return nil, err
	}
	remote := clientapi.ComplaintFromWire(resp)

	if !remote.UpdatedAt.After(record.CapturedAt) {
		return nil, nil
	}

	fields := local.DiffFields(&remote.Complaint)
	if len(fields) == 0 {
		return nil, nil
	}

	r.logger.Debug("Conflict detected",
		"record_id", record.ID,
		"business_key", local.BusinessKey,
		"fields", fields)

	return &models.ConflictItem{
		ID:               record.ID,
		Type:             record.Type,
		LocalData:        local,
		RemoteData:       remote.Complaint,
		ConflictFields:   fields,
		CapturedAt:       record.CapturedAt,
		RemoteModifiedAt: remote.UpdatedAt,
		DetectedAt:       r.now(),
	}, nil
}

// AutoResolve applies the automatic rules and, on success, writes the
// result and removes the record. Returns false if manual resolution is needed.
func (r *Resolver) AutoResolve(ctx context.Context, item *models.ConflictItem) (*Resolution, bool, error) {
	res, ok := r.policy.Evaluate(item)
	if !ok {
		return nil, false, nil
	}

	if err := r.apply(ctx, item, res); err != nil {
		return nil, false, err
	}

	r.logger.Info("Conflict auto-resolved",
		"record_id", item.ID,
		"business_key", item.LocalData.BusinessKey,
		"rules", res.Rules)

	return res, true, nil
}

// Register stores the item for manual resolution
func (r *Resolver) Register(ctx context.Context, item *models.ConflictItem) error {
	if err := r.conflicts.SaveConflict(ctx, item); err != nil {
		return fmt.Errorf("failed to register conflict: %w", err)
	}
	return nil
}

// List returns all conflicts awaiting manual resolution
func (r *Resolver) List(ctx context.Context) ([]*models.ConflictItem, error) {
	return r.conflicts.ListConflicts(ctx)
}

// Get returns a conflict by record id
func (r *Resolver) Get(ctx context.Context, id string) (*models.ConflictItem, error) {
	return r.conflicts.GetConflict(ctx, id)
}

// IsOpen reports whether a conflict is registered for the record
func (r *Resolver) IsOpen(ctx context.Context, id string) (bool, error) {
	_, err := r.conflicts.GetConflict(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrConflictNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResolveLocal writes the local version to the remote entity
func (r *Resolver) ResolveLocal(ctx context.Context, id string) (*Resolution, error) {
	item, err := r.conflicts.GetConflict(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		Strategy:    models.ResolutionKeepLocal,
		Rules:       []string{RuleManual},
		Final:       item.LocalData,
		RemoteWrite: true,
	}
	if err := r.apply(ctx, item, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ResolveRemote discards the local record without a remote write
func (r *Resolver) ResolveRemote(ctx context.Context, id string) (*Resolution, error) {
	item, err := r.conflicts.GetConflict(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &Resolution{
		Strategy:    models.ResolutionKeepRemote,
		Rules:       []string{RuleManual},
		Final:       item.RemoteData,
		RemoteWrite: false,
	}
	if err := r.apply(ctx, item, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ResolveMerge applies fields over the remote version and writes the result.
// Only tracked fields may be supplied.
func (r *Resolver) ResolveMerge(ctx context.Context, id string, fields map[string]string) (*Resolution, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields supplied", ErrInvalidMerge)
	}
	for name := range fields {
		if !models.IsTrackedField(name) {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidMerge, name)
		}
	}

	item, err := r.conflicts.GetConflict(ctx, id)
	if err != nil {
		return nil, err
	}

	final := item.RemoteData
	for name, value := range fields {
		final.SetField(name, value)
	}

	res := &Resolution{
		Strategy:    models.ResolutionMerge,
		Rules:       []string{RuleManual},
		Final:       final,
		RemoteWrite: true,
	}
	if err := r.apply(ctx, item, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Dismiss drops the conflict but keeps the record queued.
// The next drain checks the record again.
func (r *Resolver) Dismiss(ctx context.Context, id string) error {
	if err := r.conflicts.DeleteConflict(ctx, id); err != nil {
		return err
	}
	r.logger.Info("Conflict dismissed", "record_id", id)
	return nil
}

// apply пишет итоговый набор полей на сервер и удаляет запись вместе с конфликтом
func (r *Resolver) apply(ctx context.Context, item *models.ConflictItem, res *Resolution) error {
	if res.RemoteWrite {
		req := api.UpdateComplaintRequest{Fields: res.Final.Fields()}
		if _, err := r.apiClient.UpdateComplaint(ctx, item.LocalData.BusinessKey, req); err != nil {
			return fmt.Errorf("failed to write resolution: %w", err)
		}
	}

	if err := r.queue.Remove(ctx, item.ID, item.Type); err != nil {
		return fmt.Errorf("failed to remove resolved record: %w", err)
	}

	r.logger.Debug("Conflict resolution applied",
		"record_id", item.ID,
		"strategy", res.Strategy,
		"remote_write", res.RemoteWrite)

	return nil
}
