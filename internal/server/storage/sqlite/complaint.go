package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/server/storage"
)

const complaintColumns = `
	id, business_key, reference_number, name, phone, address,
	description, category, status, captured_by, latitude, longitude,
	captured_at, created_at, updated_at`

// CreateComplaint inserts the complaint unless one with the same business key exists.
// Повторная отправка того же ключа возвращает существующую сущность без изменений.
func (s *Storage) CreateComplaint(ctx context.Context, c *storage.Complaint) (*storage.Complaint, bool, error) {
	now := s.now().UTC()

	id := uuid.NewString()
	reference := referenceNumber(now, id)

	status := c.Status
	if status == "" {
		status = models.StatusNew
	}
	capturedAt := c.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = now
	}

	query := `
		INSERT INTO complaints (` + complaintColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(business_key) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query,
		id,
		c.BusinessKey,
		reference,
		c.Name,
		c.Phone,
		c.Address,
		c.Description,
		c.Category,
		status,
		c.CapturedBy,
		c.Latitude,
		c.Longitude,
		capturedAt.UnixNano(),
		now.UnixNano(),
		now.UnixNano(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert complaint: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	stored, err := s.GetComplaint(ctx, c.BusinessKey)
	if err != nil {
		return nil, false, err
	}
	return stored, affected == 1, nil
}

// GetComplaint retrieves complaint by business key
func (s *Storage) GetComplaint(ctx context.Context, businessKey string) (*storage.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE business_key = ?`
	return scanComplaint(s.db.QueryRowContext(ctx, query, businessKey))
}

// UpdateComplaint applies tracked field values and bumps updated_at.
// updated_at строго возрастает, даже если часы сервера не сдвинулись.
func (s *Storage) UpdateComplaint(ctx context.Context, businessKey string, fields map[string]string) (*storage.Complaint, error) {
	for name := range fields {
		if !models.IsTrackedField(name) {
			return nil, fmt.Errorf("%w: %q", storage.ErrUnknownField, name)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE business_key = ?`
	current, err := scanComplaint(tx.QueryRowContext(ctx, query, businessKey))
	if err != nil {
		return nil, err
	}

	for name, value := range fields {
		current.SetField(name, value)
	}

	updatedAt := s.now().UTC()
	if !updatedAt.After(current.UpdatedAt) {
		updatedAt = current.UpdatedAt.Add(time.Nanosecond)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE complaints
		SET name = ?, phone = ?, address = ?, description = ?,
		    category = ?, status = ?, updated_at = ?
		WHERE business_key = ?
	`,
		current.Name,
		current.Phone,
		current.Address,
		current.Description,
		current.Category,
		current.Status,
		updatedAt.UnixNano(),
		businessKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	current.UpdatedAt = updatedAt
	return current, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row rowScanner) (*storage.Complaint, error) {
	c := &storage.Complaint{}
	var capturedAt, createdAt, updatedAt int64

	err := row.Scan(
		&c.ID,
		&c.BusinessKey,
		&c.ReferenceNumber,
		&c.Name,
		&c.Phone,
		&c.Address,
		&c.Description,
		&c.Category,
		&c.Status,
		&c.CapturedBy,
		&c.Latitude,
		&c.Longitude,
		&capturedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to scan complaint: %w", err)
	}

	c.CapturedAt = time.Unix(0, capturedAt).UTC()
	c.CreatedAt = time.Unix(0, createdAt).UTC()
	c.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return c, nil
}

// referenceNumber формирует номер обращения вида FS-20260102-1A2B3C4D
func referenceNumber(now time.Time, id string) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))[:8]
	return "FS-" + now.Format("20060102") + "-" + short
}
