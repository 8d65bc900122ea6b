package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldsync/internal/server/storage"
)

// SaveMedia stores an attachment bound to an existing complaint
func (s *Storage) SaveMedia(ctx context.Context, m *storage.Media) error {
	if _, err := s.GetComplaint(ctx, m.BusinessKey); err != nil {
		if errors.Is(err, storage.ErrComplaintNotFound) {
			return err
		}
		return fmt.Errorf("failed to check complaint: %w", err)
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO media (id, business_key, file_name, mime_type, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		m.ID,
		m.BusinessKey,
		m.FileName,
		m.MimeType,
		m.Data,
		m.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}
	return nil
}

// ListMedia returns attachments of a complaint ordered by creation time
func (s *Storage) ListMedia(ctx context.Context, businessKey string) ([]*storage.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, business_key, file_name, mime_type, data, created_at
		FROM media
		WHERE business_key = ?
		ORDER BY created_at, id
	`, businessKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	defer rows.Close()

	var result []*storage.Media
	for rows.Next() {
		m := &storage.Media{}
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.BusinessKey, &m.FileName, &m.MimeType, &m.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		m.CreatedAt = time.Unix(0, createdAt).UTC()
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media: %w", err)
	}
	return result, nil
}
