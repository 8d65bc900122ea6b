package sync

import (
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

// updateRequest переносит локальные поля жалобы в запрос обновления.
// Статус не отправляется: сервер авторитетен для workflow.
func updateRequest(c *models.Complaint) api.UpdateComplaintRequest {
	fields := make(map[string]string, len(models.ContentFields))
	for _, f := range models.ContentFields {
		fields[f] = c.Field(f)
	}
	return api.UpdateComplaintRequest{Fields: fields}
}
