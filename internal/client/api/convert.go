package api

import (
	"time"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

// ComplaintToWire конвертирует модель жалобы в DTO для сервера
func ComplaintToWire(c *models.Complaint, capturedAt time.Time) api.Complaint {
	return api.Complaint{
		CapturedAt:  capturedAt,
		BusinessKey: c.BusinessKey,
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		Description: c.Description,
		Category:    c.Category,
		Status:      c.Status,
		CapturedBy:  c.CapturedBy,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
	}
}

// ComplaintFromWire конвертирует ответ сервера в RemoteComplaint
func ComplaintFromWire(resp *api.ComplaintResponse) *models.RemoteComplaint {
	return &models.RemoteComplaint{
		ID:              resp.ID,
		ReferenceNumber: resp.ReferenceNumber,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
		Complaint: models.Complaint{
			BusinessKey: resp.BusinessKey,
			Name:        resp.Name,
			Phone:       resp.Phone,
			Address:     resp.Address,
			Description: resp.Description,
			Category:    resp.Category,
			Status:      resp.Status,
			CapturedBy:  resp.CapturedBy,
			Latitude:    resp.Latitude,
			Longitude:   resp.Longitude,
		},
	}
}

// MediaToWire конвертирует вложение в запрос загрузки
func MediaToWire(m *models.MediaAttachment) api.MediaUploadRequest {
	return api.MediaUploadRequest{
		BusinessKey: m.BusinessKey,
		FileName:    m.FileName,
		MimeType:    m.MimeType,
		Data:        m.Data,
	}
}
