package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/fieldsync/internal/server/storage"
	"github.com/iudanet/fieldsync/pkg/api"
)

// maxBodySize ограничивает тело запроса для JSON эндпоинтов без вложений
const maxBodySize = 1 << 20

func writeJSON(logger *slog.Logger, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, statusCode int, message string) {
	writeJSON(logger, w, statusCode, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

func complaintToResponse(c *storage.Complaint) *api.ComplaintResponse {
	return &api.ComplaintResponse{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Complaint: api.Complaint{
			CapturedAt:  c.CapturedAt,
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
		},
	}
}
