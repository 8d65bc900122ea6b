package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/server/storage"
	"github.com/iudanet/fieldsync/internal/validation"
	"github.com/iudanet/fieldsync/pkg/api"
)

// ComplaintHandler обрабатывает CRUD запросы жалоб
type ComplaintHandler struct {
	logger   *slog.Logger
	storage  storage.ComplaintStorage
	statuses []string
}

// NewComplaintHandler creates a new complaint handler.
// statuses ограничивает допустимые значения workflow; пустой список - без ограничений.
func NewComplaintHandler(logger *slog.Logger, s storage.ComplaintStorage, statuses []string) *ComplaintHandler {
	return &ComplaintHandler{
		logger:   logger,
		storage:  s,
		statuses: statuses,
	}
}

// Create обрабатывает POST /api/v1/complaints
// Повторная отправка с тем же business key возвращает 200 и created=false
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.Complaint
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode complaint", "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	complaint := &storage.Complaint{
		CapturedAt: req.CapturedAt,
		RemoteComplaint: models.RemoteComplaint{
			Complaint: models.Complaint{
				BusinessKey: req.BusinessKey,
				Name:        req.Name,
				Phone:       req.Phone,
				Address:     req.Address,
				Description: req.Description,
				Category:    req.Category,
				Status:      req.Status,
				CapturedBy:  req.CapturedBy,
				Latitude:    req.Latitude,
				Longitude:   req.Longitude,
			},
		},
	}
	if complaint.Status == "" {
		complaint.Status = models.StatusNew
	}

	if err := validation.ValidateComplaint(&complaint.Complaint); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validateStatus(complaint.Status); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	stored, created, err := h.storage.CreateComplaint(r.Context(), complaint)
	if err != nil {
		h.logger.Error("Failed to create complaint", "error", err, "business_key", req.BusinessKey)
		writeError(h.logger, w, http.StatusInternalServerError, "failed to store complaint")
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
		h.logger.Info("Complaint created",
			"business_key", stored.BusinessKey,
			"reference_number", stored.ReferenceNumber,
			"captured_by", stored.CapturedBy)
	} else {
		h.logger.Info("Complaint already exists", "business_key", stored.BusinessKey)
	}

	writeJSON(h.logger, w, statusCode, api.SubmitResponse{
		ID:        stored.ID,
		Success:   true,
		Created:   created,
		Complaint: complaintToResponse(stored),
	})
}

// Get обрабатывает GET /api/v1/complaints/{key}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	complaint, err := h.storage.GetComplaint(r.Context(), key)
	if err != nil {
		h.sendStorageError(w, err, key)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, complaintToResponse(complaint))
}

// Update обрабатывает PATCH /api/v1/complaints/{key}
// Применяет частичный набор отслеживаемых полей и увеличивает updated_at
func (h *ComplaintHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req api.UpdateComplaintRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode complaint update", "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Fields) == 0 {
		writeError(h.logger, w, http.StatusBadRequest, "no fields to update")
		return
	}

	current, err := h.storage.GetComplaint(r.Context(), key)
	if err != nil {
		h.sendStorageError(w, err, key)
		return
	}

	// Проверяем итоговую версию до записи
	candidate := current.Complaint
	for name, value := range req.Fields {
		if !models.IsTrackedField(name) {
			writeError(h.logger, w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", name))
			return
		}
		candidate.SetField(name, value)
	}
	if err := validation.ValidateComplaint(&candidate); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validateStatus(candidate.Status); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.storage.UpdateComplaint(r.Context(), key, req.Fields)
	if err != nil {
		h.sendStorageError(w, err, key)
		return
	}

	h.logger.Info("Complaint updated", "business_key", key, "fields", len(req.Fields))
	writeJSON(h.logger, w, http.StatusOK, complaintToResponse(updated))
}

func (h *ComplaintHandler) validateStatus(status string) error {
	if len(h.statuses) == 0 || slices.Contains(h.statuses, status) {
		return nil
	}
	return fmt.Errorf("unknown status %q", status)
}

func (h *ComplaintHandler) sendStorageError(w http.ResponseWriter, err error, key string) {
	switch {
	case errors.Is(err, storage.ErrComplaintNotFound):
		writeError(h.logger, w, http.StatusNotFound, "complaint not found")
	case errors.Is(err, storage.ErrUnknownField):
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Complaint storage failure", "error", err, "business_key", key)
		writeError(h.logger, w, http.StatusInternalServerError, "internal server error")
	}
}
