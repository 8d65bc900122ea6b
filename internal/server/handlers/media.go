package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/server/storage"
	"github.com/iudanet/fieldsync/internal/validation"
	"github.com/iudanet/fieldsync/pkg/api"
)

// maxMediaBody учитывает base64 (4/3) и JSON обвязку
const maxMediaBody = validation.MaxMediaSize*4/3 + maxBodySize

// MediaHandler обрабатывает загрузку вложений
type MediaHandler struct {
	logger  *slog.Logger
	storage storage.MediaStorage
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(logger *slog.Logger, s storage.MediaStorage) *MediaHandler {
	return &MediaHandler{
		logger:  logger,
		storage: s,
	}
}

// Upload обрабатывает POST /api/v1/media
// Возвращает 404, если жалоба с business key еще не создана
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req api.MediaUploadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMediaBody)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode media upload", "error", err)
		writeError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	attachment := &models.MediaAttachment{
		BusinessKey: req.BusinessKey,
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		Data:        req.Data,
	}
	if err := validation.ValidateMedia(attachment); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	media := &storage.Media{
		BusinessKey: attachment.BusinessKey,
		FileName:    attachment.FileName,
		MimeType:    attachment.MimeType,
		Data:        attachment.Data,
	}
	if err := h.storage.SaveMedia(r.Context(), media); err != nil {
		if errors.Is(err, storage.ErrComplaintNotFound) {
			writeError(h.logger, w, http.StatusNotFound, "complaint not found")
			return
		}
		h.logger.Error("Failed to save media", "error", err, "business_key", req.BusinessKey)
		writeError(h.logger, w, http.StatusInternalServerError, "failed to store media")
		return
	}

	h.logger.Info("Media stored",
		"business_key", media.BusinessKey,
		"file_name", media.FileName,
		"size", len(media.Data))
	writeJSON(h.logger, w, http.StatusCreated, api.MediaUploadResponse{ID: media.ID, Success: true})
}
