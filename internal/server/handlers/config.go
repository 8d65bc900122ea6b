package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/fieldsync/internal/validation"
	"github.com/iudanet/fieldsync/pkg/api"
)

// ConfigHandler отдает конфигурацию для offline-кеша клиента
type ConfigHandler struct {
	logger *slog.Logger
	values map[string]json.RawMessage
}

// NewConfigHandler builds the response once; values do not change at runtime.
func NewConfigHandler(logger *slog.Logger, categories, statuses []string) (*ConfigHandler, error) {
	raw := map[string]any{
		"categories":     categories,
		"statuses":       statuses,
		"max_media_size": validation.MaxMediaSize,
	}

	values := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal config %q: %w", key, err)
		}
		values[key] = data
	}

	return &ConfigHandler{logger: logger, values: values}, nil
}

// Config обрабатывает GET /api/v1/config
func (h *ConfigHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, api.ConfigResponse{Values: h.values})
}
