package api

import (
	"encoding/json"
	"time"
)

// Complaint представляет поля жалобы, передаваемые между клиентом и сервером
type Complaint struct {
	CapturedAt  time.Time `json:"captured_at"`
	BusinessKey string    `json:"business_key"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CapturedBy  string    `json:"captured_by"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
}

// ComplaintResponse представляет сущность жалобы на сервере
type ComplaintResponse struct {
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"` // UpdatedAt last-modified, увеличивается при каждом update
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	Complaint
}

// SubmitResponse is returned by the create endpoint.
// Created is false when an entity with the same business key already existed;
// the create call is idempotent and returns that entity.
type SubmitResponse struct {
	Complaint *ComplaintResponse `json:"complaint,omitempty"`
	ID        string             `json:"id"`
	Success   bool               `json:"success"`
	Created   bool               `json:"created"`
}

// UpdateComplaintRequest carries a partial or full tracked field set.
type UpdateComplaintRequest struct {
	Fields map[string]string `json:"fields"`
}

// MediaUploadRequest представляет загрузку вложения к жалобе
type MediaUploadRequest struct {
	BusinessKey string `json:"business_key"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	Data        []byte `json:"data"`
}

// MediaUploadResponse представляет ответ на загрузку вложения
type MediaUploadResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// ConfigResponse содержит конфигурацию для offline-кеша (категории, статусы и т.д.)
type ConfigResponse struct {
	Values map[string]json.RawMessage `json:"values"`
}

// ErrorResponse represents an error returned by the server
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
