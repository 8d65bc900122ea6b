package models

import (
	"sort"
	"time"
)

// Имена отслеживаемых полей жалобы. Только эти поля участвуют в поиске конфликтов.
const (
	FieldName        = "name"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldStatus      = "status"
)

// ContentFields are the fields owned by the operator who captured the complaint.
var ContentFields = []string{FieldName, FieldPhone, FieldAddress, FieldDescription, FieldCategory}

// WorkflowFields are the fields owned by the back office; the server is authoritative for them.
var WorkflowFields = []string{FieldStatus}

// TrackedFields is the allow-list of mutable fields compared during conflict detection.
var TrackedFields = append(append([]string{}, ContentFields...), WorkflowFields...)

// Статусы workflow жалобы
const (
	StatusNew        = "new"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Complaint представляет жалобу, зафиксированную оператором в поле.
// Это payload записей типа submission.
type Complaint struct {
	BusinessKey string  `json:"business_key"`        // BusinessKey стабильный ключ сущности на сервере (не ID в очереди)
	Name        string  `json:"name"`                // Name имя заявителя
	Phone       string  `json:"phone"`               // Phone контактный телефон
	Address     string  `json:"address"`             // Address адрес происшествия
	Description string  `json:"description"`         // Description свободный текст жалобы
	Category    string  `json:"category"`            // Category классификация
	Status      string  `json:"status"`              // Status состояние workflow
	CapturedBy  string  `json:"captured_by"`         // CapturedBy оператор, создавший запись
	Latitude    float64 `json:"latitude,omitempty"`  // Latitude координаты (опционально)
	Longitude   float64 `json:"longitude,omitempty"` // Longitude координаты (опционально)
}

// RemoteComplaint is the authoritative server-side version of a complaint.
type RemoteComplaint struct {
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"` // UpdatedAt время последнего изменения на сервере
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	Complaint
}

// MediaAttachment представляет вложение, привязанное к жалобе по business key.
type MediaAttachment struct {
	BusinessKey string `json:"business_key"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	Data        []byte `json:"data"`
}

// Field returns the value of a tracked field by name.
func (c *Complaint) Field(name string) string {
	switch name {
	case FieldName:
		return c.Name
	case FieldPhone:
		return c.Phone
	case FieldAddress:
		return c.Address
	case FieldDescription:
		return c.Description
	case FieldCategory:
		return c.Category
	case FieldStatus:
		return c.Status
	}
	return ""
}

// SetField sets a tracked field by name. Unknown names are ignored.
func (c *Complaint) SetField(name, value string) {
	switch name {
	case FieldName:
		c.Name = value
	case FieldPhone:
		c.Phone = value
	case FieldAddress:
		c.Address = value
	case FieldDescription:
		c.Description = value
	case FieldCategory:
		c.Category = value
	case FieldStatus:
		c.Status = value
	}
}

// Fields returns the tracked fields as a map (used for partial remote updates)
func (c *Complaint) Fields() map[string]string {
	fields := make(map[string]string, len(TrackedFields))
	for _, f := range TrackedFields {
		fields[f] = c.Field(f)
	}
	return fields
}

// DiffFields returns the sorted names of tracked fields whose values differ.
func (c *Complaint) DiffFields(other *Complaint) []string {
	var diff []string
	for _, f := range TrackedFields {
		if c.Field(f) != other.Field(f) {
			diff = append(diff, f)
		}
	}
	sort.Strings(diff)
	return diff
}

// IsWorkflowField reports whether the field is owned by the back office.
func IsWorkflowField(name string) bool {
	for _, f := range WorkflowFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsTrackedField reports whether the field is part of the conflict allow-list.
func IsTrackedField(name string) bool {
	for _, f := range TrackedFields {
		if f == name {
			return true
		}
	}
	return false
}
