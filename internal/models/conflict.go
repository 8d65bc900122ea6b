package models

import "time"

// ConflictItem описывает расхождение между локальной записью в очереди
// и авторитетной версией на сервере, которое не удалось разрешить автоматически.
// ID совпадает с ID записи OfflineRecord: элемент живет, пока существует запись.
type ConflictItem struct {
	CapturedAt       time.Time  `json:"captured_at"`        // CapturedAt время захвата локальной версии
	RemoteModifiedAt time.Time  `json:"remote_modified_at"` // RemoteModifiedAt last-modified серверной версии
	DetectedAt       time.Time  `json:"detected_at"`        // DetectedAt когда конфликт был обнаружен
	ID               string     `json:"id"`                 // ID идентификатор записи в очереди
	Type             RecordType `json:"type"`
	ConflictFields   []string   `json:"conflict_fields"` // ConflictFields отсортированное множество различающихся полей
	LocalData        Complaint  `json:"local_data"`
	RemoteData       Complaint  `json:"remote_data"`
}

// DivergenceWindow returns how much later the remote change happened than the local capture.
func (c *ConflictItem) DivergenceWindow() time.Duration {
	return c.RemoteModifiedAt.Sub(c.CapturedAt)
}

// HasField reports whether the named field is in conflict.
func (c *ConflictItem) HasField(name string) bool {
	for _, f := range c.ConflictFields {
		if f == name {
			return true
		}
	}
	return false
}

// ResolutionStrategy определяет способ разрешения конфликта
type ResolutionStrategy string

const (
	ResolutionKeepLocal  ResolutionStrategy = "local"  // отправить локальную версию
	ResolutionKeepRemote ResolutionStrategy = "remote" // отбросить локальную запись
	ResolutionMerge      ResolutionStrategy = "merge"  // применить объединенный набор полей
	ResolutionAuto       ResolutionStrategy = "auto"   // разрешено автоматическими правилами
)
