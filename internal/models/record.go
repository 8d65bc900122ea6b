package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// RecordType определяет раздел очереди, в котором хранится запись
type RecordType string

const (
	RecordTypeSubmission RecordType = "submission" // Complaint ожидающий отправки
	RecordTypeMedia      RecordType = "media"      // Вложение (фото, аудио)
	RecordTypeConfig     RecordType = "config"     // Закешированная конфигурация
)

// RecordTypes lists every queue partition in drain order.
var RecordTypes = []RecordType{RecordTypeSubmission, RecordTypeMedia, RecordTypeConfig}

// Valid reports whether t is one of the known partitions.
func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeSubmission, RecordTypeMedia, RecordTypeConfig:
		return true
	}
	return false
}

// ParseRecordType converts user input ("submission", "media", "config") to RecordType
func ParseRecordType(s string) (RecordType, error) {
	t := RecordType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown record type %q", s)
	}
	return t, nil
}

// OfflineRecord представляет одну операцию в локальной очереди.
// Запись создается producer'ом через DurableQueueStore и изменяется только
// оркестратором синхронизации (RetryCount) либо удаляется после успеха/drop.
type OfflineRecord struct {
	CapturedAt time.Time       `json:"captured_at"` // CapturedAt момент захвата данных оператором
	ID         string          `json:"id"`          // ID "<type>_<ULID>", никогда не переиспользуется
	Type       RecordType      `json:"type"`        // Type раздел очереди
	Payload    json.RawMessage `json:"payload"`     // Payload непрозрачные данные producer'а
	RetryCount int             `json:"retry_count"` // RetryCount число неудачных попыток отправки
}

// NewRecordID builds a record id from the type, the capture time and random
// entropy. ULIDs sort lexically by time, so ids of one type sort in capture order.
func NewRecordID(t RecordType, capturedAt time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(capturedAt), ulid.DefaultEntropy())
	return string(t) + "_" + id.String()
}

// Size returns the payload size in bytes
func (r *OfflineRecord) Size() int {
	return len(r.Payload)
}

// Clone создает глубокую копию записи
func (r *OfflineRecord) Clone() *OfflineRecord {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	return &OfflineRecord{
		ID:         r.ID,
		Type:       r.Type,
		Payload:    payload,
		CapturedAt: r.CapturedAt,
		RetryCount: r.RetryCount,
	}
}
