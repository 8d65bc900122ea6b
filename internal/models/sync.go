package models

import "time"

// Типы соединения
const (
	ConnectionNone     = "none"
	ConnectionWiFi     = "wifi"
	ConnectionEthernet = "ethernet"
	ConnectionCellular = "cellular"
	ConnectionUnknown  = "unknown"
)

// ConnectivityState is the process-wide connectivity snapshot.
type ConnectivityState struct {
	ConnectionType string `json:"connection_type"`
	IsOnline       bool   `json:"is_online"`
}

// Offline returns the canonical offline state
func Offline() ConnectivityState {
	return ConnectivityState{IsOnline: false, ConnectionType: ConnectionNone}
}

// Online returns an online state with the given connection type.
func Online(connectionType string) ConnectivityState {
	if connectionType == "" || connectionType == ConnectionNone {
		connectionType = ConnectionUnknown
	}
	return ConnectivityState{IsOnline: true, ConnectionType: connectionType}
}

// SyncOutcome агрегирует результаты одного цикла drain.
// Не сохраняется, живет в памяти до следующего цикла.
type SyncOutcome struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Trigger       string    `json:"trigger"`        // Trigger причина запуска (connectivity, queue, manual)
	SuccessCount  int       `json:"success_count"`  // SuccessCount успешно синхронизированные записи
	FailureCount  int       `json:"failure_count"`  // FailureCount неудачные попытки (включая dropped)
	ConflictCount int       `json:"conflict_count"` // ConflictCount записи, ожидающие ручного разрешения
	DroppedCount  int       `json:"dropped_count"`  // DroppedCount записи, удаленные после исчерпания попыток
}

// Total returns the number of records processed in the cycle.
func (o *SyncOutcome) Total() int {
	return o.SuccessCount + o.FailureCount + o.ConflictCount
}
