package models

import "time"

// HealthyScoreThreshold is the score above which the pipeline counts as healthy.
const HealthyScoreThreshold = 80

// HealthSnapshot представляет накопленную статистику offline-конвейера.
// Сохраняется AnalyticsStore инкрементально и переживает перезапуск процесса.
type HealthSnapshot struct {
	LastSyncTime      time.Time     `json:"last_sync_time"`      // LastSyncTime последний успешный sync
	OfflineSince      time.Time     `json:"offline_since"`       // OfflineSince начало текущей offline-сессии (zero если online)
	TotalOfflineTime  time.Duration `json:"total_offline_time"`  // TotalOfflineTime суммарное время без сети
	DataUsage         int64         `json:"data_usage"`          // DataUsage оценка объема данных в очереди, байты
	SyncSuccessRate   float64       `json:"sync_success_rate"`   // SyncSuccessRate скользящий процент успеха [0,100]
	OfflineSessions   int           `json:"offline_sessions"`    // OfflineSessions количество offline-сессий
	PendingOperations int           `json:"pending_operations"` // PendingOperations записи в очереди
}

// HealthReport is a snapshot plus its derived score.
type HealthReport struct {
	HealthSnapshot
	Score     float64 `json:"score"`
	IsHealthy bool    `json:"is_healthy"`
}
