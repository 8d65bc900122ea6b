package analytics

import "github.com/iudanet/fieldsync/internal/models"

const (
	kib = 1024
	mib = 1024 * kib
)

// DataSizeScore оценивает объем данных в очереди
func DataSizeScore(bytes int64) float64 {
	switch {
	case bytes < 1*mib:
		return 100
	case bytes < 10*mib:
		return 80
	case bytes < 50*mib:
		return 60
	}
	return 40
}

// PendingScore оценивает число записей в очереди
func PendingScore(pending int) float64 {
	switch {
	case pending == 0:
		return 100
	case pending <= 10:
		return 90
	case pending <= 50:
		return 70
	case pending <= 100:
		return 50
	}
	return 30
}

// Score is the mean of the success rate, data size and pending sub-scores
func Score(s models.HealthSnapshot) float64 {
	return (clampRate(s.SyncSuccessRate) + DataSizeScore(s.DataUsage) + PendingScore(s.PendingOperations)) / 3
}

// Report derives the health report from a snapshot
func Report(s models.HealthSnapshot) models.HealthReport {
	score := Score(s)
	return models.HealthReport{
		HealthSnapshot: s,
		Score:          score,
		IsHealthy:      score > models.HealthyScoreThreshold,
	}
}
