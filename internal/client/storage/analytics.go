package storage

import (
	"context"

	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out analytics_mock.go . AnalyticsStorage

// AnalyticsStorage persists pipeline statistics across process restarts
type AnalyticsStorage interface {
	// SaveAnalytics overwrites the stored snapshot
	SaveAnalytics(ctx context.Context, snapshot *models.HealthSnapshot) error

	// LoadAnalytics returns the stored snapshot or nil if none was saved yet
	LoadAnalytics(ctx context.Context) (*models.HealthSnapshot, error)
}
