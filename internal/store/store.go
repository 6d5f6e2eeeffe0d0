// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"options-engine/internal/models"
)

// DataStore defines the interface for price-history and analysis
// persistence. The analysis core never touches this directly; it is
// the concrete form of the external price-history provider.
type DataStore interface {
	// Price history
	SavePricePoints(ctx context.Context, symbol string, points []models.PricePoint) error
	GetPricePoints(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error)
	GetFreshness(ctx context.Context, symbol string) (time.Time, error)

	// Analysis snapshots
	SaveAnalysis(ctx context.Context, symbol string, analysis *models.RegimeAnalysis) error
	GetAnalyses(ctx context.Context, symbol string, limit int) ([]AnalysisRecord, error)

	// Lifecycle
	Close() error
}

// AnalysisRecord is one persisted analysis snapshot.
type AnalysisRecord struct {
	ID        int64
	Symbol    string
	CreatedAt time.Time
	Analysis  models.RegimeAnalysis
}
