// Package marketdata supplies ordered price history to the analyzer.
// The analysis core never fetches data itself; it consumes whatever a
// HistoryProvider hands it.
package marketdata

import (
	"context"

	"options-engine/internal/models"
	"options-engine/internal/store"
)

// HistoryProvider returns chronological price history for a symbol.
// A limit of zero or less means all available points; full regime
// resolution wants at least the last 60.
type HistoryProvider interface {
	History(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error)
}

// StoreProvider reads price history from the persistent data store.
type StoreProvider struct {
	store store.DataStore
}

// NewStoreProvider creates a provider backed by the given store.
func NewStoreProvider(s store.DataStore) *StoreProvider {
	return &StoreProvider{store: s}
}

// History implements HistoryProvider.
func (p *StoreProvider) History(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	return p.store.GetPricePoints(ctx, symbol, limit)
}
