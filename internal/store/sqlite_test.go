package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPoints(n int, start time.Time) []models.PricePoint {
	points := make([]models.PricePoint, n)
	for i := range points {
		close := 100 + float64(i)
		points[i] = models.PricePoint{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Open:      close - 0.5,
			High:      close + 1,
			Low:       close - 1,
			Close:     close,
			Volume:    int64(1000 + i),
		}
	}
	return points
}

func TestSQLiteStore_SaveAndGetPricePoints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.SavePricePoints(ctx, "AAPL", testPoints(10, start)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetPricePoints(ctx, "AAPL", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d points, want 10", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("points not chronological at index %d", i)
		}
	}
	if got[0].Close != 100 || got[9].Close != 109 {
		t.Errorf("closes out of order: first %v last %v", got[0].Close, got[9].Close)
	}
}

func TestSQLiteStore_LimitReturnsMostRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.SavePricePoints(ctx, "AAPL", testPoints(10, start)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetPricePoints(ctx, "AAPL", 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	// The limited window keeps the newest points, still chronological.
	if got[0].Close != 107 || got[2].Close != 109 {
		t.Errorf("limited window wrong: first %v last %v", got[0].Close, got[2].Close)
	}
}

func TestSQLiteStore_UpsertOnDuplicateTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	points := testPoints(5, start)
	if err := s.SavePricePoints(ctx, "AAPL", points); err != nil {
		t.Fatalf("first save: %v", err)
	}

	points[2].Close = 999
	if err := s.SavePricePoints(ctx, "AAPL", points); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.GetPricePoints(ctx, "AAPL", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("duplicate timestamps were not replaced: %d points", len(got))
	}
	if got[2].Close != 999 {
		t.Errorf("replaced close = %v, want 999", got[2].Close)
	}
}

func TestSQLiteStore_SymbolsAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.SavePricePoints(ctx, "AAPL", testPoints(5, start)); err != nil {
		t.Fatalf("save AAPL: %v", err)
	}
	if err := s.SavePricePoints(ctx, "MSFT", testPoints(3, start)); err != nil {
		t.Fatalf("save MSFT: %v", err)
	}

	got, err := s.GetPricePoints(ctx, "MSFT", 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d MSFT points, want 3", len(got))
	}
}

func TestSQLiteStore_Freshness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetFreshness(ctx, "AAPL")
	if !errors.Is(err, errors.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound for empty store, got %v", err)
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.SavePricePoints(ctx, "AAPL", testPoints(5, start)); err != nil {
		t.Fatalf("save: %v", err)
	}

	ts, err := s.GetFreshness(ctx, "AAPL")
	if err != nil {
		t.Fatalf("freshness: %v", err)
	}
	want := start.Add(4 * 24 * time.Hour)
	if !ts.Equal(want) {
		t.Errorf("freshness = %v, want %v", ts, want)
	}
}

func TestSQLiteStore_EmptySymbolRejected(t *testing.T) {
	s := newTestStore(t)
	err := s.SavePricePoints(context.Background(), "", testPoints(1, time.Now()))
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSQLiteStore_SaveAndGetAnalyses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	analysis := &models.RegimeAnalysis{
		CurrentRegime: models.MarketRegime{
			Type:       models.RegimeLongTerm,
			Trend:      models.TrendBullish,
			Volatility: models.VolatilityLow,
			Momentum:   19.9,
			Confidence: 95,
			Timeframe:  "2-6 months",
		},
		MarketInsights: []string{"Market is in a long-term bullish regime with low volatility"},
	}

	if err := s.SaveAnalysis(ctx, "AAPL", analysis); err != nil {
		t.Fatalf("save analysis: %v", err)
	}

	records, err := s.GetAnalyses(ctx, "AAPL", 10)
	if err != nil {
		t.Fatalf("get analyses: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", rec.Symbol)
	}
	if rec.Analysis.CurrentRegime.Type != models.RegimeLongTerm {
		t.Errorf("round-tripped regime type = %s", rec.Analysis.CurrentRegime.Type)
	}
	if rec.Analysis.CurrentRegime.Confidence != 95 {
		t.Errorf("round-tripped confidence = %v", rec.Analysis.CurrentRegime.Confidence)
	}
	if len(rec.Analysis.MarketInsights) != 1 {
		t.Errorf("insights lost in round trip: %v", rec.Analysis.MarketInsights)
	}
}

func TestSQLiteStore_NilAnalysisRejected(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveAnalysis(context.Background(), "AAPL", nil); err == nil {
		t.Fatal("expected error for nil analysis")
	}
}
