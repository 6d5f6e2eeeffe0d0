// Package regime classifies price history into a market regime and
// scores candidate option strategies against it. The classification is
// a heuristic built from trailing windows of returns, volatility and
// volume confirmation; the thresholds and weights below are fixed
// policy constants, not tunables.
package regime

import (
	"fmt"
	"math"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

const (
	shortWindow  = 5
	mediumWindow = 20
	longWindow   = 60

	// Strength is a weighted blend of trend consistency and volume
	// confirmation.
	trendWeight  = 0.7
	volumeWeight = 0.3

	// Momentum beyond +/-10 percent labels the trend directional.
	trendMomentumThreshold = 10.0

	// Annualized volatility labels.
	highVolThreshold   = 0.30
	mediumVolThreshold = 0.15

	maxRegimeConfidence = 95.0

	tradingDaysPerYear = 252
)

// windowStats holds the per-window measurements regime strength is
// derived from.
type windowStats struct {
	regimeType models.RegimeType
	timeframe  string
	momentum   float64
	volatility float64
	strength   float64
}

// AnalyzeRegime classifies the trailing price series into the dominant
// market regime. The series is partitioned into three overlapping
// windows (last 5, 20 and 60 points); the window with the highest
// strength score wins. Windows with fewer than two points degrade to
// zero/neutral signals rather than erroring.
func AnalyzeRegime(series []models.PricePoint, currentPrice float64) (models.MarketRegime, error) {
	if len(series) == 0 {
		return models.MarketRegime{}, errors.Wrap(errors.ErrEmptySeries, "analyze regime")
	}
	if currentPrice <= 0 {
		return models.MarketRegime{}, errors.NewValidationError("currentPrice", currentPrice, "must be positive")
	}

	windows := []struct {
		regimeType models.RegimeType
		size       int
		timeframe  string
	}{
		{models.RegimeShortTerm, shortWindow, "1-2 weeks"},
		{models.RegimeMediumTerm, mediumWindow, "2-8 weeks"},
		{models.RegimeLongTerm, longWindow, "2-6 months"},
	}

	// Ties go to the longer window: a trend confirmed across the whole
	// series is classified at the widest time-scale it holds for.
	var dominant windowStats
	for i, w := range windows {
		stats := measureWindow(tail(series, w.size), w.regimeType, w.timeframe)
		if i == 0 || stats.strength >= dominant.strength {
			dominant = stats
		}
	}

	return models.MarketRegime{
		Type:       dominant.regimeType,
		Trend:      classifyTrend(dominant.momentum),
		Volatility: classifyVolatility(dominant.volatility),
		Momentum:   dominant.momentum,
		Confidence: math.Min(maxRegimeConfidence, dominant.strength*100),
		Timeframe:  dominant.timeframe,
	}, nil
}

// measureWindow computes momentum, annualized volatility and the
// strength score for one trailing window.
func measureWindow(points []models.PricePoint, typ models.RegimeType, timeframe string) windowStats {
	stats := windowStats{regimeType: typ, timeframe: timeframe}
	if len(points) == 0 {
		return stats
	}

	returns := simpleReturns(points)
	stats.volatility = stdDev(returns) * math.Sqrt(tradingDaysPerYear)

	first := points[0].Close
	last := points[len(points)-1].Close
	if len(points) >= 2 && first != 0 {
		stats.momentum = (last - first) / first * 100
	}

	stats.strength = trendWeight*trendConsistency(returns) + volumeWeight*volumeConfirmation(points)
	return stats
}

// trendConsistency is the share of returns agreeing with the majority
// direction. An empty returns list means no signal.
func trendConsistency(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var positive, negative int
	for _, r := range returns {
		if r > 0 {
			positive++
		} else if r < 0 {
			negative++
		}
	}
	strongest := positive
	if negative > strongest {
		strongest = negative
	}
	return float64(strongest) / float64(len(returns))
}

// volumeConfirmation compares the most recent volume against the
// window average, capped at 1.
func volumeConfirmation(points []models.PricePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var total float64
	for _, p := range points {
		total += float64(p.Volume)
	}
	avg := total / float64(len(points))
	if avg == 0 {
		return 0
	}
	recent := float64(points[len(points)-1].Volume)
	return math.Min(1, recent/avg)
}

func classifyTrend(momentum float64) models.TrendDirection {
	switch {
	case momentum > trendMomentumThreshold:
		return models.TrendBullish
	case momentum < -trendMomentumThreshold:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

func classifyVolatility(vol float64) models.VolatilityLevel {
	switch {
	case vol > highVolThreshold:
		return models.VolatilityHigh
	case vol > mediumVolThreshold:
		return models.VolatilityMedium
	default:
		return models.VolatilityLow
	}
}

// recentVolatility is the annualized volatility of the trailing n
// points, used for the volatility-spike risk factor.
func recentVolatility(series []models.PricePoint, n int) float64 {
	return stdDev(simpleReturns(tail(series, n))) * math.Sqrt(tradingDaysPerYear)
}

// describeRegime renders the always-first reasoning line for a regime.
func describeRegime(r models.MarketRegime) string {
	return fmt.Sprintf("Market is in a %s %s regime with %s volatility", r.Type, r.Trend, r.Volatility)
}
