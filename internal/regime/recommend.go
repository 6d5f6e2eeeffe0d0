package regime

import (
	"fmt"
	"math"
	"sort"
	"time"

	"options-engine/internal/errors"
	"options-engine/internal/models"
	"options-engine/internal/pricing"
)

const (
	// DefaultRiskFreeRate is used when the caller has no configured rate.
	DefaultRiskFreeRate = 0.05

	// Recommendations below this confidence are discarded.
	minRecommendationConfidence = 60.0

	// At most this many recommendations are returned per pass.
	maxRecommendations = 3

	// Composite ranking weights.
	confidenceRankWeight  = 0.6
	probabilityRankWeight = 0.4

	// Time to expiry is floored to avoid zero/negative pricing inputs.
	minYearsToExpiry = 0.001

	// An absolute theoretical edge beyond this is worth calling out.
	notableEdge = 0.5

	// Theta decay beyond this per day is considered significant.
	significantTheta = 0.1

	probabilityCap = 85.0
)

// assumedVolatility maps the regime's volatility label to the fixed
// volatility fed into the pricer. Recommendations do not solve implied
// volatility from a market price; the label lookup is the model input.
func assumedVolatility(level models.VolatilityLevel) (float64, error) {
	switch level {
	case models.VolatilityLow:
		return 0.15, nil
	case models.VolatilityMedium:
		return 0.25, nil
	case models.VolatilityHigh:
		return 0.40, nil
	default:
		return 0, errors.NewValidationError("volatility", level, "unknown volatility level")
	}
}

// AnalyzeStrategy scores a single catalog strategy against the current
// regime. Only the strategy's first leg is priced; multi-leg strategies
// are not jointly valued. That simplification is deliberate and load
// bearing for the ranking outputs.
func AnalyzeStrategy(strategy models.Strategy, stockPrice float64, r models.MarketRegime, riskFreeRate float64) (models.StrategyRecommendation, error) {
	if len(strategy.Legs) == 0 {
		return models.StrategyRecommendation{}, errors.NewCatalogError(strategy.ID, "legs", "strategy has no legs", nil)
	}
	if stockPrice <= 0 {
		return models.StrategyRecommendation{}, errors.NewValidationError("stockPrice", stockPrice, "must be positive")
	}

	leg := strategy.Legs[0]
	if leg.Expiration.IsZero() {
		return models.StrategyRecommendation{}, errors.NewCatalogError(strategy.ID, "expiration", "leg has no expiration date", nil)
	}

	years := time.Until(leg.Expiration).Hours() / (24 * 365)
	if years < minYearsToExpiry {
		years = minYearsToExpiry
	}

	vol, err := assumedVolatility(r.Volatility)
	if err != nil {
		return models.StrategyRecommendation{}, err
	}

	theoretical, err := pricing.Price(stockPrice, leg.Strike, riskFreeRate, vol, years, leg.Type)
	if err != nil {
		return models.StrategyRecommendation{}, errors.Wrapf(err, "price strategy %s", strategy.ID)
	}
	greeks, err := pricing.ComputeGreeks(stockPrice, leg.Strike, riskFreeRate, vol, years, leg.Type)
	if err != nil {
		return models.StrategyRecommendation{}, errors.Wrapf(err, "greeks for strategy %s", strategy.ID)
	}

	edge := theoretical - leg.Price

	confidence := 50.0
	if strategy.Regime == r.Type {
		confidence += 20
	}
	if strategy.MarketCondition == r.Trend {
		confidence += 15
	}
	if edge > 0 {
		confidence += math.Min(20, edge*100)
	} else {
		confidence += math.Max(-20, edge*100)
	}
	if strategy.VolatilityBias == models.BiasLong && r.Volatility == models.VolatilityHigh {
		confidence += 10
	}
	if strategy.VolatilityBias == models.BiasShort && r.Volatility == models.VolatilityLow {
		confidence += 10
	}
	if strategy.TimeDecay == models.DecayPositive && math.Abs(greeks.Theta) > significantTheta {
		confidence += 5
	}
	confidence = clamp(confidence, 0, 100)

	probability := 50.0
	if strategy.Regime == r.Type {
		probability += 15
	}
	if strategy.MarketCondition == r.Trend {
		probability += 10
	}
	probability = math.Min(probabilityCap, probability)

	maxProfit := 1000.0
	if strategy.MaxProfit != nil {
		maxProfit = *strategy.MaxProfit
	}
	maxLoss := 500.0
	if strategy.MaxLoss != nil {
		maxLoss = *strategy.MaxLoss
	}

	return models.StrategyRecommendation{
		Strategy:   strategy,
		Confidence: confidence,
		Reasoning:  buildReasoning(strategy, r, edge, greeks.Theta),
		OptimalEntry: models.OptimalEntry{
			Price:             leg.Price,
			ImpliedVolatility: vol,
			TimeToExpiry:      years,
		},
		RiskReward: models.RiskReward{
			MaxProfit:           maxProfit,
			MaxLoss:             maxLoss,
			ProbabilityOfProfit: probability,
		},
		BlackScholes: models.BlackScholesAnalysis{
			TheoreticalPrice: theoretical,
			MarketPrice:      leg.Price,
			Edge:             edge,
			Greeks:           greeks,
		},
	}, nil
}

// buildReasoning assembles the ordered, condition-gated reasoning
// lines for a recommendation. The order and triggering conditions are
// fixed; only the wording is free.
func buildReasoning(strategy models.Strategy, r models.MarketRegime, edge, theta float64) []string {
	reasoning := []string{describeRegime(r)}

	if strategy.Regime == r.Type {
		reasoning = append(reasoning, fmt.Sprintf("Strategy is aligned with the dominant %s regime", r.Type))
	}
	if math.Abs(edge) > notableEdge {
		if edge > 0 {
			reasoning = append(reasoning, fmt.Sprintf("Option appears underpriced by %.2f vs theoretical value", edge))
		} else {
			reasoning = append(reasoning, fmt.Sprintf("Option appears overpriced by %.2f vs theoretical value", -edge))
		}
	}
	if strategy.MarketCondition == r.Trend {
		reasoning = append(reasoning, fmt.Sprintf("Momentum of %.1f%% supports the %s bias", r.Momentum, strategy.MarketCondition))
	}
	if math.Abs(theta) > significantTheta {
		reasoning = append(reasoning, fmt.Sprintf("Significant time decay of %.3f per day", theta))
	}
	if r.Volatility == models.VolatilityHigh && strategy.VolatilityBias == models.BiasLong {
		reasoning = append(reasoning, "High volatility environment favors long-volatility positioning")
	}

	return reasoning
}

// GetStrategyRecommendations filters the catalog to strategies matching
// the regime's type and trend, scores each survivor, discards weak
// candidates and returns the top three ranked by a composite of
// confidence and probability of profit.
func GetStrategyRecommendations(r models.MarketRegime, stockPrice float64, catalog []models.Strategy, riskFreeRate float64) ([]models.StrategyRecommendation, error) {
	recommendations := make([]models.StrategyRecommendation, 0, len(catalog))

	for _, strategy := range catalog {
		if strategy.Regime != r.Type {
			continue
		}
		if strategy.MarketCondition != r.Trend && strategy.MarketCondition != models.TrendNeutral {
			continue
		}

		rec, err := AnalyzeStrategy(strategy, stockPrice, r, riskFreeRate)
		if err != nil {
			return nil, err
		}
		if rec.Confidence <= minRecommendationConfidence {
			continue
		}
		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return rankScore(recommendations[i]) > rankScore(recommendations[j])
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

func rankScore(rec models.StrategyRecommendation) float64 {
	return rec.Confidence*confidenceRankWeight + rec.RiskReward.ProbabilityOfProfit*probabilityRankWeight
}

// PerformRegimeAnalysis runs the full pipeline: regime classification,
// strategy recommendation and narrative insight/risk generation. The
// insights and risk factors reflect the whole regime and are
// independent of the catalog.
func PerformRegimeAnalysis(series []models.PricePoint, currentPrice float64, catalog []models.Strategy) (models.RegimeAnalysis, error) {
	r, err := AnalyzeRegime(series, currentPrice)
	if err != nil {
		return models.RegimeAnalysis{}, err
	}

	recommendations, err := GetStrategyRecommendations(r, currentPrice, catalog, DefaultRiskFreeRate)
	if err != nil {
		return models.RegimeAnalysis{}, err
	}

	return models.RegimeAnalysis{
		CurrentRegime:   r,
		Recommendations: recommendations,
		MarketInsights:  marketInsights(r),
		RiskFactors:     riskFactors(r, series),
	}, nil
}

func marketInsights(r models.MarketRegime) []string {
	insights := []string{describeRegime(r)}

	if math.Abs(r.Momentum) > 20 {
		insights = append(insights, fmt.Sprintf("Strong momentum of %.1f%% over the %s window", r.Momentum, r.Type))
	}
	if r.Volatility == models.VolatilityHigh {
		insights = append(insights, "Elevated volatility favors premium-selling and defined-risk structures")
	}
	if r.Confidence > 80 {
		insights = append(insights, fmt.Sprintf("Regime signal is strong at %.0f%% confidence", r.Confidence))
	}

	return insights
}

func riskFactors(r models.MarketRegime, series []models.PricePoint) []string {
	var factors []string

	if r.Confidence < 70 {
		factors = append(factors, fmt.Sprintf("Regime confidence is only %.0f%%; signals may be unreliable", r.Confidence))
	}
	if r.Volatility == models.VolatilityHigh {
		factors = append(factors, "High volatility increases the risk of sharp adverse moves")
	}
	if recentVolatility(series, shortWindow) > 0.5 {
		factors = append(factors, "Volatility spike detected in the last five sessions")
	}
	if r.Type == models.RegimeShortTerm && r.Momentum > 30 {
		factors = append(factors, "Extreme short-term momentum raises reversal risk")
	}

	return factors
}
