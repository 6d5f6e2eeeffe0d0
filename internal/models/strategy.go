package models

import "time"

// VolatilityBias represents a strategy's exposure to volatility.
type VolatilityBias string

const (
	BiasLong    VolatilityBias = "long"
	BiasShort   VolatilityBias = "short"
	BiasNeutral VolatilityBias = "neutral"
)

// Valid reports whether the volatility bias is a known value.
func (b VolatilityBias) Valid() bool {
	switch b {
	case BiasLong, BiasShort, BiasNeutral:
		return true
	}
	return false
}

// TimeDecayProfile represents how a strategy is affected by theta.
type TimeDecayProfile string

const (
	DecayPositive TimeDecayProfile = "positive"
	DecayNegative TimeDecayProfile = "negative"
	DecayNeutral  TimeDecayProfile = "neutral"
)

// Valid reports whether the time-decay profile is a known value.
func (d TimeDecayProfile) Valid() bool {
	switch d {
	case DecayPositive, DecayNegative, DecayNeutral:
		return true
	}
	return false
}

// Complexity tags a strategy's difficulty for learners.
type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// Valid reports whether the complexity level is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityBeginner, ComplexityIntermediate, ComplexityAdvanced:
		return true
	}
	return false
}

// StrategyLeg is one single-option component of a strategy.
type StrategyLeg struct {
	Type       OptionType
	Strike     float64
	Expiration time.Time
	Action     LegAction
	Quantity   int
	Price      float64
}

// Strategy is an immutable catalog entry describing a candidate
// options strategy. MaxProfit/MaxLoss are nil when the strategy's
// payoff is unbounded ("unlimited") in that direction.
type Strategy struct {
	ID              string
	Name            string
	Description     string
	Regime          RegimeType
	MarketCondition TrendDirection
	VolatilityBias  VolatilityBias
	TimeDecay       TimeDecayProfile
	Complexity      Complexity
	MaxProfit       *float64
	MaxLoss         *float64
	Legs            []StrategyLeg
}

// OptimalEntry describes the pricing context a recommendation was
// evaluated at.
type OptimalEntry struct {
	Price             float64
	ImpliedVolatility float64
	TimeToExpiry      float64 // years
}

// RiskReward summarizes the payoff profile of a recommendation.
type RiskReward struct {
	MaxProfit           float64
	MaxLoss             float64
	ProbabilityOfProfit float64 // 0-85
}

// BlackScholesAnalysis holds the model valuation of a strategy's
// primary leg.
type BlackScholesAnalysis struct {
	TheoreticalPrice float64
	MarketPrice      float64
	Edge             float64
	Greeks           Greeks
}

// StrategyRecommendation is one scored and ranked catalog strategy.
type StrategyRecommendation struct {
	Strategy     Strategy
	Confidence   float64 // 0-100
	Reasoning    []string
	OptimalEntry OptimalEntry
	RiskReward   RiskReward
	BlackScholes BlackScholesAnalysis
}

// RegimeAnalysis is the top-level result of one analysis pass.
type RegimeAnalysis struct {
	CurrentRegime   MarketRegime
	Recommendations []StrategyRecommendation
	MarketInsights  []string
	RiskFactors     []string
}
