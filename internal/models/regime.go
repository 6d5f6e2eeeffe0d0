package models

// RegimeType represents the time-scale of the dominant market regime.
type RegimeType string

const (
	RegimeShortTerm  RegimeType = "short-term"
	RegimeMediumTerm RegimeType = "medium-term"
	RegimeLongTerm   RegimeType = "long-term"
)

// Valid reports whether the regime type is a known value.
func (t RegimeType) Valid() bool {
	switch t {
	case RegimeShortTerm, RegimeMediumTerm, RegimeLongTerm:
		return true
	}
	return false
}

// TrendDirection represents the directional trend of a regime. It is
// also used as the market-condition tag on catalog strategies, which
// are matched against the regime's trend.
type TrendDirection string

const (
	TrendBullish TrendDirection = "bullish"
	TrendBearish TrendDirection = "bearish"
	TrendNeutral TrendDirection = "neutral"
)

// Valid reports whether the trend direction is a known value.
func (d TrendDirection) Valid() bool {
	switch d {
	case TrendBullish, TrendBearish, TrendNeutral:
		return true
	}
	return false
}

// VolatilityLevel classifies annualized volatility.
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// Valid reports whether the volatility level is a known value.
func (v VolatilityLevel) Valid() bool {
	switch v {
	case VolatilityLow, VolatilityMedium, VolatilityHigh:
		return true
	}
	return false
}

// MarketRegime is a snapshot classification of current market
// behavior. It is recomputed on every analysis pass and never stored
// by the core.
type MarketRegime struct {
	Type       RegimeType
	Trend      TrendDirection
	Volatility VolatilityLevel
	Momentum   float64 // percent
	Confidence float64 // 0-100
	Timeframe  string
}
