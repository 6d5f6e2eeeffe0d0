package catalog

import (
	"math"
	"time"

	"options-engine/internal/models"
)

// Default builds the built-in educational catalog, with strikes and
// indicative premiums derived from the given spot price. Premiums are
// rough placeholders in the way a paper-trading catalog quotes them;
// the analyzer compares them against model prices to estimate edge.
func Default(spot float64) []models.Strategy {
	now := time.Now()
	atm := roundStrike(spot)
	otmCall := roundStrike(spot * 1.05)
	otmPut := roundStrike(spot * 0.95)
	farCall := roundStrike(spot * 1.10)
	farPut := roundStrike(spot * 0.90)

	return []models.Strategy{
		{
			ID:              "long-call",
			Name:            "Long Call",
			Description:     "Buy a call to profit from a sustained rise in the underlying.",
			Regime:          models.RegimeLongTerm,
			MarketCondition: models.TrendBullish,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityBeginner,
			MaxLoss:         fptr(spot * 0.05),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: otmCall, Expiration: now.AddDate(0, 0, 180), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.05},
			},
		},
		{
			ID:              "long-put",
			Name:            "Long Put",
			Description:     "Buy a put to profit from a sustained decline in the underlying.",
			Regime:          models.RegimeLongTerm,
			MarketCondition: models.TrendBearish,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityBeginner,
			MaxProfit:       fptr(otmPut),
			MaxLoss:         fptr(spot * 0.04),
			Legs: []models.StrategyLeg{
				{Type: models.OptionPut, Strike: otmPut, Expiration: now.AddDate(0, 0, 180), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.04},
			},
		},
		{
			ID:              "covered-call",
			Name:            "Covered Call",
			Description:     "Sell a call against stock to harvest premium in a flat market.",
			Regime:          models.RegimeMediumTerm,
			MarketCondition: models.TrendNeutral,
			VolatilityBias:  models.BiasShort,
			TimeDecay:       models.DecayPositive,
			Complexity:      models.ComplexityBeginner,
			MaxProfit:       fptr(spot * 0.02),
			MaxLoss:         fptr(spot),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: otmCall, Expiration: now.AddDate(0, 0, 30), Action: models.ActionSell, Quantity: 1, Price: spot * 0.02},
			},
		},
		{
			ID:              "cash-secured-put",
			Name:            "Cash-Secured Put",
			Description:     "Sell a put against reserved cash to acquire stock at a discount.",
			Regime:          models.RegimeMediumTerm,
			MarketCondition: models.TrendBullish,
			VolatilityBias:  models.BiasShort,
			TimeDecay:       models.DecayPositive,
			Complexity:      models.ComplexityIntermediate,
			MaxProfit:       fptr(spot * 0.02),
			MaxLoss:         fptr(otmPut),
			Legs: []models.StrategyLeg{
				{Type: models.OptionPut, Strike: otmPut, Expiration: now.AddDate(0, 0, 30), Action: models.ActionSell, Quantity: 1, Price: spot * 0.02},
			},
		},
		{
			ID:              "bull-call-spread",
			Name:            "Bull Call Spread",
			Description:     "Buy a call and sell a higher-strike call to cap cost and profit.",
			Regime:          models.RegimeMediumTerm,
			MarketCondition: models.TrendBullish,
			VolatilityBias:  models.BiasNeutral,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityIntermediate,
			MaxProfit:       fptr(farCall - otmCall),
			MaxLoss:         fptr(spot * 0.025),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: otmCall, Expiration: now.AddDate(0, 0, 45), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.03},
				{Type: models.OptionCall, Strike: farCall, Expiration: now.AddDate(0, 0, 45), Action: models.ActionSell, Quantity: 1, Price: spot * 0.012},
			},
		},
		{
			ID:              "bear-put-spread",
			Name:            "Bear Put Spread",
			Description:     "Buy a put and sell a lower-strike put for a defined-risk decline play.",
			Regime:          models.RegimeMediumTerm,
			MarketCondition: models.TrendBearish,
			VolatilityBias:  models.BiasNeutral,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityIntermediate,
			MaxProfit:       fptr(otmPut - farPut),
			MaxLoss:         fptr(spot * 0.025),
			Legs: []models.StrategyLeg{
				{Type: models.OptionPut, Strike: otmPut, Expiration: now.AddDate(0, 0, 45), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.03},
				{Type: models.OptionPut, Strike: farPut, Expiration: now.AddDate(0, 0, 45), Action: models.ActionSell, Quantity: 1, Price: spot * 0.012},
			},
		},
		{
			ID:              "long-straddle",
			Name:            "Long Straddle",
			Description:     "Buy an ATM call and put ahead of an expected large move either way.",
			Regime:          models.RegimeShortTerm,
			MarketCondition: models.TrendNeutral,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityIntermediate,
			MaxLoss:         fptr(spot * 0.05),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: atm, Expiration: now.AddDate(0, 0, 14), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.025},
				{Type: models.OptionPut, Strike: atm, Expiration: now.AddDate(0, 0, 14), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.025},
			},
		},
		{
			ID:              "iron-condor",
			Name:            "Iron Condor",
			Description:     "Sell an OTM call spread and put spread to collect premium in a range.",
			Regime:          models.RegimeMediumTerm,
			MarketCondition: models.TrendNeutral,
			VolatilityBias:  models.BiasShort,
			TimeDecay:       models.DecayPositive,
			Complexity:      models.ComplexityAdvanced,
			MaxProfit:       fptr(spot * 0.015),
			MaxLoss:         fptr(spot * 0.035),
			Legs: []models.StrategyLeg{
				{Type: models.OptionPut, Strike: farPut, Expiration: now.AddDate(0, 0, 45), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.008},
				{Type: models.OptionPut, Strike: otmPut, Expiration: now.AddDate(0, 0, 45), Action: models.ActionSell, Quantity: 1, Price: spot * 0.018},
				{Type: models.OptionCall, Strike: otmCall, Expiration: now.AddDate(0, 0, 45), Action: models.ActionSell, Quantity: 1, Price: spot * 0.018},
				{Type: models.OptionCall, Strike: farCall, Expiration: now.AddDate(0, 0, 45), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.008},
			},
		},
		{
			ID:              "momentum-call",
			Name:            "Momentum Call",
			Description:     "Buy a near-dated call to ride strong short-term upside momentum.",
			Regime:          models.RegimeShortTerm,
			MarketCondition: models.TrendBullish,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityBeginner,
			MaxLoss:         fptr(spot * 0.02),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: atm, Expiration: now.AddDate(0, 0, 7), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.02},
			},
		},
		{
			ID:              "momentum-put",
			Name:            "Momentum Put",
			Description:     "Buy a near-dated put to ride strong short-term downside momentum.",
			Regime:          models.RegimeShortTerm,
			MarketCondition: models.TrendBearish,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayNegative,
			Complexity:      models.ComplexityBeginner,
			MaxProfit:       fptr(atm),
			MaxLoss:         fptr(spot * 0.02),
			Legs: []models.StrategyLeg{
				{Type: models.OptionPut, Strike: atm, Expiration: now.AddDate(0, 0, 7), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.02},
			},
		},
		{
			ID:              "calendar-spread",
			Name:            "Calendar Spread",
			Description:     "Sell a near-dated call and buy a far-dated call at the same strike.",
			Regime:          models.RegimeLongTerm,
			MarketCondition: models.TrendNeutral,
			VolatilityBias:  models.BiasLong,
			TimeDecay:       models.DecayPositive,
			Complexity:      models.ComplexityAdvanced,
			MaxLoss:         fptr(spot * 0.02),
			Legs: []models.StrategyLeg{
				{Type: models.OptionCall, Strike: atm, Expiration: now.AddDate(0, 0, 120), Action: models.ActionBuy, Quantity: 1, Price: spot * 0.045},
				{Type: models.OptionCall, Strike: atm, Expiration: now.AddDate(0, 0, 30), Action: models.ActionSell, Quantity: 1, Price: spot * 0.025},
			},
		},
	}
}

// roundStrike snaps a price to the nearest listed-style strike
// increment.
func roundStrike(price float64) float64 {
	increment := 1.0
	switch {
	case price >= 500:
		increment = 10
	case price >= 100:
		increment = 5
	case price >= 25:
		increment = 2.5
	}
	return math.Round(price/increment) * increment
}

func fptr(v float64) *float64 {
	return &v
}
