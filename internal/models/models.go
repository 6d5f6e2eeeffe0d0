// Package models provides domain models for the options analysis engine.
package models

import (
	"time"
)

// OptionType identifies the side of an option contract.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// Valid reports whether the option type is a known value.
func (t OptionType) Valid() bool {
	return t == OptionCall || t == OptionPut
}

// LegAction represents the direction of a strategy leg.
type LegAction string

const (
	ActionBuy  LegAction = "buy"
	ActionSell LegAction = "sell"
)

// Valid reports whether the leg action is a known value.
func (a LegAction) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// PricePoint represents one OHLCV sample of price history.
type PricePoint struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Greeks holds the sensitivities of an option's theoretical price.
// Theta is expressed as decay per calendar day; Vega as sensitivity
// per 1-point change in volatility.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
}

// ArbitrageResult describes the outcome of a put-call parity check.
// Difference is the signed parity residual; its sign selects which of
// the two canonical four-leg strategies would capture the mispricing.
type ArbitrageResult struct {
	HasArbitrage  bool
	PutCallParity float64
	Difference    float64
	Strategy      string
}
