// Package pricing implements closed-form Black-Scholes valuation for
// European options: theoretical prices, Greeks, an implied volatility
// solver and a put-call parity arbitrage check. All functions are pure
// and stateless; concurrent invocations are safe without locks.
package pricing

import (
	"math"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

const (
	// ArbitrageThreshold is the minimum absolute parity residual, in
	// currency units, treated as an actionable mispricing.
	ArbitrageThreshold = 0.05

	// Implied volatility solver parameters.
	IVTolerance     = 1e-4
	IVMaxIterations = 100
	ivInitialGuess  = 0.5
	ivFloor         = 0.01
	ivCeiling       = 5.0
)

// Abramowitz-Stegun coefficients for the normal CDF approximation.
const (
	asGamma = 0.2316419
	asA1    = 0.319381530
	asA2    = -0.356563782
	asA3    = 1.781477937
	asA4    = -1.821255978
	asA5    = 1.330274429
)

// NormalCDF approximates the standard normal cumulative distribution
// using the Abramowitz-Stegun rational polynomial. Maximum error is on
// the order of 1e-6; downstream pricing depends on the smoothness of
// this approximation, not on exactness beyond float precision.
func NormalCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormalCDF(-x)
	}
	k := 1 / (1 + asGamma*x)
	poly := k * (asA1 + k*(asA2+k*(asA3+k*(asA4+k*asA5))))
	return 1 - normPDF(x)*poly
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

// validateDomain rejects the numeric inputs Black-Scholes is undefined
// for. Immediate-expiry pricing (T <= 0) is out of scope and must not
// silently divide by zero.
func validateDomain(spot, strike, sigma, years float64) error {
	if spot <= 0 {
		return errors.NewValidationError("spot", spot, "must be positive")
	}
	if strike <= 0 {
		return errors.NewValidationError("strike", strike, "must be positive")
	}
	if sigma <= 0 {
		return errors.NewValidationError("sigma", sigma, "must be positive")
	}
	if years <= 0 {
		return errors.NewValidationError("years", years, "must be positive")
	}
	return nil
}

// D1D2 computes the d1 and d2 terms of the Black-Scholes formula.
func D1D2(spot, strike, rate, sigma, years float64) (float64, float64, error) {
	if err := validateDomain(spot, strike, sigma, years); err != nil {
		return 0, 0, err
	}
	d1, d2 := d1d2(spot, strike, rate, sigma, years)
	return d1, d2, nil
}

// d1d2 assumes inputs already validated.
func d1d2(spot, strike, rate, sigma, years float64) (float64, float64) {
	sqrtT := math.Sqrt(years)
	d1 := (math.Log(spot/strike) + (rate+sigma*sigma/2)*years) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// Price returns the Black-Scholes theoretical price of a European
// call or put.
func Price(spot, strike, rate, sigma, years float64, typ models.OptionType) (float64, error) {
	if err := validateDomain(spot, strike, sigma, years); err != nil {
		return 0, err
	}
	d1, d2 := d1d2(spot, strike, rate, sigma, years)
	discount := math.Exp(-rate * years)

	switch typ {
	case models.OptionCall:
		return spot*NormalCDF(d1) - strike*discount*NormalCDF(d2), nil
	case models.OptionPut:
		return strike*discount*NormalCDF(-d2) - spot*NormalCDF(-d1), nil
	default:
		return 0, errors.NewValidationError("type", typ, "must be call or put")
	}
}

// ComputeGreeks returns delta, gamma, theta and vega for one set of
// pricing inputs. Theta is the decay per calendar day (annual theta
// divided by 365). Vega is scaled to a 1-point change in volatility
// (divided by 100), the convention the regime analyzer's reasoning
// thresholds assume.
func ComputeGreeks(spot, strike, rate, sigma, years float64, typ models.OptionType) (models.Greeks, error) {
	if err := validateDomain(spot, strike, sigma, years); err != nil {
		return models.Greeks{}, err
	}
	d1, d2 := d1d2(spot, strike, rate, sigma, years)
	sqrtT := math.Sqrt(years)
	discount := math.Exp(-rate * years)
	pdfD1 := normPDF(d1)

	g := models.Greeks{
		Gamma: pdfD1 / (spot * sigma * sqrtT),
		Vega:  spot * sqrtT * pdfD1 / 100,
	}

	switch typ {
	case models.OptionCall:
		g.Delta = NormalCDF(d1)
		g.Theta = (-spot*pdfD1*sigma/(2*sqrtT) - rate*strike*discount*NormalCDF(d2)) / 365
	case models.OptionPut:
		g.Delta = NormalCDF(d1) - 1
		g.Theta = (-spot*pdfD1*sigma/(2*sqrtT) + rate*strike*discount*NormalCDF(-d2)) / 365
	default:
		return models.Greeks{}, errors.NewValidationError("type", typ, "must be call or put")
	}

	return g, nil
}

// ImpliedVolatility solves for the volatility that reproduces the
// observed market price, using Newton-Raphson from an initial guess of
// 0.5. The Newton step uses the raw per-unit vega S*sqrt(T)*phi(d1),
// not the /100-scaled vega returned by ComputeGreeks. Sigma is clamped
// to [0.01, 5] after every update. If the iteration cap is reached
// without meeting tolerance, the last estimate is returned with
// converged=false; this is a soft condition, never a hard failure.
func ImpliedVolatility(marketPrice, spot, strike, rate, years float64, typ models.OptionType) (sigma float64, converged bool, err error) {
	if marketPrice <= 0 {
		return 0, false, errors.NewValidationError("marketPrice", marketPrice, "must be positive")
	}
	if !typ.Valid() {
		return 0, false, errors.NewValidationError("type", typ, "must be call or put")
	}
	if err := validateDomain(spot, strike, ivInitialGuess, years); err != nil {
		return 0, false, err
	}

	sigma = ivInitialGuess
	for i := 0; i < IVMaxIterations; i++ {
		price, perr := Price(spot, strike, rate, sigma, years, typ)
		if perr != nil {
			return 0, false, perr
		}
		diff := marketPrice - price
		if math.Abs(diff) < IVTolerance {
			return sigma, true, nil
		}

		d1, _ := d1d2(spot, strike, rate, sigma, years)
		rawVega := spot * math.Sqrt(years) * normPDF(d1)
		if rawVega == 0 {
			break
		}

		sigma += diff / rawVega
		if sigma < ivFloor {
			sigma = ivFloor
		} else if sigma > ivCeiling {
			sigma = ivCeiling
		}
	}

	return sigma, false, nil
}

// FindArbitrageOpportunity checks observed call and put prices against
// put-call parity. The residual callPrice + K*e^(-rT) - (putPrice + S)
// exceeding the threshold in magnitude indicates a mispricing; its sign
// selects between the two canonical four-leg capture strategies.
func FindArbitrageOpportunity(callPrice, putPrice, spot, strike, rate, years float64) (models.ArbitrageResult, error) {
	if callPrice < 0 {
		return models.ArbitrageResult{}, errors.NewValidationError("callPrice", callPrice, "must not be negative")
	}
	if putPrice < 0 {
		return models.ArbitrageResult{}, errors.NewValidationError("putPrice", putPrice, "must not be negative")
	}
	if spot <= 0 {
		return models.ArbitrageResult{}, errors.NewValidationError("spot", spot, "must be positive")
	}
	if strike <= 0 {
		return models.ArbitrageResult{}, errors.NewValidationError("strike", strike, "must be positive")
	}
	if years <= 0 {
		return models.ArbitrageResult{}, errors.NewValidationError("years", years, "must be positive")
	}

	discountedStrike := strike * math.Exp(-rate*years)
	diff := callPrice + discountedStrike - (putPrice + spot)

	result := models.ArbitrageResult{
		PutCallParity: spot - discountedStrike,
		Difference:    diff,
	}

	if math.Abs(diff) <= ArbitrageThreshold {
		result.Strategy = "No arbitrage opportunity"
		return result, nil
	}

	result.HasArbitrage = true
	if diff > 0 {
		// Call side is rich relative to parity.
		result.Strategy = "Sell Call, Buy Put, Buy Stock, Borrow PV(K)"
	} else {
		result.Strategy = "Buy Call, Sell Put, Sell Stock, Lend PV(K)"
	}
	return result, nil
}
