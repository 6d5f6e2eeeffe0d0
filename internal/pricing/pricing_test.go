package pricing

import (
	"math"
	"testing"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

func TestNormalCDF(t *testing.T) {
	cases := []struct {
		x    float64
		want float64
		tol  float64
	}{
		{0, 0.5, 1e-7},
		{1.96, 0.9750021, 1e-4},
		{-1.96, 0.0249979, 1e-4},
		{1, 0.8413447, 1e-5},
		{-1, 0.1586553, 1e-5},
		{3, 0.9986501, 1e-5},
	}
	for _, tc := range cases {
		got := NormalCDF(tc.x)
		if math.Abs(got-tc.want) > tc.tol {
			t.Errorf("NormalCDF(%v) = %v, want %v (tol %v)", tc.x, got, tc.want, tc.tol)
		}
	}
}

func TestNormalCDF_Symmetry(t *testing.T) {
	for _, x := range []float64{0.1, 0.5, 1, 1.5, 2, 3} {
		sum := NormalCDF(x) + NormalCDF(-x)
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("NormalCDF(%v) + NormalCDF(-%v) = %v, want 1", x, x, sum)
		}
	}
}

func TestPrice_KnownValue(t *testing.T) {
	// Standard textbook case: S=100, K=100, r=5%, sigma=20%, T=1y.
	call, err := Price(100, 100, 0.05, 0.2, 1, models.OptionCall)
	if err != nil {
		t.Fatalf("Price returned error: %v", err)
	}
	if math.Abs(call-10.4506) > 1e-3 {
		t.Errorf("ATM call price = %v, want ~10.4506", call)
	}

	put, err := Price(100, 100, 0.05, 0.2, 1, models.OptionPut)
	if err != nil {
		t.Fatalf("Price returned error: %v", err)
	}
	if math.Abs(put-5.5735) > 1e-3 {
		t.Errorf("ATM put price = %v, want ~5.5735", put)
	}
}

func TestPrice_PutCallParity(t *testing.T) {
	cases := []struct {
		spot, strike, rate, sigma, years float64
	}{
		{100, 100, 0.05, 0.2, 1},
		{200, 190, 0.05, 0.15, 0.5},
		{50, 60, 0.01, 0.8, 2},
		{150, 120, 0.08, 0.35, 0.25},
	}
	for _, tc := range cases {
		call, err := Price(tc.spot, tc.strike, tc.rate, tc.sigma, tc.years, models.OptionCall)
		if err != nil {
			t.Fatalf("call price: %v", err)
		}
		put, err := Price(tc.spot, tc.strike, tc.rate, tc.sigma, tc.years, models.OptionPut)
		if err != nil {
			t.Fatalf("put price: %v", err)
		}
		parity := tc.spot - tc.strike*math.Exp(-tc.rate*tc.years)
		if math.Abs((call-put)-parity) > 1e-6 {
			t.Errorf("parity violated for %+v: call-put = %v, want %v", tc, call-put, parity)
		}
	}
}

func TestPrice_InvalidDomain(t *testing.T) {
	cases := []struct {
		name                             string
		spot, strike, rate, sigma, years float64
		typ                              models.OptionType
	}{
		{"zero spot", 0, 100, 0.05, 0.2, 1, models.OptionCall},
		{"negative strike", 100, -5, 0.05, 0.2, 1, models.OptionCall},
		{"zero sigma", 100, 100, 0.05, 0, 1, models.OptionCall},
		{"zero years", 100, 100, 0.05, 0.2, 0, models.OptionPut},
		{"negative years", 100, 100, 0.05, 0.2, -0.5, models.OptionPut},
		{"bad type", 100, 100, 0.05, 0.2, 1, models.OptionType("straddle")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Price(tc.spot, tc.strike, tc.rate, tc.sigma, tc.years, tc.typ)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var verr *errors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %T (%v)", err, err)
			}
		})
	}
}

func TestComputeGreeks_Sanity(t *testing.T) {
	callGreeks, err := ComputeGreeks(100, 105, 0.05, 0.25, 0.5, models.OptionCall)
	if err != nil {
		t.Fatalf("call greeks: %v", err)
	}
	putGreeks, err := ComputeGreeks(100, 105, 0.05, 0.25, 0.5, models.OptionPut)
	if err != nil {
		t.Fatalf("put greeks: %v", err)
	}

	if callGreeks.Delta < 0 || callGreeks.Delta > 1 {
		t.Errorf("call delta %v outside [0,1]", callGreeks.Delta)
	}
	if putGreeks.Delta < -1 || putGreeks.Delta > 0 {
		t.Errorf("put delta %v outside [-1,0]", putGreeks.Delta)
	}
	if callGreeks.Gamma < 0 {
		t.Errorf("call gamma %v negative", callGreeks.Gamma)
	}
	if math.Abs(callGreeks.Gamma-putGreeks.Gamma) > 1e-12 {
		t.Errorf("gamma differs between call (%v) and put (%v)", callGreeks.Gamma, putGreeks.Gamma)
	}
	// Delta identity: call delta - put delta = 1 (no dividends).
	if math.Abs(callGreeks.Delta-putGreeks.Delta-1) > 1e-12 {
		t.Errorf("delta identity violated: %v - %v != 1", callGreeks.Delta, putGreeks.Delta)
	}
	if callGreeks.Vega <= 0 {
		t.Errorf("vega %v should be positive", callGreeks.Vega)
	}
	if callGreeks.Theta >= 0 {
		t.Errorf("long call theta %v should be negative", callGreeks.Theta)
	}
}

func TestImpliedVolatility_RoundTrip(t *testing.T) {
	const (
		spot   = 100.0
		strike = 100.0
		rate   = 0.05
		years  = 0.5
	)
	for _, sigma0 := range []float64{0.05, 0.15, 0.3, 0.5, 1.0, 2.0} {
		for _, typ := range []models.OptionType{models.OptionCall, models.OptionPut} {
			price, err := Price(spot, strike, rate, sigma0, years, typ)
			if err != nil {
				t.Fatalf("price at sigma %v: %v", sigma0, err)
			}
			solved, converged, err := ImpliedVolatility(price, spot, strike, rate, years, typ)
			if err != nil {
				t.Fatalf("implied vol at sigma %v: %v", sigma0, err)
			}
			if !converged {
				t.Errorf("solver failed to converge for sigma %v %s", sigma0, typ)
			}
			if math.Abs(solved-sigma0) > 1e-3 {
				t.Errorf("round trip sigma %v %s: got %v", sigma0, typ, solved)
			}
		}
	}
}

func TestImpliedVolatility_ClampsToBounds(t *testing.T) {
	// A market price below any attainable model price drives the solver
	// toward zero volatility; the clamp must hold it at the floor.
	sigma, _, err := ImpliedVolatility(0.0001, 100, 150, 0.05, 0.1, models.OptionCall)
	if err != nil {
		t.Fatalf("implied vol: %v", err)
	}
	if sigma < 0.01 || sigma > 5 {
		t.Errorf("sigma %v escaped clamp bounds [0.01, 5]", sigma)
	}
}

func TestImpliedVolatility_InvalidInput(t *testing.T) {
	if _, _, err := ImpliedVolatility(-1, 100, 100, 0.05, 0.5, models.OptionCall); err == nil {
		t.Error("expected error for negative market price")
	}
	if _, _, err := ImpliedVolatility(5, 100, 100, 0.05, 0, models.OptionCall); err == nil {
		t.Error("expected error for zero time to expiry")
	}
	if _, _, err := ImpliedVolatility(5, 100, 100, 0.05, 0.5, models.OptionType("x")); err == nil {
		t.Error("expected error for unknown option type")
	}
}

func TestFindArbitrageOpportunity_ThresholdBoundary(t *testing.T) {
	// With r=0 the residual is call + K - (put + S); choose prices that
	// place it exactly at and just past the threshold.
	const (
		spot   = 100.0
		strike = 100.0
		put    = 3.0
	)

	atThreshold, err := FindArbitrageOpportunity(put+0.05, put, spot, strike, 0, 0.5)
	if err != nil {
		t.Fatalf("at threshold: %v", err)
	}
	if atThreshold.HasArbitrage {
		t.Errorf("residual exactly at threshold flagged as arbitrage: %+v", atThreshold)
	}

	pastThreshold, err := FindArbitrageOpportunity(put+0.0501, put, spot, strike, 0, 0.5)
	if err != nil {
		t.Fatalf("past threshold: %v", err)
	}
	if !pastThreshold.HasArbitrage {
		t.Errorf("residual past threshold not flagged: %+v", pastThreshold)
	}
	if pastThreshold.Strategy != "Sell Call, Buy Put, Buy Stock, Borrow PV(K)" {
		t.Errorf("positive residual selected wrong strategy: %q", pastThreshold.Strategy)
	}
}

func TestFindArbitrageOpportunity_MispricedPair(t *testing.T) {
	result, err := FindArbitrageOpportunity(5.00, 3.00, 100, 98, 0.05, 0.5)
	if err != nil {
		t.Fatalf("parity check: %v", err)
	}

	wantDiff := 5.00 + 98*math.Exp(-0.05*0.5) - (3.00 + 100)
	if math.Abs(result.Difference-wantDiff) > 1e-9 {
		t.Errorf("residual = %v, want %v", result.Difference, wantDiff)
	}
	if !result.HasArbitrage {
		t.Error("expected arbitrage opportunity")
	}
	if result.Strategy != "Buy Call, Sell Put, Sell Stock, Lend PV(K)" {
		t.Errorf("negative residual selected wrong strategy: %q", result.Strategy)
	}
}

func TestFindArbitrageOpportunity_InvalidInput(t *testing.T) {
	if _, err := FindArbitrageOpportunity(-1, 3, 100, 100, 0.05, 0.5); err == nil {
		t.Error("expected error for negative call price")
	}
	if _, err := FindArbitrageOpportunity(5, 3, 100, 100, 0.05, 0); err == nil {
		t.Error("expected error for zero time to expiry")
	}
}
