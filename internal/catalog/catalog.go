// Package catalog supplies the candidate strategy catalog consumed by
// the regime analyzer. Catalogs are read-only once loaded; the
// analyzer never mutates them.
package catalog

import (
	"encoding/json"
	"os"
	"time"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

// fileCatalog is the on-disk JSON schema for a strategy catalog.
type fileCatalog struct {
	Strategies []fileStrategy `json:"strategies"`
}

type fileStrategy struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Regime          string     `json:"regime"`
	MarketCondition string     `json:"market_condition"`
	VolatilityBias  string     `json:"volatility_bias"`
	TimeDecay       string     `json:"time_decay"`
	Complexity      string     `json:"complexity"`
	MaxProfit       *float64   `json:"max_profit"`
	MaxLoss         *float64   `json:"max_loss"`
	Legs            []fileLeg  `json:"legs"`
}

type fileLeg struct {
	Type     string  `json:"type"`
	Strike   float64 `json:"strike"`
	Action   string  `json:"action"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	// Either an absolute expiration or a relative day count must be
	// present; days are resolved against load time.
	Expiration   string `json:"expiration,omitempty"`
	DaysToExpiry int    `json:"days_to_expiry,omitempty"`
}

// LoadFile reads and validates a strategy catalog from a JSON file.
// Malformed entries are surfaced as catalog errors, never silently
// substituted.
func LoadFile(path string) ([]models.Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}

	var file fileCatalog
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCatalogInvalid, err.Error())
	}
	if len(file.Strategies) == 0 {
		return nil, errors.Wrap(errors.ErrCatalogInvalid, "catalog contains no strategies")
	}

	now := time.Now()
	strategies := make([]models.Strategy, 0, len(file.Strategies))
	for _, fs := range file.Strategies {
		s, err := fs.toStrategy(now)
		if err != nil {
			return nil, err
		}
		if err := Validate(s); err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

func (fs fileStrategy) toStrategy(now time.Time) (models.Strategy, error) {
	s := models.Strategy{
		ID:              fs.ID,
		Name:            fs.Name,
		Description:     fs.Description,
		Regime:          models.RegimeType(fs.Regime),
		MarketCondition: models.TrendDirection(fs.MarketCondition),
		VolatilityBias:  models.VolatilityBias(fs.VolatilityBias),
		TimeDecay:       models.TimeDecayProfile(fs.TimeDecay),
		Complexity:      models.Complexity(fs.Complexity),
		MaxProfit:       fs.MaxProfit,
		MaxLoss:         fs.MaxLoss,
	}

	for _, fl := range fs.Legs {
		expiry, err := fl.expiry(now)
		if err != nil {
			return models.Strategy{}, errors.NewCatalogError(fs.ID, "legs", "unparseable expiration", err)
		}
		s.Legs = append(s.Legs, models.StrategyLeg{
			Type:       models.OptionType(fl.Type),
			Strike:     fl.Strike,
			Expiration: expiry,
			Action:     models.LegAction(fl.Action),
			Quantity:   fl.Quantity,
			Price:      fl.Price,
		})
	}
	return s, nil
}

func (fl fileLeg) expiry(now time.Time) (time.Time, error) {
	if fl.Expiration != "" {
		return time.Parse(time.RFC3339, fl.Expiration)
	}
	if fl.DaysToExpiry > 0 {
		return now.AddDate(0, 0, fl.DaysToExpiry), nil
	}
	return time.Time{}, errors.ErrCatalogInvalid
}

// Validate checks a strategy for the invariants the analyzer relies
// on. It returns a CatalogError naming the first violated field.
func Validate(s models.Strategy) error {
	if s.ID == "" {
		return errors.NewCatalogError(s.ID, "id", "must not be empty", nil)
	}
	if s.Name == "" {
		return errors.NewCatalogError(s.ID, "name", "must not be empty", nil)
	}
	if !s.Regime.Valid() {
		return errors.NewCatalogError(s.ID, "regime", "unknown regime type", nil)
	}
	if !s.MarketCondition.Valid() {
		return errors.NewCatalogError(s.ID, "market_condition", "unknown market condition", nil)
	}
	if !s.VolatilityBias.Valid() {
		return errors.NewCatalogError(s.ID, "volatility_bias", "unknown volatility bias", nil)
	}
	if !s.TimeDecay.Valid() {
		return errors.NewCatalogError(s.ID, "time_decay", "unknown time decay profile", nil)
	}
	if !s.Complexity.Valid() {
		return errors.NewCatalogError(s.ID, "complexity", "unknown complexity level", nil)
	}
	if len(s.Legs) == 0 {
		return errors.NewCatalogError(s.ID, "legs", "strategy must have at least one leg", nil)
	}
	for _, leg := range s.Legs {
		if !leg.Type.Valid() {
			return errors.NewCatalogError(s.ID, "legs", "unknown option type", nil)
		}
		if !leg.Action.Valid() {
			return errors.NewCatalogError(s.ID, "legs", "unknown leg action", nil)
		}
		if leg.Strike <= 0 {
			return errors.NewCatalogError(s.ID, "legs", "strike must be positive", nil)
		}
		if leg.Quantity <= 0 {
			return errors.NewCatalogError(s.ID, "legs", "quantity must be positive", nil)
		}
		if leg.Price < 0 {
			return errors.NewCatalogError(s.ID, "legs", "price must not be negative", nil)
		}
		if leg.Expiration.IsZero() {
			return errors.NewCatalogError(s.ID, "legs", "expiration is required", nil)
		}
	}
	return nil
}
