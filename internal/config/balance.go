// Package config loads optional balance-tuning overrides from YAML.
// Anything missing or malformed falls back to built-in defaults; a bad
// balance file never stops the simulation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance is the on-disk override shape. Zero values mean "use defaults".
type Balance struct {
	SupplyChain SupplyBalance `yaml:"supply_chain"`
	Taxes       TaxBalance    `yaml:"taxes"`
	Stocks      StockBalance  `yaml:"stocks"`
}

// SupplyBalance tunes procurement and production.
type SupplyBalance struct {
	InputUnitCosts map[string]float64       `yaml:"input_unit_costs"`
	LeadTimeDays   []int                    `yaml:"lead_time_days"` // [min, max]
	Recipes        map[string]RecipeBalance `yaml:"recipes"`
}

// RecipeBalance overrides one sector's recipe.
type RecipeBalance struct {
	Inputs                  map[string]float64 `yaml:"inputs"`
	OutputPerDayPerCapacity float64            `yaml:"output_per_day_per_capacity"`
}

// TaxBalance tunes tax rates and settlement cadence.
type TaxBalance struct {
	CorporateRate float64 `yaml:"corporate_rate"`
	PersonalRate  float64 `yaml:"personal_rate"`
	CadenceDays   int     `yaml:"cadence_days"`
}

// StockBalance tunes the stock market dynamics.
type StockBalance struct {
	Volatility    float64 `yaml:"volatility"`
	TrendStrength float64 `yaml:"trend_strength"`
}

// LeadTimeBounds returns the override lead-time bounds, or ok=false when
// the entry is absent or malformed.
func (s SupplyBalance) LeadTimeBounds() (min, max int, ok bool) {
	if len(s.LeadTimeDays) != 2 {
		return 0, 0, false
	}
	min, max = s.LeadTimeDays[0], s.LeadTimeDays[1]
	if min <= 0 || max < min {
		return 0, 0, false
	}
	return min, max, true
}

// Load reads a balance file. A missing file is not an error: it returns an
// empty Balance so every subsystem keeps its defaults. A file that fails
// to parse is reported but still yields the empty Balance.
func Load(path string) (Balance, error) {
	var b Balance
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return b, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return Balance{}, fmt.Errorf("parse balance file: %w", err)
	}
	return b, nil
}
