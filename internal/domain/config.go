package domain

import (
	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// Configuration is the full input file for a simulation run.
type Configuration struct {
	Plan       simulation.PurchasePlan `yaml:"plan" json:"plan"`
	Simulation SimulationConfig        `yaml:"simulation" json:"simulation"`
	Market     MarketConfig            `yaml:"market" json:"market"`
	Output     OutputConfig            `yaml:"output" json:"output"`
}

// SimulationConfig holds the engine knobs recognized by the core.
type SimulationConfig struct {
	TrialCount       int                   `yaml:"trial_count" json:"trial_count"`
	Horizons         []int                 `yaml:"horizons" json:"horizons"`
	Seed             int64                 `yaml:"seed,omitempty" json:"seed,omitempty"`
	InflationRate    float64               `yaml:"inflation_rate" json:"inflation_rate"`
	PriceMultipliers []float64             `yaml:"price_multipliers,omitempty" json:"price_multipliers,omitempty"`
	ConfidenceLevels []float64             `yaml:"confidence_levels,omitempty" json:"confidence_levels,omitempty"`
	PriceBand        *simulation.PriceBand `yaml:"price_band,omitempty" json:"price_band,omitempty"`
}

// MarketConfig supplies the initial price and the return model, either as
// explicit moments or via a historical price CSV to derive them from.
type MarketConfig struct {
	InitialPrice      decimal.Decimal `yaml:"initial_price" json:"initial_price"`
	MeanMonthlyReturn float64         `yaml:"mean_monthly_return" json:"mean_monthly_return"`
	StdMonthlyReturn  float64         `yaml:"std_monthly_return" json:"std_monthly_return"`
	HistoryCSV        string          `yaml:"history_csv,omitempty" json:"history_csv,omitempty"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `yaml:"format" json:"format"`
}

// ReturnModel builds the simulation return model from the explicit moments.
func (m MarketConfig) ReturnModel() simulation.ReturnModel {
	return simulation.ReturnModel{
		MeanMonthlyReturn: m.MeanMonthlyReturn,
		StdMonthlyReturn:  m.StdMonthlyReturn,
	}
}
