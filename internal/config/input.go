package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goldsim/gold-simulator/internal/domain"
	"github.com/goldsim/gold-simulator/internal/simulation"
)

// DefaultTrialCount is used when the input omits trial_count. 10000 trials
// keep the tail percentile estimates stable.
const DefaultTrialCount = 10000

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults fills omitted optional fields.
func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	if config.Simulation.TrialCount == 0 {
		config.Simulation.TrialCount = DefaultTrialCount
	}
	if len(config.Simulation.PriceMultipliers) == 0 {
		config.Simulation.PriceMultipliers = append([]float64(nil), analysisDefaultMultipliers...)
	}
	if len(config.Simulation.ConfidenceLevels) == 0 {
		config.Simulation.ConfidenceLevels = []float64{0.95}
	}
	if config.Output.Format == "" {
		config.Output.Format = "console"
	}
}

var analysisDefaultMultipliers = []float64{0.8, 0.9, 1.0, 1.1, 1.2}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Plan.Validate(); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}

	if err := ip.validateMarket(&config.Market); err != nil {
		return fmt.Errorf("market validation failed: %w", err)
	}

	return nil
}

// validateSimulation validates the engine knobs
func (ip *InputParser) validateSimulation(sim *domain.SimulationConfig) error {
	if sim.TrialCount < 1 {
		return fmt.Errorf("trial count must be at least 1, got %d", sim.TrialCount)
	}
	if len(sim.Horizons) == 0 {
		return fmt.Errorf("at least one horizon is required")
	}
	for i, h := range sim.Horizons {
		if h < 1 {
			return fmt.Errorf("horizon %d must be a positive month count, got %d", i, h)
		}
	}
	if sim.InflationRate < 0 || sim.InflationRate > 1 {
		return fmt.Errorf("inflation rate must be between 0 and 1, got %f", sim.InflationRate)
	}
	for i, m := range sim.PriceMultipliers {
		if m <= 0 {
			return fmt.Errorf("price multiplier %d must be positive, got %f", i, m)
		}
	}
	for i, cl := range sim.ConfidenceLevels {
		if cl <= 0 || cl >= 1 {
			return fmt.Errorf("confidence level %d must be strictly between 0 and 1, got %f", i, cl)
		}
	}
	if sim.PriceBand != nil {
		if err := sim.PriceBand.Validate(); err != nil {
			return fmt.Errorf("price band validation failed: %w", err)
		}
	}
	return nil
}

// validateMarket validates the price and return model inputs
func (ip *InputParser) validateMarket(market *domain.MarketConfig) error {
	if market.InitialPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("initial price must be positive, got %s", market.InitialPrice)
	}
	if market.StdMonthlyReturn < 0 {
		return fmt.Errorf("std monthly return cannot be negative, got %f", market.StdMonthlyReturn)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Plan: simulation.PurchasePlan{
			BuyPrice:             decimal.NewFromFloat(124.24),
			SellPrice:            decimal.NewFromFloat(111.97),
			MonthlyQuantity:      decimal.NewFromInt(4),
			BonusQuantityPerYear: decimal.NewFromInt(4),
		},
		Simulation: domain.SimulationConfig{
			TrialCount:       DefaultTrialCount,
			Horizons:         []int{36, 60, 120},
			InflationRate:    0.02,
			PriceMultipliers: append([]float64(nil), analysisDefaultMultipliers...),
			ConfidenceLevels: []float64{0.95},
		},
		Market: domain.MarketConfig{
			InitialPrice:      decimal.NewFromFloat(106.41),
			MeanMonthlyReturn: 0.005,
			StdMonthlyReturn:  0.045,
		},
		Output: domain.OutputConfig{
			Format: "console",
		},
	}
}
