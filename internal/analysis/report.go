package analysis

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// Options selects which derived analyses a report carries and their
// parameters.
type Options struct {
	InflationRate    float64
	PriceMultipliers []float64
	ConfidenceLevels []float64
}

// DefaultOptions mirror the recognized configuration defaults.
func DefaultOptions() Options {
	return Options{
		InflationRate:    0.02,
		PriceMultipliers: DefaultPriceMultipliers,
		ConfidenceLevels: []float64{0.95},
	}
}

// HorizonReport bundles one horizon's summary with every derived analysis.
type HorizonReport struct {
	HorizonMonths int                          `json:"horizon_months"`
	TrialCount    int                          `json:"trial_count"`
	Summary       simulation.SummaryStatistics `json:"summary"`
	RealSummary   simulation.SummaryStatistics `json:"real_summary"`
	Risk          []RiskMetrics                `json:"risk"`
	Scenarios     []Scenario                   `json:"scenarios"`
	Sensitivity   []SensitivityPoint           `json:"sensitivity"`
	Bonus         BonusImpact                  `json:"bonus"`
}

// Report is the complete output of one multi-horizon run, consumed by the
// output formatters and the HTTP service.
type Report struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	InitialPrice  decimal.Decimal         `json:"initial_price"`
	Plan          simulation.PurchasePlan `json:"plan"`
	ReturnModel   simulation.ReturnModel  `json:"return_model"`
	InflationRate float64                 `json:"inflation_rate"`
	Horizons      []HorizonReport         `json:"horizons"`
}

// BuildReport runs every analyzer over already-computed horizon results.
// Horizon order in the report follows the input order.
func BuildReport(horizons []simulation.HorizonResult, initialPrice decimal.Decimal, plan simulation.PurchasePlan, model simulation.ReturnModel, opts Options) (*Report, error) {
	if len(horizons) == 0 {
		return nil, fmt.Errorf("no horizon results to report")
	}
	if len(opts.PriceMultipliers) == 0 {
		opts.PriceMultipliers = DefaultPriceMultipliers
	}
	if len(opts.ConfidenceLevels) == 0 {
		opts.ConfidenceLevels = []float64{0.95}
	}

	report := &Report{
		GeneratedAt:   time.Now(),
		InitialPrice:  initialPrice,
		Plan:          plan,
		ReturnModel:   model,
		InflationRate: opts.InflationRate,
		Horizons:      make([]HorizonReport, 0, len(horizons)),
	}

	for _, hr := range horizons {
		real, err := AdjustForInflation(hr.Results, opts.InflationRate)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: inflation adjustment: %w", hr.HorizonMonths, err)
		}
		realSummary, err := simulation.Summarize(real, nil)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", hr.HorizonMonths, err)
		}

		risk := make([]RiskMetrics, 0, len(opts.ConfidenceLevels))
		for _, cl := range opts.ConfidenceLevels {
			rm, err := ComputeRiskMetrics(hr.Results, cl)
			if err != nil {
				return nil, fmt.Errorf("horizon %d: risk at %.2f: %w", hr.HorizonMonths, cl, err)
			}
			risk = append(risk, rm)
		}

		scenarios, err := ScenarioSnapshots(hr.Results)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", hr.HorizonMonths, err)
		}

		sensitivity, err := PriceSensitivity(hr.Results, opts.PriceMultipliers)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", hr.HorizonMonths, err)
		}

		bonus, err := BonusCounterfactual(hr.Results, plan)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", hr.HorizonMonths, err)
		}

		report.Horizons = append(report.Horizons, HorizonReport{
			HorizonMonths: hr.HorizonMonths,
			TrialCount:    len(hr.Results),
			Summary:       hr.Summary,
			RealSummary:   realSummary,
			Risk:          risk,
			Scenarios:     scenarios,
			Sensitivity:   sensitivity,
			Bonus:         bonus,
		})
	}
	return report, nil
}
