package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HorizonResult pairs one horizon's ResultSet with its summary statistics.
type HorizonResult struct {
	HorizonMonths int               `json:"horizon_months"`
	Results       ResultSet         `json:"results"`
	Summary       SummaryStatistics `json:"summary"`
}

// RunHorizons runs the simulator once per requested horizon. Horizons share
// the run's plan and return model but never share trial draws; output order
// follows the input order.
func (s *Simulator) RunHorizons(horizons []int, initialPrice decimal.Decimal, model ReturnModel, plan PurchasePlan) ([]HorizonResult, error) {
	if len(horizons) == 0 {
		return nil, fmt.Errorf("at least one horizon is required")
	}

	out := make([]HorizonResult, 0, len(horizons))
	for _, h := range horizons {
		results, err := s.Run(h, initialPrice, model, plan)
		if err != nil {
			return nil, fmt.Errorf("horizon %d months: %w", h, err)
		}
		summary, err := Summarize(results, nil)
		if err != nil {
			return nil, fmt.Errorf("horizon %d months: %w", h, err)
		}
		s.logger.Infof("horizon %d months: %d trials, median ROI %.4f", h, len(results), summary[MetricROI].Median)
		out = append(out, HorizonResult{
			HorizonMonths: h,
			Results:       results,
			Summary:       summary,
		})
	}
	return out, nil
}
