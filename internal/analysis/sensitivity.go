package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// DefaultPriceMultipliers shocks the terminal price by +/-20% in 10% steps.
var DefaultPriceMultipliers = []float64{0.8, 0.9, 1.0, 1.1, 1.2}

// SensitivityPoint reports the median ROI across trials after scaling every
// trial's final price by Multiplier. The sell price is a fixed buyback rate
// and is never scaled.
type SensitivityPoint struct {
	Multiplier    float64 `json:"multiplier"`
	MedianROI     float64 `json:"median_roi"`
	MedianSellROI float64 `json:"median_sell_roi"`
}

// PriceSensitivity re-values every trial under each price multiplier and
// reports the median market ROI per multiplier. Multiplier 1.0 reproduces
// the original median exactly.
func PriceSensitivity(rs simulation.ResultSet, multipliers []float64) ([]SensitivityPoint, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("cannot run sensitivity analysis on an empty result set")
	}
	if multipliers == nil {
		multipliers = DefaultPriceMultipliers
	}
	for _, m := range multipliers {
		if m <= 0 {
			return nil, fmt.Errorf("price multiplier must be positive, got %f", m)
		}
	}

	sellROIs, err := rs.Column(simulation.MetricSellROI)
	if err != nil {
		return nil, err
	}
	sort.Float64s(sellROIs)
	medianSellROI := simulation.Quantile(sellROIs, 0.5)

	points := make([]SensitivityPoint, 0, len(multipliers))
	for _, m := range multipliers {
		factor := decimal.NewFromFloat(m)
		rois := make([]float64, len(rs))
		for i, tr := range rs {
			shockedValue := tr.TotalQuantity.Mul(tr.FinalPrice.Mul(factor))
			rois[i] = simulation.ComputeROI(shockedValue, tr.TotalInvested).InexactFloat64()
		}
		sort.Float64s(rois)
		points = append(points, SensitivityPoint{
			Multiplier:    m,
			MedianROI:     simulation.Quantile(rois, 0.5),
			MedianSellROI: medianSellROI,
		})
	}
	return points, nil
}
