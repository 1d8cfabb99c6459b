package analysis

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// AdjustForInflation deflates every monetary metric of a ResultSet by
// (1 + rate)^years and recomputes the ROI and annualized return columns from
// the deflated values. The input set is never mutated; a new set is
// returned.
func AdjustForInflation(rs simulation.ResultSet, annualRate float64) (simulation.ResultSet, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("cannot adjust an empty result set")
	}
	if annualRate < 0 || annualRate > 1 {
		return nil, fmt.Errorf("inflation rate must be in [0, 1], got %f", annualRate)
	}

	adjusted := make(simulation.ResultSet, len(rs))
	for i, tr := range rs {
		years := float64(tr.HorizonMonths) / 12
		deflator := decimal.NewFromFloat(math.Pow(1+annualRate, years))

		invested := tr.TotalInvested.Div(deflator)
		finalPrice := tr.FinalPrice.Div(deflator)
		marketValue := tr.MarketValue.Div(deflator)
		sellValue := tr.SellValue.Div(deflator)

		adjusted[i] = simulation.TrialResult{
			HorizonMonths:        tr.HorizonMonths,
			TotalQuantity:        tr.TotalQuantity,
			TotalInvested:        invested,
			FinalPrice:           finalPrice,
			MarketValue:          marketValue,
			SellValue:            sellValue,
			ROI:                  simulation.ComputeROI(marketValue, invested),
			SellROI:              simulation.ComputeROI(sellValue, invested),
			AnnualizedReturn:     simulation.AnnualizedReturn(marketValue, invested, tr.HorizonMonths),
			SellAnnualizedReturn: simulation.AnnualizedReturn(sellValue, invested, tr.HorizonMonths),
		}
	}
	return adjusted, nil
}
