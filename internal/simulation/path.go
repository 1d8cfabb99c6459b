package simulation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TrialResult is the terminal record of one simulated path. Produced once,
// stored as one row of a ResultSet, never mutated afterward.
type TrialResult struct {
	HorizonMonths        int             `json:"horizon_months"`
	TotalQuantity        decimal.Decimal `json:"total_quantity"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	FinalPrice           decimal.Decimal `json:"final_price"`
	MarketValue          decimal.Decimal `json:"market_value"`
	SellValue            decimal.Decimal `json:"sell_value"`
	ROI                  decimal.Decimal `json:"roi"`
	SellROI              decimal.Decimal `json:"sell_roi"`
	AnnualizedReturn     decimal.Decimal `json:"annualized_return"`
	SellAnnualizedReturn decimal.Decimal `json:"sell_annualized_return"`
}

// pathState is the mutable per-trial loop state. Exclusively owned by one
// SimulatePath call; never shared.
type pathState struct {
	currentPrice        decimal.Decimal
	accumulatedQuantity decimal.Decimal
	accumulatedInvested decimal.Decimal
}

// SimulatePath advances a single investment path month by month: purchase,
// bonus on every twelfth month, then a stochastic price update. The price is
// not evolved after the final month's purchase, so the terminal valuation
// uses the price as of the last purchase.
//
// draw must return one monthly return sample per call (already scaled to the
// run's mean and std). A nil band disables price clamping.
func SimulatePath(horizonMonths int, initialPrice decimal.Decimal, plan PurchasePlan, band *PriceBand, draw func() float64) (TrialResult, error) {
	if horizonMonths < 1 {
		return TrialResult{}, fmt.Errorf("horizon must be at least 1 month, got %d", horizonMonths)
	}
	if initialPrice.LessThanOrEqual(decimal.Zero) {
		return TrialResult{}, fmt.Errorf("initial price must be positive, got %s", initialPrice)
	}

	state := pathState{currentPrice: initialPrice}
	monthlyCost := plan.MonthlyQuantity.Mul(plan.BuyPrice)

	for m := 1; m <= horizonMonths; m++ {
		state.accumulatedInvested = state.accumulatedInvested.Add(monthlyCost)
		state.accumulatedQuantity = state.accumulatedQuantity.Add(plan.MonthlyQuantity)

		if m%12 == 0 {
			state.accumulatedQuantity = state.accumulatedQuantity.Add(plan.BonusQuantityPerYear)
		}

		if m < horizonMonths {
			r := draw()
			state.currentPrice = state.currentPrice.Mul(decimal.NewFromFloat(1 + r))
			if band != nil {
				state.currentPrice = band.clamp(state.currentPrice)
			}
		}
	}

	if state.accumulatedInvested.LessThanOrEqual(decimal.Zero) {
		return TrialResult{}, fmt.Errorf("accumulated investment is zero after %d months", horizonMonths)
	}

	marketValue := state.accumulatedQuantity.Mul(state.currentPrice)
	sellValue := state.accumulatedQuantity.Mul(plan.SellPrice)

	return TrialResult{
		HorizonMonths:        horizonMonths,
		TotalQuantity:        state.accumulatedQuantity,
		TotalInvested:        state.accumulatedInvested,
		FinalPrice:           state.currentPrice,
		MarketValue:          marketValue,
		SellValue:            sellValue,
		ROI:                  ComputeROI(marketValue, state.accumulatedInvested),
		SellROI:              ComputeROI(sellValue, state.accumulatedInvested),
		AnnualizedReturn:     AnnualizedReturn(marketValue, state.accumulatedInvested, horizonMonths),
		SellAnnualizedReturn: AnnualizedReturn(sellValue, state.accumulatedInvested, horizonMonths),
	}, nil
}

// ComputeROI returns (value - invested) / invested.
func ComputeROI(value, invested decimal.Decimal) decimal.Decimal {
	return value.Sub(invested).Div(invested)
}

// AnnualizedReturn expresses the terminal return as a compounded per-year
// rate: (value / invested)^(12 / months) - 1. The fractional power goes
// through float64.
func AnnualizedReturn(value, invested decimal.Decimal, horizonMonths int) decimal.Decimal {
	ratio, _ := value.Div(invested).Float64()
	if ratio <= 0 {
		return decimal.NewFromInt(-1)
	}
	annualized := math.Pow(ratio, 12/float64(horizonMonths)) - 1
	return decimal.NewFromFloat(annualized)
}
