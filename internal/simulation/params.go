package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// PurchasePlan describes the recurring subscription: a fixed quantity bought
// every month at the buy price, plus a bonus quantity credited every twelfth
// month. Immutable once a run starts; shared by all trials.
type PurchasePlan struct {
	BuyPrice             decimal.Decimal `json:"buy_price" yaml:"buy_price"`
	SellPrice            decimal.Decimal `json:"sell_price" yaml:"sell_price"`
	MonthlyQuantity      decimal.Decimal `json:"monthly_quantity" yaml:"monthly_quantity"`
	BonusQuantityPerYear decimal.Decimal `json:"bonus_quantity_per_year" yaml:"bonus_quantity_per_year"`
}

// Spread returns (buy - sell) / buy, the relative house margin in [0, 1).
func (p PurchasePlan) Spread() decimal.Decimal {
	return p.BuyPrice.Sub(p.SellPrice).Div(p.BuyPrice)
}

// Validate rejects plans that would produce nonsensical statistics.
func (p PurchasePlan) Validate() error {
	if p.BuyPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("buy price must be positive, got %s", p.BuyPrice)
	}
	if p.SellPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("sell price must be positive, got %s", p.SellPrice)
	}
	if p.BuyPrice.LessThanOrEqual(p.SellPrice) {
		return fmt.Errorf("buy price %s must exceed sell price %s", p.BuyPrice, p.SellPrice)
	}
	if p.MonthlyQuantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly quantity must be positive, got %s", p.MonthlyQuantity)
	}
	if p.BonusQuantityPerYear.LessThan(decimal.Zero) {
		return fmt.Errorf("bonus quantity per year cannot be negative, got %s", p.BonusQuantityPerYear)
	}
	return nil
}

// TotalBonusQuantity returns the deterministic bonus credited over a horizon:
// one bonus grant per completed 12-month interval.
func (p PurchasePlan) TotalBonusQuantity(horizonMonths int) decimal.Decimal {
	return p.BonusQuantityPerYear.Mul(decimal.NewFromInt(int64(horizonMonths / 12)))
}

// ReturnModel holds the two moments of the monthly price process. Derived
// once per run and never mutated.
type ReturnModel struct {
	MeanMonthlyReturn float64 `json:"mean_monthly_return" yaml:"mean_monthly_return"`
	StdMonthlyReturn  float64 `json:"std_monthly_return" yaml:"std_monthly_return"`
}

// Validate rejects models with a negative dispersion.
func (m ReturnModel) Validate() error {
	if m.StdMonthlyReturn < 0 {
		return fmt.Errorf("std monthly return cannot be negative, got %f", m.StdMonthlyReturn)
	}
	return nil
}

// ReturnModelFromPrices derives the monthly return moments from a price
// series ordered oldest to newest. Uses the sample standard deviation.
func ReturnModelFromPrices(prices []float64) (ReturnModel, error) {
	if len(prices) < 3 {
		return ReturnModel{}, fmt.Errorf("need at least 3 prices to derive a return model, got %d", len(prices))
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 {
			return ReturnModel{}, fmt.Errorf("non-positive price at index %d", i-1)
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}
	return ReturnModel{
		MeanMonthlyReturn: stat.Mean(returns, nil),
		StdMonthlyReturn:  stat.StdDev(returns, nil),
	}, nil
}

// PriceBand is an optional clamp on the evolving price, applied identically
// to every trial of a run when configured.
type PriceBand struct {
	Min decimal.Decimal `json:"min" yaml:"min"`
	Max decimal.Decimal `json:"max" yaml:"max"`
}

// Validate checks the band is a proper positive interval.
func (b PriceBand) Validate() error {
	if b.Min.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("price band min must be positive, got %s", b.Min)
	}
	if b.Max.LessThanOrEqual(b.Min) {
		return fmt.Errorf("price band max %s must exceed min %s", b.Max, b.Min)
	}
	return nil
}

// clamp constrains p to the band.
func (b PriceBand) clamp(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(b.Min) {
		return b.Min
	}
	if p.GreaterThan(b.Max) {
		return b.Max
	}
	return p
}
