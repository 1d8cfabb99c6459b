package analysis

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

func TestBonusCounterfactualZeroBonus(t *testing.T) {
	plan := simulation.PurchasePlan{
		BuyPrice:             decimal.NewFromFloat(124.24),
		SellPrice:            decimal.NewFromFloat(111.97),
		MonthlyQuantity:      decimal.NewFromInt(4),
		BonusQuantityPerYear: decimal.Zero,
	}
	sim := simulation.NewSimulator(simulation.SimulatorConfig{TrialCount: 20, Seed: 9})
	rs, err := sim.Run(36, decimal.NewFromFloat(106.41),
		simulation.ReturnModel{MeanMonthlyReturn: 0.005, StdMonthlyReturn: 0.04}, plan)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	impact, err := BonusCounterfactual(rs, plan)
	if err != nil {
		t.Fatalf("BonusCounterfactual returned error: %v", err)
	}
	if impact.MeanROIDelta != 0 || impact.MedianROIDelta != 0 {
		t.Errorf("zero bonus produced non-zero deltas: %+v", impact)
	}
	if impact.BonusQuantity != 0 {
		t.Errorf("bonus quantity = %v, want 0", impact.BonusQuantity)
	}
}

func TestBonusCounterfactualPositiveDelta(t *testing.T) {
	rs := simulatedResultSet(t, 30, 0.04)
	plan := simulation.PurchasePlan{
		BuyPrice:             decimal.NewFromFloat(124.24),
		SellPrice:            decimal.NewFromFloat(111.97),
		MonthlyQuantity:      decimal.NewFromInt(4),
		BonusQuantityPerYear: decimal.NewFromInt(4),
	}

	impact, err := BonusCounterfactual(rs, plan)
	if err != nil {
		t.Fatalf("BonusCounterfactual returned error: %v", err)
	}
	// 36 months grant 3 bonus rounds of 4 g.
	if impact.BonusQuantity != 12 {
		t.Errorf("bonus quantity = %v, want 12", impact.BonusQuantity)
	}
	if impact.MeanROIDelta <= 0 {
		t.Errorf("mean ROI delta = %v, want positive for a positive bonus", impact.MeanROIDelta)
	}
	if impact.MeanROI <= impact.MeanROINoBonus {
		t.Errorf("mean ROI %v should exceed no-bonus mean %v", impact.MeanROI, impact.MeanROINoBonus)
	}
}

func TestBonusCounterfactualEmpty(t *testing.T) {
	if _, err := BonusCounterfactual(simulation.ResultSet{}, simulation.PurchasePlan{}); err == nil {
		t.Error("expected error for empty result set")
	}
}
