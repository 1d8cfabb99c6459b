package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRunHorizonsPreservesOrder(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{TrialCount: 15, Seed: 11})
	horizons := []int{60, 12, 36}

	results, err := sim.RunHorizons(horizons, decimal.NewFromFloat(106.41),
		ReturnModel{MeanMonthlyReturn: 0.005, StdMonthlyReturn: 0.04}, testPlan())
	if err != nil {
		t.Fatalf("RunHorizons returned error: %v", err)
	}

	if len(results) != len(horizons) {
		t.Fatalf("got %d horizon results, want %d", len(results), len(horizons))
	}
	for i, hr := range results {
		if hr.HorizonMonths != horizons[i] {
			t.Errorf("result %d: horizon = %d, want %d", i, hr.HorizonMonths, horizons[i])
		}
		if len(hr.Results) != 15 {
			t.Errorf("horizon %d: %d trials, want 15", hr.HorizonMonths, len(hr.Results))
		}
		if hr.Summary == nil {
			t.Errorf("horizon %d: missing summary", hr.HorizonMonths)
		}
	}
}

func TestRunHorizonsIndependentDraws(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{TrialCount: 10, Seed: 5})
	results, err := sim.RunHorizons([]int{24, 24}, decimal.NewFromFloat(100),
		ReturnModel{MeanMonthlyReturn: 0.005, StdMonthlyReturn: 0.04}, testPlan())
	if err != nil {
		t.Fatalf("RunHorizons returned error: %v", err)
	}
	// Identical horizons requested twice share the seed derivation, so equal
	// output here is expected; the check is that each run is internally varied.
	for _, hr := range results {
		distinct := map[string]bool{}
		for _, tr := range hr.Results {
			distinct[tr.FinalPrice.String()] = true
		}
		if len(distinct) < 2 {
			t.Error("horizon trials all identical")
		}
	}
}

func TestRunHorizonsValidation(t *testing.T) {
	sim := NewSimulator(SimulatorConfig{TrialCount: 10, Seed: 5})
	if _, err := sim.RunHorizons(nil, decimal.NewFromFloat(100), ReturnModel{}, testPlan()); err == nil {
		t.Error("expected error for empty horizon list")
	}
	if _, err := sim.RunHorizons([]int{12, -1}, decimal.NewFromFloat(100), ReturnModel{}, testPlan()); err == nil {
		t.Error("expected error for negative horizon")
	}
}
