package analysis

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

func simulatedResultSet(t *testing.T, trials int, std float64) simulation.ResultSet {
	t.Helper()
	plan := simulation.PurchasePlan{
		BuyPrice:             decimal.NewFromFloat(124.24),
		SellPrice:            decimal.NewFromFloat(111.97),
		MonthlyQuantity:      decimal.NewFromInt(4),
		BonusQuantityPerYear: decimal.NewFromInt(4),
	}
	sim := simulation.NewSimulator(simulation.SimulatorConfig{TrialCount: trials, Seed: 17})
	rs, err := sim.Run(36, decimal.NewFromFloat(106.41),
		simulation.ReturnModel{MeanMonthlyReturn: 0.005, StdMonthlyReturn: std}, plan)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return rs
}

func TestPriceSensitivityIdentityMultiplier(t *testing.T) {
	rs := simulatedResultSet(t, 40, 0.04)

	rois, err := rs.Column(simulation.MetricROI)
	if err != nil {
		t.Fatalf("Column returned error: %v", err)
	}
	sort.Float64s(rois)
	wantMedian := simulation.Quantile(rois, 0.5)

	points, err := PriceSensitivity(rs, []float64{1.0})
	if err != nil {
		t.Fatalf("PriceSensitivity returned error: %v", err)
	}
	if points[0].MedianROI != wantMedian {
		t.Errorf("multiplier 1.0 median ROI = %v, want exact original %v", points[0].MedianROI, wantMedian)
	}
}

func TestPriceSensitivityOrdering(t *testing.T) {
	rs := simulatedResultSet(t, 40, 0.04)

	points, err := PriceSensitivity(rs, nil)
	if err != nil {
		t.Fatalf("PriceSensitivity returned error: %v", err)
	}
	if len(points) != len(DefaultPriceMultipliers) {
		t.Fatalf("got %d points, want %d", len(points), len(DefaultPriceMultipliers))
	}
	// A higher terminal price can only improve the market ROI.
	for i := 1; i < len(points); i++ {
		if points[i].MedianROI < points[i-1].MedianROI {
			t.Errorf("median ROI not increasing with multiplier: %v", points)
		}
	}
	// The sell price is a fixed buyback rate, untouched by the multiplier.
	for i := 1; i < len(points); i++ {
		if points[i].MedianSellROI != points[0].MedianSellROI {
			t.Error("sell ROI changed with the price multiplier")
		}
	}
}

func TestPriceSensitivityValidation(t *testing.T) {
	rs := resultSetFromROIs([]float64{0.1})
	if _, err := PriceSensitivity(simulation.ResultSet{}, nil); err == nil {
		t.Error("expected error for empty result set")
	}
	if _, err := PriceSensitivity(rs, []float64{1.0, -0.5}); err == nil {
		t.Error("expected error for non-positive multiplier")
	}
}
