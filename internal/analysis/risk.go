package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// RiskMetrics holds the downside risk summary of one horizon's ROI
// distribution at a single confidence level.
//
// MaxDrawdown is a terminal-ROI proxy (the minimum ROI observed), not a true
// intra-path peak-to-trough drawdown; only terminal values are retained per
// trial.
type RiskMetrics struct {
	ConfidenceLevel   float64 `json:"confidence_level"`
	VaR               float64 `json:"var"`
	CVaR              float64 `json:"cvar"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	MaxDrawdown       float64 `json:"max_drawdown"`
	DownsideDeviation float64 `json:"downside_deviation"`
	ProbabilityOfLoss float64 `json:"probability_of_loss"`
}

// ComputeRiskMetrics derives the risk summary from an already-produced
// ResultSet. confidence is the level of the VaR/CVaR estimate, e.g. 0.95
// reads the 5th percentile of ROI.
//
// Degenerate cases fall back to documented values instead of failing:
// Sharpe is 0 when the ROI spread is 0, downside deviation is 0 when fewer
// than two losing trials exist, and CVaR falls back to VaR should the tail
// slice come up empty.
func ComputeRiskMetrics(rs simulation.ResultSet, confidence float64) (RiskMetrics, error) {
	if len(rs) == 0 {
		return RiskMetrics{}, fmt.Errorf("cannot compute risk metrics on an empty result set")
	}
	if confidence <= 0 || confidence >= 1 {
		return RiskMetrics{}, fmt.Errorf("confidence level must be in (0, 1), got %f", confidence)
	}

	rois, err := rs.Column(simulation.MetricROI)
	if err != nil {
		return RiskMetrics{}, err
	}
	sorted := append([]float64(nil), rois...)
	sort.Float64s(sorted)

	alpha := 1 - confidence
	valueAtRisk := simulation.Quantile(sorted, alpha)

	var tail []float64
	for _, r := range sorted {
		if r <= valueAtRisk {
			tail = append(tail, r)
		}
	}
	conditionalVaR := valueAtRisk
	if len(tail) > 0 {
		conditionalVaR = stat.Mean(tail, nil)
	}

	mean := stat.Mean(sorted, nil)
	std := 0.0
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	sharpe := 0.0
	if std > 0 {
		sharpe = mean / std
	}

	var losses []float64
	for _, r := range sorted {
		if r < 0 {
			losses = append(losses, r)
		}
	}
	downside := 0.0
	if len(losses) > 1 {
		downside = stat.StdDev(losses, nil)
	}

	return RiskMetrics{
		ConfidenceLevel:   confidence,
		VaR:               valueAtRisk,
		CVaR:              conditionalVaR,
		SharpeRatio:       sharpe,
		MaxDrawdown:       sorted[0],
		DownsideDeviation: downside,
		ProbabilityOfLoss: float64(len(losses)) / float64(len(sorted)),
	}, nil
}
