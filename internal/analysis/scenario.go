package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// ScenarioPercentiles is the fixed percentile set reported as named
// scenarios (pessimistic through optimistic).
var ScenarioPercentiles = []int{5, 25, 50, 75, 95}

// Scenario is the full metric set of one real trial chosen to represent a
// percentile of the ROI distribution. Reporting a real trial keeps all
// fields mutually consistent, which an interpolated quantile would not.
type Scenario struct {
	Percentile int                    `json:"percentile"`
	TargetROI  float64                `json:"target_roi"`
	Trial      simulation.TrialResult `json:"trial"`
}

// ScenarioSnapshots locates, for each percentile of market ROI, the trial
// whose ROI is nearest the quantile value. Ties break to the earliest trial
// in result order.
func ScenarioSnapshots(rs simulation.ResultSet) ([]Scenario, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("cannot snapshot scenarios from an empty result set")
	}

	rois, err := rs.Column(simulation.MetricROI)
	if err != nil {
		return nil, err
	}
	sorted := append([]float64(nil), rois...)
	sort.Float64s(sorted)

	scenarios := make([]Scenario, 0, len(ScenarioPercentiles))
	for _, pct := range ScenarioPercentiles {
		target := simulation.Quantile(sorted, float64(pct)/100)

		best := 0
		bestDist := math.Abs(rois[0] - target)
		for i := 1; i < len(rois); i++ {
			if d := math.Abs(rois[i] - target); d < bestDist {
				best = i
				bestDist = d
			}
		}

		scenarios = append(scenarios, Scenario{
			Percentile: pct,
			TargetROI:  target,
			Trial:      rs[best],
		})
	}
	return scenarios, nil
}
