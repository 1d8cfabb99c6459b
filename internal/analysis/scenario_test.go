package analysis

import (
	"math"
	"testing"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

func TestScenarioSnapshotsPickNearestTrial(t *testing.T) {
	rs := resultSetFromROIs([]float64{0.0, 0.1, 0.2, 0.3, 0.4})

	scenarios, err := ScenarioSnapshots(rs)
	if err != nil {
		t.Fatalf("ScenarioSnapshots returned error: %v", err)
	}
	if len(scenarios) != len(ScenarioPercentiles) {
		t.Fatalf("got %d scenarios, want %d", len(scenarios), len(ScenarioPercentiles))
	}

	var median Scenario
	for _, s := range scenarios {
		if s.Percentile == 50 {
			median = s
		}
	}
	// The 50th percentile of {0..0.4} is 0.2, an actually-sampled value.
	if got := median.Trial.ROI.InexactFloat64(); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("median scenario ROI = %v, want 0.2", got)
	}
}

func TestScenarioSnapshotsReturnRealTrials(t *testing.T) {
	rs := resultSetFromROIs([]float64{-0.2, -0.05, 0.03, 0.11, 0.27, 0.4, 0.55})

	scenarios, err := ScenarioSnapshots(rs)
	if err != nil {
		t.Fatalf("ScenarioSnapshots returned error: %v", err)
	}
	for _, s := range scenarios {
		found := false
		for _, tr := range rs {
			if tr.ROI.Equal(s.Trial.ROI) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("p%d scenario ROI %s is not an actual trial value", s.Percentile, s.Trial.ROI)
		}
	}
}

func TestScenarioSnapshotsTieBreaksToFirstOccurrence(t *testing.T) {
	// Both trials are equidistant from the median target 0.2; the first in
	// result order must win.
	rs := resultSetFromROIs([]float64{0.3, 0.1})

	scenarios, err := ScenarioSnapshots(rs)
	if err != nil {
		t.Fatalf("ScenarioSnapshots returned error: %v", err)
	}
	for _, s := range scenarios {
		if s.Percentile == 50 {
			if got := s.Trial.ROI.InexactFloat64(); got != 0.3 {
				t.Errorf("tie broke to %v, want first trial 0.3", got)
			}
		}
	}
}

func TestScenarioSnapshotsEmpty(t *testing.T) {
	if _, err := ScenarioSnapshots(simulation.ResultSet{}); err == nil {
		t.Error("expected error for empty result set")
	}
}
