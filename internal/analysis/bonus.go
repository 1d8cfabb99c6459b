package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// BonusImpact quantifies how much of the return the annual bonus grants
// contribute: per trial, the ROI with the bonus minus the ROI of a
// hypothetical path holding the same realized price but no bonus quantity.
type BonusImpact struct {
	BonusQuantity  float64 `json:"bonus_quantity"`
	MeanROIDelta   float64 `json:"mean_roi_delta"`
	MedianROIDelta float64 `json:"median_roi_delta"`
	MeanROI        float64 `json:"mean_roi"`
	MeanROINoBonus float64 `json:"mean_roi_no_bonus"`
}

// BonusCounterfactual subtracts the deterministic total bonus quantity from
// each trial and recomputes ROI at the trial's own realized price. A plan
// with no bonus yields a zero delta for every trial.
func BonusCounterfactual(rs simulation.ResultSet, plan simulation.PurchasePlan) (BonusImpact, error) {
	if len(rs) == 0 {
		return BonusImpact{}, fmt.Errorf("cannot compute bonus impact on an empty result set")
	}

	totalBonus := plan.TotalBonusQuantity(rs[0].HorizonMonths)

	deltas := make([]float64, len(rs))
	rois := make([]float64, len(rs))
	noBonusROIs := make([]float64, len(rs))
	for i, tr := range rs {
		reducedQuantity := tr.TotalQuantity.Sub(totalBonus)
		reducedValue := reducedQuantity.Mul(tr.FinalPrice)
		noBonusROI := simulation.ComputeROI(reducedValue, tr.TotalInvested)

		rois[i] = tr.ROI.InexactFloat64()
		noBonusROIs[i] = noBonusROI.InexactFloat64()
		deltas[i] = tr.ROI.Sub(noBonusROI).InexactFloat64()
	}

	sortedDeltas := append([]float64(nil), deltas...)
	sort.Float64s(sortedDeltas)

	return BonusImpact{
		BonusQuantity:  totalBonus.InexactFloat64(),
		MeanROIDelta:   stat.Mean(deltas, nil),
		MedianROIDelta: simulation.Quantile(sortedDeltas, 0.5),
		MeanROI:        stat.Mean(rois, nil),
		MeanROINoBonus: stat.Mean(noBonusROIs, nil),
	}, nil
}
