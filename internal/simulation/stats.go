package simulation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metric column names, matching the serialized field names of TrialResult.
const (
	MetricTotalQuantity        = "total_quantity"
	MetricTotalInvested        = "total_invested"
	MetricFinalPrice           = "final_price"
	MetricMarketValue          = "market_value"
	MetricSellValue            = "sell_value"
	MetricROI                  = "roi"
	MetricSellROI              = "sell_roi"
	MetricAnnualizedReturn     = "annualized_return"
	MetricSellAnnualizedReturn = "sell_annualized_return"
)

// DefaultMetricColumns lists every metric column in serialization order.
var DefaultMetricColumns = []string{
	MetricTotalQuantity,
	MetricTotalInvested,
	MetricFinalPrice,
	MetricMarketValue,
	MetricSellValue,
	MetricROI,
	MetricSellROI,
	MetricAnnualizedReturn,
	MetricSellAnnualizedReturn,
}

// ColumnStats summarizes one metric column. StdDev is the sample standard
// deviation (divisor n-1); a single-element column reports 0.
type ColumnStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

// SummaryStatistics maps metric column name to its summary. Deterministic
// given the ResultSet.
type SummaryStatistics map[string]ColumnStats

// Summarize computes the summary for the named metric columns of a
// ResultSet. Pass nil to summarize every column.
func Summarize(rs ResultSet, columns []string) (SummaryStatistics, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty result set")
	}
	if columns == nil {
		columns = DefaultMetricColumns
	}

	summary := make(SummaryStatistics, len(columns))
	for _, name := range columns {
		values, err := rs.Column(name)
		if err != nil {
			return nil, err
		}
		summary[name] = summarizeColumn(values)
	}
	return summary, nil
}

func summarizeColumn(values []float64) ColumnStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	std := 0.0
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}

	return ColumnStats{
		Mean:   stat.Mean(sorted, nil),
		Median: Quantile(sorted, 0.5),
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P5:     Quantile(sorted, 0.05),
		P25:    Quantile(sorted, 0.25),
		P75:    Quantile(sorted, 0.75),
		P95:    Quantile(sorted, 0.95),
	}
}

// Quantile returns the p-quantile of an ascending-sorted slice using linear
// interpolation between order statistics: the value at fractional index
// p * (n-1). Every quantile in the engine uses this one definition.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
