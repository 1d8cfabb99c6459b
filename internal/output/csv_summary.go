package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/goldsim/gold-simulator/internal/analysis"
	"github.com/goldsim/gold-simulator/internal/simulation"
)

// CSVSummarizer implements the summary CSV output: one row per horizon and
// metric column, columns for each summary statistic.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *analysis.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"HorizonMonths", "Metric", "Mean", "Median", "Std", "Min", "Max", "P5", "P25", "P75", "P95"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, h := range report.Horizons {
		for _, metric := range simulation.DefaultMetricColumns {
			cs, ok := h.Summary[metric]
			if !ok {
				continue
			}
			row := []string{
				strconv.Itoa(h.HorizonMonths),
				metric,
				formatFloat(cs.Mean),
				formatFloat(cs.Median),
				formatFloat(cs.StdDev),
				formatFloat(cs.Min),
				formatFloat(cs.Max),
				formatFloat(cs.P5),
				formatFloat(cs.P25),
				formatFloat(cs.P75),
				formatFloat(cs.P95),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
