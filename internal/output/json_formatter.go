package output

import (
	"encoding/json"

	"github.com/goldsim/gold-simulator/internal/analysis"
)

// JSONFormatter emits the full report as indented JSON. Field names follow
// the stable serialized names downstream analyzers index by.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *analysis.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
