package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/simulation"
)

// PricePoint is one month of the gold price series, EUR per gram.
type PricePoint struct {
	Month time.Time       `json:"month"`
	Price decimal.Decimal `json:"price"`
}

const monthLayout = "2006-01"

// PriceHistory holds a monthly price series ordered oldest to newest.
type PriceHistory struct {
	Points []PricePoint `json:"points"`
}

// LoadCSV reads a month,price series from a CSV cache file. Malformed rows
// are skipped rather than failing the whole load, matching how partially
// hand-edited cache files show up in practice.
func LoadCSV(path string) (*PriceHistory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var points []PricePoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}

		if len(record) < 2 {
			continue // Skip malformed rows
		}

		month, err := time.Parse(monthLayout, record[0])
		if err != nil {
			continue // Skip rows with invalid month
		}

		price, err := decimal.NewFromString(record[1])
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			continue // Skip rows with invalid price
		}

		points = append(points, PricePoint{Month: month, Price: price})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no valid price points found in %s", path)
	}

	return &PriceHistory{Points: points}, nil
}

// SaveCSV writes the series back to a month,price cache file.
func (h *PriceHistory) SaveCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"month", "price"}); err != nil {
		return err
	}
	for _, p := range h.Points {
		if err := w.Write([]string{p.Month.Format(monthLayout), p.Price.StringFixed(2)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Prices returns the series as float64 values in order.
func (h *PriceHistory) Prices() []float64 {
	out := make([]float64, len(h.Points))
	for i, p := range h.Points {
		out[i] = p.Price.InexactFloat64()
	}
	return out
}

// LatestPrice returns the newest price of the series.
func (h *PriceHistory) LatestPrice() decimal.Decimal {
	return h.Points[len(h.Points)-1].Price
}

// DeriveReturnModel computes the monthly return moments of the series.
func (h *PriceHistory) DeriveReturnModel() (simulation.ReturnModel, error) {
	return simulation.ReturnModelFromPrices(h.Prices())
}
