package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/analysis"
	"github.com/goldsim/gold-simulator/internal/marketdata"
	"github.com/goldsim/gold-simulator/internal/simulation"
)

// maxServerTrials bounds a single request so one caller cannot pin the
// process; the CLI has no such cap.
const maxServerTrials = 100000

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCurrentPrice returns the cached spot price.
// GET /gold/current
func (s *Server) handleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	price, asOf, source := s.currentPrice()
	respondJSON(w, http.StatusOK, map[string]any{
		"price_eur_per_gram": price,
		"as_of":              asOf.Format(time.RFC3339),
		"source":             source,
	})
}

// handleHistoricalPrices returns a synthetic monthly series anchored at the
// cached spot price.
// GET /gold/historical?months=120
func (s *Server) handleHistoricalPrices(w http.ResponseWriter, r *http.Request) {
	months := 120
	if raw := r.URL.Query().Get("months"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 3 || m > 600 {
			respondError(w, http.StatusBadRequest, "months must be an integer between 3 and 600")
			return
		}
		months = m
	}

	price, _, _ := s.currentPrice()
	history := marketdata.GenerateSyntheticHistory(months, price.InexactFloat64(), uint64(time.Now().UnixNano()))
	respondJSON(w, http.StatusOK, history)
}

// SimulateRequest is the POST /simulate body. Omitted optional fields take
// the same defaults as the configuration file.
type SimulateRequest struct {
	BuyPrice             decimal.Decimal `json:"buy_price"`
	SellPrice            decimal.Decimal `json:"sell_price"`
	MonthlyQuantity      decimal.Decimal `json:"monthly_quantity"`
	BonusQuantityPerYear decimal.Decimal `json:"bonus_quantity_per_year"`
	InitialPrice         decimal.Decimal `json:"initial_price"`
	MeanMonthlyReturn    float64         `json:"mean_monthly_return"`
	StdMonthlyReturn     float64         `json:"std_monthly_return"`
	Horizons             []int           `json:"horizons"`
	TrialCount           int             `json:"trial_count"`
	InflationRate        float64         `json:"inflation_rate"`
	PriceMultipliers     []float64       `json:"price_multipliers"`
	ConfidenceLevels     []float64       `json:"confidence_levels"`
	Seed                 int64           `json:"seed"`
}

// handleSimulate runs a full multi-horizon simulation and returns the
// analysis report.
// POST /simulate
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if req.TrialCount == 0 {
		req.TrialCount = 10000
	}
	if req.TrialCount > maxServerTrials {
		respondError(w, http.StatusBadRequest, "trial_count exceeds server limit")
		return
	}
	if len(req.Horizons) == 0 {
		req.Horizons = []int{36, 60, 120}
	}
	if req.InitialPrice.IsZero() {
		price, _, _ := s.currentPrice()
		req.InitialPrice = price
	}

	plan := simulation.PurchasePlan{
		BuyPrice:             req.BuyPrice,
		SellPrice:            req.SellPrice,
		MonthlyQuantity:      req.MonthlyQuantity,
		BonusQuantityPerYear: req.BonusQuantityPerYear,
	}
	model := simulation.ReturnModel{
		MeanMonthlyReturn: req.MeanMonthlyReturn,
		StdMonthlyReturn:  req.StdMonthlyReturn,
	}

	sim := simulation.NewSimulator(simulation.SimulatorConfig{
		TrialCount: req.TrialCount,
		Seed:       req.Seed,
	})

	started := time.Now()
	horizons, err := sim.RunHorizons(req.Horizons, req.InitialPrice, model, plan)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := analysis.Options{
		InflationRate:    req.InflationRate,
		PriceMultipliers: req.PriceMultipliers,
		ConfidenceLevels: req.ConfidenceLevels,
	}
	report, err := analysis.BuildReport(horizons, req.InitialPrice, plan, model, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info().
		Int("trials", req.TrialCount).
		Ints("horizons", req.Horizons).
		Dur("elapsed", time.Since(started)).
		Msg("simulation completed")

	respondJSON(w, http.StatusOK, report)
}
