package simulation

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ResultSet is the ordered collection of trial outcomes for one horizon.
// Read-only to all downstream analyzers.
type ResultSet []TrialResult

// SimulatorConfig holds configuration for a Monte Carlo run.
type SimulatorConfig struct {
	TrialCount int
	Seed       int64
	PriceBand  *PriceBand
	Logger     Logger
}

// Simulator drives the Monte Carlo trials for the purchase plan.
type Simulator struct {
	TrialCount int
	Seed       int64
	PriceBand  *PriceBand

	logger Logger
}

// NewSimulator creates a simulator. A zero seed is replaced by the process
// seed provider so every run gets fresh randomness unless pinned.
func NewSimulator(config SimulatorConfig) *Simulator {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	logger := config.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &Simulator{
		TrialCount: config.TrialCount,
		Seed:       config.Seed,
		PriceBand:  config.PriceBand,
		logger:     logger,
	}
}

// trialSeed derives an independent seed for one trial of one horizon.
// Distinct trials must never share or replay generator state, so each gets
// its own source keyed off the run seed. The multiplier is the 64-bit golden
// ratio used by splitmix-style sequence generators.
func (s *Simulator) trialSeed(horizonMonths, trial int) uint64 {
	const gamma = 0x9E3779B97F4A7C15
	return uint64(s.Seed) ^ (uint64(horizonMonths) * 0xBF58476D1CE4E5B9) ^ (uint64(trial+1) * gamma)
}

// Run executes TrialCount independent trials over the given horizon and
// collects one TrialResult per trial, in trial order. No I/O, no shared
// mutable state between trials.
func (s *Simulator) Run(horizonMonths int, initialPrice decimal.Decimal, model ReturnModel, plan PurchasePlan) (ResultSet, error) {
	if s.TrialCount < 1 {
		return nil, fmt.Errorf("trial count must be at least 1, got %d", s.TrialCount)
	}
	if horizonMonths < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 month, got %d", horizonMonths)
	}
	if initialPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("initial price must be positive, got %s", initialPrice)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid purchase plan: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid return model: %w", err)
	}
	if s.PriceBand != nil {
		if err := s.PriceBand.Validate(); err != nil {
			return nil, fmt.Errorf("invalid price band: %w", err)
		}
	}

	s.logger.Debugf("running %d trials over %d months (seed=%d)", s.TrialCount, horizonMonths, s.Seed)

	results := make(ResultSet, s.TrialCount)
	errs := make([]error, s.TrialCount)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10) // Limit concurrent trials

	for i := 0; i < s.TrialCount; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			dist := distuv.Normal{
				Mu:    model.MeanMonthlyReturn,
				Sigma: model.StdMonthlyReturn,
				Src:   rand.NewSource(s.trialSeed(horizonMonths, trial)),
			}
			results[trial], errs[trial] = SimulatePath(horizonMonths, initialPrice, plan, s.PriceBand, dist.Rand)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trial failed: %w", err)
		}
	}
	return results, nil
}

// Column extracts one named metric as a float64 slice in trial order.
// The names match the serialized field names consumed downstream.
func (rs ResultSet) Column(name string) ([]float64, error) {
	values := make([]float64, len(rs))
	for i, tr := range rs {
		var d decimal.Decimal
		switch name {
		case MetricTotalQuantity:
			d = tr.TotalQuantity
		case MetricTotalInvested:
			d = tr.TotalInvested
		case MetricFinalPrice:
			d = tr.FinalPrice
		case MetricMarketValue:
			d = tr.MarketValue
		case MetricSellValue:
			d = tr.SellValue
		case MetricROI:
			d = tr.ROI
		case MetricSellROI:
			d = tr.SellROI
		case MetricAnnualizedReturn:
			d = tr.AnnualizedReturn
		case MetricSellAnnualizedReturn:
			d = tr.SellAnnualizedReturn
		default:
			return nil, fmt.Errorf("unknown metric column %q", name)
		}
		values[i] = d.InexactFloat64()
	}
	return values, nil
}
