package marketdata

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic series parameters: a slowly drifting geometric walk with mild
// mean reversion toward the long-run gram price and rare fat-tail jumps.
// Prices are clamped to a sanity band so a long series cannot run away.
const (
	syntheticAnnualDrift      = 0.075
	syntheticAnnualVolatility = 0.16
	meanReversionSpeed        = 0.02
	longRunPrice              = 70.0
	jumpProbability           = 0.01
	jumpMagnitude             = 0.15
	syntheticMinPrice         = 20.0
	syntheticMaxPrice         = 500.0
)

// GenerateSyntheticHistory produces a plausible monthly gold price series
// ending at the month before now, for use when no real history cache is
// available. The same seed reproduces the same series.
func GenerateSyntheticHistory(months int, startPrice float64, seed uint64) *PriceHistory {
	rng := rand.New(rand.NewSource(seed))
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	monthlyDrift := syntheticAnnualDrift / 12
	monthlyVol := syntheticAnnualVolatility / math.Sqrt(12)

	start := time.Now().UTC().AddDate(0, -months, 0)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	price := startPrice
	points := make([]PricePoint, 0, months)
	for i := 0; i < months; i++ {
		reversion := meanReversionSpeed * (math.Log(longRunPrice) - math.Log(price))
		shock := monthlyVol * normal.Rand()

		jump := 0.0
		if rng.Float64() < jumpProbability {
			jump = jumpMagnitude
			if rng.Float64() < 0.5 {
				jump = -jump
			}
		}

		price *= math.Exp(monthlyDrift + reversion + shock + jump)
		price = math.Min(math.Max(price, syntheticMinPrice), syntheticMaxPrice)

		points = append(points, PricePoint{
			Month: start.AddDate(0, i, 0),
			Price: decimal.NewFromFloat(price).Round(2),
		})
	}
	return &PriceHistory{Points: points}
}
