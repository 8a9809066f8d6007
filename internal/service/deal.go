// Package service holds the domain logic that sits between the HTTP handlers
// and the data sources: best-deal evaluation, user stats and event
// publishing.
package service

import (
	"errors"
	"math"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// ErrNoPricesAvailable is returned when a restaurant has no platform prices.
var ErrNoPricesAvailable = errors.New("no prices available")

// totalTolerance is how far a price's components may drift from its total
// before the row is reported as inconsistent.
const totalTolerance = 0.01

// Deal is the outcome of comparing one restaurant's platform prices.
type Deal struct {
	BestDeal   model.PlatformPrice
	MaxSavings float64
}

// EvaluateDeal picks the offer with the lowest total and the spread between
// the most and least expensive offers.  On ties the earliest entry wins;
// MaxSavings is rounded to cents.
func EvaluateDeal(prices []model.PlatformPrice) (Deal, error) {
	if len(prices) == 0 {
		return Deal{}, ErrNoPricesAvailable
	}
	best, worst := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p.Total < best.Total {
			best = p
		}
		if p.Total > worst.Total {
			worst = p
		}
	}
	return Deal{BestDeal: best, MaxSavings: roundCents(worst.Total - best.Total)}, nil
}

// TotalMismatch reports the difference between p's components and its
// authoritative total when it exceeds one cent.
func TotalMismatch(p model.PlatformPrice) (float64, bool) {
	diff := roundCents(p.ComponentSum() - p.Total)
	return diff, math.Abs(diff) > totalTolerance
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
