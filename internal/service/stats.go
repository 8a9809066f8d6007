package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/delivery-price-compare/internal/model"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
)

// PriceSource is the part of the catalog that stats need.
type PriceSource interface {
	GetPrices(ctx context.Context, restaurantID string) ([]model.PlatformPrice, error)
}

// UserStats aggregates a user's favorites against current prices.  A
// favorite that is no longer in the catalog, or has no prices, still counts
// as a favorite but adds nothing to savings or comparisons.
func UserStats(ctx context.Context, prices PriceSource, u model.User) (model.UserStats, error) {
	stats := model.UserStats{FavoritesCount: len(u.Favorites)}
	var saved float64
	for _, id := range u.Favorites {
		ps, err := prices.GetPrices(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				continue
			}
			return model.UserStats{}, fmt.Errorf("prices for %s: %w", id, err)
		}
		deal, err := EvaluateDeal(ps)
		if err != nil {
			continue
		}
		saved += deal.MaxSavings
		stats.ComparisonsCount += len(ps)
	}
	stats.TotalSaved = roundCents(saved)
	return stats, nil
}
