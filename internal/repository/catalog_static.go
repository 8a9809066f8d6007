package repository

import (
	"context"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// StaticCatalog serves a fixed in-memory dataset.  It is never mutated after
// construction, so concurrent readers need no locking.
type StaticCatalog struct {
	restaurants []model.Restaurant
	prices      map[string][]model.PlatformPrice
}

// NewStaticCatalog builds a catalog over the given data.  Restaurants keep
// the order given; prices are keyed by restaurant id.
func NewStaticCatalog(restaurants []model.Restaurant, prices map[string][]model.PlatformPrice) *StaticCatalog {
	return &StaticCatalog{restaurants: restaurants, prices: prices}
}

// NewReferenceCatalog returns the built-in reference dataset.
func NewReferenceCatalog() *StaticCatalog {
	return NewStaticCatalog(referenceRestaurants(), referencePrices())
}

func (c *StaticCatalog) ListRestaurants(_ context.Context, f RestaurantFilter) ([]model.Restaurant, error) {
	out := []model.Restaurant{}
	for _, r := range c.restaurants {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *StaticCatalog) ListRestaurantsByIDs(_ context.Context, ids []string) ([]model.Restaurant, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []model.Restaurant{}
	for _, r := range c.restaurants {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *StaticCatalog) GetRestaurant(_ context.Context, id string) (model.Restaurant, error) {
	for _, r := range c.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Restaurant{}, ErrRestaurantNotFound
}

func (c *StaticCatalog) GetPrices(ctx context.Context, restaurantID string) ([]model.PlatformPrice, error) {
	if _, err := c.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return append([]model.PlatformPrice{}, c.prices[restaurantID]...), nil
}
