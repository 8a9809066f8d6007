package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// UserStore persists accounts and their favorites.  Implementations own
// their concurrency control: AddFavorite and RemoveFavorite must be atomic
// per user, and InsertUser must enforce email uniqueness.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByID(ctx context.Context, id string) (model.User, error)
	InsertUser(ctx context.Context, u model.User) error
	// AddFavorite adds restaurantID to the user's favorites.  It reports
	// whether the set changed; adding an existing favorite is not an error.
	AddFavorite(ctx context.Context, userID, restaurantID string) (bool, error)
	// RemoveFavorite removes restaurantID from the user's favorites.  It
	// reports whether the set changed; removing a missing id is not an error.
	RemoveFavorite(ctx context.Context, userID, restaurantID string) (bool, error)
}

// Catalog is the read-only source of restaurants and platform prices.
type Catalog interface {
	ListRestaurants(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, error)
	// ListRestaurantsByIDs returns the restaurants among ids in catalog
	// order, silently skipping unknown ids.
	ListRestaurantsByIDs(ctx context.Context, ids []string) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (model.Restaurant, error)
	// GetPrices returns the platform prices of a known restaurant, possibly
	// none.  Unknown ids yield ErrRestaurantNotFound.
	GetPrices(ctx context.Context, restaurantID string) ([]model.PlatformPrice, error)
}

// RestaurantFilter narrows a restaurant listing.  Every non-empty field must
// match as a case-insensitive substring; empty fields match everything.
type RestaurantFilter struct {
	Query    string // matched against the name
	Cuisine  string // matched against the cuisine type
	Location string // matched against the location tag
}

// Matches reports whether r satisfies the filter.
func (f RestaurantFilter) Matches(r model.Restaurant) bool {
	return containsFold(r.Name, f.Query) &&
		containsFold(r.CuisineType, f.Cuisine) &&
		containsFold(r.Location, f.Location)
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// NormalizeEmail lower-cases and trims an email so that lookups and the
// uniqueness constraint agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
