package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

// CatalogRepo reads restaurants and platform prices from MySQL.
//
//	restaurants(id, name, cuisine_type, image_url, average_rating,
//	            estimated_delivery_time, location, position)
//	platform_prices(restaurant_id, platform, base_price, delivery_fee,
//	                service_fee, tax, total, position)
type CatalogRepo struct{ db *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

const restaurantColumns = "id,name,cuisine_type,image_url,average_rating,estimated_delivery_time,location"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListRestaurants applies the filter as LOWER(col) LIKE %term% conditions.
func (r *CatalogRepo) ListRestaurants(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, error) {
	where := []string{}
	args := []any{}
	for _, c := range []struct{ col, term string }{
		{"name", f.Query},
		{"cuisine_type", f.Cuisine},
		{"location", f.Location},
	} {
		if c.term == "" {
			continue
		}
		where = append(where, "LOWER("+c.col+") LIKE ?")
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(c.term))+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return r.queryRestaurants(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE "+cond+" ORDER BY position, id", args...)
}

func (r *CatalogRepo) ListRestaurantsByIDs(ctx context.Context, ids []string) ([]model.Restaurant, error) {
	if len(ids) == 0 {
		return []model.Restaurant{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	return r.queryRestaurants(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id IN ("+marks+") ORDER BY position, id", args...)
}

func (r *CatalogRepo) GetRestaurant(ctx context.Context, id string) (model.Restaurant, error) {
	var rest model.Restaurant
	err := r.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id=? LIMIT 1", id).
		Scan(&rest.ID, &rest.Name, &rest.CuisineType, &rest.ImageURL,
			&rest.AverageRating, &rest.EstimatedDeliveryTime, &rest.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, ErrRestaurantNotFound
		}
		return model.Restaurant{}, fmt.Errorf("select restaurant: %w", err)
	}
	return rest, nil
}

func (r *CatalogRepo) GetPrices(ctx context.Context, restaurantID string) ([]model.PlatformPrice, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM restaurants WHERE id=? LIMIT 1", restaurantID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("select restaurant: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, base_price, delivery_fee, service_fee, tax, total
		FROM platform_prices
		WHERE restaurant_id=?
		ORDER BY position, platform`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("select prices: %w", err)
	}
	defer rows.Close()

	out := []model.PlatformPrice{}
	for rows.Next() {
		var p model.PlatformPrice
		if err := rows.Scan(&p.Platform, &p.BasePrice, &p.DeliveryFee, &p.ServiceFee, &p.Tax, &p.Total); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) queryRestaurants(ctx context.Context, query string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select restaurants: %w", err)
	}
	defer rows.Close()

	out := []model.Restaurant{}
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.CuisineType, &rest.ImageURL,
			&rest.AverageRating, &rest.EstimatedDeliveryTime, &rest.Location); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
