package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/delivery-price-compare/internal/model"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
	"github.com/iliyamo/delivery-price-compare/internal/service"
)

// CatalogHandler serves the public restaurant and price endpoints.
type CatalogHandler struct {
	Catalog repository.Catalog
	Log     *zap.Logger
}

func NewCatalogHandler(catalog repository.Catalog, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Log: log}
}

// restaurantPrices is the comparison view for one restaurant.
type restaurantPrices struct {
	Restaurant model.Restaurant      `json:"restaurant"`
	Prices     []model.PlatformPrice `json:"prices"`
	BestDeal   model.PlatformPrice   `json:"best_deal"`
	MaxSavings float64               `json:"max_savings"`
}

// Search lists restaurants matching the optional q, cuisine and location
// query parameters.  All filters are case-insensitive substrings.
func (h *CatalogHandler) Search(c echo.Context) error {
	f := repository.RestaurantFilter{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Cuisine:  strings.TrimSpace(c.QueryParam("cuisine")),
		Location: strings.TrimSpace(c.QueryParam("location")),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	rs, err := h.Catalog.ListRestaurants(ctx, f)
	if err != nil {
		h.Log.Error("list restaurants failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rs)
}

// Prices compares the platform offers for one restaurant.
func (h *CatalogHandler) Prices(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	r, err := h.Catalog.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		h.Log.Error("get restaurant failed", zap.String("restaurant_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	prices, err := h.Catalog.GetPrices(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		h.Log.Error("get prices failed", zap.String("restaurant_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	deal, err := service.EvaluateDeal(prices)
	if errors.Is(err, service.ErrNoPricesAvailable) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no prices found for this restaurant"})
	}
	for _, p := range prices {
		if diff, bad := service.TotalMismatch(p); bad {
			h.Log.Warn("price total does not match its components",
				zap.String("restaurant_id", id), zap.String("platform", p.Platform), zap.Float64("diff", diff))
		}
	}

	return c.JSON(http.StatusOK, restaurantPrices{
		Restaurant: r,
		Prices:     prices,
		BestDeal:   deal.BestDeal,
		MaxSavings: deal.MaxSavings,
	})
}
