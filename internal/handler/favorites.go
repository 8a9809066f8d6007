package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/delivery-price-compare/internal/middleware"
	"github.com/iliyamo/delivery-price-compare/internal/queue"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
	"github.com/iliyamo/delivery-price-compare/internal/service"
)

// FavoritesHandler serves the authenticated favorites and stats endpoints.
// Every route behind it runs after JWTAuth, so the current user is always
// present.
type FavoritesHandler struct {
	Users   repository.UserStore
	Catalog repository.Catalog
	Events  service.EventPublisher
	Log     *zap.Logger
}

func NewFavoritesHandler(users repository.UserStore, catalog repository.Catalog, events service.EventPublisher, log *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{Users: users, Catalog: catalog, Events: events, Log: log}
}

// Add puts a catalog restaurant into the user's favorites.  Adding a
// restaurant twice succeeds without changing anything.
func (h *FavoritesHandler) Add(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	rid := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	if _, err := h.Catalog.GetRestaurant(ctx, rid); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		h.Log.Error("get restaurant failed", zap.String("restaurant_id", rid), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	changed, err := h.Users.AddFavorite(ctx, u.ID, rid)
	if err != nil {
		return h.storeError(c, "add favorite", err)
	}
	if changed {
		h.publish(ctx, u.ID, rid, queue.ActionAdded)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Restaurant added to favorites"})
}

// Remove drops a restaurant from the user's favorites.  Removing an id that
// is not a favorite succeeds.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	rid := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	changed, err := h.Users.RemoveFavorite(ctx, u.ID, rid)
	if err != nil {
		return h.storeError(c, "remove favorite", err)
	}
	if changed {
		h.publish(ctx, u.ID, rid, queue.ActionRemoved)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Restaurant removed from favorites"})
}

// List returns the user's favorite restaurants in catalog order.
func (h *FavoritesHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	rs, err := h.Catalog.ListRestaurantsByIDs(ctx, u.Favorites)
	if err != nil {
		h.Log.Error("list favorites failed", zap.String("user_id", u.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rs)
}

// Stats returns the savings summary over the user's favorites.
func (h *FavoritesHandler) Stats(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	stats, err := service.UserStats(ctx, h.Catalog, u)
	if err != nil {
		h.Log.Error("compute stats failed", zap.String("user_id", u.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// storeError maps a favorites write failure.  A missing user means the
// account vanished after authentication, which is reported like any other
// authentication failure.
func (h *FavoritesHandler) storeError(c echo.Context, op string, err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	h.Log.Error(op+" failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

func (h *FavoritesHandler) publish(ctx context.Context, userID, restaurantID, action string) {
	h.Events.PublishFavoritesChanged(ctx, queue.FavoritesChangedEvent{
		UserID:       userID,
		RestaurantID: restaurantID,
		Action:       action,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
