package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/delivery-price-compare/internal/handler"
)

// RegisterFavorites registers the per-user endpoints.  Every route requires
// a valid session token.
func RegisterFavorites(api *echo.Group, h *handler.FavoritesHandler, requireAuth echo.MiddlewareFunc) {
	fav := api.Group("/favorites", requireAuth)
	fav.GET("", h.List)
	fav.POST("/:id", h.Add)
	fav.DELETE("/:id", h.Remove)

	user := api.Group("/user", requireAuth)
	user.GET("/stats", h.Stats)
}
