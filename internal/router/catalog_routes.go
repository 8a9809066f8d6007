package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/delivery-price-compare/internal/handler"
)

// RegisterCatalog registers the public restaurant endpoints.  Both are
// plain GETs over reference data, so they run behind the response cache.
func RegisterCatalog(api *echo.Group, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := api.Group("/restaurants", cache)
	g.GET("/search", h.Search)
	g.GET("/:id/prices", h.Prices)
}
