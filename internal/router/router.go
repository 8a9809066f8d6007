package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/delivery-price-compare/internal/handler" // handlers that implement the endpoints
)

// RegisterRoutes registers routes that live outside the API prefix.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints under <prefix>/auth.
// Register and login are open; /me runs behind requireAuth.
func RegisterAuth(api *echo.Group, a *handler.AuthHandler, requireAuth echo.MiddlewareFunc) {
	api.GET("", handler.Root)
	api.GET("/", handler.Root)

	g := api.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, requireAuth)
}
