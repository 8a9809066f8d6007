package middleware

// identity.go carries the authenticated user between JWTAuth and the
// handlers behind it.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/delivery-price-compare/internal/model"
)

const userContextKey = "user"

func setCurrentUser(c echo.Context, u model.User) {
	c.Set(userContextKey, u)
}

// CurrentUser returns the user resolved by JWTAuth.  ok is false on routes
// that are not behind the middleware.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}

// currentUserID is the request log field; guests are "anon".
func currentUserID(c echo.Context) string {
	if u, ok := CurrentUser(c); ok {
		return u.ID
	}
	return "anon"
}
