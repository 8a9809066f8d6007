package middleware // middleware provides reusable echo middleware: authentication, caching and request logging

import (
	"context"  // context for the user lookup
	"errors"   // sentinel errors and errors.Is
	"net/http" // HTTP status codes for responses
	"strings"  // header parsing

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers
	"go.uber.org/zap"             // structured logging of rejected requests

	"github.com/iliyamo/delivery-price-compare/internal/model"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
	"github.com/iliyamo/delivery-price-compare/internal/utils"
)

// ErrUserNotFound is returned when a valid token names an account that no
// longer exists.
var ErrUserNotFound = errors.New("token subject not found")

// TokenVerifier validates a raw session token and returns its subject.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// UserFinder loads an account by id.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (model.User, error)
}

// Authenticator resolves an Authorization header value to a user.  It has
// no side effects.
type Authenticator struct {
	tokens TokenVerifier
	users  UserFinder
}

func NewAuthenticator(tokens TokenVerifier, users UserFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate parses a "Bearer <token>" header, verifies the token and
// loads its subject.  Header problems yield utils.ErrTokenMalformed, token
// problems pass through from the verifier, and an unknown subject yields
// ErrUserNotFound.  Any other error comes from the user store.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (model.User, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return model.User{}, err
	}
	userID, err := a.tokens.Verify(raw)
	if err != nil {
		return model.User{}, err
	}
	u, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func bearerToken(header string) (string, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", utils.ErrTokenMalformed
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", utils.ErrTokenMalformed
	}
	return raw, nil
}

// IsAuthError reports whether err is one of the authentication failures
// that map to 401.
func IsAuthError(err error) bool {
	return errors.Is(err, utils.ErrTokenMalformed) ||
		errors.Is(err, utils.ErrTokenInvalidSignature) ||
		errors.Is(err, utils.ErrTokenExpired) ||
		errors.Is(err, ErrUserNotFound)
}

// JWTAuth returns an Echo middleware that authenticates the request and
// stores the resolved user in the context for CurrentUser.  All
// authentication failures share one response body so that callers cannot
// tell an expired token from a deleted account.
func JWTAuth(auth *Authenticator, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := auth.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if IsAuthError(err) {
					log.Debug("request rejected", zap.String("path", c.Path()), zap.Error(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
				}
				log.Error("user lookup failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}
			setCurrentUser(c, u)
			return next(c)
		}
	}
}
