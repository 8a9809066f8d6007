package handler

import (
	"context"  // provides context with cancellation for store calls
	"errors"   // errors.Is on store sentinels
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for store calls

	"github.com/google/uuid"      // user ids
	"github.com/labstack/echo/v4" // Echo framework for HTTP routing
	"go.uber.org/zap"             // structured logging

	"github.com/iliyamo/delivery-price-compare/internal/middleware" // current user lookup
	"github.com/iliyamo/delivery-price-compare/internal/model"
	"github.com/iliyamo/delivery-price-compare/internal/queue"      // event payloads
	"github.com/iliyamo/delivery-price-compare/internal/repository" // user store
	"github.com/iliyamo/delivery-price-compare/internal/service"    // event publishing
	"github.com/iliyamo/delivery-price-compare/internal/utils"      // hashing and token issuing
)

// storeTimeout bounds every store call made by a handler.
const storeTimeout = 5 * time.Second

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Users      repository.UserStore
	Tokens     *utils.TokenService
	BcryptCost int
	Events     service.EventPublisher
	Log        *zap.Logger
}

func NewAuthHandler(users repository.UserStore, tokens *utils.TokenService, bcryptCost int, events service.EventPublisher, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, BcryptCost: bcryptCost, Events: events, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,bcryptmax"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userView is the public projection of a user; it never carries the hash.
type userView struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	Address   *string  `json:"address"`
	Favorites []string `json:"favorites"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userView  `json:"user"`
}

func publicUser(u model.User) userView {
	favs := u.Favorites
	if favs == nil {
		favs = []string{}
	}
	return userView{ID: u.ID, Email: u.Email, FirstName: u.FirstName, Address: u.Address, Favorites: favs}
}

// normalize trims and lower-cases the body before validation.  A blank
// address counts as no address.
func (r *registerReq) normalize() {
	r.Email = repository.NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		r.Address = nil
	}
}

// Register creates an account.  The response is the public user view; the
// client logs in separately to obtain a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password too long"})
	}
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u := model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		PasswordHash: hash,
		Address:      req.Address,
		Favorites:    []string{},
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	if err := h.Users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user already exists"})
		}
		h.Log.Error("insert user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	h.Events.PublishUserRegistered(ctx, queue.UserRegisteredEvent{
		UserID:     u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		OccurredAt: u.CreatedAt.Format(time.RFC3339),
	})
	h.Log.Info("user registered", zap.String("user_id", u.ID))
	return c.JSON(http.StatusCreated, publicUser(u))
}

// Login verifies credentials and issues a session token.  Unknown email and
// wrong password produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	u, err := h.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		h.Log.Error("find user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := h.Tokens.Issue(u.ID)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		ExpiresAt:   access.Exp,
		User:        publicUser(u),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authentication credentials"})
	}
	return c.JSON(http.StatusOK, publicUser(u))
}
