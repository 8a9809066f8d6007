package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/delivery-price-compare/internal/middleware"
	"github.com/iliyamo/delivery-price-compare/internal/queue"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
	"github.com/iliyamo/delivery-price-compare/internal/utils"
)

type recordingPublisher struct {
	mu         sync.Mutex
	favorites  []queue.FavoritesChangedEvent
	registered []queue.UserRegisteredEvent
}

func (p *recordingPublisher) PublishFavoritesChanged(_ context.Context, ev queue.FavoritesChangedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.favorites = append(p.favorites, ev)
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, ev queue.UserRegisteredEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, ev)
}

type testApp struct {
	e      *echo.Echo
	store  *repository.MemoryUserStore
	tokens *utils.TokenService
	events *recordingPublisher
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zap.NewNop()
	store := repository.NewMemoryUserStore()
	catalog := repository.NewReferenceCatalog()
	tokens := utils.NewTokenService("handler-test-secret", time.Hour)
	events := &recordingPublisher{}

	auth := NewAuthHandler(store, tokens, bcrypt.MinCost, events, log)
	cat := NewCatalogHandler(catalog, log)
	fav := NewFavoritesHandler(store, catalog, events, log)
	requireAuth := middleware.JWTAuth(middleware.NewAuthenticator(tokens, store), log)

	e := echo.New()
	e.Validator = NewRequestValidator()
	api := e.Group("/api")
	api.GET("/", Root)
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/me", auth.Me, requireAuth)
	api.GET("/restaurants/search", cat.Search)
	api.GET("/restaurants/:id/prices", cat.Prices)
	api.GET("/favorites", fav.List, requireAuth)
	api.POST("/favorites/:id", fav.Add, requireAuth)
	api.DELETE("/favorites/:id", fav.Remove, requireAuth)
	api.GET("/user/stats", fav.Stats, requireAuth)

	return &testApp{e: e, store: store, tokens: tokens, events: events}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// registerAndLogin creates an account and returns its access token.
func (a *testApp) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", echo.Map{
		"email": email, "password": "hunter22", "first_name": "Ann",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodPost, "/api/auth/login", "", echo.Map{"email": email, "password": "hunter22"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[loginResp](t, rec).AccessToken
}

func TestRoot(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/api/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Food Delivery Price Comparison API"}`, rec.Body.String())
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", echo.Map{
		"email": "  Ann@Example.com ", "password": "hunter22", "first_name": "Ann", "address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	u := decode[userView](t, rec)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
	require.NotNil(t, u.Address)
	assert.Equal(t, "1 Main St", *u.Address)
	assert.Equal(t, []string{}, u.Favorites)

	require.Len(t, app.events.registered, 1)
	assert.Equal(t, u.ID, app.events.registered[0].UserID)

	stored, err := app.store.FindUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "hunter22"))
}

func TestRegister_Duplicate(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin(t, "ann@example.com")
	before, err := app.store.FindUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", echo.Map{
		"email": "ANN@example.com", "password": "other-pass", "first_name": "Impostor",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user already exists", decode[map[string]string](t, rec)["error"])

	after, err := app.store.FindUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing email", echo.Map{"password": "x", "first_name": "A"}},
		{"missing password", echo.Map{"email": "a@b.co", "first_name": "A"}},
		{"missing first name", echo.Map{"email": "a@b.co", "password": "x"}},
		{"bad email", echo.Map{"email": "not-an-email", "password": "x", "first_name": "A"}},
		{"password too long", echo.Map{"email": "a@b.co", "password": strings.Repeat("p", 73), "first_name": "A"}},
		{"password over 72 bytes in fewer runes", echo.Map{"email": "a@b.co", "password": strings.Repeat("€", 25), "first_name": "A"}},
		{"blank first name", echo.Map{"email": "a@b.co", "password": "x", "first_name": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", echo.Map{"email": "a@b.co", "first_name": "A"})
	assert.Equal(t, "password required", decode[map[string]string](t, rec)["error"])

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", echo.Map{"email": "a@b.co"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "ann@example.com")

	sub, err := app.tokens.Verify(token)
	require.NoError(t, err)
	u, err := app.store.FindUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)

	rec := app.do(t, http.MethodPost, "/api/auth/login", "", echo.Map{"email": "ann@example.com", "password": "hunter22"})
	resp := decode[loginResp](t, rec)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin(t, "ann@example.com")

	wrongPass := app.do(t, http.MethodPost, "/api/auth/login", "", echo.Map{"email": "ann@example.com", "password": "nope"})
	unknown := app.do(t, http.MethodPost, "/api/auth/login", "", echo.Map{"email": "bob@example.com", "password": "hunter22"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestMe(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "ann@example.com")

	rec := app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@example.com", decode[userView](t, rec).Email)

	rec = app.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/auth/me", token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearch(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/restaurants/search?q=PIZZA", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Pizza Hut", got[0].Name)
	assert.Equal(t, "Domino's Pizza", got[1].Name)

	rec = app.do(t, http.MethodGet, "/api/restaurants/search?cuisine=sushi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPrices(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/restaurants/1/prices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[restaurantPrices](t, rec)
	assert.Equal(t, "McDonald's", resp.Restaurant.Name)
	assert.Len(t, resp.Prices, 3)
	assert.Equal(t, "Uber Eats", resp.BestDeal.Platform)
	assert.Equal(t, 17.50, resp.BestDeal.Total)
	assert.Equal(t, 2.35, resp.MaxSavings)

	rec = app.do(t, http.MethodGet, "/api/restaurants/999/prices", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritesFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "ann@example.com")

	for _, id := range []string{"2", "1", "2"} {
		rec := app.do(t, http.MethodPost, "/api/favorites/"+id, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, app.events.favorites, 2, "re-adding publishes nothing")

	rec := app.do(t, http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var favs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, "1", favs[0].ID)
	assert.Equal(t, "2", favs[1].ID)

	rec = app.do(t, http.MethodGet, "/api/user/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_saved":6.04,"comparisons_count":6,"favorites_count":2}`, rec.Body.String())

	rec = app.do(t, http.MethodDelete, "/api/favorites/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodDelete, "/api/favorites/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, app.events.favorites, 3)
	assert.Equal(t, queue.ActionRemoved, app.events.favorites[2].Action)

	rec = app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, []string{"2"}, decode[userView](t, rec).Favorites)
}

func TestFavorites_UnknownRestaurant(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "ann@example.com")

	rec := app.do(t, http.MethodPost, "/api/favorites/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, app.events.favorites)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/favorites"},
		{http.MethodPost, "/api/favorites/1"},
		{http.MethodDelete, "/api/favorites/1"},
		{http.MethodGet, "/api/user/stats"},
	} {
		rec := app.do(t, r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.path)
	}
}
