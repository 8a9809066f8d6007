package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"                    // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Recover and CORS
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/iliyamo/delivery-price-compare/internal/config"   // Internal config loader
	"github.com/iliyamo/delivery-price-compare/internal/database" // MySQL and MongoDB bootstrap
	"github.com/iliyamo/delivery-price-compare/internal/handler"
	"github.com/iliyamo/delivery-price-compare/internal/logger"
	"github.com/iliyamo/delivery-price-compare/internal/middleware"
	"github.com/iliyamo/delivery-price-compare/internal/queue"
	"github.com/iliyamo/delivery-price-compare/internal/repository"
	"github.com/iliyamo/delivery-price-compare/internal/router" // Internal router setup
	"github.com/iliyamo/delivery-price-compare/internal/service"
	"github.com/iliyamo/delivery-price-compare/internal/utils"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.IsProd())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// backends holds the connections opened at startup so they can be closed
// on shutdown.
type backends struct {
	sql   *sql.DB
	mongo *mongo.Client
	redis *redis.Client
}

func (b *backends) close(ctx context.Context) {
	if b.sql != nil {
		_ = b.sql.Close()
	}
	if b.mongo != nil {
		_ = b.mongo.Disconnect(ctx)
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	var b backends
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b.close(ctx)
	}()

	if cfg.NeedsMySQL() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		db, err := database.Open(ctx, database.MySQL{
			User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("mysql: %w", err)
		}
		b.sql = db
	}

	users, err := openUserStore(cfg, &b)
	if err != nil {
		return err
	}
	var catalog repository.Catalog = repository.NewReferenceCatalog()
	if cfg.CatalogDriver == config.DriverMySQL {
		catalog = repository.NewCatalogRepo(b.sql)
	}
	log.Info("storage ready", zap.String("store", cfg.StoreDriver), zap.String("catalog", cfg.CatalogDriver))

	b.redis = config.NewRedisClient()
	if b.redis == nil {
		log.Info("redis unavailable; response cache disabled")
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = service.NewRabbitPublisher(cfg.RabbitURL, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ConsumerEnabled {
		consumers := map[string]interface{ Run(context.Context) error }{
			"favorites":     &queue.FavoritesConsumer{URL: cfg.RabbitURL, LogPath: "logs/favorites.log", Log: log},
			"registrations": &queue.RegistrationConsumer{URL: cfg.RabbitURL, LogPath: "logs/registrations.log", Log: log},
		}
		for name, c := range consumers {
			go func() {
				if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Warn("consumer exited", zap.String("consumer", name), zap.Error(err))
				}
			}()
		}
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	requireAuth := middleware.JWTAuth(middleware.NewAuthenticator(tokens, users), log)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), b.redis, log)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	router.RegisterRoutes(e) // Register application routes
	api := e.Group(cfg.APIPrefix)
	router.RegisterAuth(api, handler.NewAuthHandler(users, tokens, cfg.BcryptCost, events, log), requireAuth)
	router.RegisterCatalog(api, handler.NewCatalogHandler(catalog, log), cache)
	router.RegisterFavorites(api, handler.NewFavoritesHandler(users, catalog, events, log), requireAuth)

	addr := ":" + cfg.Port // Address string with port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openUserStore(cfg config.Config, b *backends) (repository.UserStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		return repository.NewUserRepo(b.sql), nil
	case config.DriverMongo:
		client, db, err := database.OpenMongo(cfg.MongoURL, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		b.mongo = client
		store := repository.NewMongoUserStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return store, nil
	default:
		return repository.NewMemoryUserStore(), nil
	}
}
