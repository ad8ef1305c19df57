package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/cursedbuild/storefront/docs"
	"github.com/cursedbuild/storefront/internal/api/handlers"
	"github.com/cursedbuild/storefront/internal/api/middleware"
	"github.com/cursedbuild/storefront/internal/config"
	"github.com/cursedbuild/storefront/internal/health"
	"github.com/cursedbuild/storefront/internal/metrics"
	repository "github.com/cursedbuild/storefront/internal/repositories"
	service "github.com/cursedbuild/storefront/internal/services"
	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/cursedbuild/storefront/internal/storage/postgres"
	"github.com/cursedbuild/storefront/internal/storage/redisstore"
	"github.com/cursedbuild/storefront/internal/storage/sqlitestore"
	"github.com/cursedbuild/storefront/internal/tracing"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Catalog, per-device cart and local account sessions for the plugin and modpack storefront.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the device token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Storage setup
	store, redisClient, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error opening storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing storage", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Storage closed")
		}
	}()

	if cfg.RateConfig.Enabled && redisClient == nil {
		redisClient, err = redisstore.NewClient(cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer redisClient.Close()
	}

	authOpts := authOptions(cfg, redisClient)

	jwtKey := []byte(cfg.Security.JWTKey)
	devices := service.NewDeviceRegistry(store, jwtKey, cfg.Security.TokenTTL(), service.WithAuthOptions(authOpts...))
	catalog := service.NewCatalogService()

	deviceHandler := handlers.NewDeviceHandler(devices)
	productHandler := handlers.NewProductHandler(catalog)
	cartHandler := handlers.NewCartHandler(catalog)
	authHandler := handlers.NewAuthHandler()
	deviceMiddleware := middleware.NewDeviceMiddleware(devices)

	healthHandler, err := health.NewHealthHandler(cfg, store)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go devices.RunSweeper(ctx, cfg.Security.DeviceIdleTimeout, time.Minute)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.String("version", health.Version))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/devices", deviceHandler.IssueToken())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", deviceMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", deviceMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", deviceMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", deviceMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", deviceMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/auth/register", deviceMiddleware.Authenticate(authHandler.Register()))
	routerMux.HandleFunc("POST /api/v1/auth/login", deviceMiddleware.Authenticate(authHandler.Login()))
	routerMux.HandleFunc("POST /api/v1/auth/logout", deviceMiddleware.Authenticate(authHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/auth/me", deviceMiddleware.Authenticate(authHandler.Me()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}

// openStorage returns the configured backend. The redis client is returned too
// so the login rate limiter can share it.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, *redis.Client, error) {

	switch cfg.Storage.Driver {
	case "memory":
		slog.Warn("Using in-memory storage, sessions will not survive a restart")
		return storage.NewMemoryStore(), nil, nil

	case "sqlite":
		store, err := sqlitestore.Open(cfg.Storage.SQLitePath)
		return store, nil, err

	case "redis":
		client, err := redisstore.NewClient(cfg.RedisConnect)
		if err != nil {
			return nil, nil, err
		}

		return redisstore.New(client, cfg.Storage.TTL), client, nil

	case "postgres":
		store, err := postgres.Open(ctx, cfg.Database)
		return store, nil, err
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func authOptions(cfg *config.Config, redisClient *redis.Client) []service.AuthOption {

	var opts []service.AuthOption

	if cfg.Security.HashPasswords {
		opts = append(opts, service.WithPasswordHasher(service.BcryptHasher{}))
	}

	if cfg.RateConfig.Enabled && redisClient != nil {
		opts = append(opts, service.WithRateLimiter(repository.NewRateLimitRepo(redisClient, cfg.RateConfig)))
	}

	return opts
}
