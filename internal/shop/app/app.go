package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tradepost/internal/shop/http"
	"github.com/aussiebroadwan/tradepost/internal/shop/service"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/internal/shop/store/drivers/sqlite"
	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the shop service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	accessVerifier jwtx.Verifier

	tokenService        *service.TokenService
	authService         *service.AuthService
	productService      *service.ProductService
	cartService         *service.CartService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "shop-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("shop service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down shop service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("shop service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	accessSigner, err := jwtx.NewSignerHS256([]byte(app.cfg.AccessTokenKey))
	if err != nil {
		return fmt.Errorf("access token key: %w", err)
	}
	accessVerifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.AccessTokenKey))
	if err != nil {
		return fmt.Errorf("access token key: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256([]byte(app.cfg.RefreshTokenKey))
	if err != nil {
		return fmt.Errorf("refresh token key: %w", err)
	}
	refreshVerifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.RefreshTokenKey))
	if err != nil {
		return fmt.Errorf("refresh token key: %w", err)
	}

	app.accessVerifier = accessVerifier
	app.tokenService = &service.TokenService{
		Store:           app.db,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		AccessTTL:       app.cfg.AccessTokenTTL,
		RefreshTTL:      app.cfg.RefreshTokenTTL,
	}

	app.authService = &service.AuthService{Store: app.db, Tokens: app.tokenService}
	app.productService = &service.ProductService{Store: app.db}
	app.cartService = &service.CartService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.accessVerifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.ProductService = app.productService
	router.CartService = app.cartService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
