package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/viewinvoices/server/internal/http"
	"github.com/viewinvoices/server/internal/invoices"
	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/internal/store"
	"github.com/viewinvoices/server/internal/store/drivers/filestore"
	"github.com/viewinvoices/server/pkg/httpx"
	"github.com/viewinvoices/server/pkg/jwtx"
	"github.com/viewinvoices/server/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the invoice viewer backend with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	users       store.Users
	invoiceRepo *invoices.PostgresRepository // nil when DATABASE_URL is unset

	// Services
	authService *service.AuthService
	userService *service.UserService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "viewinvoices",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if err := app.initStores(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("server starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"invoice_db", app.invoiceRepo != nil,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.invoiceRepo != nil {
		app.invoiceRepo.Close()
	}

	if err := app.users.Close(); err != nil {
		app.logger.Error("error closing user store", "error", err)
		return err
	}

	app.logger.Info("server stopped")
	return nil
}

// initStores opens the user record directory and, when configured, the
// invoice database. A missing DATABASE_URL is a supported mode: invoice
// routes answer 503 and everything else works normally.
func (app *Application) initStores() error {
	users, err := filestore.New(app.cfg.UserDataDir, app.logger)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	app.users = users

	if app.cfg.DatabaseURL == "" {
		app.logger.Warn("DATABASE_URL not set, invoice endpoints disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := invoices.NewPostgresRepository(ctx, app.cfg.DatabaseURL)
	if err != nil {
		_ = users.Close()
		return fmt.Errorf("failed to connect to invoice database: %w", err)
	}
	app.invoiceRepo = repo

	app.logger.Info("invoice database connected")
	return nil
}

// initServices initializes the business logic services.
func (app *Application) initServices() error {
	secret := []byte(app.cfg.JWTSecret)

	signer, err := jwtx.NewSignerHMAC(app.cfg.JWTAlgorithm, secret)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHMAC(app.cfg.JWTAlgorithm, secret)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.authService = &service.AuthService{
		Store:    app.users,
		Signer:   signer,
		Verifier: verifier,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.userService = &service.UserService{Store: app.users}

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		httpx.CORSConfig{AllowedOrigins: app.cfg.CORSOrigins},
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	if app.invoiceRepo != nil {
		router.InvoiceRepo = app.invoiceRepo
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
