package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/passcheck/internal/adapter/driven/aesgcm"
	"github.com/ericfisherdev/passcheck/internal/adapter/driven/pwned"
	sqliteadapter "github.com/ericfisherdev/passcheck/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/passcheck/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/passcheck/internal/adapter/driving/web"
	"github.com/ericfisherdev/passcheck/internal/application"
	"github.com/ericfisherdev/passcheck/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"key_path", cfg.KeyPath,
		"breach_api_url", cfg.BreachAPIURL,
		"breach_timeout", cfg.BreachTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Load or generate the encryption key.
	cipher, err := aesgcm.Open(cfg.KeyPath)
	if err != nil {
		return err
	}
	slog.Info("encryption key ready", "path", cfg.KeyPath)

	// 4. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 5. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	version, err := sqliteadapter.SchemaVersion(db.Writer)
	if err != nil {
		return err
	}
	slog.Info("migrations complete", "schema_version", version)

	// 6. Wire adapters and services.
	passwordStore := sqliteadapter.NewPasswordRepo(db)
	passkeyStore := sqliteadapter.NewPasskeyRepo(db)
	breachClient := pwned.NewClient(cfg.BreachAPIURL, cfg.BreachTimeout)

	vaultSvc := application.NewVaultService(passwordStore, passkeyStore, cipher, slog.Default())
	checkSvc := application.NewCheckService(breachClient, cfg.BreachTimeout, slog.Default())

	// 7. Register JSON and HTML routes.
	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, httphandler.NewHandler(vaultSvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(checkSvc, slog.Default()))

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 8. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
