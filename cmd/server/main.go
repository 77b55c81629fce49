package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichaelReichel/clock2doc/internal/admin"
	"github.com/MichaelReichel/clock2doc/internal/config"
	"github.com/MichaelReichel/clock2doc/internal/core"
	_ "github.com/MichaelReichel/clock2doc/internal/core/formats" // Register Toggl and Harvest
	"github.com/MichaelReichel/clock2doc/internal/logging"
	"github.com/MichaelReichel/clock2doc/internal/store"
	"github.com/MichaelReichel/clock2doc/internal/summary"
	"github.com/MichaelReichel/clock2doc/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"summary_enabled", cfg.Summary.APIKey != "",
	)
	slog.Debug("configuration", "config", cfg.String())

	if cfg.Security.AdminSecret == "" {
		slog.Warn("ADMIN_SECRET is not set; the admin inbox stays locked until a secret is stored")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	service := core.NewService(st, summary.New(cfg.Summary), core.ServiceConfig{
		MaxFileSize:          cfg.Upload.MaxFileSize,
		MaxConcurrentImports: cfg.Upload.MaxConcurrent,
		ImportWait:           cfg.Upload.MaxWaitTime,
		ImportTimeout:        cfg.Upload.Timeout,
		Details: core.DetailsDefaults{
			Currency:      cfg.Invoice.Currency,
			HourlyRate:    cfg.Invoice.HourlyRate,
			TaxRate:       cfg.Invoice.TaxRate,
			Notes:         cfg.Invoice.Notes,
			DueDays:       cfg.Invoice.DueDays,
			Template:      core.Template(cfg.Invoice.Template),
			SenderName:    cfg.Invoice.SenderName,
			SenderAddress: cfg.Invoice.SenderAddress,
		},
	})

	// Log registered formats
	for _, f := range service.Formats() {
		slog.Debug("export format registered", "key", f.Key, "label", f.Label)
	}

	server := web.NewServer(cfg, service, admin.NewInbox(st, cfg.Security.AdminSecret))

	g, gctx := errgroup.WithContext(ctx)

	// Expire abandoned drafts
	g.Go(func() error {
		service.StartDraftSweeper(gctx, core.SweepConfig{
			TTL:      cfg.Session.DraftTTL,
			Interval: cfg.Session.SweepInterval,
		})
		return nil
	})

	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Wait for active imports to complete (with timeout)
		if err := service.WaitForImports(shutdownCtx); err != nil {
			slog.Warn("imports did not complete in time", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
