package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-prep/internal/api"
	"github.com/p-n-ai/pai-prep/internal/app"
	"github.com/p-n-ai/pai-prep/internal/platform/config"
	"github.com/p-n-ai/pai-prep/internal/platform/logging"
	"github.com/p-n-ai/pai-prep/internal/progress"
	"github.com/p-n-ai/pai-prep/internal/slides"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if _, err := logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	deck, err := slides.LoadDeck(cfg.Content.SlidesPath)
	if err != nil {
		slog.Error("failed to load slides", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newHandler(a, deck),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"schedule_dir", cfg.Content.ScheduleDir,
			"corpus_root", cfg.Content.CorpusRoot,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newHandler creates the HTTP router for the API and health endpoints.
func newHandler(a *app.App, deck *slides.Deck) http.Handler {
	return api.New(api.Config{
		Quiz:      a.Quiz,
		Validator: a.Validator,
		Slides:    deck,
		Progress:  progress.LogRecorder{},
		Ready:     a.Ready,
	}).Routes()
}
