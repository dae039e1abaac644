package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/angelcm/campaign-report-go/internal/config"
	"github.com/angelcm/campaign-report-go/internal/httpx"
	"github.com/angelcm/campaign-report-go/internal/pipeline"
	"github.com/angelcm/campaign-report-go/internal/schema"
	"github.com/angelcm/campaign-report-go/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	candidates := schema.Default()
	if cfg.SchemaFile != "" {
		if candidates, err = schema.Load(cfg.SchemaFile); err != nil {
			logger.Error("load schema file", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	p := pipeline.New(logger, candidates, cfg.RevenueMultiplier)
	st := store.NewMemoryStore()
	r := httpx.NewRouter(logger, p, st, cfg.MaxBodyBytes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
