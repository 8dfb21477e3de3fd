package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/ParikhVedant/pare/internal/adapter/web"
	"github.com/ParikhVedant/pare/internal/config"
	"github.com/ParikhVedant/pare/internal/infra/crm"
	"github.com/ParikhVedant/pare/internal/infra/memory"
	"github.com/ParikhVedant/pare/internal/infra/openai"
	sqliteRepo "github.com/ParikhVedant/pare/internal/infra/sqlite"
	"github.com/ParikhVedant/pare/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	planner, err := openai.NewPlanner(cfg.OpenAIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Error("planner init failed", "error", err)
		os.Exit(1)
	}

	var delivery usecase.LeadDelivery
	if cfg.CRMAPIURL != "" && cfg.CRMAPIKey != "" {
		delivery = crm.NewClient(cfg.CRMAPIURL, cfg.CRMAPIKey)
	} else {
		logger.Warn("CRM credentials not configured - leads will be logged locally")
		delivery = crm.NewLogDelivery(logger)
	}

	var funnelRepo usecase.FunnelRepository
	if repo, err := sqliteRepo.NewFunnelRepo(cfg.LeadsDSN); err != nil {
		logger.Warn("funnel sqlite unavailable, using memory", "error", err)
		funnelRepo = memory.NewFunnelRepo()
	} else {
		funnelRepo = repo
	}
	funnel := usecase.NewFunnel(funnelRepo, nil)

	opts := []usecase.AssistantOption{
		usecase.WithLeadDelivery(delivery),
		usecase.WithFunnel(funnel),
		usecase.WithLogger(logger),
	}
	if leadRepo, err := sqliteRepo.NewLeadRepo(cfg.LeadsDSN); err != nil {
		logger.Warn("lead storage unavailable", "dsn", cfg.LeadsDSN, "error", err)
	} else {
		opts = append(opts, usecase.WithLeadRepository(leadRepo))
	}

	assistant, err := usecase.NewAssistant(planner, opts...)
	if err != nil {
		logger.Error("assistant init failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	handler := web.NewHandler(assistant, funnel, logger)
	if err := web.Serve(ctx, ":"+cfg.Port, handler); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}
