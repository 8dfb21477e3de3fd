package main

import (
	"log/slog"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	telegramAdapter "github.com/ParikhVedant/pare/internal/adapter/telegram"
	"github.com/ParikhVedant/pare/internal/config"
	"github.com/ParikhVedant/pare/internal/domain"
	"github.com/ParikhVedant/pare/internal/infra/crm"
	"github.com/ParikhVedant/pare/internal/infra/memory"
	"github.com/ParikhVedant/pare/internal/infra/openai"
	sqliteRepo "github.com/ParikhVedant/pare/internal/infra/sqlite"
	"github.com/ParikhVedant/pare/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is not set")
		os.Exit(1)
	}

	// liveness endpoint for the hoster
	go func() {
		_ = http.ListenAndServe(":"+cfg.Port, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("bot init failed", "error", err)
		os.Exit(1)
	}
	bot.Debug = false
	logger.Info("authorized", "username", bot.Self.UserName)

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

	var userRepo domain.UserRepository
	if repo, err := sqliteRepo.NewUserRepo(cfg.LeadsDSN); err != nil {
		logger.Warn("user sqlite unavailable, using memory", "error", err)
		userRepo = memory.NewUserRepo()
	} else {
		userRepo = repo
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

	sender := telegramAdapter.NewSender(bot)
	var statRepo usecase.BroadcastStatRepository
	if repo, err := sqliteRepo.NewBroadcastStatRepo(cfg.LeadsDSN); err != nil {
		logger.Warn("broadcast stat sqlite unavailable, using memory", "error", err)
		statRepo = memory.NewBroadcastStatRepo()
	} else {
		statRepo = repo
	}
	broadcastUC := usecase.NewBroadcastUsecase(userRepo, sender, statRepo)

	adminIDs := telegramAdapter.ParseAdminIDsFromEnv()
	handler := telegramAdapter.NewHandler(bot, assistant, userRepo, broadcastUC, adminIDs, funnel, logger)
	handler.Run()
}
