package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ParikhVedant/pare/internal/config"
	"github.com/ParikhVedant/pare/internal/infra/crm"
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
		fmt.Println("Please make sure you have a valid OPENAI_API_KEY in your .env file.")
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

	opts := []usecase.AssistantOption{
		usecase.WithLeadDelivery(delivery),
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

	fmt.Println("Welcome to PARE India AI Assistant!")
	fmt.Println("Type 'exit' or 'quit' to end the conversation.")
	fmt.Println()

	session := assistant.NewSession()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			fmt.Println("\nThank you for using PARE India AI Assistant. Goodbye!")
			break
		}

		resp, err := assistant.Respond(context.Background(), session, input)
		if err != nil {
			logger.Error("turn failed", "error", err)
			fmt.Println("\nSorry, something went wrong. Please try again with a different query.")
			continue
		}

		fmt.Printf("\nAssistant: %s\n", resp.Response)
		if resp.Artifact != "" {
			fmt.Printf("\n[Sending %s brochure]\n", resp.Artifact)
		}
		fmt.Println()
	}
}
