package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/furiafan/furiabot/internal/bot"
	"github.com/furiafan/furiabot/internal/esports"
	"github.com/furiafan/furiabot/internal/feeds"
	"github.com/furiafan/furiabot/internal/nlu"
	"github.com/furiafan/furiabot/internal/pipeline"
	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/pkg/health"
	"github.com/furiafan/furiabot/internal/pkg/logging"
	"github.com/furiafan/furiabot/internal/router"
	"github.com/furiafan/furiabot/internal/stats"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.SetupLogger(&cfg.Logging, "furiabot")
	logger.Info("Starting Furia Fan Bot")

	scoresClient, err := esports.NewClient(&cfg.Esports)
	if err != nil {
		logger.Error("Failed to create esports client", "error", err)
		os.Exit(1)
	}

	feedClient, err := feeds.NewClient(&cfg.News)
	if err != nil {
		logger.Error("Failed to create feed client", "error", err)
		os.Exit(1)
	}
	defer feedClient.Close()

	nluClient := nlu.NewClient(&cfg.NLU)
	table := stats.Default()

	pipelines := pipeline.NewService(scoresClient, feedClient, table, cfg, scoresClient.Location())
	intentRouter := router.New(nluClient, cfg.Stats.MinYear)

	furiaBot, err := bot.New(&cfg.Telegram, intentRouter, pipelines)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, stopping bot")
		cancel()
	}()

	if cfg.Health.Enabled {
		health.Run(ctx, health.AddrFor(cfg.Health.Port), "furiabot", cfg.Health.ReadHeaderTimeout)
	}

	furiaBot.Run(ctx)
}
