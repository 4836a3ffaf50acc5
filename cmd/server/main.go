// Package main runs the world simulation behind the web UI.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/easeaico/worldsim/internal/api"
	"github.com/easeaico/worldsim/internal/config"
	"github.com/easeaico/worldsim/internal/llm"
	"github.com/easeaico/worldsim/internal/memory"
	"github.com/easeaico/worldsim/internal/mood"
	"github.com/easeaico/worldsim/internal/repository"
	"github.com/easeaico/worldsim/internal/seed"
	"github.com/easeaico/worldsim/internal/world"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down")
		cancel()
		os.Exit(0)
	}()

	store, err := repository.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	embedder, err := memory.NewEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("failed to create embedder: %v", err)
	}

	completer, err := llm.NewXAIClient(cfg.XAIAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatalf("failed to create chat client: %v", err)
	}

	memoryService := memory.NewService(embedder, store.Memories, cfg.TopK, cfg.SimilarityThreshold)
	summarizer := memory.NewSummarizer(completer)

	w := seed.BuildWorld(world.Deps{
		Memories:   memoryService,
		Completer:  completer,
		Summarizer: summarizer,
		Sentiment:  mood.NewAnalyzer(completer),
	}, cfg.SkillStep)

	server := api.NewServer(w, memoryService)
	router := server.Router(cfg.StaticDir)

	slog.Info("starting server", "addr", cfg.HTTPAddr, "world", w.Name)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
