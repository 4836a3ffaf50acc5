// Package main runs a short headless walkthrough of the simulation:
// a few days pass, characters move and talk, and the console shows
// what the world noticed.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

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
	ctx := context.Background()

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

	w.OnNotice(func(n world.Notice) {
		fmt.Printf("  [%s] %s: %s\n", n.Date, n.Type, n.Message)
	})

	alice, _ := w.Character("Alice Chen")
	bob, _ := w.Character("Robert Martinez")

	fmt.Printf("=== %s, %s ===\n", w.Name, w.CurrentDate().Format("2006-01-02"))

	fmt.Println("\nAlice flies to the Tokyo Office...")
	if err := alice.MoveToLocation(ctx, "Tokyo Office"); err != nil {
		log.Fatalf("move failed: %v", err)
	}
	fmt.Printf("  jet lagged: %v\n", alice.JetLagged)

	fmt.Println("\nAlice texts Robert about the trip...")
	if err := alice.Communicate(ctx, "Robert Martinez", "Landed in Tokyo! The office has a view of the tower."); err != nil {
		log.Fatalf("communicate failed: %v", err)
	}
	fmt.Printf("  alice->robert: %.2f, robert->alice: %.2f\n",
		alice.Friendship("Robert Martinez"), bob.Friendship("Alice Chen"))

	fmt.Println("\nFive days pass...")
	if err := w.AdvanceTime(ctx, 5); err != nil {
		log.Fatalf("advance failed: %v", err)
	}
	fmt.Printf("  date: %s, alice jet lagged: %v\n",
		w.CurrentDate().Format("2006-01-02"), alice.JetLagged)

	fmt.Println("\nSuggesting a task to Robert...")
	accepted, err := bob.RecommendTask(ctx, "cook a Japanese dinner for the neighbors")
	if err != nil {
		log.Fatalf("task recommendation failed: %v", err)
	}
	fmt.Printf("  accepted: %v\n", accepted)

	fmt.Println("\nChatting with Alice...")
	reply, err := alice.Respond(ctx, "How is Tokyo treating you?")
	if err != nil {
		log.Fatalf("chat failed: %v", err)
	}
	fmt.Printf("  Alice: %s\n", reply)

	fmt.Println("\nRecent experiences for Alice:")
	for _, exp := range alice.RecentExperiences() {
		fmt.Printf("  - %s\n", exp)
	}
}
