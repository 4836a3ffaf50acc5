package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/easeaico/worldsim/internal/types"
)

// MemoryRepo is the vector-index surface the service writes to and queries.
type MemoryRepo interface {
	AddMemory(ctx context.Context, mem types.Memory) error
	SearchSimilar(ctx context.Context, characterName string, embedding []float32, topK int, threshold float64) ([]types.RetrievedMemory, error)
	GetForDate(ctx context.Context, characterName string, date time.Time) ([]types.Memory, error)
	GetRecent(ctx context.Context, characterName string, limit int) ([]types.Memory, error)
}

// Service indexes and recalls character memories by semantic similarity.
type Service struct {
	embedder            Embedder
	memories            MemoryRepo
	topK                int
	similarityThreshold float64
}

// NewService returns a memory service.
func NewService(embedder Embedder, memories MemoryRepo, topK int, threshold float64) *Service {
	if topK <= 0 {
		topK = 5
	}
	if threshold <= 0 {
		threshold = 0.7
	}
	return &Service{
		embedder:            embedder,
		memories:            memories,
		topK:                topK,
		similarityThreshold: threshold,
	}
}

// Remember embeds one experience and upserts it into the index. A failed
// embedding leaves no record written.
func (s *Service) Remember(ctx context.Context, characterName, kind, content string, date time.Time, isUser bool) error {
	if content == "" {
		return nil
	}
	embedding, err := s.embedder.EmbedDocument(ctx, content)
	if err != nil {
		return err
	}

	return s.memories.AddMemory(ctx, types.Memory{
		CharacterName: characterName,
		Kind:          kind,
		Content:       content,
		IsUser:        isUser,
		Date:          date,
		Salience:      ComputeSalience(kind, content),
		Embedding:     embedding,
	})
}

// Recall returns up to k memories for a character ranked by similarity to
// the query. k <= 0 falls back to the configured top-K.
func (s *Service) Recall(ctx context.Context, characterName, query string, k int) ([]types.RetrievedMemory, error) {
	if query == "" {
		return nil, nil
	}
	if s.embedder == nil || s.memories == nil {
		return nil, fmt.Errorf("memory service not properly configured")
	}
	if k <= 0 {
		k = s.topK
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.memories.SearchSimilar(ctx, characterName, vec, k, s.similarityThreshold)
}

// ForDate returns the raw memories a character formed on one simulated day.
func (s *Service) ForDate(ctx context.Context, characterName string, date time.Time) ([]types.Memory, error) {
	return s.memories.GetForDate(ctx, characterName, date)
}

// Recent returns a character's newest memories, oldest first.
func (s *Service) Recent(ctx context.Context, characterName string, limit int) ([]types.Memory, error) {
	return s.memories.GetRecent(ctx, characterName, limit)
}
