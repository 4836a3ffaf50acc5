package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/easeaico/worldsim/internal/types"
)

// memoryModel maps to the memories table.
type memoryModel struct {
	ID            string `gorm:"primaryKey"`
	CharacterName string
	Kind          string
	Content       string
	IsUser        bool `gorm:"column:is_user_memory"`
	Date          time.Time
	// Salience is a 0-1 importance score, used in ranking.
	Salience float64 `gorm:"column:salience_score"`
	// Embedding stores the vector representation for similarity search.
	Embedding *pgvector.Vector `gorm:"type:vector"`
	CreatedAt time.Time
}

func (memoryModel) TableName() string {
	return "memories"
}

// MemoryRepo accesses memory data.
type MemoryRepo struct {
	db *gorm.DB
}

// NewMemoryRepo returns a MemoryRepo.
func NewMemoryRepo(db *gorm.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

// AddMemory upserts one memory record with its embedding.
func (r *MemoryRepo) AddMemory(ctx context.Context, mem types.Memory) error {
	var vector *pgvector.Vector
	if len(mem.Embedding) > 0 {
		v := pgvector.NewVector(mem.Embedding)
		vector = &v
	}
	id := mem.ID
	if id == "" {
		id = uuid.New().String()
	}
	record := memoryModel{
		ID:            id,
		CharacterName: mem.CharacterName,
		Kind:          mem.Kind,
		Content:       mem.Content,
		IsUser:        mem.IsUser,
		Date:          mem.Date,
		Salience:      mem.Salience,
		Embedding:     vector,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// SearchSimilar returns top-K memories for one character, filtered by an
// exact-match character predicate and ranked by cosine similarity blended
// with salience.
func (r *MemoryRepo) SearchSimilar(ctx context.Context, characterName string, embedding []float32, topK int, threshold float64) ([]types.RetrievedMemory, error) {
	if len(embedding) == 0 {
		return nil, nil
	}

	query := `
		SELECT content, kind, is_user_memory AS is_user, date,
		       1 - (embedding <=> $1) AS similarity
		FROM memories
		WHERE character_name = $2
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) > $3
		ORDER BY (0.85 * (1 - (embedding <=> $1)) + 0.15 * COALESCE(salience_score, 0)) DESC
		LIMIT $4`

	var results []types.RetrievedMemory
	if err := r.db.WithContext(ctx).
		Raw(query, pgvector.NewVector(embedding), characterName, threshold, topK).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar memories: %w", err)
	}
	return results, nil
}

// GetForDate returns the memories a character formed on one simulated day,
// oldest first. Summary records are excluded so a day is never summarized
// into itself.
func (r *MemoryRepo) GetForDate(ctx context.Context, characterName string, date time.Time) ([]types.Memory, error) {
	var records []memoryModel
	if err := r.db.WithContext(ctx).
		Where("character_name = ? AND date = ? AND kind <> ?", characterName, date, types.MemoryKindSummary).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query memories for date: %w", err)
	}

	results := make([]types.Memory, 0, len(records))
	for _, record := range records {
		results = append(results, memoryFromModel(record))
	}
	return results, nil
}

// GetRecent returns a character's newest memories, oldest first.
func (r *MemoryRepo) GetRecent(ctx context.Context, characterName string, limit int) ([]types.Memory, error) {
	var records []memoryModel
	if err := r.db.WithContext(ctx).
		Where("character_name = ?", characterName).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent memories: %w", err)
	}

	results := make([]types.Memory, 0, len(records))
	for _, record := range records {
		results = append(results, memoryFromModel(record))
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func memoryFromModel(model memoryModel) types.Memory {
	return types.Memory{
		ID:            model.ID,
		CharacterName: model.CharacterName,
		Kind:          model.Kind,
		Content:       model.Content,
		IsUser:        model.IsUser,
		Date:          model.Date,
		Salience:      model.Salience,
		CreatedAt:     model.CreatedAt,
	}
}
