package types

import "time"

const (
	// MemoryKindChat is a chat exchange with the user.
	MemoryKindChat = "chat"
	// MemoryKindEvent is a notable world or personal event.
	MemoryKindEvent = "event"
	// MemoryKindMovement records a change of location.
	MemoryKindMovement = "movement"
	// MemoryKindBirthday records a birthday celebration.
	MemoryKindBirthday = "birthday"
	// MemoryKindTask records an accepted or completed task.
	MemoryKindTask = "task"
	// MemoryKindSummary is a synthesized end-of-day summary.
	MemoryKindSummary = "summary"
)

// Memory is a stored memory record, designed for retrieval by similarity.
type Memory struct {
	ID            string    `json:"id"`
	CharacterName string    `json:"character_name"`
	Kind          string    `json:"kind"`
	Content       string    `json:"content"`
	// IsUser marks memories that describe something the user did or said.
	IsUser bool `json:"is_user_memory"`
	// Date is the simulated date the memory was formed on.
	Date time.Time `json:"date"`
	// Salience is a 0-1 score indicating memory importance.
	Salience  float64   `json:"salience_score"`
	Embedding []float32 `json:"-"` // embedding vector, not serialized
	CreatedAt time.Time `json:"created_at"`
}

// RetrievedMemory is a memory snippet returned by similarity search.
type RetrievedMemory struct {
	Content    string    `json:"content"`
	Kind       string    `json:"kind"`
	IsUser     bool      `json:"is_user_memory"`
	Date       time.Time `json:"date"`
	Similarity float64   `json:"similarity"`
}

// ChatMessage is one role-tagged message for the completion service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
