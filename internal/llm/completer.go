// Package llm provides the chat-completion client used for dialogue,
// summaries, and task judgments.
package llm

import (
	"context"

	"github.com/easeaico/worldsim/internal/types"
)

// Completer turns a role-tagged message list into free-text completion.
// A single configured implementation is shared by all simulation components.
type Completer interface {
	Complete(ctx context.Context, messages []types.ChatMessage) (string, error)
}
