package llm

import (
	"context"
	"iter"

	"github.com/akolanti/ProductChat/internal/domain/chatModel"
)

// Provider abstracts the chat/completion model. Generate is single-shot,
// GenerateStream yields text fragments in arrival order.
type Provider interface {
	Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error)
	GenerateStream(ctx context.Context, systemInstruction string, messages []chatModel.ChatMessage) iter.Seq2[string, error]
}
