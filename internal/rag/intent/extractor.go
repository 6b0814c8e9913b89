package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/ProductChat/internal/rag/llm"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

// ExtractionSystem instructs the model to answer with a bare JSON array -
// anything else is treated as "no retrieval" by ParseSearchTerms.
const ExtractionSystem = `You help identify whether a user message is asking about a specific product so we can look up documentation.
You are given the current product's name and optional description.
Your job: output a JSON array of 1 or more search terms (strings) that would find relevant documentation, OR an empty array [] if the message is chit-chat, greeting, unrelated, or not about this product.
Reply with ONLY the JSON array, no other text. Example: ["unit conversion", "length"] or []`

type Extractor struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   logger_i.NewLogger("IntentExtractor"),
	}
}

// Extract asks the model whether the message warrants a documentation lookup.
// Every failure mode - upstream error, junk output - degrades to an empty
// term list so the caller can fall through to an ungrounded answer.
func (e *Extractor) Extract(ctx context.Context, productName string, productDescription string, userMessage string) []string {
	prompt := buildExtractionPrompt(productName, productDescription, userMessage)

	raw, err := e.provider.Generate(ctx, ExtractionSystem, prompt)
	if err != nil {
		e.logger.Warn("extraction call failed, skipping retrieval", "error", err)
		return nil
	}

	terms := ParseSearchTerms(raw)
	e.logger.Debug("extracted search terms", "product", productName, "terms", terms)
	return terms
}

func buildExtractionPrompt(productName string, productDescription string, userMessage string) string {
	lines := []string{fmt.Sprintf("Product name: %s", productName)}
	if productDescription != "" {
		lines = append(lines, fmt.Sprintf("Product description: %s", productDescription))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("User message: %s", userMessage),
		"",
		"Output a JSON array of search terms (or [] if not about this product):",
	)
	return strings.Join(lines, "\n")
}

// ParseSearchTerms validates untrusted model output against the expected
// shape. Non-arrays and unparseable text become an empty list; non-string
// elements inside an otherwise valid array are dropped, the strings kept.
func ParseSearchTerms(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var parsed []any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil
	}

	var terms []string
	for _, el := range parsed {
		if s, ok := el.(string); ok {
			terms = append(terms, s)
		}
	}
	return terms
}
