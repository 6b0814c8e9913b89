package gemini

import (
	"context"
	"iter"
	"sync"

	"github.com/akolanti/ProductChat/internal/customHttpClient"
	"github.com/akolanti/ProductChat/internal/domain/chatModel"
	"github.com/akolanti/ProductChat/internal/rag/llm"
	"github.com/akolanti/ProductChat/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apikey,
		HTTPClient: customHttpClient.Pooled(),
	})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}

func (c *llmClient) Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		generateConfig(systemInstruction),
	)
	if err != nil {
		logger.Error("Gemini generate failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// GenerateStream relays text fragments as the model produces them. The
// returned sequence terminates on the first upstream error, which is yielded
// to the consumer.
func (c *llmClient) GenerateStream(ctx context.Context, systemInstruction string, messages []chatModel.ChatMessage) iter.Seq2[string, error] {
	contents := toContents(messages)

	return func(yield func(string, error) bool) {
		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.modelName, contents, generateConfig(systemInstruction)) {
			if err != nil {
				yield("", err)
				return
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

func generateConfig(systemInstruction string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}
}

// The widget speaks user/assistant, Gemini expects user/model. Anything that
// is not a user turn maps to the model role.
func toContents(messages []chatModel.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.RoleModel
		if m.Role == string(chatModel.RoleUser) {
			role = genai.RoleUser
		}
		contents = append(contents, &genai.Content{
			Role:  string(role),
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}
