package googleEmbedding

import (
	"fmt"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/rag/embedding"
	"github.com/akolanti/ProductChat/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func buildContents(texts []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(texts))

	for _, text := range texts {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: truncate(text)}},
		})
	}
	return contentsToSend
}

// Inputs past the model's limit are cut, not rejected - the head of a chunk
// carries enough signal for similarity search.
func truncate(text string) string {
	if len(text) > config.EmbeddingMaxInputChars {
		return text[:config.EmbeddingMaxInputChars]
	}
	return text
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit! ", "error", err)
			return true
		}
	}
	return false
}

// validateResponse fails closed: a response with the wrong vector count or a
// vector of the wrong dimension is an upstream bug we refuse to paper over.
func validateResponse(res *genai.EmbedContentResponse, wantCount int, wantDim int) ([][]float32, error) {
	if res == nil || len(res.Embeddings) != wantCount {
		got := 0
		if res != nil {
			got = len(res.Embeddings)
		}
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", embedding.ErrEmbeddingService, wantCount, got)
	}

	vectors := make([][]float32, 0, wantCount)
	for i, e := range res.Embeddings {
		if e == nil || len(e.Values) != wantDim {
			got := 0
			if e != nil {
				got = len(e.Values)
			}
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d", embedding.ErrEmbeddingService, i, got, wantDim)
		}
		vectors = append(vectors, e.Values)
	}
	return vectors, nil
}
