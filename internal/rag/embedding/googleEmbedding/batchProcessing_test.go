package googleEmbedding

import (
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/rag/embedding"
	"google.golang.org/genai"
)

func makeEmbedding(dim int) *genai.ContentEmbedding {
	return &genai.ContentEmbedding{Values: make([]float32, dim)}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name      string
		res       *genai.EmbedContentResponse
		wantCount int
		wantErr   bool
	}{
		{
			name: "Valid_Batch",
			res: &genai.EmbedContentResponse{
				Embeddings: []*genai.ContentEmbedding{makeEmbedding(768), makeEmbedding(768)},
			},
			wantCount: 2,
		},
		{
			name:      "Nil_Response",
			res:       nil,
			wantCount: 1,
			wantErr:   true,
		},
		{
			name: "Wrong_Vector_Count",
			res: &genai.EmbedContentResponse{
				Embeddings: []*genai.ContentEmbedding{makeEmbedding(768)},
			},
			wantCount: 2,
			wantErr:   true,
		},
		{
			name: "Wrong_Dimension",
			res: &genai.EmbedContentResponse{
				Embeddings: []*genai.ContentEmbedding{makeEmbedding(512)},
			},
			wantCount: 1,
			wantErr:   true,
		},
		{
			name: "Nil_Embedding_Entry",
			res: &genai.EmbedContentResponse{
				Embeddings: []*genai.ContentEmbedding{nil},
			},
			wantCount: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vectors, err := validateResponse(tt.res, tt.wantCount, 768)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, embedding.ErrEmbeddingService) {
					t.Errorf("error not tagged as embedding service failure: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(vectors) != tt.wantCount {
				t.Errorf("vector count got %d, want %d", len(vectors), tt.wantCount)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", config.EmbeddingMaxInputChars+500)

	if got := truncate(long); len(got) != config.EmbeddingMaxInputChars {
		t.Errorf("long input truncated to %d, want %d", len(got), config.EmbeddingMaxInputChars)
	}
	if got := truncate("short"); got != "short" {
		t.Errorf("short input must pass through unchanged, got %q", got)
	}
}

func TestBuildContents_PreservesOrder(t *testing.T) {
	texts := []string{"first", "second", "third"}
	contents := buildContents(texts)

	if len(contents) != len(texts) {
		t.Fatalf("content count got %d, want %d", len(contents), len(texts))
	}
	for i, c := range contents {
		if c.Parts[0].Text != texts[i] {
			t.Errorf("content %d got %q, want %q", i, c.Parts[0].Text, texts[i])
		}
	}
}
