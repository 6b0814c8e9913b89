package embedding

import (
	"context"
	"errors"
)

// ErrEmbeddingService tags every failure of the upstream embedding model,
// including responses whose vector count or dimensionality is off. Callers
// check it with errors.Is and treat it as "retrieval unavailable".
var ErrEmbeddingService = errors.New("embedding service error")

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	//EmbedBatch issues a single upstream call for the whole batch and
	//preserves input order, one vector per text.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
