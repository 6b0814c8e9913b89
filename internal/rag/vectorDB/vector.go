package vectorDB

import (
	"context"

	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

// CachedAnswer is a previously generated answer re-served for a semantically
// close query against the same product.
type CachedAnswer struct {
	Answer  string
	Sources []commonModels.Source
}

type DataProcessor interface {
	//Search returns up to k chunks for the project, closest first by cosine
	//distance. Zero matches is a normal outcome, not an error.
	Search(ctx context.Context, projectId string, queryVector []float32, k int) ([]commonModels.SearchResult, error)

	//UpsertChunks writes a document's freshly embedded chunk set.
	UpsertChunks(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error

	//DeleteByDocument drops every chunk belonging to the document - the first
	//half of a re-index, and the cleanup on document deletion.
	DeleteByDocument(ctx context.Context, documentId string) error

	GetCachedAnswer(ctx context.Context, productId string, queryVector []float32) (CachedAnswer, bool, error)
	SaveToCache(ctx context.Context, productId string, id string, vector []float32, answer CachedAnswer) error
}
