package qdrantDB

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/qdrant/go-client/qdrant"
)

var semanticCacheDBName = config.CacheCollectionName

func initCacheCollection(ctx context.Context, client *qdrant.Client) {
	err := createCollection(ctx, client, semanticCacheDBName)
	if err != nil {
		logger.Error("Semantic cache collection creation failed", "error", err)
	}
}

// GetCachedAnswer re-serves a finished answer when a new query lands close
// enough (>= CacheSimilarityCutoff) to an earlier one for the same product.
func (db *ClientHolder) GetCachedAnswer(ctx context.Context, productId string, queryVector []float32) (vectorDB.CachedAnswer, bool, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: semanticCacheDBName,
		Query:          qdrant.NewQuery(queryVector...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("product_id", productId)},
		},
		Limit:       qdrant.PtrOf(uint64(1)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil || len(searchResult) == 0 {
		return vectorDB.CachedAnswer{}, false, err
	}

	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return vectorDB.CachedAnswer{}, false, nil
	}

	loggr.Info("Semantic cache hit", "product", productId, "score", searchResult[0].Score)
	answer := vectorDB.CachedAnswer{Answer: searchResult[0].Payload["answer"].GetStringValue()}
	if raw := searchResult[0].Payload["sources"].GetStringValue(); raw != "" {
		//sources ride along as a JSON blob; a decode failure just means the
		//cached answer comes back without them
		if err := json.Unmarshal([]byte(raw), &answer.Sources); err != nil {
			loggr.Error("Could not decode cached sources", "error", err)
		}
	}
	return answer, true, nil
}

func (db *ClientHolder) SaveToCache(ctx context.Context, productId string, id string, vector []float32, answer vectorDB.CachedAnswer) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	sourcesJSON, err := json.Marshal(answer.Sources)
	if err != nil {
		sourcesJSON = []byte("[]")
	}

	loggr.Debug("Saving answer to cache", "product", productId)
	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: semanticCacheDBName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":     answer.Answer,
					"sources":    string(sourcesJSON),
					"product_id": productId,
					"timestamp":  time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
