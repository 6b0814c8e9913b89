package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//chunking - windows end on a word boundary, overlap keeps continuity
	ChunkSize    = 500
	ChunkOverlap = 50

	//embeddings
	EmbeddingOutputDimensionality int32 = 768
	EmbeddingMaxInputChars              = 2048
	GoogleEmbeddingModel                = "gemini-embedding-001"

	//llm
	GeminiModelName = "gemini-2.5-flash"

	//retrieval
	SearchChunkLimit      = 5
	CacheSimilarityCutoff = 0.97

	//project description generation
	SummaryInputCharLimit = 30000

	//vectorDB
	ChunkCollectionName    = "product-doc-chunks"
	CacheCollectionName    = "semantic-cache"
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//event log - ring buffer, oldest pruned past the cap
	MaxStoredEvents = 500
	EventListLimit  = 100

	//per-request budget for the whole retrieval attempt
	RetrievalTimeout = 30 * time.Second

	//serverTimeouts - chat streams run well past a normal write timeout
	ReadTimeout            = 5 * time.Second
	StreamWriteTimeout     = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisProjectStore = 0
	RedisEventStore   = 1
	RedisJobStore     = 2

	RedisJobStoreTTL = 24 * time.Hour

	NoAuthBypass = false
	AuthToken    = "local-dev-token"
)

// GoogleAPIKey comes from the environment - no sane const default for a credential.
func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

// AllowedOrigins returns the CORS allow-list. Empty means same-origin only.
func AllowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
