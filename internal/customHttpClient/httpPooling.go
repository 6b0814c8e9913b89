package customHttpClient

import (
	"net/http"

	"github.com/akolanti/ProductChat/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var pooledClient = &http.Client{Transport: customTransport}

// Pooled returns the shared keep-alive client handed to the Gemini SDK so the
// embedder and the LLM reuse connections instead of dialing per request.
func Pooled() *http.Client {
	return pooledClient
}
