package chatModel

import "github.com/akolanti/ProductChat/internal/domain/commonModels"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is transient - the widget resends the whole conversation on
// every request, nothing is kept server side.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream frame types emitted over the SSE transport.
const (
	FrameStatus  = "status"
	FrameSearch  = "search"
	FrameContent = "content"
	FrameSources = "sources"
	FrameDone    = "done"
)

// StreamFrame is one `data:` payload on the chat stream. Only the fields
// relevant to Type are set.
type StreamFrame struct {
	Type        string   `json:"type"`
	Message     string   `json:"message,omitempty"`
	SearchTerms []string `json:"searchTerms,omitempty"`
	Content     string   `json:"content,omitempty"`
}

// SourcesFrame always carries the sources key, even when the list is empty -
// the widget treats a missing list and an empty list differently.
type SourcesFrame struct {
	Type    string                `json:"type"`
	Sources []commonModels.Source `json:"sources"`
}
