package commonModels

import (
	"context"
	"time"
)

type Project struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Document struct {
	Id        string    `json:"id"`
	ProjectId string    `json:"project_id"`
	Name      string    `json:"name"`
	FileName  string    `json:"file_name"`
	Content   string    `json:"content,omitempty"` //authoritative raw text, chunks are derived
	CreatedAt time.Time `json:"created_at"`
}

// DocChunk is the unit of retrieval: one text window with its embedding,
// stored in the vector DB keyed by document and project.
type DocChunk struct {
	ChunkId      string
	DocumentId   string
	DocumentName string
	ProjectId    string
	Content      string
}

// SearchResult is what a similarity query returns per chunk.
type SearchResult struct {
	Content      string
	DocumentName string
}

// Source points the end user at a document an answer drew from.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ChatEvent struct {
	ProductId   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Type        string `json:"type"`
	Payload     any    `json:"payload,omitempty"`
	Time        string `json:"time"`
}

const (
	EventMessageSent     = "message_sent"
	EventMessageReceived = "message_received"
	EventSearch          = "search"
	EventError           = "error"
	EventOpen            = "open"
	EventClose           = "close"
)

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]Project, error)
	SaveProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, id string) (Project, bool)
	GetProjectBySlug(ctx context.Context, slug string) (Project, bool)
	DeleteProject(ctx context.Context, id string) bool
}

type DocumentStore interface {
	ListDocuments(ctx context.Context, projectId string) ([]Document, error)
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool)
	DeleteDocument(ctx context.Context, id string) bool
}

type EventStore interface {
	PushEvent(ctx context.Context, event ChatEvent)
	ListEvents(ctx context.Context, productId string, limit int) []ChatEvent
}
