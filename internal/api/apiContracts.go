package api

import (
	"time"

	"github.com/akolanti/ProductChat/internal/domain/chatModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status     string `json:"status"`
	DocumentId string `json:"document_id,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type ChatRequest struct {
	ProductId string                  `json:"product_id,omitempty"`
	Messages  []chatModel.ChatMessage `json:"messages"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	Description string `json:"description"`
}

type UpdateDocumentContentRequest struct {
	Content string `json:"content"`
}

type PushEventRequest struct {
	ProductId   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Type        string `json:"type" validate:"required"`
	Payload     any    `json:"payload,omitempty"`
}

// responses--------------------

type ProjectResponse struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id        string    `json:"id"`
	ProjectId string    `json:"project_id"`
	Name      string    `json:"name"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentContentResponse struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

type GeneratedDescriptionResponse struct {
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
