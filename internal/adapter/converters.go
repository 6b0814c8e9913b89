package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("jobs/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result: api.Result{
			Status:     string(job.Status),
			DocumentId: job.JobPayload.DocumentId,
			ChunkCount: job.JobPayload.ChunkCount,
		},
	}
}

func NewProject(id, name, slug, description string, createdAt time.Time) commonModels.Project {
	return commonModels.Project{
		Id:          id,
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatedAt:   createdAt,
	}
}

func ToProjectResponse(p commonModels.Project) api.ProjectResponse {
	return api.ProjectResponse{
		Id:          p.Id,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func ToProjectResponses(projects []commonModels.Project) []api.ProjectResponse {
	out := make([]api.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}

// ToDocumentResponse deliberately leaves the raw content out - listings stay
// small, the content endpoint serves the full text.
func ToDocumentResponse(d commonModels.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:        d.Id,
		ProjectId: d.ProjectId,
		Name:      d.Name,
		FileName:  d.FileName,
		CreatedAt: d.CreatedAt,
	}
}

func ToDocumentResponses(docs []commonModels.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}
