package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/ProductChat/internal/adapter"
	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/rag"
)

// ListProjectsHandler godoc
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Success      200  {array}  api.ProjectResponse
// @Router       /projects [get]
func ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	projects, err := handlerInstance.projects.ListProjects(r.Context())
	if err != nil {
		logRH.Error("Error listing projects", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToProjectResponses(projects))
}

// CreateProjectHandler godoc
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        request  body      api.CreateProjectRequest  true  "Project name and optional description"
// @Success      201      {object}  api.ProjectResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /projects [post]
func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var requestData api.CreateProjectRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	name := strings.TrimSpace(requestData.Name)
	if name == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	slug := slugify(name)
	if slug == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "name must contain letters or digits")
		return
	}
	if _, taken := handlerInstance.projects.GetProjectBySlug(r.Context(), slug); taken {
		WriteErrorResponse(w, http.StatusConflict, "A project with this name already exists")
		return
	}

	project := adapter.NewProject(utils.GetNewUUID(), name, slug, strings.TrimSpace(requestData.Description), time.Now().UTC())
	if err := handlerInstance.projects.SaveProject(r.Context(), project); err != nil {
		logRH.Error("Error saving project", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	writeJsonResponse(w, http.StatusCreated, adapter.ToProjectResponse(project))
}

// GetProjectHandler godoc
// @Summary      Get a project by id or slug
// @Tags         Projects
// @Produce      json
// @Param        id   path      string  true  "Project ID or slug"
// @Success      200  {object}  api.ProjectResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /projects/{id} [get]
func GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	project, found := resolveProject(r, utils.GetChiURLParam(r, "id"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToProjectResponse(project))
}

// UpdateProjectHandler godoc
// @Summary      Update a project's description
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Project ID"
// @Param        request  body      api.UpdateProjectRequest  true  "New description"
// @Success      200      {object}  api.ProjectResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /projects/{id} [patch]
func UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	project, found := handlerInstance.projects.GetProject(r.Context(), utils.GetChiURLParam(r, "id"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	var requestData api.UpdateProjectRequest
	if !decodeBody(w, r, &requestData) {
		return
	}

	project.Description = strings.TrimSpace(requestData.Description)
	if err := handlerInstance.projects.SaveProject(r.Context(), project); err != nil {
		logRH.Error("Error updating project", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToProjectResponse(project))
}

// DeleteProjectHandler godoc
// @Summary      Delete a project and everything under it
// @Description  Removes the project, its documents and their vector index entries.
// @Tags         Projects
// @Param        id   path  string  true  "Project ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /projects/{id} [delete]
func DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	id := utils.GetChiURLParam(r, "id")
	if _, found := handlerInstance.projects.GetProject(r.Context(), id); !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	docs, err := handlerInstance.documents.ListDocuments(r.Context(), id)
	if err != nil {
		logRH.Error("Error listing documents for cascade delete", "error", err)
	}
	for _, doc := range docs {
		if err := handlerInstance.rag.RemoveDocumentIndex(r.Context(), doc.Id); err != nil {
			logRH.Error("Error dropping vector index for document", "documentId", doc.Id, "error", err)
		}
		handlerInstance.documents.DeleteDocument(r.Context(), doc.Id)
	}

	handlerInstance.projects.DeleteProject(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// GenerateDescriptionHandler godoc
// @Summary      Generate a project description
// @Description  Summarizes the project's documentation into a one-sentence description and saves it.
// @Tags         Projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  api.GeneratedDescriptionResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /projects/{id}/generate-description [post]
func GenerateDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	project, found := handlerInstance.projects.GetProject(r.Context(), utils.GetChiURLParam(r, "id"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	summary, err := handlerInstance.rag.SummarizeProject(r.Context(), project.Id)
	if err != nil {
		if errors.Is(err, rag.ErrNoDocumentation) {
			WriteErrorResponse(w, http.StatusUnprocessableEntity, "Project has no documentation to summarize")
			return
		}
		logRH.Error("Error generating description", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Generation failed")
		return
	}

	project.Description = strings.TrimSpace(summary)
	if err := handlerInstance.projects.SaveProject(r.Context(), project); err != nil {
		logRH.Error("Error saving generated description", "error", err)
	}

	writeJsonResponse(w, http.StatusOK, api.GeneratedDescriptionResponse{Description: project.Description})
}
