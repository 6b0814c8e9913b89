package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/ProductChat/internal/adapter"
	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
)

var supportedUploadExtensions = map[string]bool{
	".pdf": true, ".txt": true, ".md": true, ".docx": true, ".rtf": true, ".odt": true,
}

// ListDocumentsHandler godoc
// @Summary      List a project's documents
// @Tags         Documents
// @Produce      json
// @Param        id   path     string  true  "Project ID"
// @Success      200  {array}  api.DocumentResponse
// @Failure      404  {object} api.ErrorResponse
// @Router       /projects/{id}/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	projectId := utils.GetChiURLParam(r, "id")
	if _, found := handlerInstance.projects.GetProject(r.Context(), projectId); !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	docs, err := handlerInstance.documents.ListDocuments(r.Context(), projectId)
	if err != nil {
		logRH.Error("Error listing documents", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponses(docs))
}

// UploadDocumentHandler godoc
// @Summary      Upload a document for indexing
// @Description  Receives a file via multipart/form-data, parks it on disk and queues an ingestion job. Poll the returned status URL for progress.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        id             path      string  true  "Project ID"
// @Param        document_name  formData  string  true  "Display name of the document"
// @Param        document       formData  file    true  "The file to index"
// @Success      202  {object}  api.InitJobResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /projects/{id}/documents [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	projectId := utils.GetChiURLParam(r, "id")
	if _, found := handlerInstance.projects.GetProject(r.Context(), projectId); !found {
		WriteErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	docName := r.FormValue("document_name")
	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	if docName == "" {
		docName = fileMetadata.Filename
	}
	if !supportedUploadExtensions[strings.ToLower(filepath.Ext(fileMetadata.Filename))] {
		WriteErrorResponse(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}

	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	newJob := enqueueJob(newJobData{
		jobType:   jobModel.JobTypeIngest,
		traceId:   traceId,
		projectId: projectId,
		fileName:  docName,
		filePath:  tempFilePath,
	})
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.Id))
}

// GetDocumentContentHandler godoc
// @Summary      Get a document's raw text
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentContentResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /documents/{id}/content [get]
func GetDocumentContentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	doc, found := handlerInstance.documents.GetDocument(r.Context(), utils.GetChiURLParam(r, "id"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DocumentContentResponse{
		Name:     doc.Name,
		FileName: doc.FileName,
		Content:  doc.Content,
	})
}

// UpdateDocumentContentHandler godoc
// @Summary      Replace a document's text and re-index it
// @Description  Saves the new content and queues a re-index job that swaps the document's chunk set.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Document ID"
// @Param        request  body      api.UpdateDocumentContentRequest  true  "New content"
// @Success      202      {object}  api.InitJobResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /documents/{id}/content [put]
func UpdateDocumentContentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	doc, found := handlerInstance.documents.GetDocument(r.Context(), utils.GetChiURLParam(r, "id"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	var requestData api.UpdateDocumentContentRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if strings.TrimSpace(requestData.Content) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	doc.Content = requestData.Content
	if err := handlerInstance.documents.SaveDocument(r.Context(), doc); err != nil {
		logRH.Error("Error saving document content", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	newJob := enqueueJob(newJobData{
		jobType:    jobModel.JobTypeReindex,
		traceId:    traceId,
		projectId:  doc.ProjectId,
		documentId: doc.Id,
	})
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.Id))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes the stored document and drops its chunks from the vector index.
// @Tags         Documents
// @Param        id   path  string  true  "Document ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	id := utils.GetChiURLParam(r, "id")
	if _, found := handlerInstance.documents.GetDocument(r.Context(), id); !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	if err := handlerInstance.rag.RemoveDocumentIndex(r.Context(), id); err != nil {
		logRH.Error("Error dropping vector index for document", "documentId", id, "error", err)
	}
	handlerInstance.documents.DeleteDocument(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
