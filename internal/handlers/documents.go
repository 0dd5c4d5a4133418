package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docbot/internal/contextutil"
	"docbot/internal/service"
)

// uploadField is the multipart form field holding the uploaded file.
const uploadField = "document"

// uploadMessage is returned after a successful upload.
const uploadMessage = "Documento subido correctamente"

// multipartOverhead leaves room for multipart headers and boundaries on top of
// the file size limit.
const multipartOverhead = 1 << 20

// DocumentsHandler handles HTTP requests for documents.
type DocumentsHandler struct {
	documentService service.DocumentService
	maxUploadBytes  int64
}

// NewDocumentsHandler creates a new DocumentsHandler. maxUploadBytes bounds the
// uploaded file; zero or less disables the request body limit.
func NewDocumentsHandler(documentService service.DocumentService, maxUploadBytes int64) *DocumentsHandler {
	return &DocumentsHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// UploadResponse represents the response to a document upload.
//
// swagger:model UploadResponse
type UploadResponse struct {
	// Identifier used to ask questions about the document
	DocumentID string `json:"document_id"`

	// Sanitized original filename
	Filename string `json:"filename"`

	// Human readable confirmation
	Message string `json:"message"`
}

// DocumentResponse represents a stored document without its text.
//
// swagger:model DocumentResponse
type DocumentResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CharCount int       `json:"char_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload handles document uploads.
//
// swagger:route POST /api/documents uploadDocument
//
// # Upload a document
//
// Stores the file from the multipart field "document", extracts its text and
// returns the new document ID.
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/UploadResponse"
//	'400':
//	  description: Missing file or unsupported format
//	'413':
//	  description: File exceeds the upload limit
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handleServiceError(ctx, w, err, "")
			return
		}
		logger.WarnContext(ctx, "missing upload", "error", err)
		writeError(w, http.StatusBadRequest, "Falta el archivo en el campo \"document\"")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := h.documentService.Upload(ctx, service.UploadRequest{
		Filename: header.Filename,
		Content:  file,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Error al subir el documento")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		Message:    uploadMessage,
	})
}

// List returns summaries of all documents.
//
// swagger:route GET /api/documents listDocuments
//
// # List documents
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/DocumentResponse"
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.documentService.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Error al listar los documentos")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single document summary.
//
// swagger:route GET /api/documents/{id} getDocument
//
// # Get a document
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/DocumentResponse"
//	'404':
//	  description: Unknown document
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.documentService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Error al obtener el documento")
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

func toDocumentResponse(d service.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		Filename:  d.Filename,
		CharCount: d.CharCount,
		CreatedAt: d.CreatedAt,
	}
}
