package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"docbot/internal/contextutil"
	"docbot/internal/rag"
	"docbot/internal/service"
)

// AskHandler handles HTTP requests for questions about a document.
type AskHandler struct {
	askService service.AskService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(askService service.AskService) *AskHandler {
	return &AskHandler{
		askService: askService,
	}
}

// TurnPayload is one earlier question and its answer.
//
// swagger:model TurnPayload
type TurnPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AskRequest represents the HTTP request payload for questions.
//
// swagger:model AskRequest
type AskRequest struct {
	// Target document. Ignored on the chatbot route, where the chatbot's
	// document is used.
	DocumentID string `json:"document_id,omitempty"`

	// The question to answer
	Question string `json:"question"`

	// Earlier turns of the conversation, oldest first
	History []TurnPayload `json:"history,omitempty"`
}

// AskResponse represents the HTTP response payload for questions.
//
// swagger:model AskResponse
type AskResponse struct {
	// The answer, or a fixed sentence when nothing relevant was found
	Answer string `json:"answer"`
}

// ServeHTTP answers a question about the document named in the body.
//
// swagger:route POST /api/ask askQuestion
//
// # Ask a question about a document
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Invalid request
//	'404':
//	  description: Unknown document
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "")
}

// AskChatbot answers a question through a chatbot's bound document.
//
// swagger:route POST /api/chatbots/{id}/ask askChatbot
//
// # Ask a chatbot
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'404':
//	  description: Unknown chatbot or document
func (h *AskHandler) AskChatbot(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "id"))
}

func (h *AskHandler) serve(w http.ResponseWriter, r *http.Request, chatbotID string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
		return
	}

	var req AskRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid ask request", "error", err)
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	svcReq := service.AskRequest{
		DocumentID: req.DocumentID,
		ChatbotID:  chatbotID,
		Question:   req.Question,
		History:    toTurns(req.History),
	}
	if chatbotID != "" {
		svcReq.DocumentID = ""
	}

	resp, err := h.askService.Ask(ctx, svcReq)
	if err != nil {
		handleServiceError(ctx, w, err, "Error al procesar la pregunta")
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{Answer: resp.Answer})
}

func toTurns(history []TurnPayload) []rag.Turn {
	if len(history) == 0 {
		return nil
	}
	turns := make([]rag.Turn, len(history))
	for i, t := range history {
		turns[i] = rag.Turn{Question: t.Question, Answer: t.Answer}
	}
	return turns
}
