package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docbot/internal/contextutil"
	"docbot/internal/service"
)

// ChatbotsHandler handles HTTP requests for chatbot configurations.
type ChatbotsHandler struct {
	chatbotService service.ChatbotService
}

// NewChatbotsHandler creates a new ChatbotsHandler.
func NewChatbotsHandler(chatbotService service.ChatbotService) *ChatbotsHandler {
	return &ChatbotsHandler{
		chatbotService: chatbotService,
	}
}

// ChatbotRequest represents the editable fields of a chatbot. Empty display
// fields receive defaults.
//
// swagger:model ChatbotRequest
type ChatbotRequest struct {
	Name           string `json:"name"`
	DocumentID     string `json:"document_id"`
	Color          string `json:"color,omitempty"`
	Icon           string `json:"icon,omitempty"`
	WelcomeMessage string `json:"welcome_message,omitempty"`
	Placeholder    string `json:"placeholder,omitempty"`
}

// ChatbotResponse represents a chatbot.
//
// swagger:model ChatbotResponse
type ChatbotResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`

	// Filename of the bound document, "Unknown" when it no longer exists
	DocumentFilename string `json:"document_filename"`

	Color          string    `json:"color"`
	Icon           string    `json:"icon"`
	WelcomeMessage string    `json:"welcome_message"`
	Placeholder    string    `json:"placeholder"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Create stores a new chatbot.
//
// swagger:route POST /api/chatbots createChatbot
//
// # Create a chatbot
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'201':
//	  schema:
//	    "$ref": "#/definitions/ChatbotResponse"
//	'400':
//	  description: Invalid fields
//	'404':
//	  description: Unknown document
func (h *ChatbotsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatbotRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid chatbot request", "error", err)
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	bot, err := h.chatbotService.Create(ctx, req.toInput())
	if err != nil {
		handleServiceError(ctx, w, err, "Error al crear el chatbot")
		return
	}

	logger.InfoContext(ctx, "chatbot created", "chatbot_id", bot.ID, "document_id", bot.DocumentID)
	writeJSON(w, http.StatusCreated, toChatbotResponse(bot))
}

// List returns all chatbots.
//
// swagger:route GET /api/chatbots listChatbots
//
// # List chatbots
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
//	      "$ref": "#/definitions/ChatbotResponse"
func (h *ChatbotsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bots, err := h.chatbotService.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Error al listar los chatbots")
		return
	}

	resp := make([]ChatbotResponse, 0, len(bots))
	for _, b := range bots {
		resp = append(resp, toChatbotResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single chatbot.
//
// swagger:route GET /api/chatbots/{id} getChatbot
//
// # Get a chatbot
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/ChatbotResponse"
//	'404':
//	  description: Unknown chatbot
func (h *ChatbotsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bot, err := h.chatbotService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Error al obtener el chatbot")
		return
	}
	writeJSON(w, http.StatusOK, toChatbotResponse(bot))
}

// Update replaces a chatbot's fields.
//
// swagger:route PUT /api/chatbots/{id} updateChatbot
//
// # Update a chatbot
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
//	    "$ref": "#/definitions/ChatbotResponse"
//	'400':
//	  description: Invalid fields
//	'404':
//	  description: Unknown chatbot or document
func (h *ChatbotsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatbotRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid chatbot request", "error", err)
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	bot, err := h.chatbotService.Update(ctx, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(ctx, w, err, "Error al actualizar el chatbot")
		return
	}
	writeJSON(w, http.StatusOK, toChatbotResponse(bot))
}

// Delete removes a chatbot.
//
// swagger:route DELETE /api/chatbots/{id} deleteChatbot
//
// # Delete a chatbot
//
// ---
// responses:
//
//	'204':
//	  description: Deleted
//	'404':
//	  description: Unknown chatbot
func (h *ChatbotsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	if err := h.chatbotService.Delete(ctx, id); err != nil {
		handleServiceError(ctx, w, err, "Error al eliminar el chatbot")
		return
	}

	logger.InfoContext(ctx, "chatbot deleted", "chatbot_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (req ChatbotRequest) toInput() service.ChatbotInput {
	return service.ChatbotInput{
		Name:           req.Name,
		DocumentID:     req.DocumentID,
		Color:          req.Color,
		Icon:           req.Icon,
		WelcomeMessage: req.WelcomeMessage,
		Placeholder:    req.Placeholder,
	}
}

func toChatbotResponse(b service.Chatbot) ChatbotResponse {
	return ChatbotResponse{
		ID:               b.ID,
		Name:             b.Name,
		DocumentID:       b.DocumentID,
		DocumentFilename: b.DocumentFilename,
		Color:            b.Color,
		Icon:             b.Icon,
		WelcomeMessage:   b.WelcomeMessage,
		Placeholder:      b.Placeholder,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
