package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"docbot/internal/contextutil"
	"docbot/internal/service"
	"docbot/internal/web"
)

// WidgetHandler serves the embeddable chatbot widget.
type WidgetHandler struct {
	chatbotService service.ChatbotService
	renderer       *web.Renderer
	publicBaseURL  string
}

// NewWidgetHandler creates a new WidgetHandler. When publicBaseURL is empty,
// widget URLs are built from the incoming request.
func NewWidgetHandler(chatbotService service.ChatbotService, renderer *web.Renderer, publicBaseURL string) *WidgetHandler {
	return &WidgetHandler{
		chatbotService: chatbotService,
		renderer:       renderer,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

// EmbedResponse represents the data needed to place a chatbot on a page.
//
// swagger:model EmbedResponse
type EmbedResponse struct {
	ChatbotID string `json:"chatbot_id"`
	ScriptURL string `json:"script_url"`

	// HTML snippet to paste into the host page
	EmbedCode string `json:"embed_code"`
}

// Script serves the widget JavaScript for a chatbot.
//
// swagger:route GET /api/chatbots/{id}/widget.js chatbotWidget
//
// # Widget script
//
// ---
// produces:
// - application/javascript
// responses:
//
//	'200':
//	  description: Self-contained widget script
//	'404':
//	  description: Unknown chatbot
func (h *WidgetHandler) Script(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	bot, err := h.chatbotService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Error al generar el widget")
		return
	}

	// Render into a buffer so a template error still produces a clean 500.
	var buf bytes.Buffer
	if err := h.renderer.WidgetScript(&buf, h.widgetData(r, bot)); err != nil {
		logger.ErrorContext(ctx, "failed to render widget", "chatbot_id", bot.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error al generar el widget")
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Embed returns the embed snippet for a chatbot.
//
// swagger:route GET /api/chatbots/{id}/embed chatbotEmbed
//
// # Embed code
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/EmbedResponse"
//	'404':
//	  description: Unknown chatbot
func (h *WidgetHandler) Embed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	bot, err := h.chatbotService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Error al generar el código")
		return
	}

	data := h.widgetData(r, bot)
	code, err := h.renderer.EmbedCode(data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render embed code", "chatbot_id", bot.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Error al generar el código")
		return
	}

	writeJSON(w, http.StatusOK, EmbedResponse{
		ChatbotID: bot.ID,
		ScriptURL: data.ScriptURL,
		EmbedCode: code,
	})
}

func (h *WidgetHandler) widgetData(r *http.Request, bot service.Chatbot) web.WidgetData {
	base := h.baseURL(r) + "/api/chatbots/" + url.PathEscape(bot.ID)
	return web.WidgetData{
		ChatbotID:      bot.ID,
		Name:           bot.Name,
		Color:          bot.Color,
		Icon:           bot.Icon,
		WelcomeMessage: bot.WelcomeMessage,
		Placeholder:    bot.Placeholder,
		AskURL:         base + "/ask",
		ScriptURL:      base + "/widget.js",
	}
}

// baseURL returns the configured public URL or one derived from r.
func (h *WidgetHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
