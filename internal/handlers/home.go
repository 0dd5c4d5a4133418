package handlers

import (
	"bytes"
	"net/http"

	"docbot/internal/contextutil"
	"docbot/internal/web"
)

// HomeHandler serves the single-page UI.
type HomeHandler struct {
	renderer *web.Renderer
	data     web.IndexData
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer *web.Renderer, data web.IndexData) *HomeHandler {
	return &HomeHandler{
		renderer: renderer,
		data:     data,
	}
}

// ServeHTTP writes the home page.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var buf bytes.Buffer
	if err := h.renderer.Index(&buf, h.data); err != nil {
		logger.ErrorContext(ctx, "failed to render home page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
