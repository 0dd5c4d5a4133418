package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docbot/internal/web"
)

func TestHomeHandler_ServeHTTP(t *testing.T) {
	handler := NewHomeHandler(newTestRenderer(t), web.IndexData{Mode: "llm", Formats: "PDF, TXT", Accept: ".pdf,.txt", MaxUploadMB: 20})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), `data-mode="llm"`) {
		t.Error("home page does not show the answer mode")
	}
}
