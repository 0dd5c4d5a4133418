package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"docbot/internal/service"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// withURLParam attaches a chi route parameter to r, as the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	return resp.Error
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        &service.ValidationError{Field: "name", Message: "es obligatorio"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped invalid input",
			err:        fmt.Errorf("upload: %w", service.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported format",
			err:        fmt.Errorf("%w: .exe", service.ErrUnsupportedFormat),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			err:        service.WrapError(service.ErrNotFound, "get chatbot"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "too large",
			err:        service.ErrTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "request body limit",
			err:        fmt.Errorf("parse form: %w", &http.MaxBytesError{Limit: 10}),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "external service",
			err:        service.ErrExternalService,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(context.Background(), w, tt.err, "fallo")

			if w.Code != tt.wantStatus {
				t.Errorf("handleServiceError() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if msg := decodeError(t, w); msg == "" {
				t.Error("handleServiceError() wrote an empty message")
			}
		})
	}
}

func TestHandleServiceError_DefaultMessage(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(context.Background(), w, errors.New("boom"), "Error al subir el documento")

	if got := decodeError(t, w); got != "Error al subir el documento" {
		t.Errorf("handleServiceError() message = %q, want default message", got)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, http.StatusBadRequest, "test error")

	if w.Code != http.StatusBadRequest {
		t.Errorf("writeError() status = %v, want %v", w.Code, http.StatusBadRequest)
	}
	if got := decodeError(t, w); got != "test error" {
		t.Errorf("writeError() error = %v, want test error", got)
	}
}
