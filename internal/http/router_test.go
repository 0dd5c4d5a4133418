package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docbot/internal/handlers"
	"docbot/internal/service"
	"docbot/internal/service/mocks"
	"docbot/internal/web"
)

type testDeps struct {
	docs *mocks.MockDocumentService
	bots *mocks.MockChatbotService
	ask  *mocks.MockAskService
	deps *Deps
}

func newTestDeps(t *testing.T, ctrl *gomock.Controller) testDeps {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	td := testDeps{
		docs: mocks.NewMockDocumentService(ctrl),
		bots: mocks.NewMockChatbotService(ctrl),
		ask:  mocks.NewMockAskService(ctrl),
	}
	td.deps = &Deps{
		DocumentService: td.docs,
		ChatbotService:  td.bots,
		AskService:      td.ask,
		Renderer:        renderer,
		Index:           web.IndexData{Mode: "keyword", Formats: "TXT", Accept: ".txt", MaxUploadMB: 1},
		Storage:         handlers.PingerFunc(func(context.Context) error { return nil }),
		AnswerMode:      "keyword",
		MaxUploadBytes:  1 << 20,
	}
	return td
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(newTestDeps(t, ctrl).deps)

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDeps(t, ctrl)
	td.docs.EXPECT().List(gomock.Any()).Return(nil, nil)
	td.docs.EXPECT().Get(gomock.Any(), "doc-1").Return(service.Document{ID: "doc-1"}, nil)
	td.bots.EXPECT().List(gomock.Any()).Return(nil, nil)
	td.bots.EXPECT().Get(gomock.Any(), "bot-1").Return(service.Chatbot{ID: "bot-1"}, nil).Times(3)
	td.bots.EXPECT().Delete(gomock.Any(), "bot-1").Return(nil)
	td.ask.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(service.AskResponse{Answer: "ok"}, nil).Times(3)

	router := NewRouter(td.deps)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "GET root serves HTML", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "GET health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "GET metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "list documents", method: http.MethodGet, path: "/api/documents", wantStatus: http.StatusOK},
		{name: "get document", method: http.MethodGet, path: "/api/documents/doc-1", wantStatus: http.StatusOK},
		{
			name:       "upload without file",
			method:     http.MethodPost,
			path:       "/api/documents",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "legacy upload path",
			method:     http.MethodPost,
			path:       "/upload-document/",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ask",
			method:     http.MethodPost,
			path:       "/api/ask",
			body:       `{"document_id":"doc-1","question":"hola"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "legacy ask path",
			method:     http.MethodPost,
			path:       "/ask-question/",
			body:       `{"document_id":"doc-1","question":"hola"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET ask not allowed",
			method:     http.MethodGet,
			path:       "/api/ask",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{name: "list chatbots", method: http.MethodGet, path: "/api/chatbots", wantStatus: http.StatusOK},
		{name: "get chatbot", method: http.MethodGet, path: "/api/chatbots/bot-1", wantStatus: http.StatusOK},
		{name: "delete chatbot", method: http.MethodDelete, path: "/api/chatbots/bot-1", wantStatus: http.StatusNoContent},
		{
			name:       "ask chatbot",
			method:     http.MethodPost,
			path:       "/api/chatbots/bot-1/ask",
			body:       `{"question":"hola"}`,
			wantStatus: http.StatusOK,
		},
		{name: "widget script", method: http.MethodGet, path: "/api/chatbots/bot-1/widget.js", wantStatus: http.StatusOK},
		{name: "embed code", method: http.MethodGet, path: "/api/chatbots/bot-1/embed", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v, body = %s", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_AskChatbotUsesPathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	td := newTestDeps(t, ctrl)
	td.ask.EXPECT().
		Ask(gomock.Any(), service.AskRequest{ChatbotID: "bot-7", Question: "hola"}).
		Return(service.AskResponse{Answer: "ok"}, nil)

	router := NewRouter(td.deps)
	req := httptest.NewRequest(http.MethodPost, "/api/chatbots/bot-7/ask", strings.NewReader(`{"question":"hola"}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Router POST /api/chatbots/bot-7/ask status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(newTestDeps(t, ctrl).deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/chatbots/bot-1/ask", nil)
	req.Header.Set("Origin", "https://cliente.example.com")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %v, want %v", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://cliente.example.com" {
		t.Error("Router should apply CORS middleware")
	}
}
