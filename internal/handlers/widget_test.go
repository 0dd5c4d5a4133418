package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docbot/internal/service"
	"docbot/internal/service/mocks"
	"docbot/internal/web"
)

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return renderer
}

func TestWidgetHandler_Script(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bot := sampleChatbot()
	bot.Name = `</script><script>alert(1)</script>`

	mockBots := mocks.NewMockChatbotService(ctrl)
	mockBots.EXPECT().Get(gomock.Any(), "bot-1").Return(bot, nil)

	handler := NewWidgetHandler(mockBots, newTestRenderer(t), "https://docs.example.com/")
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/chatbots/bot-1/widget.js", nil), "id", "bot-1")
	w := httptest.NewRecorder()

	handler.Script(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Script() status = %v, want %v", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("Script() Content-Type = %q, want application/javascript", ct)
	}

	body := w.Body.String()
	if strings.Contains(body, "</script>") {
		t.Error("Script() emitted a raw closing script tag from the chatbot name")
	}
	if !strings.Contains(body, `"https://docs.example.com/api/chatbots/bot-1/ask"`) {
		t.Errorf("Script() missing ask URL, body = %s", body)
	}
}

func TestWidgetHandler_Script_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBots := mocks.NewMockChatbotService(ctrl)
	mockBots.EXPECT().Get(gomock.Any(), "missing").Return(service.Chatbot{}, service.ErrNotFound)

	handler := NewWidgetHandler(mockBots, newTestRenderer(t), "")
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/chatbots/missing/widget.js", nil), "id", "missing")
	w := httptest.NewRecorder()

	handler.Script(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Script() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestWidgetHandler_Embed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		publicBaseURL string
		host          string
		forwarded     string
		wantScriptURL string
	}{
		{
			name:          "configured base URL",
			publicBaseURL: "https://docs.example.com",
			host:          "internal:8000",
			wantScriptURL: "https://docs.example.com/api/chatbots/bot-1/widget.js",
		},
		{
			name:          "request host",
			host:          "localhost:8000",
			wantScriptURL: "http://localhost:8000/api/chatbots/bot-1/widget.js",
		},
		{
			name:          "forwarded proto",
			host:          "docs.example.com",
			forwarded:     "https",
			wantScriptURL: "https://docs.example.com/api/chatbots/bot-1/widget.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBots := mocks.NewMockChatbotService(ctrl)
			mockBots.EXPECT().Get(gomock.Any(), "bot-1").Return(sampleChatbot(), nil)

			handler := NewWidgetHandler(mockBots, newTestRenderer(t), tt.publicBaseURL)
			req := httptest.NewRequest(http.MethodGet, "/api/chatbots/bot-1/embed", nil)
			req.Host = tt.host
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			w := httptest.NewRecorder()

			handler.Embed(w, withURLParam(req, "id", "bot-1"))

			if w.Code != http.StatusOK {
				t.Fatalf("Embed() status = %v, want %v", w.Code, http.StatusOK)
			}
			var resp EmbedResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.ChatbotID != "bot-1" {
				t.Errorf("Embed() chatbot_id = %q, want bot-1", resp.ChatbotID)
			}
			if resp.ScriptURL != tt.wantScriptURL {
				t.Errorf("Embed() script_url = %q, want %q", resp.ScriptURL, tt.wantScriptURL)
			}
			if !strings.Contains(resp.EmbedCode, tt.wantScriptURL) || !strings.HasPrefix(resp.EmbedCode, "<script") {
				t.Errorf("Embed() embed_code = %q", resp.EmbedCode)
			}
		})
	}
}
