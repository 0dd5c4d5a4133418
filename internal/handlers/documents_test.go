package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"docbot/internal/service"
	"docbot/internal/service/mocks"
)

// multipartRequest builds an upload request with one file part.
func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDocumentsHandler_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocs := mocks.NewMockDocumentService(ctrl)
	mockDocs.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.UploadRequest) (service.Document, error) {
			if req.Filename != "notas.txt" {
				t.Errorf("Upload() filename = %q, want notas.txt", req.Filename)
			}
			content, err := io.ReadAll(req.Content)
			if err != nil {
				t.Fatalf("read upload content: %v", err)
			}
			if string(content) != "El perro duerme." {
				t.Errorf("Upload() content = %q", content)
			}
			return service.Document{ID: "doc-1", Filename: "notas.txt", CharCount: 16}, nil
		})

	handler := NewDocumentsHandler(mockDocs, 1<<20)
	w := httptest.NewRecorder()
	handler.Upload(w, multipartRequest(t, "document", "notas.txt", "El perro duerme."))

	if w.Code != http.StatusOK {
		t.Fatalf("Upload() status = %v, want %v, body = %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp UploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := UploadResponse{DocumentID: "doc-1", Filename: "notas.txt", Message: "Documento subido correctamente"}
	if resp != want {
		t.Errorf("Upload() response = %+v, want %+v", resp, want)
	}
}

func TestDocumentsHandler_Upload_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		mockSetup  func(*mocks.MockDocumentService)
		wantStatus int
	}{
		{
			name: "method not allowed",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/documents", nil)
			},
			mockSetup:  func(m *mocks.MockDocumentService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{"a":1}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			mockSetup:  func(m *mocks.MockDocumentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "wrong field name",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "notas.txt", "hola")
			},
			mockSetup:  func(m *mocks.MockDocumentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported format",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "document", "virus.exe", "MZ")
			},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Upload(gomock.Any(), gomock.Any()).
					Return(service.Document{}, fmt.Errorf("%w: .exe", service.ErrUnsupportedFormat))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "too large",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "document", "grande.txt", "contenido")
			},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Upload(gomock.Any(), gomock.Any()).
					Return(service.Document{}, service.ErrTooLarge)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name: "invalid filename",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "document", "..", "contenido")
			},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Upload(gomock.Any(), gomock.Any()).
					Return(service.Document{}, &service.ValidationError{Field: "filename", Message: "nombre inválido"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "document", "notas.txt", "contenido")
			},
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().
					Upload(gomock.Any(), gomock.Any()).
					Return(service.Document{}, fmt.Errorf("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDocs := mocks.NewMockDocumentService(ctrl)
			tt.mockSetup(mockDocs)

			handler := NewDocumentsHandler(mockDocs, 1<<20)
			w := httptest.NewRecorder()
			handler.Upload(w, tt.request(t))

			if w.Code != tt.wantStatus {
				t.Errorf("Upload() status = %v, want %v, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if msg := decodeError(t, w); msg == "" {
				t.Error("Upload() error message is empty")
			}
		})
	}
}

func TestDocumentsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mockDocs := mocks.NewMockDocumentService(ctrl)
	mockDocs.EXPECT().List(gomock.Any()).Return([]service.Document{
		{ID: "a", Filename: "a.txt", CharCount: 3, CreatedAt: created},
		{ID: "b", Filename: "b.pdf", CharCount: 10, CreatedAt: created},
	}, nil)

	handler := NewDocumentsHandler(mockDocs, 0)
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp []DocumentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "a" || resp[1].CharCount != 10 || !resp[0].CreatedAt.Equal(created) {
		t.Errorf("List() response = %+v", resp)
	}
}

func TestDocumentsHandler_List_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDocs := mocks.NewMockDocumentService(ctrl)
	mockDocs.EXPECT().List(gomock.Any()).Return(nil, nil)

	handler := NewDocumentsHandler(mockDocs, 0)
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("List() body = %s, want []", got)
	}
}

func TestDocumentsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		id         string
		mockSetup  func(*mocks.MockDocumentService)
		wantStatus int
	}{
		{
			name: "found",
			id:   "doc-1",
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Get(gomock.Any(), "doc-1").Return(service.Document{ID: "doc-1", Filename: "a.txt"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "missing",
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Get(gomock.Any(), "missing").Return(service.Document{}, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDocs := mocks.NewMockDocumentService(ctrl)
			tt.mockSetup(mockDocs)

			handler := NewDocumentsHandler(mockDocs, 0)
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/documents/"+tt.id, nil), "id", tt.id)
			w := httptest.NewRecorder()
			handler.Get(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
