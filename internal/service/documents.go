package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks docbot/internal/service DocumentService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docbot/internal/contextutil"
	"docbot/internal/extract"
	"docbot/internal/metrics"
	"docbot/internal/storage"
	"docbot/internal/textproc"
	"docbot/internal/uploads"
)

// FileStore persists raw uploads.
type FileStore interface {
	// Save writes r under a name derived from id and filename and returns its path.
	Save(id, filename string, r io.Reader) (string, error)
	// Remove deletes a path previously returned by Save.
	Remove(path string) error
}

// UploadRequest represents a document upload in the domain layer.
type UploadRequest struct {
	Filename string
	Content  io.Reader
}

// Document is a stored document without its text.
type Document struct {
	ID        string
	Filename  string
	CharCount int
	CreatedAt time.Time
}

// DocumentService provides document ingestion and lookup.
type DocumentService interface {
	// Upload stores the file, extracts and normalizes its text and records it.
	Upload(ctx context.Context, req UploadRequest) (Document, error)
	// Get returns a document summary by ID.
	Get(ctx context.Context, id string) (Document, error)
	// List returns summaries of all documents.
	List(ctx context.Context) ([]Document, error)
}

// documentService implements DocumentService.
type documentService struct {
	docs    storage.DocumentStore
	files   FileStore
	extract func(path string) (string, error)
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docs storage.DocumentStore, files FileStore) DocumentService {
	return &documentService{
		docs:    docs,
		files:   files,
		extract: extract.Extract,
	}
}

// Upload ingests a document. The stored file is removed again when
// extraction or persistence fails.
func (s *documentService) Upload(ctx context.Context, req UploadRequest) (Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	filename, err := uploads.SanitizeFilename(req.Filename)
	if err != nil {
		logger.WarnContext(ctx, "upload without usable filename", "filename", req.Filename)
		return Document{}, &ValidationError{Field: "document", Message: "a file with a name is required"}
	}
	ext := extensionLabel(filename)
	if req.Content == nil {
		return Document{}, &ValidationError{Field: "document", Message: "file content is required"}
	}

	id := uuid.New().String()
	path, err := s.files.Save(id, filename, req.Content)
	if err != nil {
		metrics.DocumentsUploadedTotal.WithLabelValues(ext, "rejected").Inc()
		switch {
		case errors.Is(err, uploads.ErrTooLarge):
			return Document{}, fmt.Errorf("%w: %v", ErrTooLarge, err)
		case errors.Is(err, uploads.ErrInvalidFilename):
			return Document{}, &ValidationError{Field: "document", Message: err.Error()}
		}
		logger.ErrorContext(ctx, "failed to store upload", "filename", filename, "error", err)
		return Document{}, WrapError(err, "failed to store upload")
	}

	rawText, err := s.extract(path)
	if err != nil {
		s.rollback(ctx, path)
		metrics.DocumentsUploadedTotal.WithLabelValues(ext, "rejected").Inc()
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			logger.WarnContext(ctx, "unsupported upload format", "filename", filename, "extension", extract.Ext(filename))
			return Document{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		case errors.Is(err, extract.ErrUnreadable):
			logger.WarnContext(ctx, "unreadable upload", "filename", filename, "error", err)
			return Document{}, &ValidationError{Field: "document", Message: fmt.Sprintf("could not read %s", filename)}
		}
		logger.ErrorContext(ctx, "failed to extract text", "filename", filename, "error", err)
		return Document{}, WrapError(err, "failed to extract text")
	}

	record := &storage.DocumentRecord{
		ID:       id,
		Filename: filename,
		FilePath: path,
		Text:     textproc.NormalizeParagraphs(rawText),
	}
	if record.Text == "" {
		logger.WarnContext(ctx, "document contains no text", "document_id", id, "filename", filename)
	}

	if err := s.docs.Create(ctx, record); err != nil {
		s.rollback(ctx, path)
		metrics.DocumentsUploadedTotal.WithLabelValues(ext, "error").Inc()
		logger.ErrorContext(ctx, "failed to save document", "document_id", id, "error", err)
		return Document{}, WrapError(err, "failed to save document")
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(ext, "stored").Inc()
	logger.InfoContext(ctx, "document uploaded",
		"document_id", id,
		"filename", filename,
		"chars", utf8.RuneCountInString(record.Text),
	)

	return Document{
		ID:        record.ID,
		Filename:  record.Filename,
		CharCount: utf8.RuneCountInString(record.Text),
		CreatedAt: record.CreatedAt,
	}, nil
}

// Get returns a document summary by ID.
func (s *documentService) Get(ctx context.Context, id string) (Document, error) {
	record, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return Document{}, WrapError(err, "failed to get document")
	}

	return Document{
		ID:        record.ID,
		Filename:  record.Filename,
		CharCount: utf8.RuneCountInString(record.Text),
		CreatedAt: record.CreatedAt,
	}, nil
}

// List returns summaries of all documents.
func (s *documentService) List(ctx context.Context) ([]Document, error) {
	summaries, err := s.docs.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list documents")
	}

	docs := make([]Document, 0, len(summaries))
	for _, sum := range summaries {
		docs = append(docs, Document{
			ID:        sum.ID,
			Filename:  sum.Filename,
			CharCount: sum.CharCount,
			CreatedAt: sum.CreatedAt,
		})
	}
	return docs, nil
}

// extensionLabel bounds the metric label to the supported extensions.
func extensionLabel(filename string) string {
	ext := extract.Ext(filename)
	if !extract.Supported(ext) {
		return "other"
	}
	return ext
}

func (s *documentService) rollback(ctx context.Context, path string) {
	if err := s.files.Remove(path); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to remove rejected upload", "path", path, "error", err)
	}
}
