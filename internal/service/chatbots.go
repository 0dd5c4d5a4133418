package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chatbot_service.go -package=mocks docbot/internal/service ChatbotService

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"docbot/internal/contextutil"
	"docbot/internal/storage"
)

// Display defaults applied when a chatbot field is left empty.
const (
	DefaultColor          = "#007bff"
	DefaultIcon           = "💬"
	DefaultWelcomeMessage = "¡Hola! ¿En qué puedo ayudarte?"
	DefaultPlaceholder    = "Escribe tu pregunta aquí..."
)

// UnknownFilename is shown for chatbots whose document no longer exists.
const UnknownFilename = "Unknown"

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ChatbotInput carries the client-editable fields of a chatbot.
type ChatbotInput struct {
	Name           string
	DocumentID     string
	Color          string
	Icon           string
	WelcomeMessage string
	Placeholder    string
}

// Chatbot is a chatbot as presented to clients.
type Chatbot struct {
	ID               string
	Name             string
	DocumentID       string
	DocumentFilename string
	Color            string
	Icon             string
	WelcomeMessage   string
	Placeholder      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ChatbotService manages chatbot configurations.
type ChatbotService interface {
	// Create validates input and stores a new chatbot bound to an existing document.
	Create(ctx context.Context, in ChatbotInput) (Chatbot, error)
	// Get returns a chatbot by ID.
	Get(ctx context.Context, id string) (Chatbot, error)
	// List returns all chatbots.
	List(ctx context.Context) ([]Chatbot, error)
	// Update replaces a chatbot's fields. The document must exist.
	Update(ctx context.Context, id string, in ChatbotInput) (Chatbot, error)
	// Delete removes a chatbot.
	Delete(ctx context.Context, id string) error
}

// chatbotService implements ChatbotService.
type chatbotService struct {
	bots storage.ChatbotStore
	docs storage.DocumentStore
}

// NewChatbotService creates a new ChatbotService.
func NewChatbotService(bots storage.ChatbotStore, docs storage.DocumentStore) ChatbotService {
	return &chatbotService{
		bots: bots,
		docs: docs,
	}
}

// Create stores a new chatbot.
func (s *chatbotService) Create(ctx context.Context, in ChatbotInput) (Chatbot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in, err := normalizeChatbotInput(in)
	if err != nil {
		logger.WarnContext(ctx, "invalid chatbot input", "error", err)
		return Chatbot{}, err
	}

	doc, err := s.requireDocument(ctx, in.DocumentID)
	if err != nil {
		return Chatbot{}, err
	}

	record := &storage.ChatbotRecord{
		ID:             uuid.New().String(),
		Name:           in.Name,
		DocumentID:     in.DocumentID,
		Color:          in.Color,
		Icon:           in.Icon,
		WelcomeMessage: in.WelcomeMessage,
		Placeholder:    in.Placeholder,
	}
	if err := s.bots.Create(ctx, record); err != nil {
		logger.ErrorContext(ctx, "failed to create chatbot", "error", err)
		return Chatbot{}, WrapError(err, "failed to create chatbot")
	}

	logger.InfoContext(ctx, "chatbot created", "chatbot_id", record.ID, "document_id", record.DocumentID)
	return toChatbot(record, doc.Filename), nil
}

// Get returns a chatbot by ID.
func (s *chatbotService) Get(ctx context.Context, id string) (Chatbot, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return Chatbot{}, err
	}

	filename, err := s.documentFilename(ctx, record.DocumentID)
	if err != nil {
		return Chatbot{}, err
	}
	return toChatbot(record, filename), nil
}

// List returns all chatbots with their document filenames.
func (s *chatbotService) List(ctx context.Context) ([]Chatbot, error) {
	records, err := s.bots.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list chatbots")
	}

	filenames := make(map[string]string)
	bots := make([]Chatbot, 0, len(records))
	for i := range records {
		docID := records[i].DocumentID
		filename, ok := filenames[docID]
		if !ok {
			filename, err = s.documentFilename(ctx, docID)
			if err != nil {
				return nil, err
			}
			filenames[docID] = filename
		}
		bots = append(bots, toChatbot(&records[i], filename))
	}

	return bots, nil
}

// Update replaces every editable field of a chatbot.
func (s *chatbotService) Update(ctx context.Context, id string, in ChatbotInput) (Chatbot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	existing, err := s.getRecord(ctx, id)
	if err != nil {
		return Chatbot{}, err
	}

	in, err = normalizeChatbotInput(in)
	if err != nil {
		logger.WarnContext(ctx, "invalid chatbot input", "chatbot_id", id, "error", err)
		return Chatbot{}, err
	}

	doc, err := s.requireDocument(ctx, in.DocumentID)
	if err != nil {
		return Chatbot{}, err
	}

	record := &storage.ChatbotRecord{
		ID:             existing.ID,
		Name:           in.Name,
		DocumentID:     in.DocumentID,
		Color:          in.Color,
		Icon:           in.Icon,
		WelcomeMessage: in.WelcomeMessage,
		Placeholder:    in.Placeholder,
		CreatedAt:      existing.CreatedAt,
	}
	if err := s.bots.Update(ctx, record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Chatbot{}, fmt.Errorf("chatbot %s: %w", id, ErrNotFound)
		}
		logger.ErrorContext(ctx, "failed to update chatbot", "chatbot_id", id, "error", err)
		return Chatbot{}, WrapError(err, "failed to update chatbot")
	}

	logger.InfoContext(ctx, "chatbot updated", "chatbot_id", id)
	return toChatbot(record, doc.Filename), nil
}

// Delete removes a chatbot by ID.
func (s *chatbotService) Delete(ctx context.Context, id string) error {
	if err := s.bots.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("chatbot %s: %w", id, ErrNotFound)
		}
		return WrapError(err, "failed to delete chatbot")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "chatbot deleted", "chatbot_id", id)
	return nil
}

func (s *chatbotService) getRecord(ctx context.Context, id string) (*storage.ChatbotRecord, error) {
	record, err := s.bots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("chatbot %s: %w", id, ErrNotFound)
		}
		return nil, WrapError(err, "failed to get chatbot")
	}
	return record, nil
}

// requireDocument returns the bound document or ErrNotFound.
func (s *chatbotService) requireDocument(ctx context.Context, id string) (*storage.DocumentRecord, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return nil, WrapError(err, "failed to get document")
	}
	return doc, nil
}

// documentFilename resolves a document's filename for display, tolerating
// dangling references.
func (s *chatbotService) documentFilename(ctx context.Context, id string) (string, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return UnknownFilename, nil
	}
	if err != nil {
		return "", WrapError(err, "failed to get document")
	}
	return doc.Filename, nil
}

// normalizeChatbotInput trims every field, validates required ones and fills
// display defaults.
func normalizeChatbotInput(in ChatbotInput) (ChatbotInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	in.Color = strings.TrimSpace(in.Color)
	in.Icon = strings.TrimSpace(in.Icon)
	in.WelcomeMessage = strings.TrimSpace(in.WelcomeMessage)
	in.Placeholder = strings.TrimSpace(in.Placeholder)

	if in.Name == "" {
		return in, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if in.DocumentID == "" {
		return in, &ValidationError{Field: "document_id", Message: "cannot be empty"}
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		return in, &ValidationError{Field: "color", Message: "must be a hex color such as #007bff"}
	}

	if in.Color == "" {
		in.Color = DefaultColor
	}
	if in.Icon == "" {
		in.Icon = DefaultIcon
	}
	if in.WelcomeMessage == "" {
		in.WelcomeMessage = DefaultWelcomeMessage
	}
	if in.Placeholder == "" {
		in.Placeholder = DefaultPlaceholder
	}

	return in, nil
}

func toChatbot(r *storage.ChatbotRecord, filename string) Chatbot {
	return Chatbot{
		ID:               r.ID,
		Name:             r.Name,
		DocumentID:       r.DocumentID,
		DocumentFilename: filename,
		Color:            r.Color,
		Icon:             r.Icon,
		WelcomeMessage:   r.WelcomeMessage,
		Placeholder:      r.Placeholder,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
