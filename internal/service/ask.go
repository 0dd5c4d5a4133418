package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ask_service.go -package=mocks docbot/internal/service AskService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docbot/internal/contextutil"
	"docbot/internal/rag"
	"docbot/internal/storage"
)

// MaxHistory is the number of most recent turns kept from a client's history.
const MaxHistory = 10

// AskRequest represents a question in the domain layer. Exactly one of
// DocumentID and ChatbotID is expected; ChatbotID wins when both are set.
type AskRequest struct {
	DocumentID string
	ChatbotID  string
	Question   string
	History    []rag.Turn
}

// AskResponse represents an answer in the domain layer.
type AskResponse struct {
	Answer string
	// Fallback is true when the answer is the apology used after a failed
	// completion call.
	Fallback bool
}

// AskService answers questions about stored documents.
type AskService interface {
	// Ask resolves the target document and answers the question.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// askService implements AskService.
type askService struct {
	docs   storage.DocumentStore
	bots   storage.ChatbotStore
	engine rag.Engine
}

// NewAskService creates a new AskService.
func NewAskService(docs storage.DocumentStore, bots storage.ChatbotStore, engine rag.Engine) AskService {
	return &askService{
		docs:   docs,
		bots:   bots,
		engine: engine,
	}
}

// Ask answers a question about a document, directly or through a chatbot.
func (s *askService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	documentID, err := s.resolveDocumentID(ctx, req)
	if err != nil {
		return AskResponse{}, err
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "question for unknown document", "document_id", documentID)
			return AskResponse{}, fmt.Errorf("document %s: %w", documentID, ErrNotFound)
		}
		return AskResponse{}, WrapError(err, "failed to get document")
	}

	history := rag.RecentTurns(req.History, MaxHistory)

	resp, err := s.engine.Ask(ctx, rag.AskRequest{
		Text:     doc.Text,
		Question: question,
		History:  history,
	})
	if err != nil {
		logger.ErrorContext(ctx, "answer engine failed", "document_id", documentID, "error", err)
		return AskResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	logger.InfoContext(ctx, "question answered",
		"document_id", documentID,
		"chatbot_id", req.ChatbotID,
		"question_length", len(question),
		"history_turns", len(history),
		"found", resp.Found,
		"fallback", resp.Fallback,
	)

	return AskResponse{
		Answer:   resp.Answer,
		Fallback: resp.Fallback,
	}, nil
}

func (s *askService) resolveDocumentID(ctx context.Context, req AskRequest) (string, error) {
	if chatbotID := strings.TrimSpace(req.ChatbotID); chatbotID != "" {
		bot, err := s.bots.GetByID(ctx, chatbotID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("chatbot %s: %w", chatbotID, ErrNotFound)
			}
			return "", WrapError(err, "failed to get chatbot")
		}
		return bot.DocumentID, nil
	}

	documentID := strings.TrimSpace(req.DocumentID)
	if documentID == "" {
		return "", &ValidationError{Field: "document_id", Message: "cannot be empty"}
	}
	return documentID, nil
}
