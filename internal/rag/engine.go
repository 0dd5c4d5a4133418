package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks docbot/internal/rag Completer,Engine

import (
	"context"
	"fmt"
	"strings"

	"docbot/internal/contextutil"
	"docbot/internal/llm"
	"docbot/internal/metrics"
	"docbot/internal/textproc"
)

// Sampling settings for every completion request.
const (
	Temperature float32 = 0.3
	MaxTokens           = 500
)

// FallbackAnswer replaces the model's reply whenever the completion API fails.
const FallbackAnswer = "Lo siento, no pude generar una respuesta en este momento. Por favor, inténtalo de nuevo más tarde."

// Mode selects how questions are answered.
type Mode string

const (
	// ModeKeyword picks the best matching paragraph without any external call.
	ModeKeyword Mode = "keyword"
	// ModeLLM forwards document context and history to a completion API.
	ModeLLM Mode = "llm"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeKeyword:
		return ModeKeyword, nil
	case ModeLLM:
		return ModeLLM, nil
	default:
		return "", fmt.Errorf("unknown answer mode %q (want %q or %q)", s, ModeKeyword, ModeLLM)
	}
}

// Completer is the part of the LLM client the engine needs.
type Completer interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Engine answers questions about a document.
type Engine interface {
	// Ask answers a question about the document text in req.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// NewEngine returns the engine for mode. ModeLLM requires a completer.
func NewEngine(mode Mode, completer Completer) (Engine, error) {
	switch mode {
	case ModeKeyword:
		return NewKeywordEngine(), nil
	case ModeLLM:
		if completer == nil {
			return nil, fmt.Errorf("llm mode requires a completer")
		}
		return NewLLMEngine(completer), nil
	default:
		return nil, fmt.Errorf("unknown answer mode %q", mode)
	}
}

// KeywordEngine answers with the paragraph sharing most keywords with the question.
type KeywordEngine struct{}

// NewKeywordEngine creates a KeywordEngine.
func NewKeywordEngine() *KeywordEngine {
	return &KeywordEngine{}
}

// Ask implements Engine. It never fails.
func (e *KeywordEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	answer := textproc.FindAnswer(req.Text, req.Question)
	found := answer != textproc.NotFoundAnswer

	outcome := "answered"
	if !found {
		outcome = "not_found"
	}
	metrics.AnswersTotal.WithLabelValues(string(ModeKeyword), outcome).Inc()

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "keyword answer selected",
		"keywords", textproc.Keywords(req.Question),
		"found", found,
	)

	return AskResponse{Answer: answer, Found: found}, nil
}

// LLMEngine answers through a chat-completion API.
type LLMEngine struct {
	completer Completer
}

// NewLLMEngine creates an LLMEngine.
func NewLLMEngine(completer Completer) *LLMEngine {
	return &LLMEngine{completer: completer}
}

// Ask implements Engine. Completion failures are logged and answered with
// FallbackAnswer instead of an error.
func (e *LLMEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	messages := AssembleMessages(req.Text, req.Question, req.History)
	logger.DebugContext(ctx, "sending completion request",
		"messages", len(messages),
		"history_turns", len(RecentTurns(req.History, HistoryTurns)),
	)

	answer, err := e.completer.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err == nil && strings.TrimSpace(answer) == "" {
		err = fmt.Errorf("empty completion")
	}
	if err != nil {
		logger.ErrorContext(ctx, "completion failed, answering with fallback", "error", err)
		metrics.AnswersTotal.WithLabelValues(string(ModeLLM), "fallback").Inc()
		return AskResponse{Answer: FallbackAnswer, Found: true, Fallback: true}, nil
	}

	metrics.AnswersTotal.WithLabelValues(string(ModeLLM), "answered").Inc()
	return AskResponse{Answer: strings.TrimSpace(answer), Found: true}, nil
}
