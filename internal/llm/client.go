package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docbot/internal/contextutil"
	"docbot/internal/metrics"
)

// DefaultTimeout bounds a single completion request end to end.
const DefaultTimeout = 60 * time.Second

// ErrCompletion wraps every failure of the completion API: transport errors,
// non-2xx answers, undecodable bodies and responses without choices.
var ErrCompletion = errors.New("completion request failed")

// Client is a client for OpenAI-compatible chat completions APIs.
type Client struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	client  *openai.Client
}

// NewClient creates a new LLM client. baseURL includes the API version prefix
// (e.g. "https://api.openai.com/v1"). A non-positive timeout selects
// DefaultTimeout.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimRight(baseURL, "/")

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// ChatWithMessages sends a chat completion request with the full message
// sequence and returns the content of the first choice.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	model := params.Model
	if model == "" {
		model = c.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(messages),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(model, "error").Inc()
		logger.WarnContext(ctx, "completion request failed", "model", model, "duration_ms", duration.Milliseconds(), "error", err)
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(model, "error").Inc()
		return "", fmt.Errorf("no choices returned: %w", ErrCompletion)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
	logger.DebugContext(ctx, "completion received",
		"model", model,
		"duration_ms", duration.Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}

// parseAPIError turns go-openai errors into a readable error wrapping ErrCompletion.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, ErrCompletion)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), ErrCompletion)
	}

	return fmt.Errorf("completion request: %v: %w", err, ErrCompletion)
}
