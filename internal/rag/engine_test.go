package rag_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"docbot/internal/llm"
	"docbot/internal/rag"
	"docbot/internal/rag/mocks"
	"docbot/internal/textproc"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const document = "El gato corre por la casa.\nEl perro duerme en el jardín grande hoy."

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    rag.Mode
		wantErr bool
	}{
		{in: "keyword", want: rag.ModeKeyword},
		{in: "LLM", want: rag.ModeLLM},
		{in: " llm ", want: rag.ModeLLM},
		{in: "vector", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rag.ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEngine(t *testing.T) {
	ctrl := gomock.NewController(t)

	e, err := rag.NewEngine(rag.ModeKeyword, nil)
	require.NoError(t, err)
	assert.IsType(t, &rag.KeywordEngine{}, e)

	e, err = rag.NewEngine(rag.ModeLLM, mocks.NewMockCompleter(ctrl))
	require.NoError(t, err)
	assert.IsType(t, &rag.LLMEngine{}, e)

	_, err = rag.NewEngine(rag.ModeLLM, nil)
	assert.Error(t, err)

	_, err = rag.NewEngine(rag.Mode("other"), nil)
	assert.Error(t, err)
}

func TestKeywordEngine_Ask(t *testing.T) {
	e := rag.NewKeywordEngine()

	resp, err := e.Ask(context.Background(), rag.AskRequest{Text: document, Question: "¿Dónde duerme el perro?"})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "El perro duerme en el jardín grande hoy.", resp.Answer)

	resp, err = e.Ask(context.Background(), rag.AskRequest{Text: document, Question: "petróleo"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, textproc.NotFoundAnswer, resp.Answer)
}

func TestLLMEngine_Ask(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantAnswer   string
		wantFallback bool
	}{
		{
			name:       "answer from model",
			reply:      "  El perro duerme en el jardín.  ",
			wantAnswer: "El perro duerme en el jardín.",
		},
		{
			name:         "completion error falls back",
			err:          errors.New("connection refused"),
			wantAnswer:   rag.FallbackAnswer,
			wantFallback: true,
		},
		{
			name:         "blank completion falls back",
			reply:        "   ",
			wantAnswer:   rag.FallbackAnswer,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mocks.NewMockCompleter(ctrl)
			completer.EXPECT().
				ChatWithMessages(gomock.Any(), gomock.Any(), llm.ChatParams{Temperature: rag.Temperature, MaxTokens: rag.MaxTokens}).
				Return(tt.reply, tt.err)

			resp, err := rag.NewLLMEngine(completer).Ask(context.Background(), rag.AskRequest{
				Text:     document,
				Question: "¿Dónde duerme el perro?",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, resp.Answer)
			assert.Equal(t, tt.wantFallback, resp.Fallback)
		})
	}
}

func TestLLMEngine_Ask_SendsAssembledMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	req := rag.AskRequest{Text: document, Question: "¿Y el gato?", History: history(7)}
	want := rag.AssembleMessages(req.Text, req.Question, req.History)

	completer.EXPECT().
		ChatWithMessages(gomock.Any(), want, gomock.Any()).
		Return("Corre por la casa.", nil)

	resp, err := rag.NewLLMEngine(completer).Ask(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Corre por la casa.", resp.Answer)
	assert.False(t, resp.Fallback)
}
