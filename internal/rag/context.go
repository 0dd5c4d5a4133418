package rag

import (
	"fmt"
	"strings"

	"docbot/internal/llm"
	"docbot/internal/textproc"
)

const (
	// ContextChunks is how many leading chunks of a document form the context.
	ContextChunks = 3
	// HistoryTurns is how many of the most recent turns are forwarded.
	HistoryTurns = 5
)

// SystemPrompt instructs the model to stay within the supplied document.
const SystemPrompt = "Eres un asistente que responde preguntas únicamente con la información del documento proporcionado. " +
	"No uses conocimiento externo. Si la respuesta no se encuentra en el documento, indícalo explícitamente."

// BuildContext normalizes the document text and joins its first
// ContextChunks chunks with a blank line.
func BuildContext(documentText string) string {
	chunks := textproc.ChunkDefault(textproc.Normalize(documentText))
	if len(chunks) > ContextChunks {
		chunks = chunks[:ContextChunks]
	}
	return strings.Join(chunks, "\n\n")
}

// RecentTurns returns at most the last n turns, preserving their order.
func RecentTurns(history []Turn, n int) []Turn {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

// AssembleMessages builds the message sequence sent to the completion API:
// the system prompt, then the recent history as user/assistant pairs, then a
// user message carrying the document context and the question.
func AssembleMessages(documentText, question string, history []Turn) []llm.Message {
	recent := RecentTurns(history, HistoryTurns)

	messages := make([]llm.Message, 0, 2+2*len(recent))
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})

	for _, turn := range recent {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: turn.Question},
			llm.Message{Role: llm.RoleAssistant, Content: turn.Answer},
		)
	}

	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: fmt.Sprintf("Document:\n\n%s\n\nQuestion: %s", BuildContext(documentText), question),
	})

	return messages
}
