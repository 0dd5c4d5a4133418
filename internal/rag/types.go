package rag

// Turn is one prior question/answer exchange of a conversation.
type Turn struct {
	// Question is what the user asked.
	Question string `json:"question"`
	// Answer is what the assistant replied.
	Answer string `json:"answer"`
}

// AskRequest represents a question about a single document.
type AskRequest struct {
	// Text is the stored, paragraph-preserving document text.
	Text string
	// Question is the user's question to answer.
	Question string
	// History holds earlier turns in chronological order. Only the most
	// recent ones are forwarded to the model.
	History []Turn
}

// AskResponse represents the answer to an AskRequest.
type AskResponse struct {
	// Answer is the text shown to the user.
	Answer string
	// Found is false when the keyword engine matched nothing and Answer is the
	// not-found sentinel.
	Found bool
	// Fallback is true when the completion API failed and Answer is the
	// locally built apology.
	Fallback bool
}
