package storage

import "time"

// DocumentRecord represents an uploaded document and its extracted text.
type DocumentRecord struct {
	ID        string // UUID
	Filename  string // Sanitized original file name
	FilePath  string // Location of the stored upload
	Text      string // Normalized text, paragraphs preserved
	CreatedAt time.Time
}

// DocumentSummary is a DocumentRecord without its text.
type DocumentSummary struct {
	ID        string
	Filename  string
	CharCount int // Length of the text in characters
	CreatedAt time.Time
}

// ChatbotRecord represents a named chatbot bound to a document.
type ChatbotRecord struct {
	ID             string // UUID
	Name           string
	DocumentID     string // Not enforced after creation
	Color          string
	Icon           string
	WelcomeMessage string
	Placeholder    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
