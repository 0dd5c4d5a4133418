// Package extract turns uploaded documents into plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat matches every *UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrUnreadable is returned when a file has a supported extension but its
// content cannot be parsed.
var ErrUnreadable = errors.New("unreadable document")

// SupportedExtensions lists the accepted extensions in display order.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".csv", ".md", ".html", ".htm"}

// UnsupportedFormatError reports a file extension that cannot be extracted.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file format: missing extension (supported: %s)", strings.Join(SupportedExtensions, ", "))
	}
	return fmt.Sprintf("unsupported file format %q (supported: %s)", e.Ext, strings.Join(SupportedExtensions, ", "))
}

// Is lets errors.Is(err, ErrUnsupportedFormat) match.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Ext returns the lower-cased extension of a file name, including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Supported reports whether ext (with or without a leading dot, any case)
// can be extracted.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, s := range SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

// Extract reads the file at path and returns its text, choosing the parser
// by the file's extension.
func Extract(path string) (string, error) {
	ext := Ext(path)
	if !Supported(ext) {
		return "", &UnsupportedFormatError{Ext: ext}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return ExtractBytes(ext, data)
}

// ExtractBytes returns the text of an in-memory document with the given
// extension.
func ExtractBytes(ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt", ".csv":
		return extractPlain(data), nil
	case ".md":
		return extractMarkdown(data), nil
	case ".html", ".htm":
		return extractHTML(data)
	default:
		return "", &UnsupportedFormatError{Ext: strings.ToLower(ext)}
	}
}

// extractPlain returns raw text content with a leading byte order mark removed
// and invalid UTF-8 sequences replaced.
func extractPlain(data []byte) string {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	return strings.ToValidUTF8(text, "\uFFFD")
}
