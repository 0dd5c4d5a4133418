// Package web renders the home page and the embeddable chatbot widget.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"
)

//go:embed templates
var templateFS embed.FS

// IndexData holds template data for the home page.
type IndexData struct {
	Mode        string
	Formats     string // Human readable, e.g. "PDF, DOCX, TXT"
	Accept      string // File input accept list, e.g. ".pdf,.docx,.txt"
	MaxUploadMB int64
}

// NewIndexData builds home page data from file extensions such as ".pdf".
func NewIndexData(mode string, extensions []string, maxUploadMB int64) IndexData {
	formats := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		formats = append(formats, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	return IndexData{
		Mode:        mode,
		Formats:     strings.Join(formats, ", "),
		Accept:      strings.Join(extensions, ","),
		MaxUploadMB: maxUploadMB,
	}
}

// WidgetData holds template data for a chatbot's widget script and embed snippet.
type WidgetData struct {
	ChatbotID      string
	Name           string
	Color          string
	Icon           string
	WelcomeMessage string
	Placeholder    string
	AskURL         string
	ScriptURL      string
}

// Renderer executes the embedded templates.
type Renderer struct {
	index  *htmltemplate.Template
	embed  *htmltemplate.Template
	widget *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	index, err := htmltemplate.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	embedTmpl, err := htmltemplate.ParseFS(templateFS, "templates/embed.html.tmpl")
	if err != nil {
		return nil, err
	}

	// text/template does no escaping; every value goes through jsString.
	widget, err := texttemplate.New("widget.js.tmpl").
		Funcs(texttemplate.FuncMap{"js": jsString}).
		ParseFS(templateFS, "templates/widget.js.tmpl")
	if err != nil {
		return nil, err
	}

	return &Renderer{index: index, embed: embedTmpl, widget: widget}, nil
}

// Index writes the home page.
func (r *Renderer) Index(w io.Writer, data IndexData) error {
	return r.index.Execute(w, data)
}

// WidgetScript writes the JavaScript widget for a chatbot.
func (r *Renderer) WidgetScript(w io.Writer, data WidgetData) error {
	return r.widget.Execute(w, data)
}

// EmbedSnippet writes the HTML snippet that loads the widget script.
func (r *Renderer) EmbedSnippet(w io.Writer, data WidgetData) error {
	return r.embed.Execute(w, data)
}

// EmbedCode returns the embed snippet as a string without trailing whitespace.
func (r *Renderer) EmbedCode(data WidgetData) (string, error) {
	var buf bytes.Buffer
	if err := r.EmbedSnippet(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// jsString encodes s as a JavaScript string literal. encoding/json escapes
// <, > and & as well as U+2028 and U+2029, so the result is safe inside a
// script element.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
