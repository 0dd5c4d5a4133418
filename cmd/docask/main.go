// Command docask answers questions about a local document from the terminal,
// using the same extraction and answer engines as the API server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"docbot/internal/config"
	"docbot/internal/extract"
	"docbot/internal/llm"
	"docbot/internal/rag"
	"docbot/internal/service"
	"docbot/internal/textproc"
)

// Options holds the command-line flags.
type Options struct {
	File        string
	Question    string
	Mode        string
	HistoryPath string
	Verbose     bool
}

func main() {
	var opts Options
	flag.StringVar(&opts.File, "file", "", "Document to question (.pdf, .docx, .txt, .csv, .md, .html)")
	flag.StringVar(&opts.Question, "question", "", "Question to answer; omit for an interactive session")
	flag.StringVar(&opts.Mode, "mode", "", "Answer mode: keyword or llm (default from ANSWER_MODE)")
	flag.StringVar(&opts.HistoryPath, "history", "", "JSON file with earlier turns; updated after every answer")
	flag.BoolVar(&opts.Verbose, "v", false, "Log debug output to stderr")
	flag.Parse()

	if opts.File == "" {
		color.Red("Missing -file\n")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine, mode, err := newEngine(cfg, opts.Mode)
	if err != nil {
		return err
	}

	raw, err := extract.Extract(opts.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.File, err)
	}
	text := textproc.NormalizeParagraphs(raw)
	color.Cyan("Documento: %s (%d caracteres, modo %s)\n", opts.File, len([]rune(text)), mode)

	history, err := loadHistory(opts.HistoryPath)
	if err != nil {
		return err
	}

	ask := func(question string) error {
		resp, err := answer(ctx, engine, mode, rag.AskRequest{
			Text:     text,
			Question: question,
			History:  rag.RecentTurns(history, service.MaxHistory),
		})
		if err != nil {
			return err
		}

		printAnswer(out, resp)
		history = append(history, rag.Turn{Question: question, Answer: resp.Answer})
		return saveHistory(opts.HistoryPath, history)
	}

	if q := strings.TrimSpace(opts.Question); q != "" {
		return ask(q)
	}

	// Interactive chat loop with colored output
	color.Cyan("\nPregunta sobre el documento (escribe 'salir' para terminar)")

	scanner := bufio.NewScanner(in)
	userPrompt := color.New(color.FgGreen).PrintfFunc()

	for {
		userPrompt("\nTú: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if lower := strings.ToLower(question); lower == "salir" || lower == "exit" {
			break
		}

		if err := ask(question); err != nil {
			color.Red("Error: %v\n", err)
		}
	}
	return scanner.Err()
}

// newEngine builds the answer engine for flagMode, or for the configured mode
// when flagMode is empty.
func newEngine(cfg *config.Config, flagMode string) (rag.Engine, rag.Mode, error) {
	name := cfg.AnswerMode
	if flagMode != "" {
		name = flagMode
	}
	mode, err := rag.ParseMode(name)
	if err != nil {
		return nil, "", err
	}

	var completer rag.Completer
	if mode == rag.ModeLLM {
		if cfg.LLMAPIKey == "" {
			return nil, "", errors.New("llm mode requires LLM_API_KEY")
		}
		completer = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)
	}

	engine, err := rag.NewEngine(mode, completer)
	if err != nil {
		return nil, "", err
	}
	return engine, mode, nil
}

// answer runs the engine, showing a spinner while a completion is pending.
func answer(ctx context.Context, engine rag.Engine, mode rag.Mode, req rag.AskRequest) (rag.AskResponse, error) {
	if mode != rag.ModeLLM {
		return engine.Ask(ctx, req)
	}

	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString("Generando respuesta...")),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	defer func() {
		_ = spinner.Finish()
	}()

	return engine.Ask(ctx, req)
}

func printAnswer(out io.Writer, resp rag.AskResponse) {
	label := color.New(color.FgCyan, color.Bold).SprintFunc()
	switch {
	case resp.Fallback:
		_, _ = fmt.Fprintf(out, "%s %s\n", label("Asistente:"), color.YellowString(resp.Answer))
	case !resp.Found:
		_, _ = fmt.Fprintf(out, "%s %s\n", label("Asistente:"), color.HiBlackString(resp.Answer))
	default:
		_, _ = fmt.Fprintf(out, "%s %s\n", label("Asistente:"), resp.Answer)
	}
}

// loadHistory reads earlier turns from path. A missing file is an empty history.
func loadHistory(path string) ([]rag.Turn, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var turns []rag.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return turns, nil
}

// saveHistory writes turns to path as indented JSON. An empty path is a no-op.
func saveHistory(path string, turns []rag.Turn) error {
	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
