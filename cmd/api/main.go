package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docbot/internal/config"
	"docbot/internal/extract"
	"docbot/internal/handlers"
	"docbot/internal/http"
	"docbot/internal/llm"
	"docbot/internal/rag"
	"docbot/internal/service"
	"docbot/internal/storage"
	"docbot/internal/uploads"
	"docbot/internal/web"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about uploaded documents and serves embeddable
// chatbots bound to those documents.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Docbot API
//   description: |
//     Upload PDF, DOCX, TXT, CSV, Markdown or HTML documents and ask questions about
//     them in Spanish, either directly or through a configurable chat widget.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "in_memory", storage.IsMemory(cfg.DBPath))

	documentRepo := storage.NewDocumentRepo(db)
	chatbotRepo := storage.NewChatbotRepo(db)

	fileStore, err := uploads.NewStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}
	slog.Info("Upload store ready", "dir", fileStore.Root(), "max_mb", cfg.MaxUploadMB)

	mode, err := rag.ParseMode(cfg.AnswerMode)
	if err != nil {
		log.Fatalf("Invalid answer mode: %v", err)
	}

	// The completion client is only built when it will be used.
	var completer rag.Completer
	if mode == rag.ModeLLM {
		completer = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "timeout", cfg.LLMTimeout)
	}

	engine, err := rag.NewEngine(mode, completer)
	if err != nil {
		log.Fatalf("Failed to create answer engine: %v", err)
	}
	slog.Info("Answer engine initialized", "mode", mode)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	storagePinger := handlers.PingerFunc(func(ctx context.Context) error {
		return storage.Ping(ctx, db)
	})

	deps := &http.Deps{
		DocumentService: service.NewDocumentService(documentRepo, fileStore),
		ChatbotService:  service.NewChatbotService(chatbotRepo, documentRepo),
		AskService:      service.NewAskService(documentRepo, chatbotRepo, engine),
		Renderer:        renderer,
		Index:           web.NewIndexData(string(mode), extract.SupportedExtensions, cfg.MaxUploadMB),
		Storage:         storagePinger,
		AnswerMode:      string(mode),
		MaxUploadBytes:  cfg.MaxUploadBytes(),
		PublicBaseURL:   cfg.PublicBaseURL,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second, // a question may wait for the full completion timeout
		IdleTimeout:       2 * time.Minute,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		slog.Error("API server failed", "error", err)
		_ = db.Close()
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
	slog.Info("Server stopped gracefully")
}
