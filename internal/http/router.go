package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docbot/internal/handlers"
	"docbot/internal/metrics"
	"docbot/internal/service"
	"docbot/internal/web"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DocumentService service.DocumentService
	ChatbotService  service.ChatbotService
	AskService      service.AskService
	Renderer        *web.Renderer
	Index           web.IndexData
	Storage         handlers.Pinger
	AnswerMode      string
	MaxUploadBytes  int64
	PublicBaseURL   string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(metrics.Middleware())

	homeHandler := handlers.NewHomeHandler(deps.Renderer, deps.Index)
	healthHandler := handlers.NewHealthHandler(deps.Storage, deps.AnswerMode)
	documentsHandler := handlers.NewDocumentsHandler(deps.DocumentService, deps.MaxUploadBytes)
	askHandler := handlers.NewAskHandler(deps.AskService)
	chatbotsHandler := handlers.NewChatbotsHandler(deps.ChatbotService)
	widgetHandler := handlers.NewWidgetHandler(deps.ChatbotService, deps.Renderer, deps.PublicBaseURL)

	r.Method(http.MethodGet, "/", homeHandler)
	r.Method(http.MethodGet, "/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Form-style paths kept for existing clients.
	r.Post("/upload-document/", documentsHandler.Upload)
	r.Method(http.MethodPost, "/ask-question/", askHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", documentsHandler.Upload)
			r.Get("/", documentsHandler.List)
			r.Get("/{id}", documentsHandler.Get)
		})

		r.Method(http.MethodPost, "/ask", askHandler)

		r.Route("/chatbots", func(r chi.Router) {
			r.Post("/", chatbotsHandler.Create)
			r.Get("/", chatbotsHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", chatbotsHandler.Get)
				r.Put("/", chatbotsHandler.Update)
				r.Delete("/", chatbotsHandler.Delete)
				r.Post("/ask", askHandler.AskChatbot)
				r.Get("/widget.js", widgetHandler.Script)
				r.Get("/embed", widgetHandler.Embed)
			})
		})
	})

	return r
}
