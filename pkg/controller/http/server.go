package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/frontend"
	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	repo interfaces.Repository,
	investigationUC usecase.InvestigationUseCase,
	briefUC usecase.BriefUseCase,
	relay interfaces.LLMRelay,
) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	relayHandler := NewRelayHandler(relay, repo)
	investigationHandler := NewInvestigationHandler(investigationUC)
	briefHandler := NewBriefHandler(briefUC)

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Post("/verify", relayHandler.HandleVerify)
		r.Post("/investigate", relayHandler.HandleInvestigate)

		r.Route("/briefs", func(r chi.Router) {
			r.Post("/extract", briefHandler.HandleExtract)
		})

		r.Route("/investigations", func(r chi.Router) {
			r.Post("/", investigationHandler.HandleCreate)
			r.Get("/", investigationHandler.HandleList)
			r.Get("/{investigationID}", investigationHandler.HandleGet)
		})
	})

	// Frontend routes (embedded assets with SPA fallback)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		spaHandler, err := NewSPAHandler(fs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create SPA handler")
		}
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		router.Handle("/*", spaHandler)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// Router returns the chi router, for mounting in tests
func (s *Server) Router() chi.Router {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "kord",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when the frontend bundle is absent
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Kord Legal</title>
    <style>
        body {
            font-family: Georgia, "Times New Roman", serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #101418;
            color: #e8e4da;
        }
        .container {
            text-align: center;
            padding: 2rem 3rem;
            border: 1px solid #2a3340;
            border-radius: 8px;
        }
        h1 { margin: 0 0 0.5rem 0; letter-spacing: 0.08em; }
        p { margin: 0.4rem 0; color: #9aa4b0; }
        code { color: #c9a86a; }
    </style>
</head>
<body>
    <div class="container">
        <h1>KORD LEGAL</h1>
        <p>Brief investigation service</p>
        <p>Frontend bundle not found. The API is live under <code>/api</code>.</p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if encodeErr := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); encodeErr != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", encodeErr)
	}
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}
