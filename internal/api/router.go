package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordvote/wordvote/internal/api/handler"
	"github.com/wordvote/wordvote/internal/api/middleware"
	"github.com/wordvote/wordvote/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.SessionController)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes. All identity is carried in request bodies as
	// bearer tokens, so there is no auth middleware layer.
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/words", sessionHandler.Submit).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/close", sessionHandler.Close).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/restore-host", sessionHandler.RestoreHost).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/restore-player", sessionHandler.RestorePlayer).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}", sessionHandler.Snapshot).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
