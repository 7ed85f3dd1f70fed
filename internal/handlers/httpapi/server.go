package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/justinas/alice"

	"github.com/settleco/accord/internal/services/casefile"
)

// Config holds configuration for the HTTP API
type Config struct {
	// Service is the case-coordination service
	Service casefile.Service

	// Logger receives request and error logs
	Logger *slog.Logger
}

// Server exposes the coordination service over HTTP and SSE
type Server struct {
	service casefile.Service
	logger  *slog.Logger
}

// New creates a new HTTP API server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Service == nil {
		return nil, errors.New("service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		service: cfg.Service,
		logger:  logger,
	}, nil
}

// Routes builds the handler tree
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("POST /session/create", s.handleCreateSession)
	mux.HandleFunc("POST /session/join", s.handleJoinSession)
	mux.HandleFunc("POST /session/reconnect", s.handleReconnect)
	mux.HandleFunc("GET /session/stream/{sessionID}", s.handleStreamEvents)
	mux.HandleFunc("POST /session/sign", s.handleSignDriver)

	mux.HandleFunc("POST /report/submit", s.handleSubmitDraft)

	mux.HandleFunc("GET /police/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /police/meeting", s.handleStartMeeting)
	mux.HandleFunc("POST /police/sign", s.handleSignPolice)
	mux.HandleFunc("PUT /police/case-details", s.handleUpdateCaseDetails)
	mux.HandleFunc("GET /police/case-file/{sessionID}", s.handleGetCaseFile)

	return alice.New(s.recoverPanic, s.logRequest).Then(mux)
}
