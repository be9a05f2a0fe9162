package http

import (
	"net/http"

	"github.com/bnema/vcomp/internal/adapter/http/middleware"
)

type ServerOptions struct {
	Jobs            JobService
	Stats           StatisticsService
	Media           MediaService
	Keys            KeyService
	Events          EventSubscriber
	MaxUploadSizeMB int
	BehindProxy     bool
}

type Server struct {
	mux        *http.ServeMux
	handlers   *Handlers
	sseHandler *SSEHandler
	keys       KeyService
	guard      *KeyGuard
	handler    http.Handler
}

func NewServer(opts ServerOptions) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		handlers:   NewHandlers(opts.Jobs, opts.Stats, opts.Media, opts.MaxUploadSizeMB),
		sseHandler: NewSSEHandler(opts.Events, opts.Jobs),
		keys:       opts.Keys,
		guard:      NewKeyGuard(opts.BehindProxy),
	}

	s.registerRoutes()
	s.handler = middleware.RequestLogger(middleware.SecurityHeaders(s.mux))

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /ping", s.handlers.Ping())
	s.mux.HandleFunc("GET /statistics", s.handlers.Statistics())

	s.mux.HandleFunc("POST /keys", IssueKeyHandler(s.keys, s.guard))
	s.mux.HandleFunc("POST /keys/{id}/revoke", RevokeKeyHandler(s.keys, s.guard))

	s.mux.HandleFunc("POST /files", APIKeyMiddleware(s.keys, s.handlers.Upload()))
	s.mux.HandleFunc("GET /files/{name}", APIKeyMiddleware(s.keys, s.handlers.Download()))

	s.mux.HandleFunc("POST /jobs/compression", APIKeyMiddleware(s.keys, s.handlers.CreateCompressionJob()))
	s.mux.HandleFunc("GET /jobs/active", APIKeyMiddleware(s.keys, s.handlers.ActiveJobs()))
	s.mux.HandleFunc("GET /jobs/{id}", APIKeyMiddleware(s.keys, s.handlers.GetJob()))
	s.mux.HandleFunc("GET /jobs/{id}/events", APIKeyMiddleware(s.keys, s.sseHandler.Events()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
