// Package web exposes the scoring pipeline over HTTP.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/netwatch/posture/internal/pipeline"
)

// Server is the HTTP server for the posture scoring API.
type Server struct {
	router   chi.Router
	addr     string
	pipeline *pipeline.Pipeline
}

// NewServer builds a new Server with middleware and routes configured.
func NewServer(addr string, p *pipeline.Pipeline) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		addr:     addr,
		pipeline: p,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.registerRoutes()

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
