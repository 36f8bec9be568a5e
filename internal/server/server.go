// Package server exposes the comparison pipeline over HTTP: a JSON API,
// a PNG chart endpoint and the HTML dashboard.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/stockcompare/internal/app"
	"github.com/bobmcallan/stockcompare/internal/common"
	"github.com/bobmcallan/stockcompare/internal/interfaces"
)

// Server wraps the HTTP server and application reference.
type Server struct {
	config  *common.Config
	compare interfaces.CompareService
	logger  *common.Logger
	server  *http.Server
}

// NewServer creates a new HTTP server for the app.
func NewServer(a *app.App) *Server {
	s := &Server{
		config:  a.Config,
		compare: a.CompareService,
		logger:  a.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, a.Logger)

	host := a.Config.Server.Host
	port := a.Config.Server.Port

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
