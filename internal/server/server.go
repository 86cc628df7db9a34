// Package server exposes the analysis engine over HTTP: POST /analyze and
// GET /suggest, plus a health endpoint. Each request is a self-contained
// computation; the server holds no task state between calls.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"github.com/astralhq/polaris/internal/history"
	"github.com/astralhq/polaris/internal/score"
	"github.com/astralhq/polaris/internal/telemetry"
)

// Options configures a Server. Emitter and History are optional; their nil
// forms are no-ops.
type Options struct {
	Host string
	Port int
	// CORSOrigins lists allowed browser origins. The primary client is a
	// browser form, so CORS is on by default with "*" when empty.
	CORSOrigins []string
	Emitter     *telemetry.Emitter
	History     *history.Store
	// Weights override the default scoring weights. The zero value means
	// defaults.
	Weights score.Weights
	// Clock supplies "now" for urgency scoring, taken once per request.
	// Defaults to time.Now; tests pin it.
	Clock func() time.Time
}

// Server is the polaris HTTP API server.
type Server struct {
	opts Options
	srv  *http.Server
	ln   net.Listener
}

// New creates a Server with the given options.
func New(opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Weights == (score.Weights{}) {
		opts.Weights = score.DefaultWeights()
	}
	return &Server{opts: opts}
}

// Start binds the listener and begins serving in a background goroutine.
// It returns once the server is ready to accept connections.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/suggest", s.handleSuggest)
	mux.HandleFunc("/healthz", s.handleHealthz)

	handler := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.recover(mux))

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: handler}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "polaris: serve error: %v\n", err)
		}
	}()

	_ = s.opts.Emitter.Emit(telemetry.Event{
		Kind:   telemetry.KindServerStart,
		Detail: ln.Addr().String(),
	})
	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	_ = s.opts.Emitter.Emit(telemetry.Event{Kind: telemetry.KindServerStop})
	return s.srv.Shutdown(ctx)
}

// recover converts handler panics into a clean 500 instead of tearing down
// the connection or leaking a partial body. Responses are buffered by the
// handlers, so nothing has been written by the time a panic unwinds.
func (s *Server) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Fprintf(os.Stderr, "polaris: panic in %s %s: %v\n", r.Method, r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
