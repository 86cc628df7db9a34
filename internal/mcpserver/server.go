// Package mcpserver exposes the prioritization engine as MCP tools over
// SSE/HTTP, so agent frameworks can analyze and rank task sets without
// going through the REST API.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/astralhq/polaris/internal/score"
	"github.com/astralhq/polaris/internal/telemetry"
)

// Version is the polaris MCP server version, matching the module.
const Version = "0.1.0"

// Options configures the MCP server.
type Options struct {
	// Port to listen on. Port 0 picks an ephemeral port.
	Port int
	// Emitter receives tool-call telemetry. May be nil.
	Emitter *telemetry.Emitter
	// Weights override the default scoring weights. The zero value means
	// defaults.
	Weights score.Weights
	// Clock supplies "now" for scoring. Nil uses time.Now.
	Clock func() time.Time
}

// Server is the in-process polaris MCP server. It registers the analyze
// and suggest tools and serves them over SSE/HTTP.
type Server struct {
	mcp     *mcp.Server
	port    int
	srv     *http.Server
	ln      net.Listener
	clock   func() time.Time
	weights score.Weights
	emitter *telemetry.Emitter
}

// New creates an MCP server with the prioritization tools registered.
func New(opts Options) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "polaris",
			Version: Version,
		},
		nil,
	)

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	if opts.Weights == (score.Weights{}) {
		opts.Weights = score.DefaultWeights()
	}

	s := &Server{
		mcp:     mcpServer,
		port:    opts.Port,
		clock:   clock,
		weights: opts.Weights,
		emitter: opts.Emitter,
	}

	s.registerTools()

	return s
}

// Start begins serving the MCP server over SSE/HTTP on the configured port.
// It blocks until the server is ready to accept connections.
func (s *Server) Start(ctx context.Context) error {
	handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("mcpserver: listen on port %d: %w", s.port, err)
	}
	s.ln = ln

	s.srv = &http.Server{Handler: handler}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "mcpserver: serve error: %v\n", err)
		}
	}()

	s.emitter.Emit(telemetry.Event{Kind: telemetry.KindServerStart, Op: "mcp", Detail: s.Addr().String()})
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
	s.emitter.Emit(telemetry.Event{Kind: telemetry.KindServerStop, Op: "mcp"})
	return s.srv.Shutdown(ctx)
}
