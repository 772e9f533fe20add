// Package api provides the optional HTTP side server of the DeepPath MCP adapter.
// It exposes health, metadata and Prometheus metrics; the MCP protocol itself is served over stdio.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deeppath/deeppath-mcp/internal/service/mcp"
	"github.com/deeppath/deeppath-mcp/internal/telemetry"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/deeppath/deeppath-mcp/pkg/version"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	V0PathPrefix    = "/v0"
	V0ApiPathPrefix = "/api" + V0PathPrefix

	// ServerName is reported by /metadata and by the MCP initialize handshake.
	ServerName = "deeppath-server"

	shutdownTimeout = 5 * time.Second
)

type ServerOptions struct {
	// Port is the HTTP port to bind the server to
	Port string

	MCPService *mcp.MCPService

	OtelProviders *telemetry.Providers
	Logger        *zap.Logger
}

// Server is the HTTP side server. It never carries MCP traffic.
type Server struct {
	port   string
	router *gin.Engine

	mcpService *mcp.MCPService

	otelProviders *telemetry.Providers
	logger        *zap.Logger
}

// NewServer initializes a new Gin server for the adapter's health and metrics endpoints
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.MCPService == nil {
		return nil, errors.New("MCP service is required")
	}

	s := &Server{
		port:          opts.Port,
		mcpService:    opts.MCPService,
		otelProviders: opts.OtelProviders,
		logger:        opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	r, err := s.setupRouter()
	if err != nil {
		return nil, err
	}
	s.router = r

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until ctx is cancelled (blocking call)
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to run the server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown the server: %w", err)
		}
		return nil
	}
}

// setupRouter sets up the Gin router with the health, metadata, metrics and tool catalog endpoints.
func (s *Server) setupRouter() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	// if otel is enabled, setup prometheus metrics endpoint
	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		// instrument gin
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))

		// expose prometheus metrics endpoint
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET(
		"/health",
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)

	r.GET(
		"/metadata",
		func(c *gin.Context) {
			m := &types.ServerMetadata{
				Name:    ServerName,
				Version: version.GetVersion(),
			}
			c.JSON(http.StatusOK, m)
		},
	)

	apiV0 := r.Group(V0ApiPathPrefix)
	{
		apiV0.GET("/tools", s.listToolsHandler())
		apiV0.GET("/tool", s.getToolHandler())
	}

	return r, nil
}

// requestLogger logs every request at debug level through zap.
// stdout is reserved for the MCP stream, so gin's default logger can't be used.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(started)),
		)
	}
}
