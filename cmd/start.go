package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/deeppath/deeppath-mcp/client"
	"github.com/deeppath/deeppath-mcp/internal/api"
	"github.com/deeppath/deeppath-mcp/internal/config"
	"github.com/deeppath/deeppath-mcp/internal/logging"
	"github.com/deeppath/deeppath-mcp/internal/service/mcp"
	"github.com/deeppath/deeppath-mcp/internal/telemetry"
	"github.com/deeppath/deeppath-mcp/pkg/version"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	startServerCmdBaseURL     string
	startServerCmdStrict      bool
	startServerCmdMetricsPort string
)

var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the DeepPath MCP server on stdio",
	Long: "Starts the DeepPath MCP server, speaking the Model Context Protocol over stdin/stdout.\n\n" +
		"This is the command MCP hosts (Claude Desktop, Cline) run. Every tool call except getCurrentDateTime\n" +
		"is forwarded to the DeepPath standard MCP API at <base-url>/api/mcp/standard.\n\n" +
		"Configuration is read from the environment (a .env file in the current directory is loaded too):\n" +
		"DEEPPATH_API_KEY (required, or DEEPPATH_API_KEY_FILE), DEEPPATH_BASE_URL (default http://localhost:3000),\n" +
		"DEEPPATH_STRICT_ARGS, LOG_LEVEL, OTEL_ENABLED and METRICS_PORT.\n\n" +
		"Logs are written to stderr as JSON, stdout carries protocol messages only.\n" +
		"When a metrics port is given, a small HTTP server exposes /health, /metadata, the tool catalog\n" +
		"and, with OTEL_ENABLED=true, Prometheus metrics on /metrics.",
	RunE: runStartServer,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "1",
	},
}

func init() {
	startServerCmd.Flags().StringVar(
		&startServerCmdBaseURL,
		"base-url",
		"",
		fmt.Sprintf("base URL of the DeepPath API (overrides env var %s)", config.BaseURLEnvVar),
	)
	startServerCmd.Flags().BoolVar(
		&startServerCmdStrict,
		"strict",
		false,
		"validate tool arguments against the tool's input schema before forwarding them (overrides env var DEEPPATH_STRICT_ARGS)",
	)
	startServerCmd.Flags().StringVar(
		&startServerCmdMetricsPort,
		"metrics-port",
		"",
		"port for the health & metrics HTTP server, disabled when empty (overrides env var METRICS_PORT)",
	)

	rootCmd.AddCommand(startServerCmd)
}

// loadStartConfig reads the configuration from the environment and applies the command line overrides.
// precedence: command line flag > environment variable > default
func loadStartConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			return nil, fmt.Errorf(
				"%w\nrun `deeppath-mcp setup` to configure your MCP host, or `deeppath-mcp api-key` to get a key",
				err,
			)
		}
		return nil, err
	}

	if startServerCmdBaseURL != "" {
		cfg.BaseURL = startServerCmdBaseURL
	}
	if cmd.Flags().Changed("strict") {
		cfg.StrictArgs = startServerCmdStrict
	}
	if startServerCmdMetricsPort != "" {
		cfg.MetricsPort = startServerCmdMetricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runStartServer(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadStartConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelProviders, err := telemetry.Init(ctx, &telemetry.Config{
		ServiceName:    "deeppath-mcp",
		ServiceVersion: version.GetVersion(),
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Opentelemetry providers: %v", err)
	}
	defer func() {
		if err := otelProviders.Shutdown(context.Background()); err != nil {
			logger.Warn("failed to shutdown opentelemetry providers", zap.Error(err))
		}
	}()

	// the no-op implementation is used unless metrics are enabled
	toolMetrics := telemetry.NewNoopCustomMetrics()
	if otelProviders.IsEnabled() {
		toolMetrics, err = telemetry.NewOtelCustomMetrics(otelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create tool metrics: %v", err)
		}
	}

	deeppathClient := client.NewClient(cfg.BaseURL, cfg.APIKey, &http.Client{})

	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	}
	mcpProxyServer := server.NewMCPServer(
		api.ServerName,
		version.GetVersion(),
		append(serverOpts, mcp.ProxyServerOptions()...)...,
	)

	mcpService, err := mcp.NewMCPService(&mcp.ServiceConfig{
		Client:         deeppathClient,
		McpProxyServer: mcpProxyServer,
		Logger:         logger,
		Metrics:        toolMetrics,
		StrictArgs:     cfg.StrictArgs,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP service: %v", err)
	}

	if cfg.MetricsPort != "" {
		s, err := api.NewServer(&api.ServerOptions{
			Port:          cfg.MetricsPort,
			MCPService:    mcpService,
			OtelProviders: otelProviders,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %v", err)
		}
		go func() {
			if err := s.Start(ctx); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("metrics server listening", zap.String("port", cfg.MetricsPort))
	}

	logger.Info(
		"DeepPath MCP server running on stdio",
		zap.String("endpoint", deeppathClient.Endpoint()),
		zap.Bool("strict_args", cfg.StrictArgs),
		zap.Int("tools", len(mcpService.ListTools())),
	)

	stdioServer := server.NewStdioServer(mcpProxyServer)
	stdioServer.SetErrorLogger(zap.NewStdLog(logger))

	err = stdioServer.Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server failed: %w", err)
	}

	logger.Info("DeepPath MCP server stopped")
	return nil
}
