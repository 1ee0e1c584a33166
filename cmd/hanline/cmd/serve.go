package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/config"
	"github.com/hanline/hanline/internal/pinyin"
	"github.com/hanline/hanline/internal/plan"
	"github.com/hanline/hanline/internal/server"
	"github.com/hanline/hanline/internal/speech"
	"github.com/hanline/hanline/internal/translate"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the reconstruction API",
	Long: `Start an HTTP server that provides REST API endpoints for page
reconstruction.

The server provides the following endpoints:
  POST /v1/reconstruct - Reconstruct reading order from OCR fragments
  POST /v1/text        - Clean flat OCR text
  POST /v1/image       - OCR an uploaded page image and reconstruct it
  POST /v1/pinyin      - Annotate text with pinyin readings
  POST /v1/translate   - Translate reconstructed text
  POST /v1/speech      - Synthesize read-aloud audio (premium plan)
  GET  /ws/pages       - Stream page reconstructions over WebSocket
  GET  /health         - Health check endpoint
  GET  /metrics        - Prometheus metrics

Examples:
  hanline serve
  hanline serve --port 8080
  hanline serve --host 0.0.0.0 --port 3000`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		// Extract server configuration with CLI flag overrides
		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}

		maxUploadMB := cfg.Server.MaxUploadMB
		if cmd.Flags().Changed("max-upload-size") {
			v, _ := cmd.Flags().GetInt("max-upload-size")
			maxUploadMB = int64(v)
		}

		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}

		shutdownTimeout, _ := cmd.Flags().GetInt("shutdown-timeout")

		rateLimitEnabled := cfg.Server.RateLimit.Enabled
		if cmd.Flags().Changed("rate-limit-enabled") {
			rateLimitEnabled, _ = cmd.Flags().GetBool("rate-limit-enabled")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		deps, err := buildServerDependencies(cfg)
		if err != nil {
			return err
		}

		serverConfig := server.Config{
			Host:              host,
			Port:              port,
			CORSOrigin:        corsOrigin,
			MaxUploadMB:       maxUploadMB,
			TimeoutSec:        timeout,
			RateLimitEnabled:  rateLimitEnabled,
			RequestsPerMinute: cfg.Server.RateLimit.RequestsPerMinute,
			RequestsPerHour:   cfg.Server.RateLimit.RequestsPerHour,
			MaxRequestsPerDay: cfg.Server.RateLimit.MaxRequestsPerDay,
			MaxDataPerDay:     cfg.Server.RateLimit.MaxDataPerDay,
		}

		srv, err := server.NewServer(serverConfig, deps)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		mux := http.NewServeMux()
		srv.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(timeout) * time.Second,
			WriteTimeout:      time.Duration(timeout) * time.Second,
		}

		go func() {
			slog.Info("Starting reconstruction server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		slog.Info("Starting graceful shutdown", "timeout", fmt.Sprintf("%ds", shutdownTimeout))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
			time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server shutdown completed")
		}

		return nil
	},
}

// buildServerDependencies assembles the injected collaborators from config.
// Translation, speech, and pinyin are optional; their endpoints report
// service unavailable when unconfigured.
func buildServerDependencies(cfg *config.Config) (server.Dependencies, error) {
	var deps server.Dependencies

	provider, err := newOCRProvider(cfg)
	if err != nil {
		return deps, err
	}
	deps.OCR = provider

	deps.Cache = cache.New(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)

	userPlan, err := plan.Parse(cfg.Plan)
	if err != nil {
		return deps, err
	}
	deps.Plan = userPlan

	if cfg.Pinyin.DictFile != "" {
		table, err := pinyin.LoadTable(cfg.Pinyin.DictFile)
		if err != nil {
			return deps, err
		}
		deps.Pinyin = table
	}

	if cfg.Translate.Endpoint != "" {
		deps.Translator = translate.NewClient(translate.Config{
			Endpoint:   cfg.Translate.Endpoint,
			APIKey:     cfg.Translate.APIKey,
			Timeout:    time.Duration(cfg.Translate.TimeoutSec) * time.Second,
			MaxRetries: cfg.Translate.MaxRetries,
		})
	}

	if cfg.Speech.Endpoint != "" {
		deps.Speech = speech.NewClient(speech.Config{
			Endpoint: cfg.Speech.Endpoint,
			APIKey:   cfg.Speech.APIKey,
			Voice:    cfg.Speech.Voice,
		})
	}

	return deps, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("max-upload-size", 20, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 60, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().Bool("rate-limit-enabled", false, "enable rate limiting")
}
