package onesum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	promcollectors "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/onesum/internal/api"
	"github.com/manifest-network/onesum/internal/config"
	"github.com/manifest-network/onesum/internal/metrics"
	"github.com/manifest-network/onesum/internal/metrics/collectors"
)

const shutdownTimeout = 5 * time.Second

var serveConfig config.ServeConfig

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checksum operations over HTTP",
	Long: `Serve exposes compute, verify, flip and sweep as JSON endpoints under /v1 and
the Prometheus metrics under /metrics.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		serveConfig = config.LoadServeConfigFromCLI()
		if err := serveConfig.Validate(); err != nil {
			return fmt.Errorf("invalid serve configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "serveConfig", serveConfig)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		return serve(ctx, serveConfig)
	},
}

func serve(ctx context.Context, cfg config.ServeConfig) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		promcollectors.NewGoCollector(),
		promcollectors.NewProcessCollector(promcollectors.ProcessCollectorOpts{}),
	)

	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return pkgerrors.WithMessage(err, "failed to register metrics")
	}
	sweeps := &collectors.SweepStore{}
	if err := reg.Register(collectors.NewLastSweepCollector(sweeps)); err != nil {
		return pkgerrors.WithMessage(err, "failed to register sweep collector")
	}

	if cfg.EnablePrometheus {
		metricsServer, err := metrics.CreateMetricsServer(reg, cfg.PrometheusAddr)
		if err != nil {
			return pkgerrors.WithMessage(err, "failed to start metrics server")
		}
		defer shutdown(metricsServer)
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(recorder, sweeps, cfg.MaxConcurrency).Handler())
	mux.Handle("/metrics", metrics.Handler(reg))

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return pkgerrors.WithMessage(err, "failed to listen")
	}
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ln)
	}()
	slog.Info("Listening", "address", ln.Addr().String())

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.WithMessage(err, "server stopped")
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdown(server)
		return nil
	}
}

func shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Failed to shut down server", "error", err)
	}
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}

func init() {
	ServeCmd.Flags().StringP("addr", "a", "0.0.0.0:8080", "Address and port of the HTTP server")
	ServeCmd.Flags().Uint("sweep-concurrency", 8, "Maximum number of variants verified concurrently per sweep request (advanced)")
	ServeCmd.Flags().Bool("enable-prometheus", false, "Enable a dedicated Prometheus metrics server")
	ServeCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(ServeCmd.Flags()); err != nil {
		slog.Error("Failed to bind ServeCmd flags", "error", err)
	}
}
