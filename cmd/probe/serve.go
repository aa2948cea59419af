// Serve command: runs the simulated device and the property API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/probe/internal/devsim"
	"github.com/mesh-intelligence/probe/internal/server"
)

var (
	flagListen      string
	flagSimInterval time.Duration
	flagVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the property server on a simulated device",
	Long: `Serve starts a simulated motor-controller device and exposes its
property tree over HTTP until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default: config listen_addr or "+defaultListenAddr+")")
	serveCmd.Flags().DurationVar(&flagSimInterval, "sim-interval", 10*time.Millisecond, "simulation step interval")
	serveCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log every request")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dev := devsim.NewDevice()
	go dev.Run(ctx, flagSimInterval)

	addr := flagListen
	if addr == "" {
		addr = configListenAddr
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: server.New(dev.Introspectable(), logger).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("probe server listening",
		zap.String("addr", addr),
		zap.Duration("sim_interval", flagSimInterval),
	)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("probe server stopped")
	return nil
}

// newLogger builds the serve logger: production config, debug level
// with --verbose so the access log shows up.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
