package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/taxdesk/tds-calculator/internal/api"
	"github.com/taxdesk/tds-calculator/internal/bulk"
	"github.com/taxdesk/tds-calculator/internal/config"
	"github.com/taxdesk/tds-calculator/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the calculator over HTTP. Settings come from --config, a .env file and
TDS_* environment variables (TDS_SERVER_PORT, TDS_LOG_LEVEL, ...).`,
		Args: cobra.NoArgs,
		// .env has to be loaded before settings are read
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			found := config.LoadDotEnv()
			if err := a.init(cmd); err != nil {
				return err
			}
			if !found {
				a.logger.Debug().Msg(".env file not found, using environment variables and defaults")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.settings.Server.Port = addr
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.port")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	gin.SetMode(a.settings.Server.Mode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics("tds", reg)

	engine, err := a.engine(metrics)
	if err != nil {
		return err
	}

	router := api.Setup(api.RouterConfig{
		Engine:         engine,
		Processor:      bulk.NewProcessor(engine, a.settings.Bulk.MaxRows),
		Metrics:        metrics,
		Logger:         a.logger,
		MaxUploadBytes: a.settings.Server.MaxUploadBytes(),
	})
	srv := api.NewServer(a.settings.Server.Port, router, a.settings.Server.ReadTimeout, a.settings.Server.WriteTimeout)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", srv.Addr).
			Str("rules", a.registry.Version).
			Str("convention", a.settings.Engine.InterestConvention).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
