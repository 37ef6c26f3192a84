package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/internal/config"
	"github.com/aretw0/aniame/internal/logging"
	httpAdapter "github.com/aretw0/aniame/pkg/adapters/http"
	"github.com/aretw0/aniame/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var configPath, addr, redisAddr string

	cmd := &cobra.Command{
		Use:   "serve [dictionary]",
		Short: "Start the validation HTTP server",
		Long: `Serves the schemas of a dictionary over HTTP. Settings come from --config
(YAML or JSON); flags override the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				cfg.Dictionary = args[0]
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				cfg.Redis.Addr = redisAddr
			}
			if cfg.Dictionary == "" {
				return errors.New("no dictionary: pass one as argument or set it in the config file")
			}

			logger := a.logger
			if configPath != "" && !cmd.Flags().Changed("log-level") {
				level, err := logging.ParseLevel(cfg.Log.Level)
				if err != nil {
					return err
				}
				logger = logging.NewWithFormat(a.stderr, cfg.Log.Format, level)
			}

			refOpts, closeRefs, err := refOptions(cfg.Redis)
			if err != nil {
				return err
			}
			defer closeRefs()

			opts := append([]aniame.Option{
				aniame.WithDictionaryFile(cfg.Dictionary),
				aniame.WithLogger(logger),
				aniame.WithConcurrency(cfg.Concurrency),
			}, refOpts...)

			var handlerOpts []httpAdapter.Option
			handlerOpts = append(handlerOpts, httpAdapter.WithLogger(logger))
			if cfg.Metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				m, err := observability.NewMetrics(reg)
				if err != nil {
					return err
				}
				opts = append(opts, aniame.WithMetrics(m))
				handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
			}

			eng, err := aniame.New(opts...)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpAdapter.NewHandler(eng, handlerOpts...),
				ReadHeaderTimeout: 10 * time.Second,
			}
			if a.color {
				a.renderer().PrintBanner(aniame.Version)
			}
			return serve(cmd.Context(), srv, logger.With("dictionary", cfg.Dictionary, "schemas", len(eng.Schemas())))
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address holding foreign keys for ref checks")
	return cmd
}

// serve runs srv until it fails, ctx is done or the process is interrupted.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting aniame server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
