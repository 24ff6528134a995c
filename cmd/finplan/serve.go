package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"finplan/internal/config"
	"finplan/internal/httpapi"
	"finplan/internal/manager"
	"finplan/internal/service"
)

type serveOpts struct {
	addr        string
	staticDir   string
	policy      string
	corsOrigins string
	trainTO     time.Duration
}

func newServeCmd(g *globalOpts) *cobra.Command {
	opts := &serveOpts{}
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Load models and serve the HTTP API",
		Example: "  finplan serve --addr :5000 --models-dir models --policy strict",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			cfg = cfg.Merge(config.Config{Addr: opts.addr, StaticDir: opts.staticDir, StartupPolicy: opts.policy})
			if origins := splitCSV(opts.corsOrigins); len(origins) > 0 {
				cfg.CORS.Enabled = true
				cfg.CORS.Origins = origins
			}
			return runServe(cmd.Context(), cfg, opts.trainTO)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "HTTP listen address, e.g. :5000")
	f.StringVar(&opts.staticDir, "static-dir", "", "Directory with frontend assets served at /")
	f.StringVar(&opts.policy, "policy", "", "Startup policy when models fail to load: strict|degraded")
	f.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (enables CORS)")
	f.DurationVar(&opts.trainTO, "train-timeout", 0, "Timeout for /api/train_all requests (0 = none)")
	return cmd
}

func runServe(parent context.Context, cfg config.Config, trainTimeout time.Duration) error {
	log, closer := newLogger(cfg.Log)
	defer closer.Close()

	policy, err := manager.ParseStartupPolicy(cfg.StartupPolicy)
	if err != nil {
		return err
	}
	a := newApp(cfg, log)
	rep, err := a.manager.Startup(cfg.ModelsDir, policy)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.ModelsDir).Msg("startup load failed")
		return err
	}
	log.Info().Str("state", string(rep.State)).Str("version", rep.Version).Str("dir", rep.Dir).Msg("models loaded")

	advisor := a.advisor()
	if !advisor.Configured() {
		log.Warn().Msg("chat disabled: no API key configured")
	}
	svc := service.New(a.manager, a.trainer, advisor, service.WithLogger(log.With().Str("component", "service").Logger()))

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetTrainTimeout(trainTimeout)
	httpapi.SetStaticDir(cfg.StaticDir)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("finplan listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
