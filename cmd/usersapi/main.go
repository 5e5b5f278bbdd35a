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
	"github.com/spf13/viper"

	"github.com/alfagnish/usuarios-api/internal/config"
	"github.com/alfagnish/usuarios-api/internal/events"
	"github.com/alfagnish/usuarios-api/internal/logging"
	"github.com/alfagnish/usuarios-api/internal/server"
	"github.com/alfagnish/usuarios-api/internal/users"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configDir string

	cmd := &cobra.Command{
		Use:           "usersapi",
		Short:         "Serve the users CRUD API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, configDir)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configDir, "config-dir", "config", "directory holding default.json and <env>.json")
	flags.Int("port", 4000, "HTTP listen port (overrides PORT)")
	flags.String("env", config.EnvDevelopment, "runtime environment (overrides APP_ENV)")
	bindFlag(v, "port", cmd)
	bindFlag(v, "env", cmd)

	return cmd
}

// bindFlag makes an explicitly set flag win over files and environment.
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command) {
	_ = v.BindPFlag(key, cmd.Flags().Lookup(key))
}

func run(ctx context.Context, v *viper.Viper, configDir string) error {
	// 1. Load configuration from files, environment and flags.
	cfg, err := config.Load(v, configDir)
	if err != nil {
		bootLog := logging.New(os.Stderr, "info", false)
		bootLog.Error().Err(err).Msg("failed to load config")
		return err
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msgf("App: %s", cfg.Name)
	log.Info().Msgf("DB server: %s", cfg.DB.Host)
	dbLog := logging.Namespace(log, "app:db")
	dbLog.Debug().Str("host", cfg.DB.Host).Msg("connected to database")

	// 2. Create the in-memory store and change feed.
	store := users.NewSeededStore()
	hub := events.NewHub()

	// 3. Start the HTTP server.
	srv := &http.Server{
		Addr:        cfg.ListenAddr(),
		Handler:     server.New(cfg, log, store, hub),
		ReadTimeout: 30 * time.Second,
		// No write timeout: the change feed holds connections open.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("env", cfg.Env).Msgf("listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}
