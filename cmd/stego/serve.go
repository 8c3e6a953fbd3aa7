package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yyyoichi/stride_stego/internal/config"
	"github.com/yyyoichi/stride_stego/internal/server"
	"github.com/yyyoichi/stride_stego/store"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		cfgFile string
		v       = viper.New()
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger, err := newLogger(level)
			if err != nil {
				return err
			}
			defer logger.Sync()

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if cfg.Token == "" {
				logger.Warn("no token configured, uploads are not authenticated")
			}
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           server.New(cfg, st, server.TokenAuth(cfg.Token), logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return run(cmd.Context(), srv, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("addr", config.DefaultAddr, "listen address")
	flags.String("db", config.DefaultDBPath, "SQLite database path")
	flags.String("token", "", "bearer token required for uploads")
	flags.Int64("max-carrier-size", config.DefaultMaxCarrierSize, "maximum carrier size in bytes")
	flags.Int64("max-message-size", config.DefaultMaxMessageSize, "maximum message size in bytes")
	flags.Int("max-width", config.DefaultMaxWidth, "maximum image width after normalization")
	flags.Int("max-height", config.DefaultMaxHeight, "maximum image height after normalization")
	flags.Int("gallery-limit", config.DefaultGalleryLimit, "number of objects listed by the gallery")
	for _, name := range []string{"addr", "db", "token", "max-carrier-size", "max-message-size", "max-width", "max-height", "gallery-limit"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	// log-level is a persistent flag of the root command and only merged
	// into cmd.Flags() once parsing starts.
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		_ = v.BindPFlag("log-level", cmd.Flags().Lookup("log-level"))
	}
	return cmd
}

func run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
