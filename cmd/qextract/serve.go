// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/bancoquestoes/qextract/internal/cache"
	"github.com/bancoquestoes/qextract/internal/config"
	"github.com/bancoquestoes/qextract/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, pipeline, err := root.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []server.Option{server.WithLogger(logger)}
			if rc := openCache(ctx, cfg.Redis, logger); rc != nil {
				defer rc.Close()
				opts = append(opts, server.WithCache(rc))
			}

			var auth server.Authenticator = server.HeaderAuthenticator{}
			if len(cfg.AuthTokens) > 0 {
				auth = server.NewTokenAuthenticator(cfg.AuthTokens)
			}

			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           server.New(pipeline, auth, opts...).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", "addr", cfg.ListenAddr, "extractors", pipeline.RegisteredExtractors())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// openCache connects to redis when configured. The service runs without a
// cache when redis is unreachable.
func openCache(ctx context.Context, rc config.RedisConfig, logger *slog.Logger) *cache.ResultCache {
	if rc.Address == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Address,
		Password: rc.Password,
		DB:       rc.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, response cache disabled", "addr", rc.Address, "error", err)
		_ = rdb.Close()
		return nil
	}
	logger.Info("response cache enabled", "addr", rc.Address, "ttl", rc.TTL())
	return cache.NewResultCache(rdb, rc.TTL())
}
