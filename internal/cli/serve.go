package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagebind/pagebind/internal/api"
	"github.com/pagebind/pagebind/pkg/cache"
	"github.com/pagebind/pagebind/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal before the server is torn down.
const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve command for running the HTTP conversion API.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Long: `Run the HTTP conversion API.

Exposes POST /v1/convert (multipart image upload, PDF response) and
POST /v1/merge, plus GET /healthz for probes. By default results are
cached in the local file cache; with --redis a shared Redis instance
is used instead, so multiple serve processes share probe and render
results.

The server shuts down gracefully when the process receives SIGINT or
SIGTERM, finishing in-flight requests first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	store, err := serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks the cache backend for the server: Redis when an
// address is given, the local file cache otherwise.
func serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		return store, nil
	}
	return newCache(false), nil
}
