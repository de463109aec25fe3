package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Putcho1994/Discadelta/internal/api"
	"github.com/Putcho1994/Discadelta/pkg/cache"
	"github.com/Putcho1994/Discadelta/pkg/config"
	"github.com/Putcho1994/Discadelta/pkg/store"
)

// serveCommand creates the serve command for running the HTTP solve API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		memoryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve API",
		Long: `Run the HTTP solve API.

POST /v1/solve solves a posted tree definition and persists it under a
generated or caller-supplied name; GET /v1/solve/{id} retrieves a
previously solved tree by that name.

Configuration (cache backend, store connection, listen address) is read
from the discadelta config file unless overridden by flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath, memoryOnly)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.toml (default: XDG config path)")
	cmd.Flags().BoolVar(&memoryOnly, "memory", false, "use an in-memory store instead of MongoDB")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addrFlag, configPath string, memoryOnly bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	var st store.Store
	if memoryOnly || cfg.Store.URI == "" {
		st = store.NewMemoryStore()
	} else {
		st, err = store.NewMongoStore(ctx, cfg.Store.URI, cfg.Store.Database, cfg.Store.Collection)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
	}
	defer st.Close(ctx)

	resultCache, err := newResultCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer resultCache.Close()

	server := api.New(st, resultCache, cfg.Cache.TTL())
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	printSuccess("Serving on %s", addr)
	printNewline()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newResultCache builds the cache backend the server uses, based on
// config rather than the CLI's file-cache-by-default convention.
func newResultCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
		return cache.NewRedisCache(client), nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}
