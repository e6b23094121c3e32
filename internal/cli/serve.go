package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazekit/mazekit/pkg/archive"
	"github.com/mazekit/mazekit/pkg/cache"
	"github.com/mazekit/mazekit/pkg/pipeline"
	"github.com/mazekit/mazekit/pkg/server"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mazekit HTTP API server",
		Long: `Run the mazekit HTTP API server.

Serves maze generation and rendering over REST. Named mazes go
through the configured archive backend. When a redis address is
configured, rendered artifacts are cached there and shared across
server instances; otherwise the local file cache is used.

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("addr") && c.cfg.Server.Addr != "" {
				addr = c.cfg.Server.Addr
			}

			store, err := c.newCache()
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			var keyer cache.Keyer
			if redisAddr := c.cfg.Server.RedisAddr; redisAddr != "" && !c.noCache {
				redisCache, err := cache.NewRedisCache(ctx, redisAddr, "", 0)
				if err != nil {
					return err
				}
				_ = store.Close()
				store = redisCache
				if scope := c.cfg.Server.CacheScope; scope != "" {
					keyer = cache.NewScopedKeyer(nil, scope)
				}
				logger.Info("using redis cache", "addr", redisAddr, "scope", c.cfg.Server.CacheScope)
			}

			runner := pipeline.NewRunner(store, keyer, logger)
			defer runner.Close()

			var recs archive.Store
			if recs, err = c.newStore(ctx); err != nil {
				logger.Warn("archive unavailable", "err", err)
				recs = nil
			} else {
				defer recs.Close()
			}

			srv := server.New(server.Config{
				Runner: runner,
				Store:  recs,
				Logger: logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
