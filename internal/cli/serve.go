package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minid3/internal/server"
	"github.com/matzehuels/minid3/pkg/cache"
	"github.com/matzehuels/minid3/pkg/pipeline"
)

// serveCommand creates the serve command for the chart preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisDB   int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart preview HTTP server",
		Long: `Run an HTTP server that stores chart configs and renders them on request.

Charts and artifacts are kept in Redis when --redis (or ` + envRedisAddr + `) is set,
otherwise in the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				store cache.Cache
				err   error
			)
			switch {
			case redisAddr != "":
				store, err = cache.NewRedisCache(ctx, cache.RedisConfig{
					Addr:     redisAddr,
					Password: os.Getenv("MINID3_REDIS_PASSWORD"),
					DB:       redisDB,
					Prefix:   appName + ":",
				})
				if err != nil {
					return err
				}
				logger.Info("using redis cache", "addr", redisAddr, "db", redisDB)
			case noCache:
				printWarning("Running without a cache: stored charts are lost immediately")
				store = cache.NewNullCache()
			default:
				if store, err = newCache(false); err != nil {
					return err
				}
			}

			runner := pipeline.NewRunner(store, nil, logger)
			defer runner.Close()
			return server.New(runner, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", os.Getenv(envRedisAddr), "Redis address for the shared cache")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching (charts cannot be retrieved)")
	return cmd
}
