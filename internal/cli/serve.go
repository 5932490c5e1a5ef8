package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questcanvas/pkg/cache"
	"github.com/matzehuels/questcanvas/pkg/httpapi"
	"github.com/matzehuels/questcanvas/pkg/pipeline"
)

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, cacheURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor API over HTTP",
		Long: `Serve the editor API over HTTP.

Editor front ends post documents and graphs as JSON to the /v1 endpoints:
parse, generate, layout, apply, lint and duplicates. GET /healthz reports the
version. The server stops gracefully on interrupt.

The listen address defaults to [serve] addr in the config file, then to
` + defaultAddr + `. With --cache-url (or [serve] cache_url) layouts are
cached in Redis so several servers share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Serve.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}

			if cacheURL == "" {
				cacheURL = c.config.Serve.CacheURL
			}
			store, err := c.serveCache(cmd.Context(), cacheURL)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "serve:"), c.Logger)
			defer runner.Close()

			printInfo("Listening on http://%s", addr)
			return httpapi.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config or "+defaultAddr+")")
	cmd.Flags().StringVar(&cacheURL, "cache-url", "", "redis:// URL of a shared layout cache")

	return cmd
}

func (c *CLI) serveCache(ctx context.Context, url string) (cache.Cache, error) {
	if url == "" || c.noCache {
		return newCache(c.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using shared redis cache")
	return rc, nil
}
