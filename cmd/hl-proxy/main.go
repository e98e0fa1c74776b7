// Command hl-proxy runs the caching reverse proxy for the Hyperliquid API.
//
// Point any SDK or script at http://localhost:18731 instead of the real API;
// /info responses are cached per request type, /exchange passes through and
// invalidates the acting user's entries.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperliquid-tools/hl-proxy/pkg/cache"
	"github.com/hyperliquid-tools/hl-proxy/pkg/config"
	"github.com/hyperliquid-tools/hl-proxy/pkg/logging"
	"github.com/hyperliquid-tools/hl-proxy/pkg/proxy"
	"github.com/hyperliquid-tools/hl-proxy/pkg/upstream"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	store := cache.NewStore()
	up := upstream.NewClient(cfg.UpstreamURL)
	defer up.Close()

	srv := proxy.NewServer(store, up)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("upstream", cfg.UpstreamURL).
		Int("port", cfg.Port).
		Bool("warmup", cfg.Warmup).
		Msg("Proxy starting")

	if cfg.Warmup {
		srv.Warmup(ctx)
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
		}
		return nil
	})

	g.Go(func() error {
		srv.RunSweeper(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Proxy failed")
	}
	logger.Info().Msg("Proxy stopped")
}
