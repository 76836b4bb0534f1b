// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ManuGH/sheetmap/internal/api"
	"github.com/ManuGH/sheetmap/internal/config"
	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping/profilefile"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App owns the long-lived runtime: the HTTP server and, optionally, the
// profile file watcher.
type App struct {
	cfg      config.AppConfig
	logger   zerolog.Logger
	api      *api.Server
	server   *http.Server
	watcher  *profilefile.Watcher
	listener net.Listener
}

// NewApp creates the runtime for cfg on top of an opened store.
func NewApp(cfg config.AppConfig, s store.Store) (*App, error) {
	if s == nil {
		return nil, ErrMissingStore
	}

	apiServer := api.New(api.Config{
		Version:          cfg.Version,
		RateLimitEnabled: cfg.RateLimitEnabled,
		RateLimitRPM:     cfg.RateLimitRPM,
		TracingEnabled:   cfg.TracingEnabled,
	}, s)

	a := &App{
		cfg:    cfg,
		logger: xlog.WithComponent("daemon"),
		api:    apiServer,
		server: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           apiServer.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}

	if cfg.ProfilesWatch && cfg.ProfilesFile != "" {
		a.watcher = profilefile.NewWatcher(cfg.ProfilesFile, s)
		a.watcher.OnSync = func(res profilefile.SyncResult, err error) {
			if err != nil {
				return
			}
			recordSync(res)
			apiServer.RefreshProfileCount(context.Background())
		}
	}
	return a, nil
}

// UseListener makes Run serve on ln instead of listening on cfg.ListenAddr.
func (a *App) UseListener(ln net.Listener) {
	a.listener = ln
}

// Run serves until ctx is cancelled or a component fails, then shuts the
// HTTP server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	ln := a.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", a.cfg.ListenAddr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrServerStartFailed, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().
			Str(xlog.FieldEvent, "server.listening").
			Str("addr", ln.Addr().String()).
			Msg("HTTP server listening")
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := a.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = config.DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a.logger.Info().Str(xlog.FieldEvent, "server.shutdown").Msg("shutting down HTTP server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if a.watcher != nil {
		g.Go(func() error {
			return a.watcher.Run(gctx)
		})
	}

	return g.Wait()
}
