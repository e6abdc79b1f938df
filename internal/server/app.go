// Package server wires the siteauth process together: configuration, the
// Credential Store, the Auth Service, the HTTP API and the gRPC health
// endpoint, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/siteauth/internal/logging"
	"github.com/dmitrijs2005/siteauth/internal/server/config"
	"github.com/dmitrijs2005/siteauth/internal/server/services"
	"github.com/dmitrijs2005/siteauth/internal/server/storage"

	gs "github.com/dmitrijs2005/siteauth/internal/server/grpc"
	hs "github.com/dmitrijs2005/siteauth/internal/server/http"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *services.UserService
	store       io.Closer
}

// NewApp opens the configured store and builds the services. The caller must
// eventually call Run, which releases the store on exit.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, closer, err := storage.Open(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(repo, c, logger)

	return &App{config: c, logger: logger, userService: us, store: closer}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a signal arrives or one of the servers
// fails. It returns the first server error, if any.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	httpServer := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService,
		app.config.SecretKey, app.config.AllowedOrigins)
	run("http", httpServer.Run)

	if app.config.EndpointAddrGRPC != "" {
		healthServer := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)
		run("grpc", healthServer.Run)
	}

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "closing credential store", "error", err)
		firstErr = errors.Join(firstErr, err)
	}

	app.logger.Info(ctx, "App stopped")
	return firstErr
}
