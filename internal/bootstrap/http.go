package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/formdesk/formdesk/config"
	httpx "github.com/formdesk/formdesk/internal/http"
	"github.com/formdesk/formdesk/internal/ingest"
	"github.com/formdesk/formdesk/internal/ports"
	"github.com/formdesk/formdesk/internal/service"
)

// ServiceDeps groups the wired dependencies for the HTTP layer.
type ServiceDeps struct {
	Config   *config.AppConfig
	Sessions ports.SessionStore
	API      ports.RecordAPI
	Login    ports.LoginURLBuilder
	Logger   *slog.Logger
}

// BuildHandler assembles router and middleware.
// Order: Recover -> Logging -> Router.
func BuildHandler(deps *ServiceDeps) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := httpx.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	dashboards := service.NewDashboardManager(deps.API, logger)
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Sessions:   deps.Sessions,
		API:        deps.API,
		Dashboards: dashboards,
		Logger:     logger,
	})
	ingestor := ingest.NewIngestor(ingest.Options{
		Sessions:   deps.Sessions,
		SessionTTL: deps.Config.Auth.SessionTTL,
		Logger:     logger,
	})

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:         authSvc,
		Dashboards:   dashboards,
		Ingestor:     ingestor,
		LoginURL:     deps.Login.LoginURL,
		Renderer:     renderer,
		CookieDomain: deps.Config.HTTP.CookieDomain,
		Logger:       logger,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h, nil
}

// RunServer starts the HTTP server and blocks until ctx is canceled or
// the server fails, then shuts down gracefully.
func RunServer(ctx context.Context, deps *ServiceDeps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := BuildHandler(deps)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              deps.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down HTTP server")
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("shutdown: %w", shutdownErr)
		}
		return nil
	})

	return g.Wait()
}
