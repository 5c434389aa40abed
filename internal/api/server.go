package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/api/handler"
	"github.com/oddsdesk/bet-metrics-api/internal/api/handler/router"
	"github.com/oddsdesk/bet-metrics-api/internal/config"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/analyzing"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/authenticating"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/ingesting"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/normalizing"
	"github.com/oddsdesk/bet-metrics-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	ingester ingesting.Ingester,
	analyzer analyzing.Analyzer,
	normalizer normalizing.Normalizer,
	authenticator authenticating.Authenticator,
	store datastore.DatasetStore,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Datasets(cfg, ingester, store)...),
		router.WithRoutes(handler.Analysis(analyzer, store)...),
		router.WithRoutes(handler.Incidents(normalizer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Run starts the HTTP server and blocks until an interrupt signal arrives
// or the context is cancelled, then shuts down gracefully.
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server shut down cleanly")
	return nil
}
