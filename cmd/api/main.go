package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/api"
	"github.com/oddsdesk/bet-metrics-api/internal/config"
	"github.com/oddsdesk/bet-metrics-api/internal/scheduler"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/analyzing"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/authenticating"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/ingesting"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/normalizing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := datastore.NewDatasetStore(time.Duration(cfg.Datasets.TTLMinutes) * time.Minute)

	ingester := ingesting.NewService()
	analyzer := analyzing.NewService()
	normalizer := normalizing.NewService()
	authenticator := authenticating.NewService(cfg)

	sweeper := scheduler.NewStoreSweeperService(store, cfg)
	if err := sweeper.Start(ctx); err != nil {
		logrus.WithError(err).Error("could not start the store sweep scheduler")
	}

	server, err := api.New(cfg, ingester, analyzer, normalizer, authenticator, store)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
