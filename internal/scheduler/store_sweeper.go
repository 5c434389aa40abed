// Package scheduler contains the background jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/config"
)

type StoreSweepConfig struct {
	CronSchedule string
	Enabled      bool
}

// StoreSweeperService periodically evicts expired datasets from the
// in-memory store and logs occupancy.
type StoreSweeperService struct {
	scheduler       *gocron.Scheduler
	store           datastore.DatasetStore
	config          StoreSweepConfig
	sweepRunning    bool
	sweepMutex      sync.Mutex
	lastSweepAt     time.Time
	lastSweepEvents int
}

func NewStoreSweeperService(store datastore.DatasetStore, cfg *config.Config) *StoreSweeperService {
	sweepConfig := StoreSweepConfig{
		CronSchedule: cfg.StoreSweep.CronSchedule,
		Enabled:      cfg.StoreSweep.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
	}).Info("scheduler: store sweep configuration loaded")

	return &StoreSweeperService{
		scheduler: scheduler,
		store:     store,
		config:    sweepConfig,
	}
}

func (s *StoreSweeperService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: store sweep disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: starting store sweep job")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Sweep(); err != nil {
			logrus.WithError(err).Error("scheduler: store sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling store sweep: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping store sweep job")
		s.scheduler.Stop()
	}()

	return nil
}

// Sweep runs one eviction pass. Safe against overlapping runs.
func (s *StoreSweeperService) Sweep() error {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	if s.sweepRunning {
		logrus.Warn("scheduler: store sweep already running")
		return nil
	}

	s.sweepRunning = true
	defer func() {
		s.sweepRunning = false
		s.lastSweepAt = time.Now()
	}()

	before := s.store.Count()
	s.store.DeleteExpired()
	after := s.store.Count()
	s.lastSweepEvents = before - after

	logrus.WithFields(logrus.Fields{
		"evicted":  before - after,
		"retained": after,
	}).Info("scheduler: store sweep complete")

	return nil
}
