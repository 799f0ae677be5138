package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"telehealth-api/config"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	// sweepTimeout bounds a single sweep run
	sweepTimeout = 20 * time.Second

	defaultSweepBatch = 500
)

// AlertExpiryService deletes alerts whose expiresAt has passed.
//
// Expiry is eventually consistent: an alert stays listable for up to one
// SweepInterval after it expires. Call Stop() during graceful shutdown.
type AlertExpiryService struct {
	alertRepo    repository.AlertRepository
	auditService AuditService
	log          *logrus.Logger
	interval     time.Duration
	batchSize    int
	now          func() time.Time

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewAlertExpiryService(alertRepo repository.AlertRepository, auditService AuditService, log *logrus.Logger, cfg config.AlertConfig) *AlertExpiryService {
	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = defaultSweepBatch
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &AlertExpiryService{
		alertRepo:    alertRepo,
		auditService: auditService,
		log:          log,
		interval:     cfg.SweepInterval,
		batchSize:    cfg.SweepBatch,
		now:          time.Now,
		stopChan:     make(chan struct{}),
	}
}

// Start sweeps once immediately and then every interval until Stop is called.
func (s *AlertExpiryService) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Infof("Alert expiry sweeper started: interval=%s batch=%d", s.interval, s.batchSize)
}

// Stop gracefully shuts down the sweeper and waits for an in-flight run.
// Safe to call multiple times.
func (s *AlertExpiryService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Alert expiry sweeper stopped")
	}
}

func (s *AlertExpiryService) loop() {
	defer s.wg.Done()

	s.runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *AlertExpiryService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.SweepOnce(ctx); err != nil {
		s.log.Warnf("Failed to sweep expired alerts: %+v", err)
	}
}

// SweepOnce deletes every alert expired as of now, batch by batch, and returns how many were removed.
func (s *AlertExpiryService) SweepOnce(ctx context.Context) (int64, error) {
	now := s.now()
	var total int64

	for {
		deleted, err := s.alertRepo.DeleteExpired(ctx, now, s.batchSize)
		total += deleted
		if err != nil {
			return total, err
		}
		if deleted < int64(s.batchSize) {
			break
		}
	}

	if total > 0 {
		s.log.WithFields(logrus.Fields{"deleted": total, "cutoff": now}).Info("Expired alerts swept")
		s.auditService.LogDelete(ctx, nil, entity.AuditActionAlertExpire, "alert", "", entity.JSON{
			"count":  total,
			"cutoff": now,
		})
	}

	return total, nil
}
