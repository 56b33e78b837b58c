package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"advisory-api/internal/advisor"
	"advisory-api/internal/config"
	"advisory-api/internal/models"
	"advisory-api/internal/monitoring"
	"advisory-api/internal/repositories"
)

// snapshotBatchLimit caps how many portfolios a single run walks through
const snapshotBatchLimit = 1000

// SnapshotScheduler periodically records a summary snapshot for every stored
// portfolio, building the history served by the portfolio history endpoint.
type SnapshotScheduler struct {
	cron          *cron.Cron
	portfolioRepo repositories.PortfolioRepository
	snapshotRepo  repositories.SnapshotRepository
	interval      string
	metrics       monitoring.MetricsService
	logger        *logrus.Logger
}

// NewSnapshotScheduler creates a new snapshot scheduler. metrics may be nil.
func NewSnapshotScheduler(
	cfg config.SchedulerConfig,
	portfolioRepo repositories.PortfolioRepository,
	snapshotRepo repositories.SnapshotRepository,
	metrics monitoring.MetricsService,
	logger *logrus.Logger,
) (*SnapshotScheduler, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.TimeZone, err)
	}

	return &SnapshotScheduler{
		cron:          cron.New(cron.WithLocation(location)),
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		interval:      cfg.SnapshotInterval,
		metrics:       metrics,
		logger:        logger,
	}, nil
}

// Start registers the snapshot job and starts the cron loop
func (s *SnapshotScheduler) Start() error {
	_, err := s.cron.AddFunc(s.interval, s.runSnapshotJob)
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("interval", s.interval).Info("Snapshot scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish
func (s *SnapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Snapshot scheduler stopped")
}

func (s *SnapshotScheduler) runSnapshotJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()

	portfolios, err := s.portfolioRepo.List(ctx, snapshotBatchLimit)
	if err != nil {
		s.logger.Errorf("Snapshot job failed to list portfolios: %v", err)
		if s.metrics != nil {
			s.metrics.IncrementSnapshotErrors()
		}
		return
	}

	taken := 0
	for _, portfolio := range portfolios {
		summary := advisor.Summarize(portfolio.Holdings)
		snapshot := models.SnapshotFromSummary(portfolio.UserID, summary, start.UTC())

		if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
			s.logger.Errorf("Snapshot job failed for user %s: %v", portfolio.UserID, err)
			if s.metrics != nil {
				s.metrics.IncrementSnapshotErrors()
			}
			continue
		}
		taken++
	}

	if s.metrics != nil {
		s.metrics.RecordSnapshotRun(taken, time.Since(start))
	}

	s.logger.WithFields(logrus.Fields{
		"portfolios": len(portfolios),
		"snapshots":  taken,
		"duration":   time.Since(start).String(),
	}).Info("Snapshot job completed")
}
