package scheduler

import (
	"context"
	"time"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/repositories/game"
)

// DefaultPruneInterval is how often round history is pruned
const DefaultPruneInterval = 24 * time.Hour

// RetentionScheduler prunes round history older than the retention period
type RetentionScheduler struct {
	scheduler *Scheduler
	repo      game.Repository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	log       *logging.Logger
}

// NewRetentionScheduler creates a pruning scheduler for repo. A zero interval
// uses DefaultPruneInterval.
func NewRetentionScheduler(repo game.Repository, retention, interval time.Duration) *RetentionScheduler {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	return &RetentionScheduler{
		scheduler: NewScheduler(),
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		log:       logging.Default.WithField("component", "retention"),
	}
}

// Start schedules the prune task. A zero retention keeps history forever and
// schedules nothing.
func (s *RetentionScheduler) Start(ctx context.Context) {
	if s.retention <= 0 {
		s.log.Info("History retention disabled")
		return
	}
	s.scheduler.AddTask("history_pruning", s.interval, s.Prune)
	s.scheduler.Start(ctx)
}

// Stop stops the scheduler
func (s *RetentionScheduler) Stop() {
	s.scheduler.Stop()
}

// Prune removes rounds completed before now minus the retention period
func (s *RetentionScheduler) Prune(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.repo.PruneRoundResults(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.log.Info("Pruned %d rounds completed before %s", removed, cutoff.Format(time.RFC3339))
	}
	return nil
}
