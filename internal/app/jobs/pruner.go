// Package jobs holds background work scheduled alongside the API server.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrAlreadyStarted is returned by Start on a running pruner.
var ErrAlreadyStarted = errors.New("pruner already started")

// RunDeleter is the part of the simulation run repository the pruner uses.
type RunDeleter interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunPruner periodically deletes stored simulation runs older than MaxAge.
type RunPruner struct {
	repo     RunDeleter
	schedule string
	maxAge   time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewRunPruner creates a pruner. schedule uses the standard five-field cron
// syntax or a descriptor such as "@daily".
func NewRunPruner(repo RunDeleter, schedule string, maxAge time.Duration, log zerolog.Logger) *RunPruner {
	return &RunPruner{
		repo:     repo,
		schedule: schedule,
		maxAge:   maxAge,
		log:      log.With().Str("component", "run_pruner").Logger(),
		now:      time.Now,
	}
}

// PruneOnce deletes every run created before now minus the max age.
func (p *RunPruner) PruneOnce(ctx context.Context) (int64, error) {
	if p.maxAge <= 0 {
		return 0, nil
	}
	cutoff := p.now().Add(-p.maxAge)
	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune simulation runs: %w", err)
	}
	p.log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned old simulation runs")
	return deleted, nil
}

// Start registers the schedule and starts the cron runner. Jobs stop when
// ctx is cancelled or Stop is called.
func (p *RunPruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithLogger(cronLogger{p.log}))
	if _, err := c.AddFunc(p.schedule, func() {
		if _, err := p.PruneOnce(runCtx); err != nil {
			p.log.Error().Err(err).Msg("Scheduled prune failed")
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("invalid prune schedule %q: %w", p.schedule, err)
	}

	c.Start()
	p.cron = c
	p.cancel = cancel
	p.log.Info().Str("schedule", p.schedule).Dur("maxAge", p.maxAge).Msg("Run pruner started")
	return nil
}

// Stop halts the schedule and waits for a running prune to finish or ctx to
// expire.
func (p *RunPruner) Stop(ctx context.Context) {
	p.mu.Lock()
	c, cancel := p.cron, p.cancel
	p.cron, p.cancel = nil, nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	done := c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		p.log.Warn().Msg("Run pruner did not stop before the deadline")
	}
	cancel()
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
