package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuns struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakeRuns) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, nil
}

func (f *fakeRuns) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestPruneOnce(t *testing.T) {
	repo := &fakeRuns{}
	p := NewRunPruner(repo, "@daily", 48*time.Hour, zerolog.Nop())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	deleted, err := p.PruneOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), repo.cutoffs[0])
}

func TestPruneOnce_DisabledAndFailing(t *testing.T) {
	repo := &fakeRuns{}
	deleted, err := NewRunPruner(repo, "@daily", 0, zerolog.Nop()).PruneOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Zero(t, repo.calls())

	repo.err = errors.New("connection reset")
	_, err = NewRunPruner(repo, "@daily", time.Hour, zerolog.Nop()).PruneOnce(context.Background())
	assert.ErrorIs(t, err, repo.err)
}

func TestStart_RunsOnSchedule(t *testing.T) {
	repo := &fakeRuns{}
	p := NewRunPruner(repo, "@every 1s", time.Hour, zerolog.Nop())

	require.NoError(t, p.Start(context.Background()))
	assert.ErrorIs(t, p.Start(context.Background()), ErrAlreadyStarted)

	assert.Eventually(t, func() bool { return repo.calls() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.Stop(ctx)
	p.Stop(ctx)
}

func TestStart_InvalidSchedule(t *testing.T) {
	p := NewRunPruner(&fakeRuns{}, "every tuesday", time.Hour, zerolog.Nop())
	assert.Error(t, p.Start(context.Background()))
}
