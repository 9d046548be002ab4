package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prosty-screening/internal/search"
)

type fakeExpirer struct {
	calls []time.Time
	n     int64
	err   error
}

func (f *fakeExpirer) ExpirePendingInvites(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return f.n, f.err
}

type fakeEvicter struct {
	idle []time.Duration
}

func (f *fakeEvicter) EvictIdle(maxIdle time.Duration) int {
	f.idle = append(f.idle, maxIdle)
	return 1
}

type fakeProvider struct{}

func (fakeProvider) Search(context.Context, string) ([]search.CandidateResult, error) {
	return []search.CandidateResult{{ID: "1"}}, nil
}

func TestCleanCache_RemovesExpiredEntries(t *testing.T) {
	cache := search.NewCachedProvider(fakeProvider{}, time.Nanosecond)
	cache.Set("", "golang", []search.CandidateResult{{ID: "1"}})
	time.Sleep(time.Millisecond)

	s := New(Jobs{Cache: cache}, zap.NewNop())
	s.CleanCache()
	assert.Equal(t, 0, cache.Len())
}

func TestExpireInvites_UsesCurrentTime(t *testing.T) {
	exp := &fakeExpirer{n: 2}
	s := New(Jobs{Invites: exp}, zap.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.ExpireInvites(context.Background())
	require.Len(t, exp.calls, 1)
	assert.Equal(t, fixed, exp.calls[0])

	exp.err = errors.New("db down")
	s.ExpireInvites(context.Background())
	assert.Len(t, exp.calls, 2)
}

func TestEvictSessions_UsesConfiguredIdleTTL(t *testing.T) {
	ev := &fakeEvicter{}
	New(Jobs{Sessions: ev, SessionIdleTTL: 10 * time.Minute}, zap.NewNop()).EvictSessions()
	New(Jobs{Sessions: ev}, zap.NewNop()).EvictSessions()
	assert.Equal(t, []time.Duration{10 * time.Minute, DefaultSessionTTL}, ev.idle)
}

func TestStart_RegistersOnlyConfiguredJobs(t *testing.T) {
	s := New(Jobs{
		Cache:    search.NewCachedProvider(fakeProvider{}, time.Minute),
		Invites:  &fakeExpirer{},
		Sessions: &fakeEvicter{},
	}, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 3)
	s.Stop(context.Background())

	s = New(Jobs{Invites: &fakeExpirer{}}, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop(context.Background())
}
