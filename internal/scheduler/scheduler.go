// Package scheduler runs the periodic maintenance jobs: pruning the search
// cache, expiring stale workspace invites and evicting idle sessions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	CacheCleanupSpec  = "@every 10m"
	InviteExpirySpec  = "@hourly"
	SessionEvictSpec  = "@every 5m"
	DefaultSessionTTL = 30 * time.Minute
)

// CacheCleaner drops expired search cache entries.
type CacheCleaner interface {
	CleanExpired() int
}

// InviteExpirer marks pending invites past their expiry.
type InviteExpirer interface {
	ExpirePendingInvites(ctx context.Context, now time.Time) (int64, error)
}

// SessionEvicter drops in-memory sessions idle for longer than maxIdle.
type SessionEvicter interface {
	EvictIdle(maxIdle time.Duration) int
}

// Jobs are the collaborators the scheduler maintains. A nil collaborator
// skips its job.
type Jobs struct {
	Cache          CacheCleaner
	Invites        InviteExpirer
	Sessions       SessionEvicter
	SessionIdleTTL time.Duration
}

// Scheduler wraps robfig/cron and owns the maintenance jobs.
type Scheduler struct {
	cron        *cron.Cron
	cache       CacheCleaner
	invites     InviteExpirer
	sessions    SessionEvicter
	sessionIdle time.Duration
	log         *zap.Logger
	now         func() time.Time
}

func New(jobs Jobs, log *zap.Logger) *Scheduler {
	log = log.Named("scheduler")
	idle := jobs.SessionIdleTTL
	if idle <= 0 {
		idle = DefaultSessionTTL
	}
	return &Scheduler{
		cron:        cron.New(cron.WithLogger(cronLogger{log.Sugar()})),
		cache:       jobs.Cache,
		invites:     jobs.Invites,
		sessions:    jobs.Sessions,
		sessionIdle: idle,
		log:         log,
		now:         time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cache != nil {
		if _, err := s.cron.AddFunc(CacheCleanupSpec, s.CleanCache); err != nil {
			return fmt.Errorf("cron.AddFunc cache cleanup: %w", err)
		}
	}
	if s.invites != nil {
		if _, err := s.cron.AddFunc(InviteExpirySpec, func() { s.ExpireInvites(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc invite expiry: %w", err)
		}
	}

	if s.sessions != nil {
		if _, err := s.cron.AddFunc(SessionEvictSpec, s.EvictSessions); err != nil {
			return fmt.Errorf("cron.AddFunc session eviction: %w", err)
		}
	}

	s.cron.Start()
	s.log.Info("cron started", zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.log.Info("cron stopped")
}

func (s *Scheduler) CleanCache() {
	if n := s.cache.CleanExpired(); n > 0 {
		s.log.Info("search cache cleaned", zap.Int("removed", n))
	}
}

func (s *Scheduler) ExpireInvites(ctx context.Context) {
	n, err := s.invites.ExpirePendingInvites(ctx, s.now().UTC())
	if err != nil {
		s.log.Error("invite expiry failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("invites expired", zap.Int64("count", n))
	}
}

func (s *Scheduler) EvictSessions() {
	if n := s.sessions.EvictIdle(s.sessionIdle); n > 0 {
		s.log.Info("idle sessions evicted", zap.Int("count", n))
	}
}

// cronLogger routes cron's own logging to zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
