package workflow

import (
	"context"
	"sync"
	"time"

	"prosty-screening/internal/session"
)

// Manager keeps one Workflow per session id, hydrated from the shared slot
// store the first time the session is used.
type Manager struct {
	store session.SlotStore
	deps  Deps
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*managed
}

type managed struct {
	wf       *Workflow
	lastUsed time.Time
}

func NewManager(store session.SlotStore, deps Deps) *Manager {
	return &Manager{
		store:    store,
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*managed),
	}
}

func (m *Manager) Get(ctx context.Context, sessionID string) *Workflow {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.lastUsed = m.now()
		return s.wf
	}

	deps := m.deps
	// Restore timers are per session
	deps.Restorer = nil
	if m.deps.Restorer != nil {
		deps.Restorer = NewCoordinator(m.deps.Restorer.settle, m.deps.Restorer.highlight)
	}

	w := New(ctx, session.NewNamespaced(m.store, sessionID), deps)
	m.sessions[sessionID] = &managed{wf: w, lastUsed: m.now()}
	return w
}

// EvictIdle drops in-memory workflows unused for longer than maxIdle and
// reports how many went. Persisted slots stay, so an evicted session is
// hydrated again on its next request. Sessions with a search or campaign
// creation in flight are kept.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	evicted := 0
	for id, s := range m.sessions {
		if !s.lastUsed.Before(cutoff) {
			continue
		}
		if searching, creating := s.wf.Busy(); searching || creating {
			continue
		}
		delete(m.sessions, id)
		evicted++
	}
	return evicted
}

// Len returns the number of sessions held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
