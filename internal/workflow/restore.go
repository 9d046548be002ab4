package workflow

import (
	"sync"
	"time"

	"prosty-screening/internal/session"
)

const (
	DefaultSettleDelay       = 100 * time.Millisecond
	DefaultHighlightDuration = 2 * time.Second
)

// Origin marks where a navigation came from.
type Origin string

const OriginCandidateProfile Origin = "candidate-profile"

type Navigation struct {
	From Origin `json:"from"`
}

// Viewport is the client surface the coordinator scrolls and highlights.
type Viewport interface {
	ScrollTo(offset int)
	ScrollIntoView(candidateID string)
	Highlight(candidateID string)
	ClearHighlight(candidateID string)
}

// Restoration describes what a client should do when returning to the results.
type Restoration struct {
	ScrollOffset  int    `json:"scroll_offset"`
	HighlightID   string `json:"highlight_id,omitempty"`
	SettleDelayMS int64  `json:"settle_delay_ms"`
	HighlightMS   int64  `json:"highlight_ms"`
}

type RestoreState int

const (
	StateNormal RestoreState = iota
	StateReturning
)

func (s RestoreState) String() string {
	if s == StateReturning {
		return "returning"
	}
	return "normal"
}

// Coordinator restores scroll position and highlights the last viewed
// candidate after the user comes back from a candidate profile.
type Coordinator struct {
	settle    time.Duration
	highlight time.Duration

	mu    sync.Mutex
	state RestoreState
}

func NewCoordinator(settle, highlight time.Duration) *Coordinator {
	return &Coordinator{settle: settle, highlight: highlight}
}

func (c *Coordinator) State() RestoreState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Plan decides whether nav triggers a restoration and what it would do.
func (c *Coordinator) Plan(nav Navigation, st *session.State) (Restoration, bool) {
	if nav.From != OriginCandidateProfile {
		return Restoration{}, false
	}
	r := Restoration{
		ScrollOffset:  st.ScrollOffset,
		SettleDelayMS: c.settle.Milliseconds(),
		HighlightMS:   c.highlight.Milliseconds(),
	}
	if st.LastViewed != nil {
		r.HighlightID = *st.LastViewed
	}
	return r, true
}

// Enter switches to returning when nav comes from a candidate profile. After the
// settle delay it reads the persisted state through load, scrolls vp and
// highlights the last viewed candidate; the highlight clears on its own. It
// reports whether a restoration was scheduled. Calls made while a restoration
// is pending are ignored.
func (c *Coordinator) Enter(nav Navigation, load func() *session.State, vp Viewport) bool {
	if nav.From != OriginCandidateProfile {
		return false
	}

	c.mu.Lock()
	if c.state == StateReturning {
		c.mu.Unlock()
		return false
	}
	c.state = StateReturning
	c.mu.Unlock()

	time.AfterFunc(c.settle, func() {
		st := load()
		vp.ScrollTo(st.ScrollOffset)

		if st.LastViewed != nil {
			id := *st.LastViewed
			vp.ScrollIntoView(id)
			vp.Highlight(id)
			time.AfterFunc(c.highlight, func() {
				vp.ClearHighlight(id)
			})
		}

		c.mu.Lock()
		c.state = StateNormal
		c.mu.Unlock()
	})
	return true
}
