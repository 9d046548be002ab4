package workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prosty-screening/internal/session"
)

type recordingViewport struct {
	mu      sync.Mutex
	calls   []string
	cleared chan struct{}
}

func newViewport() *recordingViewport {
	return &recordingViewport{cleared: make(chan struct{}, 1)}
}

func (v *recordingViewport) record(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, s)
}

func (v *recordingViewport) ScrollTo(offset int)      { v.record(fmt.Sprintf("scroll:%d", offset)) }
func (v *recordingViewport) ScrollIntoView(id string) { v.record("into-view:" + id) }
func (v *recordingViewport) Highlight(id string)      { v.record("highlight:" + id) }
func (v *recordingViewport) ClearHighlight(id string) {
	v.record("clear:" + id)
	v.cleared <- struct{}{}
}

func (v *recordingViewport) Calls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func viewedState(id string, offset int) *session.State {
	st := session.DefaultState()
	st.ViewCandidate(id, offset)
	return st
}

func TestCoordinator_RestoresFromCandidateProfile(t *testing.T) {
	c := NewCoordinator(time.Millisecond, 5*time.Millisecond)
	vp := newViewport()

	ok := c.Enter(Navigation{From: OriginCandidateProfile}, func() *session.State { return viewedState("7", 1200) }, vp)
	require.True(t, ok)
	assert.Equal(t, StateReturning, c.State())

	select {
	case <-vp.cleared:
	case <-time.After(2 * time.Second):
		t.Fatal("highlight was never cleared")
	}

	assert.Equal(t, []string{"scroll:1200", "into-view:7", "highlight:7", "clear:7"}, vp.Calls())
	assert.Equal(t, StateNormal, c.State())
}

func TestCoordinator_DirectNavigationNeverRestores(t *testing.T) {
	c := NewCoordinator(time.Millisecond, time.Millisecond)
	vp := newViewport()

	for _, nav := range []Navigation{{}, {From: "dashboard"}} {
		ok := c.Enter(nav, func() *session.State { return viewedState("7", 10) }, vp)
		assert.False(t, ok)
		_, planned := c.Plan(nav, viewedState("7", 10))
		assert.False(t, planned)
	}

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, vp.Calls())
	assert.Equal(t, StateNormal, c.State())
}

func TestCoordinator_IgnoresReentryWhileReturning(t *testing.T) {
	c := NewCoordinator(50*time.Millisecond, time.Millisecond)
	load := func() *session.State { return session.DefaultState() }

	require.True(t, c.Enter(Navigation{From: OriginCandidateProfile}, load, newViewport()))
	assert.False(t, c.Enter(Navigation{From: OriginCandidateProfile}, load, newViewport()))
}

func TestCoordinator_NoLastViewedOnlyScrolls(t *testing.T) {
	c := NewCoordinator(time.Millisecond, time.Millisecond)
	vp := newViewport()
	st := session.DefaultState()
	st.ScrollOffset = 300

	require.True(t, c.Enter(Navigation{From: OriginCandidateProfile}, func() *session.State { return st }, vp))

	assert.Eventually(t, func() bool { return c.State() == StateNormal }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"scroll:300"}, vp.Calls())
}

func TestCoordinator_Plan(t *testing.T) {
	c := NewCoordinator(100*time.Millisecond, 2*time.Second)

	plan, ok := c.Plan(Navigation{From: OriginCandidateProfile}, viewedState("3", 640))
	require.True(t, ok)
	assert.Equal(t, Restoration{ScrollOffset: 640, HighlightID: "3", SettleDelayMS: 100, HighlightMS: 2000}, plan)
}

func TestWorkflowReturn_UsesPersistedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.wf.ViewCandidate(ctx, "2", 512))

	vp := newViewport()
	plan, ok := f.wf.Return(ctx, Navigation{From: OriginCandidateProfile}, vp)
	require.True(t, ok)
	assert.Equal(t, 512, plan.ScrollOffset)
	assert.Equal(t, "2", plan.HighlightID)

	select {
	case <-vp.cleared:
	case <-time.After(2 * time.Second):
		t.Fatal("restoration did not run")
	}
	assert.Contains(t, vp.Calls(), "highlight:2")

	_, ok = f.wf.Return(ctx, Navigation{}, nil)
	assert.False(t, ok)
}
