// Package workflow drives one user's candidate search session: searching,
// selecting, paging, opening candidates and turning a selection into a campaign.
// Every state change is persisted right away through the session slot store.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"prosty-screening/internal/campaign"
	"prosty-screening/internal/search"
	"prosty-screening/internal/session"
)

var (
	// ErrInProgress is returned when the same long operation is already running for the session.
	ErrInProgress   = errors.New("operation already in progress")
	ErrInvalidPage  = errors.New("page must be at least 1")
	ErrMissingID    = errors.New("candidate id is required")
	ErrInvalidInput = errors.New("invalid input")
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Provider search.Provider
	Creator  campaign.Creator
	Notifier Notifier
	Restorer *Coordinator
	Log      *zap.Logger
}

type Workflow struct {
	mu    sync.Mutex
	state *session.State
	store session.SlotStore

	provider search.Provider
	creator  campaign.Creator
	notifier Notifier
	restorer *Coordinator
	log      *zap.Logger

	searching bool
	creating  bool
}

// New hydrates a workflow from store.
func New(ctx context.Context, store session.SlotStore, deps Deps) *Workflow {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	restorer := deps.Restorer
	if restorer == nil {
		restorer = NewCoordinator(DefaultSettleDelay, DefaultHighlightDuration)
	}

	return &Workflow{
		state:    session.Load(ctx, store, log),
		store:    store,
		provider: deps.Provider,
		creator:  deps.Creator,
		notifier: notifier,
		restorer: restorer,
		log:      log,
	}
}

// Snapshot returns a copy of the current state.
func (w *Workflow) Snapshot() *session.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Busy reports whether a search or campaign creation is in flight.
func (w *Workflow) Busy() (searching, creating bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.searching, w.creating
}

// Search runs query through the provider and replaces the results. The
// selection is kept. Empty queries are rejected before the provider is called.
// The candidate pool searched is the one set on ctx with search.WithWorkspace.
func (w *Workflow) Search(ctx context.Context, query string) ([]search.CandidateResult, error) {
	notify := notifierFrom(ctx, w.notifier)

	q, err := search.NormalizeQuery(query)
	if err != nil {
		notify.Notify(Notification{Kind: KindError, Title: "Error", Message: "Please enter a search query"})
		return nil, err
	}

	w.mu.Lock()
	if w.searching {
		w.mu.Unlock()
		return nil, ErrInProgress
	}
	w.searching = true
	w.mu.Unlock()

	results, err := w.provider.Search(ctx, q)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.searching = false

	if err != nil {
		w.log.Warn("search failed", zap.String("query", q), zap.Error(err))
		notify.Notify(Notification{Kind: KindError, Title: "Search failed", Message: "Failed to perform search. Please try again."})
		return nil, fmt.Errorf("search: %w", err)
	}

	w.state.ReplaceResults(q, results)
	w.persist(ctx, session.FieldQuery, session.FieldResults, session.FieldPage)

	notify.Notify(Notification{
		Kind:    KindSuccess,
		Title:   "Search completed",
		Message: fmt.Sprintf("Found %d candidates matching your criteria", len(results)),
	})
	return w.state.Clone().Results, nil
}

// Toggle flips one candidate in the selection.
func (w *Workflow) Toggle(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Toggle(id)
	w.persist(ctx, session.FieldSelected)
	return nil
}

func (w *Workflow) SelectAll(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.SelectAll()
	w.persist(ctx, session.FieldSelected)
}

func (w *Workflow) DeselectAll(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.DeselectAll()
	w.persist(ctx, session.FieldSelected)
}

func (w *Workflow) SetPage(ctx context.Context, page int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.SetPage(page) {
		return ErrInvalidPage
	}
	w.persist(ctx, session.FieldPage)
	return nil
}

// SetPageSize changes the page size and resets to the first page.
func (w *Workflow) SetPageSize(ctx context.Context, size int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.state.SetPageSize(size) {
		return fmt.Errorf("%w: page size must be at least 1", ErrInvalidInput)
	}
	w.persist(ctx, session.FieldPageSize, session.FieldPage)
	return nil
}

// ViewCandidate records the candidate the user is navigating to and the
// scroll offset to restore when they come back.
func (w *Workflow) ViewCandidate(ctx context.Context, id string, scrollOffset int) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.ViewCandidate(id, scrollOffset)
	w.persist(ctx, session.FieldLastViewed, session.FieldScrollOffset)
	return nil
}

// CreateCampaign turns the current selection into a campaign attached to
// workspaceID ("" for none). On success the selection is cleared; on any
// failure the session is left untouched.
func (w *Workflow) CreateCampaign(ctx context.Context, workspaceID, name, description string) (*campaign.Campaign, error) {
	notify := notifierFrom(ctx, w.notifier)

	w.mu.Lock()
	draft := campaign.Draft{
		WorkspaceID:  workspaceID,
		Name:         name,
		Description:  description,
		CandidateIDs: w.state.SelectedIDs(),
	}
	if err := draft.Validate(); err != nil {
		w.mu.Unlock()
		msg := "Please enter a campaign name"
		if errors.Is(err, campaign.ErrMissingCandidates) {
			msg = "Please select at least one candidate"
		}
		notify.Notify(Notification{Kind: KindError, Title: "Error", Message: msg})
		return nil, err
	}
	if w.creating {
		w.mu.Unlock()
		return nil, ErrInProgress
	}
	w.creating = true
	w.mu.Unlock()

	c, err := w.creator.Create(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.creating = false

	if err != nil {
		w.log.Warn("campaign creation failed", zap.String("name", draft.Name), zap.Error(err))
		notify.Notify(Notification{Kind: KindError, Title: "Error", Message: "Failed to create campaign. Please try again."})
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	w.state.DeselectAll()
	w.persist(ctx, session.FieldSelected)

	notify.Notify(Notification{
		Kind:    KindSuccess,
		Title:   "Campaign created",
		Message: fmt.Sprintf("Campaign %q created with %d candidates", strings.TrimSpace(name), len(draft.CandidateIDs)),
	})
	return c, nil
}

// Return handles arriving back at the search view. When nav comes from a
// candidate profile the restore coordinator drives vp; the plan is returned
// for clients that drive their own viewport.
func (w *Workflow) Return(ctx context.Context, nav Navigation, vp Viewport) (Restoration, bool) {
	loadPersisted := func() *session.State {
		return session.Load(context.WithoutCancel(ctx), w.store, w.log)
	}
	plan, ok := w.restorer.Plan(nav, loadPersisted())
	if !ok {
		return Restoration{}, false
	}
	if vp != nil {
		w.restorer.Enter(nav, loadPersisted, vp)
	}
	return plan, true
}

// persist must be called with w.mu held. Write failures are logged, not returned:
// the in-memory state stays authoritative for this session.
func (w *Workflow) persist(ctx context.Context, fields ...session.Field) {
	if err := session.Persist(ctx, w.store, w.state, fields...); err != nil {
		w.log.Warn("persist session state", zap.Error(err))
	}
}
