// Package session holds the candidate search session state, its selection and
// paging rules, and the slot-based persistence adapter that hydrates and saves it.
package session

import (
	"sort"

	"prosty-screening/internal/search"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// State is one user's search session.
//
// Selected may contain ids that are not in Results (left over from an earlier
// search). They are kept on purpose and only ignored by result-scoped views.
type State struct {
	Query        string
	Results      []search.CandidateResult
	Selected     map[string]struct{}
	Page         int
	PageSize     int
	LastViewed   *string
	ScrollOffset int
}

// DefaultState returns the state of a session with nothing persisted.
func DefaultState() *State {
	return &State{
		Results:  []search.CandidateResult{},
		Selected: map[string]struct{}{},
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Toggle flips id's membership in the selection.
func (s *State) Toggle(id string) {
	if _, ok := s.Selected[id]; ok {
		delete(s.Selected, id)
		return
	}
	s.Selected[id] = struct{}{}
}

// SelectAll replaces the selection with exactly the current result ids.
func (s *State) SelectAll() {
	s.Selected = make(map[string]struct{}, len(s.Results))
	for _, r := range s.Results {
		s.Selected[r.ID] = struct{}{}
	}
}

func (s *State) DeselectAll() {
	s.Selected = map[string]struct{}{}
}

func (s *State) IsSelected(id string) bool {
	_, ok := s.Selected[id]
	return ok
}

// IsAllSelected is true iff there are results and the selection has the same size.
func (s *State) IsAllSelected() bool {
	return len(s.Results) > 0 && len(s.Results) == len(s.Selected)
}

// SelectedIDs returns the selection sorted, for stable output.
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReplaceResults installs a new result list. The selection is left as is.
func (s *State) ReplaceResults(query string, results []search.CandidateResult) {
	if results == nil {
		results = []search.CandidateResult{}
	}
	s.Query = query
	s.Results = results
	s.Page = DefaultPage
}

// SetPage moves to page n. Pages past the end are allowed and render empty.
func (s *State) SetPage(n int) bool {
	if n < 1 {
		return false
	}
	s.Page = n
	return true
}

// SetPageSize changes the page size and goes back to the first page.
func (s *State) SetPageSize(n int) bool {
	if n < 1 {
		return false
	}
	s.PageSize = n
	s.Page = DefaultPage
	return true
}

func (s *State) TotalPages() int {
	if len(s.Results) == 0 {
		return 0
	}
	return (len(s.Results) + s.PageSize - 1) / s.PageSize
}

// PageResults returns the slice of results on the current page.
func (s *State) PageResults() []search.CandidateResult {
	start := (s.Page - 1) * s.PageSize
	if start >= len(s.Results) {
		return []search.CandidateResult{}
	}
	end := start + s.PageSize
	if end > len(s.Results) {
		end = len(s.Results)
	}
	return s.Results[start:end]
}

// ViewCandidate records the candidate being opened and the scroll offset to come back to.
func (s *State) ViewCandidate(id string, scrollOffset int) {
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	s.LastViewed = &id
	s.ScrollOffset = scrollOffset
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Results = append([]search.CandidateResult(nil), s.Results...)
	if c.Results == nil {
		c.Results = []search.CandidateResult{}
	}
	c.Selected = make(map[string]struct{}, len(s.Selected))
	for id := range s.Selected {
		c.Selected[id] = struct{}{}
	}
	if s.LastViewed != nil {
		v := *s.LastViewed
		c.LastViewed = &v
	}
	return &c
}
