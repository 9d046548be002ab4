package search

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyQuery is returned when a query is empty after trimming.
var ErrEmptyQuery = errors.New("search query is empty")

// CandidateResult is one candidate returned by a search, ordered by relevance.
type CandidateResult struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Score  float64  `json:"score"`
	Skills []string `json:"skills"`
}

// Provider runs a free-text candidate search.
// Results are ordered by Score, highest first.
type Provider interface {
	Search(ctx context.Context, query string) ([]CandidateResult, error)
}

type workspaceKey struct{}

// WithWorkspace scopes searches run with ctx to one workspace's candidates.
// An empty id selects the shared pool of candidates uploaded without a workspace.
func WithWorkspace(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, workspaceKey{}, workspaceID)
}

// WorkspaceFrom returns the workspace set by WithWorkspace, or "".
func WorkspaceFrom(ctx context.Context) string {
	id, _ := ctx.Value(workspaceKey{}).(string)
	return id
}

// NormalizeQuery trims the query and rejects whitespace-only input.
func NormalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}
