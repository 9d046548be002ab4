// Package campaign validates campaign drafts and creates recruiting campaigns from a
// frozen candidate selection.
package campaign

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingName       = errors.New("campaign name is required")
	ErrMissingCandidates = errors.New("select at least one candidate")
)

// Draft is what the user submits. CandidateIDs is a snapshot taken at submission.
type Draft struct {
	WorkspaceID  string   `json:"workspace_id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	CandidateIDs []string `json:"candidate_ids"`
}

// Validate checks the name first, then the candidate list.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if len(d.CandidateIDs) == 0 {
		return ErrMissingCandidates
	}
	return nil
}

type Campaign struct {
	ID           string    `json:"id"`
	WorkspaceID  string    `json:"workspace_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CandidateIDs []string  `json:"candidate_ids"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Creator persists a validated draft.
type Creator interface {
	Create(ctx context.Context, d Draft) (*Campaign, error)
}

// Repository is the storage a StoreCreator writes to.
type Repository interface {
	InsertCampaign(ctx context.Context, c *Campaign) error
}

func newCampaign(d Draft) *Campaign {
	ids := make([]string, len(d.CandidateIDs))
	copy(ids, d.CandidateIDs)
	return &Campaign{
		ID:           uuid.NewString(),
		WorkspaceID:  d.WorkspaceID,
		Name:         strings.TrimSpace(d.Name),
		Description:  d.Description,
		CandidateIDs: ids,
		Status:       "draft",
		CreatedAt:    time.Now().UTC(),
	}
}

// StubCreator simulates the create call with a fixed delay.
type StubCreator struct {
	delay time.Duration
}

func NewStubCreator(delay time.Duration) *StubCreator {
	return &StubCreator{delay: delay}
}

func (s *StubCreator) Create(ctx context.Context, d Draft) (*Campaign, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return newCampaign(d), nil
}

// StoreCreator writes campaigns through a Repository.
type StoreCreator struct {
	repo Repository
}

func NewStoreCreator(repo Repository) *StoreCreator {
	return &StoreCreator{repo: repo}
}

func (s *StoreCreator) Create(ctx context.Context, d Draft) (*Campaign, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c := newCampaign(d)
	if err := s.repo.InsertCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
