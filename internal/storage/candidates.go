package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"prosty-screening/internal/campaign"
)

// InsertCandidate stores a candidate pool record; the embedding is filled in later.
func (db *DB) InsertCandidate(ctx context.Context, c *Candidate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	err := db.connection.QueryRowContext(ctx, `
		INSERT INTO candidates (id, workspace_id, name, email, skills, resume_text, resume_file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, c.ID, c.WorkspaceID, c.Name, c.Email, pq.Array(c.Skills), c.ResumeText, c.ResumePath).Scan(&c.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// InsertCampaign stores a campaign with its frozen candidate list.
func (db *DB) InsertCampaign(ctx context.Context, c *campaign.Campaign) error {
	_, err := db.connection.ExecContext(ctx, `
		INSERT INTO campaigns (id, workspace_id, name, description, candidate_ids, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.WorkspaceID, c.Name, c.Description, pq.Array(c.CandidateIDs), c.Status, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// ListCampaigns returns a workspace's campaigns, newest first.
func (db *DB) ListCampaigns(ctx context.Context, workspaceID string) ([]*campaign.Campaign, error) {
	rows, err := db.connection.QueryContext(ctx, `
		SELECT id, workspace_id, name, description, candidate_ids, status, created_at
		FROM campaigns
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*campaign.Campaign
	for rows.Next() {
		c := &campaign.Campaign{}
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Description, pq.Array(&c.CandidateIDs), &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
