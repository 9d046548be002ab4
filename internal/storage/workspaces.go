package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EmailExists checks if a user with the given email is registered
func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`
	err := db.connection.QueryRowContext(ctx, query, strings.TrimSpace(email)).Scan(&exists)
	return exists, err
}

// CreateWorkspace inserts the workspace and makes its owner the first member.
func (db *DB) CreateWorkspace(ctx context.Context, w *Workspace) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO workspaces (id, name, owner_id, industry, company_size, token_balance)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`, w.ID, w.Name, w.OwnerID, w.Industry, w.CompanySize, w.TokenBalance).Scan(&w.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert workspace: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role)
			VALUES ($1, $2, $3)
		`, w.ID, w.OwnerID, RoleOwner)
		if err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}
		return nil
	})
}

func (db *DB) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	w := &Workspace{}
	var periodEnd sql.NullTime
	err := db.connection.QueryRowContext(ctx, `
		SELECT id, name, owner_id, industry, company_size, token_balance,
		       stripe_customer_id, stripe_subscription_id, subscription_status, plan,
		       current_period_end, created_at
		FROM workspaces
		WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.OwnerID, &w.Industry, &w.CompanySize, &w.TokenBalance,
		&w.StripeCustomerID, &w.StripeSubscriptionID, &w.SubscriptionStatus, &w.Plan,
		&periodEnd, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if periodEnd.Valid {
		t := periodEnd.Time
		w.CurrentPeriodEnd = &t
	}
	return w, nil
}

// MemberRole returns the user's role in the workspace, or ErrNotFound.
func (db *DB) MemberRole(ctx context.Context, workspaceID, userID string) (string, error) {
	var role string
	err := db.connection.QueryRowContext(ctx, `
		SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return role, err
}

// CreateInvite stores a pending invite. A second pending invite for the same
// email in the same workspace returns ErrConflict.
func (db *DB) CreateInvite(ctx context.Context, inv *Invite) error {
	err := db.connection.QueryRowContext(ctx, `
		INSERT INTO workspace_invites (id, workspace_id, email, role, token, invited_by, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, inv.ID, inv.WorkspaceID, inv.Email, inv.Role, inv.Token, inv.InvitedBy, inv.Status, inv.ExpiresAt).Scan(&inv.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// ExpirePendingInvites marks pending invites past their expiry as expired.
func (db *DB) ExpirePendingInvites(ctx context.Context, now time.Time) (int64, error) {
	res, err := db.connection.ExecContext(ctx, `
		UPDATE workspace_invites SET status = $1 WHERE status = $2 AND expires_at < $3
	`, InviteStatusExpired, InviteStatusPending, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementTokenBalance adds amount to the workspace balance and returns the new balance.
func (db *DB) IncrementTokenBalance(ctx context.Context, workspaceID string, amount int64) (int64, error) {
	return incrementBalance(ctx, db.connection, workspaceID, amount)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func incrementBalance(ctx context.Context, q queryRower, workspaceID string, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRowContext(ctx, `
		UPDATE workspaces
		SET token_balance = token_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING token_balance
	`, amount, workspaceID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return balance, err
}

// ApplyTokenTopUp credits tokens for a payment event once. Replays of the same
// event report applied=false and leave the balance alone.
func (db *DB) ApplyTokenTopUp(ctx context.Context, eventID, workspaceID string, tokens int64) (applied bool, balance int64, err error) {
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO processed_webhook_events (event_id) VALUES ($1)
			ON CONFLICT (event_id) DO NOTHING
		`, eventID)
		if err != nil {
			return fmt.Errorf("record event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		balance, err = incrementBalance(ctx, tx, workspaceID, tokens)
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, balance, err
}

// UpdateWorkspacePayment writes the non-empty billing fields of p.
func (db *DB) UpdateWorkspacePayment(ctx context.Context, workspaceID string, p PaymentUpdate) error {
	res, err := db.connection.ExecContext(ctx, `
		UPDATE workspaces
		SET stripe_customer_id     = COALESCE(NULLIF($1, ''), stripe_customer_id),
		    stripe_subscription_id = COALESCE(NULLIF($2, ''), stripe_subscription_id),
		    plan                   = COALESCE(NULLIF($3, ''), plan),
		    subscription_status    = COALESCE(NULLIF($4, ''), subscription_status),
		    updated_at             = NOW()
		WHERE id = $5
	`, p.StripeCustomerID, p.StripeSubscriptionID, p.Plan, p.SubscriptionStatus, workspaceID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// UpdateSubscriptionStatus updates the workspace holding subscriptionID.
func (db *DB) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, periodEnd time.Time) error {
	var end interface{}
	if !periodEnd.IsZero() {
		end = periodEnd
	}
	res, err := db.connection.ExecContext(ctx, `
		UPDATE workspaces
		SET subscription_status = $1,
		    current_period_end  = COALESCE($2, current_period_end),
		    updated_at          = NOW()
		WHERE stripe_subscription_id = $3
	`, status, end, subscriptionID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
