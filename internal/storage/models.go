package storage

import "time"

// Workspace is a tenant: users, candidates and billing state hang off it.
type Workspace struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	OwnerID              string     `json:"owner_id"`
	Industry             string     `json:"industry,omitempty"`
	CompanySize          string     `json:"company_size,omitempty"`
	TokenBalance         int64      `json:"token_balance"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	SubscriptionStatus   string     `json:"subscription_status,omitempty"`
	Plan                 string     `json:"plan,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role can be assigned to a member or invite.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin || role == RoleMember
}

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusExpired  = "expired"
)

// InviteTTL is how long an invite stays pending.
const InviteTTL = 7 * 24 * time.Hour

type Invite struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Token       string    `json:"token"`
	InvitedBy   string    `json:"invited_by"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentUpdate holds the billing columns written by update-workspace-payment and webhooks.
// Empty fields are left unchanged.
type PaymentUpdate struct {
	StripeCustomerID     string
	StripeSubscriptionID string
	Plan                 string
	SubscriptionStatus   string
}

// Candidate is a pool record searchable through the vector backend.
type Candidate struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Skills      []string  `json:"skills"`
	ResumeText  string    `json:"-"`
	ResumePath  string    `json:"resume_file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
