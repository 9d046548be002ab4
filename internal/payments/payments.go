// Package payments wraps the payment platform: checkout sessions for token
// top-ups and subscriptions, subscription lookups and signed webhooks.
package payments

import (
	"context"
	"errors"
	"time"
)

const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Metadata keys set on checkout sessions and read back from webhooks.
const (
	MetaWorkspaceID = "workspace_id"
	MetaTokens      = "tokens"
)

var (
	ErrNotConfigured = errors.New("payments are not configured")
	ErrBadSignature  = errors.New("invalid webhook signature")
)

type CheckoutRequest struct {
	WorkspaceID   string
	PriceID       string
	Mode          string
	Tokens        int64
	CustomerEmail string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

type Subscription struct {
	ID               string
	CustomerID       string
	Status           string
	CurrentPeriodEnd time.Time
	WorkspaceID      string
}

// Active reports whether the subscription grants access.
func (s *Subscription) Active() bool {
	return s.Status == "active" || s.Status == "trialing"
}

type CompletedCheckout struct {
	SessionID      string
	Mode           string
	WorkspaceID    string
	CustomerID     string
	SubscriptionID string
	Tokens         int64
}

// Event is a verified webhook event. Exactly one of Checkout and Subscription
// is set for the event types the service handles; both are nil otherwise.
type Event struct {
	ID           string
	Type         string
	Checkout     *CompletedCheckout
	Subscription *Subscription
}

type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetSubscription(ctx context.Context, id string) (*Subscription, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
