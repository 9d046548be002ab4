package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"prosty-screening/internal/payments"
	"prosty-screening/internal/storage"
)

// maxWebhookBytes matches the payload cap Stripe documents for webhook bodies.
const maxWebhookBytes = 65536

type CreateCheckoutRequest struct {
	WorkspaceID string `json:"workspace_id"`
	PriceID     string `json:"price_id"`
	Mode        string `json:"mode"`
	Tokens      int64  `json:"tokens,omitempty"`
}

// CreateCheckoutHandler starts a hosted checkout for tokens or a subscription
// @Summary Create checkout session
// @Description mode is "payment" (token top-up, tokens required) or "subscription"
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCheckoutRequest true "Checkout"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /functions/create-checkout [post]
func (a *API) CreateCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req CreateCheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	wsID, err := requireWorkspaceID(req.WorkspaceID)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	if strings.TrimSpace(req.PriceID) == "" {
		a.fail(w, invalidRequest("price_id is required"), "")
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = payments.ModePayment
	}
	switch mode {
	case payments.ModePayment:
		if req.Tokens <= 0 {
			a.fail(w, invalidRequest("tokens must be positive for a payment checkout"), "")
			return
		}
	case payments.ModeSubscription:
	default:
		a.fail(w, invalidRequest("mode must be payment or subscription"), "")
		return
	}
	if err := a.requireAdmin(r, wsID); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	sess, err := a.payments.CreateCheckout(r.Context(), payments.CheckoutRequest{
		WorkspaceID:   wsID,
		PriceID:       strings.TrimSpace(req.PriceID),
		Mode:          mode,
		Tokens:        req.Tokens,
		CustomerEmail: caller(r).Email,
	})
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			a.log.Warn("checkout requested without payment configuration")
			a.writeError(w, http.StatusServiceUnavailable, "payments are not configured")
			return
		}
		a.fail(w, err, "failed to create checkout session")
		return
	}

	a.log.Info("checkout session created",
		zap.String("workspace_id", wsID),
		zap.String("mode", mode),
		zap.String("session_id", sess.ID))
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"url":        sess.URL,
		"session_id": sess.ID,
	})
}

// StripeWebhookHandler applies signed payment events
// @Summary Payment webhook
// @Description Verifies the Stripe-Signature header. Token top-ups are applied once per event id.
// @Tags functions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /functions/stripe-webhook [post]
func (a *API) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	ev, err := a.payments.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			a.writeError(w, http.StatusServiceUnavailable, "payments are not configured")
			return
		}
		a.log.Warn("rejected webhook", zap.Error(err))
		a.writeError(w, http.StatusBadRequest, "invalid webhook")
		return
	}

	log := a.log.With(zap.String("event_id", ev.ID), zap.String("event_type", ev.Type))
	switch {
	case ev.Checkout != nil:
		err = a.applyCheckout(r, ev.ID, ev.Checkout, log)
	case ev.Subscription != nil:
		err = a.store.UpdateSubscriptionStatus(r.Context(), ev.Subscription.ID, ev.Subscription.Status, ev.Subscription.CurrentPeriodEnd)
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("subscription not linked to a workspace", zap.String("subscription_id", ev.Subscription.ID))
			err = nil
		}
	default:
		log.Debug("ignoring webhook event")
	}
	if err != nil {
		log.Error("failed to apply webhook event", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to process event")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{"received": true})
}

func (a *API) applyCheckout(r *http.Request, eventID string, c *payments.CompletedCheckout, log *zap.Logger) error {
	if c.WorkspaceID == "" {
		log.Warn("checkout without workspace reference", zap.String("session_id", c.SessionID))
		return nil
	}

	if c.Tokens > 0 {
		applied, balance, err := a.store.ApplyTokenTopUp(r.Context(), eventID, c.WorkspaceID, c.Tokens)
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("top-up for unknown workspace", zap.String("workspace_id", c.WorkspaceID))
			return nil
		}
		if err != nil {
			return err
		}
		if !applied {
			log.Info("duplicate top-up event ignored", zap.String("workspace_id", c.WorkspaceID))
			return nil
		}
		log.Info("tokens credited",
			zap.String("workspace_id", c.WorkspaceID),
			zap.Int64("tokens", c.Tokens),
			zap.Int64("balance", balance))
		return nil
	}

	update := storage.PaymentUpdate{
		StripeCustomerID:     c.CustomerID,
		StripeSubscriptionID: c.SubscriptionID,
	}
	if c.SubscriptionID != "" {
		update.SubscriptionStatus = "active"
	}
	if update == (storage.PaymentUpdate{}) {
		return nil
	}
	err := a.store.UpdateWorkspacePayment(r.Context(), c.WorkspaceID, update)
	if errors.Is(err, storage.ErrNotFound) {
		log.Warn("checkout for unknown workspace", zap.String("workspace_id", c.WorkspaceID))
		return nil
	}
	if err == nil {
		log.Info("subscription linked", zap.String("workspace_id", c.WorkspaceID), zap.String("subscription_id", c.SubscriptionID))
	}
	return err
}
