package api

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prosty-screening/internal/auth"
	"prosty-screening/internal/storage"
)

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}

type InviteUserRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type IncrementTokenBalanceRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Amount      int64  `json:"amount"`
}

type UpdateWorkspacePaymentRequest struct {
	WorkspaceID          string `json:"workspace_id"`
	StripeCustomerID     string `json:"stripe_customer_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	Plan                 string `json:"plan"`
}

type VerifySubscriptionRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalidRequest("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalidRequest("invalid email address")
	}
	return email, nil
}

func caller(r *http.Request) *auth.Claims {
	claims, _ := auth.FromContext(r.Context())
	return claims
}

// requireAdmin allows workspace owners and admins.
func (a *API) requireAdmin(r *http.Request, workspaceID string) error {
	role, err := a.memberRole(r.Context(), workspaceID, caller(r).Subject)
	if err != nil {
		return err
	}
	if role != storage.RoleOwner && role != storage.RoleAdmin {
		return errForbidden
	}
	return nil
}

func requireWorkspaceID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalidRequest("workspace_id is required")
	}
	return id, nil
}

// CheckEmailHandler reports whether an email is already registered
// @Summary Check email
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckEmailRequest true "Email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /functions/check-email [post]
func (a *API) CheckEmailHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req CheckEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		a.fail(w, err, "")
		return
	}

	exists, err := a.store.EmailExists(r.Context(), email)
	if err != nil {
		a.fail(w, err, "failed to check email")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "exists": exists})
}

// CreateWorkspaceHandler creates a workspace owned by the caller
// @Summary Create workspace
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWorkspaceRequest true "Workspace"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /functions/create-workspace [post]
func (a *API) CreateWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req CreateWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		a.fail(w, invalidRequest("workspace name is required"), "")
		return
	}

	ws := &storage.Workspace{
		ID:          uuid.NewString(),
		Name:        name,
		OwnerID:     caller(r).Subject,
		Industry:    strings.TrimSpace(req.Industry),
		CompanySize: strings.TrimSpace(req.CompanySize),
	}
	if err := a.store.CreateWorkspace(r.Context(), ws); err != nil {
		a.fail(w, err, "failed to create workspace")
		return
	}

	a.log.Info("workspace created", zap.String("workspace_id", ws.ID), zap.String("owner_id", ws.OwnerID))
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "workspace": ws})
}

// InviteUserHandler invites an email address into a workspace
// @Summary Invite user
// @Description Caller must be an owner or admin of the workspace
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InviteUserRequest true "Invite"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /functions/invite-user [post]
func (a *API) InviteUserHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req InviteUserRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	wsID, err := requireWorkspaceID(req.WorkspaceID)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = storage.RoleMember
	}
	if !storage.ValidRole(role) || role == storage.RoleOwner {
		a.fail(w, invalidRequest("role must be admin or member"), "")
		return
	}
	if err := a.requireAdmin(r, wsID); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	now := time.Now().UTC()
	inv := &storage.Invite{
		ID:          uuid.NewString(),
		WorkspaceID: wsID,
		Email:       email,
		Role:        role,
		Token:       uuid.NewString(),
		InvitedBy:   caller(r).Subject,
		Status:      storage.InviteStatusPending,
		ExpiresAt:   now.Add(storage.InviteTTL),
	}
	if err := a.store.CreateInvite(r.Context(), inv); err != nil {
		a.fail(w, err, "failed to create invite")
		return
	}

	a.log.Info("invite created", zap.String("workspace_id", wsID), zap.String("role", role))
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "invite": inv})
}

// IncrementTokenBalanceHandler adds tokens to a workspace. Owners and admins only.
// @Summary Increment token balance
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IncrementTokenBalanceRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /functions/increment-token-balance [post]
func (a *API) IncrementTokenBalanceHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req IncrementTokenBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	wsID, err := requireWorkspaceID(req.WorkspaceID)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	if req.Amount <= 0 {
		a.fail(w, invalidRequest("amount must be positive"), "")
		return
	}
	if err := a.requireAdmin(r, wsID); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	balance, err := a.store.IncrementTokenBalance(r.Context(), wsID, req.Amount)
	if err != nil {
		a.fail(w, err, "failed to update token balance")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "token_balance": balance})
}

// UpdateWorkspacePaymentHandler stores billing identifiers for a workspace
// @Summary Update workspace payment
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateWorkspacePaymentRequest true "Payment details"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /functions/update-workspace-payment [post]
func (a *API) UpdateWorkspacePaymentHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req UpdateWorkspacePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	wsID, err := requireWorkspaceID(req.WorkspaceID)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	update := storage.PaymentUpdate{
		StripeCustomerID:     strings.TrimSpace(req.StripeCustomerID),
		StripeSubscriptionID: strings.TrimSpace(req.StripeSubscriptionID),
		Plan:                 strings.TrimSpace(req.Plan),
	}
	if update == (storage.PaymentUpdate{}) {
		a.fail(w, invalidRequest("nothing to update"), "")
		return
	}
	if err := a.requireAdmin(r, wsID); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	if err := a.store.UpdateWorkspacePayment(r.Context(), wsID, update); err != nil {
		a.fail(w, err, "failed to update workspace payment")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// VerifySubscriptionHandler refreshes the workspace subscription status from the payment provider
// @Summary Verify subscription
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifySubscriptionRequest true "Workspace"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /functions/verify-subscription [post]
func (a *API) VerifySubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req VerifySubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	wsID, err := requireWorkspaceID(req.WorkspaceID)
	if err != nil {
		a.fail(w, err, "")
		return
	}
	if _, err := a.memberRole(r.Context(), wsID, caller(r).Subject); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	ws, err := a.store.GetWorkspace(r.Context(), wsID)
	if err != nil {
		a.fail(w, err, "failed to load workspace")
		return
	}
	if ws.StripeSubscriptionID == "" {
		a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "none", "active": false})
		return
	}

	sub, err := a.payments.GetSubscription(r.Context(), ws.StripeSubscriptionID)
	if err != nil {
		a.fail(w, err, "failed to verify subscription")
		return
	}
	if err := a.store.UpdateSubscriptionStatus(r.Context(), sub.ID, sub.Status, sub.CurrentPeriodEnd); err != nil {
		a.fail(w, err, "failed to store subscription status")
		return
	}

	resp := map[string]interface{}{"success": true, "status": sub.Status, "active": sub.Active()}
	if !sub.CurrentPeriodEnd.IsZero() {
		resp["current_period_end"] = sub.CurrentPeriodEnd
	}
	a.writeJSON(w, http.StatusOK, resp)
}
