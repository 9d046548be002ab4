package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prosty-screening/internal/auth"
	"prosty-screening/internal/campaign"
	"prosty-screening/internal/cv"
	"prosty-screening/internal/payments"
	"prosty-screening/internal/search"
	"prosty-screening/internal/session"
	"prosty-screening/internal/storage"
	"prosty-screening/internal/workflow"
)

const testSecret = "test-secret"

type fakeStore struct {
	mu         sync.Mutex
	pingErr    error
	emails     map[string]bool
	workspaces map[string]*storage.Workspace
	roles      map[string]string // workspace|user -> role
	invites    []*storage.Invite
	events     map[string]bool
	payments   map[string]storage.PaymentUpdate
	statuses   map[string]string
	candidates []*storage.Candidate
	campaigns  []*campaign.Campaign
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		emails:     map[string]bool{},
		workspaces: map[string]*storage.Workspace{},
		roles:      map[string]string{},
		events:     map[string]bool{},
		payments:   map[string]storage.PaymentUpdate{},
		statuses:   map[string]string{},
	}
}

func (f *fakeStore) addWorkspace(id, user, role string) *storage.Workspace {
	ws := &storage.Workspace{ID: id, Name: "Acme", OwnerID: user}
	f.workspaces[id] = ws
	f.roles[id+"|"+user] = role
	return ws
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeStore) CreateWorkspace(_ context.Context, w *storage.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.CreatedAt = time.Now()
	f.workspaces[w.ID] = w
	f.roles[w.ID+"|"+w.OwnerID] = storage.RoleOwner
	return nil
}

func (f *fakeStore) GetWorkspace(_ context.Context, id string) (*storage.Workspace, error) {
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return ws, nil
}

func (f *fakeStore) MemberRole(_ context.Context, workspaceID, userID string) (string, error) {
	role, ok := f.roles[workspaceID+"|"+userID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return role, nil
}

func (f *fakeStore) CreateInvite(_ context.Context, inv *storage.Invite) error {
	for _, existing := range f.invites {
		if existing.WorkspaceID == inv.WorkspaceID && existing.Email == inv.Email {
			return storage.ErrConflict
		}
	}
	f.invites = append(f.invites, inv)
	return nil
}

func (f *fakeStore) IncrementTokenBalance(_ context.Context, workspaceID string, amount int64) (int64, error) {
	ws, ok := f.workspaces[workspaceID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	ws.TokenBalance += amount
	return ws.TokenBalance, nil
}

func (f *fakeStore) ApplyTokenTopUp(ctx context.Context, eventID, workspaceID string, tokens int64) (bool, int64, error) {
	if f.events[eventID] {
		return false, 0, nil
	}
	balance, err := f.IncrementTokenBalance(ctx, workspaceID, tokens)
	if err != nil {
		return false, 0, err
	}
	f.events[eventID] = true
	return true, balance, nil
}

func (f *fakeStore) UpdateWorkspacePayment(_ context.Context, workspaceID string, p storage.PaymentUpdate) error {
	if _, ok := f.workspaces[workspaceID]; !ok {
		return storage.ErrNotFound
	}
	f.payments[workspaceID] = p
	return nil
}

func (f *fakeStore) UpdateSubscriptionStatus(_ context.Context, subscriptionID, status string, _ time.Time) error {
	f.statuses[subscriptionID] = status
	return nil
}

func (f *fakeStore) InsertCandidate(_ context.Context, c *storage.Candidate) error {
	if c.ID == "" {
		c.ID = "cand-1"
	}
	f.candidates = append(f.candidates, c)
	return nil
}

func (f *fakeStore) ListCampaigns(_ context.Context, workspaceID string) ([]*campaign.Campaign, error) {
	var out []*campaign.Campaign
	for _, c := range f.campaigns {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePayments struct {
	checkouts []payments.CheckoutRequest
	sub       *payments.Subscription
	event     *payments.Event
}

func (f *fakePayments) CreateCheckout(_ context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error) {
	f.checkouts = append(f.checkouts, req)
	return &payments.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (f *fakePayments) GetSubscription(_ context.Context, id string) (*payments.Subscription, error) {
	if f.sub == nil || f.sub.ID != id {
		return nil, errors.New("no such subscription")
	}
	return f.sub, nil
}

func (f *fakePayments) ParseWebhook(_ []byte, signature string) (*payments.Event, error) {
	if signature != "valid" {
		return nil, payments.ErrBadSignature
	}
	return f.event, nil
}

type fakeEmbedder struct {
	ids chan string
}

func (f *fakeEmbedder) EmbedCandidate(_ context.Context, id string) error {
	f.ids <- id
	return nil
}

type testServer struct {
	handler  http.Handler
	api      *API
	store    *fakeStore
	payments *fakePayments
	verifier *auth.Verifier
}

func newTestServer(t *testing.T, embedder CandidateEmbedder) *testServer {
	t.Helper()
	store := newFakeStore()
	pay := &fakePayments{}
	verifier := auth.NewVerifier(testSecret)

	provider := search.NewSeededMockProvider(0, 1)
	manager := workflow.NewManager(session.NewMemoryStore(), workflow.Deps{
		Provider: provider,
		Creator:  campaign.NewStubCreator(0),
		Restorer: workflow.NewCoordinator(time.Millisecond, time.Millisecond),
		Log:      zap.NewNop(),
	})

	a := NewAPI(Options{
		Store:             store,
		Sessions:          manager,
		Payments:          pay,
		Verifier:          verifier,
		CVParser:          cv.NewCVParser(t.TempDir()),
		Embedder:          embedder,
		Log:               zap.NewNop(),
		EmbeddingInterval: time.Millisecond,
	})
	return &testServer{
		handler:  NewRouter(a, "/swagger/doc.json"),
		api:      a,
		store:    store,
		payments: pay,
		verifier: verifier,
	}
}

func (s *testServer) token(t *testing.T, user string) string {
	t.Helper()
	claims := auth.Claims{Email: user + "@example.com"}
	claims.Subject = user
	tok, err := s.verifier.Sign(claims)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(t, user))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	s.store.pingErr = errors.New("down")
	rec = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSession_RequiresBearer(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSession_DefaultsForNewUser(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/session", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SessionResponse](t, rec)
	assert.Equal(t, "", resp.Query)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	assert.Nil(t, resp.LastViewed)
}

func TestSearch_EmptyQueryIsBadRequest(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[struct {
		Error         string                  `json:"error"`
		Notifications []workflow.Notification `json:"notifications"`
	}](t, rec)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Please enter a search query", body.Notifications[0].Message)
}

func TestSearch_SelectAndCreateCampaign(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "senior go engineer"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SessionResponse](t, rec)
	require.Len(t, resp.Results, search.MockResultCount)
	assert.Equal(t, "senior go engineer", resp.Query)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Found 10 candidates matching your criteria", resp.Notifications[0].Message)

	first := resp.Results[0].ID
	rec = s.do(t, http.MethodPost, "/api/selection/toggle", "u1", ToggleRequest{ID: first})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{first}, decode[SessionResponse](t, rec).Selected)

	rec = s.do(t, http.MethodPost, "/api/selection/all", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[SessionResponse](t, rec).IsAllSelected)

	rec = s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{Name: "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{Name: "Backend hiring"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[CreateCampaignResponse](t, rec)
	assert.Len(t, created.Campaign.CandidateIDs, search.MockResultCount)
	assert.Empty(t, created.Session.Selected)
	require.Len(t, created.Notifications, 1)
	assert.Equal(t, `Campaign "Backend hiring" created with 10 candidates`, created.Notifications[0].Message)

	// Other users see their own session
	rec = s.do(t, http.MethodGet, "/api/session", "u2", nil)
	assert.Empty(t, decode[SessionResponse](t, rec).Results)
}

func TestSelection_DeleteClears(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "designer"})
	s.do(t, http.MethodPost, "/api/selection/all", "u1", nil)

	rec := s.do(t, http.MethodDelete, "/api/selection", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[SessionResponse](t, rec).Selected)

	rec = s.do(t, http.MethodGet, "/api/selection/all", "u1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCreateCampaign_WorkspaceMembership(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "data"})
	s.do(t, http.MethodPost, "/api/selection/all", "u1", nil)

	rec := s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{WorkspaceID: "ws-1", Name: "Data"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.store.addWorkspace("ws-1", "u1", storage.RoleMember)
	rec = s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{WorkspaceID: "ws-1", Name: "Data"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ws-1", decode[CreateCampaignResponse](t, rec).Campaign.WorkspaceID)
}

func TestCreateCampaign_WorkspaceNotCarriedOver(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "u1", storage.RoleMember)

	s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "data"})
	s.do(t, http.MethodPost, "/api/selection/all", "u1", nil)
	rec := s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{WorkspaceID: "ws-1", Name: "First"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ws-1", decode[CreateCampaignResponse](t, rec).Campaign.WorkspaceID)

	s.do(t, http.MethodPost, "/api/selection/all", "u1", nil)
	rec = s.do(t, http.MethodPost, "/api/campaigns", "u1", CreateCampaignRequest{Name: "Second"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, decode[CreateCampaignResponse](t, rec).Campaign.WorkspaceID)
}

func TestSearch_WorkspaceMembership(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "go", WorkspaceID: "ws-1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, decode[SessionResponse](t, s.do(t, http.MethodGet, "/api/session", "u1", nil)).Results)

	s.store.addWorkspace("ws-1", "u1", storage.RoleMember)
	rec = s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "go", WorkspaceID: "ws-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SessionResponse](t, rec).Results, search.MockResultCount)
}

func TestListCampaigns(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "u1", storage.RoleMember)
	s.store.campaigns = []*campaign.Campaign{{ID: "c1", WorkspaceID: "ws-1", Name: "One"}}

	rec := s.do(t, http.MethodGet, "/api/campaigns?workspace_id=ws-1", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, rec)["count"])

	rec = s.do(t, http.MethodGet, "/api/campaigns?workspace_id=ws-1", "u2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPage_Validation(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "ops"})

	rec := s.do(t, http.MethodPost, "/api/page", "u1", PageRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/page", "u1", PageRequest{Page: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/page", "u1", PageRequest{Page: 2, PageSize: 5})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SessionResponse](t, rec)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 5, resp.PageSize)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.PageResults, 5)
}

func TestViewAndReturn(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/api/search", "u1", SearchRequest{Query: "react"})

	rec := s.do(t, http.MethodPost, "/api/candidates/view", "u1", ViewCandidateRequest{ID: "3", ScrollOffset: 840})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/navigation/return", "u1", ReturnRequest{From: "dashboard"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[ReturnResponse](t, rec).Restore)

	rec = s.do(t, http.MethodPost, "/api/navigation/return", "u1", ReturnRequest{From: string(workflow.OriginCandidateProfile)})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ReturnResponse](t, rec)
	require.True(t, resp.Restore)
	assert.Equal(t, 840, resp.Restoration.ScrollOffset)
	assert.Equal(t, "3", resp.Restoration.HighlightID)

	rec = s.do(t, http.MethodPost, "/api/candidates/view", "u1", ViewCandidateRequest{ID: "3", ScrollOffset: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFunctions_CheckEmailAndCreateWorkspace(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.emails["taken@example.com"] = true

	rec := s.do(t, http.MethodPost, "/functions/check-email", "u1", CheckEmailRequest{Email: " Taken@Example.com "})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, rec)["exists"])

	rec = s.do(t, http.MethodPost, "/functions/check-email", "u1", CheckEmailRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/create-workspace", "u1", CreateWorkspaceRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/create-workspace", "u1", CreateWorkspaceRequest{Name: "Acme"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Success   bool              `json:"success"`
		Workspace storage.Workspace `json:"workspace"`
	}](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "u1", body.Workspace.OwnerID)
	assert.Equal(t, storage.RoleOwner, s.store.roles[body.Workspace.ID+"|u1"])
}

func TestFunctions_InviteUser(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "owner", storage.RoleOwner)
	s.store.roles["ws-1|member"] = storage.RoleMember

	invite := InviteUserRequest{WorkspaceID: "ws-1", Email: "new@example.com", Role: storage.RoleMember}

	rec := s.do(t, http.MethodPost, "/functions/invite-user", "outsider", invite)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/invite-user", "member", invite)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/invite-user", "owner", InviteUserRequest{WorkspaceID: "ws-1", Email: "x@example.com", Role: storage.RoleOwner})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/invite-user", "owner", invite)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.store.invites, 1)
	assert.Equal(t, storage.InviteStatusPending, s.store.invites[0].Status)
	assert.WithinDuration(t, time.Now().Add(storage.InviteTTL), s.store.invites[0].ExpiresAt, time.Minute)

	rec = s.do(t, http.MethodPost, "/functions/invite-user", "owner", invite)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFunctions_IncrementTokenBalance(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "admin", storage.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/functions/increment-token-balance", "admin", IncrementTokenBalanceRequest{WorkspaceID: "ws-1", Amount: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/increment-token-balance", "admin", IncrementTokenBalanceRequest{WorkspaceID: "ws-1", Amount: 50})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(50), decode[map[string]interface{}](t, rec)["token_balance"])

	// Plain members cannot credit tokens
	s.store.roles["ws-1|member"] = storage.RoleMember
	rec = s.do(t, http.MethodPost, "/functions/increment-token-balance", "member", IncrementTokenBalanceRequest{WorkspaceID: "ws-1", Amount: 50})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, int64(50), s.store.workspaces["ws-1"].TokenBalance)
}

func TestFunctions_UpdateWorkspacePayment(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "owner", storage.RoleOwner)

	rec := s.do(t, http.MethodPost, "/functions/update-workspace-payment", "owner", UpdateWorkspacePaymentRequest{WorkspaceID: "ws-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/update-workspace-payment", "owner", UpdateWorkspacePaymentRequest{WorkspaceID: "ws-1", StripeCustomerID: "cus_1", Plan: "pro"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cus_1", s.store.payments["ws-1"].StripeCustomerID)
	assert.Equal(t, "pro", s.store.payments["ws-1"].Plan)
}

func TestFunctions_VerifySubscription(t *testing.T) {
	s := newTestServer(t, nil)
	ws := s.store.addWorkspace("ws-1", "u1", storage.RoleMember)

	rec := s.do(t, http.MethodPost, "/functions/verify-subscription", "u1", VerifySubscriptionRequest{WorkspaceID: "ws-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", decode[map[string]interface{}](t, rec)["status"])

	ws.StripeSubscriptionID = "sub_1"
	s.payments.sub = &payments.Subscription{ID: "sub_1", Status: "active", CurrentPeriodEnd: time.Now().Add(24 * time.Hour)}
	rec = s.do(t, http.MethodPost, "/functions/verify-subscription", "u1", VerifySubscriptionRequest{WorkspaceID: "ws-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, body["active"])
	assert.Equal(t, "active", s.store.statuses["sub_1"])
}

func TestFunctions_CreateCheckout(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "owner", storage.RoleOwner)

	rec := s.do(t, http.MethodPost, "/functions/create-checkout", "owner", CreateCheckoutRequest{WorkspaceID: "ws-1", PriceID: "price_1", Mode: payments.ModePayment})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/create-checkout", "owner", CreateCheckoutRequest{WorkspaceID: "ws-1", PriceID: "price_1", Mode: "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/functions/create-checkout", "owner", CreateCheckoutRequest{WorkspaceID: "ws-1", PriceID: "price_1", Mode: payments.ModePayment, Tokens: 100})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "https://checkout.example/cs_test", body["url"])
	assert.Equal(t, "cs_test", body["session_id"])
	require.Len(t, s.payments.checkouts, 1)
	assert.Equal(t, "owner@example.com", s.payments.checkouts[0].CustomerEmail)
}

func webhookRequest(signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/functions/stripe-webhook", bytes.NewBufferString(`{}`))
	req.Header.Set("Stripe-Signature", signature)
	return req
}

func TestStripeWebhook_TopUpAppliedOnce(t *testing.T) {
	s := newTestServer(t, nil)
	ws := s.store.addWorkspace("ws-1", "owner", storage.RoleOwner)
	s.payments.event = &payments.Event{
		ID:   "evt_1",
		Type: payments.EventCheckoutCompleted,
		Checkout: &payments.CompletedCheckout{
			SessionID:   "cs_1",
			Mode:        payments.ModePayment,
			WorkspaceID: "ws-1",
			Tokens:      500,
		},
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, webhookRequest("bad"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		s.handler.ServeHTTP(rec, webhookRequest("valid"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode[map[string]interface{}](t, rec)["received"])
	}
	assert.Equal(t, int64(500), ws.TokenBalance)
}

func TestStripeWebhook_SubscriptionEvents(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.addWorkspace("ws-1", "owner", storage.RoleOwner)

	s.payments.event = &payments.Event{
		ID:   "evt_2",
		Type: payments.EventCheckoutCompleted,
		Checkout: &payments.CompletedCheckout{
			Mode:           payments.ModeSubscription,
			WorkspaceID:    "ws-1",
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		},
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, webhookRequest("valid"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sub_1", s.store.payments["ws-1"].StripeSubscriptionID)

	s.payments.event = &payments.Event{
		ID:           "evt_3",
		Type:         payments.EventSubscriptionDeleted,
		Subscription: &payments.Subscription{ID: "sub_1", Status: "canceled"},
	}
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, webhookRequest("valid"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "canceled", s.store.statuses["sub_1"])

	s.payments.event = &payments.Event{ID: "evt_4", Type: "invoice.paid"}
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, webhookRequest("valid"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadCandidate(t *testing.T) {
	embedder := &fakeEmbedder{ids: make(chan string, 1)}
	s := newTestServer(t, embedder)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.api.StartBackgroundWorkers(ctx)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "jane.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Jane Doe\njane@example.com\nGo, Kubernetes and PostgreSQL\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token(t, "u1"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[UploadCandidateResponse](t, rec)
	assert.True(t, resp.EmbeddingQueued)
	require.Len(t, s.store.candidates, 1)
	c := s.store.candidates[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Contains(t, c.Skills, "Go")
	assert.Contains(t, c.Skills, "Kubernetes")

	select {
	case id := <-embedder.ids:
		assert.Equal(t, c.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("embedding job not processed")
	}
}

func TestUploadCandidate_RejectsUnsupportedType(t *testing.T) {
	s := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	fw.Write([]byte("not a cv"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/candidates/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token(t, "u1"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueueEmbeddingJob_WithoutEmbedder(t *testing.T) {
	s := newTestServer(t, nil)
	assert.False(t, s.api.QueueEmbeddingJob("c1"))
}
