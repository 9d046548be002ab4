package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"prosty-screening/internal/campaign"
	"prosty-screening/internal/search"
	"prosty-screening/internal/storage"
	"prosty-screening/internal/workflow"
)

// SessionResponse is the search session as the dashboard renders it
type SessionResponse struct {
	Query            string                   `json:"query"`
	Results          []search.CandidateResult `json:"results"`
	Selected         []string                 `json:"selected"`
	IsAllSelected    bool                     `json:"is_all_selected"`
	Page             int                      `json:"page"`
	PageSize         int                      `json:"page_size"`
	TotalPages       int                      `json:"total_pages"`
	PageResults      []search.CandidateResult `json:"page_results"`
	LastViewed       *string                  `json:"last_viewed"`
	ScrollOffset     int                      `json:"scroll_offset"`
	Searching        bool                     `json:"searching"`
	CreatingCampaign bool                     `json:"creating_campaign"`
	Notifications    []workflow.Notification  `json:"notifications,omitempty"`
}

type SearchRequest struct {
	Query       string `json:"query"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

type ToggleRequest struct {
	ID string `json:"id"`
}

type PageRequest struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

type ViewCandidateRequest struct {
	ID           string `json:"id"`
	ScrollOffset int    `json:"scroll_offset"`
}

type ReturnRequest struct {
	From string `json:"from"`
}

type ReturnResponse struct {
	Restore     bool                  `json:"restore"`
	Restoration *workflow.Restoration `json:"restoration,omitempty"`
}

type CreateCampaignRequest struct {
	WorkspaceID string `json:"workspace_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateCampaignResponse struct {
	Campaign      *campaign.Campaign      `json:"campaign"`
	Session       SessionResponse         `json:"session"`
	Notifications []workflow.Notification `json:"notifications"`
}

// sessionFor returns the caller's workflow and a context that records notifications.
func (a *API) sessionFor(r *http.Request) (*workflow.Workflow, context.Context, *workflow.Recorder) {
	rec := &workflow.Recorder{}
	ctx := workflow.WithNotifier(r.Context(), rec)
	return a.sessions.Get(ctx, caller(r).Subject), ctx, rec
}

func sessionResponse(wf *workflow.Workflow, rec *workflow.Recorder) SessionResponse {
	st := wf.Snapshot()
	searching, creating := wf.Busy()
	resp := SessionResponse{
		Query:            st.Query,
		Results:          st.Results,
		Selected:         st.SelectedIDs(),
		IsAllSelected:    st.IsAllSelected(),
		Page:             st.Page,
		PageSize:         st.PageSize,
		TotalPages:       st.TotalPages(),
		PageResults:      st.PageResults(),
		LastViewed:       st.LastViewed,
		ScrollOffset:     st.ScrollOffset,
		Searching:        searching,
		CreatingCampaign: creating,
	}
	if rec != nil {
		resp.Notifications = rec.Notifications()
	}
	return resp
}

// respondSession writes the session, or the error with the notifications emitted so far.
func (a *API) respondSession(w http.ResponseWriter, wf *workflow.Workflow, rec *workflow.Recorder, err error, fallback string) {
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			msg = fallback
		}
		a.writeJSON(w, status, map[string]interface{}{
			"error":         msg,
			"notifications": rec.Notifications(),
		})
		return
	}
	a.writeJSON(w, http.StatusOK, sessionResponse(wf, rec))
}

// GetSessionHandler returns the caller's search session
// @Summary Get search session
// @Description Current query, results, selection, paging and scroll state
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string
// @Router /api/session [get]
func (a *API) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	wf, _, rec := a.sessionFor(r)
	a.respondSession(w, wf, rec, nil, "")
}

// SearchHandler runs a candidate search for the session
// @Summary Search candidates
// @Description Free-text similarity search over the workspace's candidates (the shared pool when workspace_id is omitted); replaces results and keeps the selection
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Search query"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/search [post]
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}

	wf, ctx, rec := a.sessionFor(r)
	ws, err := a.optionalWorkspace(ctx, req.WorkspaceID, caller(r).Subject)
	if err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}
	_, err = wf.Search(search.WithWorkspace(ctx, ws), req.Query)
	a.respondSession(w, wf, rec, err, "search failed")
}

// ToggleSelectionHandler flips one candidate in the selection
// @Summary Toggle candidate selection
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ToggleRequest true "Candidate id"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Router /api/selection/toggle [post]
func (a *API) ToggleSelectionHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}

	wf, ctx, rec := a.sessionFor(r)
	a.respondSession(w, wf, rec, wf.Toggle(ctx, req.ID), "")
}

// SelectionHandler selects every current result (POST /selection/all) or clears the selection (DELETE /selection)
// @Summary Select all or deselect all
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /api/selection [delete]
// @Router /api/selection/all [post]
func (a *API) SelectionHandler(w http.ResponseWriter, r *http.Request) {
	wf, ctx, rec := a.sessionFor(r)

	switch {
	case r.Method == http.MethodDelete && r.URL.Path == "/api/selection":
		wf.DeselectAll(ctx)
	case r.Method == http.MethodPost && r.URL.Path == "/api/selection/all":
		wf.SelectAll(ctx)
	default:
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	a.respondSession(w, wf, rec, nil, "")
}

// PageHandler changes the page and/or page size
// @Summary Change page
// @Description A new page size resets to page 1 before page is applied
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PageRequest true "Paging"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Router /api/page [post]
func (a *API) PageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req PageRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	if req.Page == 0 && req.PageSize == 0 {
		a.fail(w, invalidRequest("page or page_size is required"), "")
		return
	}

	wf, ctx, rec := a.sessionFor(r)
	if req.PageSize != 0 {
		if err := wf.SetPageSize(ctx, req.PageSize); err != nil {
			a.respondSession(w, wf, rec, err, "")
			return
		}
	}
	if req.Page != 0 {
		if err := wf.SetPage(ctx, req.Page); err != nil {
			a.respondSession(w, wf, rec, err, "")
			return
		}
	}
	a.respondSession(w, wf, rec, nil, "")
}

// ViewCandidateHandler records navigation to a candidate profile
// @Summary Open candidate
// @Description Stores the last viewed candidate and the scroll offset to restore
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ViewCandidateRequest true "Candidate and scroll offset"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Router /api/candidates/view [post]
func (a *API) ViewCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ViewCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}
	if req.ScrollOffset < 0 {
		a.fail(w, invalidRequest("scroll_offset must not be negative"), "")
		return
	}

	wf, ctx, rec := a.sessionFor(r)
	a.respondSession(w, wf, rec, wf.ViewCandidate(ctx, req.ID, req.ScrollOffset), "")
}

// ReturnHandler tells the client how to restore the results view
// @Summary Return to results
// @Description Restoration plan when arriving from a candidate profile, restore=false otherwise
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReturnRequest true "Navigation origin"
// @Success 200 {object} ReturnResponse
// @Router /api/navigation/return [post]
func (a *API) ReturnHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}

	wf, ctx, _ := a.sessionFor(r)
	plan, ok := wf.Return(ctx, workflow.Navigation{From: workflow.Origin(req.From)}, nil)
	if !ok {
		a.writeJSON(w, http.StatusOK, ReturnResponse{Restore: false})
		return
	}
	a.writeJSON(w, http.StatusOK, ReturnResponse{Restore: true, Restoration: &plan})
}

// CampaignsHandler serves GET (list) and POST (create) on /api/campaigns.
func (a *API) CampaignsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.ListCampaignsHandler(w, r)
	case http.MethodPost:
		a.CreateCampaignHandler(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// ListCampaignsHandler lists a workspace's campaigns
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param workspace_id query string true "Workspace id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/campaigns [get]
func (a *API) ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	wsID, err := requireWorkspaceID(r.URL.Query().Get("workspace_id"))
	if err != nil {
		a.fail(w, err, "")
		return
	}
	if _, err := a.memberRole(r.Context(), wsID, caller(r).Subject); err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	campaigns, err := a.store.ListCampaigns(r.Context(), wsID)
	if err != nil {
		a.fail(w, err, "failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*campaign.Campaign{}
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"campaigns": campaigns, "count": len(campaigns)})
}

// CreateCampaignHandler creates a campaign from the current selection
// @Summary Create campaign
// @Description Validates name then selection; on success the selection is cleared
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCampaignRequest true "Campaign"
// @Success 201 {object} CreateCampaignResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/campaigns [post]
func (a *API) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req CreateCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, err, "")
		return
	}

	wf, ctx, rec := a.sessionFor(r)
	ws, err := a.optionalWorkspace(ctx, req.WorkspaceID, caller(r).Subject)
	if err != nil {
		a.fail(w, err, "failed to check workspace membership")
		return
	}

	c, err := wf.CreateCampaign(ctx, ws, req.Name, req.Description)
	if err != nil {
		a.respondSession(w, wf, rec, err, "failed to create campaign")
		return
	}
	a.writeJSON(w, http.StatusCreated, CreateCampaignResponse{
		Campaign:      c,
		Session:       sessionResponse(wf, nil),
		Notifications: rec.Notifications(),
	})
}

// optionalWorkspace trims workspaceID and, when set, requires the user to be a member.
func (a *API) optionalWorkspace(ctx context.Context, workspaceID, userID string) (string, error) {
	ws := strings.TrimSpace(workspaceID)
	if ws == "" {
		return "", nil
	}
	if _, err := a.memberRole(ctx, ws, userID); err != nil {
		return "", err
	}
	return ws, nil
}

// memberRole maps "not a member" to errForbidden.
func (a *API) memberRole(ctx context.Context, workspaceID, userID string) (string, error) {
	role, err := a.store.MemberRole(ctx, workspaceID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", errForbidden
	}
	return role, err
}
