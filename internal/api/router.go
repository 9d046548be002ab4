package api

import (
	"context"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

func NewRouter(a *API, swaggerURL string) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", a.HealthHandler)

	protect := func(h http.HandlerFunc) http.Handler {
		return a.verifier.Middleware(h)
	}

	// Search session
	mux.Handle("/api/session", protect(a.GetSessionHandler))
	mux.Handle("/api/search", protect(a.SearchHandler))
	mux.Handle("/api/selection/toggle", protect(a.ToggleSelectionHandler))
	mux.Handle("/api/selection/all", protect(a.SelectionHandler))
	mux.Handle("/api/selection", protect(a.SelectionHandler))
	mux.Handle("/api/page", protect(a.PageHandler))
	mux.Handle("/api/candidates/view", protect(a.ViewCandidateHandler))
	mux.Handle("/api/navigation/return", protect(a.ReturnHandler))
	mux.Handle("/api/campaigns", protect(a.CampaignsHandler))
	mux.Handle("/api/candidates/upload", protect(a.UploadCandidateHandler))

	// Backend functions
	mux.Handle("/functions/check-email", protect(a.CheckEmailHandler))
	mux.Handle("/functions/create-workspace", protect(a.CreateWorkspaceHandler))
	mux.Handle("/functions/invite-user", protect(a.InviteUserHandler))
	mux.Handle("/functions/increment-token-balance", protect(a.IncrementTokenBalanceHandler))
	mux.Handle("/functions/update-workspace-payment", protect(a.UpdateWorkspacePaymentHandler))
	mux.Handle("/functions/verify-subscription", protect(a.VerifySubscriptionHandler))
	mux.Handle("/functions/create-checkout", protect(a.CreateCheckoutHandler))

	// Signed by the payment platform, no bearer token
	mux.HandleFunc("/functions/stripe-webhook", a.StripeWebhookHandler)

	return a.logRequests(mux)
}

// HealthHandler reports whether the database is reachable
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
