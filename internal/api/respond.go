package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"prosty-screening/internal/auth"
	"prosty-screening/internal/campaign"
	"prosty-screening/internal/payments"
	"prosty-screening/internal/search"
	"prosty-screening/internal/storage"
	"prosty-screening/internal/workflow"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps err to a status code. 5xx responses carry fallback, not the error text.
func (a *API) fail(w http.ResponseWriter, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.log.Error(fallback, zap.Error(err))
		a.writeError(w, status, fallback)
		return
	}
	a.writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, campaign.ErrMissingName),
		errors.Is(err, campaign.ErrMissingCandidates),
		errors.Is(err, workflow.ErrInvalidPage),
		errors.Is(err, workflow.ErrMissingID),
		errors.Is(err, workflow.ErrInvalidInput),
		errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInProgress), errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, payments.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return invalidRequest("invalid JSON")
	}
	return nil
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"method not allowed"}` + "\n"))
		return false
	}
	return true
}

var (
	errInvalidRequest = errors.New("invalid request")
	errForbidden      = errors.New("insufficient workspace permissions")
)

// requestError is a 400 with a client-facing message.
type requestError struct{ msg string }

func (e requestError) Error() string        { return e.msg }
func (e requestError) Is(target error) bool { return target == errInvalidRequest }

func invalidRequest(msg string) error { return requestError{msg: msg} }
