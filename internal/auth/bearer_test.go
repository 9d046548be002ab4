package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(t *testing.T, v *Verifier, sub string, exp time.Time) string {
	t.Helper()
	tok, err := v.Sign(Claims{
		Email: sub + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	require.NoError(t, err)
	return tok
}

func TestVerify(t *testing.T) {
	v := NewVerifier("secret")
	other := NewVerifier("other")
	valid := token(t, v, "user-1", time.Now().Add(time.Hour))

	claims, err := v.Verify("Bearer " + valid)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "user-1@example.com", claims.Email)

	cases := map[string]string{
		"missing":       "",
		"no scheme":     valid,
		"wrong scheme":  "Basic " + valid,
		"empty token":   "Bearer ",
		"wrong secret":  "Bearer " + token(t, other, "user-1", time.Now().Add(time.Hour)),
		"expired":       "Bearer " + token(t, v, "user-1", time.Now().Add(-time.Hour)),
		"no subject":    "Bearer " + token(t, v, "", time.Now().Add(time.Hour)),
		"garbage token": "Bearer abc.def.ghi",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(header)
			assert.Error(t, err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("secret")
	var seen string
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := FromContext(r.Context())
		require.True(t, ok)
		seen = c.Subject
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, v, "user-9", time.Now().Add(time.Hour)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-9", seen)
}
