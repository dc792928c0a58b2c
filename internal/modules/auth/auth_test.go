package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	svc, err := NewService("s3cret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("site-office")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "site-office", subject)
}

func TestVerifyRejects(t *testing.T) {
	svc, err := NewService("s3cret", time.Hour)
	require.NoError(t, err)
	other, err := NewService("different", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("someone")
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := svc.(*service)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("someone")
	require.NoError(t, err)
	expired.now = time.Now
	_, err = svc.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestMiddleware(t *testing.T) {
	svc, err := NewService("s3cret", time.Hour)
	require.NoError(t, err)
	token, err := svc.Issue("site-office")
	require.NoError(t, err)

	var seen string
	h := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "site-office", seen)
}
