package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduvate/eduvate-api/internal/rbac"
	"github.com/eduvate/eduvate-api/internal/user"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	tok, err := a.IssueJWT(42, "asha@example.com", user.RoleStudent)
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.Equal(t, user.RoleStudent, c.Role)
	assert.NotEmpty(t, c.ID)

	other, err := a.IssueJWT(42, "asha@example.com", user.RoleStudent)
	require.NoError(t, err)
	c2, err := a.Parse(other)
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, c2.ID, "each token gets its own jti")
}

func TestParseRejects(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	tok, err := a.IssueJWT(1, "x@example.com", user.RoleAdmin)
	require.NoError(t, err)

	_, err = NewAuthService("other-secret", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewAuthService("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: issuer}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("test-secret", time.Hour)
	var gotSub, gotRole string
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"access token required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := a.IssueJWT(7, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", gotSub)
	assert.Equal(t, user.RoleAdmin, gotRole)
}

type fakeUsers map[int64]user.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := f[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func TestAttachRoleFromDB(t *testing.T) {
	users := fakeUsers{3: {ID: 3, Role: user.RoleStudent}}
	var gotRole string
	h := AttachRoleFromDB(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	// token still says admin but the account was demoted
	ctx := rbac.WithRole(WithSubject(context.Background(), "3"), user.RoleAdmin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.RoleStudent, gotRole)

	for _, sub := range []string{"99", "0", "abc", ""} {
		ctx = WithSubject(context.Background(), sub)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "subject %q", sub)
	}
}

func TestUserIDFromContext(t *testing.T) {
	id, ok := UserIDFromContext(WithSubject(context.Background(), "17"))
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	for _, sub := range []string{"", "-4", "0", "x1"} {
		_, ok := UserIDFromContext(WithSubject(context.Background(), sub))
		assert.False(t, ok, "subject %q", sub)
	}
}
