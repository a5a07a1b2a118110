package sec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Christosun/flotech-report-system/db/kvdb/impls/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	i, err := NewIssuer("flotech", TokenConf{Secret: strings.Repeat("s", 32), TTLHours: 2})
	require.NoError(t, err)
	i.Now = func() time.Time { return testNow }
	return i
}

func TestPasswords(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)

	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "rahasia123"))
	assert.ErrorIs(t, CheckPassword(hash, "rahasia124"), ErrBadCredentials)
	assert.ErrorIs(t, CheckPassword("", "rahasia123"), ErrBadCredentials)
}

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer("flotech", TokenConf{Secret: "too-short"})
	assert.Error(t, err)

	i, err := NewIssuer("flotech", TokenConf{Secret: strings.Repeat("s", 32)})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, i.TTL)
}

func TestIssueParse(t *testing.T) {
	i := newTestIssuer(t)
	signed, claims, err := i.Issue(7, "budi@flotech.co.id", "engineer")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(2*time.Hour), claims.ExpiresAt.Time)
	assert.NotEmpty(t, claims.ID)

	got, err := i.Parse(signed)
	require.NoError(t, err)
	id, err := got.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "engineer", got.Role)
	assert.Equal(t, claims.ID, got.ID)

	// expired
	i.Now = func() time.Time { return testNow.Add(3 * time.Hour) }
	_, err = i.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
	i.Now = func() time.Time { return testNow }

	// other secret
	other := newTestIssuer(t)
	other.Secret = []byte(strings.Repeat("x", 32))
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// other issuer name
	other = newTestIssuer(t)
	other.Name = "someone-else"
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// none alg is refused
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = i.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// missing jti
	noID := *claims
	noID.ID = ""
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &noID).SignedString(i.Secret)
	require.NoError(t, err)
	_, err = i.Parse(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Empty(t, ExtractBearerToken("Bearer "))
	assert.Empty(t, ExtractBearerToken("Basic abc"))
	assert.Empty(t, ExtractBearerToken(""))
}

func TestRevocations(t *testing.T) {
	ctx := context.Background()
	kv := memory.New(nil)
	now := testNow
	kv.Now = func() time.Time { return now }
	rv := &Revocations{KV: kv, Prefix: "flotech", Now: kv.Now}

	_, claims, err := newTestIssuer(t).Issue(1, "a@b.c", "admin")
	require.NoError(t, err)

	revoked, err := rv.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rv.Revoke(ctx, claims))
	revoked, err = rv.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// the entry lives as long as the token
	now = testNow.Add(2*time.Hour + time.Second)
	revoked, err = rv.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	// already expired tokens are not stored
	require.NoError(t, rv.Revoke(ctx, claims))
	revoked, err = rv.Revoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLoginGuard(t *testing.T) {
	ctx := context.Background()
	kv := memory.New(nil)
	now := testNow
	kv.Now = func() time.Time { return now }
	g := &LoginGuard{KV: kv, Prefix: "flotech", MaxFailures: 2, Window: 10 * time.Minute}

	for want := int64(1); want <= 2; want++ {
		n, err := g.Fail(ctx, "Budi@Flotech.co.id ")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	locked, err := g.Locked(ctx, "budi@flotech.co.id")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = g.Locked(ctx, "andi@flotech.co.id")
	require.NoError(t, err)
	assert.False(t, locked)

	now = testNow.Add(11 * time.Minute)
	locked, err = g.Locked(ctx, "budi@flotech.co.id")
	require.NoError(t, err)
	assert.False(t, locked)

	_, err = g.Fail(ctx, "budi@flotech.co.id")
	require.NoError(t, err)
	require.NoError(t, g.Reset(ctx, "budi@flotech.co.id"))
	n, err := g.Fail(ctx, "budi@flotech.co.id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	off := &LoginGuard{KV: kv}
	locked, err = off.Locked(ctx, "budi@flotech.co.id")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestAuthenticator(t *testing.T) {
	i := newTestIssuer(t)
	kv := memory.New(nil)
	kv.Now = func() time.Time { return testNow }
	auth := &Authenticator{Issuer: i, Revocations: &Revocations{KV: kv, Prefix: "flotech", Now: kv.Now}}

	var seen *Claims
	h := auth.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFrom(r.Context())
	}))
	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := serve("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing Authorization Header")

	rec = serve("Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")

	signed, claims, err := i.Issue(3, "c@d.e", "engineer")
	require.NoError(t, err)
	rec = serve("Bearer " + signed)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "c@d.e", seen.Email)

	require.NoError(t, auth.Revocations.Revoke(context.Background(), claims))
	rec = serve("Bearer " + signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has been revoked")
}
