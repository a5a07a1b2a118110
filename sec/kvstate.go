package sec

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Christosun/flotech-report-system/db/kvdb"
)

// Revocations is the list of logged-out token ids. Entries expire with the token.
type Revocations struct {
	KV     kvdb.Client
	Prefix string // app name, keeps several apps apart in one KV database
	Now    func() time.Time
}

func (r *Revocations) key(jti string) string {
	return r.Prefix + "_revoked:" + jti
}

// Revoke stores the token id until the token would expire anyway
func (r *Revocations) Revoke(ctx context.Context, c *Claims) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	if c.ExpiresAt == nil {
		return nil
	}
	ttl := c.ExpiresAt.Sub(now())
	if ttl <= 0 {
		return nil
	}
	return r.KV.Set(ctx, r.key(c.ID), 1, ttl)
}

func (r *Revocations) Revoked(ctx context.Context, jti string) (bool, error) {
	return r.KV.Exists(ctx, r.key(jti))
}

// LoginGuard counts failed logins per email inside a sliding window
// and locks the email once MaxFailures is reached.
type LoginGuard struct {
	KV          kvdb.Client
	Prefix      string
	MaxFailures int64
	Window      time.Duration
}

// key hashes the normalized email so addresses never show up as KV keys
func (g *LoginGuard) key(email string) string {
	return g.Prefix + "_loginfail:" + HashHexSHA256(strings.ToLower(strings.TrimSpace(email)))
}

func (g *LoginGuard) Locked(ctx context.Context, email string) (bool, error) {
	if g.MaxFailures <= 0 {
		return false, nil
	}
	val, found, err := g.KV.Get(ctx, g.key(email))
	if err != nil || !found {
		return false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, err
	}
	return n >= g.MaxFailures, nil
}

// Fail records one failed attempt. The window starts with the first failure.
func (g *LoginGuard) Fail(ctx context.Context, email string) (int64, error) {
	key := g.key(email)
	n, err := g.KV.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if _, err = g.KV.Expire(ctx, key, g.Window); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	_, err := g.KV.Delete(ctx, g.key(email))
	return err
}
