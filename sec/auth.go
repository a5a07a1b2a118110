package sec

import (
	"context"
	"errors"
	"net/http"

	"github.com/Christosun/flotech-report-system/responses"
	"go.uber.org/zap"
)

type claimsKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the claims stored by Authenticator
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// Authenticator is a routing.HandlerWrapper that lets through requests
// carrying a valid, unrevoked bearer token
type Authenticator struct {
	Issuer      *Issuer
	Revocations *Revocations // optional
}

func (a *Authenticator) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Authenticate(r)
		if err != nil {
			zap.L().Debug("request unauthenticated", zap.String("path", r.URL.Path), zap.Error(err))
			responses.WriteError(w, http.StatusUnauthorized, unauthorizedMessage(err), responses.CodeUnauthorized)
			return
		}
		inner.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

var (
	errMissingToken = errors.New("sec: missing bearer token")
	errRevoked      = errors.New("sec: token revoked")
)

// Authenticate checks the Authorization header of r
func (a *Authenticator) Authenticate(r *http.Request) (*Claims, error) {
	signed := ExtractBearerToken(r.Header.Get("Authorization"))
	if signed == "" {
		return nil, errMissingToken
	}
	claims, err := a.Issuer.Parse(signed)
	if err != nil {
		return nil, err
	}
	if a.Revocations != nil {
		revoked, err := a.Revocations.Revoked(r.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, errRevoked
		}
	}
	return claims, nil
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "Missing Authorization Header"
	case errors.Is(err, errRevoked):
		return "Token has been revoked"
	}
	return "Invalid or expired token"
}
