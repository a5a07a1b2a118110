package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/requests"
	"github.com/Christosun/flotech-report-system/responses"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/Christosun/flotech-report-system/stores"
	"go.uber.org/zap"
)

const msgBadCredentials = "Email atau password salah"

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Name        string       `json:"name"`
	User        *models.User `json:"user"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var body sec.LoginRequestBody
	if !decode(w, r, &body) {
		return
	}
	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		badRequest(w, "Email dan password wajib diisi")
		return
	}
	ctx := r.Context()
	log := zap.L().With(zap.String("ip", requests.ClientIP(r)))

	if a.LoginGuard != nil {
		locked, err := a.LoginGuard.Locked(ctx, body.Email)
		if err != nil {
			writeStoreError(w, r, err, "", "")
			return
		}
		if locked {
			log.Warn("login locked")
			responses.WriteError(w, http.StatusTooManyRequests,
				"Terlalu banyak percobaan login, coba lagi nanti", responses.CodeLocked)
			return
		}
	}

	user, err := a.Stores.Users.GetByEmail(ctx, body.Email)
	if err == nil {
		err = sec.CheckPassword(user.PasswordHash, body.Password)
	}
	if errors.Is(err, stores.ErrNotFound) || errors.Is(err, sec.ErrBadCredentials) {
		if a.LoginGuard != nil {
			if n, ferr := a.LoginGuard.Fail(ctx, body.Email); ferr != nil {
				log.Error("recording login failure", zap.Error(ferr))
			} else {
				log.Info("login failed", zap.Int64("failures", n))
			}
		}
		responses.WriteError(w, http.StatusUnauthorized, msgBadCredentials, responses.CodeUnauthorized)
		return
	}
	if err != nil {
		writeStoreError(w, r, err, msgBadCredentials, "")
		return
	}

	if a.LoginGuard != nil {
		if err := a.LoginGuard.Reset(ctx, body.Email); err != nil {
			log.Error("resetting login failures", zap.Error(err))
		}
	}
	token, claims, err := a.Issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		writeStoreError(w, r, err, "", "")
		return
	}
	log.Info("login", zap.Int64("user_id", user.ID))
	responses.EncodeWriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		Name:        user.Name,
		User:        user,
	})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := sec.ClaimsFrom(r.Context())
	if !ok {
		responses.WriteError(w, http.StatusUnauthorized, "Missing Authorization Header", responses.CodeUnauthorized)
		return
	}
	if a.Revocations != nil {
		if err := a.Revocations.Revoke(r.Context(), claims); err != nil {
			writeStoreError(w, r, err, "", "")
			return
		}
	}
	responses.WriteMessage(w, http.StatusOK, "Logged out")
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Stores.Users.Get(r.Context(), userID(r))
	if err != nil {
		writeStoreError(w, r, err, "User not found", "")
		return
	}
	responses.EncodeWriteJSON(w, http.StatusOK, user)
}
