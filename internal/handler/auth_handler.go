package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"classroom/internal/httpx"
	"classroom/internal/middleware"
	"classroom/internal/session"
)

// Authenticator is the sign-in surface the handlers and the API gate need.
type Authenticator interface {
	middleware.Rehydrator
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (session.Identity, error)
	SignOut(ctx context.Context, id session.Identity) error
}

type AuthHandler struct {
	auth     Authenticator
	sessions *session.Manager
}

func NewAuthHandler(auth Authenticator, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondAuthError(w, r, err)
		return
	}
	if err := h.auth.SendCode(r.Context(), req.Email); err != nil {
		httpx.RespondAuthError(w, r, err)
		return
	}
	success(w)
}

// VerifyCode signs the caller in, replacing any session the browser held.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondAuthError(w, r, err)
		return
	}
	id, err := h.auth.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		httpx.RespondAuthError(w, r, err)
		return
	}
	if err := h.sessions.Start(w, r, id); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("start session")
		httpx.RespondAuthError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("user_id", id.UserID.String()).Msg("signed in")
	success(w)
}

// Logout revokes the provider session when possible and always clears the
// local one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.sessions.Load(r); ok {
		if err := h.auth.SignOut(r.Context(), id); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("provider sign out")
		}
	}
	if err := h.sessions.Clear(w, r); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("clear session")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
