package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"classroom/internal/apperr"
	"classroom/internal/httpx"
	"classroom/internal/session"
)

// Rehydrator revalidates the provider tokens stored in a session.
type Rehydrator interface {
	Rehydrate(ctx context.Context, id session.Identity) (session.Identity, bool, error)
}

// RequirePage sends visitors without an access token to the login page.
func RequirePage(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mgr.HasAccessToken(r) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPI resolves the caller's identity for JSON endpoints. The stored
// tokens are rehydrated (refreshed when close to expiry) and the resulting
// identity is placed on the request context. Requests without a usable
// session get 401.
func RequireAPI(mgr *session.Manager, rh Rehydrator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := mgr.Load(r)
			if !ok {
				httpx.RespondError(w, r, apperr.Unauthorized("login required"))
				return
			}

			fresh, refreshed, err := rh.Rehydrate(r.Context(), id)
			if err != nil {
				if apperr.KindOf(err) != apperr.KindUpstream {
					if clearErr := mgr.Clear(w, r); clearErr != nil {
						hlog.FromRequest(r).Warn().Err(clearErr).Msg("clear session")
					}
				}
				httpx.RespondError(w, r, err)
				return
			}
			if refreshed {
				if err := mgr.Save(w, r, fresh); err != nil {
					hlog.FromRequest(r).Warn().Err(err).Msg("save refreshed session")
				}
			}

			log := hlog.FromRequest(r).With().Str("user_id", fresh.UserID.String()).Logger()
			ctx := log.WithContext(session.NewContext(r.Context(), fresh))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
