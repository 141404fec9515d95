// Package auth implements one-time-code sign in against the provider and keeps
// stored provider sessions fresh.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"classroom/internal/apperr"
	"classroom/internal/session"
	"classroom/internal/supabase"
)

const defaultRefreshLeeway = 30 * time.Second

// Provider is the identity half of the remote service.
type Provider interface {
	SignInWithOTP(ctx context.Context, email string, createUser bool) error
	VerifyOTP(ctx context.Context, email, token string) (supabase.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (supabase.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type Service struct {
	provider Provider
	leeway   time.Duration
	now      func() time.Time
}

func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		leeway:   defaultRefreshLeeway,
		now:      time.Now,
	}
}

// SendCode asks the provider to email a code, creating the user if needed.
func (s *Service) SendCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := s.provider.SignInWithOTP(ctx, email, true); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	return nil
}

// VerifyCode exchanges email and code for the identity to store in session.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (session.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return session.Identity{}, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return session.Identity{}, apperr.Validation("code is required")
	}

	sess, err := s.provider.VerifyOTP(ctx, email, code)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) || apperr.Is(err, apperr.KindValidation) || apperr.Is(err, apperr.KindNotFound) {
			return session.Identity{}, apperr.Wrap(apperr.KindUnauthorized, "invalid code", err)
		}
		return session.Identity{}, fmt.Errorf("verify code: %w", err)
	}
	return identityFrom(sess, email), nil
}

// Rehydrate returns id unchanged while its access token is valid. When the
// token expires within the leeway it is refreshed and refreshed is true.
func (s *Service) Rehydrate(ctx context.Context, id session.Identity) (session.Identity, bool, error) {
	if !s.expiring(id.AccessToken) {
		return id, false, nil
	}
	if id.RefreshToken == "" {
		return id, false, apperr.Unauthorized("session expired")
	}

	sess, err := s.provider.RefreshSession(ctx, id.RefreshToken)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUpstream {
			return id, false, fmt.Errorf("refresh session: %w", err)
		}
		return id, false, apperr.Wrap(apperr.KindUnauthorized, "session expired", err)
	}
	if sess.User.ID != id.UserID {
		return id, false, apperr.Wrap(apperr.KindUnauthorized, "session expired",
			errors.New("refreshed session belongs to another user"))
	}
	return identityFrom(sess, id.Email), true, nil
}

// SignOut revokes the provider session. Callers clear the local session
// regardless of the result.
func (s *Service) SignOut(ctx context.Context, id session.Identity) error {
	if id.AccessToken == "" {
		return nil
	}
	if err := s.provider.SignOut(ctx, id.AccessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// expiring reads exp without verifying the signature; the provider verifies
// the token on every table call.
func (s *Service) expiring(token string) bool {
	if token == "" {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Add(s.leeway).Before(claims.ExpiresAt.Time)
}

func identityFrom(sess supabase.Session, fallbackEmail string) session.Identity {
	email := sess.User.Email
	if email == "" {
		email = fallbackEmail
	}
	return session.Identity{
		UserID:       sess.User.ID,
		Email:        email,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperr.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperr.Validation("email is invalid")
	}
	return email, nil
}
