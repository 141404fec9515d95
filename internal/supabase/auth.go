package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"classroom/internal/apperr"
)

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the token pair issued by the auth API.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// SignInWithOTP asks the provider to email a one-time code to email.
func (c *Client) SignInWithOTP(ctx context.Context, email string, createUser bool) error {
	body := map[string]any{
		"email":       email,
		"create_user": createUser,
	}
	return c.do(ctx, http.MethodPost, "auth/v1/otp", nil, body, nil, nil)
}

// VerifyOTP exchanges an emailed code for a session.
func (c *Client) VerifyOTP(ctx context.Context, email, token string) (Session, error) {
	body := map[string]any{
		"type":  "email",
		"email": email,
		"token": token,
	}
	var s Session
	if err := c.do(ctx, http.MethodPost, "auth/v1/verify", nil, body, nil, &s); err != nil {
		return Session{}, err
	}
	if err := s.validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// RefreshSession trades a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	query := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]any{"refresh_token": refreshToken}

	var s Session
	if err := c.do(ctx, http.MethodPost, "auth/v1/token", query, body, nil, &s); err != nil {
		return Session{}, err
	}
	if err := s.validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// SignOut revokes the refresh tokens of the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.WithToken(accessToken).do(ctx, http.MethodPost, "auth/v1/logout", nil, nil, nil, nil)
}

func (s Session) validate() error {
	if s.AccessToken == "" || s.User.ID == uuid.Nil {
		return apperr.Wrap(apperr.KindUnauthorized, "unauthorized", errors.New("provider returned no session"))
	}
	return nil
}
