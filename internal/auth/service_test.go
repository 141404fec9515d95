package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"classroom/internal/apperr"
	"classroom/internal/session"
	"classroom/internal/supabase"
)

type fakeProvider struct {
	sentTo     string
	createUser bool
	verifyErr  error
	verified   supabase.Session
	refreshErr error
	refreshed  supabase.Session
	refreshes  int
	signedOut  string
}

func (f *fakeProvider) SignInWithOTP(_ context.Context, email string, createUser bool) error {
	f.sentTo = email
	f.createUser = createUser
	return nil
}

func (f *fakeProvider) VerifyOTP(context.Context, string, string) (supabase.Session, error) {
	return f.verified, f.verifyErr
}

func (f *fakeProvider) RefreshSession(context.Context, string) (supabase.Session, error) {
	f.refreshes++
	return f.refreshed, f.refreshErr
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.signedOut = token
	return nil
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("provider-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSendCode(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		wantErr  bool
		wantSent string
	}{
		{name: "normalises", email: "  Ada@Example.com ", wantSent: "ada@example.com"},
		{name: "blank", email: "   ", wantErr: true},
		{name: "not an address", email: "ada", wantErr: true},
		{name: "display name", email: "Ada <ada@example.com>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			err := NewService(p).SendCode(context.Background(), tt.email)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !apperr.Is(err, apperr.KindValidation) {
					t.Fatalf("SendCode() kind = %v, want validation", apperr.KindOf(err))
				}
				if p.sentTo != "" {
					t.Fatal("provider called for invalid email")
				}
				return
			}
			if p.sentTo != tt.wantSent || !p.createUser {
				t.Fatalf("provider got %q createUser=%v", p.sentTo, p.createUser)
			}
		})
	}
}

func TestVerifyCode(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name     string
		code     string
		provider *fakeProvider
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "success",
			code: "123456",
			provider: &fakeProvider{verified: supabase.Session{
				AccessToken:  "a",
				RefreshToken: "r",
				User:         supabase.User{ID: userID, Email: "ada@example.com"},
			}},
		},
		{
			name:     "blank code",
			code:     " ",
			provider: &fakeProvider{},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "rejected code",
			code:     "000000",
			provider: &fakeProvider{verifyErr: apperr.Wrap(apperr.KindUnauthorized, "unauthorized", errors.New("otp_expired"))},
			wantErr:  true,
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:     "provider down",
			code:     "123456",
			provider: &fakeProvider{verifyErr: apperr.Upstream(errors.New("dial tcp: refused"))},
			wantErr:  true,
			wantKind: apperr.KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewService(tt.provider).VerifyCode(context.Background(), "ada@example.com", tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if got := apperr.KindOf(err); got != tt.wantKind {
					t.Fatalf("VerifyCode() kind = %v, want %v", got, tt.wantKind)
				}
				return
			}
			if id.UserID != userID || id.AccessToken != "a" || id.RefreshToken != "r" || id.Email != "ada@example.com" {
				t.Fatalf("identity = %+v", id)
			}
		})
	}
}

func TestRehydrate(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	tests := []struct {
		name          string
		access        string
		refresh       string
		provider      *fakeProvider
		wantRefreshed bool
		wantKind      apperr.Kind
		wantErr       bool
	}{
		{
			name:     "valid token untouched",
			access:   tokenExpiringAt(t, now.Add(time.Hour)),
			refresh:  "r",
			provider: &fakeProvider{},
		},
		{
			name:    "expiring token refreshed",
			access:  tokenExpiringAt(t, now.Add(10*time.Second)),
			refresh: "r",
			provider: &fakeProvider{refreshed: supabase.Session{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				User:         supabase.User{ID: userID},
			}},
			wantRefreshed: true,
		},
		{
			name:     "garbage token refreshed",
			access:   "not-a-jwt",
			refresh:  "r",
			provider: &fakeProvider{refreshErr: apperr.Wrap(apperr.KindValidation, "invalid request", errors.New("invalid_grant"))},
			wantErr:  true,
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:     "expired without refresh token",
			access:   tokenExpiringAt(t, now.Add(-time.Minute)),
			provider: &fakeProvider{},
			wantErr:  true,
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:    "refresh for another user",
			access:  tokenExpiringAt(t, now.Add(-time.Minute)),
			refresh: "r",
			provider: &fakeProvider{refreshed: supabase.Session{
				AccessToken: "x",
				User:        supabase.User{ID: uuid.New()},
			}},
			wantErr:  true,
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:     "provider outage stays upstream",
			access:   tokenExpiringAt(t, now.Add(-time.Minute)),
			refresh:  "r",
			provider: &fakeProvider{refreshErr: apperr.Upstream(errors.New("timeout"))},
			wantErr:  true,
			wantKind: apperr.KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.provider)
			svc.now = func() time.Time { return now }

			in := session.Identity{UserID: userID, AccessToken: tt.access, RefreshToken: tt.refresh}
			got, refreshed, err := svc.Rehydrate(context.Background(), in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rehydrate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if k := apperr.KindOf(err); k != tt.wantKind {
					t.Fatalf("Rehydrate() kind = %v, want %v", k, tt.wantKind)
				}
				return
			}
			if refreshed != tt.wantRefreshed {
				t.Fatalf("refreshed = %v, want %v", refreshed, tt.wantRefreshed)
			}
			if !refreshed {
				if got != in || tt.provider.refreshes != 0 {
					t.Fatalf("valid identity changed: %+v (refreshes %d)", got, tt.provider.refreshes)
				}
				return
			}
			if got.AccessToken != "new-access" || got.RefreshToken != "new-refresh" || got.UserID != userID {
				t.Fatalf("refreshed identity = %+v", got)
			}
		})
	}
}

func TestSignOut(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(p)

	if err := svc.SignOut(context.Background(), session.Identity{}); err != nil {
		t.Fatalf("SignOut(empty) error = %v", err)
	}
	if p.signedOut != "" {
		t.Fatal("provider called without a token")
	}
	if err := svc.SignOut(context.Background(), session.Identity{AccessToken: "a"}); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if p.signedOut != "a" {
		t.Fatalf("signed out token = %q", p.signedOut)
	}
}
