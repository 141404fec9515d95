package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func baseEnv() map[string]string {
	return map[string]string{
		"SECRET_KEY":        "secret",
		"SUPABASE_URL":      "https://example.supabase.co",
		"SUPABASE_ANON_KEY": "anon",
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			env:  baseEnv(),
			check: func(t *testing.T, cfg Config) {
				if cfg.Addr != ":8080" {
					t.Fatalf("Addr = %q, want :8080", cfg.Addr)
				}
				if cfg.StoreBackend != BackendREST {
					t.Fatalf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendREST)
				}
				if cfg.SessionMaxAge != 168*time.Hour {
					t.Fatalf("SessionMaxAge = %v", cfg.SessionMaxAge)
				}
				if cfg.RateLimit != 100 {
					t.Fatalf("RateLimit = %d, want 100", cfg.RateLimit)
				}
			},
		},
		{
			name:    "missing secret",
			env:     map[string]string{"SUPABASE_URL": "https://x", "SUPABASE_ANON_KEY": "k"},
			wantErr: true,
		},
		{
			name: "postgres without dsn",
			env: func() map[string]string {
				env := baseEnv()
				env["STORE_BACKEND"] = "postgres"
				return env
			}(),
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			env: func() map[string]string {
				env := baseEnv()
				env["STORE_BACKEND"] = "postgres"
				env["DB_DSN"] = "postgres://localhost/classroom"
				return env
			}(),
			check: func(t *testing.T, cfg Config) {
				if cfg.DBDSN == "" {
					t.Fatal("DBDSN not loaded")
				}
			},
		},
		{
			name: "unknown backend",
			env: func() map[string]string {
				env := baseEnv()
				env["STORE_BACKEND"] = "sqlite"
				return env
			}(),
			wantErr: true,
		},
		{
			name: "migrate without dsn",
			env: func() map[string]string {
				env := baseEnv()
				env["MIGRATE_ON_START"] = "true"
				return env
			}(),
			wantErr: true,
		},
		{
			name: "origins list",
			env: func() map[string]string {
				env := baseEnv()
				env["CORS_ALLOWED_ORIGINS"] = "http://a.test,http://b.test"
				return env
			}(),
			check: func(t *testing.T, cfg Config) {
				if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
					t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil || tt.check == nil {
				return
			}
			tt.check(t, cfg)
		})
	}
}
