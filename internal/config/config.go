package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Config holds runtime configuration for the classroom server.
type Config struct {
	Addr            string        `env:"ADDR,default=:8080"`
	SecretKey       string        `env:"SECRET_KEY,required"`
	SupabaseURL     string        `env:"SUPABASE_URL,required"`
	SupabaseAnonKey string        `env:"SUPABASE_ANON_KEY,required"`
	StoreBackend    string        `env:"STORE_BACKEND,default=rest"`
	DBDSN           string        `env:"DB_DSN"`
	MigrateOnStart  bool          `env:"MIGRATE_ON_START,default=false"`
	RedisURL        string        `env:"REDIS_URL"`
	SessionMaxAge   time.Duration `env:"SESSION_MAX_AGE,default=168h"`
	CookieSecure    bool          `env:"COOKIE_SECURE,default=false"`
	CookieDomain    string        `env:"COOKIE_DOMAIN"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=10s"`
	RateLimit       int           `env:"RATE_LIMIT,default=100"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendREST:
	case BackendPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required for the postgres store backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.MigrateOnStart && c.DBDSN == "" {
		return errors.New("DB_DSN is required when MIGRATE_ON_START is set")
	}
	if c.SessionMaxAge <= 0 {
		return errors.New("SESSION_MAX_AGE must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("RATE_LIMIT must not be negative")
	}
	return nil
}
