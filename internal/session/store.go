package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// Options configures the session store.
type Options struct {
	Secret   string
	RedisURL string
	MaxAge   time.Duration
	Secure   bool
	Domain   string
}

// NewStore returns a Redis backed store when RedisURL is set and an encrypted
// cookie store otherwise. The returned close func releases the Redis client.
func NewStore(ctx context.Context, opts Options) (sessions.Store, func() error, error) {
	hashKey, blockKey, err := deriveKeys(opts.Secret)
	if err != nil {
		return nil, nil, err
	}
	maxAge := int(opts.MaxAge.Seconds())
	cookieOpts := &sessions.Options{
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   maxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if opts.RedisURL == "" {
		store := sessions.NewCookieStore(hashKey, blockKey)
		store.Options = cookieOpts
		store.MaxAge(maxAge)
		return store, func() error { return nil }, nil
	}

	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	store := NewRedisStore(client, hashKey, blockKey)
	store.Options = cookieOpts
	store.MaxAge(maxAge)
	return store, client.Close, nil
}
