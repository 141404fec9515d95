package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"classroom/internal/auth"
	"classroom/internal/config"
	"classroom/internal/database"
	"classroom/internal/handler"
	"classroom/internal/repository"
	"classroom/internal/repository/postgres"
	"classroom/internal/repository/rest"
	"classroom/internal/session"
	"classroom/internal/supabase"
	"classroom/internal/telemetry"
)

const serviceName = "classroom"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("parse log level")
	}
	zerolog.SetGlobalLevel(level)

	cleanup, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("init otel")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown otel")
		}
	}()

	sessionStore, closeSessions, err := session.NewStore(ctx, session.Options{
		Secret:   cfg.SecretKey,
		RedisURL: cfg.RedisURL,
		MaxAge:   cfg.SessionMaxAge,
		Secure:   cfg.CookieSecure,
		Domain:   cfg.CookieDomain,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open session store")
	}
	defer func() {
		if err := closeSessions(); err != nil {
			log.Error().Err(err).Msg("close session store")
		}
	}()

	client, err := supabase.New(supabase.Config{
		URL:     cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create supabase client")
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("prepare database")
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("close database")
			}
		}()
	}

	var store repository.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		store = postgres.NewStore(db)
	default:
		store = rest.NewStore(client)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := handler.Router(handler.RouterOptions{
		Sessions:       session.NewManager(sessionStore, session.DefaultCookieName),
		Auth:           auth.NewService(client),
		Store:          store,
		Logger:         log.Logger,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		RequestTimeout: cfg.UpstreamTimeout + 5*time.Second,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("store", cfg.StoreBackend).
			Bool("redis_sessions", cfg.RedisURL != "").
			Msg("starting classroom")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}

// openDatabase connects when a DSN is configured and applies migrations when
// asked to. It returns a nil *sql.DB when no database is configured.
func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, nil
	}
	db, err := database.Open(ctx, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart {
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Msg("migrations applied")
	}
	return db, nil
}
