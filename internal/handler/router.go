package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"classroom/internal/middleware"
	"classroom/internal/repository"
	"classroom/internal/session"
)

// RouterOptions carries everything the HTTP surface depends on.
type RouterOptions struct {
	Sessions *session.Manager
	Auth     Authenticator
	Store    repository.Store
	Logger   zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry

	AllowedOrigins []string
	// RateLimit is requests per minute per client IP; 0 disables limiting.
	RateLimit      int
	RequestTimeout time.Duration
}

// Router builds the HTTP router with pages, sign-in, the JSON API, health and
// metrics routes.
func Router(opts RouterOptions) http.Handler {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewMetrics(opts.Registry).Handler)

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))
	if opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	pages := NewPageHandler(opts.Sessions)
	authH := NewAuthHandler(opts.Auth, opts.Sessions)
	classes := NewClassHandler(opts.Store.Classes)
	todos := NewTodoHandler(opts.Store.Classes, opts.Store.Todos)
	assignments := NewAssignmentHandler(opts.Store.Classes, opts.Store.Assignments)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout))

		r.Get("/", pages.Index)
		r.Get("/login", pages.Login)
		r.With(middleware.RequirePage(opts.Sessions)).Get("/dashboard", pages.Dashboard)

		r.Post("/send-code", authH.SendCode)
		r.Post("/verify-code", authH.VerifyCode)
		r.Get("/logout", authH.Logout)

		r.Route("/api/classes", func(r chi.Router) {
			r.Use(middleware.RequireAPI(opts.Sessions, opts.Auth))

			r.Get("/", classes.List)
			r.Post("/", classes.Create)
			r.Route("/{classID}", func(r chi.Router) {
				r.Get("/", classes.Get)
				r.Put("/", classes.Update)
				r.Delete("/", classes.Delete)

				r.Get("/todos", todos.List)
				r.Post("/todos", todos.Create)
				r.Get("/todos/{todoID}", todos.Get)
				r.Put("/todos/{todoID}", todos.Update)
				r.Delete("/todos/{todoID}", todos.Delete)

				r.Get("/assignments", assignments.List)
				r.Post("/assignments", assignments.Create)
				r.Get("/assignments/{assignmentID}", assignments.Get)
				r.Put("/assignments/{assignmentID}", assignments.Update)
				r.Delete("/assignments/{assignmentID}", assignments.Delete)
			})
		})
	})

	return r
}

// requestIDLogger adds chi's request id to the request logger.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}
