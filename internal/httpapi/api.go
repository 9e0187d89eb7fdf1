// Package httpapi is the HTTP surface of the Taskdeck service: routing, the
// two auth gates and the JSON handlers for users, lists and tasks.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"taskdeck.org/internal/auth"
	"taskdeck.org/internal/obs"
	"taskdeck.org/internal/todo"
)

// ReadyProbe checks readiness dependencies, typically a DB ping.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options wires the API's collaborators.
type Options struct {
	Auth       *auth.Service
	Todo       *todo.Service
	ReadyProbe ReadyProbe
	Version    string

	AllowedOrigins     []string
	RateLimitPerSecond int
	RateLimitBurst     int
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	todo       *todo.Service
	readyProbe ReadyProbe
	version    string

	allowedOrigins     []string
	rateLimitPerSecond int
	rateLimitBurst     int
}

// New constructs the API and registers all routes.
func New(opts Options) *API {
	a := &API{
		mux:                http.NewServeMux(),
		auth:               opts.Auth,
		todo:               opts.Todo,
		readyProbe:         opts.ReadyProbe,
		version:            opts.Version,
		allowedOrigins:     opts.AllowedOrigins,
		rateLimitPerSecond: opts.RateLimitPerSecond,
		rateLimitBurst:     opts.RateLimitBurst,
	}
	if a.rateLimitPerSecond <= 0 {
		a.rateLimitPerSecond = 25
	}
	if a.rateLimitBurst <= 0 {
		a.rateLimitBurst = 50
	}

	// health/ready/metrics
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.Handle("/metrics", obs.Handler())

	// users: signup and login are public, the refresh endpoint sits behind
	// the refresh-session gate.
	a.mux.HandleFunc("/users", a.handleSignup)
	a.mux.HandleFunc("/users/login", a.handleLogin)
	a.mux.Handle("/users/me/access-token", a.requireRefreshSession(http.HandlerFunc(a.handleAccessToken)))

	// lists and tasks sit behind the access-token gate.
	a.mux.Handle("/lists", a.requireAccessToken(http.HandlerFunc(a.handleListsCollection)))
	a.mux.Handle("/lists/", a.requireAccessToken(http.HandlerFunc(a.handleListSubtree)))

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "resource not found")
	})

	return a
}

// Handler returns the API wrapped in the full middleware chain.
func (a *API) Handler() http.Handler {
	handler := http.Handler(a.mux)
	handler = RateLimit(handler, a.rateLimitBurst, a.rateLimitPerSecond)
	handler = MaxBodyBytes(handler, 1<<20)
	handler = CORS(handler, a.allowedOrigins)
	handler = SecurityHeaders(handler)
	handler = LoggingJSON(handler)
	handler = RequestID(handler)
	return obs.Instrument(handler)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "taskdeck-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
