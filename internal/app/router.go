package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/use-of-force/internal/auth"
	"github.com/heartmarshall/use-of-force/internal/transport/middleware"
	"github.com/heartmarshall/use-of-force/internal/transport/rest"
)

// RouterDeps holds the handlers and settings the HTTP router is built from.
type RouterDeps struct {
	Reports          *rest.ReportHandler
	Health           *rest.HealthHandler
	Metrics          http.Handler
	Tokens           *auth.JWTManager
	CoordinatorRoles []string
}

// NewRouter mounts the health, metrics and report edit routes. Report
// routes require a coordinator role; probes and metrics are public.
func NewRouter(logger *slog.Logger, deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	deps.Reports.Register(mux, middleware.RequireRole(deps.CoordinatorRoles...))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Auth(deps.Tokens),
		middleware.Logger(logger),
	)(mux)
}
