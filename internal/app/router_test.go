package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/use-of-force/internal/auth"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
	"github.com/heartmarshall/use-of-force/internal/transport/rest"
)

const routerSecret = "router-test-secret-at-least-32-characters"

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *auth.JWTManager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwt := auth.NewJWTManager(routerSecret, "hmpps-auth")

	// Report handlers are never reached in these tests: every request is
	// rejected by authentication or authorisation first.
	var svc *edit.Service

	return NewRouter(logger, RouterDeps{
		Reports:          rest.NewReportHandler(svc, logger),
		Health:           rest.NewHealthHandler(okPinger{}, "test"),
		Metrics:          http.NotFoundHandler(),
		Tokens:           jwt,
		CoordinatorRoles: []string{"ROLE_USE_OF_FORCE_COORDINATOR"},
	}), jwt
}

func TestRouter_ProbesArePublic(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, path := range []string{"/live", "/ready", "/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), path)
	}
}

func TestRouter_ReportRoutesRequireCoordinator(t *testing.T) {
	t.Parallel()

	router, jwt := newTestRouter(t)

	officer, err := jwt.GenerateAccessToken(auth.Identity{
		Username:    "OFFICER",
		Authorities: []string{"ROLE_PRISON"},
	}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"invalid token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"not a coordinator", "Bearer " + officer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/reports/1/edit-history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
