package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

type component struct {
	name     string
	check    CheckFunc
	required bool
}

// HealthHandler serves the liveness, readiness and full health probes.
// The database is required: without it the service is down. Components added
// with AddCheck are optional and only degrade the reported status.
type HealthHandler struct {
	version    string
	components []component
}

// NewHealthHandler creates a HealthHandler with the database as its one
// required component.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{
		version:    version,
		components: []component{{name: "database", check: db.Ping, required: true}},
	}
}

// AddCheck registers an optional component, such as the name cache.
func (h *HealthHandler) AddCheck(name string, check CheckFunc) {
	h.components = append(h.components, component{name: name, check: check})
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 200 when every required component is up, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.probe(r.Context(), true)
	writeJSON(w, httpStatus(status), HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health probes every component and reports each one with its latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.probe(r.Context(), false)
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// probe runs the checks concurrently under one deadline.
func (h *HealthHandler) probe(ctx context.Context, requiredOnly bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, len(h.components))
		status     = statusOK
	)

	var g errgroup.Group
	for _, c := range h.components {
		if requiredOnly && !c.required {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := c.check(ctx)
			latency := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				components[c.name] = CompStatus{Status: statusDown}
				switch {
				case c.required:
					status = statusDown
				case status == statusOK:
					status = statusDegraded
				}
				return nil
			}
			components[c.name] = CompStatus{Status: statusOK, Latency: latency.String()}
			return nil
		})
	}
	_ = g.Wait()

	return status, components
}

func httpStatus(status string) int {
	if status == statusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
