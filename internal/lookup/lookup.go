// Package lookup resolves prison and location identifiers to display names.
// A Resolver is created per rendering pass and batches its lookups through
// DataLoaders, consulting the name cache before the upstream APIs.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/use-of-force/internal/adapter/provider/prison"
	"github.com/heartmarshall/use-of-force/internal/metrics"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
)

const (
	KindPrison   = "prison"
	KindLocation = "location"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond

	defaultConcurrency = 8
)

//go:generate moq -out upstream_mock_test.go -pkg lookup . upstream
//go:generate moq -out cache_mock_test.go -pkg lookup . nameCache

type upstream interface {
	ListPrisons(ctx context.Context, token string) ([]prison.Prison, error)
	GetLocationName(ctx context.Context, token, locationID string) (string, error)
}

type nameCache interface {
	GetMany(ctx context.Context, kind string, ids []string) (map[string]string, error)
	SetMany(ctx context.Context, kind string, names map[string]string) error
}

// Factory creates Resolvers bound to a system token.
type Factory struct {
	upstream    upstream
	cache       nameCache
	metrics     *metrics.Metrics
	concurrency int
	log         *slog.Logger
}

// NewFactory creates a Factory. cache may be nil, in which case every
// lookup goes upstream.
func NewFactory(logger *slog.Logger, up upstream, cache nameCache, m *metrics.Metrics, concurrency int) *Factory {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Factory{
		upstream:    up,
		cache:       cache,
		metrics:     m,
		concurrency: concurrency,
		log:         logger.With("service", "lookup"),
	}
}

// ForToken returns a Resolver that calls the upstream APIs with token.
// Results are memoised for the lifetime of the returned Resolver.
func (f *Factory) ForToken(token string) edit.NameResolver {
	return f.newResolver(token)
}

func (f *Factory) newResolver(token string) *Resolver {
	r := &Resolver{factory: f, token: token}
	r.prisons = newLoader(r.batchPrisons)
	r.locations = newLoader(r.batchLocations)
	return r
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader(batchFn dataloader.BatchFunc[string, string]) *dataloader.Loader[string, string] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[string, string](wait),
		dataloader.WithBatchCapacity[string, string](maxBatch),
	)
}

// Resolver implements edit.NameResolver.
type Resolver struct {
	factory   *Factory
	token     string
	prisons   *dataloader.Loader[string, string]
	locations *dataloader.Loader[string, string]
}

// PrisonName returns the description of the prison with the given agency id.
func (r *Resolver) PrisonName(ctx context.Context, agencyID string) (string, error) {
	return r.prisons.Load(ctx, agencyID)()
}

// LocationName returns the local name of an incident location.
func (r *Resolver) LocationName(ctx context.Context, locationID string) (string, error) {
	return r.locations.Load(ctx, locationID)()
}
