package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// batchPrisons resolves agency ids with a single listing call for all misses.
func (r *Resolver) batchPrisons(ctx context.Context, keys []string) []*dataloader.Result[string] {
	names, misses := r.fromCache(ctx, KindPrison, keys)
	if len(misses) == 0 {
		return mapResults(KindPrison, keys, names, nil)
	}

	f := r.factory
	start := time.Now()
	prisons, err := f.upstream.ListPrisons(ctx, r.token)
	f.metrics.ObserveLookupLatency(KindPrison, time.Since(start))
	if err != nil {
		f.metrics.IncrementLookupFailures(KindPrison)
		f.log.WarnContext(ctx, "list prisons failed",
			slog.Int("ids", len(misses)),
			slog.String("error", err.Error()),
		)
		failed := make(map[string]error, len(misses))
		for _, id := range misses {
			failed[id] = err
		}
		return mapResults(KindPrison, keys, names, failed)
	}

	wanted := make(map[string]struct{}, len(misses))
	for _, id := range misses {
		wanted[id] = struct{}{}
	}
	fetched := make(map[string]string, len(misses))
	for _, p := range prisons {
		if _, ok := wanted[p.AgencyID]; ok {
			fetched[p.AgencyID] = p.Description
			names[p.AgencyID] = p.Description
		}
	}
	r.toCache(ctx, KindPrison, fetched)

	return mapResults(KindPrison, keys, names, nil)
}

// batchLocations resolves location ids with one bounded call per miss.
func (r *Resolver) batchLocations(ctx context.Context, keys []string) []*dataloader.Result[string] {
	names, misses := r.fromCache(ctx, KindLocation, keys)
	if len(misses) == 0 {
		return mapResults(KindLocation, keys, names, nil)
	}

	f := r.factory
	var (
		mu      sync.Mutex
		fetched = make(map[string]string, len(misses))
		failed  = make(map[string]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, id := range misses {
		g.Go(func() error {
			start := time.Now()
			name, err := f.upstream.GetLocationName(gctx, r.token, id)
			f.metrics.ObserveLookupLatency(KindLocation, time.Since(start))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.metrics.IncrementLookupFailures(KindLocation)
				f.log.WarnContext(ctx, "location lookup failed",
					slog.String("location_id", id),
					slog.String("error", err.Error()),
				)
				failed[id] = err
				return nil
			}
			fetched[id] = name
			return nil
		})
	}
	_ = g.Wait()

	for id, name := range fetched {
		names[id] = name
	}
	r.toCache(ctx, KindLocation, fetched)

	return mapResults(KindLocation, keys, names, failed)
}

// fromCache returns the cached names for keys and the keys that missed.
// A cache failure counts every key as a miss.
func (r *Resolver) fromCache(ctx context.Context, kind string, keys []string) (map[string]string, []string) {
	f := r.factory
	names := make(map[string]string, len(keys))
	if f.cache != nil {
		cached, err := f.cache.GetMany(ctx, kind, keys)
		if err != nil {
			f.log.WarnContext(ctx, "name cache read failed",
				slog.String("kind", kind),
				slog.String("error", err.Error()),
			)
		}
		for id, name := range cached {
			names[id] = name
		}
	}

	var misses []string
	for _, id := range keys {
		_, hit := names[id]
		f.metrics.IncrementCacheResult(kind, hit)
		if !hit {
			misses = append(misses, id)
		}
	}
	return names, misses
}

func (r *Resolver) toCache(ctx context.Context, kind string, names map[string]string) {
	f := r.factory
	if f.cache == nil || len(names) == 0 {
		return
	}
	if err := f.cache.SetMany(ctx, kind, names); err != nil {
		f.log.WarnContext(ctx, "name cache write failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
	}
}

// mapResults maps resolved names back to key order. Keys that were neither
// resolved nor failed are reported as not found.
func mapResults(kind string, keys []string, names map[string]string, failed map[string]error) []*dataloader.Result[string] {
	results := make([]*dataloader.Result[string], len(keys))
	for i, key := range keys {
		switch name, ok := names[key]; {
		case ok:
			results[i] = &dataloader.Result[string]{Data: name}
		case failed[key] != nil:
			results[i] = &dataloader.Result[string]{Error: fmt.Errorf("%w: %s %s: %w", domain.ErrLookupFailed, kind, key, failed[key])}
		default:
			results[i] = &dataloader.Result[string]{Error: fmt.Errorf("%w: %s %s: %w", domain.ErrLookupFailed, kind, key, domain.ErrNotFound)}
		}
	}
	return results
}
