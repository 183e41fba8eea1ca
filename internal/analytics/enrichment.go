package analytics

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// defaultEnrichmentWorkers bounds the per-listing fan-out so a burst of
// lookups cannot overwhelm the repository.
const defaultEnrichmentWorkers = 8

// BatchedEnrichment resolves booking counts with a single aggregate query
// grouped by listing id. This is the default strategy.
type BatchedEnrichment struct{}

// BookingCounts implements EnrichmentStrategy.
func (BatchedEnrichment) BookingCounts(ctx context.Context, repo RecordRepository, listingIDs []uuid.UUID, w DateWindow) (map[uuid.UUID]int, error) {
	all, err := repo.BookingCountsByListing(ctx, w)
	if err != nil {
		return nil, err
	}

	// Keep only the requested listings so both strategies agree on the
	// count set (the popularity threshold is derived from it).
	counts := make(map[uuid.UUID]int, len(listingIDs))
	for _, id := range listingIDs {
		if c, ok := all[id]; ok && c > 0 {
			counts[id] = c
		}
	}
	return counts, nil
}

// SequentialEnrichment resolves booking counts with one repository lookup
// per listing, fanned out through a bounded worker pool. Kept alongside the
// batched strategy so the two can be benchmarked against each other without
// touching the aggregator's contract.
type SequentialEnrichment struct {
	// Workers caps concurrent lookups; defaultEnrichmentWorkers when zero.
	Workers int
}

// BookingCounts implements EnrichmentStrategy. Completion order never
// affects the result: the map is keyed by listing id and final ordering is
// always imposed later by the ranking sort keys.
func (s SequentialEnrichment) BookingCounts(ctx context.Context, repo RecordRepository, listingIDs []uuid.UUID, w DateWindow) (map[uuid.UUID]int, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = defaultEnrichmentWorkers
	}

	var mu sync.Mutex
	counts := make(map[uuid.UUID]int, len(listingIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, id := range listingIDs {
		id := id
		g.Go(func() error {
			c, err := repo.BookingCountForListing(ctx, id, w)
			if err != nil {
				return err
			}
			if c > 0 {
				mu.Lock()
				counts[id] = c
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
