package weather

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// Service produces current readings. Live providers are tried first; on any
// failure it falls back to GenerateReading, so Current never fails.
type Service struct {
	providers []Provider
}

// NewService creates a new Service. A nil or empty providers list means
// simulation only.
func NewService(providers []Provider) *Service {
	return &Service{
		providers: providers,
	}
}

// Providers returns the names of the configured live providers.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Current fetches from all providers concurrently for the given location and
// aggregates successful readings. previous is the last history entry for loc,
// if any, and only feeds the change indicator of live readings.
func (s *Service) Current(ctx context.Context, loc Location, now time.Time, previous *HistoryEntry) Reading {
	if len(s.providers) == 0 {
		return GenerateReading(loc.Lat, loc.Lon, now)
	}

	type result struct {
		idx     int
		reading Reading
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []result
	)

	for i, p := range s.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				// Log and continue; we want partial success when possible.
				log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Name, err)
				return
			}
			if r.Source == "" {
				r.Source = p.Name()
			}

			mu.Lock()
			results = append(results, result{idx: i, reading: r})
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(results) == 0 {
		log.Printf("INFO: no live readings for %s; using simulated data", loc.Name)
		return GenerateReading(loc.Lat, loc.Lon, now)
	}

	// Keep provider order stable for the Source label.
	sort.Slice(results, func(a, b int) bool { return results[a].idx < results[b].idx })
	readings := make([]Reading, len(results))
	for i, r := range results {
		readings[i] = r.reading
	}

	return AggregateReadings(readings, previous)
}
