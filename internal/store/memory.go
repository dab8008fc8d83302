package store

import (
	"math"
	"sync"
	"time"

	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

// historyWindow is how far back the rolling history reaches.
const historyWindow = 24 * time.Hour

var _ weather.HistoryStore = (*HistoryStore)(nil)

// MaxHistoryFor returns how many samples cover historyWindow at the given
// refresh interval, rounded up. Non-positive intervals are treated as one minute.
func MaxHistoryFor(refreshInterval time.Duration) int {
	minutes := refreshInterval.Minutes()
	if minutes <= 0 {
		minutes = 1
	}
	n := int(math.Ceil(historyWindow.Minutes() / minutes))
	return max(n, 1)
}

// HistoryStore is a concurrency-safe in-memory rolling history of readings,
// keyed by location name.
type HistoryStore struct {
	mu sync.RWMutex

	// key: location name, value: entries in insertion order
	data map[string][]weather.HistoryEntry

	maxHistory int
}

// NewHistoryStore creates an empty store sized for refreshInterval.
func NewHistoryStore(refreshInterval time.Duration) *HistoryStore {
	return &HistoryStore{
		data:       make(map[string][]weather.HistoryEntry),
		maxHistory: MaxHistoryFor(refreshInterval),
	}
}

// Append adds entry to the end of location's history and evicts the oldest
// entries once the cap is exceeded.
func (s *HistoryStore) Append(location string, entry weather.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[location], entry)

	// Enforce retention by count.
	if len(history) > s.maxHistory {
		over := len(history) - s.maxHistory
		trimmed := make([]weather.HistoryEntry, s.maxHistory)
		copy(trimmed, history[over:])
		history = trimmed
	}

	s.data[location] = history
}

// Get returns a copy of location's history, oldest first. Unknown locations
// yield an empty slice.
func (s *HistoryStore) Get(location string) []weather.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[location]
	out := make([]weather.HistoryEntry, len(history))
	copy(out, history)
	return out
}

// Latest returns the most recent entry for location, if any.
func (s *HistoryStore) Latest(location string) (weather.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[location]
	if len(history) == 0 {
		return weather.HistoryEntry{}, false
	}
	return history[len(history)-1], true
}

// SetRefreshInterval recomputes the cap. Existing histories are left as they
// are; each one is trimmed on its next Append.
func (s *HistoryStore) SetRefreshInterval(refreshInterval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxHistory = MaxHistoryFor(refreshInterval)
}

// MaxHistory returns the current per-location cap.
func (s *HistoryStore) MaxHistory() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.maxHistory
}

// Locations returns the names that have at least one entry.
func (s *HistoryStore) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name, history := range s.data {
		if len(history) > 0 {
			names = append(names, name)
		}
	}
	return names
}
