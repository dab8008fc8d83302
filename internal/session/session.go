package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/forest-temperature-monitor/internal/store"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

// Session holds the state of one running dashboard: its settings, the last
// reading and its own rolling history. Refreshes of a session are serialized.
type Session struct {
	ID uuid.UUID

	mu          sync.Mutex
	registry    *weather.Registry
	settings    Settings
	location    weather.Location
	lastRefresh time.Time
	current     *weather.Reading
	currentLoc  string
	history     *store.HistoryStore
}

// State is an immutable copy of a session used for rendering.
type State struct {
	ID              uuid.UUID              `json:"id"`
	Settings        Settings               `json:"settings"`
	Location        weather.Location       `json:"location"`
	Current         *weather.Reading       `json:"current,omitempty"`
	CurrentLocation string                 `json:"currentLocation,omitempty"`
	History         []weather.HistoryEntry `json:"history"`
	MaxHistory      int                    `json:"maxHistory"`
	LastRefresh     time.Time              `json:"lastRefresh"`
	NextRefreshIn   time.Duration          `json:"-"`
	NextUpdateMins  float64                `json:"nextUpdateInMinutes"`
}

func newSession(id uuid.UUID, registry *weather.Registry, settings Settings, now time.Time) (*Session, error) {
	loc, err := resolve(registry, settings)
	if err != nil {
		return nil, err
	}
	settings.Location = loc.Name
	if settings.Style == "" {
		settings.Style = StyleMarker
	}

	return &Session{
		ID:       id,
		registry: registry,
		settings: settings,
		location: loc,
		// Backdated so the first tick refreshes immediately.
		lastRefresh: now.Add(-settings.Interval()),
		history:     store.NewHistoryStore(settings.Interval()),
	}, nil
}

func resolve(registry *weather.Registry, settings Settings) (weather.Location, error) {
	if err := settings.Validate(); err != nil {
		return weather.Location{}, err
	}
	return registry.Lookup(settings.Location)
}

// Tick refreshes the session when force is set or the refresh interval has
// elapsed. It reports whether a refresh happened.
func (s *Session) Tick(ctx context.Context, svc *weather.Service, now time.Time, force bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && !weather.ShouldRefresh(s.lastRefresh, now, s.settings.Interval()) {
		return false
	}
	s.lastRefresh = now

	var previous *weather.HistoryEntry
	if e, ok := s.history.Latest(s.location.Name); ok {
		previous = &e
	}

	reading := svc.Current(ctx, s.location, now, previous)
	s.current = &reading
	s.currentLoc = s.location.Name
	s.history.Append(s.location.Name, reading.Entry(now))

	log.Printf("DEBUG: session %s refreshed %s: %.1f°C (%s)", s.ID, s.location.Name, reading.Temperature, reading.Source)
	return true
}

// UpdateSettings validates and applies new settings. A changed refresh
// interval resizes the history cap without trimming existing entries.
func (s *Session) UpdateSettings(settings Settings) error {
	loc, err := resolve(s.registry, settings)
	if err != nil {
		return err
	}
	settings.Location = loc.Name
	if settings.Style == "" {
		settings.Style = StyleMarker
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.RefreshIntervalMinutes != s.settings.RefreshIntervalMinutes {
		s.history.SetRefreshInterval(settings.Interval())
	}
	s.settings = settings
	s.location = loc
	return nil
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// History returns the rolling history for the named location.
func (s *Session) History(name string) ([]weather.HistoryEntry, error) {
	loc, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.history.Get(loc.Name), nil
}

// Snapshot copies the session state for the selected location.
func (s *Session) Snapshot(now time.Time) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:              s.ID,
		Settings:        s.settings,
		Location:        s.location,
		CurrentLocation: s.currentLoc,
		History:         s.history.Get(s.location.Name),
		MaxHistory:      s.history.MaxHistory(),
		LastRefresh:     s.lastRefresh,
		NextRefreshIn:   weather.NextRefreshIn(s.lastRefresh, now, s.settings.Interval()),
	}
	st.NextUpdateMins = float64(st.NextRefreshIn.Round(6*time.Second)) / float64(time.Minute)
	if s.current != nil {
		c := *s.current
		st.Current = &c
	}
	return st
}
