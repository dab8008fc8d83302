package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns all dashboard sessions. Sessions never share state.
type Manager struct {
	mu       sync.RWMutex
	registry *weather.Registry
	defaults Settings
	clock    func() time.Time

	sessions  map[uuid.UUID]*Session
	defaultID uuid.UUID
}

// NewManager creates a manager with one default session built from defaults.
func NewManager(registry *weather.Registry, defaults Settings, clock func() time.Time) (*Manager, error) {
	if clock == nil {
		clock = time.Now
	}
	m := &Manager{
		registry: registry,
		defaults: defaults,
		clock:    clock,
		sessions: make(map[uuid.UUID]*Session),
	}

	s, err := m.Create(nil)
	if err != nil {
		return nil, fmt.Errorf("create default session: %w", err)
	}
	m.defaultID = s.ID
	return m, nil
}

// Create starts a new session. A nil settings uses the manager defaults.
func (m *Manager) Create(settings *Settings) (*Session, error) {
	st := m.defaults
	if settings != nil {
		st = *settings
	}

	s, err := newSession(uuid.New(), m.registry, st, m.clock())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Default returns the session created at startup.
func (m *Manager) Default() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[m.defaultID]
}

// Defaults returns the settings new sessions start with.
func (m *Manager) Defaults() Settings {
	return m.defaults
}

// All returns every session.
func (m *Manager) All() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Now returns the manager clock's current time.
func (m *Manager) Now() time.Time {
	return m.clock()
}

// Registry returns the location registry sessions resolve against.
func (m *Manager) Registry() *weather.Registry {
	return m.registry
}
