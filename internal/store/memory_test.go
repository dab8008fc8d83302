package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

var base = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func entry(i int) weather.HistoryEntry {
	return weather.HistoryEntry{
		Timestamp:   base.Add(time.Duration(i) * time.Minute),
		Temperature: float64(i),
	}
}

func TestMaxHistoryFor(t *testing.T) {
	assert.Equal(t, 96, MaxHistoryFor(15*time.Minute))
	assert.Equal(t, 288, MaxHistoryFor(5*time.Minute))
	assert.Equal(t, 24, MaxHistoryFor(60*time.Minute))
	// 1440/35 = 41.14
	assert.Equal(t, 42, MaxHistoryFor(35*time.Minute))
	assert.Equal(t, 1440, MaxHistoryFor(0))
	assert.Equal(t, 1, MaxHistoryFor(48*time.Hour))
}

func TestAppendEvictsOldest(t *testing.T) {
	s := NewHistoryStore(60 * time.Minute)
	limit := s.MaxHistory()
	require.Equal(t, 24, limit)

	for i := 1; i <= limit+1; i++ {
		s.Append("A", entry(i))
	}

	got := s.Get("A")
	require.Len(t, got, limit)
	for i, e := range got {
		assert.Equal(t, entry(i+2), e)
	}
}

func TestAppendIsolatesLocations(t *testing.T) {
	s := NewHistoryStore(15 * time.Minute)
	s.Append("B", entry(1))

	for i := 0; i < 200; i++ {
		s.Append("A", entry(i))
	}

	assert.Equal(t, []weather.HistoryEntry{entry(1)}, s.Get("B"))
	assert.Len(t, s.Get("A"), 96)
	assert.ElementsMatch(t, []string{"A", "B"}, s.Locations())
}

func TestGetUnknownLocationIsEmpty(t *testing.T) {
	s := NewHistoryStore(15 * time.Minute)

	got := s.Get("nowhere")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, ok := s.Latest("nowhere")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewHistoryStore(15 * time.Minute)
	s.Append("A", entry(1))

	got := s.Get("A")
	got[0].Temperature = 99

	assert.Equal(t, 1.0, s.Get("A")[0].Temperature)
}

func TestSetRefreshIntervalTrimsLazily(t *testing.T) {
	s := NewHistoryStore(15 * time.Minute)
	for i := 0; i < 50; i++ {
		s.Append("A", entry(i))
		s.Append("B", entry(i))
	}

	s.SetRefreshInterval(60 * time.Minute)
	assert.Equal(t, 24, s.MaxHistory())

	// Not trimmed until the next append.
	assert.Len(t, s.Get("A"), 50)

	s.Append("A", entry(50))
	got := s.Get("A")
	require.Len(t, got, 24)
	assert.Equal(t, entry(27), got[0])
	assert.Equal(t, entry(50), got[23])

	// B was not appended to, so it keeps its old length.
	assert.Len(t, s.Get("B"), 50)

	latest, ok := s.Latest("A")
	require.True(t, ok)
	assert.Equal(t, entry(50), latest)
}
