package weather

import (
	"time"
)

// SourceSimulated marks readings produced by GenerateReading.
const SourceSimulated = "simulated"

// AlertLevel represents a normalized temperature alert level.
type AlertLevel string

const (
	LevelNormal  AlertLevel = "normal"
	LevelWarning AlertLevel = "warning"
	LevelDanger  AlertLevel = "danger"
)

// Location represents a named forest area we monitor.
// Name must be unique within a Registry.
type Location struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
}

// Reading is a single weather observation for a location.
type Reading struct {
	Temperature float64 `json:"temperatureC"`
	Humidity    float64 `json:"humidityPercent"`
	WindSpeed   float64 `json:"windSpeedKmh"`
	TempChange  float64 `json:"tempChangeC"`

	// Source is SourceSimulated or the name of the live provider(s).
	Source string `json:"source"`
}

// HistoryEntry is a Reading stamped with its generation time, minus the
// change indicator.
type HistoryEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeedKmh"`
}

// Entry converts the reading into a history entry stamped at ts.
func (r Reading) Entry(ts time.Time) HistoryEntry {
	return HistoryEntry{
		Timestamp:   ts,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		WindSpeed:   r.WindSpeed,
	}
}
