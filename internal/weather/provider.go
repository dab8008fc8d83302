package weather

import (
	"context"
)

// Provider abstracts a live weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
// Readings returned by a provider must use the same units as GenerateReading.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// HistoryStore is the contract the rolling history buffer satisfies.
type HistoryStore interface {
	Append(location string, entry HistoryEntry)
	Get(location string) []HistoryEntry
}
