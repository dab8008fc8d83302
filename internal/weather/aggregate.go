package weather

import "strings"

// AggregateReadings combines multiple live readings into a single Reading.
// Numeric fields are averaged and rounded to one decimal; humidity to a whole percent.
// The trend is computed against previous, since live sources do not report one.
func AggregateReadings(readings []Reading, previous *HistoryEntry) Reading {
	if len(readings) == 0 {
		return Reading{}
	}

	var (
		sumTemp     float64
		sumHumidity float64
		sumWind     float64
	)

	sources := make([]string, 0, len(readings))
	for _, r := range readings {
		sumTemp += r.Temperature
		sumHumidity += r.Humidity
		sumWind += r.WindSpeed
		sources = append(sources, r.Source)
	}

	n := float64(len(readings))

	out := Reading{
		Temperature: roundTo(sumTemp/n, 1),
		Humidity:    min(100, max(0, roundTo(sumHumidity/n, 0))),
		WindSpeed:   max(0, roundTo(sumWind/n, 1)),
		Source:      strings.Join(sources, "+"),
	}
	if previous != nil {
		out.TempChange = roundTo(out.Temperature-previous.Temperature, 1)
	}
	return out
}
