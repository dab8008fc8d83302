package weather

import (
	"math"
	"strconv"
	"time"
)

const (
	minTemperature = -10.0
	maxTemperature = 45.0
	minHumidity    = 30.0
	maxHumidity    = 95.0

	// peakHour is the local hour with the warmest simulated temperature.
	peakHour = 14
)

// GenerateReading produces a deterministic synthetic reading for the given
// coordinates. Only the wall-clock hour of now is used, so two calls within
// the same hour return identical readings.
//
// Temperature follows a diurnal curve peaking at 14:00 and falls off with
// latitude; humidity rises toward the equator; wind speed is derived from
// longitude. The result never leaves the documented ranges.
func GenerateReading(lat, lon float64, now time.Time) Reading {
	absLat := math.Abs(lat)
	hour := now.Hour()

	baseTemp := 30 - absLat*0.5
	timeFactor := math.Abs(float64(hour-peakHour) / 12)
	tempAdjustment := -8 + 16*(1-timeFactor)

	temp := roundTo(baseTemp+tempAdjustment, 1)
	temp = max(min(temp, maxTemperature), minTemperature)

	humidity := roundTo(60+(90-absLat)*0.5, 0)
	humidity = min(maxHumidity, max(minHumidity, humidity))

	wind := roundTo(math.Mod(math.Abs(lon), 10)+2, 1)

	change := roundTo(float64(hour%3-1)*0.8, 1)

	return Reading{
		Temperature: temp,
		Humidity:    humidity,
		WindSpeed:   wind,
		TempChange:  change,
		Source:      SourceSimulated,
	}
}

// roundTo rounds v to the given number of decimal places using the exact
// binary value of v and ties-to-even, so 7.235 (stored as 7.23499...) gives 7.2
// and 90.5 gives 90.
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
