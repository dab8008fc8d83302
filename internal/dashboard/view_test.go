package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

var (
	kakamega = weather.Location{Name: "Kakamega Forest, Kenya", Lat: 0.2799, Lon: 34.8875}
	now      = time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
)

func stateWith(reading *weather.Reading, history []weather.HistoryEntry) session.State {
	return session.State{
		Settings:       session.DefaultSettings(kakamega.Name),
		Location:       kakamega,
		Current:        reading,
		History:        history,
		MaxHistory:     96,
		LastRefresh:    now,
		NextUpdateMins: 15,
	}
}

func TestBuildWithoutReading(t *testing.T) {
	v := Build(stateWith(nil, nil), "")

	assert.Equal(t, noDataMessage, v.Message)
	assert.Nil(t, v.Metrics)
	assert.Nil(t, v.Gauge)
	assert.Nil(t, v.Map)
	require.NotNil(t, v.Chart)
	assert.Equal(t, noHistoryMessage, v.Chart.Message)
	assert.Equal(t, session.StyleMarker, v.Style)
}

func TestBuildDangerMarkerStyle(t *testing.T) {
	r := weather.GenerateReading(kakamega.Lat, kakamega.Lon, now)
	require.Equal(t, 37.9, r.Temperature)

	v := Build(stateWith(&r, []weather.HistoryEntry{r.Entry(now)}), "")

	require.NotNil(t, v.Alert)
	assert.Equal(t, weather.LevelDanger, v.Alert.Level)

	assert.Equal(t, "37.9°C", v.Metrics.Temperature)
	assert.Equal(t, "+0.8°C", v.Metrics.Delta)
	assert.Equal(t, "error", v.Metrics.DeltaColor)
	assert.Equal(t, "95%", v.Metrics.Humidity)

	assert.Equal(t, 50.0, v.Gauge.Max)
	assert.Equal(t, []Band{
		{From: 0, To: 30, Color: "lightgreen"},
		{From: 30, To: 35, Color: "orange"},
		{From: 35, To: 50, Color: "red"},
	}, v.Gauge.Bands)

	require.NotNil(t, v.Map)
	assert.Equal(t, "red", v.Map.MarkerColor)
	assert.Equal(t, 2.0, v.Map.HeatIntensity)
	assert.Len(t, v.Map.HeatMap, 317)
	assert.Empty(t, v.Map.Boundary)
	// Center point carries the full weight.
	assert.InDelta(t, (37.9-15)/5*2, v.Map.HeatMap[len(v.Map.HeatMap)/2].Weight, 1e-9)

	assert.Equal(t, "fire", v.Indicator.Icon)
	assert.InDelta(t, 3.79, v.Indicator.AnimationSeconds, 1e-9)
}

func TestBuildPlotlyStyle(t *testing.T) {
	r := weather.Reading{Temperature: 31, Humidity: 70, WindSpeed: 4}
	v := Build(stateWith(&r, nil), session.StylePlotly)

	assert.Equal(t, session.StylePlotly, v.Style)
	assert.Equal(t, "orange", v.Map.MarkerColor)
	assert.Empty(t, v.Map.HeatMap)
	require.Len(t, v.Map.Boundary, 36)
	assert.InDelta(t, kakamega.Lon+5.0/111, v.Map.Boundary[0].Lon, 1e-9)
	assert.InDelta(t, kakamega.Lat, v.Map.Boundary[0].Lat, 1e-9)
	assert.Equal(t, weather.LevelWarning, v.Alert.Level)
}

func TestGaugeMaxGrowsWithTemperature(t *testing.T) {
	g := buildGauge(44, weather.Thresholds{Warning: 30, Danger: 45})
	assert.Equal(t, 54.0, g.Max)

	g = buildGauge(10, weather.Thresholds{Warning: 30, Danger: 35})
	assert.Equal(t, 50.0, g.Max)
}

func TestIndicatorBands(t *testing.T) {
	assert.Equal(t, "thermometer-quarter", buildIndicator(5).Icon)
	assert.Equal(t, 2.0, buildIndicator(5).AnimationSeconds)
	assert.Equal(t, "thermometer-three-quarters", buildIndicator(25).Icon)
	assert.Equal(t, "fire", buildIndicator(35).Icon)
	assert.Equal(t, 5.0, buildIndicator(60).AnimationSeconds)
}

func TestChartRange(t *testing.T) {
	th := weather.Thresholds{Warning: 30, Danger: 35}
	history := []weather.HistoryEntry{
		{Timestamp: now, Temperature: 12},
		{Timestamp: now.Add(time.Hour), Temperature: 41},
	}

	c := buildChart(history, th, 96)
	assert.Equal(t, 7.0, c.YMin)
	assert.Equal(t, 46.0, c.YMax)
	assert.Len(t, c.Points, 2)
	assert.Empty(t, c.Message)

	c = buildChart([]weather.HistoryEntry{{Temperature: 32}}, th, 96)
	assert.Equal(t, 25.0, c.YMin)
	assert.Equal(t, 40.0, c.YMax)
}
