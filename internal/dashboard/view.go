// Package dashboard turns a session state into renderable view data: metrics,
// alert banner, gauge, map and history chart. It emits plain data; drawing is
// left to whatever client consumes it.
package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

const (
	noDataMessage    = "No temperature data available. Please refresh."
	noHistoryMessage = "No historical data available yet. Data will appear after multiple refreshes."

	mapZoom         = 9
	boundaryRadiusM = 5000
	// 1 degree is roughly 111 km.
	boundaryRadiusDeg = 5.0 / 111
)

// View is everything a client needs to draw the dashboard.
type View struct {
	Title       string           `json:"title"`
	Location    weather.Location `json:"location"`
	Style       string           `json:"style"`
	Message     string           `json:"message,omitempty"`
	Metrics     *Metrics         `json:"metrics,omitempty"`
	Alert       *weather.Alert   `json:"alert,omitempty"`
	Gauge       *Gauge           `json:"gauge,omitempty"`
	Map         *Map             `json:"map,omitempty"`
	Indicator   *Indicator       `json:"indicator,omitempty"`
	Chart       *Chart           `json:"chart,omitempty"`
	LastUpdated time.Time        `json:"lastUpdated"`
	NextUpdate  float64          `json:"nextUpdateInMinutes"`
	Footer      string           `json:"footer"`
}

// Metrics is the row of headline numbers.
type Metrics struct {
	Temperature string `json:"temperature"`
	Delta       string `json:"delta"`
	DeltaColor  string `json:"deltaColor"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"windSpeed"`
	Source      string `json:"source"`
}

// Band is a coloured range on the gauge.
type Band struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// Gauge describes the current-temperature dial.
type Gauge struct {
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Bands     []Band  `json:"bands"`
	Threshold float64 `json:"threshold"`
}

// Point is a map coordinate, optionally weighted.
type Point struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight float64 `json:"weight,omitempty"`
}

// Map describes the location map. HeatMap is set for the marker style,
// Boundary for the plotly style.
type Map struct {
	Center          Point              `json:"center"`
	Zoom            int                `json:"zoom"`
	MarkerColor     string             `json:"markerColor"`
	Tooltip         string             `json:"tooltip"`
	Status          weather.AlertLevel `json:"status"`
	BoundaryRadiusM float64            `json:"boundaryRadiusM"`
	HeatIntensity   float64            `json:"heatIntensity,omitempty"`
	HeatMap         []Point            `json:"heatMap,omitempty"`
	Boundary        []Point            `json:"boundary,omitempty"`
}

// Indicator is the animated status icon.
type Indicator struct {
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	Animation        string  `json:"animation"`
	AnimationSeconds float64 `json:"animationSeconds"`
}

// ChartPoint is one sample on the history chart.
type ChartPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeedKmh"`
}

// Chart describes the temperature history plot.
type Chart struct {
	Points   []ChartPoint `json:"points"`
	Warning  float64      `json:"warningLine"`
	Danger   float64      `json:"dangerLine"`
	YMin     float64      `json:"yMin"`
	YMax     float64      `json:"yMax"`
	Message  string       `json:"message,omitempty"`
	MaxItems int          `json:"maxItems"`
}

// Build renders st in the given style. An empty style falls back to the
// session's configured style.
func Build(st session.State, style string) View {
	if style == "" {
		style = st.Settings.Style
	}
	if style == "" {
		style = session.StyleMarker
	}
	th := st.Settings.Thresholds

	v := View{
		Title:       "Current Conditions: " + st.Location.Name,
		Location:    st.Location,
		Style:       style,
		LastUpdated: st.LastRefresh,
		NextUpdate:  st.NextUpdateMins,
		Chart:       buildChart(st.History, th, st.MaxHistory),
		Footer: fmt.Sprintf("Forest Temperature Monitoring System - Last updated: %s - Next update in: %.1f minutes",
			st.LastRefresh.Format("2006-01-02 15:04:05"), st.NextUpdateMins),
	}

	if st.Current == nil {
		v.Message = noDataMessage
		return v
	}

	temp := st.Current.Temperature
	v.Metrics = buildMetrics(*st.Current, th)
	v.Alert = th.Alert(temp)
	v.Gauge = buildGauge(temp, th)
	v.Indicator = buildIndicator(temp)
	v.Map = buildMap(st.Location, temp, th, style)
	return v
}

func buildMetrics(r weather.Reading, th weather.Thresholds) *Metrics {
	color := "normal"
	switch th.Level(r.Temperature) {
	case weather.LevelWarning:
		color = "warning"
	case weather.LevelDanger:
		color = "error"
	}
	return &Metrics{
		Temperature: fmt.Sprintf("%g°C", r.Temperature),
		Delta:       fmt.Sprintf("%+.1f°C", r.TempChange),
		DeltaColor:  color,
		Humidity:    fmt.Sprintf("%g%%", r.Humidity),
		WindSpeed:   fmt.Sprintf("%g km/h", r.WindSpeed),
		Source:      r.Source,
	}
}

func buildGauge(temp float64, th weather.Thresholds) *Gauge {
	top := max(50, temp+10, th.Danger+5)
	return &Gauge{
		Value: temp,
		Min:   0,
		Max:   top,
		Bands: []Band{
			{From: 0, To: th.Warning, Color: "lightgreen"},
			{From: th.Warning, To: th.Danger, Color: "orange"},
			{From: th.Danger, To: top, Color: "red"},
		},
		Threshold: th.Danger,
	}
}

func markerColor(level weather.AlertLevel) string {
	switch level {
	case weather.LevelDanger:
		return "red"
	case weather.LevelWarning:
		return "orange"
	default:
		return "green"
	}
}

func buildMap(loc weather.Location, temp float64, th weather.Thresholds, style string) *Map {
	level := th.Level(temp)
	m := &Map{
		Center:          Point{Lat: loc.Lat, Lon: loc.Lon},
		Zoom:            mapZoom,
		MarkerColor:     markerColor(level),
		Tooltip:         fmt.Sprintf("%s: %g°C", loc.Name, temp),
		Status:          level,
		BoundaryRadiusM: boundaryRadiusM,
	}

	switch style {
	case session.StylePlotly:
		m.Boundary = boundaryRing(loc)
	default:
		m.HeatIntensity = heatIntensity(level)
		m.HeatMap = heatGrid(loc, temp, m.HeatIntensity)
	}
	return m
}

func heatIntensity(level weather.AlertLevel) float64 {
	switch level {
	case weather.LevelDanger:
		return 2.0
	case weather.LevelWarning:
		return 1.5
	default:
		return 1.0
	}
}

// heatGrid spreads weighted points over a disc of radius 10 grid steps
// (0.01° each) around loc. Weight fades linearly to zero at the rim.
func heatGrid(loc weather.Location, temp, intensity float64) []Point {
	baseWeight := max(0, (temp-15)/5)

	var pts []Point
	for i := -10; i <= 10; i++ {
		for j := -10; j <= 10; j++ {
			d := math.Sqrt(float64(i*i + j*j))
			if d > 10 {
				continue
			}
			pts = append(pts, Point{
				Lat:    loc.Lat + float64(i)*0.01,
				Lon:    loc.Lon + float64(j)*0.01,
				Weight: baseWeight * (1 - d/10) * intensity,
			})
		}
	}
	return pts
}

// boundaryRing approximates the 5 km boundary with 36 points.
func boundaryRing(loc weather.Location) []Point {
	pts := make([]Point, 0, 36)
	for angle := 0; angle < 360; angle += 10 {
		rad := float64(angle) * math.Pi / 180
		pts = append(pts, Point{
			Lat: loc.Lat + boundaryRadiusDeg*math.Sin(rad),
			Lon: loc.Lon + boundaryRadiusDeg*math.Cos(rad),
		})
	}
	return pts
}

// buildIndicator uses fixed bands independent of the user thresholds.
func buildIndicator(temp float64) *Indicator {
	speed := max(1, min(5, temp/10))
	switch {
	case temp >= 35:
		return &Indicator{Icon: "fire", Color: "red", Animation: "pulse", AnimationSeconds: speed}
	case temp >= 25:
		return &Indicator{Icon: "thermometer-three-quarters", Color: "orange", Animation: "shake", AnimationSeconds: speed}
	default:
		return &Indicator{Icon: "thermometer-quarter", Color: "green", Animation: "fade", AnimationSeconds: speed * 2}
	}
}

func buildChart(history []weather.HistoryEntry, th weather.Thresholds, maxItems int) *Chart {
	c := &Chart{
		Points:   make([]ChartPoint, 0, len(history)),
		Warning:  th.Warning,
		Danger:   th.Danger,
		MaxItems: maxItems,
	}
	if len(history) == 0 {
		c.Message = noHistoryMessage
		c.YMin = th.Warning - 5
		c.YMax = th.Danger + 5
		return c
	}

	lo, hi := history[0].Temperature, history[0].Temperature
	for _, e := range history {
		lo = min(lo, e.Temperature)
		hi = max(hi, e.Temperature)
		c.Points = append(c.Points, ChartPoint{
			Timestamp:   e.Timestamp,
			Temperature: e.Temperature,
			Humidity:    e.Humidity,
			WindSpeed:   e.WindSpeed,
		})
	}
	c.YMin = min(lo, th.Warning) - 5
	c.YMax = max(hi, th.Danger) + 5
	return c
}
