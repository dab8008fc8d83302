package session

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

// Rendering styles understood by the dashboard.
const (
	StyleMarker = "marker"
	StylePlotly = "plotly"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Refresh intervals move in 5-minute steps, like the original slider.
	_ = v.RegisterValidation("refreshstep", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%5 == 0
	})
	return v
}

// Settings is the user-adjustable part of a dashboard session.
type Settings struct {
	Location               string             `json:"location" validate:"required"`
	RefreshIntervalMinutes int                `json:"refreshIntervalMinutes" validate:"gte=5,lte=60,refreshstep"`
	Thresholds             weather.Thresholds `json:"thresholds"`
	Style                  string             `json:"style" validate:"omitempty,oneof=marker plotly"`
}

// DefaultSettings returns the settings a new session starts with.
func DefaultSettings(location string) Settings {
	return Settings{
		Location:               location,
		RefreshIntervalMinutes: 15,
		Thresholds:             weather.DefaultThresholds,
		Style:                  StyleMarker,
	}
}

// Validate checks ranges and the warning < danger ordering.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Interval returns the refresh interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.RefreshIntervalMinutes) * time.Minute
}
