package weather

import "fmt"

// Thresholds holds the user-adjustable alert limits in °C.
// Ranges mirror the dashboard sliders.
type Thresholds struct {
	Warning float64 `json:"warningC" validate:"gte=20,ltfield=Danger"`
	Danger  float64 `json:"dangerC" validate:"gte=25,lte=45"`
}

// DefaultThresholds are used when nothing is configured.
var DefaultThresholds = Thresholds{Warning: 30, Danger: 35}

// Alert is raised when a temperature reaches a threshold.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// Level classifies temp against the thresholds.
func (t Thresholds) Level(temp float64) AlertLevel {
	switch {
	case temp >= t.Danger:
		return LevelDanger
	case temp >= t.Warning:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Alert returns nil when temp is below the warning threshold.
func (t Thresholds) Alert(temp float64) *Alert {
	switch t.Level(temp) {
	case LevelDanger:
		return &Alert{
			Level:   LevelDanger,
			Message: fmt.Sprintf("DANGER: Temperature exceeds critical threshold of %g°C. Fire risk is VERY HIGH!", t.Danger),
		}
	case LevelWarning:
		return &Alert{
			Level:   LevelWarning,
			Message: fmt.Sprintf("WARNING: Temperature exceeds warning threshold of %g°C. Increased fire risk!", t.Warning),
		}
	default:
		return nil
	}
}
